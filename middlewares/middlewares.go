package middlewares

import (
	"encoding/json"
	"fmt"
	"net/http"

	Config "payledger/config"
	"payledger/model"
	"payledger/utility"
	"payledger/utility/constants"
	"payledger/utility/errorcode"
	"payledger/utility/jwt"
	"payledger/utility/logger"
	"payledger/utility/response"
)

var apiResponse = response.New()

// Middleware ... Middleware struct
type Middleware struct {
	logger *logger.Logger
	config Config.Data
	next   http.Handler
}

// NewMiddleware ... Creates a middleware instance
func NewMiddleware(appLogger *logger.Logger, config Config.Data, handler http.Handler) *Middleware {
	return &Middleware{appLogger, config, handler}
}

// Build ... Build middleware functions
func (m *Middleware) Build() http.Handler {
	return m.next
}

// LogAPIRequests ... Logs every incoming request
func (m *Middleware) LogAPIRequests() *Middleware {
	nextHandler := http.HandlerFunc(func(responseWriter http.ResponseWriter, requestReader *http.Request) {
		m.logger.Info(fmt.Sprintf("Incoming request from : %s with IP : %s to : %s", requestReader.UserAgent(), utility.GetIPAdress(requestReader), requestReader.URL.Path))
		m.next.ServeHTTP(responseWriter, requestReader)
	})

	return &Middleware{m.logger, m.config, nextHandler}
}

// ValidateAuthToken ... Verifies the request token signature before the
// handler runs
func ValidateAuthToken(config Config.Data, appLogger *logger.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(responseWriter http.ResponseWriter, requestReader *http.Request) {
		authToken := requestReader.Header.Get(constants.X_AUTH_TOKEN)
		if authToken == "" {
			appLogger.Error("Rejected request to %s : missing auth token", requestReader.URL.Path)
			writeEnvelope(responseWriter, http.StatusUnauthorized, errorcode.UNAUTHORIZED, errorcode.EMPTY_AUTH_KEY_MSG)
			return
		}

		claims := model.TokenClaims{}
		if err := jwt.VerifyJWT(authToken, config, &claims); err != nil {
			appLogger.Error("Rejected request to %s : %s", requestReader.URL.Path, err)
			writeEnvelope(responseWriter, http.StatusUnauthorized, errorcode.UNAUTHORIZED, errorcode.INVALID_TOKEN_MSG)
			return
		}

		next.ServeHTTP(responseWriter, requestReader)
	}
}

// AdminOnly ... Verifies the token and requires an admin role on the claims
func AdminOnly(config Config.Data, appLogger *logger.Logger, next http.HandlerFunc) http.HandlerFunc {
	return ValidateAuthToken(config, appLogger, func(responseWriter http.ResponseWriter, requestReader *http.Request) {
		claims := model.TokenClaims{}
		authToken := requestReader.Header.Get(constants.X_AUTH_TOKEN)
		if err := jwt.DecodeToken(authToken, &claims); err != nil {
			appLogger.Error("Rejected request to %s : %s", requestReader.URL.Path, err)
			writeEnvelope(responseWriter, http.StatusUnauthorized, errorcode.UNAUTHORIZED, errorcode.INVALID_TOKEN_MSG)
			return
		}

		if !model.IsAdminRole(claims.Role) {
			appLogger.Error("Rejected request to %s : role %s not permitted", requestReader.URL.Path, claims.Role)
			writeEnvelope(responseWriter, http.StatusForbidden, errorcode.FORBIDDEN, errorcode.FORBIDDEN_MSG)
			return
		}

		next.ServeHTTP(responseWriter, requestReader)
	})
}

// ServiceTokenOnly ... Verifies the token and requires a SERVICE token type,
// user tokens cannot reach machine-to-machine routes
func ServiceTokenOnly(config Config.Data, appLogger *logger.Logger, next http.HandlerFunc) http.HandlerFunc {
	return ValidateAuthToken(config, appLogger, func(responseWriter http.ResponseWriter, requestReader *http.Request) {
		claims := model.TokenClaims{}
		authToken := requestReader.Header.Get(constants.X_AUTH_TOKEN)
		if err := jwt.DecodeToken(authToken, &claims); err != nil {
			appLogger.Error("Rejected request to %s : %s", requestReader.URL.Path, err)
			writeEnvelope(responseWriter, http.StatusUnauthorized, errorcode.UNAUTHORIZED, errorcode.INVALID_TOKEN_MSG)
			return
		}

		if !model.IsServiceToken(claims.TokenType) {
			appLogger.Error("Rejected request to %s : token type %s not permitted", requestReader.URL.Path, claims.TokenType)
			writeEnvelope(responseWriter, http.StatusForbidden, errorcode.FORBIDDEN, errorcode.SERVICE_TOKEN_MSG)
			return
		}

		next.ServeHTTP(responseWriter, requestReader)
	})
}

func writeEnvelope(responseWriter http.ResponseWriter, status int, code, message string) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(status)
	json.NewEncoder(responseWriter).Encode(apiResponse.PlainError(code, message))
}
