package controllers

import (
	"encoding/json"
	"net/http"

	Config "payledger/config"
	"payledger/database"
	"payledger/model"
	"payledger/services"
	"payledger/utility/appError"
	"payledger/utility/constants"
	"payledger/utility/errorcode"
	"payledger/utility/jwt"
	"payledger/utility/logger"
	"payledger/utility/response"
	validator "payledger/utility/validator"

	"github.com/getsentry/sentry-go"
	ut "github.com/go-playground/universal-translator"
	validation "gopkg.in/go-playground/validator.v9"
)

// Controller : base controller struct
type Controller struct {
	Logger     *logger.Logger
	Config     Config.Data
	Validator  *validation.Validate
	Translator ut.Translator
	Repository database.ILedgerRepository
}

// AdminCryptoController : admin review surface over deposits and withdrawals
type AdminCryptoController struct {
	Controller
	ApprovalService *services.ApprovalService
}

// RecoveryController : payment recovery surface
type RecoveryController struct {
	Controller
	RecoveryService *services.RecoveryService
}

// WalletController : user-facing deposits and withdrawals
type WalletController struct {
	Controller
	LedgerService *services.LedgerService
}

// NewController ... Create a new base controller instance
func NewController(appLogger *logger.Logger, configData Config.Data, validate *validation.Validate, translator ut.Translator, repository database.ILedgerRepository) *Controller {
	return &Controller{
		Logger:     appLogger,
		Config:     configData,
		Validator:  validate,
		Translator: translator,
		Repository: repository,
	}
}

// NewAdminCryptoController ...
func NewAdminCryptoController(base *Controller, approvalService *services.ApprovalService) *AdminCryptoController {
	return &AdminCryptoController{Controller: *base, ApprovalService: approvalService}
}

// NewRecoveryController ...
func NewRecoveryController(base *Controller, recoveryService *services.RecoveryService) *RecoveryController {
	return &RecoveryController{Controller: *base, RecoveryService: recoveryService}
}

// NewWalletController ...
func NewWalletController(base *Controller, ledgerService *services.LedgerService) *WalletController {
	return &WalletController{Controller: *base, LedgerService: ledgerService}
}

// Ping : Ping function
func (controller *Controller) Ping(responseWriter http.ResponseWriter, requestReader *http.Request) {
	apiResponse := response.New()
	controller.Logger.Info("Ping request successful! Server is up and listening")
	writeJSON(responseWriter, http.StatusOK, apiResponse.PlainSuccess(errorcode.SUCCESS, "Ping request successful! Server is up and listening"))
}

// ValidateRequest ... Runs struct validation and translates failures into
// field/message pairs for the response envelope
func ValidateRequest(validate *validation.Validate, requestData interface{}, translator ut.Translator) []map[string]string {
	if err := validate.Struct(requestData); err != nil {
		return validator.TranslateErrors(err, translator)
	}
	return nil
}

// ReturnError ... Logs the failure, reports server faults to sentry and
// writes the error envelope
func ReturnError(responseWriter http.ResponseWriter, operation string, status int, err error, payload interface{}, appLogger *logger.Logger) {
	appLogger.Error("Outgoing error response to %s request : %+v, error : %s", operation, payload, err)
	if appError.Type(err) == errorcode.SERVER_ERR {
		sentry.CaptureException(err)
	}
	writeJSON(responseWriter, status, payload)
}

// errResponse ... Maps a service error onto the envelope shape the caller gets
func errResponse(err error, apiResponse response.ResponseResultObj) (int, interface{}) {
	errType := appError.Type(err)
	switch errType {
	case errorcode.SERVER_ERR:
		return http.StatusInternalServerError, apiResponse.PlainError(errorcode.SERVER_ERR, errorcode.SERVER_ERR_MSG)
	default:
		return appError.Code(err), apiResponse.PlainError(errType, err.Error())
	}
}

// adminErrResponse ... Same mapping but folds not-found into a 400 envelope,
// admin review routes do not distinguish a missing id from bad input
func adminErrResponse(err error, apiResponse response.ResponseResultObj) (int, interface{}) {
	if appError.Type(err) == errorcode.RECORD_NOT_FOUND {
		return http.StatusBadRequest, apiResponse.PlainError(errorcode.INPUT_ERR, errorcode.RECORD_NOT_FOUND_MSG)
	}
	return errResponse(err, apiResponse)
}

func writeJSON(responseWriter http.ResponseWriter, status int, payload interface{}) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(status)
	json.NewEncoder(responseWriter).Encode(payload)
}

// requestClaims ... Decodes the already-verified auth token on the request.
// The auth middleware has rejected unverifiable tokens before handlers run.
func requestClaims(requestReader *http.Request) (model.TokenClaims, error) {
	claims := model.TokenClaims{}
	authToken := requestReader.Header.Get(constants.X_AUTH_TOKEN)
	if err := jwt.DecodeToken(authToken, &claims); err != nil {
		return claims, appError.Err{
			ErrType: errorcode.UNAUTHORIZED,
			ErrCode: http.StatusUnauthorized,
			Err:     err,
		}
	}
	return claims, nil
}
