package middlewares

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	Config "payledger/config"
	"payledger/model"
	"payledger/utility/constants"
	"payledger/utility/logger"

	jwtgo "github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/require"
)

func signerConfig(t *testing.T) (Config.Data, *rsa.PrivateKey) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	return Config.Data{AuthenticatorKey: base64.URLEncoding.EncodeToString(publicPEM)}, key
}

func signToken(t *testing.T, key *rsa.PrivateKey, role, tokenType string) string {
	claims := jwtgo.MapClaims{
		"userId":    "a10fce7b-7844-43af-9ed1-e130723a1ea3",
		"role":      role,
		"tokenType": tokenType,
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func runGuardedRequest(config Config.Data, guard func(Config.Data, *logger.Logger, http.HandlerFunc) http.HandlerFunc, authToken string) (*httptest.ResponseRecorder, bool) {
	nextCalled := false
	handler := guard(config, logger.NewLogger(), func(responseWriter http.ResponseWriter, requestReader *http.Request) {
		nextCalled = true
		responseWriter.WriteHeader(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodPost, "/api/v1/crypto/deposits/ipn", nil)
	if authToken != "" {
		request.Header.Set(constants.X_AUTH_TOKEN, authToken)
	}
	recorder := httptest.NewRecorder()
	handler(recorder, request)
	return recorder, nextCalled
}

func TestServiceTokenOnlyRejectsMissingToken(t *testing.T) {
	config, _ := signerConfig(t)

	recorder, nextCalled := runGuardedRequest(config, ServiceTokenOnly, "")
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.False(t, nextCalled)
}

func TestServiceTokenOnlyRejectsUserToken(t *testing.T) {
	config, key := signerConfig(t)
	authToken := signToken(t, key, model.Role.USER, model.TokenType.USER)

	recorder, nextCalled := runGuardedRequest(config, ServiceTokenOnly, authToken)
	require.Equal(t, http.StatusForbidden, recorder.Code)
	require.False(t, nextCalled)
}

func TestServiceTokenOnlyAllowsServiceToken(t *testing.T) {
	config, key := signerConfig(t)
	authToken := signToken(t, key, model.Role.USER, model.TokenType.SERVICE)

	recorder, nextCalled := runGuardedRequest(config, ServiceTokenOnly, authToken)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, nextCalled)
}

func TestServiceTokenOnlyRejectsForgedSignature(t *testing.T) {
	config, _ := signerConfig(t)
	_, otherKey := signerConfig(t)
	authToken := signToken(t, otherKey, model.Role.USER, model.TokenType.SERVICE)

	recorder, nextCalled := runGuardedRequest(config, ServiceTokenOnly, authToken)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.False(t, nextCalled)
}

func TestAdminOnlyRejectsUserRole(t *testing.T) {
	config, key := signerConfig(t)
	authToken := signToken(t, key, model.Role.USER, model.TokenType.USER)

	recorder, nextCalled := runGuardedRequest(config, AdminOnly, authToken)
	require.Equal(t, http.StatusForbidden, recorder.Code)
	require.False(t, nextCalled)
}

func TestAdminOnlyAllowsAdminRole(t *testing.T) {
	config, key := signerConfig(t)
	authToken := signToken(t, key, model.Role.ADMIN, model.TokenType.USER)

	recorder, nextCalled := runGuardedRequest(config, AdminOnly, authToken)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, nextCalled)
}
