package jwt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	Config "payledger/config"

	jwtgo "github.com/dgrijalva/jwt-go"
)

// VerifyJWT ... Verifies an RSA-signed token against the configured public key
// and decodes its claims into tokenClaims
func VerifyJWT(authToken string, config Config.Data, tokenClaims interface{}) error {

	keyByte, err := base64.URLEncoding.DecodeString(config.AuthenticatorKey)
	if err != nil {
		return err
	}

	token, err := jwtgo.Parse(authToken, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		rsa, err := jwtgo.ParseRSAPublicKeyFromPEM(keyByte)
		if err != nil {
			return nil, err
		}
		return rsa, nil
	})
	if err != nil {
		return err
	}

	jwtClaims, ok := token.Claims.(jwtgo.MapClaims)
	if ok && token.Valid {
		claimBytes, err := json.Marshal(jwtClaims)
		if err != nil {
			return err
		}
		json.Unmarshal(claimBytes, tokenClaims)
		return nil
	}

	return errors.New("Failed to validate token")
}

// DecodeToken ... Decodes token claims without re-verifying the signature,
// for handlers running behind the auth middleware
func DecodeToken(authToken string, tokenClaims interface{}) error {
	parser := jwtgo.Parser{}
	claims := jwtgo.MapClaims{}
	if _, _, err := parser.ParseUnverified(authToken, claims); err != nil {
		return err
	}
	claimBytes, err := json.Marshal(claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(claimBytes, tokenClaims)
}
