// Package utils provides small helpers shared by the services and the HTTP
// layer: signing and parsing bearer tokens and generating opaque keys.
package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-forum/models"
)

var (
	ErrInvalidJWTParams     = errors.New("invalid params for generating JWT Token")
	ErrInvalidAuthorization = errors.New("invalid authorization header")
	ErrTokenMissingAuthKey  = errors.New("token carries no authentication key")
	ErrTokenMissingSubject  = errors.New("empty subject error")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token wrapping an
// authentication key.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - ID        (jti): the authentication key stored in the database
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the expiration of the authentication key
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("go-forum", 42, key, time.Now().Add(time.Hour), "secret")
func GenerateJWTToken(issuer string, userID int64, authKey string, expiresAt time.Time, signKey string) (models.Token, error) {
	if issuer == "" || authKey == "" || expiresAt.IsZero() || signKey == "" {
		return models.Token{}, ErrInvalidJWTParams
	}

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ID:        authKey,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims,
		SignedString:     tokenString,
		UserID:           userID,
		AuthKey:          authKey,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification (HS256 only) using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim presence and check
//   - Subject (sub) conversion to int64 UserID
//   - ID (jti) presence, returned as AuthKey
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, ErrTokenMissingSubject
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to UserID: %w", err)
	}
	if claims.ID == "" {
		return models.Token{}, ErrTokenMissingAuthKey
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims,
		SignedString:     tokenString,
		UserID:           userID,
		AuthKey:          claims.ID,
	}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorization
	}
	return parts[1], nil
}
