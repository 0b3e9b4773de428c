package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)

	token, err := GenerateJWTToken("test-issuer", 123, "key-123", expiresAt, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	require.NotNil(t, token.Token)
	assert.Equal(t, "test-issuer", token.Issuer)
	assert.Equal(t, "123", token.Subject)
	assert.Equal(t, "key-123", token.ID)
	assert.Equal(t, int64(123), token.UserID)
	assert.Equal(t, "key-123", token.AuthKey)
	assert.Equal(t, token.SignedString, token.String())
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)

	tests := []struct {
		name      string
		issuer    string
		authKey   string
		expiresAt time.Time
		signKey   string
	}{
		{"empty issuer", "", "k", expiresAt, "key"},
		{"empty auth key", "iss", "", expiresAt, "key"},
		{"zero expiration", "iss", "k", time.Time{}, "key"},
		{"empty sign key", "iss", "k", expiresAt, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 1, tt.authKey, tt.expiresAt, tt.signKey)
			assert.ErrorIs(t, err, ErrInvalidJWTParams)
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	generated, err := GenerateJWTToken("test-issuer", 456, "key-456", time.Now().Add(5*time.Minute), "secret-key")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, "secret-key", "test-issuer")
	require.NoError(t, err)

	assert.Equal(t, int64(456), parsed.UserID)
	assert.Equal(t, "key-456", parsed.AuthKey)
	assert.True(t, parsed.Valid)

	userID, err := parsed.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(456), userID)
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	valid, err := GenerateJWTToken("real-issuer", 1, "k", time.Now().Add(time.Hour), "key")
	require.NoError(t, err)
	expired, err := GenerateJWTToken("real-issuer", 1, "k", time.Now().Add(-time.Minute), "key")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		signKey string
		issuer  string
		wantErr error
	}{
		{name: "wrong key", token: valid.SignedString, signKey: "wrong-key", issuer: "real-issuer", wantErr: jwt.ErrTokenSignatureInvalid},
		{name: "wrong issuer", token: valid.SignedString, signKey: "key", issuer: "fake-issuer", wantErr: jwt.ErrTokenInvalidIssuer},
		{name: "expired", token: expired.SignedString, signKey: "key", issuer: "real-issuer", wantErr: jwt.ErrTokenExpired},
		{name: "malformed", token: "not.a.token", signKey: "key", issuer: "real-issuer", wantErr: jwt.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.signKey, tt.issuer)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateAndParseJWTToken_RequiresAuthKey(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, "key", "iss")
	assert.ErrorIs(t, err, ErrTokenMissingAuthKey)
}

func TestValidateAndParseJWTToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "1",
		ID:        "k",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("key"))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, "key", "iss")
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenUnverifiable))
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def", want: "abc.def"},
		{name: "lower-case scheme", header: "bearer abc", want: "abc"},
		{name: "surrounding spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "empty", header: "", wantErr: true},
		{name: "no token", header: "Bearer", wantErr: true},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: true},
		{name: "extra parts", header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAuthorization)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	a, b := g.Generate(), g.Generate()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
