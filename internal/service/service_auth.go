package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-forum/internal/config"
	"github.com/MKhiriev/go-forum/internal/crypto"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/internal/store"
	"github.com/MKhiriev/go-forum/internal/utils"
	"github.com/MKhiriev/go-forum/models"
)

// keyGenerator produces opaque authentication key values.
type keyGenerator interface {
	Generate() string
}

// authService is the concrete implementation of AuthService.
// It handles user registration, password verification and the lifecycle of
// authentication keys. Every issued key is persisted through the
// AuthKeyRepository and handed to the client wrapped in a signed JWT.
type authService struct {
	userRepository    store.UserRepository
	authKeyRepository store.AuthKeyRepository

	hasher crypto.PasswordHasher
	keys   keyGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued authentication key
	// remains valid.
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	authKeyRepository store.AuthKeyRepository,
	hasher crypto.PasswordHasher,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:    userRepository,
		authKeyRepository: authKeyRepository,
		hasher:            hasher,
		keys:              utils.NewUUIDGenerator(),
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		now:               time.Now,
		logger:            logger,
	}
}

// RegisterUser creates a new user account.
//
// The password is hashed with Argon2id under a fresh random salt; both are
// stored hex-encoded. Returns the persisted user (with a server-assigned
// UserID) or:
//   - ErrInvalidDataProvided if Username or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. username
//     already taken, see store.ErrUsernameAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, newUser models.NewUser) (models.User, error) {
	log := logger.FromContext(ctx)

	if newUser.Username == "" || newUser.Password == "" {
		log.Error().Str("username", newUser.Username).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	salt, err := a.hasher.GenerateSalt()
	if err != nil {
		return models.User{}, fmt.Errorf("error generating password salt: %w", err)
	}

	user := models.User{
		Username:     newUser.Username,
		Email:        newUser.Email,
		PasswordHash: hex.EncodeToString(a.hasher.HashPassword(newUser.Password, salt)),
		PasswordSalt: hex.EncodeToString(salt),
		RegisteredAt: a.now().UTC(),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login verifies the credentials and issues a new authentication key valid
// for tokenDuration, returned wrapped in a signed token.
//
// An unknown username and a wrong password both yield ErrWrongPassword.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" || request.Password == "" {
		log.Error().Str("username", request.Username).Msg("invalid login data provided")
		return models.Token{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, request.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.Token{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("user search by username failed")
		return models.Token{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.checkPassword(foundUser, request.Password) {
		log.Warn().Int64("id", foundUser.UserID).Str("username", foundUser.Username).Msg("wrong password")
		return models.Token{}, ErrWrongPassword
	}

	key, err := a.authKeyRepository.SaveKey(ctx, models.AuthKey{
		UserID:     foundUser.UserID,
		Key:        a.keys.Generate(),
		Expiration: a.now().Add(a.tokenDuration).UTC(),
	})
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("saving authentication key failed")
		return models.Token{}, fmt.Errorf("saving authentication key failed: %w", err)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, foundUser.UserID, key.Key, key.Expiration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (a *authService) checkPassword(user models.User, password string) bool {
	salt, err := hex.DecodeString(user.PasswordSalt)
	if err != nil {
		return false
	}
	hash, err := hex.DecodeString(user.PasswordHash)
	if err != nil {
		return false
	}
	return a.hasher.VerifyPassword(password, salt, hash)
}

// Authenticate resolves a bearer token to a session.
//
// The token signature and issuer are verified first; then the wrapped
// authentication key must still be present and unexpired, and must belong to
// the token's subject. Any failure is normalised to
// ErrTokenIsExpiredOrInvalid; only unexpected storage errors are returned
// as-is.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Session, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Session{}, ErrTokenIsExpiredOrInvalid
	}

	key, err := a.authKeyRepository.FindValidKey(ctx, token.AuthKey, a.now())
	switch {
	case errors.Is(err, store.ErrAuthKeyNotFound):
		return models.Session{}, ErrTokenIsExpiredOrInvalid
	case err != nil:
		return models.Session{}, fmt.Errorf("authentication key lookup failed: %w", err)
	case key.UserID != token.UserID:
		return models.Session{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, key.UserID)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.Session{}, ErrTokenIsExpiredOrInvalid
	case err != nil:
		return models.Session{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return models.Session{User: user, AuthKey: key.Key}, nil
}

// Logout revokes the authentication key of the session.
func (a *authService) Logout(ctx context.Context, session models.Session) error {
	err := a.authKeyRepository.DeleteKey(ctx, session.AuthKey)
	if errors.Is(err, store.ErrAuthKeyNotFound) {
		return ErrTokenIsExpiredOrInvalid
	}
	return err
}

func (a *authService) HasPrivilege(ctx context.Context, userID int64, privilege string) (bool, error) {
	privileges, err := a.userRepository.Privileges(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("privileges lookup failed: %w", err)
	}
	return slices.Contains(privileges, privilege), nil
}
