package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher derives and checks password hashes for stored accounts.
//
// Scheme:
//
//	salt = GenerateSalt()                  (per user, stored next to the hash)
//	hash = HashPassword(password, salt)    (stored hex-encoded)
//	ok   = VerifyPassword(password, salt, hash)
type PasswordHasher interface {
	// GenerateSalt returns 16 random bytes from the OS CSPRNG.
	GenerateSalt() ([]byte, error)

	// HashPassword derives a 32-byte key from password and salt with Argon2id.
	HashPassword(password string, salt []byte) []byte

	// VerifyPassword reports whether password hashes to hash under salt.
	// The comparison runs in constant time.
	VerifyPassword(password string, salt, hash []byte) bool
}
