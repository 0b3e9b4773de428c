package crypto

import (
	"bytes"
	"testing"
)

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	hasher := NewPasswordHasher()

	s1, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	s2, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}

	if len(s1) != 16 {
		t.Fatalf("salt length = %d, want 16", len(s1))
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestHashPassword_DeterministicForSameInputs(t *testing.T) {
	hasher := NewPasswordHasher()

	password := "correct horse battery staple"
	salt := bytes.Repeat([]byte{0xAB}, 16)

	h1 := hasher.HashPassword(password, salt)
	h2 := hasher.HashPassword(password, salt)

	if len(h1) != 32 {
		t.Fatalf("hash length = %d, want 32", len(h1))
	}
	if !bytes.Equal(h1, h2) {
		t.Fatalf("expected hashes to match for same password+salt")
	}
}

func TestHashPassword_DifferentSaltProducesDifferentHash(t *testing.T) {
	hasher := NewPasswordHasher()

	h1 := hasher.HashPassword("same password", bytes.Repeat([]byte{0x01}, 16))
	h2 := hasher.HashPassword("same password", bytes.Repeat([]byte{0x02}, 16))

	if bytes.Equal(h1, h2) {
		t.Fatalf("expected different hashes for different salts")
	}
}

func TestVerifyPassword(t *testing.T) {
	hasher := NewPasswordHasher()
	salt := bytes.Repeat([]byte{0x07}, 16)
	hash := hasher.HashPassword("s3cret-pass", salt)

	tests := []struct {
		name     string
		password string
		salt     []byte
		hash     []byte
		want     bool
	}{
		{name: "matching password", password: "s3cret-pass", salt: salt, hash: hash, want: true},
		{name: "wrong password", password: "s3cret-pasS", salt: salt, hash: hash, want: false},
		{name: "wrong salt", password: "s3cret-pass", salt: bytes.Repeat([]byte{0x08}, 16), hash: hash, want: false},
		{name: "truncated hash", password: "s3cret-pass", salt: salt, hash: hash[:16], want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasher.VerifyPassword(tt.password, tt.salt, tt.hash); got != tt.want {
				t.Fatalf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}
