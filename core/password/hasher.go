package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor. 12 keeps hashing around 250ms on
// current hardware, which is the OWASP-recommended range for interactive
// logins.
const hashCost = 12

// bcrypt operates on at most 72 bytes of input.
const maxPasswordLength = 72

var (
	// ErrEmptyPassword is returned when attempting to hash an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")
	// ErrPasswordTooLong is returned when the password exceeds the 72-byte bcrypt limit.
	ErrPasswordTooLong = errors.New("password exceeds maximum length of 72 bytes")
	// ErrHashingFailed is returned when the underlying hash primitive fails.
	ErrHashingFailed = errors.New("failed to hash password")
)

// Hasher hashes and verifies passwords using bcrypt.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the vetted default cost factor.
func NewHasher() *Hasher {
	return &Hasher{cost: hashCost}
}

// Hash produces a salted, one-way bcrypt hash of the password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Join(ErrHashingFailed, err)
	}
	return string(hash), nil
}

// Verify reports whether the password matches the hash.
// The comparison is constant-time via the bcrypt primitive.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DummyHash returns a valid bcrypt hash of random-looking material that no
// real password will ever match. Authentication code verifies against it
// when a user lookup fails, keeping response times uniform and preventing
// account enumeration through timing.
func DummyHash() string {
	return "$2a$12$abcdefghijklmnopqrstuvABCDEFGHIJKLMNOPQRSTUVWXYZabcde"
}
