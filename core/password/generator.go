package password

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// DefaultGeneratedLength is the length used when Generate is called with
// a length below the minimum.
const DefaultGeneratedLength = 16

// minGeneratedLength guarantees room for one character from each class.
const minGeneratedLength = 8

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*()-_=+[]{}<>?"
)

// ErrGenerationRandomness is returned when the system randomness source fails.
var ErrGenerationRandomness = errors.New("failed to read random source")

// Generate produces a cryptographically random password of the given length
// containing at least one character from each class. Lengths below 8 are
// raised to DefaultGeneratedLength.
func Generate(length int) (string, error) {
	if length < minGeneratedLength {
		length = DefaultGeneratedLength
	}

	all := lowercaseChars + uppercaseChars + digitChars + symbolChars

	out := make([]byte, 0, length)

	// One guaranteed character per class, the rest drawn from the full set.
	for _, set := range []string{lowercaseChars, uppercaseChars, digitChars, symbolChars} {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < length {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates shuffle so the guaranteed characters are not positional.
	for i := len(out) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}

	return string(out), nil
}

func randomChar(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, errors.Join(ErrGenerationRandomness, err)
	}
	return int(n.Int64()), nil
}
