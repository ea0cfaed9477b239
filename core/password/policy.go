package password

import (
	"fmt"
	"strings"
	"unicode"
)

// Config holds password policy requirements.
// Each character-class requirement is independently togglable.
type Config struct {
	MinLength        int  `env:"PASSWORD_MIN_LENGTH" envDefault:"8"`
	RequireUppercase bool `env:"PASSWORD_REQUIRE_UPPERCASE" envDefault:"true"`
	RequireLowercase bool `env:"PASSWORD_REQUIRE_LOWERCASE" envDefault:"true"`
	RequireDigit     bool `env:"PASSWORD_REQUIRE_DIGIT" envDefault:"true"`
	RequireSymbol    bool `env:"PASSWORD_REQUIRE_SYMBOL" envDefault:"false"`
}

// DefaultConfig returns the default password policy.
func DefaultConfig() Config {
	return Config{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigit:     true,
		RequireSymbol:    false,
	}
}

// Result is the outcome of policy validation. Validation never fails with
// an error; callers inspect Valid and Errors.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
	// Score grades strength from 0 (weakest) to 5 (strongest).
	Score int `json:"score"`
}

// charClasses summarizes which character classes a password contains.
type charClasses struct {
	upper, lower, digit, symbol bool
}

func classify(password string) charClasses {
	var c charClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsDigit(r):
			c.digit = true
		default:
			c.symbol = true
		}
	}
	return c
}

func (c charClasses) count() int {
	n := 0
	for _, present := range []bool{c.upper, c.lower, c.digit, c.symbol} {
		if present {
			n++
		}
	}
	return n
}

// Validate checks the password against the policy and produces a Result
// with a 0-5 strength score. Length bonuses apply at 12 and 16 characters;
// detected patterns and denylisted passwords are penalized.
func Validate(password string, cfg Config) Result {
	var errs []string

	if len(password) < cfg.MinLength {
		errs = append(errs, fmt.Sprintf("password must be at least %d characters long", cfg.MinLength))
	}

	classes := classify(password)
	if cfg.RequireUppercase && !classes.upper {
		errs = append(errs, "password must contain an uppercase letter")
	}
	if cfg.RequireLowercase && !classes.lower {
		errs = append(errs, "password must contain a lowercase letter")
	}
	if cfg.RequireDigit && !classes.digit {
		errs = append(errs, "password must contain a digit")
	}
	if cfg.RequireSymbol && !classes.symbol {
		errs = append(errs, "password must contain a symbol")
	}

	common := isCommon(password)
	if common {
		errs = append(errs, "password is too common")
	}

	pattern := hasSequentialPattern(password) || hasKeyboardPattern(password) || hasRepeatedRun(password)
	if pattern {
		errs = append(errs, "password contains a predictable pattern")
	}

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
		Score:  score(password, cfg, classes, common, pattern),
	}
}

// score computes the 0-5 strength grade.
func score(password string, cfg Config, classes charClasses, common, pattern bool) int {
	s := 0
	if len(password) >= cfg.MinLength {
		s++
	}
	if classes.count() >= 3 {
		s++
	}
	if classes.count() == 4 {
		s++
	}
	if len(password) >= 12 {
		s++
	}
	if len(password) >= 16 {
		s++
	}

	if common {
		s -= 2
	}
	if pattern {
		s -= 2
	}
	if s < 0 {
		s = 0
	}
	if common && s > 1 {
		s = 1
	}
	return s
}

// hasSequentialPattern detects ascending or descending runs of four or more
// consecutive characters, such as "abcd" or "9876".
func hasSequentialPattern(password string) bool {
	const runLength = 4

	runes := []rune(strings.ToLower(password))
	if len(runes) < runLength {
		return false
	}

	asc, desc := 1, 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1]+1 {
			asc++
			desc = 1
		} else if runes[i] == runes[i-1]-1 {
			desc++
			asc = 1
		} else {
			asc, desc = 1, 1
		}
		if asc >= runLength || desc >= runLength {
			return true
		}
	}
	return false
}

// keyboardRows are the physical QWERTY rows used for adjacency detection.
var keyboardRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"1234567890",
}

// hasKeyboardPattern detects four or more characters walked along a
// keyboard row in either direction, such as "qwer" or "lkjh".
func hasKeyboardPattern(password string) bool {
	const runLength = 4

	lower := strings.ToLower(password)
	if len(lower) < runLength {
		return false
	}

	for _, row := range keyboardRows {
		reversed := reverse(row)
		for i := 0; i+runLength <= len(lower); i++ {
			fragment := lower[i : i+runLength]
			if strings.Contains(row, fragment) || strings.Contains(reversed, fragment) {
				return true
			}
		}
	}
	return false
}

// hasRepeatedRun detects four or more identical characters in a row.
func hasRepeatedRun(password string) bool {
	const runLength = 4

	runes := []rune(password)
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= runLength {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
