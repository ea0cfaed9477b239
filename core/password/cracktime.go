package password

import (
	"fmt"
	"math"
)

// guessesPerSecond is the assumed offline attack rate.
const guessesPerSecond = 1e9

// Charset sizes per character class.
const (
	lowercaseCharset = 26
	uppercaseCharset = 26
	digitCharset     = 10
	symbolCharset    = 32
)

// Estimate describes how long a brute-force attack would take.
type Estimate struct {
	// EntropyBits is log2(charsetSize^length).
	EntropyBits float64 `json:"entropy_bits"`
	// Seconds is the raw time to exhaust the search space at 1e9 guesses/sec.
	Seconds float64 `json:"seconds"`
	// Display is a human-readable rendering of Seconds.
	Display string `json:"display"`
}

// EstimateCrackTime computes a brute-force time estimate from the
// password's length and the character classes it draws from.
func EstimateCrackTime(password string) Estimate {
	if password == "" {
		return Estimate{Display: "instant"}
	}

	classes := classify(password)
	charset := 0
	if classes.lower {
		charset += lowercaseCharset
	}
	if classes.upper {
		charset += uppercaseCharset
	}
	if classes.digit {
		charset += digitCharset
	}
	if classes.symbol {
		charset += symbolCharset
	}

	entropy := float64(len(password)) * math.Log2(float64(charset))
	seconds := math.Pow(2, entropy) / guessesPerSecond

	return Estimate{
		EntropyBits: entropy,
		Seconds:     seconds,
		Display:     humanDuration(seconds),
	}
}

func humanDuration(seconds float64) string {
	const (
		minute  = 60
		hour    = 60 * minute
		day     = 24 * hour
		year    = 365 * day
		century = 100 * year
	)

	switch {
	case seconds < 1:
		return "instant"
	case seconds < minute:
		return fmt.Sprintf("%.0f seconds", seconds)
	case seconds < hour:
		return fmt.Sprintf("%.0f minutes", seconds/minute)
	case seconds < day:
		return fmt.Sprintf("%.0f hours", seconds/hour)
	case seconds < year:
		return fmt.Sprintf("%.0f days", seconds/day)
	case seconds < century:
		return fmt.Sprintf("%.0f years", seconds/year)
	default:
		return "centuries"
	}
}
