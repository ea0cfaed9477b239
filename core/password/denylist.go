package password

import "strings"

// commonPasswords is a denylist of frequently breached passwords.
// Comparison is case-insensitive.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"passw0rd":    {},
	"123456":      {},
	"1234567":     {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty":      {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"abc123":      {},
	"iloveyou":    {},
	"admin":       {},
	"admin123":    {},
	"welcome":     {},
	"welcome1":    {},
	"monkey":      {},
	"dragon":      {},
	"letmein":     {},
	"sunshine":    {},
	"princess":    {},
	"football":    {},
	"baseball":    {},
	"superman":    {},
	"batman":      {},
	"trustno1":    {},
	"shadow":      {},
	"master":      {},
	"michael":     {},
	"jennifer":    {},
	"jordan":      {},
	"hunter2":     {},
	"charlie":     {},
	"starwars":    {},
	"whatever":    {},
	"freedom":     {},
	"secret":      {},
	"login":       {},
}

// isCommon reports whether the password appears in the denylist.
func isCommon(password string) bool {
	_, found := commonPasswords[strings.ToLower(password)]
	return found
}
