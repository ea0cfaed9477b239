// Package password provides password hashing, policy validation, strength
// scoring, crack-time estimation, and secure password generation.
//
// Hashing uses bcrypt with a fixed vetted cost factor. Policy validation
// never fails with an error: it always returns a structured Result the
// caller decides how to act on.
//
// # Usage
//
//	hasher := password.NewHasher()
//
//	hash, err := hasher.Hash("Str0ng!Pass")
//	if err != nil {
//		return err
//	}
//
//	if !hasher.Verify("Str0ng!Pass", hash) {
//		// invalid credentials
//	}
//
// Policy validation with scoring:
//
//	result := password.Validate("Str0ng!Pass", password.DefaultConfig())
//	if !result.Valid {
//		// result.Errors lists every failed requirement
//	}
//	// result.Score is 0 (weakest) to 5 (strongest)
package password
