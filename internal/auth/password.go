package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt digest of password. Applied once at
// registration; deliberately slow.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches the stored bcrypt digest.
// bcrypt performs its own constant-time comparison. Used only at login; there
// is no way to recover the original password.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
