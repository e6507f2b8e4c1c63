package forum

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes and verifies account passwords with bcrypt.
type PasswordHasher struct {
	Cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{Cost: bcrypt.DefaultCost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
