package security

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// dummyHash keeps CheckPassword doing a real bcrypt comparison even for
// accounts without a stored hash, so federated-only accounts are not
// distinguishable by response time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("job-portal-dummy"), bcryptCost)

func HashPassword(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether plaintext matches hash. An empty hash (a
// federated-only account) is an ordinary mismatch, never an error.
func CheckPassword(plaintext, hash string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plaintext))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
