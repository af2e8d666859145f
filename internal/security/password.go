package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword : хэширует пароль через bcrypt
// Используется и для паролей пользователей, и для паролей приватных статей
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword : сверяет пароль с хэшем, plaintext нигде не сохраняется
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
