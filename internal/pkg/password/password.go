// Package password хэширует и сверяет пароли через bcrypt.
package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost — стоимость bcrypt по умолчанию.
const DefaultCost = 12

// Hasher хэширует пароли с заданной стоимостью.
type Hasher struct {
	cost int
}

// New создаёт хэшер; cost вне допустимого диапазона bcrypt заменяется на DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash возвращает bcrypt-хэш пароля.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify сообщает, подходит ли пароль к хэшу.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
