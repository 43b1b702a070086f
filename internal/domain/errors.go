package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists — email уже занят.
	ErrUserExists = errors.New("user with this email already exists")
	// ErrInvalidCredentials — неверный email или пароль.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized — токен отсутствует, просрочен, отозван или невалиден.
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldErrors — ошибки валидации по полям запроса (поле → сообщение).
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err возвращает nil для пустого набора, чтобы валидатор можно было вернуть как error.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
