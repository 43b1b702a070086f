package auth

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"exprCalc/internal/domain"
)

// Ограничения полей. 72 байта — предел bcrypt.
const (
	minNameLen     = 2
	maxNameLen     = 150
	minPasswordLen = 8
	maxPasswordLen = 72
)

var emailRe = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// blockedDomains — одноразовые почтовые сервисы.
var blockedDomains = map[string]struct{}{
	"10minutemail.com":  {},
	"tempmail.org":      {},
	"guerrillamail.com": {},
}

// Поля формы.
const (
	fieldName            = "name"
	fieldEmail           = "email"
	fieldPassword        = "password"
	fieldConfirmPassword = "confirm_password"
)

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// checkName возвращает обрезанное имя или текст ошибки.
func checkName(raw string) (string, string) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", "name must not be empty"
	}
	n := utf8.RuneCountInString(name)
	if n < minNameLen {
		return "", "name must be at least 2 characters"
	}
	if n > maxNameLen {
		return "", "name must be at most 150 characters"
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '\'' && r != '-' && r != '.' {
			return "", "name may contain only letters, spaces, apostrophes, hyphens and dots"
		}
	}
	return name, ""
}

// checkEmail возвращает email в нижнем регистре или текст ошибки.
func checkEmail(raw string) (string, string) {
	email := normalizeEmail(raw)
	if email == "" {
		return "", "email must not be empty"
	}
	if !emailRe.MatchString(email) {
		return "", "enter a valid email, e.g. user@example.com"
	}
	if _, blocked := blockedDomains[email[strings.LastIndexByte(email, '@')+1:]]; blocked {
		return "", "this email provider is not allowed"
	}
	return email, ""
}

func checkPassword(pw string) string {
	switch {
	case pw == "":
		return "password must not be empty"
	case len(pw) < minPasswordLen:
		return "password must be at least 8 characters"
	case len(pw) > maxPasswordLen:
		return "password must be at most 72 bytes"
	case strings.TrimFunc(pw, unicode.IsDigit) == "":
		return "password must not be entirely numeric"
	}
	return ""
}

// validateRegister нормализует данные регистрации и собирает ошибки по всем полям сразу.
func validateRegister(in domain.RegisterInput) (domain.RegisterInput, error) {
	errs := domain.FieldErrors{}
	name, msg := checkName(in.Name)
	if msg != "" {
		errs[fieldName] = msg
	}
	email, msg := checkEmail(in.Email)
	if msg != "" {
		errs[fieldEmail] = msg
	}
	if msg := checkPassword(in.Password); msg != "" {
		errs[fieldPassword] = msg
	}
	if in.ConfirmPassword != "" && in.ConfirmPassword != in.Password {
		errs[fieldConfirmPassword] = "passwords do not match"
	}
	in.Name, in.Email = name, email
	return in, errs.Err()
}

// validateUpdate проверяет только переданные поля и возвращает нормализованную копию.
func validateUpdate(in domain.UpdateProfileInput) (domain.UpdateProfileInput, error) {
	errs := domain.FieldErrors{}
	var out domain.UpdateProfileInput
	if in.Name != nil {
		name, msg := checkName(*in.Name)
		if msg != "" {
			errs[fieldName] = msg
		}
		out.Name = &name
	}
	if in.Email != nil {
		email, msg := checkEmail(*in.Email)
		if msg != "" {
			errs[fieldEmail] = msg
		}
		out.Email = &email
	}
	return out, errs.Err()
}
