// Package validate holds the local form checks. A value that fails
// here never reaches the network layer.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const passwordSpecials = "@$!%*?&"

func Description(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a descrição não pode estar vazia")
	}
	return nil
}

func Username(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("o nome de utilizador é obrigatório")
	}
	return nil
}

func Email(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("o email é obrigatório")
	}
	if !emailPattern.MatchString(s) {
		return fmt.Errorf("o email não é válido")
	}
	return nil
}

// Password enforces the backend's complexity rule: at least 8
// characters drawn from letters, digits and @$!%*?&, with at least one
// of each class present.
func Password(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("a palavra-passe deve ter pelo menos 8 caracteres")
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r) && r <= unicode.MaxASCII:
			hasLower = true
		case unicode.IsUpper(r) && r <= unicode.MaxASCII:
			hasUpper = true
		case unicode.IsDigit(r) && r <= unicode.MaxASCII:
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		default:
			return fmt.Errorf("a palavra-passe contém caracteres não permitidos")
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return fmt.Errorf("a palavra-passe deve incluir maiúsculas, minúsculas, números e um de %s", passwordSpecials)
	}
	return nil
}
