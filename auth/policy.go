package auth

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/livrolivre/go-library-server/internal/config"
	apperrors "github.com/livrolivre/go-library-server/internal/errors"
)

// specialChars is the punctuation set accepted by the special-character rule.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// PasswordPolicy is the configurable strength predicate applied to every new
// password, at sign-up and at password change alike.
type PasswordPolicy struct {
	MinLength          int
	RequireUppercase   bool
	RequireNumber      bool
	RequireSpecialChar bool
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:          8,
		RequireUppercase:   true,
		RequireNumber:      true,
		RequireSpecialChar: true,
	}
}

// PolicyFromConfig resolves the policy once at service construction; it is
// never re-read per call.
func PolicyFromConfig(cfg config.SecurityConfig) PasswordPolicy {
	return PasswordPolicy{
		MinLength:          cfg.GetPasswordMinLength(),
		RequireUppercase:   cfg.GetPasswordRequireUppercase(),
		RequireNumber:      cfg.GetPasswordRequireNumber(),
		RequireSpecialChar: cfg.GetPasswordRequireSpecialChar(),
	}
}

// Validate evaluates every configured rule and reports all unmet ones in a
// single combined message, phrased for end-user display.
func (p PasswordPolicy) Validate(password string) error {
	var (
		hasUpper   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		} else if strings.ContainsRune(specialChars, char) {
			hasSpecial = true
		}
	}

	var reasons []string
	if len(password) < p.MinLength {
		reasons = append(reasons, fmt.Sprintf("password must be at least %d characters long", p.MinLength))
	}
	if p.RequireUppercase && !hasUpper {
		reasons = append(reasons, "password must contain at least one uppercase letter")
	}
	if p.RequireNumber && !hasNumber {
		reasons = append(reasons, "password must contain at least one number")
	}
	if p.RequireSpecialChar && !hasSpecial {
		reasons = append(reasons, fmt.Sprintf("password must contain at least one special character (%s)", specialChars))
	}

	if len(reasons) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidPassword, strings.Join(reasons, " "))
	}
	return nil
}
