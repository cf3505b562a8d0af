package security

import (
	"fmt"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// PasswordPolicy validates candidate passwords at registration time.
type PasswordPolicy struct {
	MinLength int
	MinScore  int
}

// NewPasswordPolicy constructs a policy, applying a floor on minimum length.
func NewPasswordPolicy(minLength, minScore int) *PasswordPolicy {
	if minLength < 8 {
		minLength = 8
	}
	if minScore < 0 {
		minScore = 0
	}
	return &PasswordPolicy{MinLength: minLength, MinScore: minScore}
}

// Validate returns an error describing the first violated rule.
func (p *PasswordPolicy) Validate(password string) error {
	if p == nil {
		return fmt.Errorf("password policy not configured")
	}
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters", p.MinLength)
	}

	if p.MinScore > 0 {
		strength := zxcvbn.PasswordStrength(password, nil)
		if strength.Score < p.MinScore {
			return fmt.Errorf("password is too weak")
		}
	}

	return nil
}
