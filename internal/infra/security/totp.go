package security

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// totpSecretBytes yields 32 base32 characters (160 bits of entropy).
const totpSecretBytes = 20

var b32NoPadding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateTOTPSecret returns a cryptographically random base32 secret.
func GenerateTOTPSecret() (string, error) {
	buf := make([]byte, totpSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("totp: generate secret: %w", err)
	}

	return b32NoPadding.EncodeToString(buf), nil
}

// TOTPCode computes the 6-digit code for the secret at the given time
// (30-second step, HMAC-SHA1).
func TOTPCode(secret string, at time.Time) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", fmt.Errorf("totp: secret is required")
	}

	code, err := totp.GenerateCode(secret, at)
	if err != nil {
		return "", fmt.Errorf("totp: generate code: %w", err)
	}

	return code, nil
}

// VerifyTOTP checks the submitted code against the secret at the given time,
// accepting codes within skew time steps on either side.
func VerifyTOTP(secret, code string, at time.Time, skew uint) bool {
	code = strings.TrimSpace(code)
	if code == "" || strings.TrimSpace(secret) == "" {
		return false
	}

	ok, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    30,
		Skew:      skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}

	return ok
}

// ProvisioningURI renders the otpauth enrollment URI for the secret, suitable
// for QR code rendering by a client.
func ProvisioningURI(secret, accountName, issuer string) (string, error) {
	raw, err := b32NoPadding.DecodeString(strings.ToUpper(secret))
	if err != nil {
		return "", fmt.Errorf("totp: decode secret: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Secret:      raw,
	})
	if err != nil {
		return "", fmt.Errorf("totp: build provisioning uri: %w", err)
	}

	return key.URL(), nil
}
