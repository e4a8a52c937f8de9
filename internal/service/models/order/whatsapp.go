package order

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidWhatsapp = errors.New("invalid whatsapp number")

	whatsappPattern = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)
)

// NormalizeWhatsapp strips all whitespace from the given contact number and
// validates the result against the accepted phone format.
func NormalizeWhatsapp(s string) (string, error) {
	normalized := strings.Join(strings.Fields(s), "")
	if !whatsappPattern.MatchString(normalized) {
		return "", ErrInvalidWhatsapp
	}

	return normalized, nil
}
