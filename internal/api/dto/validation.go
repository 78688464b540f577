package dto

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	apperrors "github.com/spec-kit/admission-service/pkg/util/errorutil"
)

// fieldErrors collects per-field validation messages keyed by JSON name.
type fieldErrors map[string]any

func (f fieldErrors) length(field, value string, min, max int) {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	switch {
	case n == 0 && min > 0:
		f[field] = "is required"
	case n < min:
		f[field] = fmt.Sprintf("must be at least %d characters", min)
	case max > 0 && n > max:
		f[field] = fmt.Sprintf("must be at most %d characters", max)
	}
}

func (f fieldErrors) email(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		f[field] = "is required"
		return
	}
	if len(value) > 254 || !isEmail(value) {
		f[field] = "must be a valid email address"
	}
}

func (f fieldErrors) oneOf(field string, ok bool, allowed ...string) {
	if !ok {
		f[field] = "must be one of " + strings.Join(allowed, ", ")
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError("request validation failed", f)
}

// isEmail accepts a bare addr-spec with a dotted domain; display names and
// angle brackets are rejected.
func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	_, domain, found := strings.Cut(addr.Address, "@")
	return found && strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}
