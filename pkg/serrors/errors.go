package serrors

import (
	"errors"

	"github.com/iota-uz/go-i18n/v2/i18n"
)

// BaseError is a coded, localizable error. Sentinels are compared by identity.
type BaseError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	LocaleKey string `json:"locale_key,omitempty"`
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	return e.Message
}

// Localize renders the error through l, falling back to Message when the
// locale key is missing or no localizer is available.
func (e *BaseError) Localize(l *i18n.Localizer) string {
	if l == nil || e.LocaleKey == "" {
		return e.Message
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: e.LocaleKey})
	if err != nil || msg == "" {
		return e.Message
	}
	return msg
}

type wrappedError struct {
	base  *BaseError
	cause error
}

// Wrap ties a cause to a sentinel so that errors.Is matches both.
func Wrap(base *BaseError, cause error) error {
	if cause == nil {
		return base
	}
	return &wrappedError{base: base, cause: cause}
}

func (e *wrappedError) Error() string {
	return e.base.Message + ": " + e.cause.Error()
}

func (e *wrappedError) Unwrap() []error {
	return []error{e.base, e.cause}
}

// AsBase returns the first BaseError in err's chain.
func AsBase(err error) (*BaseError, bool) {
	var base *BaseError
	if errors.As(err, &base) {
		return base, true
	}
	return nil, false
}
