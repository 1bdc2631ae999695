package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	LoggerKey    ContextKey = "logger"
	RequestStart ContextKey = "requestStart"
	ParamsKey    ContextKey = "params"
	LocalizerKey ContextKey = "localizer"
	LocaleKey    ContextKey = "locale"
	AppKey       ContextKey = "app"
)

const (
	// FlashNoticeKey names the cookie carrying the post-redirect notice.
	FlashNoticeKey = "notice"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())
