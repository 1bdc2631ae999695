package intl

import (
	"context"
	"errors"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/iota-uz/employee-directory/pkg/constants"
)

var ErrNoLocalizer = errors.New("localizer not found")

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

var allSupportedLanguages = []SupportedLanguage{
	{
		Code:        "en",
		VerboseName: "English",
		Tag:         language.English,
	},
	{
		Code:        "zh",
		VerboseName: "中文",
		Tag:         language.Chinese,
	},
}

// GetSupportedLanguages filters the known languages by whitelist, keeping
// all of them when the whitelist is empty.
func GetSupportedLanguages(whitelist []string) []SupportedLanguage {
	if len(whitelist) == 0 {
		return allSupportedLanguages
	}

	whitelistMap := make(map[string]bool, len(whitelist))
	for _, code := range whitelist {
		whitelistMap[code] = true
	}

	filtered := make([]SupportedLanguage, 0, len(whitelist))
	for _, lang := range allSupportedLanguages {
		if whitelistMap[lang.Code] {
			filtered = append(filtered, lang)
		}
	}
	return filtered
}

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, constants.LocalizerKey, l)
}

func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(constants.LocalizerKey).(*i18n.Localizer)
	return l, ok && l != nil
}

func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, constants.LocaleKey, tag)
}

func UseLocale(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(constants.LocaleKey).(language.Tag); ok {
		return tag
	}
	return language.English
}

// T localizes messageID, returning the id itself when translation fails.
func T(l *i18n.Localizer, messageID string, data ...map[string]string) string {
	if l == nil {
		return messageID
	}
	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := l.Localize(cfg)
	if err != nil || msg == "" {
		return messageID
	}
	return msg
}
