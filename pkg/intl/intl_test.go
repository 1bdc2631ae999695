package intl

import (
	"context"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestGetSupportedLanguages(t *testing.T) {
	require.Len(t, GetSupportedLanguages(nil), 2)

	only := GetSupportedLanguages([]string{"zh", "fr"})
	require.Len(t, only, 1)
	require.Equal(t, "zh", only[0].Code)
}

func TestT(t *testing.T) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.MustParseMessageFileBytes([]byte(`Greeting = "Hello {{.Name}}"`), "en.toml")
	l := i18n.NewLocalizer(bundle, "en")

	require.Equal(t, "Hello Ada", T(l, "Greeting", map[string]string{"Name": "Ada"}))
	require.Equal(t, "Missing.Key", T(l, "Missing.Key"))
	require.Equal(t, "Greeting", T(nil, "Greeting"))
}

func TestLocalizerContext(t *testing.T) {
	_, ok := UseLocalizer(context.Background())
	require.False(t, ok)

	bundle := i18n.NewBundle(language.English)
	ctx := WithLocalizer(context.Background(), i18n.NewLocalizer(bundle, "en"))
	_, ok = UseLocalizer(ctx)
	require.True(t, ok)

	require.Equal(t, language.English, UseLocale(context.Background()))
	require.Equal(t, language.Chinese, UseLocale(WithLocale(context.Background(), language.Chinese)))
}
