package jsonschema

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// GetI18n returns an initialized internationalization bundle with embedded locales.
// The locale files are embedded into the binary, so a load failure here
// indicates a packaging bug rather than a runtime condition callers can recover from.
func GetI18n() *i18n.I18n {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)

	if err := bundle.LoadFS(localesFS, "locales/*.json"); err != nil {
		panic(err)
	}

	return bundle
}
