// Package i18n is the catalog of server-composed text: mail subjects and
// bodies, error responses and date formatting.
package i18n

import (
	"embed"
	"fmt"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/diagnosis/elsabor-web/pkg/logger"
)

//go:embed active.*.toml
var catalogFS embed.FS

// Catalog wraps a go-i18n bundle with a default language.
type Catalog struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

// NewCatalog loads the embedded message files.
func NewCatalog(defaultLang string) (*Catalog, error) {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("i18n: invalid default language %q: %w", defaultLang, err)
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.es.toml", "active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(catalogFS, file); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", file, err)
		}
	}
	return &Catalog{bundle: bundle, defaultLang: tag}, nil
}

// Default is the catalog's fallback language.
func (c *Catalog) Default() string {
	return c.defaultLang.String()
}

// T renders message id for lang. Missing translations fall back to the
// default language, then to the id itself.
func (c *Catalog) T(lang, id string, data map[string]any) string {
	if id == "" {
		return ""
	}
	loc := i18n.NewLocalizer(c.bundle, lang, c.defaultLang.String())
	msg, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		logger.Warn("i18n: localize failed", "id", id, "lang", lang, "error", err)
		return id
	}
	return msg
}

// LongDate formats t with the weekday and month spelled out, e.g.
// "miércoles, 21 de octubre de 2026" or "Wednesday, October 21, 2026".
func (c *Catalog) LongDate(lang string, t time.Time) string {
	return c.T(lang, "date_long", map[string]any{
		"Weekday": c.T(lang, fmt.Sprintf("weekday_%d", int(t.Weekday())), nil),
		"Day":     t.Day(),
		"Month":   c.T(lang, fmt.Sprintf("month_%d", int(t.Month())), nil),
		"Year":    t.Year(),
	})
}

// DateTime formats t numerically with the clock time, in lang's convention.
func (c *Catalog) DateTime(lang string, t time.Time) string {
	return t.Format(c.T(lang, "date_time_layout", nil))
}
