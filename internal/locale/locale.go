// Package locale resolves the per-language dictionaries of display strings
// used by the page templates.
//
// Dictionaries live in flat TOML files named {lang}.toml. They are read on
// every request, so editing a file takes effect without a restart.
package locale

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/diagnosis/elsabor-web/pkg/logger"
)

// Dictionary maps a key to a display string for one language.
type Dictionary map[string]string

// Get returns the value for key, or fallback when the key is missing or empty.
func (d Dictionary) Get(key, fallback string) string {
	if v, ok := d[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Resolver loads dictionaries from a file system.
type Resolver struct {
	fsys        fs.FS
	defaultLang string
	supported   []string
}

// NewResolver validates the language codes and returns a Resolver reading
// {lang}.toml files from fsys.
func NewResolver(fsys fs.FS, defaultLang string, supported []string) (*Resolver, error) {
	if fsys == nil {
		return nil, fmt.Errorf("locale: nil file system")
	}
	r := &Resolver{fsys: fsys}

	for _, code := range supported {
		norm, err := normalize(code)
		if err != nil {
			return nil, err
		}
		r.supported = append(r.supported, norm)
	}

	def, err := normalize(defaultLang)
	if err != nil {
		return nil, err
	}
	r.defaultLang = def
	if !r.IsSupported(def) {
		return nil, fmt.Errorf("locale: default language %q is not supported", def)
	}
	return r, nil
}

func normalize(code string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("locale: invalid language code %q: %w", code, err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// Default is the language bound to unprefixed routes.
func (r *Resolver) Default() string {
	return r.defaultLang
}

// Supported lists the accepted language codes.
func (r *Resolver) Supported() []string {
	out := make([]string, len(r.supported))
	copy(out, r.supported)
	return out
}

// IsSupported reports whether lang is one of the configured codes. The match
// is exact: "en-US" or "EN" are not accepted as a route prefix.
func (r *Resolver) IsSupported(lang string) bool {
	for _, s := range r.supported {
		if s == lang {
			return true
		}
	}
	return false
}

// LangPath is the URL prefix for links in lang: empty for the default language.
func (r *Resolver) LangPath(lang string) string {
	if lang == r.defaultLang {
		return ""
	}
	return "/" + lang
}

// Load returns the dictionary for lang. Unsupported codes and unreadable or
// malformed files yield the default-language dictionary instead. Load never
// fails; if even the default file is broken the result is empty.
func (r *Resolver) Load(ctx context.Context, lang string) Dictionary {
	if r.IsSupported(lang) {
		dict, err := r.read(lang)
		if err == nil {
			return dict
		}
		if lang != r.defaultLang {
			logger.WarnContext(ctx, "Locale resource unavailable, falling back to default", "lang", lang, "error", err)
		} else {
			logger.ErrorContext(ctx, "Default locale resource unavailable", "lang", lang, "error", err)
			return Dictionary{}
		}
	}

	dict, err := r.read(r.defaultLang)
	if err != nil {
		logger.ErrorContext(ctx, "Default locale resource unavailable", "lang", r.defaultLang, "error", err)
		return Dictionary{}
	}
	return dict
}

func (r *Resolver) read(lang string) (Dictionary, error) {
	raw, err := fs.ReadFile(r.fsys, lang+".toml")
	if err != nil {
		return nil, err
	}
	dict := Dictionary{}
	if err := toml.Unmarshal(raw, &dict); err != nil {
		return nil, fmt.Errorf("parse %s.toml: %w", lang, err)
	}
	return dict, nil
}
