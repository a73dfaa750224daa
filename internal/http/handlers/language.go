package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/elsabor-web/internal/http/response"
	"github.com/diagnosis/elsabor-web/internal/locale"
	"github.com/diagnosis/elsabor-web/pkg/logger"
)

type ctxKey int

const (
	langKey ctxKey = iota
	dictKey
)

// defaultLanguage binds the default language on unprefixed routes.
func (h *SiteHandler) defaultLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(h.withLanguage(r.Context(), h.Locales.Default())))
	})
}

// requireLanguage rejects unsupported /{lang} prefixes with 404.
func (h *SiteHandler) requireLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := chi.URLParam(r, "lang")
		if !h.Locales.IsSupported(lang) {
			logger.DebugContext(r.Context(), "unsupported language", "lang", lang, "path", r.URL.Path)
			response.NotFound(w, h.Catalog.T(h.Catalog.Default(), "error_unsupported_language", nil))
			return
		}
		next.ServeHTTP(w, r.WithContext(h.withLanguage(r.Context(), lang)))
	})
}

func (h *SiteHandler) withLanguage(ctx context.Context, lang string) context.Context {
	ctx = context.WithValue(ctx, logger.LangKey, lang)
	ctx = context.WithValue(ctx, langKey, lang)
	return context.WithValue(ctx, dictKey, h.Locales.Load(ctx, lang))
}

func langFrom(ctx context.Context) string {
	lang, _ := ctx.Value(langKey).(string)
	return lang
}

func dictFrom(ctx context.Context) locale.Dictionary {
	d, _ := ctx.Value(dictKey).(locale.Dictionary)
	return d
}
