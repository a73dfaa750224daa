package handlers

import (
	"context"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/elsabor-web/internal/content"
	"github.com/diagnosis/elsabor-web/internal/domain"
	"github.com/diagnosis/elsabor-web/internal/http/render"
	"github.com/diagnosis/elsabor-web/internal/http/response"
	"github.com/diagnosis/elsabor-web/internal/i18n"
	"github.com/diagnosis/elsabor-web/internal/locale"
	"github.com/diagnosis/elsabor-web/internal/validate"
	"github.com/diagnosis/elsabor-web/pkg/logger"
)

const maxFormBytes = 64 << 10

// Notifier sends the emails that follow an accepted submission.
type Notifier interface {
	Reservation(ctx context.Context, lang string, r *domain.Reservation) error
	Contact(ctx context.Context, lang string, c domain.ContactReq) error
}

type SiteHandler struct {
	Locales  *locale.Resolver
	Catalog  *i18n.Catalog
	Content  *content.Store
	Notifier Notifier
	Renderer *render.Renderer
	Location *time.Location
	Now      func() time.Time
}

func NewSiteHandler(locales *locale.Resolver, catalog *i18n.Catalog, store *content.Store,
	notifier Notifier, renderer *render.Renderer, loc *time.Location) *SiteHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &SiteHandler{
		Locales:  locales,
		Catalog:  catalog,
		Content:  store,
		Notifier: notifier,
		Renderer: renderer,
		Location: loc,
		Now:      time.Now,
	}
}

// Routes registers the page table twice: unprefixed in the default
// language and under /{lang} for every supported language.
func (h *SiteHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(dr chi.Router) {
		dr.Use(h.defaultLanguage)
		h.pages(dr)
	})

	r.Route("/{lang}", func(lr chi.Router) {
		lr.Use(h.requireLanguage)
		h.pages(lr)
	})

	return r
}

func (h *SiteHandler) pages(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/carta", h.menu)
	r.Get("/reserva", h.reservationForm)
	r.Post("/reserva", h.submitReservation)
	r.Get("/contacto", h.contactForm)
	r.Post("/contacto", h.submitContact)
	r.Get("/galeria", h.gallery)
}

func (h *SiteHandler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, render.PageHome, "description", "", map[string]any{
		"Testimonials": h.Content.Testimonials(),
	})
}

func (h *SiteHandler) menu(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, render.PageMenu, "description_menu", "Carta de platos.", map[string]any{
		"Menu": h.Content.Menu(),
	})
}

func (h *SiteHandler) reservationForm(w http.ResponseWriter, r *http.Request) {
	earliest := domain.StartOfTomorrow(h.Now().In(h.Location))
	h.render(w, r, http.StatusOK, render.PageReservation, "description_reservation", "Reserva tu mesa.", map[string]any{
		"MinDate": earliest.Format(domain.DateLayout),
	})
}

func (h *SiteHandler) contactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, render.PageContact, "description_contact", "Contáctanos.", nil)
}

func (h *SiteHandler) gallery(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, render.PageGallery, "description_gallery", "Galería de fotos.", map[string]any{
		"Photos": h.Content.Photos(),
	})
}

func (h *SiteHandler) submitReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := langFrom(ctx)

	if !h.parseForm(w, r) {
		return
	}
	in, res, err := validate.Reservation(r.PostForm)
	if err != nil {
		logger.DebugContext(ctx, "reservation rejected", "error", err, "fields", res.Errors)
		response.BadRequest(w, h.Catalog.T(lang, "error_invalid_data", nil))
		return
	}

	rsv, err := domain.ScheduleReservation(in, h.Now(), h.Location)
	if err != nil {
		logger.DebugContext(ctx, "reservation date rejected", "error", err)
		response.BadRequest(w, h.Catalog.T(lang, "error_invalid_datetime", nil))
		return
	}

	if err := h.Notifier.Reservation(ctx, lang, rsv); err != nil {
		h.dispatchFailed(w, r, err, "error_reservation_send")
		return
	}

	name := html.UnescapeString(rsv.Name)
	date := h.Catalog.LongDate(lang, rsv.ScheduledAt)
	h.renderWith(w, r, http.StatusOK, render.PageReservationConfirmed, render.PageData{
		Title:       h.Catalog.T(lang, "reservation_confirmed_title", nil),
		Description: h.Catalog.T(lang, "reservation_confirmed_description", map[string]any{"Name": name, "Date": date}),
		Page:        render.PageReservation,
		Data: map[string]any{
			"Name":      name,
			"PartySize": rsv.PartySize,
			"Date":      date,
			"Time":      rsv.Time,
		},
	})
}

func (h *SiteHandler) submitContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := langFrom(ctx)

	if !h.parseForm(w, r) {
		return
	}
	in, res, err := validate.Contact(r.PostForm)
	if err != nil {
		logger.DebugContext(ctx, "contact rejected", "error", err, "fields", res.Errors)
		response.BadRequest(w, h.Catalog.T(lang, "error_invalid_data", nil))
		return
	}

	if err := h.Notifier.Contact(ctx, lang, in); err != nil {
		h.dispatchFailed(w, r, err, "error_contact_send")
		return
	}

	h.renderWith(w, r, http.StatusOK, render.PageContactSent, render.PageData{
		Title:       h.Catalog.T(lang, "contact_sent_title", nil),
		Description: h.Catalog.T(lang, "contact_sent_description", nil),
		Page:        render.PageContact,
		Data:        map[string]any{"Name": html.UnescapeString(in.Name)},
	})
}

func (h *SiteHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		logger.DebugContext(r.Context(), "unreadable form", "error", err)
		response.BadRequest(w, h.Catalog.T(langFrom(r.Context()), "error_invalid_data", nil))
		return false
	}
	return true
}

func (h *SiteHandler) dispatchFailed(w http.ResponseWriter, r *http.Request, err error, msgID string) {
	ctx := r.Context()
	if errors.Is(err, domain.ErrDispatch) {
		logger.ErrorContext(ctx, "submission dispatch failed", "error", err)
	} else {
		logger.ErrorContext(ctx, "submission failed", "error", err)
	}
	response.InternalError(w, h.Catalog.T(langFrom(ctx), msgID, nil))
}

// render fills the common page fields from the request's dictionary.
// descKey is looked up in the dictionary; descFallback is used when absent.
func (h *SiteHandler) render(w http.ResponseWriter, r *http.Request, status int, page, descKey, descFallback string, data map[string]any) {
	dict := dictFrom(r.Context())
	nav := page
	if page == render.PageHome {
		nav = ""
	}
	h.renderWith(w, r, status, page, render.PageData{
		Title:       dict["title"],
		Description: dict.Get(descKey, descFallback),
		Page:        nav,
		IsHome:      page == render.PageHome,
		Data:        data,
	})
}

func (h *SiteHandler) renderWith(w http.ResponseWriter, r *http.Request, status int, page string, pd render.PageData) {
	ctx := r.Context()
	lang := langFrom(ctx)
	pd.Lang = lang
	pd.LangPath = h.Locales.LangPath(lang)
	pd.T = dictFrom(ctx)
	pd.Langs = h.langLinks(r, lang)
	if pd.Data == nil {
		pd.Data = map[string]any{}
	}

	if err := h.Renderer.Render(w, status, page, pd); err != nil {
		logger.ErrorContext(ctx, "render failed", "error", err, "page", page)
		response.InternalError(w, h.Catalog.T(lang, "error_internal", nil))
	}
}

// langLinks points every supported language at the current page.
func (h *SiteHandler) langLinks(r *http.Request, current string) []render.LangLink {
	path := pagePath(r)
	links := make([]render.LangLink, 0, len(h.Locales.Supported()))
	for _, code := range h.Locales.Supported() {
		href := h.Locales.LangPath(code) + path
		if href == "" {
			href = "/"
		}
		links = append(links, render.LangLink{Code: code, Href: href, Active: code == current})
	}
	return links
}

// pagePath is the request path without the language prefix, "" for home.
func pagePath(r *http.Request) string {
	p := r.URL.Path
	if lang := chi.URLParam(r, "lang"); lang != "" {
		p = strings.TrimPrefix(p, "/"+lang)
	}
	return strings.TrimSuffix(p, "/")
}
