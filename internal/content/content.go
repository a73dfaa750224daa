// Package content holds the static, read-only data shown on the site: the
// dishes of the menu, guest testimonials and gallery photos.
package content

import "fmt"

type MenuItem struct {
	Name        string
	Description string
	Category    string
	PriceCents  int
	Image       string
}

// Price formats the price the way the menu prints it, e.g. "12,50 €".
func (m MenuItem) Price() string {
	return fmt.Sprintf("%d,%02d €", m.PriceCents/100, m.PriceCents%100)
}

type Testimonial struct {
	Author string
	Quote  string
	Rating int
}

type Photo struct {
	Src string
	Alt string
}

// Store is built once at startup and never mutated; accessors return copies.
type Store struct {
	menu         []MenuItem
	testimonials []Testimonial
	photos       []Photo
}

func NewStore(menu []MenuItem, testimonials []Testimonial, photos []Photo) *Store {
	return &Store{
		menu:         append([]MenuItem(nil), menu...),
		testimonials: append([]Testimonial(nil), testimonials...),
		photos:       append([]Photo(nil), photos...),
	}
}

func (s *Store) Menu() []MenuItem {
	return append([]MenuItem(nil), s.menu...)
}

func (s *Store) Testimonials() []Testimonial {
	return append([]Testimonial(nil), s.testimonials...)
}

func (s *Store) Photos() []Photo {
	return append([]Photo(nil), s.photos...)
}
