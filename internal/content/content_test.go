package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diagnosis/elsabor-web/internal/content"
)

func TestMenuItemPrice(t *testing.T) {
	assert.Equal(t, "18,50 €", content.MenuItem{PriceCents: 1850}.Price())
	assert.Equal(t, "6,00 €", content.MenuItem{PriceCents: 600}.Price())
	assert.Equal(t, "0,05 €", content.MenuItem{PriceCents: 5}.Price())
}

func TestStore_IsReadOnly(t *testing.T) {
	s := content.Default()

	menu := s.Menu()
	original := menu[0].Name
	menu[0].Name = "changed"
	assert.Equal(t, original, s.Menu()[0].Name)

	photos := s.Photos()
	photos[0].Src = "changed"
	assert.NotEqual(t, "changed", s.Photos()[0].Src)

	quotes := s.Testimonials()
	quotes[0].Quote = "changed"
	assert.NotEqual(t, "changed", s.Testimonials()[0].Quote)
}

func TestNewStore_CopiesInput(t *testing.T) {
	items := []content.MenuItem{{Name: "Gazpacho"}}
	s := content.NewStore(items, nil, nil)
	items[0].Name = "changed"

	assert.Equal(t, "Gazpacho", s.Menu()[0].Name)
	assert.Empty(t, s.Testimonials())
	assert.Empty(t, s.Photos())
}
