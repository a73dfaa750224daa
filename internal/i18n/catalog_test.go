package i18n_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/elsabor-web/internal/i18n"
)

func newCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.NewCatalog("es")
	require.NoError(t, err)
	return c
}

func TestLongDate(t *testing.T) {
	c := newCatalog(t)
	day := time.Date(2026, time.October, 21, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "miércoles, 21 de octubre de 2026", c.LongDate("es", day))
	assert.Equal(t, "Wednesday, October 21, 2026", c.LongDate("en", day))
}

func TestDateTime(t *testing.T) {
	c := newCatalog(t)
	at := time.Date(2026, time.October, 21, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "21/10/2026, 20:30", c.DateTime("es", at))
	assert.Equal(t, "10/21/2026, 8:30 PM", c.DateTime("en", at))
}

func TestT_TemplateData(t *testing.T) {
	c := newCatalog(t)
	assert.Equal(t, "Nueva reserva de Ana", c.T("es", "mail_reservation_operator_subject", map[string]any{"Name": "Ana"}))
	assert.Equal(t, "Message from Ana", c.T("en", "mail_contact_operator_subject", map[string]any{"Name": "Ana"}))
}

func TestT_Fallbacks(t *testing.T) {
	c := newCatalog(t)
	assert.Equal(t, "Datos inválidos.", c.T("fr", "error_invalid_data", nil))
	assert.Equal(t, "no_such_message", c.T("en", "no_such_message", nil))
	assert.Equal(t, "", c.T("en", "", nil))
	assert.Equal(t, "es", c.Default())
}
