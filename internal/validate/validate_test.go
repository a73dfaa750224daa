package validate_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/elsabor-web/internal/domain"
	"github.com/diagnosis/elsabor-web/internal/validate"
)

func reservationForm(mutate func(url.Values)) url.Values {
	f := url.Values{
		"nombre":     {"  Ana  "},
		"email":      {"Ana@Example.com"},
		"fecha":      {"2026-10-21"},
		"hora":       {"20:30"},
		"personas":   {"4"},
		"peticiones": {" Mesa en la terraza "},
	}
	if mutate != nil {
		mutate(f)
	}
	return f
}

func TestReservation_Valid(t *testing.T) {
	req, res, err := validate.Reservation(reservationForm(nil))
	require.NoError(t, err)
	assert.Empty(t, res.Errors)

	assert.Equal(t, "Ana", req.Name)
	assert.Equal(t, "ana@example.com", req.Email)
	assert.Equal(t, "2026-10-21", req.Date)
	assert.Equal(t, "20:30", req.Time)
	assert.Equal(t, 4, req.PartySize)
	assert.Equal(t, "Mesa en la terraza", req.SpecialRequests)
}

func TestReservation_OptionalSpecialRequests(t *testing.T) {
	req, _, err := validate.Reservation(reservationForm(func(f url.Values) { f.Del("peticiones") }))
	require.NoError(t, err)
	assert.Equal(t, "", req.SpecialRequests)
}

func TestReservation_EscapesHTML(t *testing.T) {
	req, _, err := validate.Reservation(reservationForm(func(f url.Values) {
		f.Set("nombre", "<script>x</script>")
		f.Set("peticiones", `"sin gluten" & 'vegano'`)
	}))
	require.NoError(t, err)
	assert.Equal(t, "&lt;script&gt;x&lt;&#x2F;script&gt;", req.Name)
	assert.Equal(t, "&quot;sin gluten&quot; &amp; &#x27;vegano&#x27;", req.SpecialRequests)
}

func TestReservation_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"blank name", "nombre", "   "},
		{"missing name", "nombre", ""},
		{"bad email", "email", "not-an-email"},
		{"missing date", "fecha", ""},
		{"hour out of range", "hora", "24:00"},
		{"minutes out of range", "hora", "20:60"},
		{"single digit hour", "hora", "9:30"},
		{"seconds", "hora", "20:30:00"},
		{"zero guests", "personas", "0"},
		{"too many guests", "personas", "51"},
		{"non numeric guests", "personas", "four"},
		{"fractional guests", "personas", "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res, err := validate.Reservation(reservationForm(func(f url.Values) { f.Set(tt.field, tt.value) }))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.field, res.Errors[0].Field)
		})
	}
}

func TestReservation_CollectsEveryFailure(t *testing.T) {
	_, res, err := validate.Reservation(url.Values{})
	require.Error(t, err)
	// every field except the optional special requests
	assert.Len(t, res.Errors, 5)
}

func TestReservation_PartySizeBounds(t *testing.T) {
	for _, n := range []string{"1", "50", "07"} {
		_, _, err := validate.Reservation(reservationForm(func(f url.Values) { f.Set("personas", n) }))
		assert.NoError(t, err, n)
	}
}

func TestContact(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantErr bool
	}{
		{"too short", "Hola", true},
		{"short after trim", "   Hola   ", true},
		{"minimum", "Hola!", false},
		{"maximum", strings.Repeat("a", 1000), false},
		{"too long", strings.Repeat("a", 1001), true},
		{"multibyte at maximum", strings.Repeat("ñ", 1000), false},
		{"empty", "", true},
		{"escaping reaches minimum", "<<", false},
		{"escaping exceeds maximum", strings.Repeat("'", 167), true},
		{"escaped just under maximum", strings.Repeat("'", 166), false},
		{"quotes at raw maximum", strings.Repeat("'", 1000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"nombre": {"Ana"}, "email": {"ana@example.com"}, "mensaje": {tt.message}}
			req, _, err := validate.Contact(form)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ana", req.Name)
		})
	}
}

func TestContact_EscapesMessage(t *testing.T) {
	form := url.Values{"nombre": {"Ana"}, "email": {"ana@example.com"}, "mensaje": {"<b>Hola</b> a todos"}}
	req, _, err := validate.Contact(form)
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;Hola&lt;&#x2F;b&gt; a todos", req.Message)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&#x5C;&#96;", validate.Escape("\\`"))
	assert.Equal(t, "plain text", validate.Escape("plain text"))
}
