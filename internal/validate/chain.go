// Package validate applies ordered per-field rule chains to submitted forms.
//
// A chain is a list of transforms and predicates evaluated left to right on
// one form value. Every field is evaluated, but the outcome exposed to callers
// is a single pass/fail: the individual failures are only kept for logging.
package validate

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/diagnosis/elsabor-web/internal/domain"
)

var v = validator.New()

// step transforms a value and reports whether it is still acceptable.
type step struct {
	name string
	fn   func(string) (string, bool)
}

// Field is the rule chain for one form field.
type Field struct {
	name  string
	steps []step
}

// FieldError names the field and the first rule it failed.
type FieldError struct {
	Field string
	Rule  string
}

// Body starts a chain for the form field name.
func Body(name string) *Field {
	return &Field{name: name}
}

func (f *Field) add(name string, fn func(string) (string, bool)) *Field {
	f.steps = append(f.steps, step{name: name, fn: fn})
	return f
}

func (f *Field) Trim() *Field {
	return f.add("trim", func(s string) (string, bool) { return strings.TrimSpace(s), true })
}

func (f *Field) Escape() *Field {
	return f.add("escape", func(s string) (string, bool) { return Escape(s), true })
}

func (f *Field) NotEmpty() *Field {
	return f.add("notEmpty", func(s string) (string, bool) { return s, s != "" })
}

func (f *Field) IsEmail() *Field {
	return f.add("isEmail", func(s string) (string, bool) { return s, v.Var(s, "required,email") == nil })
}

// NormalizeEmail trims and lower-cases the address.
func (f *Field) NormalizeEmail() *Field {
	return f.add("normalizeEmail", func(s string) (string, bool) {
		return strings.ToLower(strings.TrimSpace(s)), true
	})
}

func (f *Field) Matches(re *regexp.Regexp) *Field {
	return f.add("matches", func(s string) (string, bool) { return s, re.MatchString(s) })
}

// IsInt accepts base-10 integers within [min, max] and rewrites the value in
// canonical form ("04" becomes "4").
func (f *Field) IsInt(min, max int) *Field {
	return f.add("isInt", func(s string) (string, bool) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return s, false
		}
		if v.Var(n, "min="+strconv.Itoa(min)+",max="+strconv.Itoa(max)) != nil {
			return s, false
		}
		return strconv.Itoa(n), true
	})
}

// IsLength bounds the length in characters, not bytes.
func (f *Field) IsLength(min, max int) *Field {
	return f.add("isLength", func(s string) (string, bool) {
		return s, v.Var(s, "min="+strconv.Itoa(min)+",max="+strconv.Itoa(max)) == nil
	})
}

func (f *Field) run(form url.Values) (string, *FieldError) {
	val := form.Get(f.name)
	for _, st := range f.steps {
		var ok bool
		if val, ok = st.fn(val); !ok {
			return val, &FieldError{Field: f.name, Rule: st.name}
		}
	}
	return val, nil
}

// Chain is the ordered rule set of one form.
type Chain []*Field

// Result holds the sanitized values and the failures of one run.
type Result struct {
	Values url.Values
	Errors []FieldError
}

// Run evaluates every field. It returns an error marked domain.ErrInvalidInput
// when at least one rule failed.
func (c Chain) Run(form url.Values) (*Result, error) {
	res := &Result{Values: url.Values{}}
	for _, f := range c {
		val, ferr := f.run(form)
		if ferr != nil {
			res.Errors = append(res.Errors, *ferr)
			continue
		}
		res.Values.Set(f.name, val)
	}
	if len(res.Errors) > 0 {
		return res, errors.Wrapf(domain.ErrInvalidInput, "%d field(s) failed validation", len(res.Errors))
	}
	return res, nil
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape replaces the HTML-significant characters with entities.
func Escape(s string) string {
	return escaper.Replace(s)
}
