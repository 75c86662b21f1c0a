// Package validation turns raw JSON write payloads into typed domain inputs.
// It never stops at the first problem: every rejected field is reported in a
// single *domain.ValidationError.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"news_portal/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// payload accumulates field errors while decoding one JSON object.
type payload struct {
	raw    map[string]json.RawMessage
	errs   []domain.FieldError
	failed map[string]bool
}

func parse(body []byte) (*payload, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, &domain.ValidationError{
			Fields: []domain.FieldError{{Message: "expected a JSON object"}},
		}
	}
	return &payload{raw: raw, failed: make(map[string]bool)}, nil
}

func (p *payload) fail(field, message string) {
	p.failed[field] = true
	p.errs = append(p.errs, domain.FieldError{Field: field, Message: message})
}

func (p *payload) err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: p.errs}
}

// require runs the struct rules and reports violations for fields that did
// not already fail decoding.
func (p *payload) require(rules interface{}) {
	err := validate.Struct(rules)
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return
	}
	for _, v := range violations {
		if p.failed[v.Field()] {
			continue
		}
		p.fail(v.Field(), ruleMessage(v))
	}
}

func (p *payload) nonNegative(name string, f domain.Field[int]) {
	if f.Value == nil || p.failed[name] {
		return
	}
	if err := validate.Var(*f.Value, "gte=0"); err != nil {
		p.fail(name, "must be greater than or equal to 0")
	}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	default:
		return "failed " + fe.Tag() + " rule"
	}
}

const (
	expectString    = "expected string"
	expectBoolean   = "expected boolean"
	expectInteger   = "expected integer"
	expectTimestamp = "expected RFC 3339 timestamp"
)

// decode reads one member of the object. Absent members yield an unset
// Field; null yields a null Field only when the column is nullable.
func decode[T any](p *payload, name string, nullable bool, expected string) domain.Field[T] {
	msg, ok := p.raw[name]
	if !ok {
		return domain.Field[T]{}
	}
	if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		if !nullable {
			p.fail(name, "must not be null")
			return domain.Field[T]{}
		}
		return domain.Null[T]()
	}

	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		p.fail(name, expected)
		return domain.Field[T]{}
	}
	return domain.Some(v)
}

func required(p *payload, name string) domain.Field[string] {
	return decode[string](p, name, false, expectString)
}

func optionalString(p *payload, name string) domain.Field[string] {
	return decode[string](p, name, true, expectString)
}

// str returns the supplied value or the zero string; only called once
// validation has passed.
func str(f domain.Field[string]) string {
	if f.Value == nil {
		return ""
	}
	return *f.Value
}
