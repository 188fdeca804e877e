package decoder

import (
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

var truthyFlags = map[string]struct{}{
	"1":    {},
	"si":   {},
	"s":    {},
	"true": {},
	"yes":  {},
	"y":    {},
}

// fields holds sanitized raw values of single record keyed by field name.
type fields struct {
	texts    map[string]string
	decimals map[string]decimal.Decimal
	ints     map[string]int
	flags    map[string]bool
}

func (f fields) str(name string) string {
	return f.texts[name]
}

func (f fields) dec(name string) decimal.Decimal {
	return f.decimals[name]
}

func (f fields) integer(name string) int {
	return f.ints[name]
}

func (f fields) flag(name string) bool {
	return f.flags[name]
}

// sanitizer converts raw positional values into typed fields.
type sanitizer struct {
	strict *bluemonday.Policy
	ugc    *bluemonday.Policy
}

func newSanitizer() sanitizer {
	return sanitizer{
		strict: bluemonday.StrictPolicy(),
		ugc:    bluemonday.UGCPolicy(),
	}
}

func (s sanitizer) sanitize(schema Schema, raw []string) fields {
	f := fields{
		texts:    make(map[string]string, len(schema.Fields)),
		decimals: map[string]decimal.Decimal{},
		ints:     map[string]int{},
		flags:    map[string]bool{},
	}

	for ix, field := range schema.Fields {
		value := strings.TrimSpace(raw[ix])

		switch field.Type {
		case FieldText:
			f.texts[field.Name] = s.text(value)
		case FieldHTML:
			f.texts[field.Name] = s.html(value)
		case FieldDecimal:
			f.decimals[field.Name] = parseDecimal(value)
		case FieldInt:
			f.ints[field.Name] = parseInt(value)
		case FieldFlag:
			f.flags[field.Name] = parseFlag(value)
		default:
			f.texts[field.Name] = html.UnescapeString(value)
		}
	}

	return f
}

// text strips all markup. Entities are decoded before stripping so encoded tags are removed too.
func (s sanitizer) text(value string) string {
	stripped := s.strict.Sanitize(html.UnescapeString(value))
	return strings.TrimSpace(html.UnescapeString(stripped))
}

func (s sanitizer) html(value string) string {
	return strings.TrimSpace(s.ugc.Sanitize(html.UnescapeString(value)))
}

// parseDecimal parses decimal accepting comma as decimal separator. Unparsable value is zero.
func parseDecimal(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(value, ",", "."))
	if err != nil {
		return decimal.Zero
	}

	return d
}

// parseInt parses integer. Unparsable value is zero.
func parseInt(value string) int {
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}

	return i
}

func parseFlag(value string) bool {
	_, ok := truthyFlags[strings.ToLower(value)]
	return ok
}
