package style

import (
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Declarations is an ordered list of inline CSS declarations, as found in a
// style attribute. Property names are kept lower-case.
type Declarations struct {
	items []*css.Declaration
}

// ParseDeclarations reads a style attribute value. Input douceur cannot
// parse yields an empty list. The last declaration does not need a
// trailing semicolon.
func ParseDeclarations(value string) Declarations {
	value = strings.TrimSpace(value)
	if value == "" {
		return Declarations{}
	}
	if !strings.HasSuffix(value, ";") {
		value += ";"
	}
	parsed, err := parser.ParseDeclarations(value)
	if err != nil {
		return Declarations{}
	}
	items := make([]*css.Declaration, 0, len(parsed))
	for _, decl := range parsed {
		property := strings.ToLower(strings.TrimSpace(decl.Property))
		if property == "" {
			continue
		}
		items = append(items, &css.Declaration{
			Property:  property,
			Value:     strings.TrimSpace(decl.Value),
			Important: decl.Important,
		})
	}
	return Declarations{items: items}
}

// Len reports the number of declarations.
func (d Declarations) Len() int { return len(d.items) }

// Get returns the value of the last declaration for property.
func (d Declarations) Get(property string) (string, bool) {
	property = strings.ToLower(property)
	for i := len(d.items) - 1; i >= 0; i-- {
		if d.items[i].Property == property {
			return d.items[i].Value, true
		}
	}
	return "", false
}

// Has reports whether property is declared with a non-empty value.
func (d Declarations) Has(property string) bool {
	value, ok := d.Get(property)
	return ok && value != ""
}

// Set replaces every declaration of property with a single one at the
// position of the first, or appends it.
func (d *Declarations) Set(property, value string) {
	property = strings.ToLower(property)
	replaced := false
	kept := make([]*css.Declaration, 0, len(d.items))
	for _, decl := range d.items {
		if decl.Property != property {
			kept = append(kept, decl)
			continue
		}
		if !replaced {
			kept = append(kept, &css.Declaration{Property: property, Value: value})
			replaced = true
		}
	}
	d.items = kept
	if !replaced {
		d.items = append(d.items, &css.Declaration{Property: property, Value: value})
	}
}

// SetDefault sets property only when it is not already declared.
func (d *Declarations) SetDefault(property, value string) {
	if !d.Has(property) {
		d.Set(property, value)
	}
}

// Filter keeps the declarations for which keep returns true.
func (d *Declarations) Filter(keep func(property, value string) bool) {
	kept := make([]*css.Declaration, 0, len(d.items))
	for _, decl := range d.items {
		if keep(decl.Property, decl.Value) {
			kept = append(kept, decl)
		}
	}
	d.items = kept
}

// String renders the declarations as a style attribute value.
func (d Declarations) String() string {
	parts := make([]string, 0, len(d.items))
	for _, decl := range d.items {
		part := decl.Property + ": " + decl.Value
		if decl.Important {
			part += " !important"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

// Declare builds a Declarations from alternating property/value pairs. A
// trailing property without a value is ignored.
func Declare(pairs ...string) Declarations {
	var d Declarations
	for i := 0; i+1 < len(pairs); i += 2 {
		d.Set(pairs[i], pairs[i+1])
	}
	return d
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}

// Px formats n as a CSS pixel length.
func Px(n int) string { return px(n) }
