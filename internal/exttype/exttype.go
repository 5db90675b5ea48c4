package exttype

import "errors"

// Type identifies the kind of an installed extension.
type Type string

const (
	Interface Type = "interface"
	Display   Type = "display"
	Layout    Type = "layout"
	Module    Type = "module"
	Panel     Type = "panel"
	Theme     Type = "theme"
	Hook      Type = "hook"
	Endpoint  Type = "endpoint"
	Operation Type = "operation"
	Bundle    Type = "bundle"
)

// ErrUnknownType is returned when a token does not name a known extension type.
var ErrUnknownType = errors.New("unknown extension type")

// typeTable maps each type to its plural form. Order matches All().
var typeTable = []struct {
	singular Type
	plural   string
}{
	{Interface, "interfaces"},
	{Display, "displays"},
	{Layout, "layouts"},
	{Module, "modules"},
	{Panel, "panels"},
	{Theme, "themes"},
	{Hook, "hooks"},
	{Endpoint, "endpoints"},
	{Operation, "operations"},
	{Bundle, "bundles"},
}

var (
	bySingular = make(map[string]Type, len(typeTable))
	byPlural   = make(map[string]Type, len(typeTable))
	pluralOf   = make(map[Type]string, len(typeTable))
)

func init() {
	for _, e := range typeTable {
		bySingular[string(e.singular)] = e.singular
		byPlural[e.plural] = e.singular
		pluralOf[e.singular] = e.plural
	}
}

// All returns every known extension type in declaration order.
func All() []Type {
	out := make([]Type, len(typeTable))
	for i, e := range typeTable {
		out[i] = e.singular
	}
	return out
}

// String returns the canonical singular name.
func (t Type) String() string { return string(t) }

// Plural returns the plural form used in external identifiers and folder names.
// Unknown types return an empty string.
func (t Type) Plural() string { return pluralOf[t] }

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	_, ok := pluralOf[t]
	return ok
}

// Parse converts a canonical singular name to a Type, returning false if invalid.
// Matching is exact and case-sensitive.
func Parse(s string) (Type, bool) {
	t, ok := bySingular[s]
	return t, ok
}

// Depluralize maps a known plural token to its singular form. Tokens that are
// not a known plural are returned unchanged.
func Depluralize(token string) string {
	if t, ok := byPlural[token]; ok {
		return string(t)
	}
	return token
}

// Resolve turns an optional raw type token into a type filter. A nil token
// means "all types" and yields a nil filter. Otherwise the token is
// depluralized through the static table and must then name a known type
// exactly; anything else yields ErrUnknownType.
func Resolve(raw *string) (*Type, error) {
	if raw == nil {
		return nil, nil
	}
	t, ok := Parse(Depluralize(*raw))
	if !ok {
		return nil, ErrUnknownType
	}
	return &t, nil
}
