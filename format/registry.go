package format

import "fmt"

// Registry reports which formats a kind of document can be rendered in. The order is
// significant: links are emitted in this order.
type Registry interface {
	SupportedFormats(k Kind) []string
}

// StaticRegistry is a Registry backed by a fixed table.
type StaticRegistry map[Kind][]string

// SupportedFormats returns a copy of the formats configured for k.
func (r StaticRegistry) SupportedFormats(k Kind) []string {
	return append([]string(nil), r[k]...)
}

// DefaultRegistry is the table used when a deployment doesn't configure one.
var DefaultRegistry = StaticRegistry{
	KindLandingPage: {JSON, XML, YAML, HTML},
	KindAPI:         {JSON, YAML, HTML},
	KindConformance: {JSON, XML, YAML},
	KindCollections: {JSON, XML, YAML},
	KindCollection:  {JSON, XML, YAML},
	KindFeatures:    {GeoJSON, GML32, HTML},
}

// ParseRegistry builds a registry from kind names to format names. Aliases are accepted for
// formats. Kinds missing from the input keep their DefaultRegistry formats.
func ParseRegistry(m map[string][]string) (StaticRegistry, error) {
	ret := StaticRegistry{}
	for k, v := range DefaultRegistry {
		ret[k] = append([]string(nil), v...)
	}
	for name, formats := range m {
		kind, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if len(formats) == 0 {
			return nil, fmt.Errorf("no formats given for %v", name)
		}
		seen := map[string]struct{}{}
		canonical := make([]string, 0, len(formats))
		for _, f := range formats {
			f = Canonical(f)
			if _, ok := seen[f]; ok {
				return nil, fmt.Errorf("duplicate format %q for %v", f, name)
			}
			seen[f] = struct{}{}
			canonical = append(canonical, f)
		}
		ret[kind] = canonical
	}
	return ret, nil
}

// Supports reports whether f is one of the formats of k.
func Supports(r Registry, k Kind, f string) bool {
	for _, candidate := range r.SupportedFormats(k) {
		if candidate == f {
			return true
		}
	}
	return false
}
