// Package format defines the document kinds served by the API and the output formats each of
// them can be rendered in.
package format

import (
	"fmt"
	"strings"
)

// Format identifiers are media types. They appear verbatim in links and in the Content-Type of
// responses.
const (
	JSON    = "application/json"
	XML     = "text/xml"
	YAML    = "application/x-yaml"
	HTML    = "text/html"
	MsgPack = "application/x-msgpack"
	GeoJSON = "application/geo+json"
	GML32   = "application/gml+xml; version=3.2"
)

var aliases = map[string]string{
	"json":    JSON,
	"xml":     XML,
	"yaml":    YAML,
	"html":    HTML,
	"msgpack": MsgPack,
	"geojson": GeoJSON,
	"gml":     GML32,
	"gml32":   GML32,
}

// Canonical maps short aliases such as "json" to their media type. Anything else is returned
// trimmed but otherwise unchanged.
func Canonical(f string) string {
	f = strings.TrimSpace(f)
	if mediaType, ok := aliases[strings.ToLower(f)]; ok {
		return mediaType
	}
	return f
}

// Kind identifies a representable resource.
type Kind int

const (
	KindLandingPage Kind = iota
	KindAPI
	KindConformance
	KindCollections
	KindCollection
	KindFeatures
)

var kindNames = []string{
	KindLandingPage: "landingPage",
	KindAPI:         "api",
	KindConformance: "conformance",
	KindCollections: "collections",
	KindCollection:  "collection",
	KindFeatures:    "features",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindLandingPage, KindAPI, KindConformance, KindCollections, KindCollection, KindFeatures}
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown document kind %q", name)
}

// Default returns the format a kind is rendered in when negotiation yields nothing.
func Default(k Kind) string {
	if k == KindFeatures {
		return GeoJSON
	}
	return JSON
}
