// Package catalog describes the read-only view of the feature catalog and the service-wide
// settings that documents are built from.
package catalog

import (
	"strings"
	"time"
)

// Extent is the bounding extent of a collection. Zero times mean the interval is open on that
// side.
type Extent struct {
	BBox  [4]float64
	CRS   string
	Start time.Time
	End   time.Time
}

// Collection summarizes a queryable feature collection.
type Collection struct {
	// The qualified name, e.g. "cite:Buildings". Use EncodeID to obtain the identifier used in
	// URLs and in the API description.
	Name        string
	Title       string
	Description string
	Extent      *Extent

	// Formats the collection's items can be retrieved in. If empty, the service-wide feature
	// formats apply.
	Formats []string
}

// View gives read access to the catalog. Implementations must be safe for concurrent use and
// must return a slice the caller is free to keep.
type View interface {
	ListCollections() []Collection
}

// ServiceConfig exposes the service-wide limits.
type ServiceConfig interface {
	MaxPageSize() int
}

// Describer may optionally be implemented by a ServiceConfig to provide a title and
// description for the service.
type Describer interface {
	Title() string
	Description() string
}

const separator = "__"

// EncodeID turns a qualified name into an identifier that is a valid XML NCName and safe to use
// in a URL path segment: "cite:Buildings" becomes "cite__Buildings".
func EncodeID(name string) string {
	if i := strings.Index(name, ":"); i >= 0 {
		return name[:i] + separator + name[i+1:]
	}
	return name
}

// DecodeID is the inverse of EncodeID.
func DecodeID(id string) string {
	if i := strings.Index(id, separator); i > 0 {
		return id[:i] + ":" + id[i+len(separator):]
	}
	return id
}

// Find looks up a collection by its encoded identifier.
func Find(v View, id string) (Collection, bool) {
	for _, c := range v.ListCollections() {
		if EncodeID(c.Name) == id {
			return c, true
		}
	}
	return Collection{}, false
}

// IDs returns the encoded identifiers of every collection in the view, in the view's order.
func IDs(v View) []string {
	collections := v.ListCollections()
	ret := make([]string, len(collections))
	for i, c := range collections {
		ret[i] = EncodeID(c.Name)
	}
	return ret
}

// Workspace is the part of a view whose collections are qualified by one namespace, e.g. the
// collections named "cdf:..." for the workspace "cdf". Names stay qualified.
type Workspace struct {
	View View
	Name string
}

func (w Workspace) ListCollections() []Collection {
	var ret []Collection
	for _, c := range w.View.ListCollections() {
		if strings.HasPrefix(c.Name, w.Name+":") {
			ret = append(ret, c)
		}
	}
	return ret
}
