// Package document builds the hypermedia documents of the service: the landing page, the
// conformance declaration and the collection descriptions.
//
// Documents are built fresh for every request from the catalog and format registry they are
// given and are never mutated after construction. Every document carries, for each
// classification it links to, exactly one link per format of the target resource. At most one
// link is marked self, and it is the link for the format being rendered.
package document

import (
	"encoding/xml"

	"github.com/ccbrown/wfs-fu/catalog"
	"github.com/ccbrown/wfs-fu/format"
)

// Request carries what documents need to know about the request being served.
type Request struct {
	// The externally visible URL the API is mounted at, without a trailing slash.
	BaseURL string

	// The format the document is going to be rendered in.
	Format string
}

// LandingPage is the entry point of the API.
type LandingPage struct {
	XMLName     xml.Name `json:"-" xml:"LandingPage"`
	Title       string   `json:"title,omitempty" xml:"Title,omitempty"`
	Description string   `json:"description,omitempty" xml:"Description,omitempty"`
	Links       Links    `json:"links" xml:"http://www.w3.org/2005/Atom link"`
}

// NewLandingPage builds the landing page. svc may be nil.
func NewLandingPage(req Request, reg format.Registry, svc catalog.ServiceConfig) *LandingPage {
	ret := &LandingPage{}
	if d, ok := svc.(catalog.Describer); ok {
		ret.Title = d.Title()
		ret.Description = d.Description()
	}

	// self and alternate representations of the landing page
	ret.Links = append(ret.Links, BuildLinks(req.BaseURL, LinkSet{
		Path:           "/",
		TitlePrefix:    "This document as ",
		Classification: ClassLandingPage,
		Transform:      MarkSelfIfFormatMatches(req.Format),
	}, reg.SupportedFormats(format.KindLandingPage))...)

	ret.Links = append(ret.Links, BuildLinks(req.BaseURL, LinkSet{
		Path:           "/api",
		TitlePrefix:    "API definition for this endpoint as ",
		Classification: ClassAPI,
	}, reg.SupportedFormats(format.KindAPI))...)

	ret.Links = append(ret.Links, BuildLinks(req.BaseURL, LinkSet{
		Path:           "/conformance",
		TitlePrefix:    "Conformance declaration as ",
		Classification: ClassConformance,
	}, reg.SupportedFormats(format.KindConformance))...)

	ret.Links = append(ret.Links, BuildLinks(req.BaseURL, LinkSet{
		Path:           "/collections",
		TitlePrefix:    "Collections Metadata as ",
		Classification: ClassCollections,
	}, reg.SupportedFormats(format.KindCollections))...)

	return ret
}

// LinkURL returns the href of the link with the given classification and format.
func (p *LandingPage) LinkURL(c Classification, format string) (string, bool) {
	return p.Links.URL(c, format)
}

// LinksExcept returns the links of a classification other than the one in the excluded format.
// It's used to list the other formats a resource is available in.
func (p *LandingPage) LinksExcept(c Classification, excludedFormat string) Links {
	return p.Links.Except(c, excludedFormat)
}

// DefaultConformanceClasses are the requirement classes declared when a deployment doesn't
// configure its own.
var DefaultConformanceClasses = []string{
	"http://www.opengis.net/spec/wfs-1/3.0/req/core",
	"http://www.opengis.net/spec/wfs-1/3.0/req/oas30",
	"http://www.opengis.net/spec/wfs-1/3.0/req/html",
	"http://www.opengis.net/spec/wfs-1/3.0/req/geojson",
	"http://www.opengis.net/spec/wfs-1/3.0/req/gmlsf0",
}

// Conformance declares the requirement classes the service conforms to.
type Conformance struct {
	XMLName    xml.Name `json:"-" xml:"ConformsTo"`
	Links      Links    `json:"links" xml:"http://www.w3.org/2005/Atom link"`
	ConformsTo []string `json:"conformsTo" xml:"conformsTo"`
}

// NewConformance builds the conformance declaration. If classes is empty,
// DefaultConformanceClasses are declared.
func NewConformance(req Request, reg format.Registry, classes []string) *Conformance {
	if len(classes) == 0 {
		classes = DefaultConformanceClasses
	}
	return &Conformance{
		ConformsTo: append([]string(nil), classes...),
		Links: BuildLinks(req.BaseURL, LinkSet{
			Path:           "/conformance",
			TitlePrefix:    "This document as ",
			Classification: ClassConformance,
			Relation:       RelAlternate,
			Transform:      MarkSelfIfFormatMatches(req.Format),
		}, reg.SupportedFormats(format.KindConformance)),
	}
}
