package document

import (
	"fmt"
	"strings"
)

// Relation is a link relation type.
type Relation string

const (
	RelSelf        Relation = "self"
	RelAlternate   Relation = "alternate"
	RelService     Relation = "service"
	RelServiceDesc Relation = "service-desc"
	RelConformance Relation = "conformance"
	RelData        Relation = "data"
	RelCollection  Relation = "collection"
	RelItem        Relation = "item"
	RelItems       Relation = "items"
)

type classificationKind int

const (
	classLandingPage classificationKind = iota + 1
	classAPI
	classConformance
	classCollections
	classCollection
	classCollectionItems
)

// Classification groups links that point at the same resource in different formats. The zero
// value is not a valid classification.
type Classification struct {
	kind       classificationKind
	collection string
}

var (
	ClassLandingPage = Classification{kind: classLandingPage}
	ClassAPI         = Classification{kind: classAPI}
	ClassConformance = Classification{kind: classConformance}
	ClassCollections = Classification{kind: classCollections}
)

// ClassCollection groups the representations of a single collection's description.
func ClassCollection(id string) Classification {
	return Classification{kind: classCollection, collection: id}
}

// ClassCollectionItems groups the representations of a collection's items.
func ClassCollectionItems(id string) Classification {
	return Classification{kind: classCollectionItems, collection: id}
}

// Collection returns the collection id of a collection-specific classification.
func (c Classification) Collection() string {
	return c.collection
}

func (c Classification) String() string {
	switch c.kind {
	case classLandingPage:
		return "landingPage"
	case classAPI:
		return "api"
	case classConformance:
		return "conformance"
	case classCollections:
		return "collections"
	case classCollection:
		return "collection:" + c.collection
	case classCollectionItems:
		return "items:" + c.collection
	}
	return "invalid"
}

// ParseClassification is the inverse of Classification.String.
func ParseClassification(s string) (Classification, error) {
	switch s {
	case "landingPage":
		return ClassLandingPage, nil
	case "api":
		return ClassAPI, nil
	case "conformance":
		return ClassConformance, nil
	case "collections":
		return ClassCollections, nil
	}
	if id := strings.TrimPrefix(s, "collection:"); id != s && id != "" {
		return ClassCollection(id), nil
	}
	if id := strings.TrimPrefix(s, "items:"); id != s && id != "" {
		return ClassCollectionItems(id), nil
	}
	return Classification{}, fmt.Errorf("unknown classification %q", s)
}

// Link is a typed reference to another resource.
type Link struct {
	HREF           string         `json:"href" xml:"href,attr"`
	Rel            Relation       `json:"rel" xml:"rel,attr"`
	Type           string         `json:"type,omitempty" xml:"type,attr,omitempty"`
	Title          string         `json:"title,omitempty" xml:"title,attr,omitempty"`
	Classification Classification `json:"-" xml:"-"`
}

// Links is an ordered list of links.
type Links []Link

// Classified returns the links of the given classification.
func (l Links) Classified(c Classification) Links {
	var ret Links
	for _, link := range l {
		if link.Classification == c {
			ret = append(ret, link)
		}
	}
	return ret
}

// URL returns the href of the link with the given classification and format.
func (l Links) URL(c Classification, format string) (string, bool) {
	for _, link := range l {
		if link.Classification == c && link.Type == format {
			return link.HREF, true
		}
	}
	return "", false
}

// Except returns the links of the given classification other than the one in the excluded
// format.
func (l Links) Except(c Classification, excludedFormat string) Links {
	var ret Links
	for _, link := range l {
		if link.Classification == c && link.Type != excludedFormat {
			ret = append(ret, link)
		}
	}
	return ret
}

// Self returns the link with the self relation, if there is one.
func (l Links) Self() (Link, bool) {
	for _, link := range l {
		if link.Rel == RelSelf {
			return link, true
		}
	}
	return Link{}, false
}

// Href is URL for templates: unknown classifications and missing links yield an empty string.
func (l Links) Href(classification, format string) string {
	c, err := ParseClassification(classification)
	if err != nil {
		return ""
	}
	href, _ := l.URL(c, format)
	return href
}
