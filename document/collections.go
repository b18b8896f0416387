package document

import (
	"encoding/xml"
	"time"

	"github.com/ccbrown/wfs-fu/catalog"
	"github.com/ccbrown/wfs-fu/format"
)

// Extent is the serialized form of catalog.Extent. Open ends of the temporal interval are null.
type Extent struct {
	Spatial  []float64 `json:"spatial,omitempty" xml:"Spatial>Coordinate,omitempty"`
	CRS      string    `json:"crs,omitempty" xml:"CRS,omitempty"`
	Temporal []*string `json:"temporal,omitempty" xml:"Temporal>Instant,omitempty"`
}

func newExtent(e *catalog.Extent) *Extent {
	if e == nil {
		return nil
	}
	ret := &Extent{
		Spatial: e.BBox[:],
		CRS:     e.CRS,
	}
	if !e.Start.IsZero() || !e.End.IsZero() {
		ret.Temporal = []*string{formatInstant(e.Start), formatInstant(e.End)}
	}
	return ret
}

func formatInstant(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// CollectionInfo describes one collection.
type CollectionInfo struct {
	Name        string  `json:"name" xml:"Name"`
	Title       string  `json:"title,omitempty" xml:"Title,omitempty"`
	Description string  `json:"description,omitempty" xml:"Description,omitempty"`
	Extent      *Extent `json:"extent,omitempty" xml:"Extent,omitempty"`
	Links       Links   `json:"links" xml:"http://www.w3.org/2005/Atom link"`
}

func itemFormats(c catalog.Collection, reg format.Registry) []string {
	if len(c.Formats) == 0 {
		return reg.SupportedFormats(format.KindFeatures)
	}
	ret := make([]string, len(c.Formats))
	for i, f := range c.Formats {
		ret[i] = format.Canonical(f)
	}
	return ret
}

func newCollectionInfo(req Request, c catalog.Collection, reg format.Registry, own LinkSet) CollectionInfo {
	id := catalog.EncodeID(c.Name)
	title := c.Title
	if title == "" {
		title = id
	}
	own.Path = collectionPath(id)
	own.Classification = ClassCollection(id)
	links := BuildLinks(req.BaseURL, own, reg.SupportedFormats(format.KindCollection))
	links = append(links, BuildLinks(req.BaseURL, LinkSet{
		Path:           collectionPath(id) + "/items",
		TitlePrefix:    title + " items as ",
		Classification: ClassCollectionItems(id),
		Relation:       RelItem,
	}, itemFormats(c, reg))...)
	return CollectionInfo{
		Name:        id,
		Title:       c.Title,
		Description: c.Description,
		Extent:      newExtent(c.Extent),
		Links:       links,
	}
}

// DescriptionLinks returns the links to the collection's own description.
func (info CollectionInfo) DescriptionLinks() Links {
	return info.Links.Classified(ClassCollection(info.Name))
}

// ItemLinks returns the links to the collection's items, one per feature format.
func (info CollectionInfo) ItemLinks() Links {
	return info.Links.Classified(ClassCollectionItems(info.Name))
}

// Collections lists the collections of the catalog.
type Collections struct {
	XMLName     xml.Name         `json:"-" xml:"Collections"`
	Links       Links            `json:"links" xml:"http://www.w3.org/2005/Atom link"`
	Collections []CollectionInfo `json:"collections" xml:"Collection"`
}

// NewCollections builds the collection listing from the catalog's current contents.
func NewCollections(req Request, reg format.Registry, view catalog.View) *Collections {
	ret := &Collections{
		Links: BuildLinks(req.BaseURL, LinkSet{
			Path:           "/collections",
			TitlePrefix:    "This document as ",
			Classification: ClassCollections,
			Relation:       RelAlternate,
			Transform:      MarkSelfIfFormatMatches(req.Format),
		}, reg.SupportedFormats(format.KindCollections)),
		Collections: []CollectionInfo{},
	}
	for _, c := range view.ListCollections() {
		title := c.Title
		if title == "" {
			title = catalog.EncodeID(c.Name)
		}
		ret.Collections = append(ret.Collections, newCollectionInfo(req, c, reg, LinkSet{
			TitlePrefix: title + " as ",
			Relation:    RelCollection,
		}))
	}
	return ret
}

// AllLinks returns the document's own links followed by the links of every collection.
func (c *Collections) AllLinks() Links {
	ret := append(Links(nil), c.Links...)
	for _, info := range c.Collections {
		ret = append(ret, info.Links...)
	}
	return ret
}

// Collection describes a single collection.
type Collection struct {
	XMLName xml.Name `json:"-" xml:"Collection"`
	CollectionInfo
}

// NewCollection builds the description of the collection with the given encoded id. If the
// catalog doesn't contain it, an *UnknownCollectionError is returned.
func NewCollection(req Request, reg format.Registry, view catalog.View, id string) (*Collection, error) {
	c, ok := catalog.Find(view, id)
	if !ok {
		return nil, &UnknownCollectionError{ID: id}
	}
	info := newCollectionInfo(req, c, reg, LinkSet{
		TitlePrefix: "This document as ",
		Relation:    RelAlternate,
		Transform:   MarkSelfIfFormatMatches(req.Format),
	})
	return &Collection{
		CollectionInfo: info,
	}, nil
}
