package document

import (
	"net/url"
	"strings"
)

// Transform post-processes each link built by BuildLinks. The zero value, NoTransform, leaves
// links untouched.
type Transform struct {
	markSelf   bool
	selfFormat string
}

var NoTransform = Transform{}

// MarkSelfIfFormatMatches promotes the link for the given format to the self relation.
func MarkSelfIfFormatMatches(format string) Transform {
	return Transform{
		markSelf:   true,
		selfFormat: format,
	}
}

// Apply returns the transformed link.
func (t Transform) Apply(format string, l Link) Link {
	if t.markSelf && format == t.selfFormat {
		l.Rel = RelSelf
		l.Title = "This document"
	}
	return l
}

// LinkSet describes a group of links to one resource, one per format.
type LinkSet struct {
	// Path of the resource relative to the base URL, e.g. "/collections".
	Path string

	// Each link's title is the prefix followed by the format.
	TitlePrefix string

	Classification Classification

	// Defaults to RelService.
	Relation Relation

	Transform Transform
}

// BuildLinks creates one link per format for the given set.
func BuildLinks(baseURL string, set LinkSet, formats []string) Links {
	rel := set.Relation
	if rel == "" {
		rel = RelService
	}
	ret := make(Links, 0, len(formats))
	for _, f := range formats {
		link := Link{
			HREF:           buildURL(baseURL, set.Path, f),
			Rel:            rel,
			Type:           f,
			Title:          set.TitlePrefix + f,
			Classification: set.Classification,
		}
		ret = append(ret, set.Transform.Apply(f, link))
	}
	return ret
}

func buildURL(baseURL, path, format string) string {
	return strings.TrimSuffix(baseURL, "/") + path + "?" + url.Values{"f": {format}}.Encode()
}

func collectionPath(id string) string {
	return "/collections/" + url.PathEscape(id)
}
