// Package negotiation picks the single format a document is rendered in.
package negotiation

import (
	"fmt"
	"mime"
	"sort"
	"strconv"
	"strings"

	"github.com/ccbrown/wfs-fu/format"
)

// UnsupportedFormatError is returned when a format was requested explicitly but the document
// can't be rendered in it.
type UnsupportedFormatError struct {
	Format    string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q, supported formats are: %v", e.Format, strings.Join(e.Supported, ", "))
}

// Resolve chooses the output format.
//
// An explicit format always wins and is an error if it isn't supported. Otherwise the first
// accepted media type that is supported is used. If nothing is acceptable, fallback is
// returned: an unsatisfiable accept list is never an error.
func Resolve(explicit string, accepted []string, supported []string, fallback string) (string, error) {
	if explicit != "" {
		f := format.Canonical(explicit)
		for _, s := range supported {
			if s == f {
				return s, nil
			}
		}
		return "", &UnsupportedFormatError{
			Format:    explicit,
			Supported: append([]string(nil), supported...),
		}
	}

	for _, a := range accepted {
		if f, ok := match(a, supported, fallback); ok {
			return f, nil
		}
	}
	return fallback, nil
}

func match(accepted string, supported []string, fallback string) (string, bool) {
	accepted = strings.ToLower(strings.TrimSpace(accepted))
	if accepted == "*/*" {
		return fallback, true
	}
	if strings.HasSuffix(accepted, "/*") {
		prefix := strings.TrimSuffix(accepted, "*")
		for _, s := range supported {
			if strings.HasPrefix(baseType(s), prefix) {
				return s, true
			}
		}
		return "", false
	}
	for _, s := range supported {
		if s == accepted {
			return s, true
		}
	}
	for _, s := range supported {
		if baseType(s) == accepted {
			return s, true
		}
	}
	return "", false
}

// baseType strips parameters, so "application/gml+xml; version=3.2" matches an accept entry of
// "application/gml+xml".
func baseType(f string) string {
	if mediaType, _, err := mime.ParseMediaType(f); err == nil {
		return mediaType
	}
	return strings.ToLower(f)
}

type acceptEntry struct {
	mediaType string
	q         float64
}

// ParseAccept turns Accept header values into a list of media types in preference order.
// Entries are ordered by descending quality; equal qualities keep their header order. Malformed
// entries and entries with q=0 are dropped.
func ParseAccept(values []string) []string {
	var entries []acceptEntry
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			mediaType, params, err := mime.ParseMediaType(part)
			if err != nil {
				continue
			}
			q := 1.0
			if v, ok := params["q"]; ok {
				parsed, err := strconv.ParseFloat(v, 64)
				if err != nil {
					continue
				}
				q = parsed
			}
			if q <= 0 {
				continue
			}
			entries = append(entries, acceptEntry{
				mediaType: mediaType,
				q:         q,
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].q > entries[j].q
	})
	ret := make([]string, len(entries))
	for i, e := range entries {
		ret[i] = e.mediaType
	}
	return ret
}
