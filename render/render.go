// Package render encodes documents in the formats the service supports.
package render

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
	"gopkg.in/yaml.v3"

	"github.com/ccbrown/wfs-fu/format"
)

// Renderer writes the encoding of a document to w.
type Renderer interface {
	Render(w io.Writer, v any) error
}

type RendererFunc func(w io.Writer, v any) error

func (f RendererFunc) Render(w io.Writer, v any) error {
	return f(w, v)
}

// Registry maps formats to their renderers.
type Registry map[string]Renderer

// Default returns a registry with renderers for every format of format.DefaultRegistry except
// the feature encodings, plus MessagePack.
func Default() Registry {
	return Registry{
		format.JSON:    RendererFunc(JSON),
		format.XML:     RendererFunc(XML),
		format.YAML:    RendererFunc(YAML),
		format.MsgPack: RendererFunc(MsgPack),
		format.HTML:    NewHTML(),
	}
}

// Lookup returns the renderer for the given format.
func (r Registry) Lookup(f string) (Renderer, bool) {
	renderer, ok := r[f]
	return renderer, ok
}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// genericAPI decodes numbers as json.Number so that integers survive conversion to YAML and
// MessagePack.
var genericAPI = jsoniter.Config{
	EscapeHTML:  true,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

// JSON renders v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := jsonAPI.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// generic converts v to maps, slices and scalars following its JSON field names, so that every
// format shares the JSON member names.
func generic(v any) (any, error) {
	b, err := jsonAPI.Marshal(v)
	if err != nil {
		return nil, err
	}
	var ret any
	if err := genericAPI.Unmarshal(b, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// YAML renders v as YAML using the JSON member names.
func YAML(w io.Writer, v any) error {
	g, err := generic(v)
	if err != nil {
		return errors.Wrap(err, "error converting document")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return err
	}
	return enc.Close()
}

func normalizeNumbers(v any) any {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		for k, child := range v {
			v[k] = normalizeNumbers(child)
		}
	case []any:
		for i, child := range v {
			v[i] = normalizeNumbers(child)
		}
	}
	return v
}

// MsgPack renders v as MessagePack using the JSON member names.
func MsgPack(w io.Writer, v any) error {
	g, err := generic(v)
	if err != nil {
		return errors.Wrap(err, "error converting document")
	}
	return msgpack.NewEncoder(w).SortMapKeys(true).Encode(normalizeNumbers(g))
}

// XML renders v with encoding/xml. Documents containing maps, such as the API description,
// can't be rendered as XML.
func XML(w io.Writer, v any) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
