// Package apidoc generates the OpenAPI description of the service.
package apidoc

// Document is an OpenAPI 3 document. Only the parts the service emits are modeled.
type Document struct {
	OpenAPI    string               `json:"openapi"`
	Info       Info                 `json:"info"`
	Servers    []Server             `json:"servers"`
	Paths      map[string]*PathItem `json:"paths"`
	Components Components           `json:"components"`
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type PathItem struct {
	Get *Operation `json:"get,omitempty"`
}

type Operation struct {
	OperationID string               `json:"operationId"`
	Summary     string               `json:"summary,omitempty"`
	Tags        []string             `json:"tags,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty"`
	Responses   map[string]*Response `json:"responses"`
}

type Response struct {
	Description string                `json:"description"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// Parameter is either a reference to a parameter in the components section or a full
// definition.
type Parameter struct {
	Ref         string  `json:"$ref,omitempty"`
	Name        string  `json:"name,omitempty"`
	In          string  `json:"in,omitempty"`
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required,omitempty"`
	Style       string  `json:"style,omitempty"`
	Explode     *bool   `json:"explode,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
}

type Schema struct {
	Ref      string   `json:"$ref,omitempty"`
	Type     string   `json:"type,omitempty"`
	Format   string   `json:"format,omitempty"`
	Enum     []string `json:"enum,omitempty"`
	Minimum  *int     `json:"minimum,omitempty"`
	Maximum  *int     `json:"maximum,omitempty"`
	Default  any      `json:"default,omitempty"`
	Items    *Schema  `json:"items,omitempty"`
	MinItems *int     `json:"minItems,omitempty"`
	MaxItems *int     `json:"maxItems,omitempty"`
}

type Components struct {
	Parameters map[string]*Parameter `json:"parameters"`
}

// Operation returns the GET operation of the given path, or nil.
func (d *Document) Operation(path string) *Operation {
	if item, ok := d.Paths[path]; ok {
		return item.Get
	}
	return nil
}

// Parameter returns the named component parameter, or nil.
func (d *Document) Parameter(name string) *Parameter {
	return d.Components.Parameters[name]
}

// ParameterRefs returns the references of an operation's parameters, in order.
func (o *Operation) ParameterRefs() []string {
	ret := make([]string, len(o.Parameters))
	for i, p := range o.Parameters {
		ret[i] = p.Ref
	}
	return ret
}
