package apidoc

import (
	"github.com/ccbrown/wfs-fu/catalog"
	"github.com/ccbrown/wfs-fu/format"
)

const (
	openAPIVersion = "3.0.1"
	apiVersion     = "1.0.0"
	defaultTitle   = "Web Feature Service 3.0"
)

// Builder builds API descriptions. The zero value uses format.DefaultRegistry.
type Builder struct {
	Formats format.Registry
}

func intPtr(n int) *int {
	return &n
}

func boolPtr(b bool) *bool {
	return &b
}

// Build generates the description of the API mounted at baseURL. The catalog and service
// configuration are read on every call and never modified, so changes to either are reflected
// by the next build.
func (b Builder) Build(baseURL string, view catalog.View, svc catalog.ServiceConfig) *Document {
	reg := b.Formats
	if reg == nil {
		reg = format.DefaultRegistry
	}

	doc := &Document{
		OpenAPI: openAPIVersion,
		Info: Info{
			Title:   defaultTitle,
			Version: apiVersion,
		},
		Servers: []Server{{URL: baseURL}},
		Paths:   make(map[string]*PathItem, len(Routes)),
		Components: Components{
			Parameters: parameters(view, svc),
		},
	}
	if d, ok := svc.(catalog.Describer); ok {
		if title := d.Title(); title != "" {
			doc.Info.Title = title
		}
		doc.Info.Description = d.Description()
	}

	for _, route := range Routes {
		doc.Paths[route.Path] = &PathItem{
			Get: operation(route, reg),
		}
	}
	return doc
}

func operation(route Route, reg format.Registry) *Operation {
	content := map[string]*MediaType{}
	for _, f := range reg.SupportedFormats(route.Kind) {
		content[f] = &MediaType{}
	}
	op := &Operation{
		OperationID: route.OperationID,
		Summary:     route.Summary,
		Tags:        append([]string(nil), route.Tags...),
		Responses: map[string]*Response{
			"200": {
				Description: "successful operation",
				Content:     content,
			},
		},
	}
	for _, name := range route.Parameters {
		op.Parameters = append(op.Parameters, &Parameter{
			Ref: "#/components/parameters/" + name,
		})
		if name == ParamCollectionID {
			op.Responses["404"] = &Response{
				Description: "the collection does not exist",
			}
		}
	}
	return op
}

func parameters(view catalog.View, svc catalog.ServiceConfig) map[string]*Parameter {
	maxPageSize := svc.MaxPageSize()
	return map[string]*Parameter{
		ParamCollectionID: {
			Name:        ParamCollectionID,
			In:          "path",
			Description: "Identifier (name) of a specific collection",
			Required:    true,
			// An empty catalog leaves the schema unconstrained, since OpenAPI 3.0 doesn't allow an
			// empty enum.
			Schema: &Schema{
				Type: "string",
				Enum: catalog.IDs(view),
			},
		},
		ParamFeatureID: {
			Name:        ParamFeatureID,
			In:          "path",
			Description: "Local identifier of a specific feature",
			Required:    true,
			Schema: &Schema{
				Type: "string",
			},
		},
		// TODO: the default equals the maximum, so clients that don't page get the largest
		// allowed page. Revisit once a smaller default page size is agreed on.
		ParamLimit: {
			Name:        ParamLimit,
			In:          "query",
			Description: "The optional limit parameter limits the number of items that are presented in the response document.",
			Style:       "form",
			Explode:     boolPtr(false),
			Schema: &Schema{
				Type:    "integer",
				Minimum: intPtr(1),
				Maximum: intPtr(maxPageSize),
				Default: maxPageSize,
			},
		},
		ParamBBox: {
			Name:        ParamBBox,
			In:          "query",
			Description: "Only features that have a geometry that intersects the bounding box are selected.",
			Style:       "form",
			Explode:     boolPtr(false),
			Schema: &Schema{
				Type:     "array",
				MinItems: intPtr(4),
				MaxItems: intPtr(6),
				Items: &Schema{
					Type: "number",
				},
			},
		},
		ParamTime: {
			Name:        ParamTime,
			In:          "query",
			Description: "Either a date-time or a period string that adheres to RFC 3339.",
			Style:       "form",
			Explode:     boolPtr(false),
			Schema: &Schema{
				Type: "string",
			},
		},
	}
}
