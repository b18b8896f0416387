package apidoc

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbrown/wfs-fu/catalog"
	"github.com/ccbrown/wfs-fu/format"
)

const testBaseURL = "http://localhost:8080/geoserver/wfs3"

func testInputs() (*catalog.Memory, *catalog.Settings) {
	view := catalog.NewMemory(
		catalog.Collection{Name: "cite:Buildings"},
		catalog.Collection{Name: "cite:Lakes"},
		catalog.Collection{Name: "Streams"},
	)
	settings := &catalog.Settings{}
	settings.SetMaxPageSize(500)
	return view, settings
}

func TestBuild(t *testing.T) {
	view, settings := testInputs()
	doc := Builder{}.Build(testBaseURL, view, settings)

	assert.Equal(t, "3.0.1", doc.OpenAPI)
	assert.Equal(t, []Server{{URL: testBaseURL}}, doc.Servers)
	assert.Equal(t, defaultTitle, doc.Info.Title)

	require.Len(t, doc.Paths, 6)
	for _, route := range []struct {
		path        string
		operationID string
	}{
		{"/", "getLandingPage"},
		{"/conformance", "getRequirementsClasses"},
		{"/collections", "describeCollections"},
		{"/collections/{collectionId}", "describeCollection"},
		{"/collections/{collectionId}/items", "getFeatures"},
		{"/collections/{collectionId}/items/{featureId}", "getFeature"},
	} {
		op := doc.Operation(route.path)
		require.NotNil(t, op, route.path)
		assert.Equal(t, route.operationID, op.OperationID)
	}
	assert.Nil(t, doc.Operation("/api"))

	assert.Equal(t, []string{
		"#/components/parameters/collectionId",
		"#/components/parameters/limit",
		"#/components/parameters/bbox",
		"#/components/parameters/time",
	}, doc.Operation("/collections/{collectionId}/items").ParameterRefs())
	assert.Equal(t, []string{
		"#/components/parameters/collectionId",
		"#/components/parameters/featureId",
	}, doc.Operation("/collections/{collectionId}/items/{featureId}").ParameterRefs())
	assert.Empty(t, doc.Operation("/").Parameters)

	// every route is a GET
	for path, item := range doc.Paths {
		require.NotNil(t, item.Get, path)
		b, err := jsoniter.Marshal(item)
		require.NoError(t, err)
		var methods map[string]jsoniter.RawMessage
		require.NoError(t, jsoniter.Unmarshal(b, &methods))
		assert.Len(t, methods, 1, path)
		assert.Contains(t, methods, "get", path)
	}

	// every reference resolves
	for path, item := range doc.Paths {
		for _, p := range item.Get.Parameters {
			name := p.Ref[len("#/components/parameters/"):]
			assert.NotNil(t, doc.Parameter(name), path)
		}
	}
}

func TestBuild_ResponseContent(t *testing.T) {
	view, settings := testInputs()
	doc := Builder{Formats: format.DefaultRegistry}.Build(testBaseURL, view, settings)

	content := doc.Operation("/").Responses["200"].Content
	assert.Len(t, content, 4)
	assert.Contains(t, content, format.HTML)

	content = doc.Operation("/collections/{collectionId}/items").Responses["200"].Content
	assert.Contains(t, content, format.GeoJSON)
	assert.Contains(t, content, format.GML32)

	assert.Contains(t, doc.Operation("/collections/{collectionId}").Responses, "404")
	assert.NotContains(t, doc.Operation("/collections").Responses, "404")
}

func TestBuild_CollectionID(t *testing.T) {
	view, settings := testInputs()
	builder := Builder{}

	param := builder.Build(testBaseURL, view, settings).Parameter(ParamCollectionID)
	require.NotNil(t, param)
	assert.Equal(t, "path", param.In)
	assert.True(t, param.Required)
	assert.Equal(t, []string{"cite__Buildings", "cite__Lakes", "Streams"}, param.Schema.Enum)
	assert.Equal(t, catalog.IDs(view), param.Schema.Enum)

	require.NoError(t, view.Add(catalog.Collection{Name: "sf:roads"}))
	param = builder.Build(testBaseURL, view, settings).Parameter(ParamCollectionID)
	assert.Equal(t, []string{"cite__Buildings", "cite__Lakes", "Streams", "sf__roads"}, param.Schema.Enum)

	view.Remove("cite:Lakes")
	param = builder.Build(testBaseURL, view, settings).Parameter(ParamCollectionID)
	assert.Equal(t, []string{"cite__Buildings", "Streams", "sf__roads"}, param.Schema.Enum)
}

func TestBuild_EmptyCatalog(t *testing.T) {
	_, settings := testInputs()
	view := catalog.NewMemory()

	param := Builder{}.Build(testBaseURL, view, settings).Parameter(ParamCollectionID)
	require.NotNil(t, param)
	assert.Empty(t, param.Schema.Enum)

	b, err := jsoniter.Marshal(param.Schema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "string"}`, string(b))

	require.NoError(t, view.Add(catalog.Collection{Name: "cite:Buildings"}))
	param = Builder{}.Build(testBaseURL, view, settings).Parameter(ParamCollectionID)
	assert.Equal(t, []string{"cite__Buildings"}, param.Schema.Enum)
}

func TestBuild_Limit(t *testing.T) {
	view, settings := testInputs()
	builder := Builder{}

	limit := builder.Build(testBaseURL, view, settings).Parameter(ParamLimit).Schema
	assert.Equal(t, "integer", limit.Type)
	require.NotNil(t, limit.Minimum)
	require.NotNil(t, limit.Maximum)
	assert.Equal(t, 1, *limit.Minimum)
	assert.Equal(t, 500, *limit.Maximum)
	assert.Equal(t, 500, limit.Default)

	settings.SetMaxPageSize(20)
	limit = builder.Build(testBaseURL, view, settings).Parameter(ParamLimit).Schema
	assert.Equal(t, 20, *limit.Maximum)
	assert.Equal(t, 20, limit.Default)
}

func TestBuild_Info(t *testing.T) {
	view, settings := testInputs()
	settings.SetDescription("Demo", "A demo service")
	doc := Builder{}.Build(testBaseURL, view, settings)
	assert.Equal(t, "Demo", doc.Info.Title)
	assert.Equal(t, "A demo service", doc.Info.Description)
}

type fixedLimit int

func (n fixedLimit) MaxPageSize() int {
	return int(n)
}

func TestBuild_Idempotent(t *testing.T) {
	view, _ := testInputs()
	before := catalog.IDs(view)
	assert.Equal(t,
		Builder{}.Build(testBaseURL, view, fixedLimit(100)),
		Builder{}.Build(testBaseURL, view, fixedLimit(100)),
	)
	assert.Equal(t, before, catalog.IDs(view))
}
