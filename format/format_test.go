package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	assert.Equal(t, JSON, Canonical("json"))
	assert.Equal(t, YAML, Canonical(" YAML "))
	assert.Equal(t, GML32, Canonical("gml"))
	assert.Equal(t, "foo/bar", Canonical("foo/bar"))
	assert.Equal(t, JSON, Canonical(JSON))
}

func TestKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseKind("landing")
	assert.Error(t, err)
	assert.Equal(t, "Kind(42)", Kind(42).String())

	assert.Equal(t, JSON, Default(KindAPI))
	assert.Equal(t, GeoJSON, Default(KindFeatures))
}

func TestStaticRegistry(t *testing.T) {
	formats := DefaultRegistry.SupportedFormats(KindLandingPage)
	assert.Equal(t, []string{JSON, XML, YAML, HTML}, formats)

	// callers get a copy
	formats[0] = "mutated"
	assert.Equal(t, JSON, DefaultRegistry.SupportedFormats(KindLandingPage)[0])

	assert.True(t, Supports(DefaultRegistry, KindAPI, HTML))
	assert.False(t, Supports(DefaultRegistry, KindAPI, XML))
}

func TestParseRegistry(t *testing.T) {
	r, err := ParseRegistry(map[string][]string{
		"api": {"json", "yaml", "msgpack"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{JSON, YAML, MsgPack}, r.SupportedFormats(KindAPI))
	assert.Equal(t, DefaultRegistry.SupportedFormats(KindConformance), r.SupportedFormats(KindConformance))

	_, err = ParseRegistry(map[string][]string{"nope": {"json"}})
	assert.Error(t, err)

	_, err = ParseRegistry(map[string][]string{"api": {}})
	assert.Error(t, err)

	_, err = ParseRegistry(map[string][]string{"api": {"json", JSON}})
	assert.Error(t, err)
}
