package negotiation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbrown/wfs-fu/format"
)

var supported = []string{format.JSON, format.YAML, format.HTML}

func TestResolve(t *testing.T) {
	t.Run("FirstAcceptableWins", func(t *testing.T) {
		f, err := Resolve("", []string{"foo/bar", format.YAML, format.HTML}, supported, format.JSON)
		require.NoError(t, err)
		assert.Equal(t, format.YAML, f)
	})

	t.Run("ExplicitBeatsAccepted", func(t *testing.T) {
		f, err := Resolve(format.HTML, []string{format.YAML}, supported, format.JSON)
		require.NoError(t, err)
		assert.Equal(t, format.HTML, f)
	})

	t.Run("ExplicitAlias", func(t *testing.T) {
		f, err := Resolve("yaml", nil, supported, format.JSON)
		require.NoError(t, err)
		assert.Equal(t, format.YAML, f)
	})

	t.Run("ExplicitUnsupported", func(t *testing.T) {
		_, err := Resolve("xml", []string{format.YAML}, supported, format.JSON)
		var unsupported *UnsupportedFormatError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "xml", unsupported.Format)
		assert.Equal(t, supported, unsupported.Supported)
	})

	t.Run("NothingAcceptable", func(t *testing.T) {
		f, err := Resolve("", []string{"foo/bar", "image/png"}, supported, format.JSON)
		require.NoError(t, err)
		assert.Equal(t, format.JSON, f)
	})

	t.Run("NoHints", func(t *testing.T) {
		f, err := Resolve("", nil, supported, format.JSON)
		require.NoError(t, err)
		assert.Equal(t, format.JSON, f)
	})

	t.Run("Wildcards", func(t *testing.T) {
		f, err := Resolve("", []string{"*/*"}, supported, format.JSON)
		require.NoError(t, err)
		assert.Equal(t, format.JSON, f)

		f, err = Resolve("", []string{"text/*", format.JSON}, supported, format.JSON)
		require.NoError(t, err)
		assert.Equal(t, format.HTML, f)
	})

	t.Run("ParameterizedFormat", func(t *testing.T) {
		features := []string{format.GeoJSON, format.GML32}
		f, err := Resolve("", []string{"application/gml+xml"}, features, format.GeoJSON)
		require.NoError(t, err)
		assert.Equal(t, format.GML32, f)
	})
}

func TestParseAccept(t *testing.T) {
	assert.Equal(t,
		[]string{"foo/bar", format.YAML, format.HTML},
		ParseAccept([]string{"foo/bar, application/x-yaml, text/html"}),
	)

	assert.Equal(t,
		[]string{format.HTML, "application/xhtml+xml", format.XML, "*/*"},
		ParseAccept([]string{"text/html,application/xhtml+xml,text/xml;q=0.9,*/*;q=0.8"}),
	)

	assert.Equal(t,
		[]string{format.YAML, format.JSON},
		ParseAccept([]string{"application/json;q=0.5", "application/x-yaml", "text/html;q=0", "text/"}),
	)

	assert.Empty(t, ParseAccept(nil))
}
