package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeID(t *testing.T) {
	assert.Equal(t, "cite__Buildings", EncodeID("cite:Buildings"))
	assert.Equal(t, "Streams", EncodeID("Streams"))
	assert.Equal(t, "cite:Buildings", DecodeID("cite__Buildings"))
	assert.Equal(t, "Streams", DecodeID("Streams"))
	assert.Equal(t, "__x", DecodeID("__x"))

	for _, name := range []string{"cite:Buildings", "sf:roads", "plain"} {
		assert.Equal(t, name, DecodeID(EncodeID(name)))
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory(
		Collection{Name: "cite:Buildings", Extent: &Extent{BBox: [4]float64{0, 0, 1, 1}}},
		Collection{Name: "cite:Lakes"},
	)
	assert.Equal(t, []string{"cite__Buildings", "cite__Lakes"}, IDs(m))

	require.NoError(t, m.Add(Collection{Name: "sf:roads"}))
	assert.Error(t, m.Add(Collection{Name: "sf:roads"}))
	assert.Equal(t, []string{"cite__Buildings", "cite__Lakes", "sf__roads"}, IDs(m))

	c, ok := Find(m, "cite__Buildings")
	require.True(t, ok)
	assert.Equal(t, "cite:Buildings", c.Name)
	_, ok = Find(m, "cite:Buildings")
	assert.False(t, ok)

	// returned collections are copies
	c.Extent.BBox[0] = 42
	c, _ = Find(m, "cite__Buildings")
	assert.Equal(t, 0.0, c.Extent.BBox[0])

	assert.True(t, m.Remove("cite:Lakes"))
	assert.False(t, m.Remove("cite:Lakes"))
	assert.Equal(t, []string{"cite__Buildings", "sf__roads"}, IDs(m))
}

func TestMemory_Concurrency(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			m.Add(Collection{Name: string(rune('a' + i))})
		}(i)
		go func() {
			defer wg.Done()
			m.ListCollections()
		}()
	}
	wg.Wait()
	assert.Len(t, m.ListCollections(), 10)
}

func TestWorkspace(t *testing.T) {
	m := NewMemory(
		Collection{Name: "cite:Buildings"},
		Collection{Name: "cdf:Fifteen"},
		Collection{Name: "cdf:Other"},
		Collection{Name: "cdfx:Nope"},
		Collection{Name: "Streams"},
	)
	ws := Workspace{View: m, Name: "cdf"}
	assert.Equal(t, []string{"cdf__Fifteen", "cdf__Other"}, IDs(ws))

	_, ok := Find(ws, "cdf__Fifteen")
	assert.True(t, ok)
	_, ok = Find(ws, "cite__Buildings")
	assert.False(t, ok)

	require.NoError(t, m.Add(Collection{Name: "cdf:Added"}))
	assert.Len(t, ws.ListCollections(), 3)

	assert.Empty(t, Workspace{View: m, Name: "sf"}.ListCollections())
}

func TestSettings(t *testing.T) {
	var s Settings
	assert.Equal(t, DefaultMaxPageSize, s.MaxPageSize())
	s.SetMaxPageSize(50)
	assert.Equal(t, 50, s.MaxPageSize())
	s.SetDescription("Title", "Description")
	assert.Equal(t, "Title", s.Title())
	assert.Equal(t, "Description", s.Description())
}

const testFile = `
service:
  title: Demo
  description: A demo service
  maxPageSize: 500
conformsTo:
  - http://www.opengis.net/spec/wfs-1/3.0/req/core
formats:
  api: [json, yaml]
collections:
  - name: cite:Buildings
    title: Buildings
    bbox: [-180, -90, 180, 90]
    crs: http://www.opengis.net/def/crs/OGC/1.3/CRS84
    start: 2018-01-01T00:00:00Z
  - name: cite:Lakes
    formats: [geojson]
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testFile), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Demo", f.Service.Title)
	assert.Equal(t, []string{"json", "yaml"}, f.Formats["api"])
	assert.Len(t, f.ConformsTo, 1)

	m := NewMemory(Collection{Name: "old:one"})
	var s Settings
	f.Apply(m, &s)

	assert.Equal(t, 500, s.MaxPageSize())
	assert.Equal(t, "A demo service", s.Description())
	collections := m.ListCollections()
	require.Len(t, collections, 2)
	assert.Equal(t, "Buildings", collections[0].Title)
	require.NotNil(t, collections[0].Extent)
	assert.Equal(t, [4]float64{-180, -90, 180, 90}, collections[0].Extent.BBox)
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), collections[0].Extent.Start)
	assert.True(t, collections[0].Extent.End.IsZero())
	assert.Nil(t, collections[1].Extent)
	assert.Equal(t, []string{"geojson"}, collections[1].Formats)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseFile_Invalid(t *testing.T) {
	for name, src := range map[string]string{
		"Syntax":        "service: [",
		"NegativeLimit": "service: {maxPageSize: -1}",
		"NoName":        "collections: [{title: x}]",
		"Duplicate":     "collections: [{name: a}, {name: a}]",
		"BBox":          "collections: [{name: a, bbox: [1, 2, 3]}]",
		"Time":          "collections: [{name: a, start: yesterday}]",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFile([]byte(src))
			assert.Error(t, err)
		})
	}
}
