package catalog

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration of a deployment.
//
//	service:
//	  title: Demo
//	  maxPageSize: 500
//	formats:
//	  api: [json, yaml, html]
//	collections:
//	  - name: cite:Buildings
//	    bbox: [-180, -90, 180, 90]
type File struct {
	Service     ServiceFile         `yaml:"service"`
	ConformsTo  []string            `yaml:"conformsTo"`
	Formats     map[string][]string `yaml:"formats"`
	Collections []CollectionFile    `yaml:"collections"`

	collections []Collection
}

type ServiceFile struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	MaxPageSize int    `yaml:"maxPageSize"`
}

type CollectionFile struct {
	Name        string    `yaml:"name"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	BBox        []float64 `yaml:"bbox"`
	CRS         string    `yaml:"crs"`
	Start       string    `yaml:"start"`
	End         string    `yaml:"end"`
	Formats     []string  `yaml:"formats"`
}

// LoadFile reads and validates a configuration file.
func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading configuration")
	}
	f, err := ParseFile(b)
	if err != nil {
		return nil, errors.Wrapf(err, "error in %v", path)
	}
	return f, nil
}

// ParseFile decodes and validates a YAML configuration.
func ParseFile(b []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, errors.Wrap(err, "error parsing configuration")
	}
	if f.Service.MaxPageSize < 0 {
		return nil, errors.Errorf("maxPageSize must not be negative, got %v", f.Service.MaxPageSize)
	}
	names := map[string]struct{}{}
	for _, cf := range f.Collections {
		if cf.Name == "" {
			return nil, errors.New("collections must have a name")
		}
		if _, ok := names[cf.Name]; ok {
			return nil, errors.Errorf("duplicate collection %v", cf.Name)
		}
		names[cf.Name] = struct{}{}
		c, err := cf.collection()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid collection %v", cf.Name)
		}
		f.collections = append(f.collections, c)
	}
	return &f, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (cf CollectionFile) collection() (Collection, error) {
	c := Collection{
		Name:        cf.Name,
		Title:       cf.Title,
		Description: cf.Description,
		Formats:     cf.Formats,
	}
	if len(cf.BBox) == 0 && cf.Start == "" && cf.End == "" {
		return c, nil
	}
	extent := &Extent{
		CRS: cf.CRS,
	}
	switch len(cf.BBox) {
	case 0:
	case 4:
		copy(extent.BBox[:], cf.BBox)
	default:
		return c, errors.Errorf("bbox must have 4 values, got %v", len(cf.BBox))
	}
	var err error
	if extent.Start, err = parseTime(cf.Start); err != nil {
		return c, errors.Wrap(err, "invalid start")
	}
	if extent.End, err = parseTime(cf.End); err != nil {
		return c, errors.Wrap(err, "invalid end")
	}
	c.Extent = extent
	return c, nil
}

// Apply replaces the contents of the catalog and settings with the file's. Readers observe the
// change on their next read.
func (f *File) Apply(m *Memory, s *Settings) {
	m.Replace(f.collections)
	s.SetMaxPageSize(f.Service.MaxPageSize)
	s.SetDescription(f.Service.Title, f.Service.Description)
}
