package wfsfu

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ccbrown/wfs-fu/catalog"
	"github.com/ccbrown/wfs-fu/format"
	"github.com/ccbrown/wfs-fu/render"
)

// Config defines the data sources and other parameters for an API.
type Config struct {
	Logger logrus.FieldLogger

	// The catalog of queryable collections. It is read on every request, so changes are visible
	// immediately. Required.
	Catalog catalog.View

	// Service-wide limits. Read on every request. Required. If it also implements
	// catalog.Describer, its title and description are used by the landing page and the API
	// description.
	Service catalog.ServiceConfig

	// The formats each kind of document can be rendered in. Defaults to format.DefaultRegistry.
	Formats format.Registry

	// Renderers for the formats in Formats. Defaults to render.Default(). Feature formats don't
	// need a renderer here since features are served by the Features handler.
	Renderers render.Registry

	// The requirement classes declared by the conformance document. If empty,
	// document.DefaultConformanceClasses are declared.
	ConformsTo []string

	// If given, links and the API description's server use this URL. Otherwise the base URL is
	// derived from each request's scheme and host followed by PathPrefix.
	BaseURL string

	// The path the API is mounted at, e.g. "/geoserver/wfs3". Only used when BaseURL is empty.
	PathPrefix string

	// If given, item requests for collections that exist are delegated to this handler. The
	// handler can get the details of the request with CtxFeatureRequest. If nil, item requests
	// are answered with 501 Not Implemented.
	Features http.Handler
}

func (cfg *Config) validate() error {
	if cfg.Catalog == nil {
		return errors.New("a catalog is required")
	}
	if cfg.Service == nil {
		return errors.New("a service config is required")
	}
	return nil
}

func (cfg *Config) formats() format.Registry {
	if cfg.Formats == nil {
		return format.DefaultRegistry
	}
	return cfg.Formats
}

func (cfg *Config) renderers() render.Registry {
	if cfg.Renderers == nil {
		return render.Default()
	}
	return cfg.Renderers
}
