// Package wfsfu serves the self-describing part of a feature API: the landing page, the
// conformance declaration, the collection descriptions and the OpenAPI description.
package wfsfu

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ccbrown/wfs-fu/apidoc"
	"github.com/ccbrown/wfs-fu/catalog"
	"github.com/ccbrown/wfs-fu/document"
	"github.com/ccbrown/wfs-fu/format"
	"github.com/ccbrown/wfs-fu/negotiation"
	"github.com/ccbrown/wfs-fu/render"
)

type API struct {
	config    *Config
	logger    logrus.FieldLogger
	formats   format.Registry
	renderers render.Registry
	apidoc    apidoc.Builder
	router    *mux.Router
}

func NewAPI(cfg *Config) (*API, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	api := &API{
		config:    cfg,
		logger:    logger,
		formats:   cfg.formats(),
		renderers: cfg.renderers(),
	}
	api.apidoc = apidoc.Builder{
		Formats: api.formats,
	}

	router := mux.NewRouter()
	router.Handle("/", api.document(format.KindLandingPage, api.landingPage)).Methods("GET", "HEAD")
	router.Handle("/landing", api.document(format.KindLandingPage, api.landingPage)).Methods("GET", "HEAD")
	router.Handle("/api", api.document(format.KindAPI, api.apiDescription)).Methods("GET", "HEAD")
	router.Handle("/conformance", api.document(format.KindConformance, api.conformance)).Methods("GET", "HEAD")
	router.Handle("/collections", api.document(format.KindCollections, api.collections)).Methods("GET", "HEAD")
	router.Handle("/collections/{collectionId}", api.document(format.KindCollection, api.collection)).Methods("GET", "HEAD")
	router.HandleFunc("/collections/{collectionId}/items", api.serveFeatures).Methods("GET", "HEAD")
	router.HandleFunc("/collections/{collectionId}/items/{featureId}", api.serveFeatures).Methods("GET", "HEAD")
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.writeError(w, r, errNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.writeError(w, r, errMethodNotAllowed)
	})
	api.router = router

	return api, nil
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "" {
		// mounted with http.StripPrefix and requested without a trailing slash
		r2 := new(http.Request)
		*r2 = *r
		u := *r.URL
		u.Path = "/"
		r2.URL = &u
		r = r2
	}
	api.router.ServeHTTP(w, r)
}

func (api *API) baseURL(r *http.Request) string {
	if api.config.BaseURL != "" {
		return strings.TrimSuffix(api.config.BaseURL, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	host := r.Host
	if forwarded := r.Header.Get("X-Forwarded-Host"); forwarded != "" {
		host = forwarded
	}
	return scheme + "://" + host + strings.TrimSuffix(api.config.PathPrefix, "/")
}

func negotiate(r *http.Request, supported []string, fallback string) (string, error) {
	return negotiation.Resolve(
		r.URL.Query().Get("f"),
		negotiation.ParseAccept(r.Header.Values("Accept")),
		supported,
		fallback,
	)
}

// fallbackFormat is the kind's default format, or the first supported one if the default isn't
// offered.
func fallbackFormat(kind format.Kind, supported []string) string {
	f := format.Default(kind)
	if len(supported) > 0 && !containsString(supported, f) {
		return supported[0]
	}
	return f
}

type documentBuilder func(r *http.Request, req document.Request) (any, error)

// document returns a handler that negotiates the format, builds a document of the given kind
// and renders it.
func (api *API) document(kind format.Kind, build documentBuilder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		supported := api.formats.SupportedFormats(kind)
		f, err := negotiate(r, supported, fallbackFormat(kind, supported))
		if err != nil {
			api.writeError(w, r, err)
			return
		}

		doc, err := build(r, document.Request{
			BaseURL: api.baseURL(r),
			Format:  f,
		})
		if err != nil {
			api.writeError(w, r, err)
			return
		}

		renderer, ok := api.renderers.Lookup(f)
		if !ok {
			api.writeError(w, r, errors.Errorf("no renderer for %v", f))
			return
		}
		var buf bytes.Buffer
		if err := renderer.Render(&buf, doc); err != nil {
			api.writeError(w, r, errors.Wrapf(err, "error rendering %v as %v", kind, f))
			return
		}

		w.Header().Set("Content-Type", f)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			buf.WriteTo(w)
		}

		api.logger.WithFields(logrus.Fields{
			"kind":   kind.String(),
			"format": f,
		}).Debug("served document")
	})
}

func (api *API) landingPage(r *http.Request, req document.Request) (any, error) {
	return document.NewLandingPage(req, api.formats, api.config.Service), nil
}

func (api *API) apiDescription(r *http.Request, req document.Request) (any, error) {
	return api.apidoc.Build(req.BaseURL, api.config.Catalog, api.config.Service), nil
}

func (api *API) conformance(r *http.Request, req document.Request) (any, error) {
	return document.NewConformance(req, api.formats, api.config.ConformsTo), nil
}

func (api *API) collections(r *http.Request, req document.Request) (any, error) {
	return document.NewCollections(req, api.formats, api.config.Catalog), nil
}

func (api *API) collection(r *http.Request, req document.Request) (any, error) {
	return document.NewCollection(req, api.formats, api.config.Catalog, mux.Vars(r)["collectionId"])
}

// FeatureRequest describes a validated item request handed to Config.Features.
type FeatureRequest struct {
	BaseURL      string
	CollectionID string
	Collection   catalog.Collection

	// Empty when the whole collection is requested.
	FeatureID string

	// The negotiated feature format.
	Format string

	// The page size limit in effect for this request.
	MaxPageSize int
}

type featureRequestContextKeyType int

var featureRequestContextKey featureRequestContextKeyType

// CtxFeatureRequest returns the feature request of a context passed to Config.Features, or nil.
func CtxFeatureRequest(ctx context.Context) *FeatureRequest {
	req, _ := ctx.Value(featureRequestContextKey).(*FeatureRequest)
	return req
}

func (api *API) serveFeatures(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["collectionId"]
	c, ok := catalog.Find(api.config.Catalog, id)
	if !ok {
		api.writeError(w, r, &document.UnknownCollectionError{ID: id})
		return
	}

	supported := api.formats.SupportedFormats(format.KindFeatures)
	if len(c.Formats) > 0 {
		supported = make([]string, len(c.Formats))
		for i, f := range c.Formats {
			supported[i] = format.Canonical(f)
		}
	}
	f, err := negotiate(r, supported, fallbackFormat(format.KindFeatures, supported))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	if api.config.Features == nil {
		api.writeError(w, r, errNotImplemented)
		return
	}

	ctx := context.WithValue(r.Context(), featureRequestContextKey, &FeatureRequest{
		BaseURL:      api.baseURL(r),
		CollectionID: id,
		Collection:   c,
		FeatureID:    vars["featureId"],
		Format:       f,
		MaxPageSize:  api.config.Service.MaxPageSize(),
	})
	api.config.Features.ServeHTTP(w, r.WithContext(ctx))
}

func containsString(list []string, s string) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}
