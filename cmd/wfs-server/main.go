package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	wfsfu "github.com/ccbrown/wfs-fu"
	"github.com/ccbrown/wfs-fu/catalog"
	"github.com/ccbrown/wfs-fu/format"
)

type server struct {
	logger     *logrus.Logger
	configPath string
	catalog    *catalog.Memory
	settings   *catalog.Settings
	api        *wfsfu.API

	// APIs restricted to a single workspace, by workspace name.
	workspaces map[string]*wfsfu.API
}

func newLogger(debug, jsonOutput bool) *logrus.Logger {
	logger := logrus.New()
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// workspacePrefix inserts the workspace before the last segment of a mount path, so that
// "/geoserver/wfs3" becomes "/geoserver/cdf/wfs3".
func workspacePrefix(prefix, workspace string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	i := strings.LastIndex(prefix, "/")
	if i < 0 {
		return "/" + workspace
	}
	return prefix[:i] + "/" + workspace + prefix[i:]
}

func workspaceURL(baseURL, workspace string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", errors.Wrap(err, "invalid base url")
	}
	u.Path = workspacePrefix(u.Path, workspace)
	return u.String(), nil
}

func newServer(logger *logrus.Logger, configPath, baseURL, prefix string, workspaces []string) (*server, error) {
	s := &server{
		logger:     logger,
		configPath: configPath,
		catalog:    catalog.NewMemory(),
		settings:   &catalog.Settings{},
		workspaces: map[string]*wfsfu.API{},
	}

	cfg := &wfsfu.Config{
		Logger:     logger,
		Catalog:    s.catalog,
		Service:    s.settings,
		BaseURL:    baseURL,
		PathPrefix: prefix,
	}

	if configPath != "" {
		file, err := catalog.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		registry, err := format.ParseRegistry(file.Formats)
		if err != nil {
			return nil, errors.Wrap(err, "invalid formats")
		}
		cfg.Formats = registry
		cfg.ConformsTo = file.ConformsTo
		file.Apply(s.catalog, s.settings)
	}

	api, err := wfsfu.NewAPI(cfg)
	if err != nil {
		return nil, err
	}
	s.api = api

	for _, name := range workspaces {
		wcfg := *cfg
		wcfg.Catalog = catalog.Workspace{View: s.catalog, Name: name}
		wcfg.PathPrefix = workspacePrefix(prefix, name)
		if baseURL != "" {
			if wcfg.BaseURL, err = workspaceURL(baseURL, name); err != nil {
				return nil, err
			}
		}
		if s.workspaces[name], err = wfsfu.NewAPI(&wcfg); err != nil {
			return nil, errors.Wrapf(err, "unable to create api for workspace %v", name)
		}
	}
	return s, nil
}

// reload re-reads the collections and service settings. Format and conformance changes require
// a restart.
func (s *server) reload() error {
	if s.configPath == "" {
		return nil
	}
	file, err := catalog.LoadFile(s.configPath)
	if err != nil {
		return err
	}
	file.Apply(s.catalog, s.settings)
	s.logger.WithFields(logrus.Fields{
		"collections": len(s.catalog.ListCollections()),
		"maxPageSize": s.settings.MaxPageSize(),
	}).Info("configuration reloaded")
	return nil
}

func mount(router *mux.Router, prefix string, api http.Handler) {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		router.PathPrefix("/").Handler(api)
		return
	}
	api = http.StripPrefix(prefix, api)
	router.Handle(prefix, api)
	router.PathPrefix(prefix + "/").Handler(api)
}

func (s *server) handler(prefix string) http.Handler {
	router := mux.NewRouter()
	for name, api := range s.workspaces {
		mount(router, workspacePrefix(prefix, name), api)
	}
	mount(router, prefix, s.api)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "HEAD", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Accept", "Content-Type"}),
	)
	return handlers.LoggingHandler(s.logger.Writer(), cors(router))
}

func main() {
	addr := pflag.String("addr", ":8080", "the address to listen on")
	configPath := pflag.String("config", "", "the path to a yaml service and catalog description")
	baseURL := pflag.String("base-url", "", "the externally visible base url, derived from requests if empty")
	prefix := pflag.String("prefix", "", "the path the service is mounted at, such as /geoserver/wfs3")
	debug := pflag.Bool("debug", false, "enable debug logging")
	logJSON := pflag.Bool("log-json", false, "log as json")
	workspaces := pflag.StringArray("workspace", nil, "also serve the collections of this workspace at their own path, such as /geoserver/cdf/wfs3")
	pflag.Parse()

	logger := newLogger(*debug, *logJSON)

	s, err := newServer(logger, *configPath, *baseURL, *prefix, *workspaces)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	server := &http.Server{
		Addr:        *addr,
		Handler:     s.handler(*prefix),
		ReadTimeout: 2 * time.Minute,
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		for sig := range ch {
			if sig == syscall.SIGHUP {
				if err := s.reload(); err != nil {
					logger.WithError(err).Error("unable to reload configuration")
				}
				continue
			}
			logger.Info("signal caught. shutting down...")
			cancel()
			return
		}
	}()

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error(err)
		}
	}()

	logger.Infof("listening at %v", *addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error(err)
	}
}
