package core

import (
	"context"
	"net/http"
)

// Feature is a self-contained slice of newsdesk: its storage setup, its
// services and the routes it serves.
type Feature interface {
	Name() string
	Description() string
	Enabled() bool

	// Init runs once at startup, after the shared store is prepared
	Init(ctx context.Context) error

	Routes() []Route

	Shutdown(ctx context.Context) error
}

// Route binds a handler to a method and chi pattern
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// BaseFeature carries a feature's identity and no-op lifecycle hooks.
// Features embed it and override the hooks they need. Typed settings stay on
// the embedding feature.
type BaseFeature struct {
	name        string
	description string
	enabled     bool
	logger      *Logger
}

func NewBaseFeature(name, description string, enabled bool, logger *Logger) *BaseFeature {
	return &BaseFeature{
		name:        name,
		description: description,
		enabled:     enabled,
		logger:      logger,
	}
}

func (f *BaseFeature) Name() string        { return f.name }
func (f *BaseFeature) Description() string { return f.description }
func (f *BaseFeature) Enabled() bool       { return f.enabled }

// Logger is tagged with the feature name
func (f *BaseFeature) Logger() *Logger {
	return f.logger.ForFeature(f.name)
}

func (f *BaseFeature) Init(ctx context.Context) error {
	f.Logger().Debug("Feature has no init work")
	return nil
}

func (f *BaseFeature) Routes() []Route { return nil }

func (f *BaseFeature) Shutdown(ctx context.Context) error { return nil }
