package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// FeatureStatus is the health view of one registered feature
type FeatureStatus struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// Registry holds features in registration order. Init walks that order and
// Shutdown walks it backwards, so later features may depend on earlier ones.
type Registry struct {
	mu       sync.RWMutex
	features []Feature
	logger   *Logger
}

func NewRegistry(logger *Logger) *Registry {
	return &Registry{logger: logger}
}

// Register appends features. A name may only be registered once.
func (r *Registry) Register(features ...Feature) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range features {
		if r.lookup(f.Name()) != nil {
			return fmt.Errorf("feature %s already registered", f.Name())
		}
		r.features = append(r.features, f)
		r.logger.Info("Registered feature", "name", f.Name(), "enabled", f.Enabled())
	}
	return nil
}

func (r *Registry) lookup(name string) Feature {
	for _, f := range r.features {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// Get returns the feature registered under name
func (r *Registry) Get(name string) (Feature, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f := r.lookup(name)
	return f, f != nil
}

func (r *Registry) enabled() []Feature {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Feature
	for _, f := range r.features {
		if f.Enabled() {
			out = append(out, f)
		}
	}
	return out
}

// Init initializes enabled features in order. When one fails, the features
// already initialized are shut down again before the error is returned.
func (r *Registry) Init(ctx context.Context) error {
	features := r.enabled()
	r.logger.Info("Initializing features", "count", len(features))

	for i, f := range features {
		if err := f.Init(ctx); err != nil {
			shutdownErr := shutdownReverse(ctx, features[:i])
			return errors.Join(fmt.Errorf("init feature %s: %w", f.Name(), err), shutdownErr)
		}
	}
	return nil
}

// Shutdown stops enabled features in reverse order. Every feature gets its
// turn; the failures come back joined.
func (r *Registry) Shutdown(ctx context.Context) error {
	features := r.enabled()
	r.logger.Info("Shutting down features", "count", len(features))

	err := shutdownReverse(ctx, features)
	if err != nil {
		r.logger.Error("Feature shutdown failed", "error", err)
	}
	return err
}

func shutdownReverse(ctx context.Context, features []Feature) error {
	var errs []error
	for i := len(features) - 1; i >= 0; i-- {
		if err := features[i].Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown feature %s: %w", features[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Routes collects the routes of enabled features
func (r *Registry) Routes() []Route {
	var routes []Route
	for _, f := range r.enabled() {
		routes = append(routes, f.Routes()...)
	}
	return routes
}

// Status reports every registered feature, enabled or not
func (r *Registry) Status() map[string]FeatureStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := make(map[string]FeatureStatus, len(r.features))
	for _, f := range r.features {
		status[f.Name()] = FeatureStatus{
			Name:        f.Name(),
			Description: f.Description(),
			Enabled:     f.Enabled(),
		}
	}
	return status
}
