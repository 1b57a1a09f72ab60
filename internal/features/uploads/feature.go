package uploads

import (
	"context"
	"net/http"

	"newsdesk/internal/core"
	"newsdesk/internal/features/uploads/handlers"
)

// Feature serves file uploads to object storage
type Feature struct {
	*core.BaseFeature
	service *Service
	api     *handlers.APIHandler
}

// NewFeature creates the uploads feature on top of store
func NewFeature(logger *core.Logger, config core.UploadsConfig, store ObjectStore) *Feature {
	featureLogger := logger.ForFeature("uploads")
	service := NewService(store, config.PublicURL, featureLogger)

	return &Feature{
		BaseFeature: core.NewBaseFeature("uploads", "Image uploads to object storage", config.Enabled, logger),
		service:     service,
		api:         handlers.NewAPIHandler(featureLogger, service, config.MaxBytes),
	}
}

// Init logs the storage target
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}
	f.Logger().Info("Uploads feature initialized", "public_url", f.service.publicURL)
	return nil
}

// Routes returns the HTTP routes for the uploads feature
func (f *Feature) Routes() []core.Route {
	return []core.Route{
		{Method: http.MethodPost, Path: "/api/upload", Handler: f.api.Upload},
	}
}

// GetService returns the upload service
func (f *Feature) GetService() *Service {
	return f.service
}
