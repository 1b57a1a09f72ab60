package handlers

import (
	"context"

	"newsdesk/internal/core"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// FeatureLister reports the registered features
type FeatureLister interface {
	Status() map[string]core.FeatureStatus
}
