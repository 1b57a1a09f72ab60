package articles

import (
	"newsdesk/internal/core"
)

// Config represents article feature configuration
type Config struct {
	core.ArticlesConfig
	Driver string
}

// NewConfig creates article config from core config
func NewConfig(coreConfig *core.Config) *Config {
	return &Config{
		ArticlesConfig: coreConfig.Features.Articles,
		Driver:         coreConfig.Database.Driver,
	}
}
