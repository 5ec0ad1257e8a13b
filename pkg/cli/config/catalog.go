package config

import (
	"github.com/urfave/cli/v3"

	domainConfig "github.com/estima-lab/pertcost/pkg/domain/model/config"
)

// Catalog holds the CLI flag for the estimation catalog file
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to the estimation catalog TOML file",
			Sources:     cli.EnvVars("PERTCOST_CATALOG"),
			Destination: &c.path,
		},
	}
}

// Path returns the configured catalog file path
func (c *Catalog) Path() string {
	return c.path
}

// Load parses and validates the catalog file. Returns nil when no catalog
// path is configured; lookups then resolve only against what the backend
// already holds.
func (c *Catalog) Load() (*domainConfig.Catalog, error) {
	if c.path == "" {
		return nil, nil
	}

	appConfig, err := LoadAppConfiguration(c.path)
	if err != nil {
		return nil, err
	}
	return appConfig.ToCatalog(), nil
}
