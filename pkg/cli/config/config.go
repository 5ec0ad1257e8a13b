package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	domainConfig "github.com/estima-lab/pertcost/pkg/domain/model/config"
)

// AppConfig is the TOML schema of the estimation catalog: the weight levels
// used for risk exposure and the classification tables used for breakdown
// descriptions.
type AppConfig struct {
	Probability []WeightLevel `toml:"probability"`
	Severity    []WeightLevel `toml:"severity"`

	CostTypes            []LookupEntry `toml:"cost_type"`
	Regions              []LookupEntry `toml:"region"`
	Resources            []LookupEntry `toml:"resource"`
	Suppliers            []LookupEntry `toml:"supplier"`
	BusinessAreas        []LookupEntry `toml:"business_area"`
	EstimatingTechniques []LookupEntry `toml:"estimating_technique"`
}

// WeightLevel is a probability or severity level configuration
type WeightLevel struct {
	Code        string `toml:"code"`
	Description string `toml:"description"`
	Weight      string `toml:"weight"`
}

// Validate checks if the WeightLevel is valid
func (w *WeightLevel) Validate() error {
	if w.Code == "" {
		return goerr.New("weight level code is required")
	}
	if _, err := decimal.NewFromString(w.Weight); err != nil {
		return goerr.Wrap(err, "invalid weight value", goerr.V("code", w.Code), goerr.V("weight", w.Weight))
	}
	return nil
}

// LookupEntry is a classification code configuration
type LookupEntry struct {
	Code        string `toml:"code"`
	Description string `toml:"description"`
}

// Validate checks if the LookupEntry is valid
func (e *LookupEntry) Validate() error {
	if e.Code == "" {
		return goerr.New("lookup entry code is required")
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	weightTables := map[string][]WeightLevel{
		"probability": a.Probability,
		"severity":    a.Severity,
	}
	for table, levels := range weightTables {
		codes := make(map[string]bool)
		for _, level := range levels {
			if err := level.Validate(); err != nil {
				return goerr.Wrap(err, "invalid "+table+" level")
			}
			if codes[level.Code] {
				return goerr.New("duplicate "+table+" code", goerr.V("code", level.Code))
			}
			codes[level.Code] = true
		}
	}

	lookupTables := map[string][]LookupEntry{
		"cost_type":            a.CostTypes,
		"region":               a.Regions,
		"resource":             a.Resources,
		"supplier":             a.Suppliers,
		"business_area":        a.BusinessAreas,
		"estimating_technique": a.EstimatingTechniques,
	}
	for table, entries := range lookupTables {
		codes := make(map[string]bool)
		for _, entry := range entries {
			if err := entry.Validate(); err != nil {
				return goerr.Wrap(err, "invalid "+table+" entry")
			}
			if codes[entry.Code] {
				return goerr.New("duplicate "+table+" code", goerr.V("code", entry.Code))
			}
			codes[entry.Code] = true
		}
	}

	return nil
}

// LoadAppConfiguration loads the estimation catalog from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return &config, nil
}

// ToCatalog converts AppConfig to the domain estimation catalog
func (a *AppConfig) ToCatalog() *domainConfig.Catalog {
	return &domainConfig.Catalog{
		Probability:          toWeightLevels(a.Probability),
		Severity:             toWeightLevels(a.Severity),
		CostTypes:            toLookupEntries(a.CostTypes),
		Regions:              toLookupEntries(a.Regions),
		Resources:            toLookupEntries(a.Resources),
		Suppliers:            toLookupEntries(a.Suppliers),
		BusinessAreas:        toLookupEntries(a.BusinessAreas),
		EstimatingTechniques: toLookupEntries(a.EstimatingTechniques),
	}
}

func toWeightLevels(levels []WeightLevel) []domainConfig.WeightLevel {
	converted := make([]domainConfig.WeightLevel, len(levels))
	for i, level := range levels {
		weight, err := decimal.NewFromString(level.Weight)
		if err != nil {
			// Validate rejects unparsable weights before conversion.
			weight = decimal.Zero
		}
		converted[i] = domainConfig.WeightLevel{
			Code:        level.Code,
			Description: level.Description,
			Weight:      weight,
		}
	}
	return converted
}

func toLookupEntries(entries []LookupEntry) []domainConfig.LookupEntry {
	converted := make([]domainConfig.LookupEntry, len(entries))
	for i, entry := range entries {
		converted[i] = domainConfig.LookupEntry{
			Code:        entry.Code,
			Description: entry.Description,
		}
	}
	return converted
}
