package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/estima-lab/pertcost/pkg/cli/config"
)

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	path := writeCatalog(t, `
[[probability]]
code = "PROB-L"
description = "Low"
weight = "0.1"

[[probability]]
code = "PROB-H"
description = "High"
weight = "0.9"

[[severity]]
code = "SEV-C"
description = "Critical"
weight = "1.5"

[[cost_type]]
code = "LABOR"
description = "Labor"

[[region]]
code = "EU"
description = "Europe"

[[resource]]
code = "ENG"
description = "Engineering"

[[supplier]]
code = "ACME"
description = "Acme Industrial"

[[business_area]]
code = "DEF"
description = "Defence"

[[estimating_technique]]
code = "PERT"
description = "Three-point estimate"
`)

	cfg, err := config.LoadAppConfiguration(path)
	gt.NoError(t, err).Required()
	gt.A(t, cfg.Probability).Length(2)
	gt.A(t, cfg.Severity).Length(1)
	gt.S(t, cfg.Probability[0].Code).Equal("PROB-L")
	gt.S(t, cfg.Probability[0].Weight).Equal("0.1")
	gt.A(t, cfg.CostTypes).Length(1)
	gt.A(t, cfg.EstimatingTechniques).Length(1)

	catalog := cfg.ToCatalog()
	gt.A(t, catalog.Probability).Length(2)
	gt.S(t, catalog.Probability[1].Weight.String()).Equal("0.9")
	gt.S(t, catalog.Severity[0].Weight.String()).Equal("1.5")
	gt.S(t, catalog.Resources[0].Description).Equal("Engineering")
}

func TestLoadAppConfiguration_MissingFile(t *testing.T) {
	_, err := config.LoadAppConfiguration(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err)
}

func TestLoadAppConfiguration_InvalidTOML(t *testing.T) {
	path := writeCatalog(t, `[[probability]`)
	_, err := config.LoadAppConfiguration(path)
	gt.Error(t, err)
}

func TestAppConfigValidate(t *testing.T) {
	t.Run("duplicate weight code", func(t *testing.T) {
		cfg := &config.AppConfig{
			Probability: []config.WeightLevel{
				{Code: "PROB-L", Weight: "0.1"},
				{Code: "PROB-L", Weight: "0.2"},
			},
		}
		gt.Error(t, cfg.Validate())
	})

	t.Run("duplicate lookup code", func(t *testing.T) {
		cfg := &config.AppConfig{
			Resources: []config.LookupEntry{
				{Code: "ENG"},
				{Code: "ENG"},
			},
		}
		gt.Error(t, cfg.Validate())
	})

	t.Run("unparsable weight", func(t *testing.T) {
		cfg := &config.AppConfig{
			Severity: []config.WeightLevel{
				{Code: "SEV-C", Weight: "heavy"},
			},
		}
		gt.Error(t, cfg.Validate())
	})

	t.Run("missing code", func(t *testing.T) {
		cfg := &config.AppConfig{
			CostTypes: []config.LookupEntry{{Description: "no code"}},
		}
		gt.Error(t, cfg.Validate())
	})

	t.Run("empty config is valid", func(t *testing.T) {
		cfg := &config.AppConfig{}
		gt.NoError(t, cfg.Validate())
	})
}
