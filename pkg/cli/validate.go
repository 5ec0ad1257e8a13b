package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/estima-lab/pertcost/pkg/cli/config"
	"github.com/estima-lab/pertcost/pkg/domain/types"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog

	return &cli.Command{
		Name:  "validate",
		Usage: "Validate an estimation catalog TOML file",
		Flags: catalogCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if catalogCfg.Path() == "" {
				return goerr.New("--catalog is required for validate")
			}

			catalog, err := catalogCfg.Load()
			if err != nil {
				color.New(color.FgRed, color.Bold).Printf("Invalid: %s\n", catalogCfg.Path())
				return err
			}

			ok := color.New(color.FgGreen, color.Bold)
			label := color.New(color.FgHiBlack)
			value := color.New(color.FgHiWhite)

			ok.Printf("Valid: %s\n", catalogCfg.Path())
			label.Printf("  %-24s", "Probability levels")
			value.Printf("%d\n", len(catalog.Probability))
			label.Printf("  %-24s", "Severity levels")
			value.Printf("%d\n", len(catalog.Severity))
			for _, dimension := range types.AllDimensions() {
				label.Printf("  %-24s", dimension.String())
				value.Printf("%d\n", len(catalog.Entries(dimension)))
			}
			return nil
		},
	}
}
