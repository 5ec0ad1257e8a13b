package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/estima-lab/pertcost/pkg/cli/config"
	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/usecase"
	"github.com/estima-lab/pertcost/pkg/utils/logging"
)

func cmdSummary() *cli.Command {
	var wbsID int64
	var asJSON bool
	var repoCfg config.Repository
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "wbs-id",
			Usage:       "Target WBS item ID (required)",
			Required:    true,
			Destination: &wbsID,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Output as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "summary",
		Aliases: []string{"sum"},
		Usage:   "Show the aggregated cost summary of a WBS item",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := catalogCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load estimation catalog")
			}

			repo, err := repoCfg.Configure(ctx, catalog)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo)
			summary, err := uc.Estimation.GetWBSCostSummary(ctx, wbsID)
			if err != nil {
				return goerr.Wrap(err, "failed to compute cost summary")
			}

			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(summary)
			}

			renderWBSSummary(summary)
			return nil
		},
	}
}

func renderWBSSummary(s *model.WBSCostSummary) {
	heading := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgHiBlack)
	value := color.New(color.FgHiWhite)
	accent := color.New(color.FgYellow, color.Bold)

	heading.Printf("WBS %s: %s\n", s.WBSCode, s.WBSTitle)
	label.Printf("  %-24s", "Status")
	value.Println(statusColor(s.ApprovalStatus).Sprint(s.ApprovalStatus.String()))
	label.Printf("  %-24s", "Assignments")
	value.Printf("%d\n", s.AssignmentCount)
	label.Printf("  %-24s", "PERT estimate")
	value.Println(s.TotalPert.StringFixed(2))
	label.Printf("  %-24s", "Std deviation")
	value.Println(s.TotalStdDev.StringFixed(2))
	label.Printf("  %-24s", "80% confidence")
	value.Printf("%s .. %s\n", s.CI80Low.StringFixed(2), s.CI80High.StringFixed(2))
	label.Printf("  %-24s", "Risks")
	value.Printf("%d\n", s.RiskCount)
	label.Printf("  %-24s", "Risk exposure")
	value.Println(s.TotalRiskExposure.StringFixed(2))
	label.Printf("  %-24s", "Risk adjusted estimate")
	accent.Println(s.RiskAdjustedEstimate.StringFixed(2))
}
