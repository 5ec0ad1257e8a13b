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

func cmdEstimate() *cli.Command {
	var projectID int64
	var asJSON bool
	var repoCfg config.Repository
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "project-id",
			Usage:       "Target project ID (required)",
			Required:    true,
			Destination: &projectID,
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
		Name:    "estimate",
		Aliases: []string{"est"},
		Usage:   "Show the full cost roll-up of a project",
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
			result, err := uc.Estimation.GetProjectEstimate(ctx, projectID)
			if err != nil {
				return goerr.Wrap(err, "failed to compute project estimate")
			}

			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			renderProjectEstimate(result)
			return nil
		},
	}
}

func renderProjectEstimate(e *model.ProjectEstimate) {
	heading := color.New(color.FgCyan, color.Bold)
	section := color.New(color.FgCyan)
	label := color.New(color.FgHiBlack)
	value := color.New(color.FgHiWhite)
	accent := color.New(color.FgYellow, color.Bold)

	heading.Printf("Project %d: %s\n", e.ProjectID, e.ProjectName)
	label.Printf("  %-24s", "WBS items")
	value.Printf("%d\n", e.WBSItemCount)
	label.Printf("  %-24s", "Assignments")
	value.Printf("%d\n", e.AssignmentCount)
	label.Printf("  %-24s", "Risks")
	value.Printf("%d\n", e.RiskCount)
	label.Printf("  %-24s", "PERT estimate")
	value.Println(e.TotalPert.StringFixed(2))
	label.Printf("  %-24s", "Std deviation")
	value.Println(e.TotalStdDev.StringFixed(2))
	label.Printf("  %-24s", "80% confidence")
	value.Printf("%s .. %s\n", e.CI80Low.StringFixed(2), e.CI80High.StringFixed(2))
	label.Printf("  %-24s", "Risk exposure")
	value.Println(e.TotalRiskExposure.StringFixed(2))
	label.Printf("  %-24s", "Risk adjusted estimate")
	accent.Println(e.RiskAdjustedEstimate.StringFixed(2))

	breakdowns := []struct {
		name  string
		items []model.BreakdownItem
	}{
		{"By cost type", e.ByCostType},
		{"By region", e.ByRegion},
		{"By resource", e.ByResource},
		{"By supplier", e.BySupplier},
		{"By business area", e.ByBusinessArea},
		{"By estimating technique", e.ByEstimatingTechnique},
	}
	for _, b := range breakdowns {
		if len(b.items) == 0 {
			continue
		}
		section.Printf("\n%s\n", b.name)
		for _, item := range b.items {
			label.Printf("  %-16s %-32s", item.Code, item.Description)
			value.Printf("%16s", item.TotalPert.StringFixed(2))
			label.Printf("  (%d)\n", item.AssignmentCount)
		}
	}

	if len(e.WBSSummaries) > 0 {
		section.Printf("\nWBS items\n")
		for _, s := range e.WBSSummaries {
			label.Printf("  %-16s %-32s", s.WBSCode, s.WBSTitle)
			value.Printf("%16s  ", s.RiskAdjustedEstimate.StringFixed(2))
			statusColor(s.ApprovalStatus).Printf("%s\n", s.ApprovalStatus.String())
		}
	}
}
