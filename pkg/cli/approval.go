package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/estima-lab/pertcost/pkg/cli/config"
	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/usecase"
	"github.com/estima-lab/pertcost/pkg/utils/logging"
)

func cmdSubmit() *cli.Command {
	return approvalCommand("submit", "Submit a WBS item estimate for approval", false,
		func(ctx context.Context, uc *usecase.UseCases, wbsID int64, actor, _ string) (*model.WBSItem, error) {
			return uc.Approval.Submit(ctx, wbsID, actor)
		})
}

func cmdApprove() *cli.Command {
	return approvalCommand("approve", "Approve a submitted WBS item estimate", false,
		func(ctx context.Context, uc *usecase.UseCases, wbsID int64, actor, _ string) (*model.WBSItem, error) {
			return uc.Approval.Approve(ctx, wbsID, actor)
		})
}

func cmdReject() *cli.Command {
	return approvalCommand("reject", "Reject a submitted WBS item estimate", true,
		func(ctx context.Context, uc *usecase.UseCases, wbsID int64, actor, comment string) (*model.WBSItem, error) {
			return uc.Approval.Reject(ctx, wbsID, actor, comment)
		})
}

func cmdReset() *cli.Command {
	return approvalCommand("reset", "Reset a rejected WBS item back to draft", false,
		func(ctx context.Context, uc *usecase.UseCases, wbsID int64, actor, _ string) (*model.WBSItem, error) {
			return uc.Approval.Reset(ctx, wbsID, actor)
		})
}

type approvalFunc func(ctx context.Context, uc *usecase.UseCases, wbsID int64, actor, comment string) (*model.WBSItem, error)

func approvalCommand(name, usage string, withComment bool, fn approvalFunc) *cli.Command {
	var wbsID int64
	var actor string
	var comment string
	var repoCfg config.Repository
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "wbs-id",
			Usage:       "Target WBS item ID (required)",
			Required:    true,
			Destination: &wbsID,
		},
		&cli.StringFlag{
			Name:        "actor",
			Usage:       "Name of the person performing the action (required)",
			Required:    true,
			Sources:     cli.EnvVars("PERTCOST_ACTOR"),
			Destination: &actor,
		},
	}
	if withComment {
		flags = append(flags, &cli.StringFlag{
			Name:        "comment",
			Usage:       "Reason recorded in the audit trail",
			Destination: &comment,
		})
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: flags,
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
			wbs, err := fn(ctx, uc, wbsID, actor, comment)
			if err != nil {
				return err
			}

			heading := color.New(color.FgCyan, color.Bold)
			label := color.New(color.FgHiBlack)
			value := color.New(color.FgHiWhite)

			heading.Printf("WBS %s: %s\n", wbs.Code, wbs.Title)
			label.Printf("  %-24s", "Status")
			statusColor(wbs.ApprovalStatus).Println(wbs.ApprovalStatus.String())
			label.Printf("  %-24s", "Estimate revision")
			value.Printf("%d\n", wbs.EstimateRevision)
			if wbs.Approver != "" {
				label.Printf("  %-24s", "Approver")
				value.Println(wbs.Approver)
			}
			if wbs.ApproverDate != nil {
				label.Printf("  %-24s", "Approved at")
				value.Println(wbs.ApproverDate.Format("2006-01-02 15:04:05 MST"))
			}
			return nil
		},
	}
}

func cmdAudit() *cli.Command {
	var wbsID int64
	var repoCfg config.Repository
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "wbs-id",
			Usage:       "Target WBS item ID (required)",
			Required:    true,
			Destination: &wbsID,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "audit",
		Usage: "Show the approval audit trail of a WBS item, newest first",
		Flags: flags,
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
			events, err := uc.Approval.History(ctx, wbsID)
			if err != nil {
				return goerr.Wrap(err, "failed to load audit trail")
			}

			label := color.New(color.FgHiBlack)
			value := color.New(color.FgHiWhite)
			action := color.New(color.FgCyan, color.Bold)

			for _, event := range events {
				label.Printf("%s  ", event.OccurredAt.Format("2006-01-02 15:04:05"))
				action.Printf("%-8s", event.Action.String())
				statusColor(event.NewStatus).Printf("  %-10s", event.NewStatus.String())
				value.Printf("  rev=%d  by %s", event.EstimateRevision, event.Actor)
				if event.Comment != "" {
					label.Printf("  %q", event.Comment)
				}
				value.Println()
			}
			return nil
		},
	}
}
