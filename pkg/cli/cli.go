package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/estima-lab/pertcost/pkg/cli/config"
	"github.com/estima-lab/pertcost/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "pertcost",
		Usage:   "PERT based cost estimation and approval governance engine",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Info("Starting pertcost", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdSummary(),
			cmdEstimate(),
			cmdSubmit(),
			cmdApprove(),
			cmdReject(),
			cmdReset(),
			cmdAudit(),
			cmdSeed(),
			cmdValidate(),
			cmdMigrate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
