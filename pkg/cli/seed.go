package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/estima-lab/pertcost/pkg/cli/config"
	"github.com/estima-lab/pertcost/pkg/repository/firestore"
	"github.com/estima-lab/pertcost/pkg/utils/logging"
)

func cmdSeed() *cli.Command {
	var projectID string
	var databaseID string
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required)",
			Required:    true,
			Sources:     cli.EnvVars("PERTCOST_FIRESTORE_PROJECT_ID"),
			Destination: &projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("PERTCOST_FIRESTORE_DATABASE_ID"),
			Destination: &databaseID,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Write the estimation catalog into the Firestore lookup collections",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := catalogCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load estimation catalog")
			}
			if catalog == nil {
				return goerr.New("--catalog is required for seed")
			}

			repo, err := firestore.New(ctx, projectID, databaseID)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize firestore repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			if err := repo.SeedCatalog(ctx, catalog); err != nil {
				return goerr.Wrap(err, "failed to seed catalog")
			}

			logging.Default().Info("Catalog seeded",
				"probability_levels", len(catalog.Probability),
				"severity_levels", len(catalog.Severity),
				"resources", len(catalog.Resources),
			)
			return nil
		},
	}
}
