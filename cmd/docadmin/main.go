package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"campusapi/internal/bootstrap"
	"campusapi/internal/config"
	"campusapi/internal/database"
	"campusapi/internal/logging"
	"campusapi/internal/service"
)

// openFunc builds the document service and returns a release func.
type openFunc func(ctx context.Context) (service.DocumentService, func(), error)

func main() {
	cmd := newCommand(openFromConfig, os.Stdout)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand(open openFunc, out io.Writer) *cli.Command {
	// withService opens the service for the duration of one subcommand.
	withService := func(fn func(ctx context.Context, cmd *cli.Command, svc service.DocumentService) (any, error)) cli.ActionFunc {
		return func(ctx context.Context, cmd *cli.Command) error {
			svc, release, err := open(ctx)
			if err != nil {
				return err
			}
			defer release()

			result, err := fn(ctx, cmd, svc)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
	}

	return &cli.Command{
		Name:  "docadmin",
		Usage: "Inspect and maintain the document vector store",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stored documents",
				Action: withService(func(ctx context.Context, _ *cli.Command, svc service.DocumentService) (any, error) {
					return svc.ListAll(ctx)
				}),
			},
			{
				Name:      "search",
				Usage:     "Search documents by filename fragment",
				ArgsUsage: "<fragment>",
				Action: withService(func(ctx context.Context, cmd *cli.Command, svc service.DocumentService) (any, error) {
					if cmd.Args().Len() != 1 {
						return nil, errors.New("search requires exactly one filename fragment")
					}
					return svc.SearchByFilename(ctx, cmd.Args().First())
				}),
			},
			{
				Name:  "stats",
				Usage: "Show store statistics",
				Action: withService(func(ctx context.Context, _ *cli.Command, svc service.DocumentService) (any, error) {
					return svc.Stats(ctx)
				}),
			},
			{
				Name:  "snapshot",
				Usage: "Export the store to object storage",
				Action: withService(func(ctx context.Context, _ *cli.Command, svc service.DocumentService) (any, error) {
					return svc.Snapshot(ctx)
				}),
			},
			{
				Name:      "delete-source",
				Usage:     "Delete every chunk of one file",
				ArgsUsage: "<filename>",
				Action: withService(func(ctx context.Context, cmd *cli.Command, svc service.DocumentService) (any, error) {
					if cmd.Args().Len() != 1 {
						return nil, errors.New("delete-source requires exactly one filename")
					}
					return svc.DeleteBySource(ctx, cmd.Args().First())
				}),
			},
			{
				Name:  "purge",
				Usage: "Delete every document",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Confirm the irreversible purge",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if !cmd.Bool("yes") {
						return errors.New("purge is irreversible, pass --yes to confirm")
					}
					return withService(func(ctx context.Context, _ *cli.Command, svc service.DocumentService) (any, error) {
						return svc.DeleteAll(ctx)
					})(ctx, cmd)
				},
			},
		},
	}
}

// openFromConfig loads configuration from the environment. The database is
// only opened for the pgvector backend.
func openFromConfig(ctx context.Context) (service.DocumentService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logging.New(cfg.LogLevel, logging.LoadLocation(cfg.Timezone), os.Stderr).
		With(zap.String("app", "docadmin"))

	var db *sql.DB
	if cfg.Vector.Backend == config.VectorBackendPGVector {
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
	}

	release := func() {
		if db != nil {
			_ = db.Close()
		}
		_ = log.Sync()
	}

	svc, err := bootstrap.DocumentService(ctx, cfg, db, log)
	if err != nil {
		release()
		return nil, nil, err
	}
	return svc, release, nil
}
