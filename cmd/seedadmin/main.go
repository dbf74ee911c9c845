// Command seedadmin bootstraps an empty database with a branch, an employee
// and the first PRIMARY_ADMIN platform user.
//
//	SEED_ADMIN_PASSWORD=... seedadmin --branch "Sede Principal" --id 1001 --name "Marta Díaz"
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"go-calypso/internal/app"
	"go-calypso/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const passwordEnv = "SEED_ADMIN_PASSWORD"

func main() {
	if err := newRootCmd(seed).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd parses the seed input and hands it to run.
func newRootCmd(run func(ctx context.Context, in app.SeedInput) error) *cobra.Command {
	var in app.SeedInput

	cmd := &cobra.Command{
		Use:          "seedadmin",
		Short:        "Create the first branch, employee and primary administrator",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Password == "" {
				in.Password = os.Getenv(passwordEnv)
			}
			if in.Password == "" {
				return errors.New(passwordEnv + " is required")
			}
			return run(cmd.Context(), in)
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.BranchName, "branch", "Sede Principal", "branch name")
	f.StringVar(&in.BranchAddress, "address", "", "branch address")
	f.StringVar(&in.Identification, "id", "", "admin employee identification")
	f.StringVar(&in.FullName, "name", "", "admin employee full name")
	f.StringVar(&in.JobTitle, "title", "Administrador", "admin employee job title")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func seed(ctx context.Context, in app.SeedInput) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := app.ConnectDB(cfg, logger)
	if err != nil {
		return err
	}
	if err := app.Migrate(db); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	res, err := app.SeedPrimaryAdmin(ctx, db, in, logger)
	if err != nil {
		return err
	}
	logger.Info("primary admin ready",
		zap.String("platform_user_id", res.PlatformUserID),
		zap.Bool("created", res.AdminCreated),
	)
	return nil
}
