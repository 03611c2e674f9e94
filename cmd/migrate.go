package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ClinicBooking/migrations"
)

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			ctx := context.Background()
			db, err := openDB(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			count, err := migrations.NewMigrator(db, log).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			ctx := context.Background()
			db, err := openDB(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			statuses, err := migrations.NewMigrator(db, log).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			for _, st := range statuses {
				state := "pending"
				if st.Applied {
					state = "applied " + st.AppliedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Printf("%03d  %-30s  %s\n", st.Version, st.Name, state)
			}
			return nil
		},
	})

	return cmd
}
