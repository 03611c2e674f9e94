package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicBooking/internal/config"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// tokenCmd выпускает bearer-токен для локальной отладки
func tokenCmd(configPath *string) *cobra.Command {
	var (
		userID int64
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed JWT for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			r := domain.Role(role)
			if !r.IsValid() {
				return fmt.Errorf("unknown role %q, expected patient, doctor or admin", role)
			}
			if userID <= 0 {
				return fmt.Errorf("--user must be positive")
			}

			token, err := middleware.IssueToken(cfg.Auth.JWTSecret, cfg.Auth.Issuer, userID, r, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "User ID (sub claim)")
	cmd.Flags().StringVar(&role, "role", string(domain.RolePatient), "Role: patient, doctor or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}
