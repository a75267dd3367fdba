package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"student-link/internal/app"
	"student-link/internal/auth"
	"student-link/internal/config"
	"student-link/internal/domain"
	"student-link/internal/infra/postgres"

	"github.com/spf13/cobra"
)

// NewPromoteCmd grants or revokes the admin role for an existing account.
func NewPromoteCmd(configPath *string) *cobra.Command {
	var (
		userID int64
		demote bool
	)
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Grant (or with --demote revoke) admin rights",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user-id is required")
			}
			role := domain.RoleAdmin
			if demote {
				role = domain.RoleStudent
			}
			return runPromote(cmd.Context(), *configPath, userID, role)
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 0, "id of the account to change")
	cmd.Flags().BoolVar(&demote, "demote", false, "revoke admin rights instead")
	return cmd
}

func runPromote(ctx context.Context, configPath string, userID int64, role domain.Role) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured; in-memory accounts do not outlive the server")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := postgres.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := postgres.NewStore(pool)
	service := app.NewAuthService(store, nil, auth.NewPasswordHasher(cfg.Auth.BcryptCost), nil)
	if err := service.SetRole(ctx, userID, role); err != nil {
		return err
	}
	log.Printf("user %d is now %s", userID, role)
	return nil
}
