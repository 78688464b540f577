package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/spec-kit/admission-service/internal/auth"
	"github.com/spec-kit/admission-service/internal/domain"
	"github.com/spec-kit/admission-service/internal/persistence"
	"github.com/spec-kit/admission-service/internal/repository"
	"github.com/spec-kit/admission-service/internal/service"
)

// NewAccountsCmd creates the accounts subcommand.
func NewAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Administer accounts",
	}
	cmd.AddCommand(newSetRoleCmd())
	return cmd
}

func newSetRoleCmd() *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "set-role",
		Short: "Change an account's role",
		Long:  `Change the role of the account registered under --email. This is the only way to grant admin.`,
		PreRunE: func(*cobra.Command, []string) error {
			if !domain.Role(role).Valid() {
				return oops.Code("INVALID_ROLE").Errorf("role must be %q or %q, got %q", domain.RoleApplicant, domain.RoleAdmin, role)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			ctx := commandContext(cmd.Context())
			pg, err := persistence.NewPostgres(ctx, rt.cfg.Postgres, rt.logger)
			if err != nil {
				return err
			}
			defer pg.Close()
			if pg.PoolHandle() == nil {
				return oops.Code("CONFIG_INVALID").Errorf("POSTGRES_DSN is required")
			}

			svc, err := service.NewAuthService(service.AuthDependencies{
				Accounts: repository.NewAccountRepository(pg.PoolHandle()),
				Hasher:   auth.NewPasswordHasher(rt.cfg.Auth),
				Tokens:   auth.NewTokenManager(rt.cfg.Auth),
				Logger:   rt.logger,
			})
			if err != nil {
				return err
			}

			account, err := svc.SetRole(ctx, email, domain.Role(role))
			if err != nil {
				return err
			}
			cmd.Printf("%s is now %s\n", account.Email, account.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&role, "role", "", "new role (applicant|admin)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
