package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"talentnest/internal/domain/auth"
	"talentnest/internal/logger"
	"talentnest/internal/seed"
	"talentnest/internal/server"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err := server.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo users and listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err := server.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			services := server.NewServices(cfg, db, nil)
			res, err := seed.Run(cmd.Context(), auth.NewUserRepository(db), seed.Services{
				Auth:         services.Auth,
				Catalog:      services.Catalog,
				Verification: services.Verification,
			})
			if err != nil {
				return err
			}
			if !res.Skipped {
				fmt.Printf("seeded %d users and %d listings (admin: %s / %s)\n", res.Users, res.Listings, seed.AdminEmail, seed.AdminPassword)
			}
			return nil
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Re-derive artisan verified flags from approved requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			n, err := server.NewServices(cfg, db, nil).Verification.Reconcile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("corrected %d users\n", n)
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Provision an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			u, err := server.NewServices(cfg, db, nil).Auth.CreateAdmin(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}
			fmt.Printf("admin %s created with id %d\n", u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Admin e-mail")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (min 8 characters)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
