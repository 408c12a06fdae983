package main

import (
	"fmt"
	"os"

	"github.com/edugroup/site-api/app"
	"github.com/edugroup/site-api/database"
	"github.com/edugroup/site-api/utils/auth"
	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the tables
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := app.Bootstrap()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Init()
	},
}

// seedCmd fills an empty database with the admin account and starter content
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the admin account and starter content",
	Long: `Seed an empty database.

The admin account is read from ADMIN_EMAIL and ADMIN_PASSWORD; when either
is missing the account is skipped. Content tables that already hold rows
are left alone.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	admin := database.SeedAdmin{
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
		Name:     os.Getenv("ADMIN_NAME"),
	}
	if admin.Password != "" && !auth.IsPasswordValid(admin.Password) {
		return fmt.Errorf("ADMIN_PASSWORD must be %d to 72 characters", auth.MinPasswordLength)
	}

	_, store, err := app.Bootstrap()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		return err
	}
	if err := database.RunSeeds(store.DB(), admin); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Seeding completed")
	return nil
}
