package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/ice-routes/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and seed reference data",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := dbpkg.Migrate(db); err != nil {
		return err
	}

	log.Info().Msg("schema migrated")
	return nil
}
