package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/ice-routes/internal/db"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

var newDriverFlags struct {
	name  string
	phone string
}

var createDriverCmd = &cobra.Command{
	Use:   "create-driver",
	Short: "Register a rutero that routes can be dispatched to",
	RunE:  runCreateDriver,
}

func init() {
	f := createDriverCmd.Flags()
	f.StringVar(&newDriverFlags.name, "name", "", "driver name")
	f.StringVar(&newDriverFlags.phone, "phone", "", "contact phone")

	_ = createDriverCmd.MarkFlagRequired("name")
}

// buildDriver normaliza os dados do rutero; nome é obrigatório.
func buildDriver(name, phone string) (models.Driver, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return models.Driver{}, errors.New("driver name is required")
	}
	return models.Driver{
		Name:   name,
		Phone:  strings.TrimSpace(phone),
		Active: true,
	}, nil
}

func runCreateDriver(cmd *cobra.Command, args []string) error {
	driver, err := buildDriver(newDriverFlags.name, newDriverFlags.phone)
	if err != nil {
		return err
	}

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

	if err := db.WithContext(cmd.Context()).Create(&driver).Error; err != nil {
		return errors.Wrap(err, "failed to create driver")
	}

	log.Info().Uint("id", driver.ID).Str("name", driver.Name).Msg("driver created")
	return nil
}
