package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/ice-routes/internal/auth"
	dbpkg "github.com/BruksfildServices01/ice-routes/internal/db"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

var newUser struct {
	name     string
	email    string
	password string
	role     string
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a panel operator",
	RunE:  runCreateUser,
}

func init() {
	f := createUserCmd.Flags()
	f.StringVar(&newUser.name, "name", "", "operator name")
	f.StringVar(&newUser.email, "email", "", "login email")
	f.StringVar(&newUser.password, "password", "", "login password (min 6 chars)")
	f.StringVar(&newUser.role, "role", "operator", "operator | admin")

	_ = createUserCmd.MarkFlagRequired("name")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	if len(newUser.password) < 6 {
		return errors.New("password must have at least 6 characters")
	}
	role := models.OperatorRole(strings.ToLower(newUser.role))
	if !role.Valid() {
		return errors.Errorf("invalid role %q", newUser.role)
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

	hash, err := auth.HashPassword(newUser.password)
	if err != nil {
		return err
	}

	user := models.User{
		Name:         strings.TrimSpace(newUser.name),
		Email:        strings.ToLower(strings.TrimSpace(newUser.email)),
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := db.WithContext(cmd.Context()).Create(&user).Error; err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	log.Info().Uint("id", user.ID).Str("email", user.Email).Msg("user created")
	return nil
}
