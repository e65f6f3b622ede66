package validators

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
)

var routeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,20}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("route_id", func(fl validator.FieldLevel) bool {
		return routeIDPattern.MatchString(fl.Field().String())
	})

	return v
}

// Struct valida as tags `validate`; qualquer falha vira invalid_request.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			log.Debug().Str("field", fe.Namespace()).Str("rule", fe.Tag()).Msg("validation failed")
		}
	}
	return httperr.ErrBusiness("invalid_request")
}

// RouteID valida um identificador de rota solto (query string, path).
func RouteID(id string) error {
	if !routeIDPattern.MatchString(id) {
		return httperr.ErrBusiness("invalid_request")
	}
	return nil
}
