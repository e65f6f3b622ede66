package httperr

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Message string `json:"error"`
	Code    string `json:"error_code"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Message: message,
		Code:    code,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond traduz o erro de um caso de uso para a resposta HTTP.
// Erros que não são de negócio viram 500 com mensagem genérica.
func Respond(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if code, ok := BusinessCode(err); ok {
		switch {
		case strings.HasSuffix(code, "_not_found"):
			NotFound(c, code, MessageFor(code))
		case code == "concurrent_update":
			Conflict(c, code, MessageFor(code))
		case code == "invalid_credentials":
			Unauthorized(c, code, MessageFor(code))
		default:
			BadRequest(c, code, MessageFor(code))
		}
		return
	}

	log.Error().
		Err(err).
		Str("path", c.FullPath()).
		Str("code", fallbackCode).
		Msg("request failed")

	Internal(c, fallbackCode, fallbackMessage)
}
