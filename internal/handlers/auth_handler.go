package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ice-routes/internal/auth"
	"github.com/BruksfildServices01/ice-routes/internal/config"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/httpresp"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ? AND active = ?", email, true).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", httperr.MessageFor("invalid_credentials"))
			return
		}
		httperr.Respond(c, err, "login_failed", "Error al iniciar sesión.")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", httperr.MessageFor("invalid_credentials"))
		return
	}

	now := time.Now()
	token, err := auth.IssueToken(h.config.Auth, &user, now)
	if err != nil {
		httperr.Respond(c, err, "failed_to_generate_token", "Error al iniciar sesión.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&user).
		UpdateColumn("last_login_at", now).Error; err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last login")
	}

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"token": token,
	})
}
