package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/httpresp"
	"github.com/BruksfildServices01/ice-routes/internal/middleware"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Sesión no válida o expirada.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, *userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", httperr.MessageFor("user_not_found"))
			return
		}
		httperr.Respond(c, err, "user_lookup_failed", "Error al obtener el usuario.")
		return
	}

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":     user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"role":   user.Role,
			"active": user.Active,
		},
	})
}
