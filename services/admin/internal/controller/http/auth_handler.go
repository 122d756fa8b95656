package http

import (
	"errors"
	"net/http"

	"asme-site/pkg/logger"
	"asme-site/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary      Staff login
// @Description  Exchanges staff credentials for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Correo y contraseña son obligatorios"})
		return
	}

	user, token, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		case errors.Is(err, usecase.ErrAccountDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": "La cuenta está desactivada"})
		default:
			h.logger.Error("Failed to log in %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo iniciar sesión"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// Me godoc
// @Summary      Current staff user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.StaffUser
// @Failure      404  {object}  map[string]string
// @Router       /admin/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUseCase.GetStaff(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, h.logger, "AUTH", err, "No se pudo cargar el usuario")
		return
	}
	c.JSON(http.StatusOK, user)
}
