package controllers

import (
	"errors"
	"net/http"

	"clima-be/internal/models"
	"clima-be/internal/service"

	"github.com/gin-gonic/gin"
)

const msgInvalidCredentials = "Credenciales inválidas"

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login handles POST /api/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": msgInvalidCredentials,
			})
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
