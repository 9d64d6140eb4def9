package controllers

import (
	"net/http"
	"strings"

	"clima-be/internal/apperrors"
	"clima-be/internal/models"
	"clima-be/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	msgCityRequired    = "La ciudad es requerida"
	msgProviderFailure = "Error al consultar el servicio de clima"
)

type WeatherController struct {
	weatherService service.WeatherService
}

func NewWeatherController(weatherService service.WeatherService) *WeatherController {
	return &WeatherController{weatherService: weatherService}
}

// GetWeather handles POST /api/clima
func (wc *WeatherController) GetWeather(c *gin.Context) {
	city, ok := cityFromBody(c)
	if !ok {
		return
	}

	result, err := wc.weatherService.GetWeather(c.Request.Context(), city)
	if err != nil {
		_ = c.Error(apperrors.Internal(msgProviderFailure).Wrap(err))
		return
	}
	if !result.Found {
		c.JSON(http.StatusNotFound, models.StatusResponse{Status: statusError, Message: result.Message})
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: statusSuccess, Data: result})
}

// GetCoordinates handles POST /api/clima/coordenadas
func (wc *WeatherController) GetCoordinates(c *gin.Context) {
	city, ok := cityFromBody(c)
	if !ok {
		return
	}

	result, err := wc.weatherService.GetCoordinates(c.Request.Context(), city)
	if err != nil {
		_ = c.Error(apperrors.Internal(msgProviderFailure).Wrap(err))
		return
	}
	if !result.Found {
		c.JSON(http.StatusNotFound, models.StatusResponse{Status: statusError, Message: result.Message})
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: statusSuccess, Data: result})
}

// cityFromBody answers 400 itself when the body carries no city.
func cityFromBody(c *gin.Context) (string, bool) {
	var req models.CityRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Ciudad) == "" {
		c.JSON(http.StatusBadRequest, models.StatusResponse{Status: statusError, Message: msgCityRequired})
		return "", false
	}
	return strings.TrimSpace(req.Ciudad), true
}
