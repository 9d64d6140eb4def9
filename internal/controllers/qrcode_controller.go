package controllers

import (
	"net/http"
	"net/url"

	"clima-be/internal/apperrors"
	"clima-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

type QRCodeController struct {
	cityService service.FavoriteCityService
	frontendURL string
}

func NewQRCodeController(cityService service.FavoriteCityService, frontendURL string) *QRCodeController {
	return &QRCodeController{
		cityService: cityService,
		frontendURL: frontendURL,
	}
}

// ShareURL is the dashboard link that opens the weather for a city.
func (qc *QRCodeController) ShareURL(city string) string {
	return qc.frontendURL + "/?ciudad=" + url.QueryEscape(city)
}

// FavoriteCityQRCode handles GET /api/favorite-city/:id/qrcode
func (qc *QRCodeController) FavoriteCityQRCode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	city, err := qc.cityService.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// 256x256 pixels, medium error recovery
	qrCode, err := qrcode.New(qc.ShareURL(city.Name), qrcode.Medium)
	if err != nil {
		_ = c.Error(apperrors.Internal("No se pudo generar el código QR").Wrap(err))
		return
	}

	pngData, err := qrCode.PNG(256)
	if err != nil {
		_ = c.Error(apperrors.Internal("No se pudo generar la imagen del código QR").Wrap(err))
		return
	}

	c.Header("Content-Disposition", "inline; filename=favorite-city-qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
