package controllers

import (
	"errors"
	"net/http"

	"clima-be/internal/apperrors"
	"clima-be/internal/models"
	"clima-be/internal/service"

	"github.com/gin-gonic/gin"
)

const msgFavoriteCityDeleted = "Ciudad favorita eliminada correctamente"

type FavoriteCityController struct {
	cityService service.FavoriteCityService
}

func NewFavoriteCityController(cityService service.FavoriteCityService) *FavoriteCityController {
	return &FavoriteCityController{cityService: cityService}
}

// List handles GET /api/favorite-cities. ?active=true hides cities of
// deactivated owners.
func (fc *FavoriteCityController) List(c *gin.Context) {
	cities, err := fc.cityService.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cities)
}

// ListByUser handles GET /api/favorite-cities/user/:userId
func (fc *FavoriteCityController) ListByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	cities, err := fc.cityService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cities)
}

// Get handles GET /api/favorite-city/:id
func (fc *FavoriteCityController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	city, err := fc.cityService.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, city)
}

// Create handles POST /api/favorite-city
func (fc *FavoriteCityController) Create(c *gin.Context) {
	var req models.CreateFavoriteCityRequest
	if !bindJSON(c, &req) {
		return
	}

	city, err := fc.cityService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReference) {
			err = apperrors.UnprocessableEntity(apperrors.MsgInvalidReference, apperrors.Details{"field": "userId"}).Wrap(err)
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, city)
}

// Update handles PUT /api/favorite-city/:id
func (fc *FavoriteCityController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateFavoriteCityRequest
	if !bindJSON(c, &req) {
		return
	}

	city, err := fc.cityService.Update(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, city)
}

// Delete handles DELETE /api/favorite-city/:id
func (fc *FavoriteCityController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := fc.cityService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgFavoriteCityDeleted})
}

// Filter handles GET /api/favorite-cities/filter/:name
func (fc *FavoriteCityController) Filter(c *gin.Context) {
	cities, err := fc.cityService.Filter(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cities)
}

// Order handles GET /api/favorite-cities/order?field=&dir=
func (fc *FavoriteCityController) Order(c *gin.Context) {
	cities, err := fc.cityService.Order(c.Request.Context(), c.Query("field"), c.Query("dir"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cities)
}

// Page handles GET /api/favorite-cities/page?page=&pageSize=
func (fc *FavoriteCityController) Page(c *gin.Context) {
	page, err := fc.cityService.Page(c.Request.Context(), c.Query("page"), c.Query("pageSize"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}
