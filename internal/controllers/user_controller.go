package controllers

import (
	"errors"
	"net/http"

	"clima-be/internal/apperrors"
	"clima-be/internal/models"
	"clima-be/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgUserNotFound = "Usuario no encontrado"
	msgUserDeleted  = "Usuario eliminado correctamente"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// Create handles POST /api/users (public registration)
func (uc *UserController) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.userService.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// List handles GET /api/users. Inactive users are included with ?active=false.
func (uc *UserController) List(c *gin.Context) {
	activeOnly := c.Query("active") != "false"

	users, err := uc.userService.List(c.Request.Context(), activeOnly)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Get handles GET /api/users/:id
func (uc *UserController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := uc.userService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			err = apperrors.NotFound(msgUserNotFound)
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update handles PUT /api/users/:id
func (uc *UserController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.userService.Update(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/:id
func (uc *UserController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := uc.userService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgUserDeleted})
}

// Filter handles GET /api/users/filter/:name
func (uc *UserController) Filter(c *gin.Context) {
	users, err := uc.userService.Filter(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Order handles GET /api/users/order?field=&dir=
func (uc *UserController) Order(c *gin.Context) {
	users, err := uc.userService.Order(c.Request.Context(), c.Query("field"), c.Query("dir"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Page handles GET /api/users/page?page=&pageSize=&field=&dir=
func (uc *UserController) Page(c *gin.Context) {
	page, err := uc.userService.Page(c.Request.Context(),
		c.Query("page"), c.Query("pageSize"), c.Query("field"), c.Query("dir"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}
