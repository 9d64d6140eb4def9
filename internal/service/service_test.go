package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"clima-be/internal/database/dbtest"
	"clima-be/internal/jwt"
	"clima-be/internal/models"
	"clima-be/internal/repository"
)

type fixture struct {
	users   repository.UserRepository
	cities  repository.FavoriteCityRepository
	userSvc UserService
	citySvc FavoriteCityService
	auth    AuthService
	jwt     *jwt.JWTService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	users := repository.NewUserRepository(db)
	cities := repository.NewFavoriteCityRepository(db)
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return &fixture{
		users:   users,
		cities:  cities,
		userSvc: NewUserService(users, bcrypt.MinCost),
		citySvc: NewFavoriteCityService(cities, users),
		auth:    NewAuthService(users, jwtService),
		jwt:     jwtService,
	}
}

func (f *fixture) register(t *testing.T, name, email, password string) uint {
	t.Helper()
	u, err := f.userSvc.Create(context.Background(), &models.CreateUserRequest{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	return u.ID
}

func ptr[T any](v T) *T { return &v }
