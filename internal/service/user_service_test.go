package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"clima-be/internal/apperrors"
	"clima-be/internal/models"
)

func TestUserService_CreateHashesPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.userSvc.Create(ctx, &models.CreateUserRequest{Name: "  Ana ", Email: "ANA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret1", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")))

	_, err = f.userSvc.Create(ctx, &models.CreateUserRequest{Name: "Other", Email: "ana@example.com", Password: "secret2"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.Normalize(err).Status)
}

func TestUserService_GetAndSoftDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t, "Ana", "ana@example.com", "secret1")
	f.register(t, "Bruno", "bruno@example.com", "secret1")

	_, err := f.userSvc.Get(ctx, 4242)
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, f.userSvc.Delete(ctx, id))

	u, err := f.userSvc.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	active, err := f.userSvc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := f.userSvc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	err = f.userSvc.Delete(ctx, 4242)
	assert.Equal(t, http.StatusNotFound, apperrors.Normalize(err).Status)
}

func TestUserService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t, "Ana", "ana@example.com", "secret1")

	u, err := f.userSvc.Update(ctx, id, &models.UpdateUserRequest{Name: ptr(" Ana María "), Email: ptr("AM@Example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", u.Name)
	assert.Equal(t, "am@example.com", u.Email)

	_, err = f.userSvc.Update(ctx, 4242, &models.UpdateUserRequest{Name: ptr("x")})
	assert.Equal(t, http.StatusNotFound, apperrors.Normalize(err).Status)
}

func TestUserService_OrderAndPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, n := range []string{"Carla", "Ana", "Bruno"} {
		f.register(t, n, n+"@example.com", "secret1")
	}

	asc, err := f.userSvc.Order(ctx, "name", "asc")
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, []string{"Ana", "Bruno", "Carla"}, []string{asc[0].Name, asc[1].Name, asc[2].Name})

	fallback, err := f.userSvc.Order(ctx, "password", "sideways")
	require.NoError(t, err)
	assert.Equal(t, []string{"Carla", "Bruno", "Ana"}, []string{fallback[0].Name, fallback[1].Name, fallback[2].Name})

	page, err := f.userSvc.Page(ctx, "2", "2", "name", "asc")
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Carla", page.Data[0].Name)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)

	filtered, err := f.userSvc.Filter(ctx, "AR")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Carla", filtered[0].Name)
}
