package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"clima-be/internal/entities"
	"clima-be/internal/models"
	"clima-be/internal/repository"
)

// FavoriteCityService defines the interface for favorite city business logic
type FavoriteCityService interface {
	List(ctx context.Context, activeOwnersOnly bool) ([]entities.FavoriteCity, error)
	ListByUser(ctx context.Context, userID uint) ([]entities.FavoriteCity, error)
	Get(ctx context.Context, id uint) (*entities.FavoriteCity, error)
	Create(ctx context.Context, callerID uint, req *models.CreateFavoriteCityRequest) (*entities.FavoriteCity, error)
	Update(ctx context.Context, id uint, req *models.UpdateFavoriteCityRequest) (*entities.FavoriteCity, error)
	Delete(ctx context.Context, id uint) error
	Filter(ctx context.Context, name string) ([]entities.FavoriteCity, error)
	Order(ctx context.Context, field, dir string) ([]entities.FavoriteCity, error)
	Page(ctx context.Context, page, pageSize string) (*models.Page[entities.FavoriteCity], error)
}

type favoriteCityService struct {
	cities repository.FavoriteCityRepository
	users  repository.UserRepository
}

// NewFavoriteCityService creates a new favorite city service
func NewFavoriteCityService(cities repository.FavoriteCityRepository, users repository.UserRepository) FavoriteCityService {
	return &favoriteCityService{cities: cities, users: users}
}

func (s *favoriteCityService) List(ctx context.Context, activeOwnersOnly bool) ([]entities.FavoriteCity, error) {
	return s.cities.List(ctx, activeOwnersOnly)
}

func (s *favoriteCityService) ListByUser(ctx context.Context, userID uint) ([]entities.FavoriteCity, error) {
	return s.cities.ListByUser(ctx, userID)
}

func (s *favoriteCityService) Get(ctx context.Context, id uint) (*entities.FavoriteCity, error) {
	return s.cities.FindByID(ctx, id)
}

// Create pins a city for userId, or for the caller when userId is absent.
// The owner must exist and be active.
func (s *favoriteCityService) Create(ctx context.Context, callerID uint, req *models.CreateFavoriteCityRequest) (*entities.FavoriteCity, error) {
	ownerID := callerID
	if req.UserID != nil && *req.UserID != 0 {
		ownerID = *req.UserID
	}
	if ownerID == 0 {
		return nil, ErrInvalidReference
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	if !owner.IsActive {
		return nil, ErrInvalidReference
	}

	city := &entities.FavoriteCity{
		Name:        strings.TrimSpace(req.Name),
		CountryCode: upper(req.CountryCode),
		Lat:         req.Lat,
		Lon:         req.Lon,
		Notes:       req.Notes,
		UserID:      owner.ID,
	}
	if err := s.cities.Create(ctx, city); err != nil {
		return nil, err
	}
	city.User = owner
	return city, nil
}

func (s *favoriteCityService) Update(ctx context.Context, id uint, req *models.UpdateFavoriteCityRequest) (*entities.FavoriteCity, error) {
	fields := req.Fields()
	if name, ok := fields["name"].(string); ok {
		fields["name"] = strings.TrimSpace(name)
	}
	if code, ok := fields["country_code"].(string); ok {
		fields["country_code"] = strings.ToUpper(code)
	}
	return s.cities.Update(ctx, id, fields)
}

func (s *favoriteCityService) Delete(ctx context.Context, id uint) error {
	return s.cities.Delete(ctx, id)
}

func (s *favoriteCityService) Filter(ctx context.Context, name string) ([]entities.FavoriteCity, error) {
	return s.cities.FilterByName(ctx, name)
}

func (s *favoriteCityService) Order(ctx context.Context, field, dir string) ([]entities.FavoriteCity, error) {
	return s.cities.ListOrdered(ctx, repository.OrderBy(repository.FavoriteCityOrderFields, field, dir))
}

func (s *favoriteCityService) Page(ctx context.Context, page, pageSize string) (*models.Page[entities.FavoriteCity], error) {
	return s.cities.Paginate(ctx, repository.NewPageRequest(page, pageSize))
}

func upper(s *string) *string {
	if s == nil {
		return nil
	}
	u := strings.ToUpper(*s)
	return &u
}
