package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"clima-be/internal/entities"
	"clima-be/internal/models"
)

// FavoriteCityRepository defines the interface for favorite city database operations
type FavoriteCityRepository interface {
	Create(ctx context.Context, city *entities.FavoriteCity) error
	FindByID(ctx context.Context, id uint) (*entities.FavoriteCity, error)
	List(ctx context.Context, activeOwnersOnly bool) ([]entities.FavoriteCity, error)
	ListByUser(ctx context.Context, userID uint) ([]entities.FavoriteCity, error)
	FilterByName(ctx context.Context, name string) ([]entities.FavoriteCity, error)
	ListOrdered(ctx context.Context, order Order) ([]entities.FavoriteCity, error)
	Paginate(ctx context.Context, req PageRequest) (*models.Page[entities.FavoriteCity], error)
	Update(ctx context.Context, id uint, fields map[string]any) (*entities.FavoriteCity, error)
	Delete(ctx context.Context, id uint) error
}

type favoriteCityRepository struct {
	db *gorm.DB
}

// NewFavoriteCityRepository creates a new favorite city repository
func NewFavoriteCityRepository(db *gorm.DB) FavoriteCityRepository {
	return &favoriteCityRepository{db: db}
}

func (r *favoriteCityRepository) Create(ctx context.Context, city *entities.FavoriteCity) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(city).Error; err != nil {
		return fmt.Errorf("failed to create favorite city: %w", err)
	}
	return nil
}

// FindByID returns the city with its owner loaded.
func (r *favoriteCityRepository) FindByID(ctx context.Context, id uint) (*entities.FavoriteCity, error) {
	var city entities.FavoriteCity
	if err := r.db.WithContext(ctx).Preload("User").First(&city, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find favorite city %d: %w", id, err)
	}
	return &city, nil
}

func (r *favoriteCityRepository) List(ctx context.Context, activeOwnersOnly bool) ([]entities.FavoriteCity, error) {
	q := r.db.WithContext(ctx).Preload("User")
	if activeOwnersOnly {
		q = q.Select("favorite_cities.*").
			Joins("JOIN users ON users.id = favorite_cities.user_id").
			Where("users.is_active = ?", true)
	}
	cities := []entities.FavoriteCity{}
	if err := q.Order("favorite_cities.id").Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorite cities: %w", err)
	}
	return cities, nil
}

func (r *favoriteCityRepository) ListByUser(ctx context.Context, userID uint) ([]entities.FavoriteCity, error) {
	cities := []entities.FavoriteCity{}
	err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		Order("id").
		Find(&cities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite cities of user %d: %w", userID, err)
	}
	return cities, nil
}

func (r *favoriteCityRepository) FilterByName(ctx context.Context, name string) ([]entities.FavoriteCity, error) {
	cities := []entities.FavoriteCity{}
	err := r.db.WithContext(ctx).
		Where(nameContains, containsPattern(name)).
		Order("id").
		Find(&cities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to filter favorite cities: %w", err)
	}
	return cities, nil
}

func (r *favoriteCityRepository) ListOrdered(ctx context.Context, order Order) ([]entities.FavoriteCity, error) {
	cities := []entities.FavoriteCity{}
	if err := order.Apply(r.db.WithContext(ctx)).Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("failed to order favorite cities: %w", err)
	}
	return cities, nil
}

// Paginate pages by id so consecutive pages never overlap or skip rows.
func (r *favoriteCityRepository) Paginate(ctx context.Context, req PageRequest) (*models.Page[entities.FavoriteCity], error) {
	var total int64
	cities := []entities.FavoriteCity{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.FavoriteCity{}).Count(&total).Error; err != nil {
			return err
		}
		if int64(req.Offset()) >= total {
			return nil
		}
		return tx.Order("id").Offset(req.Offset()).Limit(req.PageSize).Find(&cities).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to paginate favorite cities: %w", err)
	}

	return models.NewPage(req.Page, req.PageSize, total, cities), nil
}

func (r *favoriteCityRepository) Update(ctx context.Context, id uint, fields map[string]any) (*entities.FavoriteCity, error) {
	var city entities.FavoriteCity
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&city, id).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&city).Omit("User").Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.Preload("User").First(&city, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update favorite city %d: %w", id, err)
	}
	return &city, nil
}

func (r *favoriteCityRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.FavoriteCity{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite city %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete favorite city %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
