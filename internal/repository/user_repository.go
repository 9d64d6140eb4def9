package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"clima-be/internal/entities"
	"clima-be/internal/models"
)

// UserRepository defines the interface for user database operations.
// Lookups by id or email see inactive users, listings do not.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context, activeOnly bool) ([]entities.User, error)
	FilterByName(ctx context.Context, name string) ([]entities.User, error)
	ListOrdered(ctx context.Context, order Order) ([]entities.User, error)
	Paginate(ctx context.Context, req PageRequest, order Order) (*models.Page[entities.User], error)
	Update(ctx context.Context, id uint, fields map[string]any) (*entities.User, error)
	Deactivate(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find user %d: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entities.User{}).Where("is_active = ?", true)
}

func (r *userRepository) List(ctx context.Context, activeOnly bool) ([]entities.User, error) {
	q := r.db.WithContext(ctx).Model(&entities.User{})
	if activeOnly {
		q = r.active(ctx)
	}
	users := []entities.User{}
	if err := q.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) FilterByName(ctx context.Context, name string) ([]entities.User, error) {
	users := []entities.User{}
	err := r.active(ctx).Where(nameContains, containsPattern(name)).Order("id").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to filter users: %w", err)
	}
	return users, nil
}

func (r *userRepository) ListOrdered(ctx context.Context, order Order) ([]entities.User, error) {
	users := []entities.User{}
	if err := order.Apply(r.active(ctx)).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to order users: %w", err)
	}
	return users, nil
}

// Paginate reads the total and the requested slice in one transaction so
// the counters agree with the returned rows.
func (r *userRepository) Paginate(ctx context.Context, req PageRequest, order Order) (*models.Page[entities.User], error) {
	var total int64
	users := []entities.User{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.User{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
			return err
		}
		if int64(req.Offset()) >= total {
			return nil
		}
		q := tx.Model(&entities.User{}).Where("is_active = ?", true)
		return order.Apply(q).Offset(req.Offset()).Limit(req.PageSize).Find(&users).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to paginate users: %w", err)
	}

	return models.NewPage(req.Page, req.PageSize, total, users), nil
}

// Update applies a partial patch keyed by column name.
func (r *userRepository) Update(ctx context.Context, id uint, fields map[string]any) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&user, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return &user, nil
}

// Deactivate soft-deletes a user.
func (r *userRepository) Deactivate(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user entities.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("is_active", false).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
