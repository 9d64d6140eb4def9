package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clima-be/internal/entities"
	"clima-be/internal/models"
	"clima-be/internal/repository"
)

// UserService defines the interface for user business logic
type UserService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*entities.User, error)
	List(ctx context.Context, activeOnly bool) ([]entities.User, error)
	Get(ctx context.Context, id uint) (*entities.User, error)
	Update(ctx context.Context, id uint, req *models.UpdateUserRequest) (*entities.User, error)
	Delete(ctx context.Context, id uint) error
	Filter(ctx context.Context, name string) ([]entities.User, error)
	Order(ctx context.Context, field, dir string) ([]entities.User, error)
	Page(ctx context.Context, page, pageSize, field, dir string) (*models.Page[entities.User], error)
}

type userService struct {
	repo       repository.UserRepository
	bcryptCost int
}

// NewUserService creates a new user service. bcryptCost outside bcrypt's
// range falls back to bcrypt.DefaultCost.
func NewUserService(repo repository.UserRepository, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, bcryptCost: bcryptCost}
}

func (s *userService) Create(ctx context.Context, req *models.CreateUserRequest) (*entities.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    normalizeEmail(req.Email),
		Password: string(hashedPassword),
		IsActive: true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, activeOnly bool) ([]entities.User, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *userService) Get(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *userService) Update(ctx context.Context, id uint, req *models.UpdateUserRequest) (*entities.User, error) {
	fields := req.Fields()
	if name, ok := fields["name"].(string); ok {
		fields["name"] = strings.TrimSpace(name)
	}
	if email, ok := fields["email"].(string); ok {
		fields["email"] = normalizeEmail(email)
	}
	return s.repo.Update(ctx, id, fields)
}

// Delete deactivates the account; the row and its favorites are kept.
func (s *userService) Delete(ctx context.Context, id uint) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *userService) Filter(ctx context.Context, name string) ([]entities.User, error) {
	return s.repo.FilterByName(ctx, name)
}

func (s *userService) Order(ctx context.Context, field, dir string) ([]entities.User, error) {
	return s.repo.ListOrdered(ctx, repository.OrderBy(repository.UserOrderFields, field, dir))
}

func (s *userService) Page(ctx context.Context, page, pageSize, field, dir string) (*models.Page[entities.User], error) {
	return s.repo.Paginate(ctx,
		repository.NewPageRequest(page, pageSize),
		repository.OrderBy(repository.UserOrderFields, field, dir),
	)
}
