package categories

import (
	"context"
	"errors"
	"strings"

	"gavel-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("Category not found")
	ErrCategoryExists   = errors.New("Category name already exists")
	ErrInvalidCategory  = errors.New("Category name and description are required")
)

type Service struct {
	DB *gorm.DB
}

type CreateCategoryInput struct {
	Name        string
	Description string
}

func (s *Service) CreateCategory(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if name == "" || len(name) > 64 || description == "" || len(description) > 500 {
		return nil, ErrInvalidCategory
	}

	var existing domain.Category
	err := s.DB.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, ErrCategoryExists
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	category := &domain.Category{Name: name, Description: description}
	if err := s.DB.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) GetCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteCategory removes the category and nulls category_id on its
// listings (SET NULL semantics) in the same transaction.
func (s *Service) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	var category domain.Category
	if err := s.DB.WithContext(ctx).Where("category_id = ?", categoryID).First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrCategoryNotFound
		}
		return err
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Model(&domain.Listing{}).Where("category_id = ?", categoryID).Update("category_id", nil).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&category).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
