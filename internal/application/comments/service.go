package comments

import (
	"context"
	"errors"
	"strings"

	"gavel-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrInvalidComment  = errors.New("Comment content is required (max 500 characters)")
)

type Service struct {
	DB *gorm.DB
}

type AddCommentInput struct {
	ListingID uuid.UUID
	AuthorID  uuid.UUID
	Content   string
}

// AddComment appends a comment to a listing. Comments are never updated or
// deleted; closed listings still accept comments.
func (s *Service) AddComment(ctx context.Context, in AddCommentInput) (*domain.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" || len(content) > 500 {
		return nil, ErrInvalidComment
	}
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", in.ListingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{
		ListingID: in.ListingID,
		AuthorID:  in.AuthorID,
		Content:   content,
	}
	if err := s.DB.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComments returns a listing's comments ordered by creation time ascending.
func (s *Service) GetComments(ctx context.Context, listingID uuid.UUID) ([]domain.Comment, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	var comments []domain.Comment
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order(`"createdAt" ASC`).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
