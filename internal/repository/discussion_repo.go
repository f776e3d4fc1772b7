package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/lentera-api/internal/models"
)

// DiscussionFilter narrows discussion listings.
type DiscussionFilter struct {
	Subject string
}

// DiscussionRepository defines persistence operations for discussions.
type DiscussionRepository interface {
	List(ctx context.Context, filter DiscussionFilter) ([]models.Discussion, error)
	GetByID(ctx context.Context, id uint) (models.Discussion, error)
	Create(ctx context.Context, discussion *models.Discussion) error
	Update(ctx context.Context, discussion *models.Discussion) error
	Delete(ctx context.Context, id uint) error
	ReplaceAll(ctx context.Context, discussions []models.Discussion) (int64, error)
}

type discussionRepository struct {
	db *gorm.DB
}

// NewDiscussionRepository instantiates a GORM-backed repository.
func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) List(ctx context.Context, filter DiscussionFilter) ([]models.Discussion, error) {
	query := r.db.WithContext(ctx).Model(&models.Discussion{})

	if subject := strings.TrimSpace(filter.Subject); subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var discussions []models.Discussion
	if err := query.Order("last_activity_at DESC NULLS LAST").Find(&discussions).Error; err != nil {
		return nil, err
	}

	return discussions, nil
}

func (r *discussionRepository) GetByID(ctx context.Context, id uint) (models.Discussion, error) {
	var discussion models.Discussion
	if err := r.db.WithContext(ctx).First(&discussion, id).Error; err != nil {
		return models.Discussion{}, err
	}

	return discussion, nil
}

func (r *discussionRepository) Create(ctx context.Context, discussion *models.Discussion) error {
	return r.db.WithContext(ctx).Create(discussion).Error
}

func (r *discussionRepository) Update(ctx context.Context, discussion *models.Discussion) error {
	return r.db.WithContext(ctx).Save(discussion).Error
}

func (r *discussionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Discussion{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *discussionRepository) ReplaceAll(ctx context.Context, discussions []models.Discussion) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Discussion{}).Error; err != nil {
			return err
		}
		if len(discussions) == 0 {
			return nil
		}
		result := tx.Create(&discussions)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}
