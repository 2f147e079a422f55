package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pulsefeed/pulsefeed/internal/model"
)

type CommunityRepository interface {
	Create(ctx context.Context, community *model.Community) error
	GetBySlug(ctx context.Context, slug string) (*model.Community, error)
	List(ctx context.Context) ([]*model.Community, error)
	// Delete cascades to the community's posts and their comments.
	Delete(ctx context.Context, id string) error
}

type communityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) Create(ctx context.Context, community *model.Community) error {
	if community.ID == "" {
		community.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(community).Error
}

func (r *communityRepository) GetBySlug(ctx context.Context, slug string) (*model.Community, error) {
	var community model.Community
	if err := r.db.WithContext(ctx).First(&community, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) List(ctx context.Context) ([]*model.Community, error) {
	var communities []*model.Community
	err := r.db.WithContext(ctx).Order("title ASC").Find(&communities).Error
	return communities, err
}

func (r *communityRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&model.Post{}).Select("id").Where("community_id = ?", id),
		).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("community_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Community{ID: id}).Error
	})
}
