package service

import (
	"context"
	"errors"

	"github.com/foodgram/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowService manages author subscriptions.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// FollowProfile is an author profile augmented with a capped recipe preview
// and the total recipe count. Built by composition over the base user row.
type FollowProfile struct {
	User         models.User
	IsSubscribed bool
	Recipes      []models.Recipe
	RecipesCount int64
}

// Subscribe adds a follow row from actor to author. Self-follow is always
// rejected; a duplicate pair is a conflict.
func (s *FollowService) Subscribe(ctx context.Context, actorID, authorID uuid.UUID, recipesLimit int) (*FollowProfile, error) {
	if actorID == authorID {
		return nil, ErrSelfFollow
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	follow := models.Follow{UserID: actorID, AuthorID: authorID}
	if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	return s.profile(ctx, author, recipesLimit)
}

// Unsubscribe removes the follow row, failing with not-found when absent.
func (s *FollowService) Unsubscribe(ctx context.Context, actorID, authorID uuid.UUID) error {
	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", actorID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// Subscriptions lists every author the actor follows, newest follow first,
// each shaped like the subscribe response.
func (s *FollowService) Subscriptions(ctx context.Context, actorID uuid.UUID, offset, limit, recipesLimit int) ([]FollowProfile, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", actorID)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.User
	err := base.
		Order("follows.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}

	profiles := make([]FollowProfile, 0, len(authors))
	for _, author := range authors {
		p, err := s.profile(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, count, nil
}

// IsSubscribedSet reports which of the given authors the actor follows.
// A nil actor (anonymous) yields an empty set.
func (s *FollowService) IsSubscribedSet(ctx context.Context, actorID *uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	subscribed := make(map[uuid.UUID]bool)
	if actorID == nil || len(authorIDs) == 0 {
		return subscribed, nil
	}

	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id IN ?", *actorID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		subscribed[id] = true
	}
	return subscribed, nil
}

func (s *FollowService) profile(ctx context.Context, author models.User, recipesLimit int) (*FollowProfile, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).
		Where("author_id = ?", author.ID).
		Order("pub_date DESC")
	if recipesLimit > 0 {
		query = query.Limit(recipesLimit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	return &FollowProfile{
		User:         author,
		IsSubscribed: true,
		Recipes:      recipes,
		RecipesCount: count,
	}, nil
}
