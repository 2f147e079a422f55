package service

import (
	"context"

	"github.com/pulsefeed/pulsefeed/internal/repository"
)

// RelationshipService maintains the follow graph. Follow and Unfollow are
// idempotent: repeating either leaves exactly the same set of edges.
type RelationshipService interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

type relationshipService struct {
	follows repository.FollowRepository
}

func NewRelationshipService(follows repository.FollowRepository) RelationshipService {
	return &relationshipService{follows: follows}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrFollowSelf
	}
	return s.follows.Create(ctx, followerID, followeeID)
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	return s.follows.Delete(ctx, followerID, followeeID)
}

func (s *relationshipService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	if followerID == "" {
		return false, nil
	}
	return s.follows.Exists(ctx, followerID, followeeID)
}
