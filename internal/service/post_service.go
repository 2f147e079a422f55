package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pulsefeed/pulsefeed/internal/model"
	"github.com/pulsefeed/pulsefeed/internal/repository"
)

// PostInput is the cleaned form payload for creating or editing a post.
// CommunitySlug and Image are optional; an unknown slug is a field error,
// not a lookup failure.
type PostInput struct {
	Text          string
	CommunitySlug string
	Image         *string
}

type PostService interface {
	Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error)
	// Update mutates text/community/image only. The acting user must be
	// the post's author; author and creation time never change.
	Update(ctx context.Context, actorID, authorUsername, postID string, in PostInput) (*model.Post, error)
	// Get resolves a post through the author-username/id pair from its
	// URL; a mismatched username is a lookup failure, not a match.
	Get(ctx context.Context, authorUsername, postID string) (*model.Post, error)
}

type postService struct {
	posts       repository.PostRepository
	communities repository.CommunityRepository
}

func NewPostService(posts repository.PostRepository, communities repository.CommunityRepository) PostService {
	return &postService{posts: posts, communities: communities}
}

func (s *postService) Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error) {
	text, communityID, err := s.clean(ctx, in)
	if err != nil {
		return nil, err
	}
	post := &model.Post{
		Text:        text,
		AuthorID:    authorID,
		CommunityID: communityID,
		Image:       in.Image,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, actorID, authorUsername, postID string, in PostInput) (*model.Post, error) {
	post, err := s.Get(ctx, authorUsername, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, ErrNotOwner
	}
	text, communityID, err := s.clean(ctx, in)
	if err != nil {
		return nil, err
	}
	post.Text = text
	post.CommunityID = communityID
	if in.Image != nil {
		post.Image = in.Image
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, authorUsername, postID string) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// the URL binds the post to its author's username
	if post.Author == nil || post.Author.Username != authorUsername {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *postService) clean(ctx context.Context, in PostInput) (string, *string, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return "", nil, &ValidationError{Field: "text", Reason: "required field missing"}
	}
	if in.CommunitySlug == "" {
		return text, nil, nil
	}
	community, err := s.communities.GetBySlug(ctx, in.CommunitySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, &ValidationError{Field: "group", Reason: "unknown community"}
		}
		return "", nil, err
	}
	return text, &community.ID, nil
}
