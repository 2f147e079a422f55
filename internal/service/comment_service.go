package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pulsefeed/pulsefeed/internal/model"
	"github.com/pulsefeed/pulsefeed/internal/repository"
)

type CommentService interface {
	// Add attaches a comment to the post identified by the
	// author-username/id pair from its URL.
	Add(ctx context.Context, authorID, postUsername, postID, text string) (*model.Comment, error)
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

func (s *commentService) Add(ctx context.Context, authorID, postUsername, postID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "text", Reason: "required field missing"}
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.Author == nil || post.Author.Username != postUsername {
		return nil, ErrNotFound
	}
	comment := &model.Comment{Text: text, PostID: postID, AuthorID: authorID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
