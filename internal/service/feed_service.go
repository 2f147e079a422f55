package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pulsefeed/pulsefeed/internal/model"
	"github.com/pulsefeed/pulsefeed/internal/repository"
)

// FeedPage is one page of a post feed, newest first. Ordering ties on
// created_at break on id descending so pages are stable.
type FeedPage struct {
	Posts    []*model.Post
	PageInfo PageInfo
}

// CommunityFeed is the community page: the community record plus its feed.
type CommunityFeed struct {
	Community *model.Community
	FeedPage
}

// ProfileFeed is the author page: the author, their feed, and the
// viewer's relation to them.
type ProfileFeed struct {
	Author         *model.User
	PostCount      int64
	FollowerCount  int64
	FollowingCount int64
	// Following reports whether the viewing user already follows the
	// author; always false for anonymous viewers.
	Following bool
	FeedPage
}

// PostDetail is the single-post page: the post, its comments (oldest
// first) and the author's total post count.
type PostDetail struct {
	Post            *model.Post
	Comments        []*model.Comment
	AuthorPostCount int64
}

type FeedService interface {
	Global(ctx context.Context, page int) (*FeedPage, error)
	Community(ctx context.Context, slug string, page int) (*CommunityFeed, error)
	Profile(ctx context.Context, username, viewerID string, page int) (*ProfileFeed, error)
	// Following lists posts authored by users the viewer follows. An
	// empty follow set yields an empty page, not an error.
	Following(ctx context.Context, viewerID string, page int) (*FeedPage, error)
	PostDetail(ctx context.Context, username, postID string) (*PostDetail, error)
}

type feedService struct {
	posts       repository.PostRepository
	comments    repository.CommentRepository
	communities repository.CommunityRepository
	users       repository.UserRepository
	follows     repository.FollowRepository
	pageSize    int
}

func NewFeedService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	communities repository.CommunityRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
	pageSize int,
) FeedService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &feedService{
		posts:       posts,
		comments:    comments,
		communities: communities,
		users:       users,
		follows:     follows,
		pageSize:    pageSize,
	}
}

func (s *feedService) Global(ctx context.Context, page int) (*FeedPage, error) {
	return s.page(ctx, repository.PostFilter{}, page)
}

func (s *feedService) Community(ctx context.Context, slug string, page int) (*CommunityFeed, error) {
	community, err := s.communities.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	fp, err := s.page(ctx, repository.PostFilter{CommunityID: community.ID}, page)
	if err != nil {
		return nil, err
	}
	return &CommunityFeed{Community: community, FeedPage: *fp}, nil
}

func (s *feedService) Profile(ctx context.Context, username, viewerID string, page int) (*ProfileFeed, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	fp, err := s.page(ctx, repository.PostFilter{AuthorID: author.ID}, page)
	if err != nil {
		return nil, err
	}
	followers, err := s.follows.CountFollowers(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	viewerFollows := false
	if viewerID != "" && viewerID != author.ID {
		viewerFollows, err = s.follows.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}
	return &ProfileFeed{
		Author:         author,
		PostCount:      fp.PageInfo.TotalItems,
		FollowerCount:  followers,
		FollowingCount: following,
		Following:      viewerFollows,
		FeedPage:       *fp,
	}, nil
}

func (s *feedService) Following(ctx context.Context, viewerID string, page int) (*FeedPage, error) {
	return s.page(ctx, repository.PostFilter{FollowerID: viewerID}, page)
}

func (s *feedService) PostDetail(ctx context.Context, username, postID string) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// the URL binds the post to its author's username
	if post.Author == nil || post.Author.Username != username {
		return nil, ErrNotFound
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments, AuthorPostCount: count}, nil
}

func (s *feedService) page(ctx context.Context, f repository.PostFilter, page int) (*FeedPage, error) {
	total, err := s.posts.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	info := paginate(total, page, s.pageSize)
	posts, err := s.posts.List(ctx, f, info.offset(), info.PageSize)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: posts, PageInfo: info}, nil
}
