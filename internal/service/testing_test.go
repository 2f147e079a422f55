package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pulsefeed/pulsefeed/internal/model"
	"github.com/pulsefeed/pulsefeed/internal/repository"
)

type fixture struct {
	db          *gorm.DB
	users       repository.UserRepository
	communities repository.CommunityRepository
	posts       repository.PostRepository
	comments    repository.CommentRepository
	follows     repository.FollowRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Community{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))
	return &fixture{
		db:          db,
		users:       repository.NewUserRepository(db),
		communities: repository.NewCommunityRepository(db),
		posts:       repository.NewPostRepository(db),
		comments:    repository.NewCommentRepository(db),
		follows:     repository.NewFollowRepository(db),
	}
}

func (f *fixture) feedService(pageSize int) FeedService {
	return NewFeedService(f.posts, f.comments, f.communities, f.users, f.follows, pageSize)
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) community(t *testing.T, slug string) *model.Community {
	t.Helper()
	g := &model.Community{Title: slug, Slug: slug}
	require.NoError(t, f.communities.Create(context.Background(), g))
	return g
}

func (f *fixture) post(t *testing.T, authorID, text string, communityID *string, createdAt time.Time) *model.Post {
	t.Helper()
	p := &model.Post{Text: text, AuthorID: authorID, CommunityID: communityID, CreatedAt: createdAt, UpdatedAt: createdAt}
	require.NoError(t, f.posts.Create(context.Background(), p))
	return p
}
