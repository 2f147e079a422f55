package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	sqlitedriver "gorm.io/driver/sqlite"

	"github.com/pulsefeed/pulsefeed/config"
	"github.com/pulsefeed/pulsefeed/internal/api/handler"
	"github.com/pulsefeed/pulsefeed/internal/model"
	"github.com/pulsefeed/pulsefeed/internal/repository"
	"github.com/pulsefeed/pulsefeed/internal/service"
	"github.com/pulsefeed/pulsefeed/internal/storage"
	"github.com/pulsefeed/pulsefeed/pkg/cache"
)

type testApp struct {
	router   *gin.Engine
	cfg      *config.Config
	db       *gorm.DB
	redis    *miniredis.Miniredis
	auth     service.AuthService
	posts    repository.PostRepository
	follows  repository.FollowRepository
	comments repository.CommentRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlitedriver.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Community{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{
		Env:    "test",
		Server: config.ServerConfig{Addr: ":0", RateLimitRPM: 0},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			CookieName: "pulsefeed_token",
		},
		Feed:  config.FeedConfig{PageSize: 10, CacheTTL: 20 * time.Second},
		Media: config.MediaConfig{Dir: t.TempDir()},
	}

	users := repository.NewUserRepository(db)
	communities := repository.NewCommunityRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	follows := repository.NewFollowRepository(db)

	authSvc := service.NewAuthService(users, cfg.Auth)
	postSvc := service.NewPostService(posts, communities)
	commentSvc := service.NewCommentService(comments, posts)
	relSvc := service.NewRelationshipService(follows)
	feedSvc := service.NewFeedService(posts, comments, communities, users, follows, cfg.Feed.PageSize)
	images := storage.NewImageStore(cfg.Media.Dir)

	h := handler.New(cfg, authSvc, postSvc, commentSvc, relSvc, feedSvc, images)
	router := NewRouter(cfg, h, authSvc, cache.NewRedis(client))

	return &testApp{
		router:   router,
		cfg:      cfg,
		db:       db,
		redis:    mr,
		auth:     authSvc,
		posts:    posts,
		follows:  follows,
		comments: comments,
	}
}

func (a *testApp) signup(t *testing.T, username string) (*model.User, string) {
	t.Helper()
	user, token, err := a.auth.Register(context.Background(), username, username+"@example.com", "password")
	require.NoError(t, err)
	return user, token
}

func (a *testApp) do(method, path, token string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: a.cfg.Auth.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestAnonymousNewPostRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/new/", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/new/", w.Header().Get("Location"))
}

func TestCreatePostFlow(t *testing.T) {
	app := newTestApp(t)
	alice, token := app.signup(t, "alice")

	form := url.Values{"text": {"hello"}, "group": {""}}
	w := app.do(http.MethodPost, "/new/", token, form)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	posts, err := app.posts.List(context.Background(), repository.PostFilter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Text)
	assert.Equal(t, alice.ID, posts[0].AuthorID)
	assert.Nil(t, posts[0].CommunityID)
}

func TestCreatePostBlankTextRedisplaysForm(t *testing.T) {
	app := newTestApp(t)
	_, token := app.signup(t, "alice")

	w := app.do(http.MethodPost, "/new/", token, url.Values{"text": {"   "}, "group": {"golang"}})
	// validation failures are form redisplays, not 4xx
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "required field missing")
	// submitted values come back under the same keys the errors use
	assert.Contains(t, w.Body.String(), `"group":"golang"`)
	assert.NotContains(t, w.Body.String(), `"Group"`)

	cnt, err := app.posts.Count(context.Background(), repository.PostFilter{})
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func TestNonOwnerEditRedirectsWithoutChange(t *testing.T) {
	app := newTestApp(t)
	alice, aliceToken := app.signup(t, "alice")
	_, bobToken := app.signup(t, "bob")

	w := app.do(http.MethodPost, "/new/", aliceToken, url.Values{"text": {"original"}})
	require.Equal(t, http.StatusFound, w.Code)
	posts, err := app.posts.List(context.Background(), repository.PostFilter{AuthorID: alice.ID}, 0, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	postID := posts[0].ID

	w = app.do(http.MethodPost, "/alice/"+postID+"/edit/", bobToken, url.Values{"text": {"hacked"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/alice/"+postID+"/", w.Header().Get("Location"))

	got, err := app.posts.GetByID(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)
}

func TestEditMissingPostIs404(t *testing.T) {
	app := newTestApp(t)
	_, token := app.signup(t, "alice")

	w := app.do(http.MethodPost, "/alice/no-such-post/edit/", token, url.Values{"text": {"x"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodGet, "/alice/no-such-post/edit/", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditURLBoundToAuthorUsername(t *testing.T) {
	app := newTestApp(t)
	alice, aliceToken := app.signup(t, "alice")
	app.signup(t, "bob")

	require.Equal(t, http.StatusFound,
		app.do(http.MethodPost, "/new/", aliceToken, url.Values{"text": {"original"}}).Code)
	posts, err := app.posts.List(context.Background(), repository.PostFilter{AuthorID: alice.ID}, 0, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	postID := posts[0].ID

	// alice's post is not reachable through bob's URL space
	w := app.do(http.MethodPost, "/bob/"+postID+"/edit/", aliceToken, url.Values{"text": {"edited"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodPost, "/bob/"+postID+"/comment", aliceToken, url.Values{"text": {"hi"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	got, err := app.posts.GetByID(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)
	comments, err := app.comments.ListByPost(context.Background(), postID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestFollowTwiceLeavesOneEdge(t *testing.T) {
	app := newTestApp(t)
	alice, _ := app.signup(t, "alice")
	bob, bobToken := app.signup(t, "bob")

	for i := 0; i < 2; i++ {
		w := app.do(http.MethodGet, "/alice/follow", bobToken, nil)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/alice/", w.Header().Get("Location"))
	}

	var cnt int64
	require.NoError(t, app.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", bob.ID, alice.ID).
		Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)
}

func TestSelfFollowIsSilentNoop(t *testing.T) {
	app := newTestApp(t)
	_, aliceToken := app.signup(t, "alice")

	w := app.do(http.MethodGet, "/alice/follow", aliceToken, nil)
	require.Equal(t, http.StatusFound, w.Code)

	var cnt int64
	require.NoError(t, app.db.Model(&model.Follow{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestUnfollowMissingEdgeIsNoop(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice")
	_, bobToken := app.signup(t, "bob")

	w := app.do(http.MethodGet, "/alice/unfollow", bobToken, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/alice/", w.Header().Get("Location"))
}

func TestCommentFlow(t *testing.T) {
	app := newTestApp(t)
	alice, aliceToken := app.signup(t, "alice")
	bob, bobToken := app.signup(t, "bob")

	require.Equal(t, http.StatusFound,
		app.do(http.MethodPost, "/new/", aliceToken, url.Values{"text": {"post"}}).Code)
	posts, err := app.posts.List(context.Background(), repository.PostFilter{AuthorID: alice.ID}, 0, 1)
	require.NoError(t, err)
	postID := posts[0].ID

	// anonymous commenters get sent to login with a return path
	w := app.do(http.MethodPost, "/alice/"+postID+"/comment", "", url.Values{"text": {"hi"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/alice/"+postID+"/comment", w.Header().Get("Location"))

	w = app.do(http.MethodPost, "/alice/"+postID+"/comment", bobToken, url.Values{"text": {"hi"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/alice/"+postID+"/", w.Header().Get("Location"))

	comments, err := app.comments.ListByPost(context.Background(), postID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, bob.ID, comments[0].AuthorID)
}

func TestUnknownLookupsAre404(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/group/no-such-group/", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/no-such-user/", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/no-such-user/also-no-post/", "", nil).Code)
}

func TestGlobalFeedCacheStaleness(t *testing.T) {
	app := newTestApp(t)
	_, token := app.signup(t, "alice")

	require.Equal(t, http.StatusFound,
		app.do(http.MethodPost, "/new/", token, url.Values{"text": {"first"}}).Code)

	w := app.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "first")

	// a post created inside the cache window stays invisible
	require.Equal(t, http.StatusFound,
		app.do(http.MethodPost, "/new/", token, url.Values{"text": {"second"}}).Code)

	w = app.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "second")

	// once the window elapses a fresh render includes it
	app.redis.FastForward(21 * time.Second)
	w = app.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "second")
}

func TestLoginSetsCookieAndHonorsNext(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice")

	w := app.do(http.MethodPost, "/auth/login/?next=/new/", "", url.Values{
		"username": {"alice"},
		"password": {"password"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/new/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, app.cfg.Auth.CookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLoginBadCredentialsRedisplays(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice")

	w := app.do(http.MethodPost, "/auth/login/", "", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "invalid username or password")
}
