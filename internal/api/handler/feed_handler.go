package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pulsefeed/pulsefeed/internal/api/middleware"
	"github.com/pulsefeed/pulsefeed/internal/service"
	"github.com/pulsefeed/pulsefeed/pkg/response"
)

// GlobalFeed godoc
// @Summary Global feed, newest first
// @Tags feeds
// @Param page query int false "page number" default(1)
// @Success 200 {object} response.Response
// @Router / [get]
func (h *Handler) GlobalFeed(c *gin.Context) {
	fp, err := h.feeds.Global(c.Request.Context(), pageParam(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, newFeedView(fp))
}

// CommunityFeed godoc
// @Summary Posts of one community, resolved by slug
// @Tags feeds
// @Param slug path string true "community slug"
// @Param page query int false "page number" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /group/{slug} [get]
func (h *Handler) CommunityFeed(c *gin.Context) {
	cf, err := h.feeds.Community(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{
		"community": cf.Community,
		"feed":      newFeedView(&cf.FeedPage),
	})
}

// ProfileFeed godoc
// @Summary An author's posts plus the viewer's follow state
// @Tags feeds
// @Param username path string true "author username"
// @Param page query int false "page number" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /{username} [get]
func (h *Handler) ProfileFeed(c *gin.Context) {
	viewerID := ""
	if u := middleware.CurrentUser(c); u != nil {
		viewerID = u.ID
	}
	pf, err := h.feeds.Profile(c.Request.Context(), c.Param("username"), viewerID, pageParam(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{
		"author":          pf.Author,
		"post_count":      pf.PostCount,
		"follower_count":  pf.FollowerCount,
		"following_count": pf.FollowingCount,
		"following":       pf.Following,
		"feed":            newFeedView(&pf.FeedPage),
	})
}

// FollowFeed godoc
// @Summary Posts by authors the current user follows
// @Tags feeds
// @Param page query int false "page number" default(1)
// @Success 200 {object} response.Response
// @Router /follow [get]
func (h *Handler) FollowFeed(c *gin.Context) {
	user := middleware.CurrentUser(c)
	fp, err := h.feeds.Following(c.Request.Context(), user.ID, pageParam(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, newFeedView(fp))
}

// PostDetail godoc
// @Summary One post with its comments
// @Tags posts
// @Param username path string true "author username"
// @Param post_id path string true "post id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /{username}/{post_id} [get]
func (h *Handler) PostDetail(c *gin.Context) {
	detail, err := h.feeds.PostDetail(c.Request.Context(), c.Param("username"), c.Param("post_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{
		"post":              newPostView(detail.Post),
		"comments":          newCommentViews(detail.Comments),
		"author_post_count": detail.AuthorPostCount,
	})
}
