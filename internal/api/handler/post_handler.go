package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulsefeed/pulsefeed/internal/api/middleware"
	"github.com/pulsefeed/pulsefeed/internal/service"
	"github.com/pulsefeed/pulsefeed/internal/storage"
	"github.com/pulsefeed/pulsefeed/pkg/response"
)

// Echoed back on validation failure, so the json keys line up with the
// field-error keys.
type postForm struct {
	Text  string `form:"text" json:"text" binding:"required,notblank"`
	Group string `form:"group" json:"group"`
}

// NewPostForm godoc
// @Summary Empty new-post form
// @Tags posts
// @Success 200 {object} response.Response
// @Router /new [get]
func (h *Handler) NewPostForm(c *gin.Context) {
	response.Success(c, gin.H{"text": "", "group": "", "image": nil})
}

// CreatePost godoc
// @Summary Create a post; on success redirects to the global feed
// @Tags posts
// @Accept mpfd
// @Param text formData string true "post text"
// @Param group formData string false "community slug"
// @Param image formData file false "image attachment"
// @Success 302
// @Router /new [post]
func (h *Handler) CreatePost(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		response.FormInvalid(c, fieldErrors(err), form)
		return
	}
	image, ok := h.saveUpload(c, form)
	if !ok {
		return
	}

	_, err := h.posts.Create(c.Request.Context(), user.ID, service.PostInput{
		Text:          form.Text,
		CommunitySlug: form.Group,
		Image:         image,
	})
	if err != nil {
		h.renderPostError(c, err, form)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// EditPostForm godoc
// @Summary Pre-filled edit form; non-owners get redirected to the post
// @Tags posts
// @Param username path string true "author username"
// @Param post_id path string true "post id"
// @Success 200 {object} response.Response
// @Router /{username}/{post_id}/edit [get]
func (h *Handler) EditPostForm(c *gin.Context) {
	user := middleware.CurrentUser(c)
	post, err := h.posts.Get(c.Request.Context(), c.Param("username"), c.Param("post_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, h.postPath(c))
		return
	}
	group := ""
	if post.Community != nil {
		group = post.Community.Slug
	}
	response.Success(c, gin.H{"text": post.Text, "group": group, "image": post.Image})
}

// UpdatePost godoc
// @Summary Edit a post; only the author may change it
// @Tags posts
// @Accept mpfd
// @Param username path string true "author username"
// @Param post_id path string true "post id"
// @Param text formData string true "post text"
// @Param group formData string false "community slug"
// @Param image formData file false "image attachment"
// @Success 302
// @Router /{username}/{post_id}/edit [post]
func (h *Handler) UpdatePost(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		response.FormInvalid(c, fieldErrors(err), form)
		return
	}
	image, ok := h.saveUpload(c, form)
	if !ok {
		return
	}

	_, err := h.posts.Update(c.Request.Context(), user.ID, c.Param("username"), c.Param("post_id"), service.PostInput{
		Text:          form.Text,
		CommunitySlug: form.Group,
		Image:         image,
	})
	if err != nil {
		// a non-owner is sent to the read-only view, silently
		if errors.Is(err, service.ErrNotOwner) {
			c.Redirect(http.StatusFound, h.postPath(c))
			return
		}
		h.renderPostError(c, err, form)
		return
	}
	c.Redirect(http.StatusFound, h.postPath(c))
}

// AddComment godoc
// @Summary Comment on a post; redirects back to the post
// @Tags posts
// @Accept mpfd
// @Param username path string true "author username"
// @Param post_id path string true "post id"
// @Param text formData string true "comment text"
// @Success 302
// @Router /{username}/{post_id}/comment [post]
func (h *Handler) AddComment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	text := c.PostForm("text")

	_, err := h.comments.Add(c.Request.Context(), user.ID, c.Param("username"), c.Param("post_id"), text)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		if ve, ok := service.AsValidation(err); ok {
			// redisplay the post view together with the field error
			detail, derr := h.feeds.PostDetail(c.Request.Context(), c.Param("username"), c.Param("post_id"))
			if derr != nil {
				if errors.Is(derr, service.ErrNotFound) {
					response.NotFound(c)
					return
				}
				response.InternalError(c, derr)
				return
			}
			response.FormInvalid(c, map[string]string{ve.Field: ve.Reason}, gin.H{
				"post":     newPostView(detail.Post),
				"comments": newCommentViews(detail.Comments),
				"text":     text,
			})
			return
		}
		response.InternalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.postPath(c))
}

// saveUpload stores an attached image if one was submitted. A payload
// that is not an image is surfaced as a field error instead of being
// silently dropped.
func (h *Handler) saveUpload(c *gin.Context, form postForm) (*string, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, true // no file attached
	}
	f, err := fh.Open()
	if err != nil {
		response.InternalError(c, err)
		return nil, false
	}
	defer f.Close()

	path, err := h.images.Save(f)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			response.FormInvalid(c, map[string]string{"image": "not an image"}, form)
			return nil, false
		}
		response.InternalError(c, err)
		return nil, false
	}
	return &path, true
}

func (h *Handler) renderPostError(c *gin.Context, err error, form postForm) {
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c)
		return
	}
	if ve, ok := service.AsValidation(err); ok {
		response.FormInvalid(c, map[string]string{ve.Field: ve.Reason}, form)
		return
	}
	response.InternalError(c, err)
}

func (h *Handler) postPath(c *gin.Context) string {
	return "/" + c.Param("username") + "/" + c.Param("post_id") + "/"
}
