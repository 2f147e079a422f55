package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulsefeed/pulsefeed/internal/api/middleware"
	"github.com/pulsefeed/pulsefeed/internal/service"
	"github.com/pulsefeed/pulsefeed/pkg/response"
)

// FollowAuthor godoc
// @Summary Follow an author; following yourself or re-following is a no-op
// @Tags relations
// @Param username path string true "author username"
// @Success 302
// @Failure 404 {object} response.Response
// @Router /{username}/follow [get]
func (h *Handler) FollowAuthor(c *gin.Context) {
	h.changeFollow(c, true)
}

// UnfollowAuthor godoc
// @Summary Unfollow an author; a missing edge is a no-op
// @Tags relations
// @Param username path string true "author username"
// @Success 302
// @Failure 404 {object} response.Response
// @Router /{username}/unfollow [get]
func (h *Handler) UnfollowAuthor(c *gin.Context) {
	h.changeFollow(c, false)
}

func (h *Handler) changeFollow(c *gin.Context, follow bool) {
	user := middleware.CurrentUser(c)
	username := c.Param("username")

	author, err := h.auth.UserByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	if follow {
		err = h.relations.Follow(c.Request.Context(), user.ID, author.ID)
		// self-follow is silently ignored, the profile redirect happens
		// either way
		if err != nil && !errors.Is(err, service.ErrFollowSelf) {
			response.InternalError(c, err)
			return
		}
	} else {
		if err := h.relations.Unfollow(c.Request.Context(), user.ID, author.ID); err != nil {
			response.InternalError(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/"+username+"/")
}
