package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pulsefeed/pulsefeed/config"
	"github.com/pulsefeed/pulsefeed/internal/service"
	"github.com/pulsefeed/pulsefeed/internal/storage"
)

// Handler bundles the services behind the HTTP routes.
type Handler struct {
	cfg       *config.Config
	auth      service.AuthService
	posts     service.PostService
	comments  service.CommentService
	relations service.RelationshipService
	feeds     service.FeedService
	images    *storage.ImageStore
}

func New(
	cfg *config.Config,
	auth service.AuthService,
	posts service.PostService,
	comments service.CommentService,
	relations service.RelationshipService,
	feeds service.FeedService,
	images *storage.ImageStore,
) *Handler {
	return &Handler{
		cfg:       cfg,
		auth:      auth,
		posts:     posts,
		comments:  comments,
		relations: relations,
		feeds:     feeds,
		images:    images,
	}
}

// pageParam reads the 1-based page query parameter; anything absent or
// unparseable falls back to page 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// fieldErrors flattens validator failures into a field -> reason map for
// form redisplay.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required", "notblank":
				out[fieldName(fe)] = "required field missing"
			default:
				out[fieldName(fe)] = "invalid value"
			}
		}
		return out
	}
	out["form"] = err.Error()
	return out
}

func fieldName(fe validator.FieldError) string {
	// struct field names map 1:1 onto lowercase form field names here
	name := fe.Field()
	if name == "" {
		return "form"
	}
	return strings.ToLower(name)
}
