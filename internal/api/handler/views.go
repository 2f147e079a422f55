package handler

import (
	"time"

	"github.com/pulsefeed/pulsefeed/internal/model"
	"github.com/pulsefeed/pulsefeed/internal/service"
)

type postView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Community *string   `json:"community,omitempty"`
	Image     *string   `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type commentView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

func newPostView(p *model.Post) postView {
	v := postView{
		ID:        p.ID,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
	}
	if p.Author != nil {
		v.Author = p.Author.Username
	}
	if p.Community != nil {
		slug := p.Community.Slug
		v.Community = &slug
	}
	if p.Image != nil {
		url := "/media/" + *p.Image
		v.Image = &url
	}
	return v
}

func newPostViews(posts []*model.Post) []postView {
	out := make([]postView, len(posts))
	for i, p := range posts {
		out[i] = newPostView(p)
	}
	return out
}

func newCommentViews(comments []*model.Comment) []commentView {
	out := make([]commentView, len(comments))
	for i, cm := range comments {
		out[i] = commentView{ID: cm.ID, Text: cm.Text, CreatedAt: cm.CreatedAt}
		if cm.Author != nil {
			out[i].Author = cm.Author.Username
		}
	}
	return out
}

type feedView struct {
	Posts    []postView       `json:"posts"`
	PageInfo service.PageInfo `json:"page_info"`
}

func newFeedView(fp *service.FeedPage) feedView {
	return feedView{Posts: newPostViews(fp.Posts), PageInfo: fp.PageInfo}
}
