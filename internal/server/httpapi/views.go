package httpapi

import (
	"time"

	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

// View types define the JSON shapes returned to clients. Internal fields
// like email-on-comment never appear here.

type profileView struct {
	ID         string    `json:"id"`
	Email      string    `json:"email,omitempty"`
	Name       string    `json:"name"`
	Username   *string   `json:"username"`
	Bio        string    `json:"bio"`
	AvatarURL  string    `json:"avatarUrl"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	IsBanned   bool      `json:"isBanned"`
	CreatedAt  time.Time `json:"createdAt"`
}

type profileStatsView struct {
	PostCount    int64 `json:"postCount"`
	LikeCount    int64 `json:"likeCount"`
	CommentCount int64 `json:"commentCount"`
}

type postAuthorView struct {
	Name       string  `json:"name"`
	Username   *string `json:"username"`
	AvatarURL  string  `json:"avatarUrl"`
	IsVerified bool    `json:"isVerified"`
}

type postView struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Content       *string        `json:"content"`
	Slug          string         `json:"slug"`
	ImageURL      string         `json:"imageUrl"`
	Published     bool           `json:"published"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Author        postAuthorView `json:"author"`
	LikeCount     int64          `json:"likeCount"`
	CommentCount  int64          `json:"commentCount"`
	LikedByViewer bool           `json:"likedByViewer"`
}

type commentAuthorView struct {
	Name      string  `json:"name"`
	Username  *string `json:"username"`
	AvatarURL string  `json:"avatarUrl"`
	IsAdmin   bool    `json:"isAdmin"`
}

type commentView struct {
	ID        string            `json:"id"`
	PostID    string            `json:"postId"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"createdAt"`
	Author    commentAuthorView `json:"author"`
}

type partnerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	LogoURL   string `json:"logoUrl"`
	SortOrder int    `json:"sortOrder"`
}

type settingView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ownProfileView keeps the email; publicProfileView drops it.
func ownProfileView(p *models.Profile) profileView {
	return profileView{
		ID:         p.ID,
		Email:      p.Email,
		Name:       p.Name,
		Username:   p.Username,
		Bio:        p.Bio,
		AvatarURL:  p.AvatarURL,
		Role:       p.Role,
		IsVerified: p.IsVerified,
		IsBanned:   p.IsBanned,
		CreatedAt:  p.CreatedAt,
	}
}

func publicProfileView(p *models.Profile) profileView {
	v := ownProfileView(p)
	v.Email = ""
	return v
}

func newPostView(p *models.Post) postView {
	return postView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Slug:      p.Slug,
		ImageURL:  p.ImageURL,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author: postAuthorView{
			Name:       p.AuthorName,
			Username:   p.AuthorUsername,
			AvatarURL:  p.AuthorAvatar,
			IsVerified: p.AuthorVerified,
		},
		LikeCount:     p.LikeCount,
		CommentCount:  p.CommentCount,
		LikedByViewer: p.LikedByViewer,
	}
}

func newPostViews(list []*models.Post) []postView {
	out := make([]postView, 0, len(list))
	for _, p := range list {
		out = append(out, newPostView(p))
	}
	return out
}

func newCommentView(c *models.Comment) commentView {
	return commentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Author: commentAuthorView{
			Name:      c.AuthorName,
			Username:  c.AuthorUsername,
			AvatarURL: c.AuthorAvatar,
			IsAdmin:   c.IsAdmin,
		},
	}
}

func newCommentViews(list []*models.Comment) []commentView {
	out := make([]commentView, 0, len(list))
	for _, c := range list {
		out = append(out, newCommentView(c))
	}
	return out
}

func newPartnerView(p *models.Partner) partnerView {
	return partnerView{ID: p.ID, Name: p.Name, LogoURL: p.LogoURL, SortOrder: p.SortOrder}
}

func newPartnerViews(list []*models.Partner) []partnerView {
	out := make([]partnerView, 0, len(list))
	for _, p := range list {
		out = append(out, newPartnerView(p))
	}
	return out
}

func newSettingViews(list []*models.Setting) []settingView {
	out := make([]settingView, 0, len(list))
	for _, s := range list {
		out = append(out, settingView{Key: s.Key, Value: s.Value})
	}
	return out
}

func newProfileViews(list []*models.Profile, withEmail bool) []profileView {
	out := make([]profileView, 0, len(list))
	for _, p := range list {
		if withEmail {
			out = append(out, ownProfileView(p))
		} else {
			out = append(out, publicProfileView(p))
		}
	}
	return out
}
