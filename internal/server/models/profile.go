// Package models holds the server-side domain records persisted in
// PostgreSQL. Fields mirror table columns; denormalized display fields are
// populated by list queries for rendering.
package models

import "time"

// Roles a profile can hold. The root admin (designated by configuration)
// is an additional layer on top of RoleAdmin and is never stored.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Profile is the public-facing user record tied to an identity.
// Username stays nil until the user picks one during onboarding.
type Profile struct {
	ID         string
	Email      string
	Name       string
	Username   *string
	Bio        string
	AvatarURL  string
	Role       string
	IsVerified bool
	IsBanned   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProfileStats aggregates a profile's public activity for its profile page.
type ProfileStats struct {
	PostCount    int64
	LikeCount    int64
	CommentCount int64
}
