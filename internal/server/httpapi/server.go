// Package httpapi exposes the application over HTTP using gin. Handlers
// translate requests into service calls and service errors into status
// codes; all authorization decisions live in the service layer.
package httpapi

import (
	"context"
	"io"
	"time"

	"github.com/Bangbenzzz/blogerz-sub000/internal/logging"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/authz"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
	"github.com/gin-gonic/gin"
)

// IdentityAPI is the slice of IdentityService the transport needs.
type IdentityAPI interface {
	Register(ctx context.Context, email, password, name string) (*models.Profile, string, error)
	Login(ctx context.Context, email, password string) (*models.Profile, string, error)
	EnsureProfile(ctx context.Context, id, email, name string) (*models.Profile, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	UpdateOwnProfile(ctx context.Context, caller *models.Profile, name string, username *string, bio, avatarURL string) (*models.Profile, error)
	PublicProfile(ctx context.Context, username string) (*models.Profile, *models.ProfileStats, error)
}

type ModerationAPI interface {
	Create(ctx context.Context, caller *models.Profile, title string, content *string, imageURL string) (*models.Post, error)
	Get(ctx context.Context, caller *models.Profile, slug string) (*models.Post, error)
	Update(ctx context.Context, caller *models.Profile, postID, title string, content *string, imageURL string) (*models.Post, error)
	Approve(ctx context.Context, caller *models.Profile, postID string) (bool, error)
	Delete(ctx context.Context, caller *models.Profile, postID string) error
	ListPublished(ctx context.Context, caller *models.Profile) ([]*models.Post, error)
	ListMine(ctx context.Context, caller *models.Profile) ([]*models.Post, error)
	ListPending(ctx context.Context, caller *models.Profile) ([]*models.Post, error)
	PendingCount(ctx context.Context, caller *models.Profile) (int64, error)
}

type InteractionAPI interface {
	ToggleLike(ctx context.Context, caller *models.Profile, postID string) (bool, int64, error)
	AddComment(ctx context.Context, caller *models.Profile, postID, content string) (*models.Comment, error)
	ListComments(ctx context.Context, caller *models.Profile, postID string) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, caller *models.Profile, commentID string) error
}

type DirectoryAPI interface {
	Search(ctx context.Context, query string) ([]*models.Profile, error)
}

type AccountAPI interface {
	SetBanned(ctx context.Context, caller *models.Profile, targetID string, banned bool) error
	SetRole(ctx context.Context, caller *models.Profile, targetID, role string) error
	SetVerified(ctx context.Context, caller *models.Profile, targetID string, verified bool) error
	ListUsers(ctx context.Context, caller *models.Profile) ([]*models.Profile, error)
}

type PartnerAPI interface {
	Create(ctx context.Context, caller *models.Profile, name, logoURL string, sortOrder int) (*models.Partner, error)
	List(ctx context.Context) ([]*models.Partner, error)
	Update(ctx context.Context, caller *models.Profile, id, name, logoURL string, sortOrder int) error
	Delete(ctx context.Context, caller *models.Profile, id string) error
}

type SettingAPI interface {
	Upsert(ctx context.Context, caller *models.Profile, key, value string) error
	Get(ctx context.Context, key string) (*models.Setting, error)
	GetAll(ctx context.Context) ([]*models.Setting, error)
}

type StorageAPI interface {
	Upload(ctx context.Context, contentType string, body io.Reader) (string, error)
	PresignPut(ctx context.Context) (string, string, string, error)
}

// Server bundles the services behind the HTTP surface.
type Server struct {
	logger logging.Logger
	gate   *authz.Gate

	identity    IdentityAPI
	moderation  ModerationAPI
	interaction InteractionAPI
	directory   DirectoryAPI
	accounts    AccountAPI
	partners    PartnerAPI
	settings    SettingAPI
	storage     StorageAPI

	jwtSecret     []byte
	cookieMaxAge  time.Duration
	secureCookies bool
}

type ServerOptions struct {
	Logger        logging.Logger
	Gate          *authz.Gate
	Identity      IdentityAPI
	Moderation    ModerationAPI
	Interaction   InteractionAPI
	Directory     DirectoryAPI
	Accounts      AccountAPI
	Partners      PartnerAPI
	Settings      SettingAPI
	Storage       StorageAPI
	JWTSecret     []byte
	CookieMaxAge  time.Duration
	SecureCookies bool
}

func NewServer(o ServerOptions) *Server {
	return &Server{
		logger:        o.Logger,
		gate:          o.Gate,
		identity:      o.Identity,
		moderation:    o.Moderation,
		interaction:   o.Interaction,
		directory:     o.Directory,
		accounts:      o.Accounts,
		partners:      o.Partners,
		settings:      o.Settings,
		storage:       o.Storage,
		jwtSecret:     o.JWTSecret,
		cookieMaxAge:  o.CookieMaxAge,
		secureCookies: o.SecureCookies,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.session())

	api := r.Group("/api")
	{
		api.POST("/auth/register", s.handleRegister)
		api.POST("/auth/login", s.handleLogin)

		api.GET("/posts", s.handleListPosts)
		api.GET("/posts/:slug", s.handleGetPost)
		api.GET("/posts/:slug/comments", s.handleListComments)
		api.GET("/profiles/:username", s.handlePublicProfile)
		api.GET("/users/search", s.handleSearchUsers)
		api.GET("/settings", s.handleListSettings)
		api.GET("/partners", s.handleListPartners)

		authed := api.Group("")
		authed.Use(s.requireSession())
		{
			authed.POST("/auth/logout", s.handleLogout)
			authed.POST("/sync-profile", s.handleSyncProfile)
			authed.PUT("/profile", s.handleUpdateProfile)

			authed.POST("/posts", s.handleCreatePost)
			authed.PUT("/posts/:id", s.handleUpdatePost)
			authed.DELETE("/posts/:id", s.handleDeletePost)
			authed.GET("/me/posts", s.handleListMyPosts)

			authed.POST("/posts/:id/like", s.handleToggleLike)
			authed.POST("/posts/:id/comments", s.handleAddComment)
			authed.DELETE("/comments/:id", s.handleDeleteComment)

			authed.POST("/uploads/presign", s.handlePresignUpload)
		}

		admin := api.Group("/admin")
		admin.Use(s.requireSession())
		{
			admin.GET("/pending-posts", s.handleListPendingPosts)
			admin.GET("/pending-posts/count", s.handlePendingCount)
			admin.POST("/posts/:id/approve", s.handleApprovePost)

			admin.GET("/users", s.handleListUsers)
			admin.POST("/users/:id/ban", s.handleBanUser)
			admin.POST("/users/:id/role", s.handleSetRole)
			admin.POST("/users/:id/verify", s.handleVerifyUser)

			admin.POST("/partners", s.handleCreatePartner)
			admin.PUT("/partners/:id", s.handleUpdatePartner)
			admin.DELETE("/partners/:id", s.handleDeletePartner)

			admin.GET("/settings", s.handleListSettings)
			admin.POST("/settings", s.handleUpsertSetting)

			admin.POST("/upload", s.handleAdminUpload)
		}
	}

	return r
}
