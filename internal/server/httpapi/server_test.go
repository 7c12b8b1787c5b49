package httpapi

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/logging"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/auth"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/authz"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

// Route ids must be well-formed UUIDs to get past the path validation.
const (
	aliceID    = "11111111-1111-1111-1111-111111111111"
	bobID      = "22222222-2222-2222-2222-222222222222"
	adminID    = "33333333-3333-3333-3333-333333333333"
	postID1    = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	commentID1 = "cccccccc-cccc-cccc-cccc-cccccccccccc"
)

// --- fake services ---

type fakeIdentity struct {
	profiles map[string]*models.Profile

	registerErr error
	loginErr    error
	updateErr   error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{profiles: map[string]*models.Profile{}}
}

func (f *fakeIdentity) Register(ctx context.Context, email, password, name string) (*models.Profile, string, error) {
	if f.registerErr != nil {
		return nil, "", f.registerErr
	}
	p := &models.Profile{ID: "new-user", Email: email, Name: name, Role: models.RoleUser}
	f.profiles[p.ID] = p
	token, err := auth.GenerateToken(p.ID, p.Email, []byte(testSecret), time.Hour)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

func (f *fakeIdentity) Login(ctx context.Context, email, password string) (*models.Profile, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	for _, p := range f.profiles {
		if p.Email == email {
			token, err := auth.GenerateToken(p.ID, p.Email, []byte(testSecret), time.Hour)
			return p, token, err
		}
	}
	return nil, "", common.ErrorUnauthorized
}

func (f *fakeIdentity) EnsureProfile(ctx context.Context, id, email, name string) (*models.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	p := &models.Profile{ID: id, Email: email, Name: name, Role: models.RoleUser}
	f.profiles[id] = p
	return p, nil
}

func (f *fakeIdentity) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeIdentity) UpdateOwnProfile(ctx context.Context, caller *models.Profile, name string, username *string, bio, avatarURL string) (*models.Profile, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	caller.Name = name
	if username != nil {
		caller.Username = username
	}
	caller.Bio = bio
	caller.AvatarURL = avatarURL
	return caller, nil
}

func (f *fakeIdentity) PublicProfile(ctx context.Context, username string) (*models.Profile, *models.ProfileStats, error) {
	for _, p := range f.profiles {
		if p.Username != nil && *p.Username == username {
			return p, &models.ProfileStats{PostCount: 2}, nil
		}
	}
	return nil, nil, common.ErrorNotFound
}

type fakeModeration struct {
	posts map[string]*models.Post

	createErr  error
	getErr     error
	deleteErr  error
	approveErr error
}

func newFakeModeration() *fakeModeration {
	return &fakeModeration{posts: map[string]*models.Post{}}
}

func (f *fakeModeration) Create(ctx context.Context, caller *models.Profile, title string, content *string, imageURL string) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := &models.Post{ID: postID1, Title: title, Content: content, Slug: "slug-1", ImageURL: imageURL, AuthorID: caller.ID}
	f.posts[p.ID] = p
	return p, nil
}

func (f *fakeModeration) Get(ctx context.Context, caller *models.Profile, slug string) (*models.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, p := range f.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeModeration) Update(ctx context.Context, caller *models.Profile, postID, title string, content *string, imageURL string) (*models.Post, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if p.AuthorID != caller.ID {
		return nil, common.ErrorForbidden
	}
	p.Title = title
	p.Published = false
	return p, nil
}

func (f *fakeModeration) Approve(ctx context.Context, caller *models.Profile, postID string) (bool, error) {
	if f.approveErr != nil {
		return false, f.approveErr
	}
	p, ok := f.posts[postID]
	if !ok {
		return false, common.ErrorNotFound
	}
	if p.Published {
		return false, nil
	}
	p.Published = true
	return true, nil
}

func (f *fakeModeration) Delete(ctx context.Context, caller *models.Profile, postID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.posts[postID]; !ok {
		return common.ErrorNotFound
	}
	delete(f.posts, postID)
	return nil
}

func (f *fakeModeration) ListPublished(ctx context.Context, caller *models.Profile) ([]*models.Post, error) {
	out := []*models.Post{}
	for _, p := range f.posts {
		if p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeModeration) ListMine(ctx context.Context, caller *models.Profile) ([]*models.Post, error) {
	out := []*models.Post{}
	for _, p := range f.posts {
		if p.AuthorID == caller.ID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeModeration) ListPending(ctx context.Context, caller *models.Profile) ([]*models.Post, error) {
	if caller.Role != models.RoleAdmin {
		return nil, common.ErrorForbidden
	}
	out := []*models.Post{}
	for _, p := range f.posts {
		if !p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeModeration) PendingCount(ctx context.Context, caller *models.Profile) (int64, error) {
	list, err := f.ListPending(ctx, caller)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

type fakeInteraction struct {
	liked     bool
	likeCount int64
	comments  map[string]*models.Comment

	toggleErr error
	deleteErr error
}

func newFakeInteraction() *fakeInteraction {
	return &fakeInteraction{comments: map[string]*models.Comment{}}
}

func (f *fakeInteraction) ToggleLike(ctx context.Context, caller *models.Profile, postID string) (bool, int64, error) {
	if f.toggleErr != nil {
		return false, 0, f.toggleErr
	}
	f.liked = !f.liked
	if f.liked {
		f.likeCount++
	} else {
		f.likeCount--
	}
	return f.liked, f.likeCount, nil
}

func (f *fakeInteraction) AddComment(ctx context.Context, caller *models.Profile, postID, content string) (*models.Comment, error) {
	c := &models.Comment{ID: commentID1, PostID: postID, AuthorID: caller.ID, Content: content, AuthorName: caller.Name}
	f.comments[c.ID] = c
	return c, nil
}

func (f *fakeInteraction) ListComments(ctx context.Context, caller *models.Profile, postID string) ([]*models.Comment, error) {
	out := []*models.Comment{}
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeInteraction) DeleteComment(ctx context.Context, caller *models.Profile, commentID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.comments[commentID]; !ok {
		return common.ErrorNotFound
	}
	delete(f.comments, commentID)
	return nil
}

type fakeDirectory struct {
	results []*models.Profile
	err     error
}

func (f *fakeDirectory) Search(ctx context.Context, query string) ([]*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeAccounts struct {
	err    error
	users  []*models.Profile
	lastOp string
}

func (f *fakeAccounts) SetBanned(ctx context.Context, caller *models.Profile, targetID string, banned bool) error {
	f.lastOp = "ban"
	return f.err
}

func (f *fakeAccounts) SetRole(ctx context.Context, caller *models.Profile, targetID, role string) error {
	f.lastOp = "role"
	return f.err
}

func (f *fakeAccounts) SetVerified(ctx context.Context, caller *models.Profile, targetID string, verified bool) error {
	f.lastOp = "verify"
	return f.err
}

func (f *fakeAccounts) ListUsers(ctx context.Context, caller *models.Profile) ([]*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

type fakePartners struct {
	list []*models.Partner
	err  error
}

func (f *fakePartners) Create(ctx context.Context, caller *models.Profile, name, logoURL string, sortOrder int) (*models.Partner, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := &models.Partner{ID: "partner-1", Name: name, LogoURL: logoURL, SortOrder: sortOrder}
	f.list = append(f.list, p)
	return p, nil
}

func (f *fakePartners) List(ctx context.Context) ([]*models.Partner, error) {
	return f.list, f.err
}

func (f *fakePartners) Update(ctx context.Context, caller *models.Profile, id, name, logoURL string, sortOrder int) error {
	return f.err
}

func (f *fakePartners) Delete(ctx context.Context, caller *models.Profile, id string) error {
	return f.err
}

type fakeSettings struct {
	values map[string]string
	err    error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: map[string]string{}}
}

func (f *fakeSettings) Upsert(ctx context.Context, caller *models.Profile, key, value string) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

func (f *fakeSettings) Get(ctx context.Context, key string) (*models.Setting, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Setting{Key: key, Value: v}, nil
}

func (f *fakeSettings) GetAll(ctx context.Context) ([]*models.Setting, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Setting{}
	for k, v := range f.values {
		out = append(out, &models.Setting{Key: k, Value: v})
	}
	return out, nil
}

type fakeStorage struct {
	uploadURL string
	err       error
}

func (f *fakeStorage) Upload(ctx context.Context, contentType string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.ReadAll(body)
	return f.uploadURL, nil
}

func (f *fakeStorage) PresignPut(ctx context.Context) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	return "media/k", "http://storage/signed", "http://storage/media/k", nil
}

// --- harness ---

type testEnv struct {
	server      *Server
	router      *gin.Engine
	identity    *fakeIdentity
	moderation  *fakeModeration
	interaction *fakeInteraction
	directory   *fakeDirectory
	accounts    *fakeAccounts
	partners    *fakePartners
	settings    *fakeSettings
	storage     *fakeStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		identity:    newFakeIdentity(),
		moderation:  newFakeModeration(),
		interaction: newFakeInteraction(),
		directory:   &fakeDirectory{},
		accounts:    &fakeAccounts{},
		partners:    &fakePartners{},
		settings:    newFakeSettings(),
		storage:     &fakeStorage{uploadURL: "http://storage/media/x"},
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	env.server = NewServer(ServerOptions{
		Logger:       logger,
		Gate:         authz.NewGate("root@example.com"),
		Identity:     env.identity,
		Moderation:   env.moderation,
		Interaction:  env.interaction,
		Directory:    env.directory,
		Accounts:     env.accounts,
		Partners:     env.partners,
		Settings:     env.settings,
		Storage:      env.storage,
		JWTSecret:    []byte(testSecret),
		CookieMaxAge: time.Hour,
	})
	env.router = env.server.Router()

	return env
}

// addUser registers a profile with the fake identity service and returns a
// bearer token for it.
func (e *testEnv) addUser(t *testing.T, p *models.Profile) string {
	t.Helper()
	e.identity.profiles[p.ID] = p
	token, err := auth.GenerateToken(p.ID, p.Email, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return token
}
