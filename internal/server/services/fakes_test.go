package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/dbx"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/authz"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
	commentsrepo "github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/comments"
	likesrepo "github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/likes"
	partnersrepo "github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/partners"
	postsrepo "github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/posts"
	profilesrepo "github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/profiles"
	settingsrepo "github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/settings"
	"github.com/DATA-DOG/go-sqlmock"
)

// --- in-memory fakes ---

type fakeProfilesRepo struct {
	byID    map[string]*models.Profile
	creds   map[string]*profilesrepo.Credentials // keyed by email
	stats   map[string]*models.ProfileStats
	listErr error
}

func newFakeProfilesRepo() *fakeProfilesRepo {
	return &fakeProfilesRepo{
		byID:  map[string]*models.Profile{},
		creds: map[string]*profilesrepo.Credentials{},
		stats: map[string]*models.ProfileStats{},
	}
}

func (f *fakeProfilesRepo) add(p *models.Profile) { f.byID[p.ID] = p }

func (f *fakeProfilesRepo) Create(ctx context.Context, p *models.Profile, hash string) (*models.Profile, error) {
	for _, existing := range f.byID {
		if existing.Email == p.Email {
			return nil, common.ErrorConflict
		}
	}
	f.byID[p.ID] = p
	f.creds[p.Email] = &profilesrepo.Credentials{ID: p.ID, PasswordHash: hash}
	return p, nil
}

func (f *fakeProfilesRepo) Upsert(ctx context.Context, id, email, name string) (*models.Profile, error) {
	if p, ok := f.byID[id]; ok {
		p.Email = email
		return p, nil
	}
	p := &models.Profile{ID: id, Email: email, Name: name, Role: models.RoleUser}
	f.byID[id] = p
	return p, nil
}

func (f *fakeProfilesRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProfilesRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeProfilesRepo) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	for _, p := range f.byID {
		if p.Username != nil && *p.Username == username {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeProfilesRepo) GetCredentials(ctx context.Context, email string) (*profilesrepo.Credentials, error) {
	c, ok := f.creds[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f *fakeProfilesRepo) UpdateProfile(ctx context.Context, id, name string, username *string, bio, avatarURL string) error {
	p, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	if username != nil {
		for _, other := range f.byID {
			if other.ID != id && other.Username != nil && *other.Username == *username {
				return common.ErrorConflict
			}
		}
		p.Username = username
	}
	p.Name = name
	p.Bio = bio
	p.AvatarURL = avatarURL
	return nil
}

func (f *fakeProfilesRepo) SetBanned(ctx context.Context, id string, banned bool) error {
	p, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.IsBanned = banned
	return nil
}

func (f *fakeProfilesRepo) SetRole(ctx context.Context, id, role string) error {
	p, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Role = role
	return nil
}

func (f *fakeProfilesRepo) SetVerified(ctx context.Context, id string, verified bool) error {
	p, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.IsVerified = verified
	return nil
}

func (f *fakeProfilesRepo) Search(ctx context.Context, query string, limit int) ([]*models.Profile, error) {
	result := []*models.Profile{}
	for _, p := range f.byID {
		result = append(result, p)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeProfilesRepo) List(ctx context.Context) ([]*models.Profile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := []*models.Profile{}
	for _, p := range f.byID {
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeProfilesRepo) Stats(ctx context.Context, id string) (*models.ProfileStats, error) {
	if s, ok := f.stats[id]; ok {
		return s, nil
	}
	return &models.ProfileStats{}, nil
}

type fakePostsRepo struct {
	posts map[string]*models.Post
}

func newFakePostsRepo() *fakePostsRepo {
	return &fakePostsRepo{posts: map[string]*models.Post{}}
}

func (f *fakePostsRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	for _, existing := range f.posts {
		if existing.Slug == p.Slug {
			return nil, common.ErrorConflict
		}
	}
	cp := *p
	f.posts[p.ID] = &cp
	return &cp, nil
}

func (f *fakePostsRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostsRepo) GetBySlug(ctx context.Context, slug, viewerID string) (*models.Post, error) {
	for _, p := range f.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePostsRepo) Update(ctx context.Context, id, authorID, title string, content *string, imageURL string) (int64, error) {
	p, ok := f.posts[id]
	if !ok || p.AuthorID != authorID {
		return 0, nil
	}
	p.Title = title
	p.Content = content
	p.ImageURL = imageURL
	p.Published = false
	return 1, nil
}

func (f *fakePostsRepo) Approve(ctx context.Context, id string) (bool, error) {
	p, ok := f.posts[id]
	if !ok || p.Published {
		return false, nil
	}
	p.Published = true
	return true, nil
}

func (f *fakePostsRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := f.posts[id]; !ok {
		return 0, nil
	}
	delete(f.posts, id)
	return 1, nil
}

func (f *fakePostsRepo) ListPublished(ctx context.Context, viewerID string) ([]*models.Post, error) {
	return f.filter(func(p *models.Post) bool { return p.Published }), nil
}

func (f *fakePostsRepo) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	return f.filter(func(p *models.Post) bool { return p.AuthorID == authorID }), nil
}

func (f *fakePostsRepo) ListPending(ctx context.Context) ([]*models.Post, error) {
	return f.filter(func(p *models.Post) bool { return !p.Published }), nil
}

func (f *fakePostsRepo) PendingCount(ctx context.Context) (int64, error) {
	return int64(len(f.filter(func(p *models.Post) bool { return !p.Published }))), nil
}

func (f *fakePostsRepo) filter(keep func(*models.Post) bool) []*models.Post {
	result := []*models.Post{}
	for _, p := range f.posts {
		if keep(p) {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

type fakeLikesRepo struct {
	rows map[string]string // (postID|authorID) -> like id
}

func newFakeLikesRepo() *fakeLikesRepo {
	return &fakeLikesRepo{rows: map[string]string{}}
}

func likeKey(postID, authorID string) string { return postID + "|" + authorID }

func (f *fakeLikesRepo) InsertIfAbsent(ctx context.Context, l *models.Like) (bool, error) {
	k := likeKey(l.PostID, l.AuthorID)
	if _, ok := f.rows[k]; ok {
		return false, nil
	}
	f.rows[k] = l.ID
	return true, nil
}

func (f *fakeLikesRepo) Delete(ctx context.Context, postID, authorID string) (int64, error) {
	k := likeKey(postID, authorID)
	if _, ok := f.rows[k]; !ok {
		return 0, nil
	}
	delete(f.rows, k)
	return 1, nil
}

func (f *fakeLikesRepo) CountByPost(ctx context.Context, postID string) (int64, error) {
	var n int64
	for k := range f.rows {
		if strings.HasPrefix(k, postID+"|") {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikesRepo) Exists(ctx context.Context, postID, authorID string) (bool, error) {
	_, ok := f.rows[likeKey(postID, authorID)]
	return ok, nil
}

func (f *fakeLikesRepo) DeleteByPost(ctx context.Context, postID string) error {
	for k := range f.rows {
		if strings.HasPrefix(k, postID+"|") {
			delete(f.rows, k)
		}
	}
	return nil
}

type fakeCommentsRepo struct {
	rows map[string]*models.Comment
}

func newFakeCommentsRepo() *fakeCommentsRepo {
	return &fakeCommentsRepo{rows: map[string]*models.Comment{}}
}

func (f *fakeCommentsRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	cp := *c
	f.rows[c.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeCommentsRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentsRepo) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	result := []*models.Comment{}
	for _, c := range f.rows {
		if c.PostID == postID {
			cp := *c
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeCommentsRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := f.rows[id]; !ok {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

func (f *fakeCommentsRepo) DeleteOwned(ctx context.Context, id, authorID string) (int64, error) {
	c, ok := f.rows[id]
	if !ok || c.AuthorID != authorID {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

func (f *fakeCommentsRepo) DeleteByPost(ctx context.Context, postID string) error {
	for id, c := range f.rows {
		if c.PostID == postID {
			delete(f.rows, id)
		}
	}
	return nil
}

type fakePartnersRepo struct {
	rows map[string]*models.Partner
}

func newFakePartnersRepo() *fakePartnersRepo {
	return &fakePartnersRepo{rows: map[string]*models.Partner{}}
}

func (f *fakePartnersRepo) Create(ctx context.Context, p *models.Partner) (*models.Partner, error) {
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakePartnersRepo) List(ctx context.Context) ([]*models.Partner, error) {
	result := []*models.Partner{}
	for _, p := range f.rows {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (f *fakePartnersRepo) Update(ctx context.Context, p *models.Partner) error {
	if _, ok := f.rows[p.ID]; !ok {
		return common.ErrorNotFound
	}
	f.rows[p.ID] = p
	return nil
}

func (f *fakePartnersRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeSettingsRepo struct {
	rows map[string]string
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{rows: map[string]string{}}
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, key, value string) error {
	f.rows[key] = value
	return nil
}

func (f *fakeSettingsRepo) Get(ctx context.Context, key string) (*models.Setting, error) {
	v, ok := f.rows[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Setting{Key: key, Value: v}, nil
}

func (f *fakeSettingsRepo) GetAll(ctx context.Context) ([]*models.Setting, error) {
	result := []*models.Setting{}
	for k, v := range f.rows {
		result = append(result, &models.Setting{Key: k, Value: v})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

// fakeRepoManager hands out the same fakes regardless of the DBTX handle,
// which also covers the transactional paths.
type fakeRepoManager struct {
	profiles *fakeProfilesRepo
	posts    *fakePostsRepo
	comments *fakeCommentsRepo
	likes    *fakeLikesRepo
	partners *fakePartnersRepo
	settings *fakeSettingsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		profiles: newFakeProfilesRepo(),
		posts:    newFakePostsRepo(),
		comments: newFakeCommentsRepo(),
		likes:    newFakeLikesRepo(),
		partners: newFakePartnersRepo(),
		settings: newFakeSettingsRepo(),
	}
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Profiles(dbx.DBTX) profilesrepo.Repository { return f.profiles }
func (f *fakeRepoManager) Posts(dbx.DBTX) postsrepo.Repository       { return f.posts }
func (f *fakeRepoManager) Comments(dbx.DBTX) commentsrepo.Repository { return f.comments }
func (f *fakeRepoManager) Likes(dbx.DBTX) likesrepo.Repository       { return f.likes }
func (f *fakeRepoManager) Partners(dbx.DBTX) partnersrepo.Repository { return f.partners }
func (f *fakeRepoManager) Settings(dbx.DBTX) settingsrepo.Repository { return f.settings }

// --- shared helpers ---

const testAdminEmail = "root@example.com"

func newTestGate() *authz.Gate { return authz.NewGate(testAdminEmail) }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testUser(id string) *models.Profile {
	return &models.Profile{ID: id, Email: id + "@example.com", Name: "User " + id, Role: models.RoleUser}
}

func testAdmin() *models.Profile {
	return &models.Profile{ID: "admin-1", Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin}
}
