// Package repomanager vends repository implementations bound to a DBTX
// handle, so services can run the same repository code against *sql.DB or
// inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Bangbenzzz/blogerz-sub000/internal/dbx"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/comments"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/likes"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/partners"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/posts"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/profiles"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/settings"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Profiles(db dbx.DBTX) profiles.Repository
	Posts(db dbx.DBTX) posts.Repository
	Comments(db dbx.DBTX) comments.Repository
	Likes(db dbx.DBTX) likes.Repository
	Partners(db dbx.DBTX) partners.Repository
	Settings(db dbx.DBTX) settings.Repository
}
