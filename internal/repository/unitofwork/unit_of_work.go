package unitofwork

import (
	"context"

	"notes-api/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	AccessTokenRepository() contract.AccessTokenRepository
	TagRepository() contract.TagRepository
	NoteRepository() contract.NoteRepository
}
