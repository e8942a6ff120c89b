package contract

import (
	"context"
	"time"

	"notes-api/internal/entity"
	"notes-api/internal/repository/specification"
)

type AccessTokenRepository interface {
	Create(ctx context.Context, token *entity.AccessToken) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AccessToken, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	TouchLastUsed(ctx context.Context, id uint, at time.Time) error
	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, id uint) (bool, error)
}
