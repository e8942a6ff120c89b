package contract

import (
	"context"

	"notes-api/internal/entity"
	"notes-api/internal/repository/specification"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tag, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tag, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
