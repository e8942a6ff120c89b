package implementation

import (
	"context"
	"errors"
	"time"

	"notes-api/internal/entity"
	"notes-api/internal/mapper"
	"notes-api/internal/model"
	"notes-api/internal/repository/contract"
	"notes-api/internal/repository/specification"

	"gorm.io/gorm"
)

type AccessTokenRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AccessTokenMapper
}

func NewAccessTokenRepository(db *gorm.DB) contract.AccessTokenRepository {
	return &AccessTokenRepositoryImpl{
		db:     db,
		mapper: mapper.NewAccessTokenMapper(),
	}
}

func (r *AccessTokenRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AccessTokenRepositoryImpl) Create(ctx context.Context, token *entity.AccessToken) error {
	m := r.mapper.ToModel(token)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*token = *r.mapper.ToEntity(m)
	return nil
}

func (r *AccessTokenRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AccessToken, error) {
	var m model.PersonalAccessToken
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AccessTokenRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PersonalAccessToken{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AccessTokenRepositoryImpl) TouchLastUsed(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.PersonalAccessToken{}).
		Where("id = ?", id).
		UpdateColumn("last_used_at", at).Error
}

func (r *AccessTokenRepositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.PersonalAccessToken{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
