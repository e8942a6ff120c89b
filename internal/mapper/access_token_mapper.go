package mapper

import (
	"notes-api/internal/entity"
	"notes-api/internal/model"
)

type AccessTokenMapper struct{}

func NewAccessTokenMapper() *AccessTokenMapper {
	return &AccessTokenMapper{}
}

func (m *AccessTokenMapper) ToEntity(t *model.PersonalAccessToken) *entity.AccessToken {
	if t == nil {
		return nil
	}
	return &entity.AccessToken{
		Id:         t.Id,
		UserId:     t.UserId,
		Name:       t.Name,
		TokenHash:  t.Token,
		LastUsedAt: t.LastUsedAt,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func (m *AccessTokenMapper) ToModel(t *entity.AccessToken) *model.PersonalAccessToken {
	if t == nil {
		return nil
	}
	return &model.PersonalAccessToken{
		Id:         t.Id,
		UserId:     t.UserId,
		Name:       t.Name,
		Token:      t.TokenHash,
		LastUsedAt: t.LastUsedAt,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
