package service

import (
	"context"
	"strings"

	"notes-api/internal/dto"
	"notes-api/internal/entity"
	"notes-api/internal/pkg/logger"
	"notes-api/internal/pkg/validation"
	"notes-api/internal/repository/specification"
	"notes-api/internal/repository/unitofwork"
	"notes-api/pkg/events"
)

type ITagService interface {
	GetAll(ctx context.Context) ([]*dto.TagResponse, error)
	// GetUsedByUser lists the tags referenced by at least one of the user's notes.
	GetUsedByUser(ctx context.Context, userId uint) ([]*dto.TagResponse, error)
	Create(ctx context.Context, req *dto.CreateTagRequest) (*dto.TagResponse, error)
}

type tagService struct {
	uowFactory       unitofwork.RepositoryFactory
	validator        *validation.Validator
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewTagService(
	uowFactory unitofwork.RepositoryFactory,
	validator *validation.Validator,
	publisherService IPublisherService,
	log logger.ILogger,
) ITagService {
	return &tagService{
		uowFactory:       uowFactory,
		validator:        validator,
		publisherService: publisherService,
		logger:           log,
	}
}

func toTagResponses(tags []*entity.Tag) []*dto.TagResponse {
	res := make([]*dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		res = append(res, toTagResponse(tag))
	}
	return res
}

func toTagResponse(tag *entity.Tag) *dto.TagResponse {
	return &dto.TagResponse{
		Id:        tag.Id,
		Name:      tag.Name,
		CreatedAt: dto.FormatTimestamp(tag.CreatedAt),
		UpdatedAt: dto.FormatTimestamp(tag.UpdatedAt),
	}
}

func (s *tagService) GetAll(ctx context.Context) ([]*dto.TagResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tags, err := uow.TagRepository().FindAll(ctx, specification.AlphabeticalByName{})
	if err != nil {
		return nil, err
	}

	return toTagResponses(tags), nil
}

func (s *tagService) GetUsedByUser(ctx context.Context, userId uint) ([]*dto.TagResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tags, err := uow.TagRepository().FindAll(ctx,
		specification.TagUsedByUser{UserID: userId},
		specification.AlphabeticalByName{},
	)
	if err != nil {
		return nil, err
	}

	return toTagResponses(tags), nil
}

func (s *tagService) Create(ctx context.Context, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Validate(req, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	tag := &entity.Tag{Name: req.Name}
	if err := uow.TagRepository().Create(ctx, tag); err != nil {
		return nil, err
	}

	publishActivity(ctx, s.publisherService, s.logger, events.New(events.TypeTagCreated, map[string]interface{}{
		"tag_id": tag.Id,
		"name":   tag.Name,
	}))

	return toTagResponse(tag), nil
}
