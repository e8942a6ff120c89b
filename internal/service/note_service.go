package service

import (
	"context"
	"time"

	"notes-api/internal/dto"
	"notes-api/internal/entity"
	"notes-api/internal/pkg/apperror"
	"notes-api/internal/pkg/logger"
	"notes-api/internal/pkg/validation"
	"notes-api/internal/repository/specification"
	"notes-api/internal/repository/unitofwork"
	"notes-api/pkg/events"
)

const (
	msgNoteNotFound     = "Note not found."
	msgNoteTagRequired  = "Un tag doit être associé à la note."
	msgNoteTagMissing   = "Le tag associé à la création de la note n'existe pas."
	msgNoteTextTooLong  = "Le texte de la note ne peut pas dépasser 65535 caractères."
	msgNoteTagIdInvalid = "The selected tag id is invalid."
	noteTagField        = "tag_id"
)

var noteMessages = validation.Messages{
	"tag_id.required": msgNoteTagRequired,
	"text.max":        msgNoteTextTooLong,
}

type INoteService interface {
	List(ctx context.Context, userId uint) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, userId uint, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uint, noteId uint, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uint, noteId uint) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	validator        *validation.Validator
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	validator *validation.Validator,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		validator:        validator,
		publisherService: publisherService,
		logger:           log,
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	res := &dto.NoteResponse{
		Id:        note.Id,
		UserId:    note.UserId,
		TagId:     note.TagId,
		Text:      note.Text,
		CreatedAt: dto.FormatTimestamp(note.CreatedAt),
		UpdatedAt: dto.FormatTimestamp(note.UpdatedAt),
	}
	if note.Tag != nil {
		res.Tag = &dto.NoteTagDTO{
			Id:   note.Tag.Id,
			Name: note.Tag.Name,
		}
	}
	return res
}

func (c *noteService) List(ctx context.Context, userId uint) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.NoteOwnedByUser{UserID: userId},
		specification.NewestUpdatedFirst{},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	if len(notes) == 0 {
		return res, nil
	}

	// One batched lookup for every distinct tag on the page.
	seen := make(map[uint]bool)
	tagIds := make([]uint, 0)
	for _, note := range notes {
		if !seen[note.TagId] {
			seen[note.TagId] = true
			tagIds = append(tagIds, note.TagId)
		}
	}

	tags, err := uow.TagRepository().FindAll(ctx, specification.ByIDs{IDs: tagIds})
	if err != nil {
		return nil, err
	}
	tagById := make(map[uint]*entity.Tag, len(tags))
	for _, tag := range tags {
		tagById[tag.Id] = tag
	}

	for _, note := range notes {
		note.Tag = tagById[note.TagId]
		res = append(res, toNoteResponse(note))
	}

	return res, nil
}

func (c *noteService) Create(ctx context.Context, userId uint, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := c.validator.Validate(req, noteMessages); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	tag, err := uow.TagRepository().FindOne(ctx, specification.ByID{ID: *req.TagId})
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperror.ValidationField(noteTagField, msgNoteTagMissing)
	}

	note := &entity.Note{
		UserId: userId,
		TagId:  tag.Id,
		Text:   req.Text,
	}
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	note.Tag = tag

	publishActivity(ctx, c.publisherService, c.logger, events.New(events.TypeNoteCreated, map[string]interface{}{
		"user_id": userId,
		"note_id": note.Id,
		"tag_id":  note.TagId,
	}))

	return toNoteResponse(note), nil
}

func (c *noteService) Update(ctx context.Context, userId uint, noteId uint, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if err := c.validator.Validate(req, noteMessages); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Input is checked before ownership, so a bad tag_id is a 422 even on a foreign note.
	var newTag *entity.Tag
	if req.TagId != nil {
		tag, err := uow.TagRepository().FindOne(ctx, specification.ByID{ID: *req.TagId})
		if err != nil {
			return nil, err
		}
		if tag == nil {
			return nil, apperror.ValidationField(noteTagField, msgNoteTagIdInvalid)
		}
		newTag = tag
	}

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound(msgNoteNotFound)
	}

	if req.Text.Present {
		note.Text = req.Text.Value
	}
	if newTag != nil {
		note.TagId = newTag.Id
	}
	note.UpdatedAt = time.Now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	if newTag == nil {
		newTag, err = uow.TagRepository().FindOne(ctx, specification.ByID{ID: note.TagId})
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	note.Tag = newTag

	publishActivity(ctx, c.publisherService, c.logger, events.New(events.TypeNoteUpdated, map[string]interface{}{
		"user_id": userId,
		"note_id": note.Id,
		"tag_id":  note.TagId,
	}))

	return toNoteResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, userId uint, noteId uint) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return apperror.NotFound(msgNoteNotFound)
	}

	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	publishActivity(ctx, c.publisherService, c.logger, events.New(events.TypeNoteDeleted, map[string]interface{}{
		"user_id": userId,
		"note_id": note.Id,
	}))

	return nil
}
