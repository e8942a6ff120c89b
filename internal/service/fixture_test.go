package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"notes-api/internal/dto"
	"notes-api/internal/model"
	"notes-api/internal/pkg/logger"
	"notes-api/internal/pkg/validation"
	"notes-api/internal/repository/memory"
	"notes-api/internal/repository/unitofwork"
	"notes-api/pkg/database"
	"notes-api/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.payloads))
	for _, raw := range p.payloads {
		var evt events.BaseEvent
		if err := json.Unmarshal(raw, &evt); err == nil {
			out = append(out, evt.Type)
		}
	}
	return out
}

type failingPublisher struct{}

func (failingPublisher) Publish(ctx context.Context, payload []byte) error {
	return fmt.Errorf("bus down")
}

type fixture struct {
	db         *gorm.DB
	uowFactory unitofwork.RepositoryFactory
	publisher  *recordingPublisher
	cache      *memory.TokenCache
	auth       IAuthService
	notes      INoteService
	tags       ITagService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := database.NewGormDB(database.GormConfig{
		Driver:   database.DriverSQLite,
		DSN:      dsn,
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T, cacheTTL time.Duration) *fixture {
	t.Helper()

	db := newTestDB(t)
	f := &fixture{
		db:         db,
		uowFactory: unitofwork.NewRepositoryFactory(db),
		publisher:  &recordingPublisher{},
	}
	if cacheTTL > 0 {
		f.cache = memory.NewTokenCache(cacheTTL)
	}

	v := validation.New()
	log := logger.NewNopLogger()
	f.auth = NewAuthService(f.uowFactory, v, f.cache, f.publisher, log, bcrypt.MinCost)
	f.notes = NewNoteService(f.uowFactory, v, f.publisher, log)
	f.tags = NewTagService(f.uowFactory, v, f.publisher, log)
	return f
}

func (f *fixture) register(t *testing.T, name, email string) *dto.LoginResponse {
	t.Helper()
	res, err := f.auth.Register(context.Background(), &dto.RegisterRequest{
		Name:                 name,
		Email:                email,
		Password:             "password",
		PasswordConfirmation: "password",
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) tag(t *testing.T, name string) *dto.TagResponse {
	t.Helper()
	res, err := f.tags.Create(context.Background(), &dto.CreateTagRequest{Name: name})
	require.NoError(t, err)
	return res
}

func (f *fixture) note(t *testing.T, userId, tagId uint, text string) *dto.NoteResponse {
	t.Helper()
	res, err := f.notes.Create(context.Background(), userId, &dto.CreateNoteRequest{Text: &text, TagId: &tagId})
	require.NoError(t, err)
	return res
}

func (f *fixture) countNotes(t *testing.T) int64 {
	t.Helper()
	count, err := f.uowFactory.NewUnitOfWork(context.Background()).NoteRepository().Count(context.Background())
	require.NoError(t, err)
	return count
}

func ptr[T any](v T) *T { return &v }
