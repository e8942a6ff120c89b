package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"notes-api/internal/entity"
	"notes-api/internal/model"
	"notes-api/internal/repository/specification"
	"notes-api/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Error, parseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, parseLogLevel("info"))
	assert.Equal(t, logger.Warn, parseLogLevel("warn"))
	assert.Equal(t, logger.Warn, parseLogLevel("whatever"))
}

func TestDialectorFor(t *testing.T) {
	_, err := dialectorFor(GormConfig{Driver: DriverPostgres})
	assert.Error(t, err, "postgres needs a DSN")

	_, err = dialectorFor(GormConfig{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)

	d, err := dialectorFor(GormConfig{Driver: DriverSQLite, DSN: "file::memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
}

func TestSQLiteConnection(t *testing.T) {
	db, err := NewGormDB(GormConfig{
		Driver:   DriverSQLite,
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString()),
		LogLevel: "silent",
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	assert.NoError(t, model.AutoMigrate(db))
}

func TestGormConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")
	require.NoError(t, model.AutoMigrate(gormDB))

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)

	t.Run("Transactional note write rolls back", func(t *testing.T) {
		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))

		user := &entity.User{
			Name:         "Integration Test User",
			Email:        "test-integration-" + uuid.NewString() + "@example.com",
			PasswordHash: "not-a-real-hash",
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		tag := &entity.Tag{Name: "integration"}
		require.NoError(t, uow.TagRepository().Create(ctx, tag))

		text := "rolled back"
		note := &entity.Note{UserId: user.Id, TagId: tag.Id, Text: &text}
		require.NoError(t, uow.NoteRepository().Create(ctx, note))

		require.NoError(t, uow.Rollback())

		found, err := uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByEmail{Email: user.Email})
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
