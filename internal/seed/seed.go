// Package seed creates the fixed account end-to-end clients log in with.
package seed

import (
	"context"
	"time"

	"notes-api/internal/entity"
	"notes-api/internal/repository/specification"
	"notes-api/internal/repository/unitofwork"

	"golang.org/x/crypto/bcrypt"
)

const (
	TestUserName     = "Test User"
	TestUserEmail    = "test@example.com"
	TestUserPassword = "password"
)

// UpsertUser creates the user or resets its name, password and verification
// date when the email already exists. It reports whether a row was created.
func UpsertUser(ctx context.Context, uowFactory unitofwork.RepositoryFactory, name, email, password string, bcryptCost int) (*entity.User, bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, false, err
	}
	now := time.Now()

	uow := uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, false, err
	}

	created := user == nil
	if created {
		user = &entity.User{Email: email}
	}
	user.Name = name
	user.PasswordHash = string(hash)
	user.EmailVerifiedAt = &now

	if created {
		err = uow.UserRepository().Create(ctx, user)
	} else {
		err = uow.UserRepository().Update(ctx, user)
	}
	if err != nil {
		return nil, false, err
	}

	if err := uow.Commit(); err != nil {
		return nil, false, err
	}
	return user, created, nil
}

func TestUser(ctx context.Context, uowFactory unitofwork.RepositoryFactory, bcryptCost int) (*entity.User, bool, error) {
	return UpsertUser(ctx, uowFactory, TestUserName, TestUserEmail, TestUserPassword, bcryptCost)
}
