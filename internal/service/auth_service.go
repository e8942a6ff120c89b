package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"notes-api/internal/dto"
	"notes-api/internal/entity"
	"notes-api/internal/pkg/apperror"
	"notes-api/internal/pkg/logger"
	"notes-api/internal/pkg/validation"
	"notes-api/internal/repository/memory"
	"notes-api/internal/repository/specification"
	"notes-api/internal/repository/unitofwork"
	"notes-api/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	apiTokenName = "api"

	msgEmailTaken       = "The email has already been taken."
	msgPasswordMismatch = "The password field confirmation does not match."
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, session *dto.AuthSession) error
	// Resolve returns nil, nil when the token does not identify a live session.
	Resolve(ctx context.Context, plainToken string) (*dto.AuthSession, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	validator  *validation.Validator
	tokenCache *memory.TokenCache
	publisher  IPublisherService
	logger     logger.ILogger
	bcryptCost int
}

// NewAuthService builds the token service. tokenCache may be nil.
func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	validator *validation.Validator,
	tokenCache *memory.TokenCache,
	publisher IPublisherService,
	log logger.ILogger,
	bcryptCost int,
) IAuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		uowFactory: uowFactory,
		validator:  validator,
		tokenCache: tokenCache,
		publisher:  publisher,
		logger:     log,
		bcryptCost: bcryptCost,
	}
}

// generateTokenSecret returns 64 hex characters from two random UUIDs.
func generateTokenSecret() (string, error) {
	first, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	second, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(first.String()+second.String(), "-", ""), nil
}

func hashToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// parsePlainToken splits "<id>|<secret>". A bare secret yields id 0.
func parsePlainToken(plain string) (uint, string, bool) {
	idx := strings.IndexByte(plain, '|')
	if idx < 0 {
		return 0, plain, plain != ""
	}

	id, err := strconv.ParseUint(plain[:idx], 10, 64)
	secret := plain[idx+1:]
	if err != nil || id == 0 || secret == "" {
		return 0, "", false
	}
	return uint(id), secret, true
}

func toUserDTO(user *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:    user.Id,
		Name:  user.Name,
		Email: user.Email,
	}
}

// issueToken stores a new token row for the user and returns the plain value.
func (s *authService) issueToken(ctx context.Context, uow unitofwork.UnitOfWork, userId uint) (string, error) {
	secret, err := generateTokenSecret()
	if err != nil {
		return "", err
	}

	token := &entity.AccessToken{
		UserId:    userId,
		Name:      apiTokenName,
		TokenHash: hashToken(secret),
	}
	if err := uow.AccessTokenRepository().Create(ctx, token); err != nil {
		return "", err
	}

	return fmt.Sprintf("%d|%s", token.Id, secret), nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	fields := s.validator.Check(req, nil)
	if fields == nil {
		fields = apperror.FieldErrors{}
	}
	if _, bad := fields["password"]; !bad && req.Password != req.PasswordConfirmation {
		fields.Add("password", msgPasswordMismatch)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, bad := fields["email"]; !bad {
		taken, err := uow.UserRepository().Count(ctx, specification.ByEmail{Email: req.Email})
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			fields.Add("email", msgEmailTaken)
		}
	}
	if len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same address.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ValidationField("email", msgEmailTaken)
		}
		return nil, err
	}

	plain, err := s.issueToken(ctx, uow, user.Id)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	publishActivity(ctx, s.publisher, s.logger, events.New(events.TypeUserRegistered, map[string]interface{}{
		"user_id": user.Id,
		"email":   user.Email,
	}))

	return &dto.LoginResponse{
		Token: plain,
		User:  toUserDTO(user),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Validate(req, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.AuthFailure()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.AuthFailure()
	}

	plain, err := s.issueToken(ctx, uow, user.Id)
	if err != nil {
		return nil, err
	}

	publishActivity(ctx, s.publisher, s.logger, events.New(events.TypeUserLogin, map[string]interface{}{
		"user_id":    user.Id,
		"ip_address": ipAddress,
		"user_agent": userAgent,
	}))

	return &dto.LoginResponse{
		Token: plain,
		User:  toUserDTO(user),
	}, nil
}

func (s *authService) Resolve(ctx context.Context, plainToken string) (*dto.AuthSession, error) {
	id, secret, ok := parsePlainToken(plainToken)
	if !ok {
		return nil, nil
	}
	hash := hashToken(secret)

	if s.tokenCache != nil {
		if session, found := s.tokenCache.Get(hash); found && (id == 0 || session.TokenId == id) {
			return session, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.ByTokenHash{Hash: hash}}
	if id != 0 {
		specs = append(specs, specification.ByID{ID: id})
	}
	token, err := uow.AccessTokenRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, nil
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: token.UserId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if err := uow.AccessTokenRepository().TouchLastUsed(ctx, token.Id, time.Now()); err != nil {
		s.logger.Warn("AuthService", "Failed to record token usage", map[string]interface{}{
			"token_id": token.Id,
			"error":    err.Error(),
		})
	}

	session := &dto.AuthSession{
		TokenId:   token.Id,
		TokenHash: token.TokenHash,
		User:      toUserDTO(user),
	}
	if s.tokenCache != nil {
		s.tokenCache.Save(session)
	}

	return session, nil
}

// Logout revokes only the token of the current session.
func (s *authService) Logout(ctx context.Context, session *dto.AuthSession) error {
	if session == nil {
		return apperror.Unauthenticated()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := uow.AccessTokenRepository().Delete(ctx, session.TokenId); err != nil {
		return err
	}

	if s.tokenCache != nil {
		s.tokenCache.Delete(session.TokenHash)
	}

	publishActivity(ctx, s.publisher, s.logger, events.New(events.TypeUserLogout, map[string]interface{}{
		"user_id":  session.User.Id,
		"token_id": session.TokenId,
	}))

	return nil
}
