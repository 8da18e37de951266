package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staffhub/internal/core"
	"staffhub/internal/database/mongodb/model"
	"staffhub/internal/database/mongodb/repository"
	"staffhub/internal/telemetry"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrIdentityExists   = errors.New("the email address is already in use by another account")
	ErrIdentityNotFound = errors.New("there is no user record corresponding to the provided identifier")
)

type CreateIdentityParams struct {
	Email         string
	Password      string
	EmailVerified bool
	Disabled      bool
	Origin        core.IdentityOrigin
	ShopID        string
}

// UpdateIdentityParams 只套用非 nil 欄位
type UpdateIdentityParams struct {
	Disabled *bool
	Password *string
}

// Directory 帳號目錄服務
type Directory interface {
	CreateUser(ctx context.Context, params CreateIdentityParams) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*model.Identity, error)
	UpdateUser(ctx context.Context, uid string, params UpdateIdentityParams) error
	DeleteUser(ctx context.Context, uid string) error
	ListByOrigin(ctx context.Context, origin core.IdentityOrigin, createdBefore time.Time, after *repository.IdentityCursor, limit int64) ([]*model.Identity, error)
}

type DirectoryService struct {
	trace      *telemetry.Trace
	store      IdentityStore
	bcryptCost int
	newUID     func() (string, error)
}

func NewDirectoryService(trace *telemetry.Trace, store IdentityStore) *DirectoryService {
	return &DirectoryService{
		trace:      trace,
		store:      store,
		bcryptCost: bcrypt.DefaultCost,
		newUID:     newUUIDv7,
	}
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// CreateUser email 重複時回傳 ErrIdentityExists
func (s *DirectoryService) CreateUser(ctx context.Context, params CreateIdentityParams) (uid string, err error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(err) }()

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	uid, err = s.newUID()
	if err != nil {
		return "", fmt.Errorf("allocate uid: %w", err)
	}

	identity := &model.Identity{
		UID:           uid,
		Email:         params.Email,
		PasswordHash:  string(hash),
		EmailVerified: params.EmailVerified,
		Disabled:      params.Disabled,
		Origin:        string(params.Origin),
		ShopID:        params.ShopID,
	}
	if err = s.store.Insert(ctx, identity); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrIdentityExists
		}
		return "", err
	}
	return uid, nil
}

func (s *DirectoryService) GetUserByEmail(ctx context.Context, email string) (identity *model.Identity, err error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(ignoreNotFound(err)) }()

	identity, err = s.store.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrIdentityNotFound
	}
	return identity, err
}

func (s *DirectoryService) UpdateUser(ctx context.Context, uid string, params UpdateIdentityParams) (err error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(err) }()

	fields := repository.IdentityUpdate{Disabled: params.Disabled}
	if params.Password != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(*params.Password), s.bcryptCost)
		if hashErr != nil {
			return fmt.Errorf("hash credential: %w", hashErr)
		}
		h := string(hash)
		fields.PasswordHash = &h
	}

	err = s.store.Update(ctx, uid, fields)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrIdentityNotFound
	}
	return err
}

func (s *DirectoryService) DeleteUser(ctx context.Context, uid string) (err error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(ignoreNotFound(err)) }()

	err = s.store.Delete(ctx, uid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrIdentityNotFound
	}
	return err
}

// ListByOrigin 以 (createdAt, uid) 遞增分頁；after 為上一頁最後一筆
func (s *DirectoryService) ListByOrigin(
	ctx context.Context,
	origin core.IdentityOrigin,
	createdBefore time.Time,
	after *repository.IdentityCursor,
	limit int64,
) (identities []*model.Identity, err error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(err) }()

	return s.store.ListByOriginBefore(ctx, string(origin), createdBefore, after, limit)
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrIdentityNotFound) {
		return nil
	}
	return err
}
