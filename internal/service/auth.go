package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/Egor213/LogKeeper/internal/repo"
	"github.com/Egor213/LogKeeper/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"
	"github.com/dgraph-io/ristretto/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const maxUserNameLen = 64

type AuthService struct {
	userRepo repo.User
	cache    *ristretto.Cache[string, domain.User]
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService caches looked-up accounts in cache for ttl. A nil cache
// disables caching.
func NewAuthService(ur repo.User, cache *ristretto.Cache[string, domain.User], ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo: ur,
		cache:    cache,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, name, password string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	if password == "" {
		return ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	user := &domain.User{
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repoerrs.ErrAlreadyExists) {
			return ErrUserAlreadyExists
		}
		return storageErr(err)
	}

	log.WithField("user", name).Info("Account created")
	return nil
}

// Authenticate checks the password of name and returns the account.
func (s *AuthService) Authenticate(ctx context.Context, name, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return domain.User{}, err
	}

	user, err := s.lookup(ctx, name)
	if err != nil {
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) lookup(ctx context.Context, name string) (domain.User, error) {
	if s.cache != nil {
		if user, ok := s.cache.Get(name); ok {
			return user, nil
		}
	}

	user, err := s.userRepo.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return domain.User{}, ErrUnknownUser
		}
		return domain.User{}, storageErr(err)
	}

	if s.cache != nil {
		s.cache.SetWithTTL(name, user, 1, s.ttl)
	}
	return user, nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyUserName
	}
	if len(name) > maxUserNameLen {
		return ErrUserNameTooLong
	}
	return nil
}
