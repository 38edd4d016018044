package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Egor213/LogKeeper/internal/domain"
	repomocks "github.com/Egor213/LogKeeper/internal/mocks/repository"
	"github.com/Egor213/LogKeeper/internal/repo/repoerrs"
	"github.com/Egor213/LogKeeper/internal/service"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	type args struct {
		name     string
		password string
	}

	type mockBehavior func(m *repomocks.MockUser, args args)

	testCases := []struct {
		name         string
		args         args
		mockBehavior mockBehavior
		wantErr      error
	}{
		{
			name: "OK",
			args: args{name: " alice ", password: "secret"},
			mockBehavior: func(m *repomocks.MockUser, args args) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *domain.User) error {
						assert.Equal(t, "alice", u.Name)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(args.password)))
						assert.False(t, u.CreatedAt.IsZero())
						return nil
					})
			},
		},
		{
			name:         "empty name",
			args:         args{name: "  ", password: "secret"},
			mockBehavior: func(m *repomocks.MockUser, args args) {},
			wantErr:      service.ErrEmptyUserName,
		},
		{
			name:         "name too long",
			args:         args{name: strings.Repeat("a", 65), password: "secret"},
			mockBehavior: func(m *repomocks.MockUser, args args) {},
			wantErr:      service.ErrUserNameTooLong,
		},
		{
			name:         "empty password",
			args:         args{name: "alice"},
			mockBehavior: func(m *repomocks.MockUser, args args) {},
			wantErr:      service.ErrEmptyPassword,
		},
		{
			name: "already exists",
			args: args{name: "alice", password: "secret"},
			mockBehavior: func(m *repomocks.MockUser, args args) {
				m.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(repoerrs.ErrAlreadyExists)
			},
			wantErr: service.ErrUserAlreadyExists,
		},
		{
			name: "storage error",
			args: args{name: "alice", password: "secret"},
			mockBehavior: func(m *repomocks.MockUser, args args) {
				m.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: service.ErrStorage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := repomocks.NewMockUser(ctrl)
			tc.mockBehavior(users, tc.args)

			s := service.NewAuthService(users, nil, 0)
			err := s.Register(context.Background(), tc.args.name, tc.args.password)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	stored := domain.User{Name: "alice", PasswordHash: hashOf(t, "secret")}

	type mockBehavior func(m *repomocks.MockUser)

	testCases := []struct {
		name         string
		user         string
		password     string
		mockBehavior mockBehavior
		wantErr      error
	}{
		{
			name:     "OK",
			user:     "alice",
			password: "secret",
			mockBehavior: func(m *repomocks.MockUser) {
				m.EXPECT().GetUserByName(gomock.Any(), "alice").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			user:     "alice",
			password: "nope",
			mockBehavior: func(m *repomocks.MockUser) {
				m.EXPECT().GetUserByName(gomock.Any(), "alice").Return(stored, nil)
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			user:     "ghost",
			password: "secret",
			mockBehavior: func(m *repomocks.MockUser) {
				m.EXPECT().GetUserByName(gomock.Any(), "ghost").Return(domain.User{}, repoerrs.ErrNotFound)
			},
			wantErr: service.ErrUnknownUser,
		},
		{
			name:     "storage error",
			user:     "alice",
			password: "secret",
			mockBehavior: func(m *repomocks.MockUser) {
				m.EXPECT().GetUserByName(gomock.Any(), "alice").Return(domain.User{}, errors.New("db error"))
			},
			wantErr: service.ErrStorage,
		},
		{
			name:         "empty name",
			mockBehavior: func(m *repomocks.MockUser) {},
			wantErr:      service.ErrEmptyUserName,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := repomocks.NewMockUser(ctrl)
			tc.mockBehavior(users)

			s := service.NewAuthService(users, nil, 0)
			got, err := s.Authenticate(context.Background(), tc.user, tc.password)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored, got)
		})
	}
}

func TestAuthService_AuthenticateUsesCache(t *testing.T) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, domain.User]{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
	})
	require.NoError(t, err)
	t.Cleanup(cache.Close)

	ctrl := gomock.NewController(t)
	users := repomocks.NewMockUser(ctrl)
	stored := domain.User{Name: "alice", PasswordHash: hashOf(t, "secret")}
	users.EXPECT().GetUserByName(gomock.Any(), "alice").Return(stored, nil).Times(1)

	s := service.NewAuthService(users, cache, time.Minute)

	_, err = s.Authenticate(context.Background(), "alice", "secret")
	require.NoError(t, err)
	cache.Wait()

	_, err = s.Authenticate(context.Background(), "alice", "secret")
	require.NoError(t, err)

	_, err = s.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
