// service/auth/auth_service_test.go
package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"camrental/model"
	userrepo "camrental/repository/user"
	"camrental/util/hash"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	byIDFn    func(ctx context.Context, id int64) (*model.User, error)
	createFn  func(ctx context.Context, u *model.User) error
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {

			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	req := model.RegisterReq{
		Username: "ansel",
		Email:    "USER@Example.COM",
		Password: "supersecret",
	}

	u, tok, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@example.com", u.Email)
	require.Equal(t, "ansel", u.Username)
	require.Equal(t, model.RoleUser, u.Role)
	require.NotEmpty(t, u.PasswordHash)
}

func TestRegister_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Email:    " ",
		Username: "u",
		Password: "123",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestRegister_EmailTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_email_key",
			}
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Email:    "taken@example.com",
		Username: "ansel",
		Password: "123456",
	})
	require.Error(t, err)
	require.Equal(t, ErrEmailTaken, Code(err))
}

func TestRegister_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "users_username_key",
			}
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Email:    "new@example.com",
		Username: "taken",
		Password: "123456",
	})
	require.Error(t, err)
	require.Equal(t, ErrUsernameTaken, Code(err))
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Email:    "ok@example.com",
		Username: "ok",
		Password: "123456",
	})
	require.Error(t, err)

	require.Equal(t, ErrCode(""), Code(err))
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           7,
				Email:        "user@example.com",
				Username:     "ansel",
				PasswordHash: hashed,
				Role:         model.RoleUser,
			}, nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Login(ctx, model.LoginReq{
		Email:    "User@Example.com",
		Password: pw,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
}

func TestLogin_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    " ",
		Password: "",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestLogin_UserNotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    "missing@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()

	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           101,
				Email:        "user@example.com",
				Username:     "ansel",
				PasswordHash: hashed,
				Role:         model.RoleUser,
			}, nil
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrEmailTaken, Code(makeErr(ErrEmailTaken)))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
