package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

type stubUserRepo struct {
	user *domain.User
}

func (s stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (s stubUserRepo) Update(context.Context, *domain.User) error { return nil }

func (s stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		user := *s.user
		return &user, nil
	}
	return nil, pgx.ErrNoRows
}

func (s stubUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (s stubUserRepo) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (s stubUserRepo) GetByUsernameOrEmail(context.Context, string, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func newAuthApp(tm *TokenManager, repo stubUserRepo) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := errorutil.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		},
	})
	middleware := NewAuthMiddleware(tm, repo)
	app.Get("/me", middleware.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"id": principal.User.ID})
	})
	return app
}

func doAuthRequest(t *testing.T, app *fiber.App, header string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	tm := newTestManager()
	user := &domain.User{ID: "user-1", Username: "jdoe"}
	app := newAuthApp(tm, stubUserRepo{user: user})

	pair, err := tm.GeneratePair(user.ID)
	require.NoError(t, err)

	resp := doAuthRequest(t, app, "Bearer "+pair.AccessToken)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	app := newAuthApp(newTestManager(), stubUserRepo{})

	resp := doAuthRequest(t, app, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	app := newAuthApp(newTestManager(), stubUserRepo{})

	resp := doAuthRequest(t, app, "Token abc123")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	tm := newTestManager()
	user := &domain.User{ID: "user-1"}
	app := newAuthApp(tm, stubUserRepo{user: user})

	pair, err := tm.GeneratePair(user.ID)
	require.NoError(t, err)

	resp := doAuthRequest(t, app, "Bearer "+pair.RefreshToken)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareDeletedUser(t *testing.T) {
	tm := newTestManager()
	app := newAuthApp(tm, stubUserRepo{})

	pair, err := tm.GeneratePair("user-gone")
	require.NoError(t, err)

	resp := doAuthRequest(t, app, "Bearer "+pair.AccessToken)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
