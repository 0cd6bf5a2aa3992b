package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cartalk/config"
	"cartalk/internal/domain/user"
	"cartalk/internal/handler"
	"cartalk/internal/repository"
	"cartalk/internal/server"
	"cartalk/internal/services"
	cartalk_errors "cartalk/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// memUserRepo is an in-memory stand-in for the Mongo repository. Like the
// real one, Create enforces email uniqueness and reports a conflict.
type memUserRepo struct {
	users map[string]user.User // keyed by email
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]user.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, u *user.User) error {
	if _, exists := m.users[u.Email]; exists {
		return cartalk_errors.ErrAlreadyExists
	}
	m.users[u.Email] = *u
	return nil
}

func (m *memUserRepo) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := m.users[email]
	if !ok {
		return user.User{}, cartalk_errors.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetUserByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, cartalk_errors.ErrNotFound
}

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func newTestRouter(t *testing.T, gen services.TextGenerator) *gin.Engine {
	t.Helper()
	return newTestRouterWithRepo(t, newMemUserRepo(), gen)
}

func newTestRouterWithRepo(t *testing.T, repo repository.UserRepository, gen services.TextGenerator) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		AppPort:      "8080",
		AppMode:      server.TestMode,
		FrontendURL:  "http://localhost:5173",
		JWTSecret:    "test-secret",
		JWTExpiryMin: 15,
	}

	authService := services.NewAuthService(repo, cfg)
	assistantService := services.NewAssistantService(gen, nil)

	srv := server.New(cfg, nil)
	srv.SetupRoutes(&server.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Assistant: handler.NewAssistantHandler(assistantService),
		Health:    handler.NewHealthHandler(nil),
	}, authService, nil)

	return srv.Engine()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestRegisterEndpoint(t *testing.T) {
	r := newTestRouter(t, &fakeGenerator{})

	t.Run("valid registration returns 201", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/api/register",
			`{"name":"Ann","email":"a@x.com","password":"pw1"}`, nil)
		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, "User registered successfully!", body["message"])
	})

	t.Run("repeating it returns 400 conflict", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/api/register",
			`{"name":"Ann","email":"a@x.com","password":"pw1"}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "Email already registered.", body["error"])
	})

	t.Run("any non-empty email string is accepted", func(t *testing.T) {
		// Field presence is the only email validation; format is not checked.
		w, body := doJSON(t, r, http.MethodPost, "/api/register",
			`{"name":"Bob","email":"not-an-email","password":"pw2"}`, nil)
		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, "User registered successfully!", body["message"])

		w, _ = doJSON(t, r, http.MethodPost, "/api/login",
			`{"email":"not-an-email","password":"pw2"}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing field returns 400", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/api/register",
			`{"name":"Bob","email":"b@x.com"}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "All fields (name, email, password) are required.", body["error"])
	})

	t.Run("non-string field returns 400, not 500", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/register",
			`{"name":"Bob","email":"b@x.com","password":42}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed JSON returns 400, not 500", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/register", `{"name":`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	r := newTestRouter(t, &fakeGenerator{})

	w, _ := doJSON(t, r, http.MethodPost, "/api/register",
		`{"name":"Ann","email":"a@x.com","password":"pw1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("registered credentials log in", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/api/login",
			`{"email":"a@x.com","password":"pw1"}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "Login successful!", body["message"])
		require.NotEmpty(t, body["token"])

		u, ok := body["user"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "Ann", u["name"])
		require.Equal(t, "a@x.com", u["email"])
		_, hasPassword := u["password"]
		require.False(t, hasPassword)
		require.NotContains(t, w.Body.String(), "pw1")
	})

	t.Run("wrong password and unknown email return the same 401", func(t *testing.T) {
		wWrong, bodyWrong := doJSON(t, r, http.MethodPost, "/api/login",
			`{"email":"a@x.com","password":"nope"}`, nil)
		wUnknown, bodyUnknown := doJSON(t, r, http.MethodPost, "/api/login",
			`{"email":"nobody@x.com","password":"pw1"}`, nil)

		require.Equal(t, http.StatusUnauthorized, wWrong.Code)
		require.Equal(t, http.StatusUnauthorized, wUnknown.Code)
		require.Equal(t, "Invalid email or password.", bodyWrong["error"])
		require.Equal(t, bodyWrong["error"], bodyUnknown["error"])
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/api/login", `{"email":"a@x.com"}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "Email and password are required.", body["error"])
	})

	t.Run("malformed JSON returns 400, not 500", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/login", `not json`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMeEndpoint(t *testing.T) {
	r := newTestRouter(t, &fakeGenerator{})

	w, _ := doJSON(t, r, http.MethodPost, "/api/register",
		`{"name":"Ann","email":"a@x.com","password":"pw1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, loginBody := doJSON(t, r, http.MethodPost, "/api/login",
		`{"email":"a@x.com","password":"pw1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := loginBody["token"].(string)
	require.NotEmpty(t, token)

	t.Run("token from login returns the same profile", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/api/me", "", map[string]string{
			"Authorization": "Bearer " + token,
		})
		require.Equal(t, http.StatusOK, w.Code)

		u, ok := body["user"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "Ann", u["name"])
		require.Equal(t, "a@x.com", u["email"])
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/api/me", "", map[string]string{
			"Authorization": "Bearer garbage",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing header returns 401", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/api/me", "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("store failure returns 500 with a generic body, not 401", func(t *testing.T) {
		broken := &brokenIDRepo{memUserRepo: newMemUserRepo(), idErr: errors.New("connection reset")}
		r := newTestRouterWithRepo(t, broken, &fakeGenerator{})

		w, _ := doJSON(t, r, http.MethodPost, "/api/register",
			`{"name":"Ann","email":"a@x.com","password":"pw1"}`, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		w, loginBody := doJSON(t, r, http.MethodPost, "/api/login",
			`{"email":"a@x.com","password":"pw1"}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		token, _ := loginBody["token"].(string)

		w, body := doJSON(t, r, http.MethodGet, "/api/me", "", map[string]string{
			"Authorization": "Bearer " + token,
		})
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, "Internal server error", body["error"])
	})
}

// brokenIDRepo fails every lookup by id with the injected error.
type brokenIDRepo struct {
	*memUserRepo
	idErr error
}

func (b *brokenIDRepo) GetUserByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, b.idErr
}

func TestAskEndpoint(t *testing.T) {
	t.Run("returns the model answer", func(t *testing.T) {
		r := newTestRouter(t, &fakeGenerator{reply: "A camshaft opens the valves."})

		w, body := doJSON(t, r, http.MethodPost, "/api/ask",
			`{"question":"  what does a camshaft do?  "}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, true, body["success"])
		require.Equal(t, "what does a camshaft do?", body["question"])
		require.Equal(t, "A camshaft opens the valves.", body["answer"])
	})

	t.Run("whitespace-only question returns 400 and skips the model", func(t *testing.T) {
		gen := &fakeGenerator{reply: "unused"}
		r := newTestRouter(t, gen)

		w, body := doJSON(t, r, http.MethodPost, "/api/ask", `{"question":"   "}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "Missing or invalid 'question' field", body["error"])
		require.Zero(t, gen.calls)
	})

	t.Run("missing and non-string question return 400", func(t *testing.T) {
		r := newTestRouter(t, &fakeGenerator{})

		w, _ := doJSON(t, r, http.MethodPost, "/api/ask", `{}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		w, _ = doJSON(t, r, http.MethodPost, "/api/ask", `{"question":7}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed JSON returns 400, not 500", func(t *testing.T) {
		r := newTestRouter(t, &fakeGenerator{})

		w, _ := doJSON(t, r, http.MethodPost, "/api/ask", `{{`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("model failure still answers 200 with the fallback", func(t *testing.T) {
		r := newTestRouter(t, &fakeGenerator{err: context.DeadlineExceeded})

		w, body := doJSON(t, r, http.MethodPost, "/api/ask", `{"question":"best oil?"}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, true, body["success"])
		require.Equal(t, services.FallbackAnswer, body["answer"])
	})
}

func TestMessageEndpoint(t *testing.T) {
	r := newTestRouter(t, &fakeGenerator{})

	w, body := doJSON(t, r, http.MethodGet, "/message", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Backend is running!", body["message"])
	// The router under test has no database behind it.
	require.Equal(t, "not connected", body["db_status"])
}
