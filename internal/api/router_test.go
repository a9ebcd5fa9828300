package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foryourmind/server/internal/api"
	"github.com/foryourmind/server/internal/auth"
	"github.com/foryourmind/server/internal/config"
	"github.com/foryourmind/server/internal/logging"
	"github.com/foryourmind/server/internal/storage/memory"
	"github.com/foryourmind/server/internal/storage/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := memory.New()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := auth.NewService(store, config.JWTConfig{
		Secret:           testSecret,
		AccessTTLMinutes: 15,
		RefreshTTLDays:   7,
	}, log)
	return api.NewRouter(api.RouterConfig{
		Store:       store,
		AuthService: svc,
		Logger:      log,
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	t.Fatal("refresh_token cookie not set")
	return nil
}

func register(t *testing.T, h http.Handler, email string) (token string, cookie *http.Cookie) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", map[string]any{
		"email":       email,
		"password":    "password123",
		"displayName": "Test User",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	return body["token"].(string), refreshCookie(t, rec)
}

func login(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode(t, rec)["token"].(string)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	token, cookie := register(t, h, "flow@example.com")
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	rec := doJSON(t, h, http.MethodGet, "/api/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)
	assert.Equal(t, "flow@example.com", me["email"])
	assert.Equal(t, "individual", me["role"])
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	login(t, h, "flow@example.com", "password123")

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "flow@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decode(t, rec)["message"])
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", map[string]any{
		"email":       "not-an-email",
		"password":    "short",
		"displayName": "",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "validation failed", body["message"])
	details := body["details"].(map[string]any)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "displayName")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	register(t, h, "dup@example.com")
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", map[string]any{
		"email":       "Dup@Example.com",
		"password":    "password123",
		"displayName": "Other",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email already registered", decode(t, rec)["message"])
}

func TestRefresh_RotationAndReplay(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	_, cookie := register(t, h, "rotate@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/auth/refresh", nil, "", cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	next := refreshCookie(t, rec)
	assert.NotEqual(t, cookie.Value, next.Value)
	assert.NotEmpty(t, decode(t, rec)["token"])

	// The consumed token no longer works, and the failure clears the cookie.
	rec = doJSON(t, h, http.MethodPost, "/api/auth/refresh", nil, "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid refresh token", decode(t, rec)["message"])
	assert.Empty(t, refreshCookie(t, rec).Value)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/refresh", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "refresh token required", decode(t, rec)["message"])
}

func TestLogout_RevokesToken(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	_, cookie := register(t, h, "logout@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/auth/logout", nil, "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/refresh", nil, "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", decode(t, rec)["message"])

	rec = doJSON(t, h, http.MethodGet, "/api/me", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token", decode(t, rec)["message"])

	expired, err := auth.GenerateToken("u1", "u1@example.com", "individual", []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	rec = doJSON(t, h, http.MethodGet, "/api/me", nil, expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token expired", decode(t, rec)["message"])
}

func TestJournals_OwnershipHiddenAsNotFound(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	owner, _ := register(t, h, "owner@example.com")
	other, _ := register(t, h, "other@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/journals", map[string]any{
		"mood":    4,
		"content": "a good day",
		"tags":    []string{"gratitude"},
	}, owner)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	journalID := decode(t, rec)["id"].(string)

	rec = doJSON(t, h, http.MethodGet, "/api/journals/"+journalID, nil, owner)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A stranger cannot learn the journal even exists.
	rec = doJSON(t, h, http.MethodGet, "/api/journals/"+journalID, nil, other)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/journals/"+journalID, nil, other)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/journals", nil, other)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestJournals_ValidationAndUpdate(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	token, _ := register(t, h, "writer@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/journals", map[string]any{
		"mood":    9,
		"content": "",
	}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/journals", map[string]any{
		"mood":    3,
		"content": "middling",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(string)

	rec = doJSON(t, h, http.MethodPatch, "/api/journals/"+id, map[string]any{
		"mood": 5,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode(t, rec)
	assert.Equal(t, float64(5), updated["mood"])
	assert.Equal(t, "middling", updated["content"])
}

func TestRants_NoSessionNeeded(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/rants", map[string]any{
		"content": "shouting into the void",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rant := decode(t, rec)
	id := rant["id"].(string)
	assert.NotEmpty(t, rant["anonToken"])
	assert.NotContains(t, rant, "userId")

	rec = doJSON(t, h, http.MethodPost, "/api/rants/"+id+"/support", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["supportCount"])

	rec = doJSON(t, h, http.MethodPost, "/api/rants/missing/support", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMoods_WindowQuery(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	token, _ := register(t, h, "moody@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/moods", map[string]any{
		"mood":  4,
		"notes": "fine",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/moods?days=30", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)

	rec = doJSON(t, h, http.MethodGet, "/api/moods?days=0", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestOrganizations_RoleGated(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	individual, _ := register(t, h, "worker@example.com")
	rec := doJSON(t, h, http.MethodPost, "/api/organizations", map[string]any{
		"name": "Acme",
	}, individual)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decode(t, rec)["message"])

	admin := login(t, h, seed.DemoAdminEmail, seed.DemoPassword)
	rec = doJSON(t, h, http.MethodPost, "/api/organizations", map[string]any{
		"name": "Acme",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	orgID := decode(t, rec)["id"].(string)

	manager := login(t, h, seed.DemoManagerEmail, seed.DemoPassword)
	rec = doJSON(t, h, http.MethodGet, "/api/organizations/"+orgID+"/metrics", nil, manager)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/api/organizations/"+orgID+"/metrics", nil, individual)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAssessments_SubmitFlow(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	token, _ := register(t, h, "assess@example.com")

	rec := doJSON(t, h, http.MethodGet, "/api/assessments", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var assessments []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assessments))
	require.NotEmpty(t, assessments)
	id := assessments[0]["id"].(string)
	questions := assessments[0]["questions"].([]any)
	require.Len(t, questions, 10)

	answers := map[string]int{}
	for _, q := range questions {
		answers[q.(map[string]any)["id"].(string)] = 5
	}
	rec = doJSON(t, h, http.MethodPost, "/api/assessments/"+id+"/submit", map[string]any{
		"responses": answers,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decode(t, rec)
	assert.Equal(t, 10.0, result["totalScore"])
	assert.NotEmpty(t, result["recommendations"])

	rec = doJSON(t, h, http.MethodGet, "/api/assessments/latest", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, result["id"], decode(t, rec)["id"])
}
