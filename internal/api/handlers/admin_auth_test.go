package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/domain/admins"
	"github.com/stretchr/testify/require"
)

type stubAdminsRepo struct {
	byEmail map[string]*admins.Admin
}

func newStubAdminsRepo(items ...*admins.Admin) *stubAdminsRepo {
	repo := &stubAdminsRepo{byEmail: make(map[string]*admins.Admin)}
	for _, admin := range items {
		repo.byEmail[admin.Email] = admin
	}
	return repo
}

func (s *stubAdminsRepo) ListByOrg(_ context.Context, orgULID string) ([]admins.Admin, error) {
	var out []admins.Admin
	for _, admin := range s.byEmail {
		if admin.OrgULID == orgULID {
			out = append(out, *admin)
		}
	}
	return out, nil
}

func (s *stubAdminsRepo) GetByULID(_ context.Context, orgULID, ulid string) (*admins.Admin, error) {
	for _, admin := range s.byEmail {
		if admin.OrgULID == orgULID && admin.ULID == ulid {
			return admin, nil
		}
	}
	return nil, admins.ErrNotFound
}

func (s *stubAdminsRepo) GetByEmail(_ context.Context, email string) (*admins.Admin, error) {
	if admin, ok := s.byEmail[email]; ok {
		return admin, nil
	}
	return nil, admins.ErrNotFound
}

func (s *stubAdminsRepo) Create(_ context.Context, params admins.CreateParams) (*admins.Admin, error) {
	admin := &admins.Admin{
		ULID:         "01HYX3KQW7ERTV9XNBM2P8QJZC",
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		OrgULID:      params.OrgULID,
	}
	s.byEmail[admin.Email] = admin
	return admin, nil
}

func (s *stubAdminsRepo) Update(_ context.Context, orgULID, ulid string, params admins.UpdateParams) (*admins.Admin, error) {
	admin, err := s.GetByULID(context.Background(), orgULID, ulid)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		admin.Name = *params.Name
	}
	return admin, nil
}

func (s *stubAdminsRepo) Delete(_ context.Context, orgULID, ulid string) error {
	for email, admin := range s.byEmail {
		if admin.OrgULID == orgULID && admin.ULID == ulid {
			delete(s.byEmail, email)
			return nil
		}
	}
	return admins.ErrNotFound
}

func authServer(t *testing.T, repo admins.Repository) (*httptest.Server, *auth.JWTManager) {
	t.Helper()

	manager := auth.NewJWTManager("test-secret", time.Hour, "gatherly")
	handler := NewAdminAuthHandler(admins.NewService(repo), manager, "test")
	requireAuth := middleware.AdminAuth(manager, "test")

	mux := http.NewServeMux()
	mux.Handle("POST /admin/login", http.HandlerFunc(handler.Login))
	mux.Handle("GET /admin/me", requireAuth(http.HandlerFunc(handler.Me)))
	mux.Handle("POST /admin/logout", requireAuth(http.HandlerFunc(handler.Logout)))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, manager
}

func seedAdmin(t *testing.T, password string) *admins.Admin {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &admins.Admin{
		ULID:         adminULID,
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: hash,
		OrgULID:      orgA,
	}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func TestLoginSuccess(t *testing.T) {
	server, _ := authServer(t, newStubAdminsRepo(seedAdmin(t, "secret123")))

	resp := postJSON(t, server.URL+"/admin/login", map[string]string{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	require.Equal(t, "jane@example.com", body.Admin.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	server, _ := authServer(t, newStubAdminsRepo(seedAdmin(t, "secret123")))

	resp := postJSON(t, server.URL+"/admin/login", map[string]string{
		"email":    "jane@example.com",
		"password": "wrong",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Invalid credentials.", body["message"])
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	server, _ := authServer(t, newStubAdminsRepo())

	resp := postJSON(t, server.URL+"/admin/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Invalid credentials.", body["message"])
}

func TestMeReturnsAuthenticatedAdmin(t *testing.T) {
	server, manager := authServer(t, newStubAdminsRepo(seedAdmin(t, "secret123")))

	token, err := manager.Generate(adminULID, orgA)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/admin/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body AdminResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, adminULID, body.ID)
	require.Equal(t, "jane@example.com", body.Email)
}

func TestLogout(t *testing.T) {
	server, manager := authServer(t, newStubAdminsRepo(seedAdmin(t, "secret123")))

	token, err := manager.Generate(adminULID, orgA)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/admin/logout", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Logged out.", body["message"])
}
