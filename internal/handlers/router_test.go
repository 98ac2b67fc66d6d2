package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitlife-app/membership-service/internal/auth"
	"github.com/fitlife-app/membership-service/internal/models"
	"github.com/fitlife-app/membership-service/internal/repositories"
	"github.com/fitlife-app/membership-service/internal/services"
	"github.com/fitlife-app/membership-service/internal/utils"
	"github.com/fitlife-app/membership-service/internal/validator"
)

// ===== STUB SERVICES =====

type stubUserService struct {
	users []*models.User
}

func (s *stubUserService) Register(ctx context.Context, req *services.CreateUserRequest) (*services.RegisterUserResult, error) {
	for _, u := range s.users {
		if u.Email == req.Email {
			return &services.RegisterUserResult{
				Message:    "user already exists",
				InsertedID: nil,
			}, nil
		}
	}
	user := &models.User{ID: "new-id", Email: req.Email, Name: req.Name, Role: models.RoleMember}
	s.users = append(s.users, user)
	id := user.ID
	return &services.RegisterUserResult{User: user, InsertedID: &id, Created: true}, nil
}

func (s *stubUserService) List(ctx context.Context) ([]*models.User, error) { return s.users, nil }

func (s *stubUserService) Delete(ctx context.Context, id string) (repositories.DeleteResult, error) {
	return repositories.DeleteResult{DeletedCount: 0}, nil
}

func (s *stubUserService) PromoteToAdmin(ctx context.Context, id string) (repositories.UpdateResult, error) {
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *stubUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u.Role == models.RoleAdmin, nil
		}
	}
	return false, nil
}

func (s *stubUserService) IsTrainer(ctx context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u.Role == models.RoleTrainer, nil
		}
	}
	return false, nil
}

type stubTrainerService struct{}

func (s *stubTrainerService) Apply(ctx context.Context, req *services.ApplyTrainerRequest) (*services.ApplyResult, error) {
	return &services.ApplyResult{Message: "user already exists", InsertedID: nil}, nil
}

func (s *stubTrainerService) List(ctx context.Context) ([]*models.TrainerApplication, error) {
	return nil, nil
}

func (s *stubTrainerService) GetByID(ctx context.Context, id string) (*models.TrainerApplication, error) {
	return nil, services.ErrNotFound
}

func (s *stubTrainerService) GetByEmail(ctx context.Context, email string) (*models.TrainerApplication, error) {
	return nil, services.ErrNotFound
}

func (s *stubTrainerService) Approve(ctx context.Context, id string) (repositories.UpdateResult, error) {
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *stubTrainerService) Reject(ctx context.Context, id string, feedback string) (repositories.UpdateResult, error) {
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *stubTrainerService) SetTrainerRole(ctx context.Context, id string) (repositories.UpdateResult, error) {
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *stubTrainerService) DemoteRole(ctx context.Context, id string) (repositories.UpdateResult, error) {
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *stubTrainerService) Purge(ctx context.Context, id string) (repositories.DeleteResult, error) {
	return repositories.DeleteResult{DeletedCount: 0}, nil
}

type stubServiceManager struct {
	user    services.UserService
	trainer services.TrainerService
}

func (m *stubServiceManager) User() services.UserService       { return m.user }
func (m *stubServiceManager) Trainer() services.TrainerService { return m.trainer }
func (m *stubServiceManager) Initialize(ctx context.Context) error {
	return nil
}
func (m *stubServiceManager) Shutdown(ctx context.Context) error    { return nil }
func (m *stubServiceManager) HealthCheck(ctx context.Context) error { return nil }

// ===== SETUP =====

func setupFullRouter(t *testing.T, users []*models.User) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	userSvc := &stubUserService{users: users}
	sm := &stubServiceManager{user: userSvc, trainer: &stubTrainerService{}}
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	repo := &stubUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		repo.users[u.Email] = u
	}

	hm := NewHandlerManager(sm, tokens, validator.New(), logger, repo)

	router := gin.New()
	hm.SetupRoutes(router)
	return router, tokens
}

func jsonRequest(router *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ===== TESTS =====

func TestIssueTokenRoute(t *testing.T) {
	router, _ := setupFullRouter(t, nil)

	w := jsonRequest(router, http.MethodPost, "/jwt", "", map[string]string{
		"email": "alice@example.com",
		"name":  "Alice",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["token"] == "" {
		t.Error("expected a token in the response")
	}
}

func TestIssueTokenRoute_InvalidEmail(t *testing.T) {
	router, _ := setupFullRouter(t, nil)

	w := jsonRequest(router, http.MethodPost, "/jwt", "", map[string]string{
		"email": "not-an-email",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRegisterRoute_Idempotent(t *testing.T) {
	router, _ := setupFullRouter(t, nil)

	body := map[string]string{"email": "alice@example.com", "name": "Alice"}

	w := jsonRequest(router, http.MethodPost, "/users", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("first register: status = %d: %s", w.Code, w.Body.String())
	}

	w = jsonRequest(router, http.MethodPost, "/users", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("second register: status = %d", w.Code)
	}

	var resp struct {
		Message    string  `json:"message"`
		InsertedID *string `json:"insertedId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "user already exists" {
		t.Errorf("message = %q, want %q", resp.Message, "user already exists")
	}
	if resp.InsertedID != nil {
		t.Errorf("insertedId = %v, want null", *resp.InsertedID)
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	router, _ := setupFullRouter(t, nil)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/betrainer"},
		{http.MethodPatch, "/reject/some-id"},
		{http.MethodGet, "/trainer/alice@example.com"},
	}

	for _, p := range paths {
		w := jsonRequest(router, p.method, p.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want %d", p.method, p.path, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestAdminRoutes_ForbiddenForMember(t *testing.T) {
	users := []*models.User{
		{ID: "1", Email: "member@example.com", Role: models.RoleMember},
	}
	router, tokens := setupFullRouter(t, users)
	token, _ := tokens.Issue("member@example.com", "Member")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/export"},
		{http.MethodDelete, "/users/some-id"},
		{http.MethodGet, "/betrainer"},
		{http.MethodPatch, "/betrainer/some-id"},
		{http.MethodPatch, "/reject/some-id"},
	}

	for _, p := range paths {
		w := jsonRequest(router, p.method, p.path, token, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: status = %d, want %d", p.method, p.path, w.Code, http.StatusForbidden)
		}
	}
}

func TestAdminRoutes_AllowedForAdmin(t *testing.T) {
	users := []*models.User{
		{ID: "1", Email: "admin@example.com", Role: models.RoleAdmin},
	}
	router, tokens := setupFullRouter(t, users)
	token, _ := tokens.Issue("admin@example.com", "Admin")

	w := jsonRequest(router, http.MethodGet, "/users", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /users: status = %d: %s", w.Code, w.Body.String())
	}

	w = jsonRequest(router, http.MethodDelete, "/users/ghost-id", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE /users/ghost-id: status = %d", w.Code)
	}

	var del struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &del); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if del.DeletedCount != 0 {
		t.Errorf("deletedCount = %d, want 0", del.DeletedCount)
	}
}

func TestRoleProbe_SelfOnly(t *testing.T) {
	users := []*models.User{
		{ID: "1", Email: "admin@example.com", Role: models.RoleAdmin},
		{ID: "2", Email: "member@example.com", Role: models.RoleMember},
	}
	router, tokens := setupFullRouter(t, users)

	adminToken, _ := tokens.Issue("admin@example.com", "Admin")
	memberToken, _ := tokens.Issue("member@example.com", "Member")

	// Own email resolves
	w := jsonRequest(router, http.MethodGet, "/users/admin/admin@example.com", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("self probe: status = %d", w.Code)
	}
	var resp map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp["admin"] {
		t.Error("admin = false, want true")
	}

	// Probing someone else's email is forbidden even for an admin target
	w = jsonRequest(router, http.MethodGet, "/users/admin/admin@example.com", memberToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("cross probe: status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestRejectRoute_RequiresFeedback(t *testing.T) {
	users := []*models.User{
		{ID: "1", Email: "admin@example.com", Role: models.RoleAdmin},
	}
	router, tokens := setupFullRouter(t, users)
	token, _ := tokens.Issue("admin@example.com", "Admin")

	w := jsonRequest(router, http.MethodPatch, "/reject/app-1", token, map[string]string{
		"feedbackText": "missing certification",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("reject with feedback: status = %d: %s", w.Code, w.Body.String())
	}
}

func TestHealthRoute(t *testing.T) {
	router, _ := setupFullRouter(t, nil)

	w := jsonRequest(router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
