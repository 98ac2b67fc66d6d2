package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/fitlife-app/membership-service/internal/events"
	"github.com/fitlife-app/membership-service/internal/models"
	"github.com/fitlife-app/membership-service/internal/validator"
)

func newUserFixture() (*mockRepository, *events.MockEventPublisher, UserService) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	svc := NewUserService(repo, publisher, logger, validator.New())
	return repo, publisher, svc
}

func TestUserService_Register_Idempotent(t *testing.T) {
	repo, _, svc := newUserFixture()
	ctx := context.Background()

	first, err := svc.Register(ctx, &CreateUserRequest{Email: "a@x.com", Name: "A"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !first.Created || first.InsertedID == nil {
		t.Fatal("first Register should insert")
	}
	if first.User.Role != models.RoleMember {
		t.Errorf("role = %s, want member default", first.User.Role)
	}

	second, err := svc.Register(ctx, &CreateUserRequest{Email: "a@x.com", Name: "A"})
	if err != nil {
		t.Fatalf("Register (repeat): %v", err)
	}
	if second.Created {
		t.Error("second Register should be a no-op")
	}
	if second.Message != "user already exists" || second.InsertedID != nil {
		t.Errorf("second = %+v, want already-exists with nil id", second)
	}
	if len(repo.users) != 1 {
		t.Errorf("user count = %d, want 1", len(repo.users))
	}
}

func TestUserService_Register_Invalid(t *testing.T) {
	_, _, svc := newUserFixture()

	tests := []struct {
		name string
		req  CreateUserRequest
	}{
		{name: "missing email", req: CreateUserRequest{}},
		{name: "bad email", req: CreateUserRequest{Email: "nope"}},
		{name: "bad role", req: CreateUserRequest{Email: "a@x.com", Role: "superuser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), &tt.req); err == nil {
				t.Error("Register accepted invalid input")
			}
		})
	}
}

func TestUserService_RoleChecks(t *testing.T) {
	repo, _, svc := newUserFixture()
	ctx := context.Background()

	seedUser(repo, "admin@x.com", models.RoleAdmin)
	seedUser(repo, "coach@x.com", models.RoleTrainer)
	seedUser(repo, "member@x.com", models.RoleMember)

	tests := []struct {
		email       string
		wantAdmin   bool
		wantTrainer bool
	}{
		{email: "admin@x.com", wantAdmin: true},
		{email: "coach@x.com", wantTrainer: true},
		{email: "member@x.com"},
		{email: "ghost@x.com"}, // no record at all resolves to no role
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			isAdmin, err := svc.IsAdmin(ctx, tt.email)
			if err != nil {
				t.Fatalf("IsAdmin: %v", err)
			}
			if isAdmin != tt.wantAdmin {
				t.Errorf("IsAdmin = %v, want %v", isAdmin, tt.wantAdmin)
			}

			isTrainer, err := svc.IsTrainer(ctx, tt.email)
			if err != nil {
				t.Fatalf("IsTrainer: %v", err)
			}
			if isTrainer != tt.wantTrainer {
				t.Errorf("IsTrainer = %v, want %v", isTrainer, tt.wantTrainer)
			}
		})
	}
}

func TestUserService_Delete_RepeatIsZeroCount(t *testing.T) {
	repo, publisher, svc := newUserFixture()
	ctx := context.Background()

	user := seedUser(repo, "a@x.com", models.RoleMember)

	first, err := svc.Delete(ctx, user.ID)
	if err != nil || first.DeletedCount != 1 {
		t.Fatalf("Delete = %+v, %v", first, err)
	}

	repeat, err := svc.Delete(ctx, user.ID)
	if err != nil {
		t.Fatalf("repeat Delete: %v", err)
	}
	if repeat.DeletedCount != 0 {
		t.Errorf("repeat DeletedCount = %d, want 0 (soft outcome, not error)", repeat.DeletedCount)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.TypeUserDeleted {
		t.Errorf("published = %v, want one %s event", published, events.TypeUserDeleted)
	}
}

func TestUserService_PromoteToAdmin(t *testing.T) {
	repo, _, svc := newUserFixture()
	ctx := context.Background()

	user := seedUser(repo, "a@x.com", models.RoleMember)

	result, err := svc.PromoteToAdmin(ctx, user.ID)
	if err != nil || result.MatchedCount != 1 {
		t.Fatalf("PromoteToAdmin = %+v, %v", result, err)
	}
	if repo.users[user.ID].Role != models.RoleAdmin {
		t.Errorf("role = %s, want admin", repo.users[user.ID].Role)
	}

	if result, err := svc.PromoteToAdmin(ctx, "missing"); err != nil || result.MatchedCount != 0 {
		t.Errorf("PromoteToAdmin(missing) = %+v, %v", result, err)
	}
}

func TestServiceManager_Lifecycle(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)

	sm := NewServiceManager(repo, publisher, logger, validator.New())

	if err := sm.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck should fail before Initialize")
	}

	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if sm.User() == nil || sm.Trainer() == nil {
		t.Fatal("services should be available after Initialize")
	}
	if err := sm.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck: %v", err)
	}

	if err := sm.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := sm.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck should fail after Shutdown")
	}
}
