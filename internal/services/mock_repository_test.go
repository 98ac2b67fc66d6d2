package services

import (
	"context"
	"fmt"

	"github.com/fitlife-app/membership-service/internal/models"
	"github.com/fitlife-app/membership-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	users map[string]*models.User
	apps  map[string]*models.TrainerApplication

	// failNext forces the next matching call to error, for exercising
	// transaction rollback paths.
	failUserUpdate bool

	userRepo *mockUserRepo
	appRepo  *mockAppRepo
}

func newMockRepository() *mockRepository {
	m := &mockRepository{
		users: make(map[string]*models.User),
		apps:  make(map[string]*models.TrainerApplication),
	}
	m.userRepo = &mockUserRepo{parent: m}
	m.appRepo = &mockAppRepo{parent: m}
	return m
}

func (m *mockRepository) User() repositories.UserRepository { return m.userRepo }
func (m *mockRepository) TrainerApplication() repositories.TrainerApplicationRepository {
	return m.appRepo
}

// WithTransaction snapshots state and restores it when fn fails,
// imitating a rollback.
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	usersSnap := make(map[string]*models.User, len(m.users))
	for k, v := range m.users {
		u := *v
		usersSnap[k] = &u
	}
	appsSnap := make(map[string]*models.TrainerApplication, len(m.apps))
	for k, v := range m.apps {
		a := *v
		appsSnap[k] = &a
	}

	if err := fn(m); err != nil {
		m.users = usersSnap
		m.apps = appsSnap
		return err
	}
	return nil
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

type mockUserRepo struct {
	parent *mockRepository
}

func (r *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.parent.users)+1)
	}
	if user.Role == "" {
		user.Role = models.RoleMember
	}
	r.parent.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.parent.users[id], nil
}

func (r *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.parent.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepo) List(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.parent.users))
	for _, u := range r.parent.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *mockUserRepo) UpdateRole(ctx context.Context, id string, role models.Role) (repositories.UpdateResult, error) {
	u, ok := r.parent.users[id]
	if !ok {
		return repositories.UpdateResult{}, nil
	}
	u.Role = role
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *mockUserRepo) UpdateRoleStatusByEmail(ctx context.Context, email string, role models.Role, status models.ApplicationStatus) (repositories.UpdateResult, error) {
	if r.parent.failUserUpdate {
		return repositories.UpdateResult{}, fmt.Errorf("store unavailable")
	}
	for _, u := range r.parent.users {
		if u.Email == email {
			u.Role = role
			s := status
			u.Status = &s
			return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return repositories.UpdateResult{}, nil
}

func (r *mockUserRepo) Delete(ctx context.Context, id string) (repositories.DeleteResult, error) {
	if _, ok := r.parent.users[id]; !ok {
		return repositories.DeleteResult{DeletedCount: 0}, nil
	}
	delete(r.parent.users, id)
	return repositories.DeleteResult{DeletedCount: 1}, nil
}

type mockAppRepo struct {
	parent *mockRepository
}

func (r *mockAppRepo) Create(ctx context.Context, app *models.TrainerApplication) error {
	if app.ID == "" {
		app.ID = fmt.Sprintf("app-%d", len(r.parent.apps)+1)
	}
	if app.Status == "" {
		app.Status = models.StatusPending
	}
	r.parent.apps[app.ID] = app
	return nil
}

func (r *mockAppRepo) GetByID(ctx context.Context, id string) (*models.TrainerApplication, error) {
	return r.parent.apps[id], nil
}

func (r *mockAppRepo) GetByEmail(ctx context.Context, email string) (*models.TrainerApplication, error) {
	for _, a := range r.parent.apps {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (r *mockAppRepo) List(ctx context.Context) ([]*models.TrainerApplication, error) {
	out := make([]*models.TrainerApplication, 0, len(r.parent.apps))
	for _, a := range r.parent.apps {
		out = append(out, a)
	}
	return out, nil
}

func (r *mockAppRepo) UpdateDecision(ctx context.Context, id string, role models.Role, status models.ApplicationStatus, feedback *string) (repositories.UpdateResult, error) {
	a, ok := r.parent.apps[id]
	if !ok {
		return repositories.UpdateResult{}, nil
	}
	a.Role = role
	a.Status = status
	if feedback != nil {
		f := *feedback
		a.Feedback = &f
	}
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *mockAppRepo) UpdateRole(ctx context.Context, id string, role models.Role) (repositories.UpdateResult, error) {
	a, ok := r.parent.apps[id]
	if !ok {
		return repositories.UpdateResult{}, nil
	}
	a.Role = role
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *mockAppRepo) Delete(ctx context.Context, id string) (repositories.DeleteResult, error) {
	if _, ok := r.parent.apps[id]; !ok {
		return repositories.DeleteResult{DeletedCount: 0}, nil
	}
	delete(r.parent.apps, id)
	return repositories.DeleteResult{DeletedCount: 1}, nil
}
