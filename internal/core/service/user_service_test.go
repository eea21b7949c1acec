package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/assignhub/assignment-api/internal/core/domain"
	"github.com/assignhub/assignment-api/internal/core/ports"
)

// stubAudit captures recorded entries synchronously.
type stubAudit struct {
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(entry domain.AuditEntry) {
	a.entries = append(a.entries, entry)
}

func newTestUserService(t *testing.T) (*UserService, *stubUserRepo, *stubAudit) {
	t.Helper()
	repo := &stubUserRepo{}
	auth := newTestAuthService(t, repo, nil)
	audit := &stubAudit{}
	return NewUserService(repo, auth, audit, zerolog.Nop()), repo, audit
}

func createInput(username, email, role string) ports.CreateUserInput {
	return ports.CreateUserInput{
		Username:  username,
		Password:  "testPassword",
		FirstName: "John",
		LastName:  "Doe",
		Role:      role,
		Email:     email,
	}
}

func TestUserService_CreateUser_Success(t *testing.T) {
	svc, repo, audit := newTestUserService(t)

	token, err := svc.CreateUser(context.Background(), createInput("JohnDoee", "John@Example.com", domain.RoleManager))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if token == "" {
		t.Fatalf("expected session token")
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected one stored user, got %d", len(repo.users))
	}
	stored := repo.users[0]
	if stored.Username != "johndoee" || stored.Email != "john@example.com" {
		t.Fatalf("expected normalized username/email, got %q %q", stored.Username, stored.Email)
	}
	if stored.HashedPassword == "testPassword" {
		t.Fatalf("expected hashed password")
	}
	if !stored.Active {
		t.Fatalf("expected new user active")
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != "create" || audit.entries[0].Entity != "user" {
		t.Fatalf("unexpected audit entries: %+v", audit.entries)
	}
}

func TestUserService_CreateUser_AdminDerivedFromRole(t *testing.T) {
	svc, repo, _ := newTestUserService(t)

	if _, err := svc.CreateUser(context.Background(), createInput("manageru", "m@example.com", domain.RoleManager)); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := svc.CreateUser(context.Background(), createInput("engineer", "e@example.com", domain.RoleEngineer)); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	for _, u := range repo.users {
		wantAdmin := u.Role == domain.RoleManager
		if u.Admin != wantAdmin {
			t.Fatalf("user %s: admin=%v, want %v", u.Username, u.Admin, wantAdmin)
		}
	}
}

func TestUserService_CreateUser_InvalidRole(t *testing.T) {
	svc, repo, _ := newTestUserService(t)

	_, err := svc.CreateUser(context.Background(), createInput("johndoee", "john@example.com", "INTERN"))
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected nothing stored, got %d users", len(repo.users))
	}
}

func TestUserService_CreateUser_CollisionTriage(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	if _, err := svc.CreateUser(context.Background(), createInput("johndoee", "john@example.com", domain.RoleEngineer)); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	cases := []struct {
		name     string
		username string
		email    string
		want     error
	}{
		{"both collide", "johndoee", "john@example.com", domain.ErrUserExists},
		{"username collides", "johndoee", "other@example.com", domain.ErrUsernameExists},
		{"email collides", "janedoee", "john@example.com", domain.ErrEmailExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), createInput(tc.username, tc.email, domain.RoleEngineer))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	_, _ = svc.CreateUser(context.Background(), createInput("johndoee", "john@example.com", domain.RoleEngineer))
	id := repo.users[0].ID

	updated, err := svc.UpdateUser(context.Background(), id, ports.UpdateUserInput{
		FirstName: "Johnny",
		LastName:  "Doe",
		Email:     "Johnny@Example.com",
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.FirstName != "Johnny" || updated.Email != "johnny@example.com" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	if _, err := svc.UpdateUser(context.Background(), uuid.New(), ports.UpdateUserInput{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetCurrentUser(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	_, _ = svc.CreateUser(context.Background(), createInput("johndoee", "john@example.com", domain.RoleEngineer))
	id := repo.users[0].ID

	user, err := svc.GetCurrentUser(context.Background(), &ports.TokenData{ID: id, Username: "johndoee"})
	if err != nil {
		t.Fatalf("GetCurrentUser: %v", err)
	}
	if user.ID != id {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserService_AssignAndDetachProject(t *testing.T) {
	svc, repo, audit := newTestUserService(t)
	_, _ = svc.CreateUser(context.Background(), createInput("johndoee", "john@example.com", domain.RoleEngineer))
	userID := repo.users[0].ID
	projectID := uuid.New()

	assigned, err := svc.UpdateUserProject(context.Background(), userID, &projectID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.ProjectID == nil || *assigned.ProjectID != projectID {
		t.Fatalf("expected project %s assigned, got %v", projectID, assigned.ProjectID)
	}

	detached, err := svc.UpdateUserProject(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("detach: %v", err)
	}
	if detached.ProjectID != nil {
		t.Fatalf("expected project detached, got %v", detached.ProjectID)
	}

	actions := make([]string, 0, len(audit.entries))
	for _, e := range audit.entries {
		actions = append(actions, e.Action)
	}
	if len(actions) != 3 || actions[1] != "assign_project" || actions[2] != "unassign_project" {
		t.Fatalf("unexpected audit actions: %v", actions)
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	svc, repo, _ := newTestUserService(t)
	_, _ = svc.CreateUser(context.Background(), createInput("johndoee", "john@example.com", domain.RoleEngineer))
	id := repo.users[0].ID

	if err := svc.DeleteUser(context.Background(), id); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected user removed")
	}

	if err := svc.DeleteUser(context.Background(), id); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	svc, _, _ := newTestUserService(t)
	_, _ = svc.CreateUser(context.Background(), createInput("johndoee", "john@example.com", domain.RoleEngineer))
	_, _ = svc.CreateUser(context.Background(), createInput("janedoee", "jane@example.com", domain.RoleManager))

	users, err := svc.ListUsers(context.Background(), false)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
