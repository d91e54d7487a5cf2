package dashboard

import (
	"fmt"
	"testing"

	"github.com/feedzz/feedzztrab-cli/internal/models"
	"github.com/feedzz/feedzztrab-cli/internal/session"
)

type stubTaskLister struct {
	tasks  []models.Task
	err    error
	called bool
}

func (s *stubTaskLister) List() ([]models.Task, error) {
	s.called = true
	return s.tasks, s.err
}

type stubUserLister struct {
	users []models.User
	err   error
}

func (s *stubUserLister) List() ([]models.User, error) {
	return s.users, s.err
}

func TestLoaderToleratesTaskFetchFailure(t *testing.T) {
	tasks := &stubTaskLister{err: fmt.Errorf("boom")}
	users := &stubUserLister{users: sampleUsers()}
	loader := NewLoader(tasks, users, nil)

	lead := session.Identity{UserID: 2, Role: models.RoleTeamLead}
	view, err := loader.Load(lead)
	if err != nil {
		t.Fatalf("expected dashboard to render despite task failure, got %v", err)
	}
	if view.TeamLead == nil {
		t.Fatalf("expected team lead view")
	}
	if view.TeamLead.UnassignedCount != 0 {
		t.Fatalf("expected empty task list, got %d unassigned", view.TeamLead.UnassignedCount)
	}
	if view.TeamLead.DeveloperCount != 2 {
		t.Fatalf("user data was available and must still be projected, got %d developers", view.TeamLead.DeveloperCount)
	}
}

func TestLoaderAdminNeverFetchesTasks(t *testing.T) {
	tasks := &stubTaskLister{tasks: sampleTasks()}
	users := &stubUserLister{users: sampleUsers()}
	loader := NewLoader(tasks, users, nil)

	admin := session.Identity{UserID: 12, Role: models.RoleAdmin}
	view, err := loader.Load(admin)
	if err != nil {
		t.Fatalf("load admin dashboard: %v", err)
	}
	if tasks.called {
		t.Fatalf("admin dashboard must not fetch tasks")
	}
	if view.Admin == nil || view.Admin.UserCount != 4 {
		t.Fatalf("expected admin view with 4 users, got %+v", view)
	}
}

func TestLoaderAdminSurfacesUserFetchFailure(t *testing.T) {
	tasks := &stubTaskLister{}
	users := &stubUserLister{err: fmt.Errorf("boom")}
	loader := NewLoader(tasks, users, nil)

	admin := session.Identity{UserID: 12, Role: models.RoleAdmin}
	if _, err := loader.Load(admin); err == nil {
		t.Fatalf("expected error when the only data source fails")
	}
}

func TestLoaderManagerSkipsUserFetch(t *testing.T) {
	tasks := &stubTaskLister{tasks: sampleTasks()}
	users := &stubUserLister{err: fmt.Errorf("must not be called")}
	loader := NewLoader(tasks, users, nil)

	manager := session.Identity{UserID: 10, Role: models.RoleManager}
	view, err := loader.Load(manager)
	if err != nil {
		t.Fatalf("load manager dashboard: %v", err)
	}
	if view.Manager == nil || view.Manager.Total != 4 {
		t.Fatalf("expected manager view over 4 created tasks, got %+v", view)
	}
}
