package dashboard

import (
	"log/slog"

	"github.com/feedzz/feedzztrab-cli/internal/models"
	"github.com/feedzz/feedzztrab-cli/internal/session"
)

type TaskLister interface {
	List() ([]models.Task, error)
}

type UserLister interface {
	List() ([]models.User, error)
}

// Loader fetches the raw lists a role needs and projects them. A failed
// task fetch for a non-admin role degrades to an empty task list so the
// dashboard still renders; admins never fetch tasks at all.
type Loader struct {
	tasks  TaskLister
	users  UserLister
	logger *slog.Logger
}

func NewLoader(tasks TaskLister, users UserLister, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{tasks: tasks, users: users, logger: logger}
}

func (l *Loader) Load(identity session.Identity) (View, error) {
	if identity.Role == models.RoleAdmin {
		users, err := l.users.List()
		if err != nil {
			return View{}, err
		}
		return Build(identity, nil, users)
	}

	tasks, err := l.tasks.List()
	if err != nil {
		l.logger.Warn("task fetch failed, rendering dashboard without tasks", "error", err)
		tasks = []models.Task{}
	}

	var users []models.User
	if identity.Role == models.RoleTeamLead {
		users, err = l.users.List()
		if err != nil {
			l.logger.Warn("user fetch failed, rendering dashboard without users", "error", err)
			users = []models.User{}
		}
	}

	return Build(identity, tasks, users)
}
