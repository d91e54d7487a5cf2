// Package dashboard derives the role-specific view each user sees from
// the raw task and user lists. Projection is pure: same inputs, same
// output, no fetching and no mutation.
package dashboard

import (
	"fmt"
	"sort"

	"github.com/feedzz/feedzztrab-cli/internal/models"
	"github.com/feedzz/feedzztrab-cli/internal/session"
)

// Developers see at most this many active tasks on the dashboard; the
// full count is reported separately.
const developerVisibleLimit = 5

// DeveloperView lists the developer's own active work, em_progresso
// first, newest first within a state.
type DeveloperView struct {
	Visible []models.Task
	Total   int
}

type TeamLeadView struct {
	UnassignedCount int
	Developers      []models.User
	DeveloperCount  int
}

// ManagerView summarizes the tasks this manager created. Only counts
// are surfaced; AlreadyAssigned covers every state past nao_atribuida.
type ManagerView struct {
	Total           int
	Unassigned      int
	AlreadyAssigned int
	AwaitingStart   int
	InProgress      int
	Completed       int
}

type AdminView struct {
	Users     []models.User
	UserCount int
}

// View is the projection result for exactly one role; the matching
// pointer is set, the rest stay nil.
type View struct {
	Role      models.Role
	Developer *DeveloperView
	TeamLead  *TeamLeadView
	Manager   *ManagerView
	Admin     *AdminView
}

// Build dispatches on the closed role set. Adding a role means adding
// one case here and one projector function.
func Build(identity session.Identity, tasks []models.Task, users []models.User) (View, error) {
	switch identity.Role {
	case models.RoleDeveloper:
		v := ForDeveloper(identity.UserID, tasks)
		return View{Role: identity.Role, Developer: &v}, nil
	case models.RoleTeamLead:
		v := ForTeamLead(tasks, users)
		return View{Role: identity.Role, TeamLead: &v}, nil
	case models.RoleManager:
		v := ForManager(identity.UserID, tasks)
		return View{Role: identity.Role, Manager: &v}, nil
	case models.RoleAdmin:
		v := ForAdmin(users)
		return View{Role: identity.Role, Admin: &v}, nil
	}
	return View{}, fmt.Errorf("função de utilizador desconhecida: %q", identity.Role)
}

func ForDeveloper(userID int64, tasks []models.Task) DeveloperView {
	var active []models.Task
	for _, t := range tasks {
		if t.AssignedUserID == nil || *t.AssignedUserID != userID {
			continue
		}
		if t.Status == models.StatusAssigned || t.Status == models.StatusInProgress {
			active = append(active, t)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if a.Status != b.Status {
			return a.Status == models.StatusInProgress
		}
		return a.CreatedAt.After(b.CreatedAt.Time)
	})

	visible := active
	if len(visible) > developerVisibleLimit {
		visible = visible[:developerVisibleLimit]
	}
	return DeveloperView{Visible: visible, Total: len(active)}
}

func ForTeamLead(tasks []models.Task, users []models.User) TeamLeadView {
	unassigned := 0
	for _, t := range tasks {
		if t.Status == models.StatusUnassigned {
			unassigned++
		}
	}

	var developers []models.User
	for _, u := range users {
		if u.Role == models.RoleDeveloper {
			developers = append(developers, u)
		}
	}

	return TeamLeadView{
		UnassignedCount: unassigned,
		Developers:      developers,
		DeveloperCount:  len(developers),
	}
}

func ForManager(userID int64, tasks []models.Task) ManagerView {
	view := ManagerView{}
	for _, t := range tasks {
		if t.CreatedBy != userID {
			continue
		}
		view.Total++
		switch t.Status {
		case models.StatusUnassigned:
			view.Unassigned++
		case models.StatusAssigned:
			view.AwaitingStart++
		case models.StatusInProgress:
			view.InProgress++
		case models.StatusCompleted:
			view.Completed++
		}
	}
	view.AlreadyAssigned = view.Total - view.Unassigned
	return view
}

// ForAdmin never receives task data; admin dashboards show users only.
func ForAdmin(users []models.User) AdminView {
	return AdminView{Users: users, UserCount: len(users)}
}

// Section is one status bucket of the full task list, in the fixed
// display order both clients use.
type Section struct {
	Title string
	Tasks []models.Task
}

var sectionOrder = []models.Status{
	models.StatusUnassigned,
	models.StatusInProgress,
	models.StatusAssigned,
	models.StatusCompleted,
}

// GroupByStatus buckets tasks by state, newest first inside each
// bucket. Empty buckets are dropped.
func GroupByStatus(tasks []models.Task) []Section {
	buckets := make(map[models.Status][]models.Task)
	for _, t := range tasks {
		buckets[t.Status] = append(buckets[t.Status], t)
	}

	var sections []Section
	for _, status := range sectionOrder {
		group := buckets[status]
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CreatedAt.After(group[j].CreatedAt.Time)
		})
		sections = append(sections, Section{Title: status.Label(), Tasks: group})
	}
	return sections
}
