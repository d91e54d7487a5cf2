// Package gate decides which task actions the signed-in user may take.
// It is advisory: the backend enforces authorization again on every
// call, so the gate only has to agree with it.
package gate

import (
	"fmt"

	"github.com/feedzz/feedzztrab-cli/internal/models"
	"github.com/feedzz/feedzztrab-cli/internal/session"
)

type Action string

const (
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionAssign   Action = "assign"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
)

// Allowed returns the actions the permission table grants for this
// task. Any combination outside the table, admin included, gets nothing.
func Allowed(identity session.Identity, task models.Task) []Action {
	switch identity.Role {
	case models.RoleManager:
		if task.CreatedBy == identity.UserID && task.Status == models.StatusUnassigned {
			return []Action{ActionEdit, ActionDelete}
		}
	case models.RoleTeamLead:
		if task.Status == models.StatusUnassigned {
			return []Action{ActionAssign}
		}
	case models.RoleDeveloper:
		if !assignedTo(task, identity) {
			return nil
		}
		switch task.Status {
		case models.StatusAssigned:
			return []Action{ActionStart}
		case models.StatusInProgress:
			return []Action{ActionComplete}
		}
	}
	return nil
}

// Permits reports whether a single action is in the allowed set.
func Permits(identity session.Identity, task models.Task, action Action) bool {
	for _, a := range Allowed(identity, task) {
		if a == action {
			return true
		}
	}
	return false
}

// assignedTo matches the assigned-user fields against the identity by
// id or by name. Task records from some sources carry only one of the
// two representations, so both clauses are required.
func assignedTo(task models.Task, identity session.Identity) bool {
	if task.AssignedUserID != nil && *task.AssignedUserID == identity.UserID {
		return true
	}
	return task.AssignedUserName != "" && task.AssignedUserName == identity.Username
}

// Effect describes what performing an action does to the task.
type Effect struct {
	Action       Action
	NextStatus   models.Status
	AssignmentID int64
}

// EffectOf resolves the side effect an action triggers. Start and
// complete mutate the assignment record and therefore need its id.
func EffectOf(action Action, task models.Task) (Effect, error) {
	switch action {
	case ActionEdit, ActionDelete:
		return Effect{Action: action, NextStatus: task.Status}, nil
	case ActionAssign:
		return Effect{Action: action, NextStatus: models.StatusAssigned}, nil
	case ActionStart, ActionComplete:
		if task.AssignmentID == nil {
			return Effect{}, fmt.Errorf("a tarefa não está atribuída a nenhum utilizador")
		}
		next := models.StatusInProgress
		if action == ActionComplete {
			next = models.StatusCompleted
		}
		return Effect{Action: action, NextStatus: next, AssignmentID: *task.AssignmentID}, nil
	}
	return Effect{}, fmt.Errorf("ação desconhecida: %q", action)
}

// ValidateAssignment rejects an assign attempt locally, before any
// network call, when no developer was chosen or the chosen user is not
// a developer.
func ValidateAssignment(developerID int64, developers []models.User) error {
	if developerID == 0 {
		return fmt.Errorf("selecione um programador")
	}
	for _, u := range developers {
		if u.ID == developerID && u.Role == models.RoleDeveloper {
			return nil
		}
	}
	return fmt.Errorf("o utilizador %d não é um programador", developerID)
}
