package gate

import (
	"testing"

	"github.com/feedzz/feedzztrab-cli/internal/models"
	"github.com/feedzz/feedzztrab-cli/internal/session"
)

func task(status models.Status, createdBy int64, assignedID *int64, assignedName string, assignmentID *int64) models.Task {
	return models.Task{
		ID:               7,
		Description:      "Fix bug",
		Status:           status,
		CreatedBy:        createdBy,
		AssignedUserID:   assignedID,
		AssignedUserName: assignedName,
		AssignmentID:     assignmentID,
	}
}

func id(v int64) *int64 { return &v }

func TestPermissionTable(t *testing.T) {
	manager := session.Identity{UserID: 1, Username: "marta", Role: models.RoleManager}
	lead := session.Identity{UserID: 2, Username: "luis", Role: models.RoleTeamLead}
	dev := session.Identity{UserID: 3, Username: "diana", Role: models.RoleDeveloper}
	admin := session.Identity{UserID: 4, Username: "ana", Role: models.RoleAdmin}

	cases := []struct {
		name     string
		identity session.Identity
		task     models.Task
		want     []Action
	}{
		{"manager edits own unassigned", manager, task(models.StatusUnassigned, 1, nil, "", nil), []Action{ActionEdit, ActionDelete}},
		{"manager cannot touch someone else's task", manager, task(models.StatusUnassigned, 9, nil, "", nil), nil},
		{"manager cannot touch assigned task", manager, task(models.StatusAssigned, 1, id(3), "", id(11)), nil},
		{"team lead assigns any unassigned", lead, task(models.StatusUnassigned, 9, nil, "", nil), []Action{ActionAssign}},
		{"team lead cannot assign twice", lead, task(models.StatusAssigned, 9, id(3), "", id(11)), nil},
		{"developer starts own assigned", dev, task(models.StatusAssigned, 1, id(3), "", id(11)), []Action{ActionStart}},
		{"developer completes own in-progress", dev, task(models.StatusInProgress, 1, id(3), "", id(11)), []Action{ActionComplete}},
		{"developer cannot restart completed", dev, task(models.StatusCompleted, 1, id(3), "", id(11)), nil},
		{"developer cannot start someone else's", dev, task(models.StatusAssigned, 1, id(8), "outro", id(11)), nil},
		{"admin never acts on tasks", admin, task(models.StatusUnassigned, 4, nil, "", nil), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Allowed(tc.identity, tc.task)
			if len(got) != len(tc.want) {
				t.Fatalf("Allowed = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("Allowed = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestAdminNeverGetsActionsForAnyStatus(t *testing.T) {
	admin := session.Identity{UserID: 4, Username: "ana", Role: models.RoleAdmin}
	statuses := []models.Status{
		models.StatusUnassigned, models.StatusAssigned,
		models.StatusInProgress, models.StatusCompleted,
	}
	for _, status := range statuses {
		tk := task(status, 4, id(4), "ana", id(11))
		if got := Allowed(admin, tk); len(got) != 0 {
			t.Fatalf("admin got actions %v for status %s", got, status)
		}
	}
}

func TestDeveloperMatchesByNameWhenIDMissing(t *testing.T) {
	dev := session.Identity{UserID: 3, Username: "diana", Role: models.RoleDeveloper}

	tk := task(models.StatusAssigned, 1, nil, "diana", id(11))
	if !Permits(dev, tk, ActionStart) {
		t.Fatalf("expected name-based match to permit start")
	}

	tk = task(models.StatusAssigned, 1, nil, "", id(11))
	if Permits(dev, tk, ActionStart) {
		t.Fatalf("empty assigned-user fields must not match")
	}
}

func TestTaskProgression(t *testing.T) {
	dev := session.Identity{UserID: 3, Username: "diana", Role: models.RoleDeveloper}

	tk := task(models.StatusAssigned, 1, id(3), "", id(11))
	if !Permits(dev, tk, ActionStart) {
		t.Fatalf("expected start to be permitted on assigned task")
	}
	effect, err := EffectOf(ActionStart, tk)
	if err != nil {
		t.Fatalf("effect of start: %v", err)
	}
	if effect.NextStatus != models.StatusInProgress {
		t.Fatalf("expected start to lead to em_progresso, got %s", effect.NextStatus)
	}
	if effect.AssignmentID != 11 {
		t.Fatalf("expected assignment id 11, got %d", effect.AssignmentID)
	}

	tk.Status = models.StatusInProgress
	effect, err = EffectOf(ActionComplete, tk)
	if err != nil {
		t.Fatalf("effect of complete: %v", err)
	}
	if effect.NextStatus != models.StatusCompleted {
		t.Fatalf("expected complete to lead to concluida, got %s", effect.NextStatus)
	}

	tk.Status = models.StatusCompleted
	if Permits(dev, tk, ActionStart) {
		t.Fatalf("start must be rejected after completion")
	}
}

func TestEffectRequiresAssignmentID(t *testing.T) {
	tk := task(models.StatusAssigned, 1, id(3), "", nil)
	if _, err := EffectOf(ActionStart, tk); err == nil {
		t.Fatalf("expected error when assignment id is missing")
	}
	if _, err := EffectOf(ActionComplete, tk); err == nil {
		t.Fatalf("expected error when assignment id is missing")
	}
}

func TestValidateAssignment(t *testing.T) {
	developers := []models.User{
		{ID: 3, Username: "diana", Role: models.RoleDeveloper},
		{ID: 5, Username: "marta", Role: models.RoleManager},
	}

	if err := ValidateAssignment(0, developers); err == nil {
		t.Fatalf("expected error when no developer is selected")
	}
	if err := ValidateAssignment(5, developers); err == nil {
		t.Fatalf("expected error when the chosen user is not a developer")
	}
	if err := ValidateAssignment(99, developers); err == nil {
		t.Fatalf("expected error when the chosen user does not exist")
	}
	if err := ValidateAssignment(3, developers); err != nil {
		t.Fatalf("expected valid selection, got %v", err)
	}
}
