package services

import (
	"fmt"
	"time"

	"github.com/feedzz/feedzztrab-cli/internal/client"
	"github.com/feedzz/feedzztrab-cli/internal/models"
)

type AssignmentService struct {
	api *client.Client
}

func NewAssignmentService(api *client.Client) *AssignmentService {
	return &AssignmentService{api: api}
}

type assignRequest struct {
	TaskID     int64 `json:"tarefa_id"`
	AssignedTo int64 `json:"atribuido_a"`
}

type startRequest struct {
	StartedAt string `json:"inicio"`
}

type completeRequest struct {
	CompletedAt string `json:"fim"`
}

// Assign creates the assignment record linking a task to a developer.
// The backend moves the task to atribuida as a side effect.
func (s *AssignmentService) Assign(taskID, developerID int64) (*models.Assignment, error) {
	var assignment models.Assignment
	req := assignRequest{TaskID: taskID, AssignedTo: developerID}
	if err := s.api.Post("/atribuicoes", req, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Start stamps inicio on the assignment; the task becomes em_progresso.
func (s *AssignmentService) Start(assignmentID int64, now time.Time) error {
	req := startRequest{StartedAt: now.UTC().Format(time.RFC3339)}
	return s.api.Patch(fmt.Sprintf("/atribuicoes/%d", assignmentID), req, nil)
}

// Complete stamps fim on the assignment; the task becomes concluida.
func (s *AssignmentService) Complete(assignmentID int64, now time.Time) error {
	req := completeRequest{CompletedAt: now.UTC().Format(time.RFC3339)}
	return s.api.Patch(fmt.Sprintf("/atribuicoes/%d", assignmentID), req, nil)
}
