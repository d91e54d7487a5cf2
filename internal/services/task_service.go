package services

import (
	"fmt"

	"github.com/feedzz/feedzztrab-cli/internal/client"
	"github.com/feedzz/feedzztrab-cli/internal/models"
)

type TaskService struct {
	api *client.Client
}

func NewTaskService(api *client.Client) *TaskService {
	return &TaskService{api: api}
}

func (s *TaskService) List() ([]models.Task, error) {
	var tasks []models.Task
	if err := s.api.Get("/tarefas", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

type createTaskRequest struct {
	Description string        `json:"descricao"`
	Status      models.Status `json:"estado"`
}

type updateTaskRequest struct {
	Description string `json:"descricao"`
}

// Create posts a new task. New tasks always start unassigned.
func (s *TaskService) Create(description string) (*models.Task, error) {
	var task models.Task
	req := createTaskRequest{Description: description, Status: models.StatusUnassigned}
	if err := s.api.Post("/tarefas", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Update(taskID int64, description string) error {
	return s.api.Put(fmt.Sprintf("/tarefas/%d", taskID), updateTaskRequest{Description: description}, nil)
}

func (s *TaskService) Delete(taskID int64) error {
	return s.api.Delete(fmt.Sprintf("/tarefas/%d", taskID))
}
