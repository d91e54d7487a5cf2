package services

import (
	"fmt"

	"github.com/feedzz/feedzztrab-cli/internal/client"
	"github.com/feedzz/feedzztrab-cli/internal/models"
)

type UserService struct {
	api *client.Client
}

func NewUserService(api *client.Client) *UserService {
	return &UserService{api: api}
}

// UserInput carries the writable user fields for create and update.
type UserInput struct {
	Username string      `json:"nome_utilizador"`
	Email    string      `json:"email"`
	Role     models.Role `json:"funcao"`
	Password string      `json:"palavra_passe,omitempty"`
}

type changePasswordRequest struct {
	Current string `json:"palavra_passe_atual"`
	New     string `json:"nova_palavra_passe"`
}

type addSkillRequest struct {
	Skill string `json:"competencia"`
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.api.Get("/utilizadores", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(userID int64) (*models.User, error) {
	var user models.User
	if err := s.api.Get(fmt.Sprintf("/utilizadores/%d", userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Create(input UserInput) (*models.User, error) {
	var user models.User
	if err := s.api.Post("/utilizadores", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(userID int64, input UserInput) error {
	return s.api.Put(fmt.Sprintf("/utilizadores/%d", userID), input, nil)
}

func (s *UserService) Delete(userID int64) error {
	return s.api.Delete(fmt.Sprintf("/utilizadores/%d", userID))
}

func (s *UserService) ChangePassword(userID int64, current, updated string) error {
	req := changePasswordRequest{Current: current, New: updated}
	return s.api.Patch(fmt.Sprintf("/utilizadores/%d/palavra_passe", userID), req, nil)
}

func (s *UserService) Skills(userID int64) ([]models.Skill, error) {
	var skills []models.Skill
	if err := s.api.Get(fmt.Sprintf("/utilizadores/%d/competencias", userID), &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (s *UserService) AddSkill(userID int64, name string) (*models.Skill, error) {
	var skill models.Skill
	if err := s.api.Post(fmt.Sprintf("/utilizadores/%d/competencias", userID), addSkillRequest{Skill: name}, &skill); err != nil {
		return nil, err
	}
	return &skill, nil
}
