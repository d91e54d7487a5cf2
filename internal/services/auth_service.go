package services

import (
	"fmt"

	"github.com/feedzz/feedzztrab-cli/internal/client"
)

type AuthService struct {
	api *client.Client
}

func NewAuthService(api *client.Client) *AuthService {
	return &AuthService{api: api}
}

type loginRequest struct {
	Username string `json:"nome_utilizador"`
	Password string `json:"palavra_passe"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a JWT. The token is returned raw;
// decoding and persistence are the session store's job.
func (s *AuthService) Login(username, password string) (string, error) {
	var resp loginResponse
	if err := s.api.Post("/utilizadores/login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: token não recebido na resposta do servidor")
	}
	return resp.Token, nil
}
