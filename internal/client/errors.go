package client

import "fmt"

// APIError is the normalized form every failed call surfaces: a friendly
// message keyed by HTTP status plus whatever message the backend sent.
type APIError struct {
	StatusCode      int
	FriendlyMessage string
	APIMessage      string
	cause           error
}

func (e *APIError) Error() string {
	if e.APIMessage != "" {
		return e.FriendlyMessage + " - " + e.APIMessage
	}
	return e.FriendlyMessage
}

func (e *APIError) Unwrap() error { return e.cause }

func friendlyMessage(status int) string {
	switch status {
	case 400:
		return "Dados inválidos"
	case 401:
		return "Não autorizado"
	case 403:
		return "Acesso negado"
	case 404:
		return "Recurso não encontrado"
	case 500:
		return "Erro interno do servidor"
	}
	return fmt.Sprintf("Erro inesperado (código %d)", status)
}

// transportError wraps a failure that produced no HTTP response at all,
// timeouts included. These are never retried.
func transportError(err error) *APIError {
	return &APIError{
		FriendlyMessage: "Erro na comunicação com o servidor",
		cause:           err,
	}
}
