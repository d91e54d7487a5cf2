package models

// Status is the lifecycle state of a task. The lifecycle only moves
// forward: nao_atribuida -> atribuida -> em_progresso -> concluida.
type Status string

const (
	StatusUnassigned Status = "nao_atribuida"
	StatusAssigned   Status = "atribuida"
	StatusInProgress Status = "em_progresso"
	StatusCompleted  Status = "concluida"
)

// Next returns the successor state. The second return is false for
// concluida and for unknown states.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusUnassigned:
		return StatusAssigned, true
	case StatusAssigned:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusCompleted, true
	}
	return "", false
}

// Label returns the display text both frontends use for a state.
func (s Status) Label() string {
	switch s {
	case StatusUnassigned:
		return "Não Atribuída"
	case StatusAssigned:
		return "Atribuída"
	case StatusInProgress:
		return "Em Progresso"
	case StatusCompleted:
		return "Concluída"
	}
	return string(s)
}

type Task struct {
	ID               int64    `json:"id"`
	Description      string   `json:"descricao"`
	Status           Status   `json:"estado"`
	CreatedAt        WireTime `json:"criado_em"`
	CreatedBy        int64    `json:"criado_por"`
	AssignedUserID   *int64   `json:"utilizador_atribuido_id"`
	AssignedUserName string   `json:"utilizador_atribuido_nome"`
	AssignmentID     *int64   `json:"atribuicao_id"`
}

// Assignment links a task to the developer performing it. Start and
// complete mutate this record, not the task itself.
type Assignment struct {
	ID          int64     `json:"id"`
	TaskID      int64     `json:"tarefa_id"`
	AssignedTo  int64     `json:"atribuido_a"`
	StartedAt   *WireTime `json:"inicio"`
	CompletedAt *WireTime `json:"fim"`
}
