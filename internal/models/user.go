package models

// Role determines which dashboard a user sees and which task actions
// are open to them.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "gerente"
	RoleTeamLead  Role = "lider_equipa"
	RoleDeveloper Role = "programador"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTeamLead, RoleDeveloper:
		return true
	}
	return false
}

type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"nome_utilizador"`
	Email     string   `json:"email"`
	Role      Role     `json:"funcao"`
	CreatedAt WireTime `json:"criado_em"`
}

// Skill is one entry in a developer's competency list. The list is
// append-only on the client side.
type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}
