package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/feedzz/feedzztrab-cli/internal/dashboard"
	"github.com/feedzz/feedzztrab-cli/internal/gate"
	"github.com/feedzz/feedzztrab-cli/internal/journal"
	"github.com/feedzz/feedzztrab-cli/internal/models"
	"github.com/feedzz/feedzztrab-cli/internal/services"
	"github.com/feedzz/feedzztrab-cli/internal/session"
	"github.com/feedzz/feedzztrab-cli/internal/validate"
)

type app struct {
	out         io.Writer
	store       *session.Store
	auth        *services.AuthService
	tasks       *services.TaskService
	users       *services.UserService
	assignments *services.AssignmentService
	journal     *journal.Journal
	logger      *slog.Logger
	now         func() time.Time
}

const usage = `uso: feedzztrab <comando>

  login <utilizador> <palavra-passe>   iniciar sessão
  logout                               terminar sessão
  whoami                               mostrar a sessão atual
  dashboard                            dashboard da função
  tasks                                listar tarefas por estado
  task create <descrição>              criar tarefa (gerente)
  task edit <id> <descrição>           editar tarefa (gerente)
  task delete <id>                     eliminar tarefa (gerente)
  assign <tarefa> <programador>        atribuir tarefa (líder de equipa)
  start <tarefa>                       iniciar tarefa (programador)
  complete <tarefa>                    concluir tarefa (programador)
  users                                listar utilizadores
  user create|edit|delete              gerir utilizadores (admin)
  passwd <atual> <nova>                alterar a palavra-passe
  skills <utilizador>                  listar competências
  skill add <utilizador> <nome>        adicionar competência
  journal                              ações registadas localmente`

func (a *app) run(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return nil
	}

	switch args[0] {
	case "login":
		return a.cmdLogin(args[1:])
	case "logout":
		return a.cmdLogout()
	case "whoami":
		return a.cmdWhoami()
	case "dashboard":
		return a.cmdDashboard()
	case "tasks":
		return a.cmdTasks()
	case "task":
		return a.cmdTask(args[1:])
	case "assign":
		return a.cmdAssign(args[1:])
	case "start":
		return a.cmdProgress(args[1:], gate.ActionStart)
	case "complete":
		return a.cmdProgress(args[1:], gate.ActionComplete)
	case "users":
		return a.cmdUsers()
	case "user":
		return a.cmdUser(args[1:])
	case "passwd":
		return a.cmdPasswd(args[1:])
	case "skills":
		return a.cmdSkills(args[1:])
	case "skill":
		return a.cmdSkill(args[1:])
	case "journal":
		return a.cmdJournal()
	}
	return fmt.Errorf("comando desconhecido: %q\n\n%s", args[0], usage)
}

func (a *app) identity() (session.Identity, error) {
	identity, ok := a.store.Identity()
	if !ok {
		return session.Identity{}, fmt.Errorf("sessão não iniciada; use 'feedzztrab login'")
	}
	return identity, nil
}

// record is best effort: a journal failure never blocks the operation
// it describes.
func (a *app) record(action, detail string) {
	actor := "anónimo"
	if identity, ok := a.store.Identity(); ok {
		actor = identity.Username
	}
	if err := a.journal.Record(actor, action, detail); err != nil {
		a.logger.Warn("journal write failed", "action", action, "error", err)
	}
}

func (a *app) cmdLogin(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("uso: feedzztrab login <utilizador> <palavra-passe>")
	}
	username, password := args[0], args[1]
	if err := validate.Username(username); err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("a palavra-passe é obrigatória")
	}

	token, err := a.auth.Login(username, password)
	if err != nil {
		// Login failure leaves the store anonymous.
		_ = a.store.Clear()
		return err
	}

	identity, err := a.store.SaveToken(token, a.now())
	if err != nil {
		return err
	}
	a.record("login", "")
	fmt.Fprintf(a.out, "Bem-vindo(a) de volta, %s!\n", identity.Username)
	return nil
}

func (a *app) cmdLogout() error {
	a.record("logout", "")
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Sessão terminada.")
	return nil
}

func (a *app) cmdWhoami() error {
	identity, err := a.identity()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (#%d) %s\n", identity.Username, identity.UserID, identity.Role)
	if !identity.Expiry.IsZero() {
		fmt.Fprintf(a.out, "Sessão expira em %s\n", identity.Expiry.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func (a *app) cmdDashboard() error {
	identity, err := a.identity()
	if err != nil {
		return err
	}
	loader := dashboard.NewLoader(a.tasks, a.users, a.logger)
	view, err := loader.Load(identity)
	if err != nil {
		return err
	}
	renderDashboard(a.out, view)
	return nil
}

func (a *app) cmdTasks() error {
	identity, err := a.identity()
	if err != nil {
		return err
	}
	tasks, err := a.tasks.List()
	if err != nil {
		return fmt.Errorf("não foi possível carregar as tarefas: %w", err)
	}
	renderTaskSections(a.out, dashboard.GroupByStatus(tasks), identity)
	return nil
}

func (a *app) cmdTask(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: feedzztrab task create|edit|delete")
	}
	identity, err := a.identity()
	if err != nil {
		return err
	}

	switch args[0] {
	case "create":
		if len(args) != 2 {
			return fmt.Errorf("uso: feedzztrab task create <descrição>")
		}
		if identity.Role != models.RoleManager {
			return fmt.Errorf("apenas gerentes podem criar tarefas")
		}
		if err := validate.Description(args[1]); err != nil {
			return err
		}
		task, err := a.tasks.Create(args[1])
		if err != nil {
			return fmt.Errorf("não foi possível criar a tarefa: %w", err)
		}
		a.record("task_created", fmt.Sprintf("tarefa #%d", task.ID))
		fmt.Fprintf(a.out, "Tarefa #%d criada.\n", task.ID)
		return nil

	case "edit":
		if len(args) != 3 {
			return fmt.Errorf("uso: feedzztrab task edit <id> <descrição>")
		}
		taskID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := validate.Description(args[2]); err != nil {
			return err
		}
		task, err := a.findTask(taskID)
		if err != nil {
			return err
		}
		if !gate.Permits(identity, *task, gate.ActionEdit) {
			return fmt.Errorf("não pode editar a tarefa #%d", taskID)
		}
		if err := a.tasks.Update(taskID, args[2]); err != nil {
			return fmt.Errorf("não foi possível atualizar a tarefa: %w", err)
		}
		a.record("task_updated", fmt.Sprintf("tarefa #%d", taskID))
		fmt.Fprintf(a.out, "Tarefa #%d atualizada.\n", taskID)
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("uso: feedzztrab task delete <id>")
		}
		taskID, err := parseID(args[1])
		if err != nil {
			return err
		}
		task, err := a.findTask(taskID)
		if err != nil {
			return err
		}
		if !gate.Permits(identity, *task, gate.ActionDelete) {
			return fmt.Errorf("não pode eliminar a tarefa #%d", taskID)
		}
		if err := a.tasks.Delete(taskID); err != nil {
			return fmt.Errorf("não foi possível eliminar a tarefa: %w", err)
		}
		a.record("task_deleted", fmt.Sprintf("tarefa #%d", taskID))
		fmt.Fprintf(a.out, "Tarefa #%d eliminada.\n", taskID)
		return nil
	}
	return fmt.Errorf("subcomando desconhecido: task %s", args[0])
}

func (a *app) cmdAssign(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("uso: feedzztrab assign <tarefa> <programador>")
	}
	identity, err := a.identity()
	if err != nil {
		return err
	}
	taskID, err := parseID(args[0])
	if err != nil {
		return err
	}
	developerID, err := parseID(args[1])
	if err != nil {
		return err
	}

	task, err := a.findTask(taskID)
	if err != nil {
		return err
	}
	if !gate.Permits(identity, *task, gate.ActionAssign) {
		return fmt.Errorf("não pode atribuir a tarefa #%d", taskID)
	}

	users, err := a.users.List()
	if err != nil {
		return fmt.Errorf("não foi possível carregar os programadores: %w", err)
	}
	if err := gate.ValidateAssignment(developerID, users); err != nil {
		return err
	}

	if skills, err := a.users.Skills(developerID); err == nil && len(skills) > 0 {
		renderSkills(a.out, skills)
	}

	assignment, err := a.assignments.Assign(taskID, developerID)
	if err != nil {
		return fmt.Errorf("não foi possível atribuir a tarefa: %w", err)
	}
	a.record("assignment_created", fmt.Sprintf("tarefa #%d -> utilizador #%d", taskID, developerID))
	fmt.Fprintf(a.out, "Tarefa #%d atribuída (atribuição #%d).\n", taskID, assignment.ID)
	return nil
}

func (a *app) cmdProgress(args []string, action gate.Action) error {
	if len(args) != 1 {
		return fmt.Errorf("uso: feedzztrab %s <tarefa>", action)
	}
	identity, err := a.identity()
	if err != nil {
		return err
	}
	taskID, err := parseID(args[0])
	if err != nil {
		return err
	}
	task, err := a.findTask(taskID)
	if err != nil {
		return err
	}
	if !gate.Permits(identity, *task, action) {
		return fmt.Errorf("não pode %s a tarefa #%d", progressVerb(action), taskID)
	}
	effect, err := gate.EffectOf(action, *task)
	if err != nil {
		return err
	}

	if action == gate.ActionStart {
		err = a.assignments.Start(effect.AssignmentID, a.now())
	} else {
		err = a.assignments.Complete(effect.AssignmentID, a.now())
	}
	if err != nil {
		return fmt.Errorf("não foi possível %s a tarefa: %w", progressVerb(action), err)
	}

	a.record("assignment_"+string(action), fmt.Sprintf("tarefa #%d", taskID))
	fmt.Fprintf(a.out, "Tarefa #%d agora está %s.\n", taskID, effect.NextStatus.Label())
	return nil
}

func progressVerb(action gate.Action) string {
	if action == gate.ActionComplete {
		return "concluir"
	}
	return "iniciar"
}

func (a *app) cmdUsers() error {
	if _, err := a.identity(); err != nil {
		return err
	}
	users, err := a.users.List()
	if err != nil {
		return fmt.Errorf("não foi possível carregar os utilizadores: %w", err)
	}
	renderUsers(a.out, users)
	return nil
}

func (a *app) cmdUser(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: feedzztrab user create|edit|delete")
	}
	identity, err := a.identity()
	if err != nil {
		return err
	}
	if identity.Role != models.RoleAdmin {
		return fmt.Errorf("apenas administradores podem gerir utilizadores")
	}

	switch args[0] {
	case "create":
		fs := flag.NewFlagSet("user create", flag.ContinueOnError)
		username := fs.String("username", "", "nome de utilizador")
		email := fs.String("email", "", "email")
		role := fs.String("role", "", "função")
		password := fs.String("password", "", "palavra-passe")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		input, err := buildUserInput(*username, *email, *role, *password, true)
		if err != nil {
			return err
		}
		user, err := a.users.Create(input)
		if err != nil {
			return fmt.Errorf("não foi possível criar o utilizador: %w", err)
		}
		a.record("user_created", fmt.Sprintf("utilizador #%d", user.ID))
		fmt.Fprintf(a.out, "Utilizador %s (#%d) criado.\n", user.Username, user.ID)
		return nil

	case "edit":
		fs := flag.NewFlagSet("user edit", flag.ContinueOnError)
		username := fs.String("username", "", "nome de utilizador")
		email := fs.String("email", "", "email")
		role := fs.String("role", "", "função")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("uso: feedzztrab user edit <id> [-username ...] [-email ...] [-role ...]")
		}
		userID, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		input, err := buildUserInput(*username, *email, *role, "", false)
		if err != nil {
			return err
		}
		if err := a.users.Update(userID, input); err != nil {
			return fmt.Errorf("não foi possível atualizar o utilizador: %w", err)
		}
		a.record("user_updated", fmt.Sprintf("utilizador #%d", userID))
		fmt.Fprintf(a.out, "Utilizador #%d atualizado.\n", userID)
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("uso: feedzztrab user delete <id>")
		}
		userID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := a.users.Delete(userID); err != nil {
			return fmt.Errorf("não foi possível eliminar o utilizador: %w", err)
		}
		a.record("user_deleted", fmt.Sprintf("utilizador #%d", userID))
		fmt.Fprintf(a.out, "Utilizador #%d eliminado.\n", userID)
		return nil
	}
	return fmt.Errorf("subcomando desconhecido: user %s", args[0])
}

func buildUserInput(username, email, role, password string, withPassword bool) (services.UserInput, error) {
	if err := validate.Username(username); err != nil {
		return services.UserInput{}, err
	}
	if err := validate.Email(email); err != nil {
		return services.UserInput{}, err
	}
	r := models.Role(role)
	if !r.Valid() {
		return services.UserInput{}, fmt.Errorf("função inválida: %q", role)
	}
	input := services.UserInput{Username: username, Email: email, Role: r}
	if withPassword {
		if err := validate.Password(password); err != nil {
			return services.UserInput{}, err
		}
		input.Password = password
	}
	return input, nil
}

func (a *app) cmdPasswd(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("uso: feedzztrab passwd <atual> <nova>")
	}
	identity, err := a.identity()
	if err != nil {
		return err
	}
	if err := validate.Password(args[1]); err != nil {
		return err
	}
	if err := a.users.ChangePassword(identity.UserID, args[0], args[1]); err != nil {
		return fmt.Errorf("não foi possível alterar a palavra-passe: %w", err)
	}
	a.record("password_changed", "")
	fmt.Fprintln(a.out, "Palavra-passe alterada com sucesso.")
	return nil
}

func (a *app) cmdSkills(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("uso: feedzztrab skills <utilizador>")
	}
	if _, err := a.identity(); err != nil {
		return err
	}
	userID, err := parseID(args[0])
	if err != nil {
		return err
	}
	skills, err := a.users.Skills(userID)
	if err != nil {
		return fmt.Errorf("não foi possível carregar as competências: %w", err)
	}
	if len(skills) == 0 {
		fmt.Fprintln(a.out, "Sem competências registadas.")
		return nil
	}
	renderSkills(a.out, skills)
	return nil
}

func (a *app) cmdSkill(args []string) error {
	if len(args) != 3 || args[0] != "add" {
		return fmt.Errorf("uso: feedzztrab skill add <utilizador> <nome>")
	}
	if _, err := a.identity(); err != nil {
		return err
	}
	userID, err := parseID(args[1])
	if err != nil {
		return err
	}
	if args[2] == "" {
		return fmt.Errorf("o nome da competência é obrigatório")
	}
	skill, err := a.users.AddSkill(userID, args[2])
	if err != nil {
		return fmt.Errorf("não foi possível adicionar a competência: %w", err)
	}
	a.record("skill_added", fmt.Sprintf("utilizador #%d: %s", userID, skill.Name))
	fmt.Fprintf(a.out, "Competência %q adicionada.\n", skill.Name)
	return nil
}

func (a *app) cmdJournal() error {
	entries, err := a.journal.Recent(50)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Sem ações registadas.")
		return nil
	}
	for _, e := range entries {
		detail := e.Detail
		if detail != "" {
			detail = " " + detail
		}
		fmt.Fprintf(a.out, "%s  %-22s %s%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Action, e.Actor, detail)
	}
	return nil
}

// findTask re-fetches the list and locates one task; the server copy is
// always authoritative.
func (a *app) findTask(taskID int64) (*models.Task, error) {
	tasks, err := a.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("não foi possível carregar as tarefas: %w", err)
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("tarefa #%d não encontrada", taskID)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("identificador inválido: %q", s)
	}
	return id, nil
}
