package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/feedzz/feedzztrab-cli/internal/client"
	"github.com/feedzz/feedzztrab-cli/internal/models"
)

type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

func newTestAPI(t *testing.T, status int, response string) (*client.Client, *recordedRequest) {
	t.Helper()
	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.method = r.Method
		recorded.path = r.URL.Path
		recorded.body = nil
		if r.Body != nil {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				recorded.body = body
			}
		}
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return client.New(server.URL, 2*time.Second, func() string { return "tok" }, nil), recorded
}

func TestLoginSendsCredentialsAndReturnsToken(t *testing.T) {
	api, recorded := newTestAPI(t, 200, `{"token":"jwt-token"}`)
	auth := NewAuthService(api)

	token, err := auth.Login("marta", "Segura1!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "jwt-token" {
		t.Fatalf("expected token, got %q", token)
	}
	if recorded.method != "POST" || recorded.path != "/utilizadores/login" {
		t.Fatalf("unexpected request: %s %s", recorded.method, recorded.path)
	}
	if recorded.body["nome_utilizador"] != "marta" || recorded.body["palavra_passe"] != "Segura1!" {
		t.Fatalf("unexpected login body: %v", recorded.body)
	}
}

func TestLoginWithoutTokenFails(t *testing.T) {
	api, _ := newTestAPI(t, 200, `{}`)
	auth := NewAuthService(api)
	if _, err := auth.Login("marta", "Segura1!"); err == nil {
		t.Fatalf("expected error when no token is returned")
	}
}

func TestCreateTaskAlwaysStartsUnassigned(t *testing.T) {
	api, recorded := newTestAPI(t, 201, `{"id": 7, "descricao": "Fix bug", "estado": "nao_atribuida", "criado_por": 1}`)
	tasks := NewTaskService(api)

	task, err := tasks.Create("Fix bug")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if recorded.method != "POST" || recorded.path != "/tarefas" {
		t.Fatalf("unexpected request: %s %s", recorded.method, recorded.path)
	}
	if recorded.body["estado"] != "nao_atribuida" {
		t.Fatalf("new tasks must start unassigned, body: %v", recorded.body)
	}
	if task.ID != 7 || task.Status != models.StatusUnassigned {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestUpdateAndDeleteTaskPaths(t *testing.T) {
	api, recorded := newTestAPI(t, 200, `{}`)
	tasks := NewTaskService(api)

	if err := tasks.Update(7, "Nova descrição"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if recorded.method != "PUT" || recorded.path != "/tarefas/7" {
		t.Fatalf("unexpected request: %s %s", recorded.method, recorded.path)
	}
	if recorded.body["descricao"] != "Nova descrição" {
		t.Fatalf("unexpected update body: %v", recorded.body)
	}

	if err := tasks.Delete(7); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if recorded.method != "DELETE" || recorded.path != "/tarefas/7" {
		t.Fatalf("unexpected request: %s %s", recorded.method, recorded.path)
	}
}

func TestAssignPostsLinkRecord(t *testing.T) {
	api, recorded := newTestAPI(t, 201, `{"id": 11, "tarefa_id": 7, "atribuido_a": 3}`)
	assignments := NewAssignmentService(api)

	assignment, err := assignments.Assign(7, 3)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if recorded.method != "POST" || recorded.path != "/atribuicoes" {
		t.Fatalf("unexpected request: %s %s", recorded.method, recorded.path)
	}
	if recorded.body["tarefa_id"] != float64(7) || recorded.body["atribuido_a"] != float64(3) {
		t.Fatalf("unexpected assign body: %v", recorded.body)
	}
	if assignment.ID != 11 || assignment.TaskID != 7 || assignment.AssignedTo != 3 {
		t.Fatalf("unexpected assignment: %+v", assignment)
	}
}

func TestStartAndCompletePatchAssignment(t *testing.T) {
	api, recorded := newTestAPI(t, 200, `{}`)
	assignments := NewAssignmentService(api)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	if err := assignments.Start(11, now); err != nil {
		t.Fatalf("start: %v", err)
	}
	if recorded.method != "PATCH" || recorded.path != "/atribuicoes/11" {
		t.Fatalf("unexpected request: %s %s", recorded.method, recorded.path)
	}
	if recorded.body["inicio"] != "2025-06-01T10:00:00Z" {
		t.Fatalf("unexpected start body: %v", recorded.body)
	}
	if _, ok := recorded.body["fim"]; ok {
		t.Fatalf("start must not send fim")
	}

	if err := assignments.Complete(11, now); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if recorded.body["fim"] != "2025-06-01T10:00:00Z" {
		t.Fatalf("unexpected complete body: %v", recorded.body)
	}
	if _, ok := recorded.body["inicio"]; ok {
		t.Fatalf("complete must not send inicio")
	}
}

func TestChangePasswordPathAndBody(t *testing.T) {
	api, recorded := newTestAPI(t, 200, `{}`)
	users := NewUserService(api)

	if err := users.ChangePassword(3, "Antiga1!", "Nova1!aa"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if recorded.method != "PATCH" || recorded.path != "/utilizadores/3/palavra_passe" {
		t.Fatalf("unexpected request: %s %s", recorded.method, recorded.path)
	}
	if recorded.body["palavra_passe_atual"] != "Antiga1!" || recorded.body["nova_palavra_passe"] != "Nova1!aa" {
		t.Fatalf("unexpected body: %v", recorded.body)
	}
}

func TestSkillEndpoints(t *testing.T) {
	api, recorded := newTestAPI(t, 200, `[{"id": 1, "nome": "Go"}]`)
	users := NewUserService(api)

	skills, err := users.Skills(3)
	if err != nil {
		t.Fatalf("skills: %v", err)
	}
	if recorded.method != "GET" || recorded.path != "/utilizadores/3/competencias" {
		t.Fatalf("unexpected request: %s %s", recorded.method, recorded.path)
	}
	if len(skills) != 1 || skills[0].Name != "Go" {
		t.Fatalf("unexpected skills: %+v", skills)
	}
}

func TestAddSkillBody(t *testing.T) {
	api, recorded := newTestAPI(t, 201, `{"id": 2, "nome": "SQL"}`)
	users := NewUserService(api)

	skill, err := users.AddSkill(3, "SQL")
	if err != nil {
		t.Fatalf("add skill: %v", err)
	}
	if recorded.method != "POST" || recorded.path != "/utilizadores/3/competencias" {
		t.Fatalf("unexpected request: %s %s", recorded.method, recorded.path)
	}
	if recorded.body["competencia"] != "SQL" {
		t.Fatalf("unexpected body: %v", recorded.body)
	}
	if skill.Name != "SQL" {
		t.Fatalf("unexpected skill: %+v", skill)
	}
}

func TestListTasksParsesWireFormat(t *testing.T) {
	api, _ := newTestAPI(t, 200, `[
		{"id": 7, "descricao": "Fix bug", "estado": "atribuida",
		 "criado_em": "2025-06-01 10:00:00", "criado_por": 1,
		 "utilizador_atribuido_id": 3, "utilizador_atribuido_nome": "diana",
		 "atribuicao_id": 11}
	]`)
	tasks := NewTaskService(api)

	list, err := tasks.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 task, got %d", len(list))
	}
	task := list[0]
	if task.Status != models.StatusAssigned {
		t.Fatalf("expected atribuida, got %s", task.Status)
	}
	if task.AssignedUserID == nil || *task.AssignedUserID != 3 {
		t.Fatalf("expected assigned user 3, got %v", task.AssignedUserID)
	}
	if task.AssignmentID == nil || *task.AssignmentID != 11 {
		t.Fatalf("expected assignment 11, got %v", task.AssignmentID)
	}
	if task.CreatedAt.IsZero() {
		t.Fatalf("expected criado_em to parse")
	}
}
