package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/feedzz/feedzztrab-cli/internal/dashboard"
	"github.com/feedzz/feedzztrab-cli/internal/gate"
	"github.com/feedzz/feedzztrab-cli/internal/models"
	"github.com/feedzz/feedzztrab-cli/internal/session"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	countStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Faint(true)
	actionsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	// Same palette the mobile client uses per state.
	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusUnassigned: lipgloss.NewStyle().Foreground(lipgloss.Color("#757575")),
		models.StatusAssigned:   lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9800")),
		models.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
	}
)

func statusBadge(s models.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return s.Label()
	}
	return style.Render(s.Label())
}

func renderDashboard(w io.Writer, view dashboard.View) {
	switch {
	case view.Developer != nil:
		renderDeveloperDashboard(w, *view.Developer)
	case view.TeamLead != nil:
		renderTeamLeadDashboard(w, *view.TeamLead)
	case view.Manager != nil:
		renderManagerDashboard(w, *view.Manager)
	case view.Admin != nil:
		renderAdminDashboard(w, *view.Admin)
	}
}

func renderDeveloperDashboard(w io.Writer, view dashboard.DeveloperView) {
	fmt.Fprintln(w, headerStyle.Render("Minhas Tarefas Ativas"))
	if view.Total == 0 {
		fmt.Fprintln(w, "Não tem tarefas ativas de momento. Bom trabalho!")
		return
	}
	for _, t := range view.Visible {
		fmt.Fprintf(w, "  Tarefa #%d  %s  %s\n", t.ID, statusBadge(t.Status), truncate(t.Description, 70))
	}
	if view.Total > len(view.Visible) {
		fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf("... e mais %d tarefa(s)", view.Total-len(view.Visible))))
	}
	fmt.Fprintf(w, "Total de tarefas ativas: %s\n", countStyle.Render(fmt.Sprint(view.Total)))
}

func renderTeamLeadDashboard(w io.Writer, view dashboard.TeamLeadView) {
	fmt.Fprintln(w, headerStyle.Render("Tarefas por Atribuir"))
	fmt.Fprintf(w, "  %s tarefa(s) não atribuída(s)\n", countStyle.Render(fmt.Sprint(view.UnassignedCount)))
	fmt.Fprintln(w, headerStyle.Render("Programadores"))
	if view.DeveloperCount == 0 {
		fmt.Fprintln(w, "  Não há programadores no sistema.")
		return
	}
	fmt.Fprintf(w, "  %s programador(es) na equipa\n", countStyle.Render(fmt.Sprint(view.DeveloperCount)))
}

func renderManagerDashboard(w io.Writer, view dashboard.ManagerView) {
	fmt.Fprintln(w, headerStyle.Render("Resumo das Minhas Tarefas Criadas"))
	fmt.Fprintf(w, "  Total Criadas:      %d\n", view.Total)
	fmt.Fprintf(w, "  Não Atribuídas:     %d\n", view.Unassigned)
	fmt.Fprintf(w, "  Já Atribuídas:      %d\n", view.AlreadyAssigned)
	if view.AlreadyAssigned > 0 {
		fmt.Fprintf(w, "    A Aguardar Início: %d\n", view.AwaitingStart)
		fmt.Fprintf(w, "    Em Progresso:      %d\n", view.InProgress)
		fmt.Fprintf(w, "    Concluídas:        %d\n", view.Completed)
	}
}

func renderAdminDashboard(w io.Writer, view dashboard.AdminView) {
	fmt.Fprintln(w, headerStyle.Render("Utilizadores"))
	fmt.Fprintf(w, "  %s utilizador(es) no sistema\n", countStyle.Render(fmt.Sprint(view.UserCount)))
}

func renderTaskSections(w io.Writer, sections []dashboard.Section, identity session.Identity) {
	if len(sections) == 0 {
		fmt.Fprintln(w, "Não existem tarefas para apresentar.")
		return
	}
	for _, section := range sections {
		fmt.Fprintln(w, headerStyle.Render(section.Title))
		for _, t := range section.Tasks {
			fmt.Fprintf(w, "  Tarefa #%d  %s  %s\n", t.ID, statusBadge(t.Status), truncate(t.Description, 70))
			if t.AssignedUserName != "" {
				fmt.Fprintf(w, "    %s\n", subtleStyle.Render("Atribuída a: "+t.AssignedUserName))
			}
			if actions := gate.Allowed(identity, t); len(actions) > 0 {
				fmt.Fprintf(w, "    %s\n", actionsStyle.Render("ações: "+joinActions(actions)))
			}
		}
	}
}

func renderUsers(w io.Writer, users []models.User) {
	fmt.Fprintln(w, headerStyle.Render("Utilizadores"))
	for _, u := range users {
		fmt.Fprintf(w, "  #%-4d %-20s %-14s %s\n", u.ID, u.Username, u.Role, u.Email)
	}
}

func renderSkills(w io.Writer, skills []models.Skill) {
	fmt.Fprintln(w, headerStyle.Render("Competências"))
	for _, s := range skills {
		fmt.Fprintf(w, "  - %s\n", s.Name)
	}
}

func joinActions(actions []gate.Action) string {
	out := ""
	for i, a := range actions {
		if i > 0 {
			out += ", "
		}
		out += string(a)
	}
	return out
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
