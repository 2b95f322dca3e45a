package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ignatzorin/ravd-cli/internal/models"
)

// Стили вывода. Цвета статусов повторяют привычную раскраску веб-версии:
// жёлтый — ожидает, зелёный — одобрено, красный — отклонено.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	labelStyle   = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	badgePending  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")).Padding(0, 1)
	badgeAproved  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")).Padding(0, 1)
	badgeRejected = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("124")).Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// statusLabel переводит серверный статус в подпись для пользователя.
func statusLabel(status string) string {
	switch status {
	case models.ReportStatusPending:
		return "Ожидает"
	case models.ReportStatusAproved:
		return "Одобрено"
	case models.ReportStatusRejected:
		return "Отклонено"
	default:
		return "Без статуса"
	}
}

// statusBadge рисует цветную плашку статуса.
func statusBadge(status string) string {
	label := statusLabel(status)
	switch status {
	case models.ReportStatusPending:
		return badgePending.Render(label)
	case models.ReportStatusAproved:
		return badgeAproved.Render(label)
	case models.ReportStatusRejected:
		return badgeRejected.Render(label)
	default:
		return labelStyle.Render(label)
	}
}

// renderReports выводит список обращений в порядке, полученном от сервера.
func renderReports(w io.Writer, reports []models.Report) {
	if len(reports) == 0 {
		fmt.Fprintln(w, labelStyle.Render("По этому фильтру обращений не найдено."))
		return
	}

	for _, r := range reports {
		body := fmt.Sprintf(
			"%s  %s\n%s %s\n%s %s\n%s %s",
			titleStyle.Render(fmt.Sprintf("#%d %s", r.ID, r.Title)),
			statusBadge(r.Status),
			labelStyle.Render("Категория:"), r.Category,
			labelStyle.Render("Описание:"), r.Description,
			labelStyle.Render("Место:"), r.Location,
		)
		fmt.Fprintln(w, cardStyle.Render(body))
	}
}

// renderMenu показывает главное меню — набор доступных действий
// для обычного пользователя.
func renderMenu(w io.Writer, sess models.Session) {
	fmt.Fprintln(w, titleStyle.Render("Главное меню RAVD"))
	fmt.Fprintln(w, "  ravd reports list      — мои обращения")
	fmt.Fprintln(w, "  ravd reports create    — подать обращение")
	if sess.IsAdmin() {
		fmt.Fprintln(w, "  ravd reports approve   — одобрить обращение")
		fmt.Fprintln(w, "  ravd reports reject    — отклонить обращение")
	}
	fmt.Fprintln(w, "  ravd logout            — выйти из системы")
}

func printSuccess(w io.Writer, message string) {
	fmt.Fprintln(w, successStyle.Render(message))
}

func printError(w io.Writer, message string) {
	fmt.Fprintln(w, errorStyle.Render(message))
}
