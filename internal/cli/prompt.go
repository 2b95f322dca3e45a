package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// readLine печатает приглашение и читает одну строку. Все приглашения
// читают из общего буфера приложения: команда может спрашивать несколько
// значений подряд, и перечитанный вперёд ввод не теряется между ними.
func (a *app) readLine(prompt string) (string, error) {
	fmt.Fprint(a.stdout, prompt)
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword читает пароль без эха, если ввод привязан к терминалу.
// В тестах и при перенаправленном вводе падает обратно на обычное чтение.
func (a *app) readPassword(prompt string) (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.stdout, prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stdout)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return a.readLine(prompt)
}

// confirm задаёт вопрос и принимает только явное «y» как согласие.
func (a *app) confirm(question string) bool {
	answer, err := a.readLine(question + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
