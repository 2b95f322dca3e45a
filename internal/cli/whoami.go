package cli

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Показать текущую сессию",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession()
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Пользователь: %d\n", sess.ID)
			fmt.Fprintf(a.stdout, "Роль: %s (id роли %d)\n", sess.RoleType, sess.RoleID)

			// Токен разбирается без проверки подписи — только чтобы показать
			// срок действия. Подлинность токена подтверждает сервер.
			claims := jwt.MapClaims{}
			if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, claims); err == nil {
				if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
					fmt.Fprintf(a.stdout, "Токен действителен до: %s\n", exp.Time.Format(time.RFC3339))
				}
				if sub, err := claims.GetSubject(); err == nil && sub != "" {
					fmt.Fprintf(a.stdout, "Субъект токена: %s\n", sub)
				}
			}
			return nil
		},
	}
}
