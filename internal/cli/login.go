package cli

import (
	"github.com/spf13/cobra"

	"github.com/ignatzorin/ravd-cli/internal/api"
	"github.com/ignatzorin/ravd-cli/internal/guard"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Войти в систему",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = a.readLine("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.readPassword("Пароль: "); err != nil {
					return err
				}
			}

			sess, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := a.sessions.Login(sess); err != nil {
				return err
			}

			printSuccess(a.stdout, "Вход выполнен.")

			// Навигация после входа: администратор сразу попадает на список
			// обращений, остальные — в главное меню.
			switch guard.RouteAfterLogin(sess) {
			case guard.ViewReports:
				reports, err := a.client.ListReports(cmd.Context(), sess, api.FilterAll)
				if err != nil {
					return err
				}
				renderReports(a.stdout, reports)
			default:
				renderMenu(a.stdout, sess)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "email пользователя")
	cmd.Flags().StringVarP(&password, "password", "p", "", "пароль (без флага запрашивается скрытым вводом)")
	return cmd
}
