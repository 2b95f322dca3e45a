package cli

import (
	"github.com/spf13/cobra"
)

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Выйти из системы",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			if err := a.sessions.Logout(); err != nil {
				return err
			}
			printSuccess(a.stdout, "Вы вышли из системы. Локальные данные сессии удалены.")
			return nil
		},
	}
}
