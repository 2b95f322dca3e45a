package cli

import (
	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Создать учётную запись",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if name == "" {
				if name, err = a.readLine("Полное имя: "); err != nil {
					return err
				}
			}
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

			if err := a.client.Register(cmd.Context(), name, email, password); err != nil {
				return err
			}

			printSuccess(a.stdout, "Регистрация прошла успешно. Теперь вы можете войти: ravd login")
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "полное имя")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "пароль (без флага запрашивается скрытым вводом)")
	return cmd
}
