package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/ravd-cli/internal/api"
	"github.com/ignatzorin/ravd-cli/internal/dto"
	"github.com/ignatzorin/ravd-cli/internal/geo"
	"github.com/ignatzorin/ravd-cli/internal/logger"
	"github.com/ignatzorin/ravd-cli/internal/models"
	"github.com/ignatzorin/ravd-cli/internal/pkg/apperror"
)

func newReportsCmd(a *app) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Просмотр и управление обращениями",
	}
	cmd.PersistentFlags().StringVarP(&filter, "filter", "f", api.FilterAll,
		"фильтр статуса: all, pending, aproved или rejected")

	cmd.AddCommand(
		newReportsListCmd(a, &filter),
		newReportsCreateCmd(a, &filter),
		newReportsEditCmd(a, &filter),
		newReportsDeleteCmd(a, &filter),
		newReportsApproveCmd(a, &filter),
		newReportsRejectCmd(a, &filter),
	)
	return cmd
}

// refreshList перечитывает список с текущим фильтром. Клиент не делает
// оптимистичных локальных правок: после каждой мутации список запрашивается
// заново, сервер — единственный источник истины.
func (a *app) refreshList(ctx context.Context, sess models.Session, filter string) error {
	reports, err := a.client.ListReports(ctx, sess, filter)
	if err != nil {
		return err
	}
	renderReports(a.stdout, reports)
	return nil
}

// findReport ищет обращение по идентификатору среди доступных вызывающему.
func (a *app) findReport(ctx context.Context, sess models.Session, id int64) (*models.Report, error) {
	reports, err := a.client.ListReports(ctx, sess, api.FilterAll)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		if reports[i].ID == id {
			return &reports[i], nil
		}
	}
	return nil, apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("обращение #%d не найдено", id))
}

func newReportsListCmd(a *app, filter *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Показать обращения",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession()
			if err != nil {
				return err
			}
			return a.refreshList(cmd.Context(), sess, *filter)
		},
	}
}

func newReportsCreateCmd(a *app, filter *string) *cobra.Command {
	var title, category, description, location string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Подать новое обращение",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession()
			if err != nil {
				return err
			}

			// Геолокация запускается сразу и работает, пока пользователь
			// заполняет форму. Если место указано явно или форма прервана,
			// контекст отменяется и результат поиска отбрасывается.
			lookupCtx, cancelLookup := context.WithCancel(cmd.Context())
			defer cancelLookup()
			locCh := make(chan string, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						logger.L().Errorf("cli: паника в геолокации: %v", r)
						// Канал обязан получить значение: форма ждёт его
						// и не должна зависнуть из-за сбоя резолвера.
						locCh <- geo.UnknownLocation
					}
				}()
				locCh <- a.resolver.Resolve(lookupCtx)
			}()

			if title == "" {
				if title, err = a.readLine("Заголовок: "); err != nil {
					return err
				}
			}
			if category == "" {
				prompt := fmt.Sprintf("Категория (%s): ", strings.Join(models.Categories, ", "))
				if category, err = a.readLine(prompt); err != nil {
					return err
				}
			}
			if description == "" {
				if description, err = a.readLine("Описание: "); err != nil {
					return err
				}
			}

			if location == "" {
				location = <-locCh
			} else {
				cancelLookup()
			}

			req := dto.CreateReportRequest{
				UserID:      sess.ID,
				Title:       title,
				Category:    category,
				Description: description,
				Location:    location,
			}
			if err := a.client.CreateReport(cmd.Context(), req); err != nil {
				return err
			}

			printSuccess(a.stdout, "Обращение отправлено.")
			return a.refreshList(cmd.Context(), sess, *filter)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "заголовок обращения")
	cmd.Flags().StringVarP(&category, "category", "c", "", "категория из закрытого набора")
	cmd.Flags().StringVarP(&description, "description", "d", "", "подробное описание")
	cmd.Flags().StringVarP(&location, "location", "l", "", "место (без флага определяется по IP)")
	return cmd
}

func newReportsEditCmd(a *app, filter *string) *cobra.Command {
	var id int64
	var title, category, description, location string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Изменить своё обращение",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession()
			if err != nil {
				return err
			}

			// Незатронутые флаги предзаполняются текущими значениями,
			// как это делает форма редактирования.
			current, err := a.findReport(cmd.Context(), sess, id)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("title") {
				title = current.Title
			}
			if !cmd.Flags().Changed("category") {
				category = current.Category
			}
			if !cmd.Flags().Changed("description") {
				description = current.Description
			}
			if !cmd.Flags().Changed("location") {
				location = current.Location
			}

			req := dto.UpdateReportRequest{
				UserID:      sess.ID,
				Title:       title,
				Category:    category,
				Description: description,
				Location:    location,
			}
			if err := a.client.UpdateReport(cmd.Context(), id, req); err != nil {
				return err
			}

			printSuccess(a.stdout, "Обращение обновлено.")
			return a.refreshList(cmd.Context(), sess, *filter)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "идентификатор обращения")
	cmd.Flags().StringVarP(&title, "title", "t", "", "новый заголовок")
	cmd.Flags().StringVarP(&category, "category", "c", "", "новая категория")
	cmd.Flags().StringVarP(&description, "description", "d", "", "новое описание")
	cmd.Flags().StringVarP(&location, "location", "l", "", "новое место")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newReportsDeleteCmd(a *app, filter *string) *cobra.Command {
	var id int64
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Удалить своё обращение",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession()
			if err != nil {
				return err
			}

			// Удаление необратимо, поэтому без --yes требуется явное
			// подтверждение.
			if !yes && !a.confirm(fmt.Sprintf("Удалить обращение #%d?", id)) {
				fmt.Fprintln(a.stdout, "Отменено.")
				return nil
			}

			if err := a.client.DeleteReport(cmd.Context(), id); err != nil {
				return err
			}

			printSuccess(a.stdout, "Обращение удалено.")
			return a.refreshList(cmd.Context(), sess, *filter)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "идентификатор обращения")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "не спрашивать подтверждение")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newReportsApproveCmd(a *app, filter *string) *cobra.Command {
	return newStatusCmd(a, filter, "approve", "Одобрить обращение",
		models.ReportStatusAproved, "Обращение одобрено.",
		func(ctx context.Context, id int64) error { return a.client.ApproveReport(ctx, id) })
}

func newReportsRejectCmd(a *app, filter *string) *cobra.Command {
	return newStatusCmd(a, filter, "reject", "Отклонить обращение",
		models.ReportStatusRejected, "Обращение отклонено.",
		func(ctx context.Context, id int64) error { return a.client.RejectReport(ctx, id) })
}

// newStatusCmd строит команду смены статуса. Если известный статус уже
// совпадает с целевым, действие не выполняется — это защита интерфейса,
// окончательное решение всегда за сервером.
func newStatusCmd(a *app, filter *string, use, short, target, doneMessage string, op func(context.Context, int64) error) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession()
			if err != nil {
				return err
			}

			current, err := a.findReport(cmd.Context(), sess, id)
			if err != nil {
				return err
			}
			if current.Status == target {
				fmt.Fprintf(a.stdout, "Обращение #%d уже в статусе «%s».\n", id, statusLabel(target))
				return nil
			}

			if err := op(cmd.Context(), id); err != nil {
				return err
			}

			printSuccess(a.stdout, doneMessage)
			return a.refreshList(cmd.Context(), sess, *filter)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "идентификатор обращения")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
