package api

import (
	"context"
	"fmt"

	"github.com/ignatzorin/ravd-cli/internal/dto"
	"github.com/ignatzorin/ravd-cli/internal/models"
	"github.com/ignatzorin/ravd-cli/internal/pkg/apperror"
	"github.com/ignatzorin/ravd-cli/internal/validation"
)

// FilterAll запрашивает обращения без фильтра по статусу.
const FilterAll = "all"

// validateReportFields проверяет обязательные поля обращения до любого
// сетевого вызова. Пустое поле — ValidationError, запрос не отправляется.
func validateReportFields(userID int64, title, category, description, location string) error {
	if userID == 0 {
		return apperror.New(apperror.ErrCodeValidation, "обращение должно принадлежать пользователю")
	}
	fields := []struct {
		name  string
		value string
	}{
		{"заголовок", title},
		{"категория", category},
		{"описание", description},
		{"место", location},
	}
	for _, f := range fields {
		if err := validation.ValidateNonEmpty(f.name, f.value); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if !models.IsValidCategory(category) {
		return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("неизвестная категория %q", category))
	}
	return nil
}

// CreateReport отправляет новое обращение. Идентификатор и статус pending
// присваивает сервер.
func (c *Client) CreateReport(ctx context.Context, req dto.CreateReportRequest) error {
	if err := validateReportFields(req.UserID, req.Title, req.Category, req.Description, req.Location); err != nil {
		return err
	}
	return c.doJSON(ctx, "POST", "/api/report/create-report", req, nil, "не удалось создать обращение")
}

// ListReports возвращает обращения в том порядке, в каком их отдал сервер.
// Для не-администратора выборка ограничивается его собственными
// обращениями; фильтр all не попадает в тело запроса вовсе.
func (c *Client) ListReports(ctx context.Context, sess models.Session, filter string) ([]models.Report, error) {
	if filter != FilterAll && !models.IsValidStatus(filter) {
		return nil, apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("неизвестный фильтр %q", filter))
	}

	body := dto.GetReportsRequest{}
	if !sess.IsAdmin() {
		userID := sess.ID
		body.UserID = &userID
	}
	if filter != FilterAll {
		body.Status = filter
	}

	var reports []models.Report
	if err := c.doJSON(ctx, "POST", "/api/report/get-reports", body, &reports, "не удалось загрузить обращения"); err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateReport изменяет существующее обращение. Право на изменение
// проверяет сервер; клиент лишь не пропускает пустые поля.
func (c *Client) UpdateReport(ctx context.Context, id int64, req dto.UpdateReportRequest) error {
	if err := validateReportFields(req.UserID, req.Title, req.Category, req.Description, req.Location); err != nil {
		return err
	}
	return c.doJSON(ctx, "PATCH", fmt.Sprintf("/api/report/update-report/%d", id), req, nil, "не удалось изменить обращение")
}

// DeleteReport безвозвратно удаляет обращение. Подтверждение у
// пользователя запрашивает вызывающая сторона, не клиент.
func (c *Client) DeleteReport(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "DELETE", fmt.Sprintf("/api/report/delete-report/%d", id), nil, nil, "не удалось удалить обращение")
}

// ApproveReport переводит обращение в статус aproved. Путь сохраняет
// написание, принятое на сервере.
func (c *Client) ApproveReport(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "PATCH", fmt.Sprintf("/api/report/aprove-report/%d", id), nil, nil, "не удалось одобрить обращение")
}

// RejectReport переводит обращение в статус rejected.
func (c *Client) RejectReport(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "PATCH", fmt.Sprintf("/api/report/reject-report/%d", id), nil, nil, "не удалось отклонить обращение")
}
