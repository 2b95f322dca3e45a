package api

import (
	"context"
	"fmt"

	"github.com/ignatzorin/ravd-cli/internal/dto"
	"github.com/ignatzorin/ravd-cli/internal/models"
	"github.com/ignatzorin/ravd-cli/internal/pkg/apperror"
	"github.com/ignatzorin/ravd-cli/internal/validation"
)

// Login проверяет учётные данные на сервере и возвращает готовую сессию.
// Любой неуспешный ответ показывается пользователю как неверные данные,
// различия между причинами отказа сервер не сообщает.
func (c *Client) Login(ctx context.Context, email, password string) (models.Session, error) {
	if err := validation.ValidateNonEmpty("email", email); err != nil {
		return models.Session{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNonEmpty("пароль", password); err != nil {
		return models.Session{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	var resp dto.LoginResponse
	err := c.doJSON(ctx, "POST", "/api/auth/login", dto.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp, "неверный email или пароль")
	if err != nil {
		if apperror.IsRequest(err) {
			return models.Session{}, apperror.ErrInvalidCredentials
		}
		return models.Session{}, err
	}

	if resp.JWT == "" || resp.User.ID == 0 {
		return models.Session{}, fmt.Errorf("api: сервер вернул неполный ответ на вход")
	}

	return models.Session{
		ID:       resp.User.ID,
		RoleID:   resp.User.RoleID,
		RoleType: resp.User.RoleType,
		Token:    resp.JWT,
	}, nil
}

// Register создаёт нового пользователя с ролью user. Политика пароля
// проверяется локально, до обращения к серверу.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	if err := validation.ValidateNonEmpty("имя", name); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	return c.doJSON(ctx, "POST", "/api/auth/create-user", dto.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		RoleType: models.RoleTypeUser,
	}, nil, "не удалось завершить регистрацию")
}
