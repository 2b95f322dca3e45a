package models

const (
	RoleTypeAdmin = "admin"
	RoleTypeUser  = "user"

	// AdminRoleID — числовой идентификатор роли администратора на сервере.
	AdminRoleID = 1
)

// Session описывает аутентифицированного пользователя клиента.
// Сессия либо заполнена целиком, либо отсутствует — частичных сессий не бывает.
type Session struct {
	ID       int64  `json:"id"`
	RoleID   int    `json:"role_id"`
	RoleType string `json:"role_type"`
	Token    string `json:"-"`
}

// IsAdmin сообщает, принадлежит ли сессия администратору.
func (s *Session) IsAdmin() bool {
	return s != nil && s.RoleID == AdminRoleID && s.RoleType == RoleTypeAdmin
}

// AuthState — текущее состояние аутентификации процесса.
// Loading равен true только на время восстановления сессии при старте
// и на время завершения logout.
type AuthState struct {
	Session *Session
	Loading bool
}
