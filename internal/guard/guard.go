package guard

import (
	"github.com/ignatzorin/ravd-cli/internal/models"
)

// Decision — результат проверки доступа к защищённому экрану.
type Decision int

const (
	// Undetermined — состояние сессии ещё не определено, рисовать нечего.
	Undetermined Decision = iota
	// Authenticated — сессия есть, экран можно показывать.
	Authenticated
	// Unauthenticated — сессии нет, пользователя отправляем на вход.
	Unauthenticated
)

func (d Decision) String() string {
	switch d {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "undetermined"
	}
}

// Имена экранов, между которыми принимает решения навигация.
const (
	ViewLogin   = "login"
	ViewMenu    = "menu"
	ViewReports = "reports"
)

// Decide вычисляет решение по текущему состоянию аутентификации.
// Функция чистая и вызывается заново при каждом входе в защищённый
// экран — результат никогда не кэшируется между переходами.
func Decide(state models.AuthState) Decision {
	if state.Loading {
		return Undetermined
	}
	if state.Session != nil {
		return Authenticated
	}
	return Unauthenticated
}

// RouteAfterLogin возвращает экран, на который попадает пользователь
// сразу после входа: администратор — на список обращений, остальные —
// в главное меню. Само переключение экранов выполняет вызывающая сторона.
func RouteAfterLogin(sess models.Session) string {
	if sess.IsAdmin() {
		return ViewReports
	}
	return ViewMenu
}
