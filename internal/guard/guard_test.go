package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/ravd-cli/internal/models"
)

func TestDecideWhileLoading(t *testing.T) {
	// Пока состояние не определено, защищённый экран не рисуется,
	// даже если сессия формально уже есть.
	state := models.AuthState{Loading: true}
	assert.Equal(t, Undetermined, Decide(state))

	state.Session = &models.Session{ID: 5, RoleID: 1, RoleType: models.RoleTypeAdmin, Token: "t1"}
	assert.Equal(t, Undetermined, Decide(state))
}

func TestDecideAuthenticated(t *testing.T) {
	state := models.AuthState{
		Session: &models.Session{ID: 5, RoleID: 2, RoleType: models.RoleTypeUser, Token: "t1"},
	}
	assert.Equal(t, Authenticated, Decide(state))
}

func TestDecideUnauthenticated(t *testing.T) {
	assert.Equal(t, Unauthenticated, Decide(models.AuthState{}))
}

func TestDecideIsStateless(t *testing.T) {
	// Решение зависит только от переданного состояния: после выхода тот же
	// вызов обязан дать другой ответ, кэширования между переходами нет.
	withSession := models.AuthState{Session: &models.Session{ID: 1, RoleID: 2, RoleType: models.RoleTypeUser, Token: "t"}}
	assert.Equal(t, Authenticated, Decide(withSession))
	assert.Equal(t, Unauthenticated, Decide(models.AuthState{}))
	assert.Equal(t, Authenticated, Decide(withSession))
}

func TestRouteAfterLoginAdmin(t *testing.T) {
	sess := models.Session{ID: 5, RoleID: 1, RoleType: models.RoleTypeAdmin, Token: "t1"}
	assert.Equal(t, ViewReports, RouteAfterLogin(sess))
}

func TestRouteAfterLoginUser(t *testing.T) {
	sess := models.Session{ID: 5, RoleID: 2, RoleType: models.RoleTypeUser, Token: "t1"}
	assert.Equal(t, ViewMenu, RouteAfterLogin(sess))
}

func TestRouteAfterLoginRequiresBothRoleFields(t *testing.T) {
	// Администратором считается только сочетание role_id=1 и role_type=admin.
	sess := models.Session{ID: 5, RoleID: 2, RoleType: models.RoleTypeAdmin, Token: "t1"}
	assert.Equal(t, ViewMenu, RouteAfterLogin(sess))

	sess = models.Session{ID: 5, RoleID: 1, RoleType: models.RoleTypeUser, Token: "t1"}
	assert.Equal(t, ViewMenu, RouteAfterLogin(sess))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "undetermined", Undetermined.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
}
