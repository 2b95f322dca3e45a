package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/ravd-cli/internal/dto"
	"github.com/ignatzorin/ravd-cli/internal/models"
	"github.com/ignatzorin/ravd-cli/internal/pkg/apperror"
)

// staticTokens — источник токена для тестов.
type staticTokens string

func (s staticTokens) Token() string { return string(s) }

// recordedRequest фиксирует то, что реально ушло на сервер.
type recordedRequest struct {
	Method    string
	Path      string
	Auth      string
	RequestID string
	Body      string
}

type fakeServer struct {
	mu       sync.Mutex
	requests []recordedRequest
	server   *httptest.Server
}

// newFakeServer поднимает сервер, который записывает каждый запрос и
// отвечает одним и тем же статусом и телом.
func newFakeServer(t *testing.T, status int, response string) *fakeServer {
	t.Helper()
	fs := &fakeServer{}
	fs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fs.mu.Lock()
		fs.requests = append(fs.requests, recordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Auth:      r.Header.Get("Authorization"),
			RequestID: r.Header.Get("X-Request-Id"),
			Body:      string(body),
		})
		fs.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(fs.server.Close)
	return fs
}

func (fs *fakeServer) count() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.requests)
}

func (fs *fakeServer) last(t *testing.T) recordedRequest {
	t.Helper()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.NotEmpty(t, fs.requests)
	return fs.requests[len(fs.requests)-1]
}

func adminSession() models.Session {
	return models.Session{ID: 1, RoleID: 1, RoleType: models.RoleTypeAdmin, Token: "t-admin"}
}

func userSession() models.Session {
	return models.Session{ID: 5, RoleID: 2, RoleType: models.RoleTypeUser, Token: "t-user"}
}

func validCreateRequest() dto.CreateReportRequest {
	return dto.CreateReportRequest{
		UserID:      5,
		Title:       "Разбитый фонарь",
		Category:    models.CategoryInfrastructure,
		Description: "Фонарь у подъезда не горит вторую неделю",
		Location:    "CDMX, CDMX, Mexico (19.400, -99.100)",
	}
}

func TestLoginSuccess(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{"jwt":"t1","user":{"id":5,"role_id":1,"role_type":"admin"}}`)
	client := NewClient(fs.server.URL, staticTokens(""), 0)

	sess, err := client.Login(context.Background(), "a@b.com", "X")
	require.NoError(t, err)

	assert.Equal(t, int64(5), sess.ID)
	assert.Equal(t, 1, sess.RoleID)
	assert.Equal(t, models.RoleTypeAdmin, sess.RoleType)
	assert.Equal(t, "t1", sess.Token)

	req := fs.last(t)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/api/auth/login", req.Path)
	assert.JSONEq(t, `{"email":"a@b.com","password":"X"}`, req.Body)
}

func TestLoginInvalidCredentials(t *testing.T) {
	fs := newFakeServer(t, http.StatusUnauthorized, `{}`)
	client := NewClient(fs.server.URL, staticTokens(""), 0)

	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))
	assert.Equal(t, 1, fs.count())
}

func TestLoginEmptyFieldsNoNetworkCall(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	client := NewClient(fs.server.URL, staticTokens(""), 0)

	_, err := client.Login(context.Background(), "", "X")
	assert.True(t, apperror.IsValidation(err))

	_, err = client.Login(context.Background(), "a@b.com", "")
	assert.True(t, apperror.IsValidation(err))

	assert.Zero(t, fs.count())
}

func TestRegisterWeakPasswordNoNetworkCall(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	client := NewClient(fs.server.URL, staticTokens(""), 0)

	err := client.Register(context.Background(), "Иван", "ivan@example.com", "короткий")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, fs.count())
}

func TestRegisterSendsUserRole(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	client := NewClient(fs.server.URL, staticTokens(""), 0)

	err := client.Register(context.Background(), "Иван Петров", "ivan@example.com", "Str0ng!Pass")
	require.NoError(t, err)

	req := fs.last(t)
	assert.Equal(t, "/api/auth/create-user", req.Path)

	var body dto.CreateUserRequest
	require.NoError(t, json.Unmarshal([]byte(req.Body), &body))
	assert.Equal(t, models.RoleTypeUser, body.RoleType)
	assert.Equal(t, "ivan@example.com", body.Email)
}

func TestCreateReportValidationBlocksNetwork(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	client := NewClient(fs.server.URL, staticTokens("t-user"), 0)

	cases := map[string]func(*dto.CreateReportRequest){
		"без пользователя": func(r *dto.CreateReportRequest) { r.UserID = 0 },
		"без заголовка":    func(r *dto.CreateReportRequest) { r.Title = "" },
		"без категории":    func(r *dto.CreateReportRequest) { r.Category = "" },
		"без описания":     func(r *dto.CreateReportRequest) { r.Description = "" },
		"без места":        func(r *dto.CreateReportRequest) { r.Location = "" },
		"пробелы вместо заголовка": func(r *dto.CreateReportRequest) { r.Title = "   " },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validCreateRequest()
			mutate(&req)
			err := client.CreateReport(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}

	assert.Zero(t, fs.count(), "валидация обязана срабатывать до сетевого вызова")
}

func TestCreateReportUnknownCategory(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	client := NewClient(fs.server.URL, staticTokens("t-user"), 0)

	req := validCreateRequest()
	req.Category = "Marciano"
	err := client.CreateReport(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, fs.count())
}

func TestCreateReportSendsBearerAndRequestID(t *testing.T) {
	fs := newFakeServer(t, http.StatusCreated, `{}`)
	client := NewClient(fs.server.URL, staticTokens("t-user"), 0)

	require.NoError(t, client.CreateReport(context.Background(), validCreateRequest()))

	req := fs.last(t)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/api/report/create-report", req.Path)
	assert.Equal(t, "Bearer t-user", req.Auth)

	_, err := uuid.Parse(req.RequestID)
	assert.NoError(t, err, "X-Request-Id должен быть корректным uuid")
}

func TestListReportsAdminUnscoped(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `[]`)
	client := NewClient(fs.server.URL, staticTokens("t-admin"), 0)

	_, err := client.ListReports(context.Background(), adminSession(), FilterAll)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(fs.last(t).Body), &body))
	assert.NotContains(t, body, "user_id", "администратор видит все обращения")
	assert.NotContains(t, body, "status", "фильтр all не попадает в тело запроса")
}

func TestListReportsUserScopedByOwner(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `[]`)
	client := NewClient(fs.server.URL, staticTokens("t-user"), 0)

	_, err := client.ListReports(context.Background(), userSession(), models.ReportStatusPending)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(fs.last(t).Body), &body))
	assert.Equal(t, float64(5), body["user_id"])
	assert.Equal(t, models.ReportStatusPending, body["status"])
}

func TestListReportsInvalidFilter(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `[]`)
	client := NewClient(fs.server.URL, staticTokens("t-user"), 0)

	_, err := client.ListReports(context.Background(), userSession(), "approved")
	require.Error(t, err, "сервер знает только написание aproved")
	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, fs.count())
}

func TestListReportsPreservesServerOrder(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK,
		`[{"id":3,"user_id":5,"title":"c","category":"Other","description":"d","location":"l","status":"pending"},
		  {"id":1,"user_id":5,"title":"a","category":"Other","description":"d","location":"l","status":"aproved"},
		  {"id":2,"user_id":5,"title":"b","category":"Other","description":"d","location":"l","status":"rejected"}]`)
	client := NewClient(fs.server.URL, staticTokens("t-user"), 0)

	reports, err := client.ListReports(context.Background(), userSession(), FilterAll)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, int64(3), reports[0].ID)
	assert.Equal(t, int64(1), reports[1].ID)
	assert.Equal(t, int64(2), reports[2].ID)
}

func TestUpdateReportValidationBlocksNetwork(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	client := NewClient(fs.server.URL, staticTokens("t-user"), 0)

	err := client.UpdateReport(context.Background(), 9, dto.UpdateReportRequest{
		UserID:   5,
		Title:    "Заголовок",
		Category: models.CategoryServices,
		// описание пустое
		Location: "там",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, fs.count())
}

func TestUpdateReportPath(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	client := NewClient(fs.server.URL, staticTokens("t-user"), 0)

	err := client.UpdateReport(context.Background(), 9, dto.UpdateReportRequest{
		UserID:      5,
		Title:       "Заголовок",
		Category:    models.CategoryServices,
		Description: "Описание",
		Location:    "там",
	})
	require.NoError(t, err)

	req := fs.last(t)
	assert.Equal(t, "PATCH", req.Method)
	assert.Equal(t, "/api/report/update-report/9", req.Path)
	assert.Equal(t, "Bearer t-user", req.Auth)
}

func TestDeleteReport(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	client := NewClient(fs.server.URL, staticTokens("t-user"), 0)

	require.NoError(t, client.DeleteReport(context.Background(), 4))

	req := fs.last(t)
	assert.Equal(t, "DELETE", req.Method)
	assert.Equal(t, "/api/report/delete-report/4", req.Path)
	assert.Equal(t, "Bearer t-user", req.Auth)
}

func TestApproveAndRejectPaths(t *testing.T) {
	fs := newFakeServer(t, http.StatusOK, `{}`)
	client := NewClient(fs.server.URL, staticTokens("t-admin"), 0)

	require.NoError(t, client.ApproveReport(context.Background(), 7))
	req := fs.last(t)
	assert.Equal(t, "PATCH", req.Method)
	assert.Equal(t, "/api/report/aprove-report/7", req.Path, "путь сохраняет серверное написание")

	require.NoError(t, client.RejectReport(context.Background(), 7))
	req = fs.last(t)
	assert.Equal(t, "PATCH", req.Method)
	assert.Equal(t, "/api/report/reject-report/7", req.Path)
}

func TestNonSuccessStatusBecomesRequestError(t *testing.T) {
	fs := newFakeServer(t, http.StatusInternalServerError, `{"error":"всё сломалось"}`)
	client := NewClient(fs.server.URL, staticTokens("t-user"), 0)

	err := client.CreateReport(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.True(t, apperror.IsRequest(err))

	_, err = client.ListReports(context.Background(), userSession(), FilterAll)
	require.Error(t, err)
	assert.True(t, apperror.IsRequest(err))
}

func TestTransportFailureBecomesRequestError(t *testing.T) {
	// Сервер закрыт заранее: обращение к нему — транспортная ошибка.
	fs := newFakeServer(t, http.StatusOK, `{}`)
	fs.server.Close()
	client := NewClient(fs.server.URL, staticTokens("t-user"), 0)

	err := client.DeleteReport(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsRequest(err))
}
