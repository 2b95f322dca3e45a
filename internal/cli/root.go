package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/ravd-cli/internal/api"
	"github.com/ignatzorin/ravd-cli/internal/config"
	"github.com/ignatzorin/ravd-cli/internal/geo"
	"github.com/ignatzorin/ravd-cli/internal/guard"
	"github.com/ignatzorin/ravd-cli/internal/logger"
	"github.com/ignatzorin/ravd-cli/internal/models"
	"github.com/ignatzorin/ravd-cli/internal/pkg/apperror"
	"github.com/ignatzorin/ravd-cli/internal/session"
	"github.com/ignatzorin/ravd-cli/internal/storage"
)

// locationResolver определяет место подачи обращения. Реализуется
// geo.Resolver.
type locationResolver interface {
	Resolve(ctx context.Context) string
}

// app связывает команды с ядром клиента: конфигурацией, хранилищем сессии,
// API-клиентом и резолвером геолокации. Все зависимости создаются один раз
// в PersistentPreRunE корневой команды.
type app struct {
	cfg      *config.Config
	sessions *session.Store
	client   *api.Client
	resolver locationResolver

	// reader — единственный буфер поверх stdin: приглашения читают из
	// него по очереди, чтобы перечитанный вперёд ввод не пропадал.
	stdin  io.Reader
	reader *bufio.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRootCommand собирает корневую команду ravd со стандартными потоками.
func NewRootCommand() *cobra.Command {
	return newRootCommand(os.Stdin, os.Stdout, os.Stderr)
}

// Execute запускает клиент и возвращает код завершения процесса.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		printError(os.Stderr, "Ошибка: "+err.Error())
		return 1
	}
	return 0
}

// NewRootCommandWithIO позволяет подменить потоки ввода-вывода в тестах.
func NewRootCommandWithIO(in io.Reader, out, errOut io.Writer) *cobra.Command {
	return newRootCommand(in, out, errOut)
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		stdin:  in,
		reader: bufio.NewReader(in),
		stdout: out,
		stderr: errOut,
	}

	cmd := &cobra.Command{
		Use:           "ravd",
		Short:         "Консольный клиент системы обращений RAVD",
		Long:          "ravd позволяет входить в систему, подавать обращения о происшествиях и управлять их статусом с сервера RAVD.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bootstrap()
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newReportsCmd(a),
	)

	return cmd
}

// bootstrap поднимает ядро клиента и один раз восстанавливает сессию
// из долговременного хранилища.
func (a *app) bootstrap() error {
	if a.sessions != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}
	logger.Log.SetOutput(a.stderr)

	store, err := storage.NewStore(cfg.StorageDir)
	if err != nil {
		return err
	}

	a.sessions = session.NewStore(store)
	a.sessions.Restore()

	a.client = api.NewClient(cfg.ServerURL, a.sessions, cfg.HTTPTimeout)
	a.resolver = geo.NewResolver(cfg.IPAPIURL, cfg.GeoAPIURL, cfg.HTTPTimeout)
	return nil
}

// requireSession пропускает к защищённой команде только определённое
// состояние с живой сессией. Решение принимается заново при каждом
// запуске команды.
func (a *app) requireSession() (models.Session, error) {
	state := a.sessions.State()
	switch guard.Decide(state) {
	case guard.Authenticated:
		return *state.Session, nil
	case guard.Undetermined:
		return models.Session{}, apperror.New(apperror.ErrCodeUnauthorized, "состояние сессии ещё не определено, попробуйте ещё раз")
	default:
		return models.Session{}, apperror.New(apperror.ErrCodeUnauthorized, "требуется вход в систему: выполните ravd login")
	}
}
