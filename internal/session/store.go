package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ignatzorin/ravd-cli/internal/logger"
	"github.com/ignatzorin/ravd-cli/internal/models"
	"github.com/ignatzorin/ravd-cli/internal/pkg/apperror"
	"github.com/ignatzorin/ravd-cli/internal/storage"
)

const (
	keyToken    = "jwt"
	keyIdentity = "user"
)

// identityRecord — сериализованная запись личности в хранилище.
// Токен в неё никогда не попадает, он лежит отдельным ключом.
type identityRecord struct {
	ID       int64  `json:"id"`
	RoleID   int    `json:"role_id"`
	RoleType string `json:"role_type"`
}

// Store — единственный источник истины о том, кто вошёл в систему.
// Состояние живёт в памяти процесса и переживает перезапуски через
// долговременное хранилище.
type Store struct {
	mu      sync.RWMutex
	storage *storage.Store
	state   models.AuthState
}

// NewStore создаёт хранилище сессии. До вызова Restore состояние
// считается неопределённым: Loading равен true.
func NewStore(st *storage.Store) *Store {
	return &Store{
		storage: st,
		state:   models.AuthState{Loading: true},
	}
}

// Login сохраняет сессию в долговременное хранилище и делает её текущей.
// Прежняя сессия перезаписывается безусловно, без слияния. Подлинность
// токена на клиенте не проверяется — доверие делегировано серверу.
func (s *Store) Login(sess models.Session) error {
	if sess.ID == 0 || sess.RoleID == 0 || sess.RoleType == "" || sess.Token == "" {
		return apperror.New(apperror.ErrCodeValidation, "сессия должна содержать id, роль и токен")
	}

	record, err := json.Marshal(identityRecord{
		ID:       sess.ID,
		RoleID:   sess.RoleID,
		RoleType: sess.RoleType,
	})
	if err != nil {
		return fmt.Errorf("session: не удалось сериализовать запись личности: %w", err)
	}

	if err := s.storage.Set(keyToken, sess.Token); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := s.storage.Set(keyIdentity, string(record)); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	s.mu.Lock()
	s.state.Session = &sess
	s.mu.Unlock()
	return nil
}

// Logout снимает текущую сессию и полностью очищает пространство имён
// хранилища, а не только сессионные ключи. Это осознанное решение:
// каталог клиента не содержит ничего, кроме данных сессии, и широкая
// очистка гарантирует, что после выхода не останется никаких следов.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Session = nil
	s.state.Loading = false
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return nil
}

// Restore восстанавливает сессию из хранилища. Вызывается один раз при
// старте процесса. Повреждённая или неполная запись молча трактуется как
// отсутствие сессии, а не как фатальная ошибка; Loading в любом случае
// проходит цикл true→false.
func (s *Store) Restore() {
	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state.Loading = false
		s.mu.Unlock()
	}()

	token, ok, err := s.storage.Get(keyToken)
	if err != nil || !ok || token == "" {
		if err != nil {
			logger.L().WithField("error", err.Error()).Warn("session: не удалось прочитать токен")
		}
		return
	}

	raw, ok, err := s.storage.Get(keyIdentity)
	if err != nil || !ok {
		if err != nil {
			logger.L().WithField("error", err.Error()).Warn("session: не удалось прочитать запись личности")
		}
		return
	}

	var record identityRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		logger.L().WithField("error", err.Error()).Debug("session: запись личности повреждена, считаем сессию отсутствующей")
		return
	}
	if record.ID == 0 || record.RoleType == "" {
		logger.L().Debug("session: запись личности неполная, считаем сессию отсутствующей")
		return
	}

	s.mu.Lock()
	s.state.Session = &models.Session{
		ID:       record.ID,
		RoleID:   record.RoleID,
		RoleType: record.RoleType,
		Token:    token,
	}
	s.mu.Unlock()
}

// Session возвращает копию текущей сессии или nil, если её нет.
func (s *Store) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Session == nil {
		return nil
	}
	sess := *s.state.Session
	return &sess
}

// Token возвращает текущий токен или пустую строку.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Session == nil {
		return ""
	}
	return s.state.Session.Token
}

// Loading сообщает, идёт ли восстановление или завершение сессии.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loading
}

// State возвращает снимок состояния аутентификации.
func (s *Store) State() models.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.state
	if s.state.Session != nil {
		sess := *s.state.Session
		state.Session = &sess
	}
	return state
}
