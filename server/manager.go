package server

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"snakearena/sim"
)

// ScoreBook 结果持久化：每个会话一个记录器，全局共享最高分
type ScoreBook interface {
	ForSession(session string) sim.ScoreStore
	Best() (float64, error)
}

// SessionManager 管理所有会话的生命周期
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      sim.Config
	book     ScoreBook
}

var (
	defaultManager *SessionManager
	once           sync.Once
)

// GetSessionManager 单例会话管理器
func GetSessionManager() *SessionManager {
	once.Do(func() {
		defaultManager = &SessionManager{
			sessions: make(map[string]*Session),
			cfg:      sim.DefaultConfig(),
		}
	})
	return defaultManager
}

// Configure 设置新会话使用的世界配置与成绩存储；已有会话不受影响
func (m *SessionManager) Configure(cfg sim.Config, book ScoreBook) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configure sessions: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	m.book = book
	return nil
}

// Create 创建会话、发送欢迎消息并开始 Tick
func (m *SessionManager) Create(name string, codec Codec, conn *ClientConn) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	var scores sim.ScoreStore
	if m.book != nil {
		scores = m.book.ForSession(id)
	}
	s, err := NewSession(id, name, m.cfg, scores, codec, conn)
	if err != nil {
		return nil, err
	}
	s.onClose = m.remove
	m.sessions[id] = s

	s.send(WelcomeMessage{Type: "welcome", Session: id, Codec: codec.Name()})
	s.StartTicker()
	Log.Infof("session %s created: name=%q codec=%s", id, name, codec.Name())
	return s, nil
}

func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Best 全局历史最高分；未配置存储时为 0
func (m *SessionManager) Best() (float64, error) {
	m.mu.RLock()
	book := m.book
	m.mu.RUnlock()
	if book == nil {
		return 0, nil
	}
	return book.Best()
}

// CloseAll 请求关闭所有会话（退出时使用）
func (m *SessionManager) CloseAll() {
	m.mu.RLock()
	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	m.mu.RUnlock()
	for _, s := range list {
		s.RequestLeave()
	}
	for _, s := range list {
		<-s.Done()
	}
}

func (m *SessionManager) remove(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, s.ID)
}
