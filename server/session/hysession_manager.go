package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Opafanls/hyflv/server/constdef"
	"github.com/Opafanls/hyflv/server/core/event"
	"github.com/Opafanls/hyflv/server/log"
	"github.com/Opafanls/hyflv/server/protocol/container"
	"github.com/Opafanls/hyflv/server/protocol/container/flv"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var DefaultHySessionManager *HySessionManager

func InitHySessionManager(dir string) {
	DefaultHySessionManager = NewHySessionManager(dir)
}

// HySessionManager is the registry of live writer sessions, keyed by name.
type HySessionManager struct {
	rwLock     sync.RWMutex
	sessionMap map[string]*HySession
	dir        string
}

func NewHySessionManager(dir string) *HySessionManager {
	return &HySessionManager{
		sessionMap: make(map[string]*HySession),
		dir:        dir,
	}
}

func (m *HySessionManager) Create(ctx context.Context, name string, sink container.TagWriter) (*HySession, error) {
	if name == "" {
		return nil, errors.New("empty session name")
	}
	m.rwLock.Lock()
	defer m.rwLock.Unlock()
	if _, ok := m.sessionMap[name]; ok {
		return nil, errors.Wrap(constdef.ErrSessionExists, name)
	}
	sess := NewHySession(ctx, name, sink)
	m.sessionMap[name] = sess
	m.notify(ctx, event.OnSessionCreate, sess)
	return sess, nil
}

// CreateFile creates a session writing to <dir>/<name>_<unix>.flv.
func (m *HySessionManager) CreateFile(ctx context.Context, name string) (*HySession, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, errors.Errorf("invalid session name %q", name)
	}
	if _, ok := m.Get(name); ok {
		return nil, errors.Wrap(constdef.ErrSessionExists, name)
	}
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return nil, errors.Wrap(err, "mkdir")
	}
	fileName := fmt.Sprintf("%s_%d.%s", filepath.Join(m.dir, name), time.Now().Unix(), "flv")
	w, err := os.OpenFile(fileName, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "open flv file")
	}
	sess, err := m.Create(ctx, name, flv.NewWriter(w))
	if err != nil {
		_ = w.Close()
		_ = os.Remove(fileName)
		return nil, err
	}
	log.Infof(ctx, "session %s writes to %s", name, fileName)
	return sess, nil
}

func (m *HySessionManager) Get(name string) (*HySession, bool) {
	m.rwLock.RLock()
	defer m.rwLock.RUnlock()
	sess, ok := m.sessionMap[name]
	return sess, ok
}

func (m *HySessionManager) Remove(name string) {
	m.rwLock.Lock()
	delete(m.sessionMap, name)
	m.rwLock.Unlock()
}

// Close closes the named session and drops it from the registry.
func (m *HySessionManager) Close(ctx context.Context, name string) error {
	sess, ok := m.Get(name)
	if !ok {
		return errors.Wrap(constdef.ErrSessionNotFound, name)
	}
	m.Remove(name)
	err := sess.Close(ctx)
	m.notify(ctx, event.OnSessionClose, sess)
	return err
}

func (m *HySessionManager) CloseAll(ctx context.Context) error {
	m.rwLock.Lock()
	sessions := m.sessionMap
	m.sessionMap = make(map[string]*HySession)
	m.rwLock.Unlock()

	var result *multierror.Error
	for _, sess := range sessions {
		if err := sess.Close(ctx); err != nil && !errors.Is(err, constdef.ErrSessionClosed) {
			result = multierror.Append(result, err)
		}
		m.notify(ctx, event.OnSessionClose, sess)
	}
	return result.ErrorOrNil()
}

func (m *HySessionManager) notify(ctx context.Context, e event.HyEvent, sess *HySession) {
	if err := event.PushEvent0(ctx, e, sess.Info()); err != nil {
		log.Warnf(ctx, "push %s for session %s: %v", e, sess.Name(), err)
	}
}

func (m *HySessionManager) List() []Info {
	m.rwLock.RLock()
	sessions := make([]*HySession, 0, len(m.sessionMap))
	for _, sess := range m.sessionMap {
		sessions = append(sessions, sess)
	}
	m.rwLock.RUnlock()

	infos := make([]Info, 0, len(sessions))
	for _, sess := range sessions {
		infos = append(infos, sess.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
