package connection

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically()

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	HandleAbnormalClosureSession(session *Session) error

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	gracePeriod     time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func NewBattleshipSessionManager() *BattleshipSessionManager {
	initMapSize := 10

	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: time.Minute * 20,
		gracePeriod:     gracePeriod,
	}
}

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
	log.Printf("session terminated: %s", sessionId)
}

// Hands the new connection to the session loop that is waiting
// in its grace period.
func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}

	if !session.reconnectionAfterAbnormalClosure(conn) {
		return cerr.ErrSessionNotAwaitingReconnect(sessionId)
	}
	return nil
}

// To ensure that there is no dangling connections, server
// session manager deletes sessions that have not read or written
// anything for longer than the cleanup interval.
func (bsm *BattleshipSessionManager) CleanupPeriodically() {
	for {
		time.Sleep(bsm.cleanupInterval)

		log.Println("Clean up sessions:")
		for _, ID := range bsm.removeStaleSessions(time.Now()) {
			log.Printf("removed: %s", ID)
		}
	}
}

// Sessions in their reconnection grace period are left alone; the
// grace timer ends them.
func (bsm *BattleshipSessionManager) removeStaleSessions(now time.Time) []string {
	assumedClosedConns := 10
	toDelete := make([]string, 0, assumedClosedConns)

	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	for ID, session := range bsm.sessions {
		if session.isAwaitingReconnect() {
			continue
		}
		if now.Sub(session.LastActive()) > bsm.cleanupInterval {
			toDelete = append(toDelete, ID)
		}
	}

	for _, ID := range toDelete {
		delete(bsm.sessions, ID)
	}
	return toDelete
}

// Waits for the client to come back with its session id after an
// abnormal closure (e.g. a mobile app going to background). The
// game stays paused meanwhile.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session) error {
	if s.Game() == nil {
		return NewConnErr(ConnLoopBreak).AddDesc("no game in session; nothing to resume")
	}

	reconnected := s.beginAwaitReconnect()

	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		// a reconnection may have landed just as the timer fired
		if s.endAwaitReconnect() {
			return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.id)
		}
		log.Printf("player reconnected, session: %s\n", s.id)
		return nil

	case <-reconnected:
		log.Printf("player reconnected, session: %s\n", s.id)
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	err := session.writeToConnWithRetry(msg, msgType)
	if err == nil {
		session.touch()
		return nil
	}

	var connErr ConnErr
	if !errors.As(err, &connErr) {
		return err
	}

	if connErr.Code() == ConnLoopAbnormalClosureRetry {
		if err := bsm.HandleAbnormalClosureSession(session); err != nil {
			return err
		}
		return session.writeToConnWithRetry(msg, msgType)
	}

	return connErr
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.Conn().ReadMessage()
		if err == nil {
			session.touch()
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session); err != nil {
				return -1, []byte{}, err
			}
			retries = 0

		default:
			return -1, []byte{}, err
		}
	}
}

// A random invalid code is returned along with the error when the
// payload is not a JSON object. A missing "code" decodes to zero.
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}

	return signal.Code, nil
}
