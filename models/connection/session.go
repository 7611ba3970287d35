package connection

import (
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

const (
	maxWriteWsRetries uint8         = 2
	backOffFactor     uint8         = 2
	gracePeriod       time.Duration = time.Minute * 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	reconnectionAfterAbnormalClosure(conn *websocket.Conn) bool
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one websocket client playing one game at a time
// against the computer.
type Session struct {
	id                     string
	conn                   *websocket.Conn
	game                   *mb.Game
	reconnectionSignalChan chan bool
	lastActive             time.Time

	// Set only while the session loop waits out its grace period.
	// A reconnection is accepted in that window alone.
	awaitingReconnect bool

	// guards conn, reconnectionSignalChan, lastActive and
	// awaitingReconnect, which are touched from other handlers
	mu sync.Mutex
}

var _ ConnectionHandler = (*Session)(nil)

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan bool),
		lastActive:             time.Now(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *Session) isAwaitingReconnect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaitingReconnect
}

// Opens the reconnection window and returns the channel that is
// closed once a new connection is handed over.
func (s *Session) beginAwaitReconnect() chan bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaitingReconnect = true
	return s.reconnectionSignalChan
}

// Closes the reconnection window. Reports false if a reconnection
// already consumed it.
func (s *Session) endAwaitReconnect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	wasAwaiting := s.awaitingReconnect
	s.awaitingReconnect = false
	return wasAwaiting
}

func (s *Session) Game() *mb.Game {
	return s.game
}

func (s *Session) SetGame(game *mb.Game) {
	s.game = game
}

func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		log.Println("timeout error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Println("high server load/traffic error:", err)
		return ConnLoopRetry
	}

	// Mobile clients going to background end up here
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		log.Println("abnormal closure error:", err)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Println("close error:", err)
		return ConnLoopBreak
	}

	log.Println("unexpected error:", err)
	return ConnLoopBreak
}

func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8
	conn := s.Conn()

	for {
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries >= maxWriteWsRetries {
				log.Printf("max retries reached for writing to ws [%s]: %s", conn.RemoteAddr().String(), err)
				return NewConnErr(ConnLoopBreak)
			}
			retries++
			log.Printf("writing to ws failed [%s]; retrying... (retry no. %d)\n", conn.RemoteAddr().String(), retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
		}
	}
}

// ConnLoopBreak ends the session; ConnLoopContinue retries the read.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries >= maxWriteWsRetries {
			return ConnLoopBreak
		}
		log.Printf("failed to read from ws conn [%s]; retrying... (retry no. %d)\n", s.Conn().RemoteAddr().String(), retries)
		time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
		return ConnLoopContinue

	default:
		log.Printf("break ws conn loop [%s] due to: %s\n", s.Conn().RemoteAddr().String(), err)
		return ConnLoopBreak
	}
}

// Swaps in conn if the session is waiting for its client to come
// back. A live session keeps its connection and false is returned.
func (s *Session) reconnectionAfterAbnormalClosure(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaitingReconnect {
		return false
	}

	if s.conn != nil {
		s.conn.Close()
	}
	s.conn = conn
	s.lastActive = time.Now()
	s.awaitingReconnect = false

	// Signal for reconnection
	close(s.reconnectionSignalChan)
	s.reconnectionSignalChan = make(chan bool)
	return true
}
