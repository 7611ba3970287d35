package api

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-solo/db/sqlc"
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
	"github.com/sqlc-dev/pqtype"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	URLQuerySessionIDKeyword string = "sessionID"

	DefaultOpponentDelay time.Duration = time.Second
)

// Pacer holds the computer's move back so the client can render
// the player's shot first. The engine itself has no timing.
type Pacer func()

func DelayPacer(d time.Duration) Pacer {
	return func() {
		time.Sleep(d)
	}
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	ipnet          net.IPNet
	pacer          Pacer
	upgrader       websocket.Upgrader
	allowedOrigins map[string]bool
}

type Option func(*RequestProcessor) error

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	optFuncs ...Option,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      sqlc.NewAnalyticsManager(sqlc.NoopQuerier{}),
		pacer:          DelayPacer(DefaultOpponentDelay),
		upgrader: websocket.Upgrader{
			// good average time since this is not a high-latency operation such as video streaming
			HandshakeTimeout: time.Second * 5,

			ReadBufferSize:  2048,
			WriteBufferSize: 2048,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	for _, opt := range optFuncs {
		if err := opt(&rp); err != nil {
			panic(err)
		}
	}

	if rp.ipnet.IP == nil {
		rp.ipnet = findServerIpNet()
	}
	return rp
}

func WithStage(stage string, allowedOrigins ...string) Option {
	return func(rp *RequestProcessor) error {
		switch stage {
		case StageDev:
			rp.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
			return nil

		case StageProd:
			rp.allowedOrigins = make(map[string]bool, len(allowedOrigins))
			for _, origin := range allowedOrigins {
				rp.allowedOrigins[origin] = true
			}
			rp.upgrader.CheckOrigin = func(r *http.Request) bool {
				return rp.allowedOrigins[r.Header.Get("Origin")]
			}
			return nil

		default:
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
	}
}

func WithQuerier(q sqlc.Querier) Option {
	return func(rp *RequestProcessor) error {
		if q == nil {
			return fmt.Errorf("querier must not be nil")
		}
		rp.analytics = sqlc.NewAnalyticsManager(q)
		return nil
	}
}

func WithOpponentDelay(d time.Duration) Option {
	return func(rp *RequestProcessor) error {
		if d < 0 {
			return fmt.Errorf("opponent delay must not be negative: %s", d)
		}
		rp.pacer = DelayPacer(d)
		return nil
	}
}

func WithPacer(pacer Pacer) Option {
	return func(rp *RequestProcessor) error {
		rp.pacer = pacer
		return nil
	}
}

func WithIpNet(ipnet net.IPNet) Option {
	return func(rp *RequestProcessor) error {
		rp.ipnet = ipnet
		return nil
	}
}

// Picks the first IPv4 address of an interface that is up and
// not loopback. Falls back to loopback.
func findServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list interfaces:", err)
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if ok && ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return *ipnet
			}
		}
	}

	return loopback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := rp.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
			// The session is gone or still has a live connection
			_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID))
			conn.Close()
		}
	}
}

func (rp RequestProcessor) incrementAnalytics(code uint8) {
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	serverPqtypeInet := pqtype.Inet{IPNet: rp.ipnet, Valid: true}

	var err error
	switch code {
	case mc.CodeCreateGame:
		err = rp.analytics.IncrementGamesCreatedCount(ctx, serverPqtypeInet)
	case mc.CodeResetGame:
		err = rp.analytics.IncrementGamesResetCount(ctx, serverPqtypeInet)
	}

	// for now not killing the game for it
	if err != nil {
		log.Println(err)
	}
}

// Every message of one session, including the computer's moves, is
// handled on this goroutine, so a game has a single writer.
func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()

	defer func() {
		if game := session.Game(); game != nil {
			rp.gameManager.TerminateGame(game.Uuid())
		}
		if conn := session.Conn(); conn != nil {
			conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewErrMessage(mc.CodeSignalAbsent, "", "incoming req payload must contain 'code' field")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		game := session.Game()
		if game == nil && code != mc.CodeCreateGame && isGameCode(code) {
			msg := mc.NewErrMessage(code, cerr.ErrNoGameInSession(sessionId).Error(), "create a game first")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {

		// A new game replaces whatever game this session had
		case mc.CodeCreateGame:
			newGame, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager)
			if respMsg.Error == nil {
				if game != nil {
					rp.gameManager.TerminateGame(game.Uuid())
				}
				session.SetGame(newGame)
				rp.incrementAnalytics(code)
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodePlaceShip:
			respMsg := NewRequest(payload).HandlePlaceShip(game)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeAutoPlace:
			respMsg := NewRequest().HandleAutoPlace(game)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeStartGame:
			respMsg := NewRequest().HandleStartGame(game)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// After a player shot that does not end the game the computer
		// fires back once the pacer returns.
		case mc.CodeAttack:
			respMsg := NewRequest(payload).HandleAttack(game)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			if respMsg.Error != nil || respMsg.Payload.Redundant {
				continue sessionLoop
			}

			if game.CurrentPhase() == mb.PhaseOpponentTurn {
				rp.pacer()

				opponentMsg := HandleOpponentMove(game)
				if err := rp.sessionManager.WriteToSessionConn(session, opponentMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

			if game.IsGameOver() {
				if err := rp.sessionManager.WriteToSessionConn(session, NewEndGameMessage(game), mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeResetGame:
			rp.incrementAnalytics(code)

			respMsg := NewRequest().HandleResetGame(game)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewErrMessage(mc.CodeInvalidSignal, "", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

func isGameCode(code uint8) bool {
	switch code {
	case mc.CodeCreateGame, mc.CodePlaceShip, mc.CodeAutoPlace, mc.CodeStartGame, mc.CodeAttack, mc.CodeResetGame:
		return true
	default:
		return false
	}
}
