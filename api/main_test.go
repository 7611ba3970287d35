package api_test

import (
	"log"
	"math/rand"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-solo/api"
	"github.com/saeidalz13/battleship-solo/db/sqlc"

	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

var (
	testWsUrl          string
	testMock           sqlmock.Sqlmock
	testGameManager    *mb.BattleshipGameManager
	testSessionManager *mc.BattleshipSessionManager
	testServerIpNet    = net.IPNet{IP: net.IPv4(10, 0, 0, 7), Mask: net.CIDRMask(32, 32)}
	dialer             = websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
)

func TestMain(m *testing.M) {
	db, mock, err := sqlmock.New()
	if err != nil {
		panic(err)
	}
	testMock = mock

	testSessionManager = mc.NewBattleshipSessionManager()
	testGameManager = mb.NewBattleshipGameManager(mb.WithRand(rand.New(rand.NewSource(11))))

	rp := api.NewRequestProcessor(
		testSessionManager,
		testGameManager,
		api.WithStage(api.StageDev),
		api.WithQuerier(sqlc.New(db)),
		api.WithPacer(func() {}),
		api.WithIpNet(testServerIpNet),
	)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)
	server := httptest.NewServer(mux)

	testWsUrl = "ws" + strings.TrimPrefix(server.URL, "http") + "/battleship"
	log.Println("test server listening on", testWsUrl)

	code := m.Run()

	server.Close()
	db.Close()
	os.Exit(code)
}

// Dials a fresh session and consumes the session id message.
func dialSession(t *testing.T) (*websocket.Conn, string) {
	t.Helper()

	conn, _, err := dialer.Dial(testWsUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	var respSessionId mc.Message[mc.RespSessionId]
	if err := conn.ReadJSON(&respSessionId); err != nil {
		t.Fatal(err)
	}

	if respSessionId.Code != mc.CodeSessionID {
		t.Fatalf("expected code: %d\tgot: %d", mc.CodeSessionID, respSessionId.Code)
	}
	if respSessionId.Payload.SessionID == "" {
		t.Fatal("empty session id")
	}

	return conn, respSessionId.Payload.SessionID
}

func writeAndRead[T, K any](t *testing.T, conn *websocket.Conn, req mc.Message[T]) mc.Message[K] {
	t.Helper()

	if err := conn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}

	var resp mc.Message[K]
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}
