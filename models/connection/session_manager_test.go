package connection

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

func TestSessionManager_Lifecycle(t *testing.T) {
	bsm := NewBattleshipSessionManager()

	session := bsm.GenerateNewSession(nil)
	require.NotEmpty(t, session.Id())

	found, err := bsm.FindSession(session.Id())
	require.NoError(t, err)
	assert.Same(t, session, found)

	bsm.TerminateSession(session.Id())
	_, err = bsm.FindSession(session.Id())
	assert.Error(t, err)

	assert.Error(t, bsm.ReconnectSession(session.Id(), nil))
}

func TestSessionManager_AbnormalClosureWithoutGame(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	session := bsm.GenerateNewSession(nil)

	err := bsm.HandleAbnormalClosureSession(session)
	assert.True(t, errors.Is(err, NewConnErr(ConnLoopBreak)))
}

func TestSessionManager_AbnormalClosureGracePeriod(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	bsm.gracePeriod = time.Millisecond * 20

	session := bsm.GenerateNewSession(nil)
	session.SetGame(mb.NewGame(mb.GameDifficultyEasy))

	err := bsm.HandleAbnormalClosureSession(session)
	assert.True(t, errors.Is(err, NewConnErr(ConnLoopBreak)))
}

func TestSessionManager_AbnormalClosureReconnect(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	bsm.gracePeriod = time.Second * 5

	session := bsm.GenerateNewSession(nil)
	session.SetGame(mb.NewGame(mb.GameDifficultyEasy))

	go func() {
		time.Sleep(time.Millisecond * 50)
		if err := bsm.ReconnectSession(session.Id(), nil); err != nil {
			t.Error(err)
		}
	}()

	assert.NoError(t, bsm.HandleAbnormalClosureSession(session))
}

func TestSessionManager_ReconnectLiveSessionIsRejected(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	session := bsm.GenerateNewSession(nil)
	session.SetGame(mb.NewGame(mb.GameDifficultyEasy))
	before := session.reconnectionSignalChan

	err := bsm.ReconnectSession(session.Id(), nil)
	assert.Error(t, err)
	assert.False(t, session.isAwaitingReconnect())
	assert.Equal(t, before, session.reconnectionSignalChan)
}

func TestSessionManager_ReconnectAfterGracePeriodIsRejected(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	bsm.gracePeriod = time.Millisecond * 10

	session := bsm.GenerateNewSession(nil)
	session.SetGame(mb.NewGame(mb.GameDifficultyEasy))

	require.Error(t, bsm.HandleAbnormalClosureSession(session))
	assert.Error(t, bsm.ReconnectSession(session.Id(), nil))
}

func TestSessionManager_RemoveStaleSessions(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	now := time.Now()

	idle := bsm.GenerateNewSession(nil)
	idle.lastActive = now.Add(-bsm.cleanupInterval * 2)

	// created long ago but still playing
	active := bsm.GenerateNewSession(nil)
	active.lastActive = now.Add(-time.Second)

	waiting := bsm.GenerateNewSession(nil)
	waiting.lastActive = now.Add(-bsm.cleanupInterval * 2)
	waiting.beginAwaitReconnect()

	removed := bsm.removeStaleSessions(now)
	assert.Equal(t, []string{idle.Id()}, removed)

	_, err := bsm.FindSession(idle.Id())
	assert.Error(t, err)
	_, err = bsm.FindSession(active.Id())
	assert.NoError(t, err)
	_, err = bsm.FindSession(waiting.Id())
	assert.NoError(t, err)
}

func TestSession_TouchMovesLastActive(t *testing.T) {
	session := NewSession("id", nil)
	session.lastActive = time.Now().Add(-time.Hour)

	session.touch()
	assert.WithinDuration(t, time.Now(), session.LastActive(), time.Second)
}
