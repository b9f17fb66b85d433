package pipeline

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_HappyPath(t *testing.T) {
	m := NewMachine(ClassGenerate)
	assert.Equal(t, StateIdle, m.Status().State)

	require.NoError(t, m.Begin("analyzing", "agent-1"))
	st := m.Status()
	assert.Equal(t, StateBusy, st.State)
	assert.Equal(t, "analyzing", st.Phase)
	assert.Equal(t, "agent-1", st.AgentID)

	require.NoError(t, m.SetPhase("generating"))
	assert.Equal(t, "generating", m.Status().Phase)

	require.NoError(t, m.Settle())
	st = m.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.Equal(t, StateSettled, st.LastOutcome)
	assert.Empty(t, st.Phase)
	assert.Empty(t, st.AgentID)
	assert.Equal(t, 1, st.Runs)
}

func TestMachine_FailReturnsToIdle(t *testing.T) {
	m := NewMachine(ClassPublish)
	require.NoError(t, m.Begin("publishing", "agent-2"))
	require.NoError(t, m.Fail())

	assert.False(t, m.Busy())
	assert.Equal(t, StateFailed, m.Status().LastOutcome)
	require.NoError(t, m.Begin("again", "agent-2"))
}

func TestMachine_RejectsSecondBegin(t *testing.T) {
	m := NewMachine(ClassGenerate)
	require.NoError(t, m.Begin("a", "x"))
	assert.ErrorIs(t, m.Begin("b", "y"), ErrBusy)
	assert.Equal(t, "a", m.Status().Phase)
}

func TestMachine_TransitionsRequireBusy(t *testing.T) {
	m := NewMachine(ClassGenerate)
	assert.ErrorIs(t, m.SetPhase("x"), ErrNotBusy)
	assert.ErrorIs(t, m.Settle(), ErrNotBusy)
	assert.ErrorIs(t, m.Fail(), ErrNotBusy)
}

func TestMachine_SingleInFlightUnderContention(t *testing.T) {
	m := NewMachine(ClassGenerate)
	var started atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.Begin("p", "a") == nil {
				started.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), started.Load())
}
