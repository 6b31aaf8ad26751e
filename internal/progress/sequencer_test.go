package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSequencerIdleBeforeStart(t *testing.T) {
	seq := NewSequencer(VerifyStages, nil)

	snap := seq.Snapshot()
	require.Equal(t, Idle, snap.State)
	require.Equal(t, 0, snap.Step)
	require.Empty(t, snap.Label())
}

func TestSequencerAdvancesAndClampsAtLastStage(t *testing.T) {
	seq := NewSequencer([]string{"one", "two", "three"}, nil)
	seq.Start(5 * time.Millisecond)

	// Far longer than 3 ticks; the step must hold at the last stage.
	require.Eventually(t, func() bool {
		return seq.Snapshot().Step == 2
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	snap := seq.Snapshot()
	require.Equal(t, Running, snap.State)
	require.Equal(t, 2, snap.Step)
	require.Equal(t, "three", snap.Label())
}

func TestFinishSuccessMarksAllStagesComplete(t *testing.T) {
	seq := NewSequencer(VerifyStages, nil)
	seq.Start(time.Hour) // no tick will fire

	seq.Finish(true)

	snap := seq.Snapshot()
	require.Equal(t, Settled, snap.State)
	require.True(t, snap.Success)
	require.Equal(t, len(VerifyStages), snap.Step)
}

func TestFinishFailureFreezesStep(t *testing.T) {
	seq := NewSequencer(VerifyStages, nil)
	seq.Start(5 * time.Millisecond)

	require.Eventually(t, func() bool {
		return seq.Snapshot().Step >= 1
	}, time.Second, 5*time.Millisecond)

	before := seq.Snapshot().Step
	seq.Finish(false)

	snap := seq.Snapshot()
	require.Equal(t, Settled, snap.State)
	require.False(t, snap.Success)
	require.Equal(t, before, snap.Step)
	require.Less(t, snap.Step, len(VerifyStages))
}

func TestRestartCancelsPreviousRun(t *testing.T) {
	var ticks int
	done := make(chan struct{}, 64)
	seq := NewSequencer(VerifyStages, func() {
		done <- struct{}{}
	})

	seq.Start(10 * time.Millisecond)
	seq.Start(time.Hour) // supersedes; old ticker must stop

	snap := seq.Snapshot()
	require.Equal(t, Running, snap.State)
	require.Equal(t, 0, snap.Step)

	// Any tick from the first run arriving now would advance past 0.
	timeout := time.After(100 * time.Millisecond)
	for {
		select {
		case <-done:
			ticks++
		case <-timeout:
			require.Equal(t, 0, seq.Snapshot().Step)
			require.LessOrEqual(t, ticks, 1)
			return
		}
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	seq := NewSequencer(VerifyStages, nil)
	seq.Start(time.Hour)
	seq.Finish(true)
	seq.Reset()

	snap := seq.Snapshot()
	require.Equal(t, Idle, snap.State)
	require.Equal(t, 0, snap.Step)
	require.False(t, snap.Success)
}

func TestStepNeverDecreasesWhileRunning(t *testing.T) {
	seq := NewSequencer(VerifyStages, nil)
	seq.Start(time.Millisecond)

	prev := -1
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		snap := seq.Snapshot()
		if snap.State != Running {
			break
		}
		require.GreaterOrEqual(t, snap.Step, prev)
		prev = snap.Step
	}
	seq.Finish(true)
}

func TestStepNeverExceedsStageCountWhileRunning(t *testing.T) {
	seq := NewSequencer([]string{"a", "b"}, nil)
	seq.Start(time.Millisecond)

	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		snap := seq.Snapshot()
		if snap.State == Running {
			require.Less(t, snap.Step, 2)
		}
	}
	seq.Finish(true)
}
