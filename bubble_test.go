package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func _bubble_conditions(p, theta_pzr, v_g float64) *Conditions {
	c := NewConditions(p, theta_pzr, theta_pzr, 6.0e5, 9.0e4, 0.0, get_v_pzr()-v_g, v_g)
	return c
}

func TestBubbleDetectionFiresAtSaturation(t *testing.T) {
	bs := NewBubbleState()

	// Subcooled (saturation pressure below system pressure): stays put.
	out := advance_bubble(bs, _bubble_conditions(400.0, 430.0, 0.0), 1.0)
	assert.False(t, out.transition)
	assert.Equal(t, BUBBLE_NONE, out.state.phase)

	// Saturation pressure caught system pressure: detection.
	out = advance_bubble(bs, _bubble_conditions(400.0, 450.0, 0.0), 1.0)
	require.True(t, out.transition)
	assert.Equal(t, BUBBLE_NONE, out.old_phase)
	assert.Equal(t, BUBBLE_DETECTION, out.state.phase)
}

func TestBubbleDetectionDwellDebounces(t *testing.T) {
	sat := _bubble_conditions(400.0, 450.0, 0.0)
	sub := _bubble_conditions(400.0, 430.0, 0.0)

	bs := BubbleState{phase: BUBBLE_DETECTION}

	// Saturation held for half the dwell, then lost: the timer resets but
	// the phase never reverts.
	out := advance_bubble(bs, sat, get_detection_dwell_s()/2.0)
	require.False(t, out.transition)
	out = advance_bubble(out.state, sub, 1.0)
	require.False(t, out.transition)
	assert.Equal(t, BUBBLE_DETECTION, out.state.phase)
	assert.Equal(t, 0.0, out.state.dwell_s)

	// Held for the full dwell: verified.
	out = advance_bubble(out.state, sat, get_detection_dwell_s())
	require.True(t, out.transition)
	assert.Equal(t, BUBBLE_VERIFICATION, out.state.phase)
}

func TestBubbleDrainEmitsTransferUntilTarget(t *testing.T) {
	t_sat, _ := get_t_sat(400.0)

	// Verification hands straight to drain.
	out := advance_bubble(BubbleState{phase: BUBBLE_VERIFICATION}, _bubble_conditions(400.0, t_sat, 10.0), 1.0)
	require.True(t, out.transition)
	require.Equal(t, BUBBLE_DRAIN, out.state.phase)

	// Below the target steam fraction: a transfer intent, no transition.
	dt := 5.0
	out = advance_bubble(out.state, _bubble_conditions(400.0, t_sat, 100.0), dt)
	assert.False(t, out.transition)
	assert.Equal(t, get_drain_rate()*dt, out.drain_dm)

	// At the target: stabilize, and no further transfer.
	v_g_target := get_bubble_target_fraction() * get_v_pzr()
	out = advance_bubble(out.state, _bubble_conditions(400.0, t_sat, v_g_target), dt)
	require.True(t, out.transition)
	assert.Equal(t, BUBBLE_STABILIZE, out.state.phase)
	assert.Equal(t, 0.0, out.drain_dm)
}

func TestBubbleStabilizeThenPressurizeToComplete(t *testing.T) {
	t_sat, _ := get_t_sat(2250.0)
	c := _bubble_conditions(2250.0, t_sat, get_bubble_target_fraction()*get_v_pzr())

	bs := BubbleState{phase: BUBBLE_STABILIZE}
	out := advance_bubble(bs, c, get_stabilize_dwell_s()-1.0)
	require.False(t, out.transition)
	out = advance_bubble(out.state, c, 1.0)
	require.True(t, out.transition)
	require.Equal(t, BUBBLE_PRESSURIZE, out.state.phase)

	// Outside the no-load band: keeps pressurizing.
	far := _bubble_conditions(get_p_noload()-2.0*get_p_band(), t_sat, 990.0)
	out = advance_bubble(out.state, far, 1.0)
	require.False(t, out.transition)

	// Inside the band: complete.
	out = advance_bubble(out.state, c, 1.0)
	require.True(t, out.transition)
	assert.Equal(t, BUBBLE_COMPLETE, out.state.phase)
}

func TestBubbleCompleteIsTerminal(t *testing.T) {
	t_sat, _ := get_t_sat(400.0)
	c := _bubble_conditions(400.0, t_sat+50.0, 990.0)

	bs := BubbleState{phase: BUBBLE_COMPLETE}
	for i := 0; i < 1000; i++ {
		out := advance_bubble(bs, c, 60.0)
		require.False(t, out.transition)
		require.False(t, out.stalled_now)
		bs = out.state
	}
	assert.Equal(t, BUBBLE_COMPLETE, bs.phase)
	assert.False(t, bs.stalled)
}

func TestBubbleStallIsStickyAndNonReverting(t *testing.T) {
	sub := _bubble_conditions(400.0, 430.0, 0.0)

	bs := BubbleState{phase: BUBBLE_DETECTION}
	bound := get_phase_time_bound_s(BUBBLE_DETECTION)

	out := advance_bubble(bs, sub, bound)
	require.False(t, out.stalled_now)

	// First step past the bound: reported once.
	out = advance_bubble(out.state, sub, 1.0)
	require.True(t, out.stalled_now)
	assert.True(t, out.state.stalled)
	assert.Equal(t, BUBBLE_DETECTION, out.state.phase)

	// Sticky, not re-reported.
	out = advance_bubble(out.state, sub, 1.0)
	assert.False(t, out.stalled_now)
	assert.True(t, out.state.stalled)

	// A stalled phase still transitions forward when its condition holds.
	sat := _bubble_conditions(400.0, 450.0, 0.0)
	st := out.state
	st.dwell_s = get_detection_dwell_s()
	out = advance_bubble(st, sat, 1.0)
	require.True(t, out.transition)
	assert.Equal(t, BUBBLE_VERIFICATION, out.state.phase)
	assert.False(t, out.state.stalled)
}
