package main

import "fmt"

// Bubble-formation phase. Strictly forward-ordered; COMPLETE is terminal.
type BubblePhase int

const (
	BUBBLE_NONE         BubblePhase = iota + 1 // water-solid, below saturation
	BUBBLE_DETECTION                           // pzr temperature first reached local saturation
	BUBBLE_VERIFICATION                        // saturation held for the debounce dwell
	BUBBLE_DRAIN                               // controlled drain opening the vapor space
	BUBBLE_STABILIZE                           // hold level/pressure before resuming automatic control
	BUBBLE_PRESSURIZE                          // pressure-control law (heaters/spray) in command
	BUBBLE_COMPLETE                            // settled in the at-power program band
)

func (p BubblePhase) String() string {
	switch p {
	case BUBBLE_NONE:
		return "none"
	case BUBBLE_DETECTION:
		return "detection"
	case BUBBLE_VERIFICATION:
		return "verification"
	case BUBBLE_DRAIN:
		return "drain"
	case BUBBLE_STABILIZE:
		return "stabilize"
	case BUBBLE_PRESSURIZE:
		return "pressurize"
	case BUBBLE_COMPLETE:
		return "complete"
	default:
		panic("invalid bubble phase")
	}
}

type BubbleState struct {
	phase     BubblePhase
	dwell_s   float64 // time the current entry condition has been continuously held, s
	elapsed_s float64 // time spent in the current phase, s
	stalled   bool    // phase exceeded its expected time bound (sticky)
}

func NewBubbleState() BubbleState {
	return BubbleState{phase: BUBBLE_NONE}
}

// Whether the plant is still operated water-solid: no committed steam space
// before the controlled drain begins.
func (bs BubbleState) water_solid() bool {
	switch bs.phase {
	case BUBBLE_NONE, BUBBLE_DETECTION, BUBBLE_VERIFICATION:
		return true
	case BUBBLE_DRAIN, BUBBLE_STABILIZE, BUBBLE_PRESSURIZE, BUBBLE_COMPLETE:
		return false
	default:
		panic("invalid bubble phase")
	}
}

// Debounce dwell before a detected saturation is considered verified, s
func get_detection_dwell_s() float64 {
	return 60.0
}

// Hold period at the drain target before handing to pressure control, s
func get_stabilize_dwell_s() float64 {
	return 300.0
}

// Expected time bound of each phase, s. Zero means unbounded. Exceeding the
// bound marks the phase stalled; it never reverts.
func get_phase_time_bound_s(p BubblePhase) float64 {
	switch p {
	case BUBBLE_NONE, BUBBLE_COMPLETE:
		return 0.0
	case BUBBLE_DETECTION:
		return 1800.0
	case BUBBLE_VERIFICATION:
		return 600.0
	case BUBBLE_DRAIN:
		return 7200.0
	case BUBBLE_STABILIZE:
		return 900.0
	case BUBBLE_PRESSURIZE:
		return 14400.0
	default:
		panic("invalid bubble phase")
	}
}

// Outcome of one state-machine advance. A transition and a stall cannot
// both fire on the same step.
type BubbleOutcome struct {
	state       BubbleState
	transition  bool
	old_phase   BubblePhase
	trigger     string
	stalled_now bool
	drain_dm    float64 // pzr-to-loop transfer requested for the next step, lbm
}

/*
Advances the bubble-formation machine against the just-solved conditions.

	Args:
	    bs: machine state entering the step
	    c: conditions after this step's solve
	    dt: timestep, s

	Returns:
	    outcome; the caller stores outcome.state and routes drain_dm as the
	    next step's transfer intent

	Notes:
	    Transitions are strictly forward. An unmet entry condition only
	    resets the dwell timer, never the phase; a phase past its expected
	    time bound reports stalled and stays active.
*/
func advance_bubble(bs BubbleState, c *Conditions, dt float64) BubbleOutcome {
	out := BubbleOutcome{state: bs, old_phase: bs.phase}
	out.state.elapsed_s += dt

	to := func(next BubblePhase, trigger string) {
		out.state.phase = next
		out.state.dwell_s = 0.0
		out.state.elapsed_s = 0.0
		out.state.stalled = false
		out.transition = true
		out.trigger = trigger
	}

	// Boiling onset is judged as the fluid's saturation pressure catching
	// system pressure, which keeps the check on a single property fit.
	p_sat, _ := get_p_sat(c.theta_pzr_n)

	switch bs.phase {
	case BUBBLE_NONE:
		if p_sat >= c.p_n {
			to(BUBBLE_DETECTION, fmt.Sprintf("pzr saturation pressure %.1f psia reached system pressure %.1f psia (%.1fF)", p_sat, c.p_n, c.theta_pzr_n))
		}

	case BUBBLE_DETECTION:
		if c.m_g_pzr_n > 0.0 || p_sat >= c.p_n {
			out.state.dwell_s += dt
		} else {
			out.state.dwell_s = 0.0
		}
		if out.state.dwell_s >= get_detection_dwell_s() {
			to(BUBBLE_VERIFICATION, fmt.Sprintf("saturation held %.0fs", get_detection_dwell_s()))
		}

	case BUBBLE_VERIFICATION:
		to(BUBBLE_DRAIN, "bubble verified; controlled drain initiated")

	case BUBBLE_DRAIN:
		frac := c.v_g_pzr_n / get_v_pzr()
		if frac >= get_bubble_target_fraction() {
			to(BUBBLE_STABILIZE, fmt.Sprintf("steam fraction %.3f reached target %.3f", frac, get_bubble_target_fraction()))
		} else {
			out.drain_dm = get_drain_rate() * dt
		}

	case BUBBLE_STABILIZE:
		out.state.dwell_s += dt
		if out.state.dwell_s >= get_stabilize_dwell_s() {
			to(BUBBLE_PRESSURIZE, fmt.Sprintf("level and pressure held %.0fs", get_stabilize_dwell_s()))
		}

	case BUBBLE_PRESSURIZE:
		dp := c.p_n - get_p_noload()
		if dp < 0.0 {
			dp = -dp
		}
		if dp <= get_p_band() {
			to(BUBBLE_COMPLETE, fmt.Sprintf("pressure %.1f psia within %.0f psi of no-load program", c.p_n, get_p_band()))
		}

	case BUBBLE_COMPLETE:
		// Terminal. No path leaves COMPLETE.

	default:
		panic("invalid bubble phase")
	}

	if !out.transition {
		bound := get_phase_time_bound_s(bs.phase)
		if bound > 0.0 && out.state.elapsed_s > bound && !bs.stalled {
			out.state.stalled = true
			out.stalled_now = true
		}
	}

	return out
}
