package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	ErrHalted          = errors.New("repeated non-convergence; simulation halted")
	ErrDiagnosticsIdle = errors.New("registered diagnostic never executed")
)

// Diagnostic names. Registered at construction; core asserts each executed
// during warm-up so a wired-but-never-invoked check is a configuration
// error, not silent false confidence.
const (
	diag_reconcile = "ledger_reconcile"
	diag_expected  = "expected_mass_check"
	diag_volume    = "pzr_volume_closure"
)

// Owns the fixed per-timestep pipeline: boundary flows -> ledger -> regime
// solve -> rebaseline/reconcile -> bubble machine -> snapshot. All state
// advances through run_tick; nothing mutates Conditions elsewhere.
type Sequence struct {
	dt     float64
	mode   MassBookMode
	ledger *MassLedger
	bfc    *BoundaryFlowController
	elog   *EventLog

	diag map[string]int // diagnostic name -> executions

	pending_drain float64 // pzr-to-loop transfer requested by the bubble machine, lbm
	n_fail        int     // consecutive non-converged steps
	prev_regime   Regime  // 0 until the first step
	prev_alpha    float64

	last_iterations int
	last_drift      float64
	last_degraded   bool
}

/*
Args:

	mode: mass bookkeeping mode; must be supplied, matched exhaustively
	m_initial: total primary mass at the initial condition, lbm
	dt: timestep, s
*/
func NewSequence(mode MassBookMode, m_initial, dt float64) *Sequence {
	switch mode {
	case BOOK_LEDGER, BOOK_COMPONENT_SUM_LEGACY:
	default:
		panic("invalid mass book mode")
	}

	return &Sequence{
		dt:     dt,
		mode:   mode,
		ledger: NewMassLedger(m_initial),
		bfc:    NewBoundaryFlowController(),
		elog:   NewEventLog(),
		diag: map[string]int{
			diag_reconcile: 0,
			diag_expected:  0,
			diag_volume:    0,
		},
	}
}

func (sqc *Sequence) events() *EventLog {
	return sqc.elog
}

func (sqc *Sequence) mass_ledger() *MassLedger {
	return sqc.ledger
}

func (sqc *Sequence) _mark(name string) {
	if _, ok := sqc.diag[name]; !ok {
		panic("unregistered diagnostic: " + name)
	}
	sqc.diag[name]++
}

// Configuration check run after warm-up: every registered diagnostic must
// have executed at least once.
func (sqc *Sequence) assert_diagnostics_ran() error {
	var idle []string
	for name, n := range sqc.diag {
		if n == 0 {
			idle = append(idle, name)
		}
	}
	if len(idle) > 0 {
		sort.Strings(idle)
		return fmt.Errorf("%w: %s", ErrDiagnosticsIdle, strings.Join(idle, ", "))
	}
	return nil
}

// The current conditions as a candidate state, used to hold the last good
// state across a non-converged step.
func _state_of(c *Conditions) RegimeState {
	return RegimeState{
		p:          c.p_n,
		theta_loop: c.theta_loop_n,
		theta_pzr:  c.theta_pzr_n,
		m_w_loop:   c.m_w_loop_n,
		m_w_pzr:    c.m_w_pzr_n,
		m_g_pzr:    c.m_g_pzr_n,
		v_w_pzr:    c.v_w_pzr_n,
		v_g_pzr:    c.v_g_pzr_n,
	}
}

/*
Advances the simulation one timestep.

	Args:
	    n: step index (time at the end of the step is (n+1)*dt)
	    c: conditions entering the step
	    in: control inputs for the step
	    rec: recorder for the output snapshot; may be nil

	Returns:
	    conditions after the step. A non-converged solve holds the prior
	    state and reports a degraded step; get_n_fail_max() consecutive
	    failures return ErrHalted.
*/
func (sqc *Sequence) run_tick(n int, c *Conditions, in ControlInput, rec *Recorder) (*Conditions, error) {
	t := float64(n+1) * sqc.dt

	// 1. Boundary flows, then the ledger. Flows reach the ledger before
	// the solve so the solver sees this step's mass constraint.
	flows, overrides := sqc.bfc.compute(c, in, sqc.dt)
	for _, ov := range overrides {
		old, now := "letdown_open", "letdown_isolated"
		if !ov.engaged {
			old, now = now, old
		}
		sqc.elog.emit(Event{Step: n, Time_s: t, Kind: EVENT_OVERRIDE, Old: old, New: now, Trigger: ov.trigger})
	}
	for _, fi := range flows {
		if err := sqc.ledger.apply_flow(fi); err != nil {
			return c, err
		}
	}

	// 2. Regime selection from live pump state.
	alpha := get_alpha(in.n_pumps, in.rated_flow_frac)
	regime := get_regime(alpha)
	if sqc.prev_regime != 0 && regime != sqc.prev_regime {
		sqc.elog.emit(Event{
			Step: n, Time_s: t, Kind: EVENT_REGIME,
			Old:     fmt.Sprintf("%s (alpha=%.3f)", sqc.prev_regime, sqc.prev_alpha),
			New:     fmt.Sprintf("%s (alpha=%.3f)", regime, alpha),
			Trigger: fmt.Sprintf("%d pumps at %.2f rated flow", in.n_pumps, in.rated_flow_frac),
		})
	}

	var m_solve float64
	switch sqc.mode {
	case BOOK_LEDGER:
		m_solve = sqc.ledger.m_total_n
	case BOOK_COMPONENT_SUM_LEGACY:
		m_solve = c.m_w_loop_n + c.m_w_pzr_n + c.m_g_pzr_n
	default:
		panic("invalid mass book mode")
	}

	drain := sqc.pending_drain
	sqc.pending_drain = 0.0

	// 3. Regime-appropriate solve. The dispatcher's result is the sole
	// writer of this step's physics state.
	rs, solve_err := step_regime(c, m_solve, in, flows, drain, sqc.dt, sqc.mode, alpha)

	var c_next *Conditions
	degraded := false
	if solve_err != nil {
		if !errors.Is(solve_err, ErrNoConvergence) {
			return c, solve_err
		}
		// Hold the last state; the failure is reported, never disguised.
		sqc.n_fail++
		degraded = true
		sqc.elog.emit(Event{
			Step: n, Time_s: t, Kind: EVENT_DEGRADED,
			Old: "converged", New: fmt.Sprintf("held (consecutive failures: %d)", sqc.n_fail),
			Trigger: solve_err.Error(),
		})
		held := _state_of(c)
		held.iterations = rs.iterations
		rs = held
		c_next = apply_regime_state(c, held, alpha)
	} else {
		sqc.n_fail = 0
		c_next = apply_regime_state(c, rs, alpha)
	}
	sqc.prev_regime = regime
	sqc.prev_alpha = alpha

	// 4. One-shot rebaseline on the first converged coupled step.
	if sqc.mode == BOOK_LEDGER && regime == REGIME_COUPLED && !degraded && sqc.ledger.rebase == REBASE_PENDING {
		prior := sqc.ledger.m_total_n
		sum := c_next.m_w_loop_n + c_next.m_w_pzr_n + c_next.m_g_pzr_n
		mismatch, err := sqc.ledger.rebaseline(sum)
		if err != nil {
			return c_next, err
		}
		sqc.elog.emit(Event{
			Step: n, Time_s: t, Kind: EVENT_REBASE,
			Old: fmt.Sprintf("%.2f lbm (prior-regime estimate)", prior),
			New: fmt.Sprintf("%.2f lbm (component capture)", sum),
			Trigger: fmt.Sprintf("first coupled step; relative mismatch %.3e", mismatch),
		})
		if mismatch > get_rebase_check_frac() {
			sqc.elog.emit(Event{
				Step: n, Time_s: t, Kind: EVENT_DRIFT,
				Old: "rebase_check", New: "rebase_check_failed",
				Trigger: fmt.Sprintf("capture disagrees with prior-regime estimate by %.3e", mismatch),
			})
		}
	}
	if sqc.mode == BOOK_COMPONENT_SUM_LEGACY && !degraded {
		sqc.ledger.overwrite_total_legacy(c_next.m_w_loop_n + c_next.m_w_pzr_n + c_next.m_g_pzr_n)
	}

	// 5. Diagnostics. Unconditional: a held step still reconciles.
	drift, sev := sqc.ledger.reconcile(c_next)
	sqc._mark(diag_reconcile)
	if sev != DRIFT_OK {
		sqc.elog.emit(Event{
			Step: n, Time_s: t, Kind: EVENT_DRIFT,
			Old: "0", New: fmt.Sprintf("%.3f lbm", drift),
			Trigger: fmt.Sprintf("component-sum reconciliation: %s", sev),
		})
	}

	expected := sqc.ledger.expected_mass()
	ediff := sqc.ledger.m_total_n - expected
	sqc._mark(diag_expected)
	if math.Abs(ediff)/expected > get_drift_warn_frac() {
		sqc.elog.emit(Event{
			Step: n, Time_s: t, Kind: EVENT_DRIFT,
			Old: fmt.Sprintf("%.2f lbm expected", expected),
			New: fmt.Sprintf("%.2f lbm booked", sqc.ledger.m_total_n),
			Trigger: "boundary-flow cross-check",
		})
	}

	vsum := c_next.v_w_pzr_n + c_next.v_g_pzr_n
	sqc._mark(diag_volume)
	if math.Abs(vsum-get_v_pzr()) > 0.01 {
		sqc.elog.emit(Event{
			Step: n, Time_s: t, Kind: EVENT_DRIFT,
			Old: fmt.Sprintf("%.2f ft3 design", get_v_pzr()),
			New: fmt.Sprintf("%.2f ft3 booked", vsum),
			Trigger: "pressurizer volume closure",
		})
	}

	sqc.last_iterations = rs.iterations
	sqc.last_drift = drift
	sqc.last_degraded = degraded

	// 6. Bubble-formation machine, after the step's state is final.
	out := advance_bubble(c_next.bubble, c_next, sqc.dt)
	c_next.bubble = out.state
	if out.transition {
		sqc.elog.emit(Event{
			Step: n, Time_s: t, Kind: EVENT_BUBBLE,
			Old: out.old_phase.String(), New: out.state.phase.String(),
			Trigger: out.trigger,
		})
	}
	if out.stalled_now {
		sqc.elog.emit(Event{
			Step: n, Time_s: t, Kind: EVENT_STALL,
			Old: out.state.phase.String(), New: out.state.phase.String() + " (stalled)",
			Trigger: fmt.Sprintf("no exit after %.0fs (bound %.0fs)", out.state.elapsed_s, get_phase_time_bound_s(out.state.phase)),
		})
	}
	sqc.pending_drain = out.drain_dm

	// 7. Output snapshot.
	if rec != nil {
		rec.record(n, t, c_next, sqc)
	}

	if degraded && sqc.n_fail >= get_n_fail_max() {
		return c_next, fmt.Errorf("%w: %d consecutive steps", ErrHalted, sqc.n_fail)
	}

	return c_next, nil
}
