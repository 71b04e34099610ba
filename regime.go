package main

import (
	"gonum.org/v1/gonum/floats"
)

// Operating regime selected by the coupling factor.
type Regime int

const (
	REGIME_ISOLATED Regime = iota + 1 // alpha == 0: no forced circulation
	REGIME_BLENDED                    // 0 < alpha < 1: pumps ramping
	REGIME_COUPLED                    // alpha == 1: full forced circulation
)

func (r Regime) String() string {
	switch r {
	case REGIME_ISOLATED:
		return "isolated"
	case REGIME_BLENDED:
		return "blended"
	case REGIME_COUPLED:
		return "coupled"
	default:
		panic("invalid regime")
	}
}

/*
Coupling factor from live pump state.

	Args:
	    n_pumps: running reactor coolant pumps
	    rated_flow_frac: per-pump flow as a fraction of rated (ramp state)

	Returns:
	    alpha in [0, 1]
*/
func get_alpha(n_pumps int, rated_flow_frac float64) float64 {
	a := float64(n_pumps) * rated_flow_frac / float64(get_n_pumps_installed())
	if a < 0.0 {
		return 0.0
	}
	if a > 1.0 {
		return 1.0
	}
	return a
}

func get_regime(alpha float64) Regime {
	switch {
	case alpha <= 0.0:
		return REGIME_ISOLATED
	case alpha >= 1.0:
		return REGIME_COUPLED
	default:
		return REGIME_BLENDED
	}
}

// Enthalpy carried across the primary envelope by this step's verified
// boundary flows, Btu. Inflows enter at charging temperature; liquid
// outflows leave at loop temperature; relief leaves as saturated steam.
func _boundary_energy(c *Conditions, flows []FlowIntent) float64 {
	h_in, _ := get_h_w(get_theta_charging())
	h_loop := _h_liquid(c.theta_loop_n, c.p_n)
	h_g, _ := get_h_g_sat(c.p_n)

	var u float64
	for _, fi := range flows {
		switch fi.kind {
		case FLOW_CHARGING_IN, FLOW_SEAL_INJ_IN:
			u += fi.dm * h_in
		case FLOW_LETDOWN_OUT, FLOW_SEAL_RET_OUT:
			u -= fi.dm * h_loop
		case FLOW_RELIEF_OUT:
			u -= fi.dm * h_g
		default:
			panic("invalid flow kind")
		}
	}
	return u
}

/*
Advances loop and pressurizer as one combined equilibrium system (full
forced circulation). The solve takes the total-mass constraint as an input
and back-computes the loop water mass; it never recomputes the total.

	Args:
	    c: conditions at the start of the step
	    m_solve: total primary mass constraint, lbm
	    in: control inputs
	    flows: this step's verified boundary flows (already on the ledger;
	           needed here only for their enthalpy)
	    dt: timestep, s
	    mode: mass bookkeeping mode
*/
func step_coupled(c *Conditions, m_solve float64, in ControlInput, flows []FlowIntent, dt float64, mode MassBookMode) (RegimeState, error) {
	u_g, _ := get_u_g_sat(c.p_n)
	u_prev := c.m_w_loop_n*_u_liquid(c.theta_loop_n, c.p_n) +
		c.m_w_pzr_n*_u_liquid(c.theta_pzr_n, c.p_n) +
		c.m_g_pzr_n*u_g

	q := (in.heater_kw+float64(in.n_pumps)*get_q_pump_kw())*get_btu_s_per_kw() -
		in.q_secondary - in.q_rhr

	u_target := u_prev + q*dt + _boundary_energy(c, flows)

	v_total := get_v_loop() + get_v_pzr()
	p_lo, p_hi := get_p_bracket()
	res, err := solve_equilibrium(m_solve, v_total, u_target, p_lo, p_hi)
	if err != nil {
		return RegimeState{iterations: res.iterations}, err
	}

	rs := RegimeState{
		p:             res.p,
		theta_loop:    res.theta,
		theta_pzr:     res.theta,
		iterations:    res.iterations,
		steam_clamped: res.steam_clamped,
		extrapolated:  res.extrapolated,
	}

	if res.two_phase {
		// Steam collects in the pressurizer dome.
		v_g_pzr := res.v_g
		if v_g_pzr > get_v_pzr() {
			v_g_pzr = get_v_pzr()
		}
		rho_f, _ := get_rho_f_sat(res.p)
		rs.v_g_pzr = v_g_pzr
		rs.v_w_pzr = get_v_pzr() - v_g_pzr
		rs.m_g_pzr = res.m_g
		rs.m_w_pzr = rho_f * rs.v_w_pzr
	} else {
		rho, _ := get_rho_w(res.theta, res.p)
		rs.v_g_pzr = 0.0
		rs.v_w_pzr = get_v_pzr()
		rs.m_g_pzr = 0.0
		rs.m_w_pzr = rho * get_v_pzr()
	}

	switch mode {
	case BOOK_LEDGER:
		rs.m_w_loop = m_solve - rs.m_w_pzr - rs.m_g_pzr
	case BOOK_COMPONENT_SUM_LEGACY:
		rho, _ := get_rho_w(rs.theta_loop, rs.p)
		rs.m_w_loop = rho * get_v_loop()
	default:
		panic("invalid mass book mode")
	}

	return rs, nil
}

/*
Regime dispatch: selects or blends the isolated and coupled paths by the
coupling factor. At the endpoints exactly one path runs, so the blended
result is seamless at alpha = 0 and alpha = 1 by construction.

Whichever path (or blend) returns here is the sole writer of the step's
physics state; earlier intermediate values are inputs, never independent
mutations.
*/
func step_regime(c *Conditions, m_solve float64, in ControlInput, flows []FlowIntent, drain_dm, dt float64, mode MassBookMode, alpha float64) (RegimeState, error) {
	switch get_regime(alpha) {
	case REGIME_ISOLATED:
		return step_isolated(c, m_solve, in, drain_dm, dt, mode)

	case REGIME_COUPLED:
		return step_coupled(c, m_solve, in, flows, dt, mode)

	case REGIME_BLENDED:
		iso, err := step_isolated(c, m_solve, in, drain_dm, dt, mode)
		if err != nil {
			return iso, err
		}
		cpl, err := step_coupled(c, m_solve, in, flows, dt, mode)
		if err != nil {
			return cpl, err
		}

		v := iso.to_vec()
		floats.Scale(1.0-alpha, v)
		floats.AddScaled(v, alpha, cpl.to_vec())

		rs := _regime_state_from_vec(v)
		if mode == BOOK_LEDGER {
			// Re-close the blend on the mass constraint so the component
			// sum survives blending exactly.
			rs.m_w_loop = m_solve - rs.m_w_pzr - rs.m_g_pzr
		}
		if iso.iterations > cpl.iterations {
			rs.iterations = iso.iterations
		} else {
			rs.iterations = cpl.iterations
		}
		rs.steam_clamped = iso.steam_clamped || cpl.steam_clamped
		rs.extrapolated = iso.extrapolated || cpl.extrapolated
		return rs, nil

	default:
		panic("invalid regime")
	}
}

// The one place a candidate state becomes the step's Conditions.
func apply_regime_state(c *Conditions, rs RegimeState, alpha float64) *Conditions {
	next := NewConditions(
		rs.p,
		rs.theta_loop,
		rs.theta_pzr,
		rs.m_w_loop,
		rs.m_w_pzr,
		rs.m_g_pzr,
		rs.v_w_pzr,
		rs.v_g_pzr,
	)
	next.alpha_n = alpha
	next.bubble = c.bubble
	return next
}
