package main

// Candidate per-step state produced by one physics path. Only the regime
// dispatcher turns a RegimeState into the step's Conditions; the paths
// themselves never write shared state.
type RegimeState struct {
	p             float64 // psia
	theta_loop    float64 // F
	theta_pzr     float64 // F
	m_w_loop      float64 // lbm
	m_w_pzr       float64 // lbm
	m_g_pzr       float64 // lbm
	v_w_pzr       float64 // ft3
	v_g_pzr       float64 // ft3
	iterations    int
	steam_clamped bool
	extrapolated  bool
}

// Blendable physics fields as a vector, in a fixed order shared with
// _regime_state_from_vec.
func (rs RegimeState) to_vec() []float64 {
	return []float64{
		rs.p, rs.theta_loop, rs.theta_pzr,
		rs.m_w_loop, rs.m_w_pzr, rs.m_g_pzr,
		rs.v_w_pzr, rs.v_g_pzr,
	}
}

func _regime_state_from_vec(v []float64) RegimeState {
	return RegimeState{
		p: v[0], theta_loop: v[1], theta_pzr: v[2],
		m_w_loop: v[3], m_w_pzr: v[4], m_g_pzr: v[5],
		v_w_pzr: v[6], v_g_pzr: v[7],
	}
}

/*
Advances loop and pressurizer as thermally decoupled regions (no forced
circulation). The loop is a lumped water+metal thermal mass. Before a
bubble exists the system is water-solid and pressure comes from the
compressed-liquid volume closure; afterwards the pressurizer is solved as
its own small two-phase system, which then owns system pressure.

	Args:
	    c: conditions at the start of the step
	    m_solve: total primary mass constraint, lbm (ledger under BOOK_LEDGER)
	    in: control inputs for the step
	    drain_dm: pressurizer-to-loop transfer requested by the bubble machine, lbm
	    dt: timestep, s
	    mode: mass bookkeeping mode

	Returns:
	    candidate state; no Conditions or ledger fields are written here
*/
func step_isolated(c *Conditions, m_solve float64, in ControlInput, drain_dm, dt float64, mode MassBookMode) (RegimeState, error) {
	// Loop lumped heat balance. Pump heat still enters the coolant when
	// pumps run; in the pure isolated regime the count is zero.
	q_loop := float64(in.n_pumps)*get_q_pump_kw()*get_btu_s_per_kw() - in.q_secondary - in.q_rhr
	cap_loop := c.m_w_loop_n*get_cp_w() + get_m_metal_loop()*get_cp_metal()
	theta_loop := c.theta_loop_n + q_loop*dt/cap_loop

	bubbled := c.bubble.phase != BUBBLE_NONE || c.m_g_pzr_n > 0.0

	if !bubbled {
		q_pzr := in.heater_kw * get_btu_s_per_kw()
		cap_pzr := c.m_w_pzr_n*get_cp_w() + get_m_metal_pzr()*get_cp_metal()
		theta_pzr := c.theta_pzr_n + q_pzr*dt/cap_pzr

		// Water-solid pressure from volume closure: the inventory has to
		// fit the fixed system volume as compressed liquid. The linear
		// compressibility correction makes the closure closed-form in p.
		p_sat_loop, ex1 := get_p_sat(theta_loop)
		p_sat_pzr, ex2 := get_p_sat(theta_pzr)
		rho_loop_sat, ex3 := get_rho_w(theta_loop, p_sat_loop)
		rho_pzr_sat, ex4 := get_rho_w(theta_pzr, p_sat_pzr)

		a := rho_loop_sat * get_v_loop()
		b := rho_pzr_sat * get_v_pzr()
		beta := get_beta_w()
		p := (m_solve - a - b + beta*(a*p_sat_loop+b*p_sat_pzr)) / (beta * (a + b))

		// Flashing floor: pressure cannot fall below the saturation
		// pressure of the hottest region. Reaching the floor is boiling
		// onset, which the bubble machine observes as p_sat catching p.
		if p_sat_pzr > p {
			p = p_sat_pzr
		}

		rho_pzr, ex5 := get_rho_w(theta_pzr, p)
		m_w_pzr := rho_pzr * get_v_pzr()

		rs := RegimeState{
			p:            p,
			theta_loop:   theta_loop,
			theta_pzr:    theta_pzr,
			m_w_pzr:      m_w_pzr,
			m_g_pzr:      0.0,
			v_w_pzr:      get_v_pzr(),
			v_g_pzr:      0.0,
			extrapolated: ex1 || ex2 || ex3 || ex4 || ex5,
		}
		rs.m_w_loop = _close_loop_mass(rs, m_solve, theta_loop, p, mode)
		return rs, nil
	}

	// Two-phase pressurizer solved over its own volume; its converged
	// pressure is the system pressure in this regime.
	m_pzr_prev := c.m_w_pzr_n + c.m_g_pzr_n

	u_g, _ := get_u_g_sat(c.p_n)
	u_pzr := c.m_w_pzr_n*_u_liquid(c.theta_pzr_n, c.p_n) + c.m_g_pzr_n*u_g

	// Thermal-expansion surge: the loop holds exactly its volume at the
	// new temperature; the excess moves through the surge line.
	rho_loop, ex_rho := get_rho_w(theta_loop, c.p_n)
	m_w_loop_avail := m_solve - m_pzr_prev
	surge := m_w_loop_avail - rho_loop*get_v_loop()

	dm_spray := in.spray_lbm_s * dt

	m_pzr := m_pzr_prev + surge + dm_spray - drain_dm

	h_loop := _h_liquid(theta_loop, c.p_n)
	h_pzr := _h_liquid(c.theta_pzr_n, c.p_n)
	q_heater := in.heater_kw * get_btu_s_per_kw()

	u_pzr += q_heater * dt
	u_pzr += dm_spray * h_loop
	u_pzr -= drain_dm * h_pzr
	if surge >= 0.0 {
		u_pzr += surge * h_loop
	} else {
		u_pzr += surge * h_pzr
	}

	p_lo, p_hi := get_p_bracket()
	res, err := solve_equilibrium(m_pzr, get_v_pzr(), u_pzr, p_lo, p_hi)
	if err != nil {
		return RegimeState{iterations: res.iterations}, err
	}

	rs := RegimeState{
		p:             res.p,
		theta_loop:    theta_loop,
		theta_pzr:     res.theta,
		m_w_pzr:       res.m_f,
		m_g_pzr:       res.m_g,
		v_w_pzr:       res.v_f,
		v_g_pzr:       res.v_g,
		iterations:    res.iterations,
		steam_clamped: res.steam_clamped,
		extrapolated:  res.extrapolated || ex_rho,
	}
	rs.m_w_loop = _close_loop_mass(rs, m_solve, theta_loop, res.p, mode)
	return rs, nil
}

// Loop water mass under the selected bookkeeping mode. Under BOOK_LEDGER the
// loop closes against the total-mass constraint; the legacy mode recomputes
// it from volume x density, which is exactly how boundary flows get lost.
func _close_loop_mass(rs RegimeState, m_solve, theta_loop, p float64, mode MassBookMode) float64 {
	switch mode {
	case BOOK_LEDGER:
		return m_solve - rs.m_w_pzr - rs.m_g_pzr
	case BOOK_COMPONENT_SUM_LEGACY:
		rho, _ := get_rho_w(theta_loop, p)
		return rho * get_v_loop()
	default:
		panic("invalid mass book mode")
	}
}
