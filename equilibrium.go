package main

import (
	"errors"
	"fmt"
	"math"
)

var ErrNoConvergence = errors.New("equilibrium solve did not converge")

// Stored specific internal energy of a liquid inventory, valued the way
// _eval_state values it: liquid at or above local saturation is booked at
// u_f_sat, so a stationary two-phase state reproduces its own energy exactly
// instead of creeping by the residual between the two property fits.
func _u_liquid(theta, p float64) float64 {
	t_sat, _ := get_t_sat(p)
	if theta >= t_sat {
		u, _ := get_u_f_sat(p)
		return u
	}
	u, _ := get_u_w(theta, p)
	return u
}

// Enthalpy counterpart of _u_liquid, for mass moving out of a saturated
// inventory.
func _h_liquid(theta, p float64) float64 {
	t_sat, _ := get_t_sat(p)
	if theta >= t_sat {
		h, _ := get_h_f_sat(p)
		return h
	}
	h, _ := get_h_w(theta)
	return h
}

// Converged thermodynamic state of a fixed mass in a fixed volume.
type EquilibriumResult struct {
	p             float64 // pressure, psia
	theta         float64 // fluid temperature, F (saturation when two-phase)
	m_f           float64 // liquid mass, lbm
	m_g           float64 // vapor mass, lbm
	v_f           float64 // liquid volume, ft3
	v_g           float64 // vapor volume, ft3
	u_total       float64 // total internal energy, Btu
	iterations    int     // pressure iterations consumed
	two_phase     bool    //
	steam_clamped bool    // vapor volume held at the positive minimum
	extrapolated  bool    // a property lookup was clamped to table bounds
}

/*
Thermodynamic state at an assumed pressure. Mass and volume are hard
constraints; the phase split falls out of the volume-fill equation

	m_g = (v_total - m_total*v_f) / (v_g - v_f)

and a non-positive vapor mass selects the single-phase (water-solid)
branch, where the temperature is instead solved from the volume fill of
compressed liquid.
*/
func _eval_state(m_total, v_total, p float64) EquilibriumResult {
	vf, ex1 := get_v_f_sat(p)
	vg, ex2 := get_v_g_sat(p)

	m_g := (v_total - m_total*vf) / (vg - vf)

	if m_g > 0.0 {
		m_f := m_total - m_g
		theta, ex3 := get_t_sat(p)
		uf, ex4 := get_u_f_sat(p)
		ug, ex5 := get_u_g_sat(p)

		v_g_vol := m_g * vg
		clamped := false
		if v_g_vol < get_v_g_min() {
			v_g_vol = get_v_g_min()
			clamped = true
		}

		return EquilibriumResult{
			p:             p,
			theta:         theta,
			m_f:           m_f,
			m_g:           m_g,
			v_f:           v_total - v_g_vol,
			v_g:           v_g_vol,
			u_total:       m_f*uf + m_g*ug,
			two_phase:     true,
			steam_clamped: clamped,
			extrapolated:  ex1 || ex2 || ex3 || ex4 || ex5,
		}
	}

	// Single phase: m_total of compressed liquid exactly fills v_total.
	// Density falls monotonically with temperature, so bisection on theta.
	rho_req := m_total / v_total
	theta_lo, theta_hi := _theta_knots[0], _theta_knots[len(_theta_knots)-1]
	extrapolated := ex1 || ex2

	rho_lo, exl := get_rho_w(theta_lo, p)
	rho_hi, exh := get_rho_w(theta_hi, p)
	extrapolated = extrapolated || exl || exh

	var theta float64
	switch {
	case rho_req >= rho_lo:
		theta = theta_lo
		extrapolated = true
	case rho_req <= rho_hi:
		theta = theta_hi
		extrapolated = true
	default:
		for i := 0; i < 60; i++ {
			mid := 0.5 * (theta_lo + theta_hi)
			rho, ex := get_rho_w(mid, p)
			extrapolated = extrapolated || ex
			if rho > rho_req {
				theta_lo = mid
			} else {
				theta_hi = mid
			}
			if theta_hi-theta_lo < 1.0e-7 {
				break
			}
		}
		theta = 0.5 * (theta_lo + theta_hi)
	}

	uw, exu := get_u_w(theta, p)

	return EquilibriumResult{
		p:            p,
		theta:        theta,
		m_f:          m_total,
		m_g:          0.0,
		v_f:          v_total,
		v_g:          0.0,
		u_total:      m_total * uw,
		two_phase:    false,
		extrapolated: extrapolated || exu,
	}
}

/*
Finds the pressure at which a fixed total mass in a fixed total volume holds
the target internal energy, together with the consistent temperature and
phase split.

	Args:
	    m_total: total fluid mass, lbm (input constraint; never recomputed here)
	    v_total: total volume, ft3
	    u_target: total internal energy, Btu
	    p_lo, p_hi: pressure bracket, psia

	Returns:
	    converged result, or ErrNoConvergence. A non-converged state is
	    never returned as if final: on error the result carries the last
	    iterate for diagnostics only.

	Notes:
	    Internal energy rises monotonically with pressure under both the
	    two-phase and the water-solid branch across the simulator envelope,
	    so a bounded bisection is sufficient and deterministic. The caller
	    owns all state; this function has no side effects.
*/
func solve_equilibrium(m_total, v_total, u_target, p_lo, p_hi float64) (EquilibriumResult, error) {
	lo := _eval_state(m_total, v_total, p_lo)
	hi := _eval_state(m_total, v_total, p_hi)

	u_scale := math.Max(math.Abs(u_target), 1.0)

	if lo.u_total > u_target {
		lo.iterations = 2
		return lo, fmt.Errorf("%w: target energy below bracket floor (u(%.0f psia)=%.4g Btu, target=%.4g Btu)",
			ErrNoConvergence, p_lo, lo.u_total, u_target)
	}
	if hi.u_total < u_target {
		hi.iterations = 2
		return hi, fmt.Errorf("%w: target energy above bracket ceiling (u(%.0f psia)=%.4g Btu, target=%.4g Btu)",
			ErrNoConvergence, p_hi, hi.u_total, u_target)
	}

	var r EquilibriumResult
	for i := 0; i < get_n_iter_max(); i++ {
		p_mid := 0.5 * (p_lo + p_hi)
		r = _eval_state(m_total, v_total, p_mid)
		r.iterations = i + 1 + 2 // bracket endpoints count against the budget

		if math.Abs(r.u_total-u_target)/u_scale <= get_u_tol() {
			return r, nil
		}

		if r.u_total < u_target {
			p_lo = p_mid
		} else {
			p_hi = p_mid
		}
	}

	return r, fmt.Errorf("%w: %d iterations, residual %.3g Btu over [%.2f, %.2f] psia",
		ErrNoConvergence, r.iterations, r.u_total-u_target, p_lo, p_hi)
}
