package main

import "fmt"

/*
Pressurizer level program setpoint.

	Args:
	    theta_avg: loop average coolant temperature, F

	Returns:
	    programmed level, % of pressurizer volume

	Notes:
	    Linear ramp between the cold and hot ends of the program, clamped
	    outside them.
*/
func get_level_setpoint(theta_avg float64) float64 {
	lo, hi := get_theta_program_lo(), get_theta_program_hi()
	if theta_avg <= lo {
		return get_level_program_min()
	}
	if theta_avg >= hi {
		return get_level_program_max()
	}
	span := get_level_program_max() - get_level_program_min()
	return get_level_program_min() + span*(theta_avg-lo)/(hi-lo)
}

// Engage/release of the low-level letdown cutout, reported to the event log.
type OverrideChange struct {
	engaged bool
	trigger string
}

// Computes the step's verified boundary flows from the level-control law
// and the running-pump seal rates. Pure producer: the intents it returns
// are consumed exactly once by the mass ledger.
type BoundaryFlowController struct {
	integral_pct_s   float64 // accumulated level error, %*s
	letdown_isolated bool    // low-level cutout currently engaged
}

func NewBoundaryFlowController() *BoundaryFlowController {
	return &BoundaryFlowController{}
}

/*
Boundary flows for one step.

	Args:
	    c: conditions at the start of the step
	    in: control inputs
	    dt: timestep, s

	Returns:
	    (1) tagged flow intents (dm >= 0 each; direction is in the kind)
	    (2) safety-override changes that fired this step

	Notes:
	    Water-solid, the CVCS holds RCS pressure by biasing charging
	    against letdown. Once the drain begins, charging follows a PI law
	    on pressurizer level against the temperature-programmed setpoint;
	    the integral term only accumulates while the output is unsaturated
	    (anti-windup). Below the low-level cutout, letdown is
	    force-isolated no matter what the law asks for; the override is
	    explicit, not a clamp side effect.
*/
func (b *BoundaryFlowController) compute(c *Conditions, in ControlInput, dt float64) ([]FlowIntent, []OverrideChange) {
	var flows []FlowIntent
	var overrides []OverrideChange

	// Seal flows scale with running pumps.
	n := float64(in.n_pumps)
	if in.n_pumps > 0 {
		flows = append(flows,
			FlowIntent{dm: n * get_w_seal_inj() * dt, kind: FLOW_SEAL_INJ_IN},
			FlowIntent{dm: n * get_w_seal_ret() * dt, kind: FLOW_SEAL_RET_OUT},
		)
	}

	if in.cvcs && c.bubble.water_solid() {
		// No bubble yet: the level program is meaningless at a 100% level,
		// so the CVCS holds water-solid RCS pressure instead by biasing
		// charging against the fixed letdown.
		w_charging := get_w_letdown() - get_kp_solid()*(c.p_n-get_p_solid())
		if w_charging < 0.0 {
			w_charging = 0.0
		}
		if w_charging > get_w_charging_max() {
			w_charging = get_w_charging_max()
		}
		if w_charging > 0.0 {
			flows = append(flows, FlowIntent{dm: w_charging * dt, kind: FLOW_CHARGING_IN})
		}
		flows = append(flows, FlowIntent{dm: get_w_letdown() * dt, kind: FLOW_LETDOWN_OUT})
	}

	if in.cvcs && !c.bubble.water_solid() {
		// PI level control. The balance point is the normal letdown rate,
		// so zero error holds charging == letdown.
		setpoint := get_level_setpoint(c.theta_avg()) + in.level_bias_pct
		e := setpoint - c.level_pct()

		w_charging := get_w_letdown() + get_level_kp()*e + get_level_ki()*b.integral_pct_s
		saturated := false
		if w_charging < 0.0 {
			w_charging = 0.0
			saturated = true
		}
		if w_charging > get_w_charging_max() {
			w_charging = get_w_charging_max()
			saturated = true
		}
		if !saturated {
			b.integral_pct_s += e * dt
		}

		if w_charging > 0.0 {
			flows = append(flows, FlowIntent{dm: w_charging * dt, kind: FLOW_CHARGING_IN})
		}

		// Low-level cutout takes precedence over the law's numeric output.
		low := c.level_pct() < get_level_cutout_pct()
		if low != b.letdown_isolated {
			b.letdown_isolated = low
			if low {
				overrides = append(overrides, OverrideChange{
					engaged: true,
					trigger: fmt.Sprintf("pzr level %.1f%% below cutout %.1f%%; letdown force-isolated", c.level_pct(), get_level_cutout_pct()),
				})
			} else {
				overrides = append(overrides, OverrideChange{
					engaged: false,
					trigger: fmt.Sprintf("pzr level %.1f%% above cutout %.1f%%; letdown restored", c.level_pct(), get_level_cutout_pct()),
				})
			}
		}
		if !b.letdown_isolated {
			flows = append(flows, FlowIntent{dm: get_w_letdown() * dt, kind: FLOW_LETDOWN_OUT})
		}
	}

	// Safety valves are pressure-actuated, independent of the level law.
	if c.p_n > get_p_safety() {
		flows = append(flows, FlowIntent{dm: get_w_relief() * dt, kind: FLOW_RELIEF_OUT})
	}

	return flows, overrides
}
