package main

type Conditions struct {
	p_n          float64     // system pressure, psia
	theta_loop_n float64     // loop average coolant temperature, F
	theta_pzr_n  float64     // pressurizer fluid temperature, F (rides saturation once a bubble exists)
	m_w_loop_n   float64     // loop liquid mass, lbm
	m_w_pzr_n    float64     // pressurizer liquid mass, lbm
	m_g_pzr_n    float64     // pressurizer steam mass, lbm
	v_w_pzr_n    float64     // pressurizer liquid volume, ft3
	v_g_pzr_n    float64     // pressurizer steam volume, ft3
	alpha_n      float64     // loop/pressurizer coupling factor, 0-1
	bubble       BubbleState // bubble-formation state machine
}

func NewConditions(
	p_n float64,
	theta_loop_n float64,
	theta_pzr_n float64,
	m_w_loop_n float64,
	m_w_pzr_n float64,
	m_g_pzr_n float64,
	v_w_pzr_n float64,
	v_g_pzr_n float64,
) *Conditions {
	return &Conditions{
		p_n:          p_n,
		theta_loop_n: theta_loop_n,
		theta_pzr_n:  theta_pzr_n,
		m_w_loop_n:   m_w_loop_n,
		m_w_pzr_n:    m_w_pzr_n,
		m_g_pzr_n:    m_g_pzr_n,
		v_w_pzr_n:    v_w_pzr_n,
		v_g_pzr_n:    v_g_pzr_n,
		bubble:       NewBubbleState(),
	}
}

/*
Initial condition: cold shutdown, fully liquid (water-solid) primary.

	Args:
	    theta_init: uniform coolant temperature, F
	    p_init: fill pressure, psia

	Returns:
	    (1) initial conditions
	    (2) total primary mass, lbm (seed for the mass ledger)
*/
func initialize_conditions_cold(theta_init, p_init float64) (*Conditions, float64) {
	rho, _ := get_rho_w(theta_init, p_init)

	m_w_loop := rho * get_v_loop()
	m_w_pzr := rho * get_v_pzr()

	c := NewConditions(
		p_init,
		theta_init,
		theta_init,
		m_w_loop,
		m_w_pzr,
		0.0,
		get_v_pzr(),
		0.0,
	)

	return c, m_w_loop + m_w_pzr
}

/*
Initial condition: warm plant with a steam bubble already drawn.

	Args:
	    theta_loop: loop coolant temperature, F
	    p_init: system pressure, psia (pressurizer saturated at this pressure)
	    steam_frac: steam volume fraction of the pressurizer, 0-1

	Returns:
	    (1) initial conditions (bubble machine already terminal)
	    (2) total primary mass, lbm
*/
func initialize_conditions_warm(theta_loop, p_init, steam_frac float64) (*Conditions, float64) {
	theta_sat, _ := get_t_sat(p_init)
	rho_f, _ := get_rho_f_sat(p_init)
	rho_g, _ := get_rho_g_sat(p_init)
	rho_loop, _ := get_rho_w(theta_loop, p_init)

	v_g := steam_frac * get_v_pzr()
	v_w := get_v_pzr() - v_g

	c := NewConditions(
		p_init,
		theta_loop,
		theta_sat,
		rho_loop*get_v_loop(),
		rho_f*v_w,
		rho_g*v_g,
		v_w,
		v_g,
	)
	c.bubble.phase = BUBBLE_COMPLETE

	return c, c.m_w_loop_n + c.m_w_pzr_n + c.m_g_pzr_n
}

// Pressurizer indicated level, % of design volume
func (c *Conditions) level_pct() float64 {
	return c.v_w_pzr_n / get_v_pzr() * 100.0
}

// Temperature used by the level program; the pressurizer does not
// participate in the average.
func (c *Conditions) theta_avg() float64 {
	return c.theta_loop_n
}
