package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/interp"
)

// Saturation-line property table for light water, 1 - 3000 psia.
// Values from the 1967 ASME steam tables; the valid simulator envelope is
// 15 - 2500 psia and the table carries margin on both ends so that a clamp
// at the envelope edge still interpolates rather than extrapolates.
var (
	_p_knots = []float64{
		1.0, 5.0, 10.0, 14.696, 20.0, 30.0, 40.0, 60.0, 80.0, 100.0,
		150.0, 200.0, 250.0, 300.0, 400.0, 500.0, 600.0, 700.0, 800.0, 1000.0,
		1200.0, 1400.0, 1600.0, 1800.0, 2000.0, 2200.0, 2400.0, 2600.0, 2800.0, 3000.0,
	}

	// Saturation temperature, F
	_t_sat_knots = []float64{
		101.74, 162.24, 193.21, 212.00, 227.96, 250.34, 267.25, 292.71, 312.04, 327.82,
		358.43, 381.80, 400.97, 417.35, 444.60, 467.01, 486.20, 503.08, 518.21, 544.58,
		567.19, 587.07, 604.87, 621.02, 635.80, 649.45, 662.11, 673.91, 684.96, 695.33,
	}

	// Saturated vapor specific volume, ft3/lbm
	_v_g_knots = []float64{
		333.6, 73.52, 38.42, 26.80, 20.087, 13.744, 10.497, 7.174, 5.471, 4.432,
		3.014, 2.288, 1.8438, 1.5433, 1.1613, 0.9278, 0.7698, 0.6556, 0.5690, 0.4459,
		0.3623, 0.3016, 0.2552, 0.2183, 0.18813, 0.16312, 0.14076, 0.12110, 0.10305, 0.08404,
	}

	// Latent heat of vaporization, Btu/lbm
	_h_fg_knots = []float64{
		1036.3, 1001.0, 982.1, 970.3, 960.1, 945.3, 933.7, 915.5, 901.1, 888.8,
		863.6, 843.0, 825.1, 809.0, 780.5, 755.0, 731.6, 709.7, 688.9, 649.4,
		611.7, 574.7, 538.0, 500.6, 462.0, 420.4, 374.8, 321.7, 257.0, 163.7,
	}
)

// Compressed-liquid property table along the saturation line, 32 - 680 F.
// The pressure correction is applied separately (see get_rho_w).
var (
	_theta_knots = []float64{
		32.0, 60.0, 100.0, 150.0, 200.0, 250.0, 300.0, 350.0, 400.0, 450.0, 500.0, 550.0, 600.0, 650.0, 680.0,
	}

	// Saturated liquid density, lbm/ft3
	_rho_w_knots = []float64{
		62.42, 62.36, 61.99, 61.19, 60.12, 58.82, 57.31, 55.57, 53.62, 51.39, 48.90, 45.90, 42.30, 37.50, 32.70,
	}

	// Liquid enthalpy, Btu/lbm
	_h_w_knots = []float64{
		0.00, 28.06, 67.97, 117.89, 167.99, 218.48, 269.59, 321.63, 374.97, 430.10, 487.80, 549.10, 616.70, 695.50, 758.50,
	}

	// Saturation pressure, psia
	_p_sat_knots = []float64{
		0.0886, 0.2563, 0.9492, 3.718, 11.526, 29.825, 67.013, 134.63, 247.31, 422.6, 680.8, 1045.2, 1542.9, 2208.2, 2708.6,
	}
)

// One-time-built monotone cubic fits. Pressure-keyed tables are fitted
// against log10(p) because the knots span three decades.
type _prop_fits struct {
	t_sat    interp.FritschButland
	v_g_ln   interp.FritschButland
	h_fg     interp.FritschButland
	p_sat_ln interp.FritschButland
	rho_w    interp.FritschButland
	h_w      interp.FritschButland
}

var (
	_fits      _prop_fits
	_fits_once sync.Once
)

func _build_fits() {
	lp := make([]float64, len(_p_knots))
	for i, p := range _p_knots {
		lp[i] = math.Log10(p)
	}
	ln_v_g := make([]float64, len(_v_g_knots))
	for i, v := range _v_g_knots {
		ln_v_g[i] = math.Log(v)
	}
	ln_p_sat := make([]float64, len(_p_sat_knots))
	for i, p := range _p_sat_knots {
		ln_p_sat[i] = math.Log(p)
	}

	must := func(err error) {
		if err != nil {
			panic("invalid property table: " + err.Error())
		}
	}
	must(_fits.t_sat.Fit(lp, _t_sat_knots))
	must(_fits.v_g_ln.Fit(lp, ln_v_g))
	must(_fits.h_fg.Fit(lp, _h_fg_knots))
	must(_fits.p_sat_ln.Fit(_theta_knots, ln_p_sat))
	must(_fits.rho_w.Fit(_theta_knots, _rho_w_knots))
	must(_fits.h_w.Fit(_theta_knots, _h_w_knots))
}

// Clamps p to the table range. The second return reports whether the input
// was outside the range (the caller must surface this, never swallow it).
func _clamp_p(p float64) (float64, bool) {
	if p < _p_knots[0] {
		return _p_knots[0], true
	}
	if p > _p_knots[len(_p_knots)-1] {
		return _p_knots[len(_p_knots)-1], true
	}
	return p, false
}

func _clamp_theta(theta float64) (float64, bool) {
	if theta < _theta_knots[0] {
		return _theta_knots[0], true
	}
	if theta > _theta_knots[len(_theta_knots)-1] {
		return _theta_knots[len(_theta_knots)-1], true
	}
	return theta, false
}

/*
Saturation temperature at pressure p.

	Args:
	    p: pressure, psia

	Returns:
	    saturation temperature, F
	    true when p was clamped to the table bounds
*/
func get_t_sat(p float64) (float64, bool) {
	_fits_once.Do(_build_fits)
	pc, ex := _clamp_p(p)
	return _fits.t_sat.Predict(math.Log10(pc)), ex
}

/*
Saturation pressure at liquid temperature theta.

	Args:
	    theta: temperature, F

	Returns:
	    saturation pressure, psia
	    true when theta was clamped to the table bounds
*/
func get_p_sat(theta float64) (float64, bool) {
	_fits_once.Do(_build_fits)
	tc, ex := _clamp_theta(theta)
	return math.Exp(_fits.p_sat_ln.Predict(tc)), ex
}

// Saturated liquid specific volume, ft3/lbm. Derived from the
// compressed-liquid fit at the saturation temperature so the two-phase and
// water-solid branches of the equilibrium solve meet continuously.
func get_v_f_sat(p float64) (float64, bool) {
	theta, ex1 := get_t_sat(p)
	rho, ex2 := get_rho_w(theta, p)
	return 1.0 / rho, ex1 || ex2
}

// Saturated vapor specific volume, ft3/lbm
func get_v_g_sat(p float64) (float64, bool) {
	_fits_once.Do(_build_fits)
	pc, ex := _clamp_p(p)
	return math.Exp(_fits.v_g_ln.Predict(math.Log10(pc))), ex
}

// Saturated liquid density, lbm/ft3
func get_rho_f_sat(p float64) (float64, bool) {
	v, ex := get_v_f_sat(p)
	return 1.0 / v, ex
}

// Saturated vapor density, lbm/ft3
func get_rho_g_sat(p float64) (float64, bool) {
	v, ex := get_v_g_sat(p)
	return 1.0 / v, ex
}

// Saturated liquid enthalpy, Btu/lbm. Same derivation as get_v_f_sat, for
// the same continuity reason.
func get_h_f_sat(p float64) (float64, bool) {
	theta, ex1 := get_t_sat(p)
	h, ex2 := get_h_w(theta)
	return h, ex1 || ex2
}

// Latent heat of vaporization, Btu/lbm
func get_h_fg_sat(p float64) (float64, bool) {
	_fits_once.Do(_build_fits)
	pc, ex := _clamp_p(p)
	return _fits.h_fg.Predict(math.Log10(pc)), ex
}

// Saturated vapor enthalpy, Btu/lbm
func get_h_g_sat(p float64) (float64, bool) {
	hf, ex1 := get_h_f_sat(p)
	hfg, ex2 := get_h_fg_sat(p)
	return hf + hfg, ex1 || ex2
}

// Saturated liquid specific internal energy, Btu/lbm
func get_u_f_sat(p float64) (float64, bool) {
	hf, ex1 := get_h_f_sat(p)
	vf, ex2 := get_v_f_sat(p)
	pc, _ := _clamp_p(p)
	return hf - pc*vf*get_pv_to_btu(), ex1 || ex2
}

// Saturated vapor specific internal energy, Btu/lbm
func get_u_g_sat(p float64) (float64, bool) {
	hg, ex1 := get_h_g_sat(p)
	vg, ex2 := get_v_g_sat(p)
	pc, _ := _clamp_p(p)
	return hg - pc*vg*get_pv_to_btu(), ex1 || ex2
}

/*
Compressed-liquid density.

	Args:
	    theta: liquid temperature, F
	    p: pressure, psia

	Returns:
	    density, lbm/ft3
	    true when any input was clamped

	Notes:
	    Linear compressibility correction about the saturation line,
	    rho(theta, p) = rho_sat(theta) * (1 + beta * (p - p_sat(theta))).
*/
func get_rho_w(theta, p float64) (float64, bool) {
	_fits_once.Do(_build_fits)
	tc, ex1 := _clamp_theta(theta)
	ps, _ := get_p_sat(tc)
	rho := _fits.rho_w.Predict(tc) * (1.0 + get_beta_w()*(p-ps))
	return rho, ex1
}

// Compressed-liquid enthalpy, Btu/lbm. The pressure dependence of liquid
// enthalpy is below the table resolution over the simulator envelope.
func get_h_w(theta float64) (float64, bool) {
	_fits_once.Do(_build_fits)
	tc, ex := _clamp_theta(theta)
	return _fits.h_w.Predict(tc), ex
}

// Compressed-liquid specific internal energy, Btu/lbm
func get_u_w(theta, p float64) (float64, bool) {
	hw, ex1 := get_h_w(theta)
	rho, ex2 := get_rho_w(theta, p)
	return hw - p/rho*get_pv_to_btu(), ex1 || ex2
}
