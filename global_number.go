package main

// Net free water volume of the reactor coolant loops (vessel, hot/cold legs,
// SG tubes, crossover legs), ft3
func get_v_loop() float64 {
	return 10800.0
}

// Pressurizer design internal volume, ft3
func get_v_pzr() float64 {
	return 1800.0
}

// Specific heat of liquid coolant used in the lumped heat balance, Btu/lbm F
func get_cp_w() float64 {
	return 1.0
}

// Specific heat of structural metal (vessel, piping, internals), Btu/lbm F
func get_cp_metal() float64 {
	return 0.11
}

// Lumped structural metal mass heated with the loop coolant, lbm
func get_m_metal_loop() float64 {
	return 1.8e6
}

// Lumped pressurizer shell and heater-well metal mass, lbm
func get_m_metal_pzr() float64 {
	return 2.0e5
}

// Conversion kW -> Btu/s
func get_btu_s_per_kw() float64 {
	return 0.947817
}

// Conversion psia*ft3 -> Btu (144 in2/ft2 / 778.16 ft*lbf/Btu)
func get_pv_to_btu() float64 {
	return 144.0 / 778.16
}

// Isothermal compressibility of liquid coolant, 1/psi
func get_beta_w() float64 {
	return 3.2e-6
}

// Rated heat input of one reactor coolant pump to the primary fluid, kW
func get_q_pump_kw() float64 {
	return 4500.0
}

// Number of reactor coolant pumps installed
func get_n_pumps_installed() int {
	return 4
}

// Seal injection per running pump, lbm/s (8 gpm nominal)
func get_w_seal_inj() float64 {
	return 1.11
}

// Seal return per running pump, lbm/s (5 gpm nominal)
func get_w_seal_ret() float64 {
	return 0.695
}

// Maximum charging flow the CVCS can deliver, lbm/s (150 gpm nominal)
func get_w_charging_max() float64 {
	return 20.8
}

// Normal letdown flow, lbm/s (75 gpm nominal)
func get_w_letdown() float64 {
	return 10.4
}

// Temperature of charging water at the loop injection point, F
func get_theta_charging() float64 {
	return 130.0
}

// Pressurizer level program: no-load level at the cold end of the program, %
func get_level_program_min() float64 {
	return 25.0
}

// Pressurizer level program: full program level at the hot end, %
func get_level_program_max() float64 {
	return 61.5
}

// Average coolant temperature at the cold end of the level program, F
func get_theta_program_lo() float64 {
	return 200.0
}

// Average coolant temperature at the hot end of the level program, F
func get_theta_program_hi() float64 {
	return 557.0
}

// Pressurizer level below which letdown is force-isolated, %
func get_level_cutout_pct() float64 {
	return 17.0
}

// Proportional gain of the level control law, lbm/s per % level error
func get_level_kp() float64 {
	return 0.8
}

// Integral gain of the level control law, lbm/s per %*s
func get_level_ki() float64 {
	return 0.002
}

// Water-solid RCS pressure held by the CVCS before a bubble exists, psia
func get_p_solid() float64 {
	return 350.0
}

// Gain of the water-solid pressure hold, lbm/s of net charging per psi
func get_kp_solid() float64 {
	return 0.3
}

// Pressurizer safety valve lift setpoint, psia
func get_p_safety() float64 {
	return 2485.0
}

// Rated relief capacity of one safety valve, lbm/s
func get_w_relief() float64 {
	return 115.0
}

// No-load operating pressure, psia
func get_p_noload() float64 {
	return 2250.0
}

// Band around no-load pressure inside which the pressure program is
// considered settled, psi
func get_p_band() float64 {
	return 50.0
}

// Iteration cap of the equilibrium solve
func get_n_iter_max() int {
	return 50
}

// Relative energy tolerance of the equilibrium solve
func get_u_tol() float64 {
	return 1.0e-7
}

// Consecutive non-converged steps tolerated before the run is halted
func get_n_fail_max() int {
	return 10
}

// Smallest steam volume carried when the pressurizer is nominally
// two-phase, ft3 (divide-by-zero guard on the vapor density path)
func get_v_g_min() float64 {
	return 0.5
}

// Controlled drain rate while the steam bubble is being drawn, lbm/s
func get_drain_rate() float64 {
	return 15.0
}

// Steam volume fraction of the pressurizer at which the drain phase ends
func get_bubble_target_fraction() float64 {
	return 0.55
}

// Ledger drift fraction above which a warning is raised
func get_drift_warn_frac() float64 {
	return 0.001
}

// Ledger drift fraction above which an alarm is raised
func get_drift_alarm_frac() float64 {
	return 0.01
}

// Relative mismatch tolerated between the rebaseline capture and the
// prior-regime ledger estimate
func get_rebase_check_frac() float64 {
	return 0.005
}

// Lower/upper pressure bounds of the solve bracket, psia
func get_p_bracket() (float64, float64) {
	return 15.0, 2500.0
}
