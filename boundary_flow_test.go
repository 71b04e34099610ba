package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func _flow_of(flows []FlowIntent, kind FlowKind) (FlowIntent, bool) {
	for _, fi := range flows {
		if fi.kind == kind {
			return fi, true
		}
	}
	return FlowIntent{}, false
}

func TestLevelSetpointProgram(t *testing.T) {
	assert.Equal(t, get_level_program_min(), get_level_setpoint(get_theta_program_lo()))
	assert.Equal(t, get_level_program_max(), get_level_setpoint(get_theta_program_hi()))

	// Clamped outside the program.
	assert.Equal(t, get_level_program_min(), get_level_setpoint(80.0))
	assert.Equal(t, get_level_program_max(), get_level_setpoint(600.0))

	// Linear in between.
	mid := 0.5 * (get_theta_program_lo() + get_theta_program_hi())
	assert.InDelta(t, 0.5*(get_level_program_min()+get_level_program_max()), get_level_setpoint(mid), 1.0e-9)
}

func TestSealFlowsScaleWithRunningPumps(t *testing.T) {
	b := NewBoundaryFlowController()
	c, _ := initialize_conditions_warm(400.0, 500.0, 0.5)
	dt := 5.0

	flows, _ := b.compute(c, ControlInput{n_pumps: 3}, dt)

	inj, ok := _flow_of(flows, FLOW_SEAL_INJ_IN)
	require.True(t, ok)
	assert.InDelta(t, 3.0*get_w_seal_inj()*dt, inj.dm, 1.0e-9)

	ret, ok := _flow_of(flows, FLOW_SEAL_RET_OUT)
	require.True(t, ok)
	assert.InDelta(t, 3.0*get_w_seal_ret()*dt, ret.dm, 1.0e-9)

	// No pumps, no seal flows.
	flows, _ = b.compute(c, ControlInput{}, dt)
	_, ok = _flow_of(flows, FLOW_SEAL_INJ_IN)
	assert.False(t, ok)
}

func TestChargingBalancesLetdownAtSetpoint(t *testing.T) {
	b := NewBoundaryFlowController()

	// Warm plant sitting exactly on the programmed level.
	steam_frac := 1.0 - get_level_setpoint(400.0)/100.0
	c, _ := initialize_conditions_warm(400.0, 500.0, steam_frac)
	require.InDelta(t, get_level_setpoint(400.0), c.level_pct(), 1.0e-9)

	flows, overrides := b.compute(c, ControlInput{cvcs: true}, 5.0)
	assert.Empty(t, overrides)

	charging, ok := _flow_of(flows, FLOW_CHARGING_IN)
	require.True(t, ok)
	letdown, ok := _flow_of(flows, FLOW_LETDOWN_OUT)
	require.True(t, ok)

	// Zero level error holds charging at the letdown rate.
	assert.InDelta(t, letdown.dm, charging.dm, 1.0e-9)
	assert.InDelta(t, get_w_letdown()*5.0, letdown.dm, 1.0e-9)
}

func TestChargingSaturationFreezesIntegral(t *testing.T) {
	b := NewBoundaryFlowController()

	// Level far below setpoint: charging saturates at the pump limit and the
	// integral must not wind while saturated.
	c, _ := initialize_conditions_warm(400.0, 500.0, 0.8)
	flows, _ := b.compute(c, ControlInput{cvcs: true}, 5.0)

	charging, ok := _flow_of(flows, FLOW_CHARGING_IN)
	require.True(t, ok)
	assert.InDelta(t, get_w_charging_max()*5.0, charging.dm, 1.0e-9)
	assert.Equal(t, 0.0, b.integral_pct_s)

	// Level far above setpoint: charging pinned at zero, integral frozen.
	c, _ = initialize_conditions_warm(400.0, 500.0, 0.05)
	flows, _ = b.compute(c, ControlInput{cvcs: true}, 5.0)
	_, ok = _flow_of(flows, FLOW_CHARGING_IN)
	assert.False(t, ok)
	assert.Equal(t, 0.0, b.integral_pct_s)
}

func TestIntegralAccumulatesWhenUnsaturated(t *testing.T) {
	b := NewBoundaryFlowController()

	// A small error keeps the law inside its limits.
	steam_frac := 1.0 - (get_level_setpoint(400.0)-2.0)/100.0
	c, _ := initialize_conditions_warm(400.0, 500.0, steam_frac)

	_, _ = b.compute(c, ControlInput{cvcs: true}, 5.0)
	assert.InDelta(t, 2.0*5.0, b.integral_pct_s, 1.0e-6)
}

func TestLowLevelCutoutIsolatesLetdown(t *testing.T) {
	b := NewBoundaryFlowController()

	// Below the cutout: letdown force-isolated, override reported once.
	low, _ := initialize_conditions_warm(400.0, 500.0, 0.9)
	require.Less(t, low.level_pct(), get_level_cutout_pct())

	flows, overrides := b.compute(low, ControlInput{cvcs: true}, 5.0)
	_, ok := _flow_of(flows, FLOW_LETDOWN_OUT)
	assert.False(t, ok)
	require.Len(t, overrides, 1)
	assert.True(t, overrides[0].engaged)

	// Still low: no repeated report.
	_, overrides = b.compute(low, ControlInput{cvcs: true}, 5.0)
	assert.Empty(t, overrides)

	// Recovered: letdown restored, release reported.
	high, _ := initialize_conditions_warm(400.0, 500.0, 0.5)
	flows, overrides = b.compute(high, ControlInput{cvcs: true}, 5.0)
	_, ok = _flow_of(flows, FLOW_LETDOWN_OUT)
	assert.True(t, ok)
	require.Len(t, overrides, 1)
	assert.False(t, overrides[0].engaged)
}

func TestReliefFlowAboveSafetySetpoint(t *testing.T) {
	b := NewBoundaryFlowController()
	c, _ := initialize_conditions_warm(650.0, get_p_safety()+10.0, 0.5)
	dt := 5.0

	// Pressure-actuated even with charging and letdown out of service.
	flows, _ := b.compute(c, ControlInput{}, dt)
	relief, ok := _flow_of(flows, FLOW_RELIEF_OUT)
	require.True(t, ok)
	assert.InDelta(t, get_w_relief()*dt, relief.dm, 1.0e-9)

	c.p_n = get_p_safety() - 10.0
	flows, _ = b.compute(c, ControlInput{}, dt)
	_, ok = _flow_of(flows, FLOW_RELIEF_OUT)
	assert.False(t, ok)
}

func TestWaterSolidPressureHold(t *testing.T) {
	b := NewBoundaryFlowController()
	c, _ := initialize_conditions_cold(100.0, get_p_solid())
	dt := 5.0

	// At the hold pressure charging matches letdown.
	flows, _ := b.compute(c, ControlInput{cvcs: true}, dt)
	charging, ok := _flow_of(flows, FLOW_CHARGING_IN)
	require.True(t, ok)
	assert.InDelta(t, get_w_letdown()*dt, charging.dm, 1.0e-9)

	// Above the hold pressure: charging backs off, net outflow bleeds
	// pressure down.
	c.p_n = get_p_solid() + 20.0
	flows, _ = b.compute(c, ControlInput{cvcs: true}, dt)
	charging, ok = _flow_of(flows, FLOW_CHARGING_IN)
	require.True(t, ok)
	assert.InDelta(t, (get_w_letdown()-get_kp_solid()*20.0)*dt, charging.dm, 1.0e-9)

	// Far above: charging pinned at zero, letdown stays in service.
	c.p_n = get_p_solid() + 1000.0
	flows, _ = b.compute(c, ControlInput{cvcs: true}, dt)
	_, ok = _flow_of(flows, FLOW_CHARGING_IN)
	assert.False(t, ok)
	_, ok = _flow_of(flows, FLOW_LETDOWN_OUT)
	assert.True(t, ok)
}

func TestNoCvcsFlowsWhenOutOfService(t *testing.T) {
	b := NewBoundaryFlowController()
	c, _ := initialize_conditions_warm(400.0, 500.0, 0.5)

	flows, overrides := b.compute(c, ControlInput{cvcs: false}, 5.0)
	assert.Empty(t, flows)
	assert.Empty(t, overrides)
}
