package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcRunsWarmupThenRecords(t *testing.T) {
	dt := 5.0
	setpoint := get_level_setpoint(400.0)
	c, m0 := initialize_conditions_warm(400.0, 500.0, 1.0-setpoint/100.0)
	sqc := NewSequence(BOOK_LEDGER, m0, dt)
	sched := NewConstantSchedule(ControlInput{cvcs: true})

	rec, c_end, err := calc(c, sched, sqc, 12, 48)
	require.NoError(t, err)

	// Warm-up is not recorded; the recorded window starts after it.
	require.Equal(t, 48, rec.len())
	assert.Equal(t, 12, rec.row(0).Step)
	assert.InDelta(t, 13.0*dt, rec.row(0).Time_s, 1.0e-9)
	assert.Greater(t, rec.last().Time_s, rec.row(0).Time_s)

	assert.Equal(t, "complete", rec.last().Bubble)
	assert.InDelta(t, 500.0, c_end.p_n, 5.0)
}

func TestCalcExportsCsv(t *testing.T) {
	dt := 5.0
	c, m0 := initialize_conditions_warm(400.0, 500.0, 0.5)
	sqc := NewSequence(BOOK_LEDGER, m0, dt)
	sched := NewConstantSchedule(ControlInput{})

	rec, _, err := calc(c, sched, sqc, 5, 10)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "result.csv")
	require.NoError(t, rec.export_csv(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, "p_psia")
	assert.Contains(t, s, "bubble_phase")
	// Header plus one line per recorded step.
	assert.Equal(t, 11, strings.Count(strings.TrimSpace(s), "\n")+1)
}

func TestParseBookModeHasNoDefault(t *testing.T) {
	mode, err := parse_book_mode("ledger")
	require.NoError(t, err)
	assert.Equal(t, BOOK_LEDGER, mode)

	mode, err = parse_book_mode("component_sum_legacy")
	require.NoError(t, err)
	assert.Equal(t, BOOK_COMPONENT_SUM_LEGACY, mode)

	_, err = parse_book_mode("")
	assert.Error(t, err)
	_, err = parse_book_mode("default")
	assert.Error(t, err)
}
