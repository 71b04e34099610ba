package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// Control inputs for one step. Produced by the schedule (or directly by a
// scenario harness); the core never mutates them.
type ControlInput struct {
	n_pumps         int     // running reactor coolant pumps
	rated_flow_frac float64 // per-pump flow fraction of rated, 0-1
	heater_kw       float64 // pressurizer heater power, kW
	spray_lbm_s     float64 // pressurizer spray flow, lbm/s
	q_secondary     float64 // heat removal via steam generators, Btu/s
	q_rhr           float64 // heat removal via residual heat removal, Btu/s
	level_bias_pct  float64 // operator bias on the programmed level setpoint, %
	cvcs            bool    // charging/letdown in service
}

// One schedule row. Rows are step changes: a row applies from its time
// until the next row's time.
type ScheduleRow struct {
	Time_s        float64 `csv:"time_s"`
	N_pumps       int     `csv:"n_pumps"`
	RatedFlowFrac float64 `csv:"rated_flow_frac"`
	Heater_kw     float64 `csv:"heater_kw"`
	Spray_lbm_s   float64 `csv:"spray_lbm_s"`
	Q_secondary   float64 `csv:"q_secondary_btu_s"`
	Q_rhr         float64 `csv:"q_rhr_btu_s"`
	LevelBias_pct float64 `csv:"level_bias_pct"`
	Cvcs          int     `csv:"cvcs"`
}

type Schedule struct {
	rows     []*ScheduleRow
	constant *ControlInput
	dt       float64
}

// Schedule that returns the same inputs every step. Test and scenario
// harness convenience.
func NewConstantSchedule(in ControlInput) *Schedule {
	return &Schedule{constant: &in}
}

/*
Reads a control-input schedule from CSV.

	Args:
	    path: CSV file with ScheduleRow columns, ascending time_s
	    dt: timestep the schedule will be sampled at, s
*/
func read_schedule(path string, dt float64) (*Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []*ScheduleRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("schedule %s: no rows", path)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Time_s < rows[i-1].Time_s {
			return nil, fmt.Errorf("schedule %s: time_s not ascending at row %d", path, i)
		}
	}

	return &Schedule{rows: rows, dt: dt}, nil
}

// Control inputs for step n. The last row at or before n*dt applies; the
// first row applies before its own time.
func (s *Schedule) Get(n int) ControlInput {
	if s.constant != nil {
		return *s.constant
	}

	t := float64(n) * s.dt
	row := s.rows[0]
	for _, r := range s.rows {
		if r.Time_s > t {
			break
		}
		row = r
	}

	return ControlInput{
		n_pumps:         row.N_pumps,
		rated_flow_frac: row.RatedFlowFrac,
		heater_kw:       row.Heater_kw,
		spray_lbm_s:     row.Spray_lbm_s,
		q_secondary:     row.Q_secondary,
		q_rhr:           row.Q_rhr,
		level_bias_pct:  row.LevelBias_pct,
		cvcs:            row.Cvcs != 0,
	}
}
