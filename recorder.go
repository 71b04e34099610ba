package main

import (
	"os"

	"github.com/gocarina/gocsv"
)

// One read-only output snapshot per step. External collaborators (display,
// persistence) consume these; they never reach back into the core.
type OutputRow struct {
	Step       int     `csv:"step"`
	Time_s     float64 `csv:"time_s"`
	P_psia     float64 `csv:"p_psia"`
	ThetaLoop  float64 `csv:"theta_loop_f"`
	ThetaPzr   float64 `csv:"theta_pzr_f"`
	Level_pct  float64 `csv:"pzr_level_pct"`
	M_total    float64 `csv:"m_total_lbm"`
	Bubble     string  `csv:"bubble_phase"`
	Alpha      float64 `csv:"alpha"`
	Iterations int     `csv:"solver_iterations"`
	Drift_lbm  float64 `csv:"ledger_drift_lbm"`
	Degraded   bool    `csv:"degraded"`
}

type Recorder struct {
	rows []*OutputRow
}

func NewRecorder(n_step int) *Recorder {
	return &Recorder{rows: make([]*OutputRow, 0, n_step)}
}

func (r *Recorder) record(n int, time_s float64, c *Conditions, sqc *Sequence) {
	r.rows = append(r.rows, &OutputRow{
		Step:       n,
		Time_s:     time_s,
		P_psia:     c.p_n,
		ThetaLoop:  c.theta_loop_n,
		ThetaPzr:   c.theta_pzr_n,
		Level_pct:  c.level_pct(),
		M_total:    sqc.ledger.m_total_n,
		Bubble:     c.bubble.phase.String(),
		Alpha:      c.alpha_n,
		Iterations: sqc.last_iterations,
		Drift_lbm:  sqc.last_drift,
		Degraded:   sqc.last_degraded,
	})
}

func (r *Recorder) len() int {
	return len(r.rows)
}

func (r *Recorder) row(i int) *OutputRow {
	return r.rows[i]
}

func (r *Recorder) last() *OutputRow {
	return r.rows[len(r.rows)-1]
}

// Writes all snapshots as CSV.
func (r *Recorder) export_csv(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&r.rows, f)
}
