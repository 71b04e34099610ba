package main

import (
	"fmt"
	"log"
)

/*
Runs the heatup calculation.

	Args:
	    c: initial conditions
	    sched: control-input schedule
	    sqc: step coordinator (owns ledger, events, diagnostics)
	    n_warm: warm-up steps run before the recorded window
	    n_step: recorded steps

	Returns:
	    (1) recorder holding one output row per recorded step
	    (2) conditions after the last step
	    (3) error on halted run or idle diagnostics

	Notes:
	    Warm-up steps execute the full pipeline but are not recorded. After
	    warm-up every registered diagnostic must have run at least once; a
	    diagnostic that is wired but never invoked is a configuration error,
	    caught here rather than discovered as false confidence later.
*/
func calc(c *Conditions, sched *Schedule, sqc *Sequence, n_warm, n_step int) (*Recorder, *Conditions, error) {
	var err error

	for n := 0; n < n_warm; n++ {
		c, err = sqc.run_tick(n, c, sched.Get(n), nil)
		if err != nil {
			return nil, c, fmt.Errorf("warm-up step %d: %w", n, err)
		}
	}

	if n_warm > 0 {
		if err := sqc.assert_diagnostics_ran(); err != nil {
			return nil, c, err
		}
	}

	rec := NewRecorder(n_step)

	log.Printf("start heatup calculation (dt=%.1fs, steps=%d, book=%s)", sqc.dt, n_step, sqc.mode)

	m := 1
	for n := n_warm; n < n_warm+n_step; n++ {
		c, err = sqc.run_tick(n, c, sched.Get(n), rec)
		if err != nil {
			return rec, c, fmt.Errorf("step %d: %w", n, err)
		}

		for m <= 12 && n-n_warm+1 >= n_step*m/12 {
			log.Printf("%d / 12 calculated.", m)
			m++
		}
	}

	log.Printf("finish: p=%.1f psia theta_loop=%.1fF theta_pzr=%.1fF level=%.1f%% bubble=%s",
		c.p_n, c.theta_loop_n, c.theta_pzr_n, c.level_pct(), c.bubble.phase)

	return rec, c, nil
}
