package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
)

// Scenario file contents (JSON).
type ScenarioConfig struct {
	Start     string  `json:"start"`      // "cold" or "warm"
	Theta_f   float64 `json:"theta_f"`    // initial coolant temperature, F
	P_psia    float64 `json:"p_psia"`     // initial pressure, psia
	SteamFrac float64 `json:"steam_frac"` // warm start only: pzr steam volume fraction
	BookMode  string  `json:"book_mode"`  // "ledger" or "component_sum_legacy"; required
}

func read_scenario(path string) (*ScenarioConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc ScenarioConfig
	if err := json.Unmarshal(b, &sc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Bookkeeping mode from its scenario-file name. There is no default on
// purpose: an absent or unknown name is a configuration error.
func parse_book_mode(name string) (MassBookMode, error) {
	switch name {
	case "ledger":
		return BOOK_LEDGER, nil
	case "component_sum_legacy":
		return BOOK_COMPONENT_SUM_LEGACY, nil
	default:
		return 0, fmt.Errorf("book_mode %q: must be \"ledger\" or \"component_sum_legacy\"", name)
	}
}

func run(scenario_path, schedule_path, out_path string, dt float64, n_warm, n_step int) error {
	sc, err := read_scenario(scenario_path)
	if err != nil {
		return err
	}

	mode, err := parse_book_mode(sc.BookMode)
	if err != nil {
		return err
	}

	var c *Conditions
	var m_initial float64
	switch sc.Start {
	case "cold":
		c, m_initial = initialize_conditions_cold(sc.Theta_f, sc.P_psia)
	case "warm":
		c, m_initial = initialize_conditions_warm(sc.Theta_f, sc.P_psia, sc.SteamFrac)
	default:
		return fmt.Errorf("start %q: must be \"cold\" or \"warm\"", sc.Start)
	}

	sched, err := read_schedule(schedule_path, dt)
	if err != nil {
		return err
	}

	sqc := NewSequence(mode, m_initial, dt)

	rec, _, err := calc(c, sched, sqc, n_warm, n_step)
	if err != nil {
		return err
	}

	return rec.export_csv(out_path)
}

func main() {
	scenario := flag.String("scenario", "scenario.json", "scenario JSON file")
	schedule := flag.String("schedule", "schedule.csv", "control-input schedule CSV")
	out := flag.String("out", "result.csv", "output CSV file")
	dt := flag.Float64("dt", 1.0, "timestep, s")
	warm := flag.Int("warm", 60, "warm-up steps before the recorded window")
	steps := flag.Int("steps", 3600, "recorded steps")
	flag.Parse()

	if err := run(*scenario, *schedule, *out, *dt, *warm, *steps); err != nil {
		log.Fatal(err)
	}
}
