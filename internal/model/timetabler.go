package model

import (
	"fmt"

	"github.com/schedulix/timetable/internal/config"
	"github.com/schedulix/timetable/internal/engine"
)

// Result is the outcome of one scheduling run. Schedule is nil unless the
// status carries a solution; there is no partial schedule on infeasibility.
type Result struct {
	Status      engine.Status
	Cost        int
	Variables   int
	Constraints int
	Skipped     []SkippedLab
	Schedule    *Schedule
}

// Timetabler builds a weekly schedule for a problem instance and re-checks a
// built schedule against the instance's hard rules.
type Timetabler interface {
	Build(cfg *config.Config) (*Result, error)
	Verify(schedule *Schedule, cfg *config.Config, skipped []SkippedLab) bool
}

func NewTimetabler() Timetabler {
	return &pbTimetabler{}
}

// pbTimetabler compiles the instance into a pseudo-boolean model, runs one
// optimization attempt and extracts the assignment.
type pbTimetabler struct{}

func (t *pbTimetabler) Build(cfg *config.Config) (*Result, error) {
	m := engine.NewModel()

	vars, err := buildSessionVariables(m, cfg)
	if err != nil {
		return nil, fmt.Errorf("building session variables: %w", err)
	}
	bindLabRooms(m, vars, cfg)
	addHardConstraints(m, vars, cfg)
	addObjective(m, vars, cfg)

	solved, err := m.Solve(cfg.SolverTimeout)
	if err != nil {
		return nil, fmt.Errorf("solving timetable model: %w", err)
	}

	result := &Result{
		Status:      solved.Status,
		Cost:        solved.Cost,
		Variables:   m.NumVars(),
		Constraints: m.NumConstraints(),
		Skipped:     vars.Skipped,
	}
	if solved.Status.HasSolution() {
		result.Schedule = extractSchedule(solved.Assignment, vars, cfg)
	}
	return result, nil
}
