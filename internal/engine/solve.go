package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/crillab/gophersat/solver"
)

// Solve runs a single optimization attempt within the given wall-clock budget
// and returns the terminal status with the best assignment found, if any.
// There are no retries: whatever the underlying search reports is final.
func (m *Model) Solve(budget time.Duration) (Result, error) {
	if budget <= 0 {
		return Result{}, fmt.Errorf("solve budget must be positive, got %v", budget)
	}
	if m.NumVars() == 0 {
		return Result{Status: StatusOptimal, Assignment: Assignment{}}, nil
	}

	pb := solver.ParsePBConstrs(m.constrs)
	if len(m.objLits) > 0 {
		costLits := make([]solver.Lit, len(m.objLits))
		for i, l := range m.objLits {
			costLits[i] = solver.IntToLit(int32(l))
		}
		pb.SetCostFunc(costLits, m.objWeights)
	}
	s := solver.New(pb)

	var expired atomic.Bool
	stop := make(chan struct{})
	timer := time.AfterFunc(budget, func() {
		expired.Store(true)
		close(stop)
	})
	defer timer.Stop()

	// Optimal streams every improving model; keep the last one so that an
	// interrupted search still yields its best-so-far assignment.
	results := make(chan solver.Result)
	var best *solver.Result
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range results {
			if r.Status == solver.Sat {
				r := r
				best = &r
			}
		}
	}()
	final := s.Optimal(results, stop)
	<-done

	if final.Status == solver.Sat {
		best = &final
	}

	switch {
	case final.Status == solver.Unsat:
		return Result{Status: StatusInfeasible}, nil
	case best == nil:
		return Result{Status: StatusUnknown}, nil
	case final.Status == solver.Sat && !expired.Load():
		return Result{Status: StatusOptimal, Assignment: m.assignment(best.Model), Cost: best.Weight}, nil
	default:
		return Result{Status: StatusFeasible, Assignment: m.assignment(best.Model), Cost: best.Weight}, nil
	}
}

// assignment widens the solver's model to one value per allocated variable.
// The model is indexed by variable-1 and may be shorter than the variable
// count when trailing variables never reached a constraint.
func (m *Model) assignment(model []bool) Assignment {
	values := make(Assignment, m.NumVars())
	for i := range values {
		if i < len(model) {
			values[i] = model[i]
		}
	}
	return values
}
