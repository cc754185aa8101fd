// Package engine exposes a small pseudo-boolean optimization layer on top of
// the gophersat solver: boolean variables, linear constraints over sums of 0/1
// variables, implication/equivalence constraints and a weighted minimization
// objective solved under a wall-clock budget.
package engine

// Status is the terminal state of a solve attempt.
type Status int

const (
	// StatusUnknown means the budget expired before any model was found.
	StatusUnknown Status = iota
	// StatusOptimal means the search completed and the returned model minimizes the objective.
	StatusOptimal
	// StatusFeasible means at least one model was found before the budget expired.
	StatusFeasible
	// StatusInfeasible means the constraints admit no model.
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// HasSolution reports whether a truth assignment is available.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Var is a boolean decision variable handle. Valid handles are positive;
// the zero value is invalid.
type Var int

// Lit is a possibly negated reference to a variable.
type Lit int

func (v Var) Lit() Lit { return Lit(v) }

func (v Var) Not() Lit { return Lit(-v) }

// Assignment holds one truth value per variable, in allocation order.
type Assignment []bool

// Value returns the truth value assigned to v.
func (a Assignment) Value(v Var) bool {
	if v <= 0 || int(v) > len(a) {
		return false
	}
	return a[v-1]
}

// Result of a solve attempt. Assignment is nil unless Status.HasSolution().
type Result struct {
	Status     Status
	Assignment Assignment
	Cost       int
}
