package engine

import (
	"slices"

	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

// Model accumulates variables, constraints and objective terms. It is not
// safe for concurrent use; build it on one goroutine and call Solve once.
type Model struct {
	names      []string
	constrs    []solver.PBConstr
	objLits    []Lit
	objWeights []int
}

func NewModel() *Model {
	return &Model{}
}

// NewVar allocates a fresh boolean variable. The name is kept for diagnostics
// only; identity is the handle.
func (m *Model) NewVar(name string) Var {
	m.names = append(m.names, name)
	return Var(len(m.names))
}

// Name returns the name given to v at allocation.
func (m *Model) Name(v Var) string {
	return m.names[v-1]
}

func (m *Model) NumVars() int {
	return len(m.names)
}

func (m *Model) NumConstraints() int {
	return len(m.constrs)
}

func ones(n int) []int {
	weights := make([]int, n)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

func litInts(lits []Lit) []int {
	return lo.Map(lits, func(l Lit, _ int) int { return int(l) })
}

func varLits(vars []Var) []Lit {
	return lo.Map(vars, func(v Var, _ int) Lit { return v.Lit() })
}

// AddClause states that at least one of the literals must hold.
func (m *Model) AddClause(lits ...Lit) {
	if len(lits) == 0 {
		return
	}
	ints := litInts(lits)
	m.constrs = append(m.constrs, solver.GtEq(ints, ones(len(ints)), 1))
}

// AddAtMostOne states that at most one of the variables may be true.
func (m *Model) AddAtMostOne(vars []Var) {
	if len(vars) < 2 {
		return
	}
	ints := litInts(varLits(vars))
	m.constrs = append(m.constrs, solver.LtEq(ints, ones(len(ints)), 1))
}

// AddExactlyOne states that exactly one of the variables must be true.
// The set must be non-empty.
func (m *Model) AddExactlyOne(vars []Var) {
	m.AddClause(varLits(vars)...)
	m.AddAtMostOne(vars)
}

// AddSumEqual states that exactly n of the variables must be true.
func (m *Model) AddSumEqual(vars []Var, n int) {
	if len(vars) == 0 {
		return
	}
	ints := litInts(varLits(vars))
	m.constrs = append(m.constrs, solver.GtEq(ints, ones(len(ints)), n))
	// LtEq negates its literal slice in place, so it must not share the
	// backing array already held by the GtEq constraint.
	m.constrs = append(m.constrs, solver.LtEq(slices.Clone(ints), ones(len(ints)), n))
}

// AddSumAtMost states that at most n of the variables may be true. A variable
// listed more than once counts once per occurrence.
func (m *Model) AddSumAtMost(vars []Var, n int) {
	if len(vars) == 0 {
		return
	}
	ints := make([]int, 0, len(vars))
	weights := make([]int, 0, len(vars))
	seen := make(map[Var]int, len(vars))
	for _, v := range vars {
		if at, ok := seen[v]; ok {
			weights[at]++
			continue
		}
		seen[v] = len(ints)
		ints = append(ints, int(v.Lit()))
		weights = append(weights, 1)
	}
	m.constrs = append(m.constrs, solver.LtEq(ints, weights, n))
}

// AddSumAtMostWithSlack states that the number of true variables may exceed
// limit only by the number of true slack variables: sum(vars) - sum(slack) <= limit.
func (m *Model) AddSumAtMostWithSlack(vars []Var, limit int, slack []Var) {
	if len(vars) == 0 {
		return
	}
	ints := litInts(varLits(vars))
	for _, s := range slack {
		ints = append(ints, int(s.Not()))
	}
	m.constrs = append(m.constrs, solver.LtEq(ints, ones(len(ints)), limit+len(slack)))
}

// AddImplication states a => b.
func (m *Model) AddImplication(a, b Var) {
	m.AddClause(a.Not(), b.Lit())
}

// AddOrEquiv states b <=> OR(vars). An empty set fixes b to false.
func (m *Model) AddOrEquiv(b Var, vars []Var) {
	if len(vars) == 0 {
		m.AddClause(b.Not())
		return
	}
	long := make([]Lit, 0, len(vars)+1)
	long = append(long, b.Not())
	for _, v := range vars {
		m.AddClause(v.Not(), b.Lit())
		long = append(long, v.Lit())
	}
	m.AddClause(long...)
}

// AddXorEquiv states t <=> (a XOR b).
func (m *Model) AddXorEquiv(t, a, b Var) {
	m.AddClause(t.Not(), a.Lit(), b.Lit())
	m.AddClause(t.Not(), a.Not(), b.Not())
	m.AddClause(t.Lit(), a.Not(), b.Lit())
	m.AddClause(t.Lit(), a.Lit(), b.Not())
}

// AddObjectiveTerm adds weight to the minimized objective whenever v is true.
// Zero-weight terms are dropped.
func (m *Model) AddObjectiveTerm(v Var, weight int) {
	if weight == 0 {
		return
	}
	m.objLits = append(m.objLits, v.Lit())
	m.objWeights = append(m.objWeights, weight)
}
