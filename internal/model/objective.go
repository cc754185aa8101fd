package model

import (
	"fmt"

	"github.com/schedulix/timetable/internal/config"
	"github.com/schedulix/timetable/internal/engine"
)

// addObjective encodes the soft preferences as weighted penalty terms of a
// single minimized objective.
func addObjective(m *engine.Model, vars *Variables, cfg *config.Config) {
	addWorkloadPenalty(m, vars, cfg)
	addContinuityPenalty(m, vars, cfg)
	addParallelLabPenalty(m, vars, cfg)
	addDailyLabPenalties(m, vars, cfg)
}

// addWorkloadPenalty charges every assigned session once. This is a literal
// count of assigned work, not a spread measure: with weekly loads fixed by
// the hard constraints the term is near-constant, and it is kept that way on
// purpose rather than silently substituting a max-per-day measure.
func addWorkloadPenalty(m *engine.Model, vars *Variables, cfg *config.Config) {
	for _, session := range vars.Sessions {
		m.AddObjectiveTerm(session.Var, cfg.Weights.Workload)
	}
}

// addContinuityPenalty charges one unit per transition between "has theory"
// and "no theory" across adjacent slots of a section's day, which rewards
// teaching theory in one contiguous run.
func addContinuityPenalty(m *engine.Model, vars *Variables, cfg *config.Config) {
	for _, section := range cfg.Sections {
		for day := range cfg.Days {
			hasTheory := make([]engine.Var, len(cfg.AllSlots))
			for slot := range cfg.AllSlots {
				hasTheory[slot] = m.NewVar(fmt.Sprintf("has_theory_%v_%d_%d", section, day, slot))
				m.AddOrEquiv(hasTheory[slot], sessionVars(vars, func(s *Session) bool {
					return s.Kind == KindTheory && s.Key.Section == section && s.Key.Day == day && s.Key.Slot == slot
				}))
			}
			for slot := 0; slot+1 < len(cfg.AllSlots); slot++ {
				transition := m.NewVar(fmt.Sprintf("theory_transition_%v_%d_%d", section, day, slot))
				m.AddXorEquiv(transition, hasTheory[slot], hasTheory[slot+1])
				m.AddObjectiveTerm(transition, cfg.Weights.Continuity)
			}
		}
	}
}

// addParallelLabPenalty charges one unit whenever exactly one of the two lab
// groups is in a lab at a (section, day, lab start slot), preferring the
// groups to run their labs in parallel.
func addParallelLabPenalty(m *engine.Model, vars *Variables, cfg *config.Config) {
	if len(cfg.Groups) != 2 {
		return
	}
	groupA, groupB := cfg.Groups[0], cfg.Groups[1]

	for _, section := range cfg.Sections {
		for day := range cfg.Days {
			for _, start := range cfg.LabSlotStarts {
				slot, ok := cfg.SlotIndex(start)
				if !ok {
					continue
				}
				groupLabs := func(group string) []engine.Var {
					return sessionVars(vars, func(s *Session) bool {
						return s.Kind == KindLab && s.Key.Section == section && s.Key.Group == group &&
							s.Key.Day == day && s.Key.Slot == slot
					})
				}
				labsA, labsB := groupLabs(groupA), groupLabs(groupB)
				if len(labsA) == 0 || len(labsB) == 0 {
					continue
				}

				activeA := m.NewVar(fmt.Sprintf("lab_active_%v_%v_%d_%d", section, groupA, day, slot))
				m.AddOrEquiv(activeA, labsA)
				activeB := m.NewVar(fmt.Sprintf("lab_active_%v_%v_%d_%d", section, groupB, day, slot))
				m.AddOrEquiv(activeB, labsB)

				unbalanced := m.NewVar(fmt.Sprintf("lab_unbalanced_%v_%d_%d", section, day, slot))
				m.AddXorEquiv(unbalanced, activeA, activeB)
				m.AddObjectiveTerm(unbalanced, cfg.Weights.ParallelLab)
			}
		}
	}
}

// addDailyLabPenalties charges max(0, count-1) for the number of lab start
// slots a section uses per day, and again per group for the number of labs a
// group sits per day, preferring one lab session a day at both levels.
func addDailyLabPenalties(m *engine.Model, vars *Variables, cfg *config.Config) {
	for _, section := range cfg.Sections {
		for day := range cfg.Days {
			used := make([]engine.Var, 0, len(cfg.LabSlotStarts))
			for _, start := range cfg.LabSlotStarts {
				slot, ok := cfg.SlotIndex(start)
				if !ok {
					continue
				}
				starting := sessionVars(vars, func(s *Session) bool {
					return s.Kind == KindLab && s.Key.Section == section && s.Key.Day == day && s.Key.Slot == slot
				})
				if len(starting) == 0 {
					continue
				}
				slotUsed := m.NewVar(fmt.Sprintf("lab_slot_used_%v_%d_%d", section, day, slot))
				m.AddOrEquiv(slotUsed, starting)
				used = append(used, slotUsed)
			}
			addCountExcess(m, used, len(used), fmt.Sprintf("section_lab_excess_%v_%d", section, day), cfg.Weights.DailyLab)

			for _, group := range cfg.Groups {
				daily := sessionVars(vars, func(s *Session) bool {
					return s.Kind == KindLab && s.Key.Section == section && s.Key.Group == group && s.Key.Day == day
				})
				// The hard daily cap already bounds how many can be true.
				addCountExcess(m, daily, labDailyCap, fmt.Sprintf("group_lab_excess_%v_%v_%d", section, group, day), cfg.Weights.GroupDailyLab)
			}
		}
	}
}

// addCountExcess charges weight per true variable beyond the first: it
// allocates maxCount-1 slack indicators, forces sum(vars) - sum(slack) <= 1
// and puts the slacks on the objective, so minimization makes their sum equal
// max(0, count-1). maxCount is an upper bound on how many of vars can be true
// at once.
func addCountExcess(m *engine.Model, vars []engine.Var, maxCount int, name string, weight int) {
	if len(vars) < 2 || maxCount < 2 {
		return
	}
	if maxCount > len(vars) {
		maxCount = len(vars)
	}
	slack := make([]engine.Var, maxCount-1)
	for i := range slack {
		slack[i] = m.NewVar(fmt.Sprintf("%v_%d", name, i))
		m.AddObjectiveTerm(slack[i], weight)
	}
	m.AddSumAtMostWithSlack(vars, 1, slack)
}
