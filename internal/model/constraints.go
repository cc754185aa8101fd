package model

import (
	"github.com/schedulix/timetable/internal/config"
	"github.com/schedulix/timetable/internal/engine"
)

// addHardConstraints encodes every mandatory scheduling rule. Violating any
// of them makes the instance infeasible.
func addHardConstraints(m *engine.Model, vars *Variables, cfg *config.Config) {
	addResourceExclusivity(m, vars, cfg)
	addWeeklyLoads(m, vars, cfg)
	addDailyCaps(m, vars, cfg)
	addTeacherSectionLimit(m, vars, cfg)
	addRecessRules(m, vars, cfg)
}

// sessionVars projects the matching sessions onto their decision variables.
func sessionVars(vars *Variables, match func(*Session) bool) []engine.Var {
	selected := make([]engine.Var, 0)
	for _, session := range vars.Sessions {
		if match(session) {
			selected = append(selected, session.Var)
		}
	}
	return selected
}

// addResourceExclusivity keeps rooms, teachers and section buckets from being
// double-booked in any (day, slot).
func addResourceExclusivity(m *engine.Model, vars *Variables, cfg *config.Config) {
	for day := range cfg.Days {
		for slot := range cfg.AllSlots {
			for _, room := range cfg.AllRooms {
				m.AddAtMostOne(sessionVars(vars, func(s *Session) bool {
					return s.Key.Day == day && s.Key.Room == room && s.ActiveAt(slot)
				}))
			}
			for _, teacher := range cfg.AllTeachers {
				m.AddAtMostOne(sessionVars(vars, func(s *Session) bool {
					return s.Key.Day == day && s.Key.Teacher == teacher && s.ActiveAt(slot)
				}))
			}
			for _, section := range cfg.Sections {
				for _, bucket := range append(append([]string{}, cfg.Groups...), GroupAll) {
					m.AddAtMostOne(sessionVars(vars, func(s *Session) bool {
						return s.Key.Day == day && s.Key.Section == section && s.InBucket(bucket) && s.ActiveAt(slot)
					}))
				}
			}
		}
	}
}

// addWeeklyLoads fixes the weekly class counts: every theory subject exactly
// three times per section, every generated lab offering exactly once per
// group. Offerings without variables (skipped or roomless) are left alone.
func addWeeklyLoads(m *engine.Model, vars *Variables, cfg *config.Config) {
	for _, section := range cfg.Sections {
		for _, assignment := range cfg.Subjects[section] {
			weekly := sessionVars(vars, func(s *Session) bool {
				return s.Kind == KindTheory && s.Key.Section == section && s.Key.Subject == assignment.Subject
			})
			if len(weekly) > 0 {
				m.AddSumEqual(weekly, theoryWeeklyLoad)
			}
		}
		for _, lab := range cfg.Labs[section] {
			for _, group := range cfg.Groups {
				weekly := sessionVars(vars, func(s *Session) bool {
					return s.Kind == KindLab && s.Key.Section == section && s.Key.Group == group && s.Key.Subject == lab
				})
				if len(weekly) > 0 {
					m.AddExactlyOne(weekly)
				}
			}
		}
	}
}

// addDailyCaps bounds the per-day class counts of each section.
func addDailyCaps(m *engine.Model, vars *Variables, cfg *config.Config) {
	for _, section := range cfg.Sections {
		for day := range cfg.Days {
			m.AddSumAtMost(sessionVars(vars, func(s *Session) bool {
				return s.Kind == KindTheory && s.Key.Section == section && s.Key.Day == day
			}), theoryDailyCap)
			for _, group := range cfg.Groups {
				m.AddSumAtMost(sessionVars(vars, func(s *Session) bool {
					return s.Kind == KindLab && s.Key.Section == section && s.Key.Group == group && s.Key.Day == day
				}), labDailyCap)
			}
		}
	}
}

// addTeacherSectionLimit allows a teacher at most one class per section per day.
func addTeacherSectionLimit(m *engine.Model, vars *Variables, cfg *config.Config) {
	for _, teacher := range cfg.AllTeachers {
		for _, section := range cfg.Sections {
			for day := range cfg.Days {
				m.AddSumAtMost(sessionVars(vars, func(s *Session) bool {
					return s.Key.Teacher == teacher && s.Key.Section == section && s.Key.Day == day
				}), 1)
			}
		}
	}
}

// addRecessRules forbids activity in both recess-flanking slots on the same
// day, once per teacher and once per section. A session active at both slots
// (a lab spanning the recess) counts twice, which rules it out on its own.
func addRecessRules(m *engine.Model, vars *Variables, cfg *config.Config) {
	if len(cfg.RecessSlots) != 2 {
		return
	}
	before, ok := cfg.SlotIndex(cfg.RecessSlots[0])
	if !ok {
		return
	}
	after, ok := cfg.SlotIndex(cfg.RecessSlots[1])
	if !ok {
		return
	}

	constrain := func(match func(*Session) bool) {
		activeBefore := sessionVars(vars, func(s *Session) bool { return match(s) && s.ActiveAt(before) })
		activeAfter := sessionVars(vars, func(s *Session) bool { return match(s) && s.ActiveAt(after) })
		if len(activeBefore) > 0 && len(activeAfter) > 0 {
			m.AddSumAtMost(append(activeBefore, activeAfter...), 1)
		}
	}

	for day := range cfg.Days {
		for _, teacher := range cfg.AllTeachers {
			constrain(func(s *Session) bool { return s.Key.Teacher == teacher && s.Key.Day == day })
		}
		for _, section := range cfg.Sections {
			constrain(func(s *Session) bool { return s.Key.Section == section && s.Key.Day == day })
		}
	}
}
