package model

import (
	"github.com/samber/lo"
	"github.com/schedulix/timetable/internal/config"
)

type slotKey struct {
	day  int
	slot int
	who  string
}

type sectionSubjectKey struct {
	section string
	subject string
}

type groupLabKey struct {
	section string
	group   string
	lab     string
}

type dailyKey struct {
	section string
	group   string
	day     int
}

type teacherDayKey struct {
	teacher string
	section string
	day     int
}

// Verify re-checks a built schedule against every hard rule of the instance,
// independently of the optimization engine. Offerings in skipped are expected
// to be absent.
func (t *pbTimetabler) Verify(schedule *Schedule, cfg *config.Config, skipped []SkippedLab) bool {
	if schedule == nil || len(schedule.Days) != len(cfg.Days) {
		return false
	}

	roomUse := map[slotKey]int{}
	teacherUse := map[slotKey]int{}
	sectionUse := map[slotKey]int{}
	theoryWeekly := map[sectionSubjectKey]int{}
	labEntries := map[groupLabKey]int{}
	theoryDaily := map[dailyKey]int{}
	labDailyEntries := map[dailyKey]int{}
	teacherSectionTheory := map[teacherDayKey]int{}
	teacherSectionLabEntries := map[teacherDayKey]int{}
	labRoom := map[string]map[string]bool{}

	for day, daySchedule := range schedule.Days {
		for _, sectionSchedule := range daySchedule.Sections {
			section := sectionSchedule.Section
			if len(sectionSchedule.Slots) != len(cfg.AllSlots) {
				return false
			}
			for slot, slotEntries := range sectionSchedule.Slots {
				for _, entry := range slotEntries.Entries {
					roomUse[slotKey{day, slot, entry.Room}]++
					teacherUse[slotKey{day, slot, entry.Teacher}]++
					sectionUse[slotKey{day, slot, section}]++

					if entry.IsLab {
						labEntries[groupLabKey{section, entry.Group, entry.Subject}]++
						labDailyEntries[dailyKey{section, entry.Group, day}]++
						teacherSectionLabEntries[teacherDayKey{entry.Teacher, section, day}]++
						if labRoom[entry.Subject] == nil {
							labRoom[entry.Subject] = map[string]bool{}
						}
						labRoom[entry.Subject][entry.Room] = true
					} else {
						theoryWeekly[sectionSubjectKey{section, entry.Subject}]++
						theoryDaily[dailyKey{section, GroupAll, day}]++
						teacherSectionTheory[teacherDayKey{entry.Teacher, section, day}]++
					}
				}
			}
		}
	}

	// Exclusivity: no room, teacher or section is double-booked in any slot.
	// The section bucket aggregates every group, so one entry per slot at most.
	for _, use := range []map[slotKey]int{roomUse, teacherUse, sectionUse} {
		for _, count := range use {
			if count > 1 {
				return false
			}
		}
	}

	// Weekly loads. Sections without a theory room generate nothing, and
	// skipped lab offerings must stay absent.
	for _, section := range cfg.Sections {
		_, hasRoom := cfg.TheoryRoom(section)
		for _, assignment := range cfg.Subjects[section] {
			expected := 0
			if hasRoom {
				expected = theoryWeeklyLoad
			}
			if theoryWeekly[sectionSubjectKey{section, assignment.Subject}] != expected {
				return false
			}
		}
		for _, lab := range cfg.Labs[section] {
			wasSkipped := lo.Contains(skipped, SkippedLab{Section: section, Lab: lab})
			for _, group := range cfg.Groups {
				count := labEntries[groupLabKey{section, group, lab}]
				if wasSkipped && count != 0 {
					return false
				}
				// One lab session materializes as two slot entries.
				if !wasSkipped && count != 2 {
					return false
				}
			}
		}
	}

	// Daily caps.
	for _, count := range theoryDaily {
		if count > theoryDailyCap {
			return false
		}
	}
	for _, count := range labDailyEntries {
		if count%2 != 0 || count/2 > labDailyCap {
			return false
		}
	}

	// A teacher meets each section at most once a day.
	sessions := map[teacherDayKey]int{}
	for key, count := range teacherSectionTheory {
		sessions[key] += count
	}
	for key, count := range teacherSectionLabEntries {
		if count%2 != 0 {
			return false
		}
		sessions[key] += count / 2
	}
	for _, count := range sessions {
		if count > 1 {
			return false
		}
	}

	// Recess rule: nobody is active in both recess slots on one day.
	if len(cfg.RecessSlots) == 2 {
		before, okBefore := cfg.SlotIndex(cfg.RecessSlots[0])
		after, okAfter := cfg.SlotIndex(cfg.RecessSlots[1])
		if okBefore && okAfter {
			for day := range cfg.Days {
				for _, teacher := range cfg.AllTeachers {
					if teacherUse[slotKey{day, before, teacher}] > 0 && teacherUse[slotKey{day, after, teacher}] > 0 {
						return false
					}
				}
				for _, section := range cfg.Sections {
					if sectionUse[slotKey{day, before, section}] > 0 && sectionUse[slotKey{day, after, section}] > 0 {
						return false
					}
				}
			}
		}
	}

	// One physical room per lab subject name for the whole week.
	for _, rooms := range labRoom {
		if len(rooms) > 1 {
			return false
		}
	}

	return true
}
