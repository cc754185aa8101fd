package model

import (
	"github.com/schedulix/timetable/internal/config"
	"github.com/schedulix/timetable/internal/engine"
)

// Entry is one materialized class occurrence in a slot. Group is set for lab
// entries only.
type Entry struct {
	Teacher string `json:"teacher"`
	Subject string `json:"subject"`
	Room    string `json:"room"`
	IsLab   bool   `json:"isLab"`
	Group   string `json:"group,omitempty"`
}

// SlotEntries holds the entries of one slot of a section's day.
type SlotEntries struct {
	Slot    string
	Entries []Entry
}

// SectionSchedule is one section's day: entries per slot, in slot order.
type SectionSchedule struct {
	Section string
	Slots   []SlotEntries
}

// DaySchedule holds every section's schedule for one day, in section order.
type DaySchedule struct {
	Day      string
	Sections []SectionSchedule
}

// Schedule is the extracted weekly timetable, days in calendar order.
type Schedule struct {
	Days []DaySchedule
}

// extractSchedule materializes a truth assignment into a per-day, per-section,
// per-slot schedule. A lab starting at slot s contributes an identical entry
// to both s and s+1. Sessions are visited in allocation order, so the same
// assignment always yields the same schedule.
func extractSchedule(assignment engine.Assignment, vars *Variables, cfg *config.Config) *Schedule {
	schedule := &Schedule{Days: make([]DaySchedule, len(cfg.Days))}
	for day, name := range cfg.Days {
		sections := make([]SectionSchedule, len(cfg.Sections))
		for i, section := range cfg.Sections {
			slots := make([]SlotEntries, len(cfg.AllSlots))
			for j, slot := range cfg.AllSlots {
				slots[j] = SlotEntries{Slot: slot}
			}
			sections[i] = SectionSchedule{Section: section, Slots: slots}
		}
		schedule.Days[day] = DaySchedule{Day: name, Sections: sections}
	}

	sectionIndex := make(map[string]int, len(cfg.Sections))
	for i, section := range cfg.Sections {
		sectionIndex[section] = i
	}

	for _, session := range vars.Sessions {
		if !assignment.Value(session.Var) {
			continue
		}
		i, ok := sectionIndex[session.Key.Section]
		if !ok {
			continue
		}
		target := &schedule.Days[session.Key.Day].Sections[i]

		entry := Entry{
			Teacher: session.Key.Teacher,
			Subject: session.Key.Subject,
			Room:    session.Key.Room,
			IsLab:   session.Kind == KindLab,
		}
		if session.Kind == KindLab {
			entry.Group = session.Key.Group
		}

		start := session.Key.Slot
		target.Slots[start].Entries = append(target.Slots[start].Entries, entry)
		if session.Kind == KindLab && start+1 < len(target.Slots) {
			target.Slots[start+1].Entries = append(target.Slots[start+1].Entries, entry)
		}
	}

	return schedule
}
