package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/schedulix/timetable/internal/config"
)

func emptySchedule(cfg *config.Config) *Schedule {
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
	return schedule
}

func place(schedule *Schedule, section string, day, slot int, entry Entry) {
	for i := range schedule.Days[day].Sections {
		target := &schedule.Days[day].Sections[i]
		if target.Section == section {
			target.Slots[slot].Entries = append(target.Slots[slot].Entries, entry)
			return
		}
	}
}

func theorySchedule(cfg *config.Config) *Schedule {
	schedule := emptySchedule(cfg)
	entry := Entry{Teacher: "T1", Subject: "M", Room: "R1"}
	place(schedule, "X", 0, 0, entry)
	place(schedule, "X", 1, 1, entry)
	place(schedule, "X", 2, 2, entry)
	return schedule
}

func labSchedule(cfg *config.Config) *Schedule {
	schedule := emptySchedule(cfg)
	theory := Entry{Teacher: "T1", Subject: "M", Room: "R1"}
	place(schedule, "X", 0, 2, theory)
	place(schedule, "X", 1, 2, theory)
	place(schedule, "X", 2, 2, theory)
	for slot := 0; slot < 2; slot++ {
		place(schedule, "X", 3, slot, Entry{Teacher: "T1", Subject: "M Lab", Room: "L1", IsLab: true, Group: "A"})
		place(schedule, "X", 4, slot, Entry{Teacher: "T1", Subject: "M Lab", Room: "L1", IsLab: true, Group: "B"})
	}
	return schedule
}

func TestVerifyTheory(t *testing.T) {
	days := []string{"Mon", "Tue", "Wed"}
	slots := []string{"9-10", "10-11", "11-12"}
	cfg := theoryInstance(t, days, slots, []config.SubjectAssignment{{Subject: "M", Teacher: "T1"}})
	timetabler := NewTimetabler()

	t.Run("accepts a rule-abiding schedule", func(t *testing.T) {
		assert.True(t, timetabler.Verify(theorySchedule(cfg), cfg, nil))
	})

	t.Run("rejects a nil schedule", func(t *testing.T) {
		assert.False(t, timetabler.Verify(nil, cfg, nil))
	})

	t.Run("rejects a schedule with missing days", func(t *testing.T) {
		schedule := theorySchedule(cfg)
		schedule.Days = schedule.Days[:2]

		assert.False(t, timetabler.Verify(schedule, cfg, nil))
	})

	t.Run("rejects a short weekly load", func(t *testing.T) {
		schedule := theorySchedule(cfg)
		schedule.Days[2].Sections[0].Slots[2].Entries = nil

		assert.False(t, timetabler.Verify(schedule, cfg, nil))
	})

	t.Run("rejects a teacher meeting the section twice in one day", func(t *testing.T) {
		schedule := theorySchedule(cfg)
		// Move Wednesday's session onto Monday.
		schedule.Days[2].Sections[0].Slots[2].Entries = nil
		place(schedule, "X", 0, 2, Entry{Teacher: "T1", Subject: "M", Room: "R1"})

		assert.False(t, timetabler.Verify(schedule, cfg, nil))
	})

	t.Run("rejects a double-booked slot", func(t *testing.T) {
		schedule := theorySchedule(cfg)
		schedule.Days[2].Sections[0].Slots[2].Entries = nil
		place(schedule, "X", 1, 1, Entry{Teacher: "T1", Subject: "M", Room: "R1"})

		assert.False(t, timetabler.Verify(schedule, cfg, nil))
	})
}

func TestVerifyLabs(t *testing.T) {
	cfg := labInstance(t)
	timetabler := NewTimetabler()

	t.Run("accepts a rule-abiding schedule", func(t *testing.T) {
		assert.True(t, timetabler.Verify(labSchedule(cfg), cfg, nil))
	})

	t.Run("rejects a lab split across two rooms", func(t *testing.T) {
		schedule := labSchedule(cfg)
		for slot := 0; slot < 2; slot++ {
			schedule.Days[4].Sections[0].Slots[slot].Entries[0].Room = "L2"
		}

		assert.False(t, timetabler.Verify(schedule, cfg, nil))
	})

	t.Run("rejects a lab occupying a single slot", func(t *testing.T) {
		schedule := labSchedule(cfg)
		schedule.Days[4].Sections[0].Slots[1].Entries = nil

		assert.False(t, timetabler.Verify(schedule, cfg, nil))
	})

	t.Run("rejects both groups lab-ing with one teacher on one day", func(t *testing.T) {
		schedule := labSchedule(cfg)
		for slot := 0; slot < 2; slot++ {
			schedule.Days[4].Sections[0].Slots[slot].Entries = nil
		}
		// Group B joins group A's day in the second lab window.
		place(schedule, "X", 3, 1, Entry{Teacher: "T1", Subject: "M Lab", Room: "L1", IsLab: true, Group: "B"})
		place(schedule, "X", 3, 2, Entry{Teacher: "T1", Subject: "M Lab", Room: "L1", IsLab: true, Group: "B"})

		assert.False(t, timetabler.Verify(schedule, cfg, nil))
	})

	t.Run("rejects entries for an offering marked as skipped", func(t *testing.T) {
		skipped := []SkippedLab{{Section: "X", Lab: "M Lab"}}

		assert.False(t, timetabler.Verify(labSchedule(cfg), cfg, skipped))
	})
}

func TestVerifyRecess(t *testing.T) {
	cfg := mustConfig(t, config.Config{
		Days:        []string{"Mon", "Tue", "Wed"},
		AllSlots:    []string{"11-12", "12-1", "1-2"},
		RecessSlots: []string{"12-1", "1-2"},
		Sections:    []string{"X"},
		Subjects: map[string][]config.SubjectAssignment{
			"X": {{Subject: "M", Teacher: "T1"}, {Subject: "P", Teacher: "T2"}},
		},
		SectionTheoryRooms: map[string]string{"X": "R1"},
		SolverTimeout:      10 * time.Second,
	})
	timetabler := NewTimetabler()

	build := func(mondayP int) *Schedule {
		schedule := emptySchedule(cfg)
		m := Entry{Teacher: "T1", Subject: "M", Room: "R1"}
		p := Entry{Teacher: "T2", Subject: "P", Room: "R1"}
		place(schedule, "X", 0, 1, m)
		place(schedule, "X", 1, 1, m)
		place(schedule, "X", 2, 1, m)
		place(schedule, "X", 0, mondayP, p)
		place(schedule, "X", 1, 0, p)
		place(schedule, "X", 2, 0, p)
		return schedule
	}

	t.Run("accepts activity in only one recess slot per day", func(t *testing.T) {
		assert.True(t, timetabler.Verify(build(0), cfg, nil))
	})

	t.Run("rejects a section active across the whole recess window", func(t *testing.T) {
		assert.False(t, timetabler.Verify(build(2), cfg, nil))
	})
}
