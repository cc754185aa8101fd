package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedulix/timetable/internal/config"
	"github.com/schedulix/timetable/internal/engine"
)

// placed flattens one schedule entry together with its coordinates.
type placed struct {
	Day     int
	Section string
	Slot    int
	Entry   Entry
}

func placements(schedule *Schedule) []placed {
	var out []placed
	for day, daySchedule := range schedule.Days {
		for _, section := range daySchedule.Sections {
			for slot, entries := range section.Slots {
				for _, entry := range entries.Entries {
					out = append(out, placed{Day: day, Section: section.Section, Slot: slot, Entry: entry})
				}
			}
		}
	}
	return out
}

func solve(t *testing.T, cfg *config.Config) *Result {
	t.Helper()
	result, err := NewTimetabler().Build(cfg)
	require.Nil(t, err)
	return result
}

func theoryInstance(t *testing.T, days []string, slots []string, subjects []config.SubjectAssignment) *config.Config {
	return mustConfig(t, config.Config{
		Days:               days,
		AllSlots:           slots,
		Sections:           []string{"X"},
		Subjects:           map[string][]config.SubjectAssignment{"X": subjects},
		SectionTheoryRooms: map[string]string{"X": "R1"},
		SolverTimeout:      10 * time.Second,
	})
}

func TestBuildTheory(t *testing.T) {
	days := []string{"Mon", "Tue", "Wed"}
	slots := []string{"9-10", "10-11", "11-12"}

	t.Run("places a single subject three times on distinct days", func(t *testing.T) {
		// Arrange
		cfg := theoryInstance(t, days, slots, []config.SubjectAssignment{{Subject: "M", Teacher: "T1"}})

		// Act
		result := solve(t, cfg)

		// Assert
		assert.True(t, result.Status.HasSolution())
		all := placements(result.Schedule)
		assert.Len(t, all, 3)
		usedDays := map[int]bool{}
		for _, p := range all {
			assert.Equal(t, "M", p.Entry.Subject)
			assert.Equal(t, "T1", p.Entry.Teacher)
			assert.Equal(t, "R1", p.Entry.Room)
			assert.False(t, p.Entry.IsLab)
			usedDays[p.Day] = true
		}
		assert.Len(t, usedDays, 3)
		assert.True(t, NewTimetabler().Verify(result.Schedule, cfg, result.Skipped))
	})

	t.Run("two days cannot host three weekly sessions of one teacher", func(t *testing.T) {
		cfg := theoryInstance(t, []string{"Mon", "Tue"}, slots, []config.SubjectAssignment{{Subject: "M", Teacher: "T1"}})

		result := solve(t, cfg)

		assert.Equal(t, engine.StatusInfeasible, result.Status)
		assert.Nil(t, result.Schedule)
	})

	t.Run("too few slots for the total weekly load is infeasible", func(t *testing.T) {
		// 3 subjects x 3 sessions = 9, but only 3 days x 2 slots = 6 fit.
		cfg := theoryInstance(t, days, []string{"9-10", "10-11"}, []config.SubjectAssignment{
			{Subject: "M", Teacher: "T1"},
			{Subject: "P", Teacher: "T2"},
			{Subject: "C", Teacher: "T3"},
		})

		result := solve(t, cfg)

		assert.Equal(t, engine.StatusInfeasible, result.Status)
	})

	t.Run("schedules two subjects side by side", func(t *testing.T) {
		cfg := theoryInstance(t, days, slots, []config.SubjectAssignment{
			{Subject: "M", Teacher: "T1"},
			{Subject: "P", Teacher: "T2"},
		})

		result := solve(t, cfg)

		assert.True(t, result.Status.HasSolution())
		perSubject := map[string]int{}
		for _, p := range placements(result.Schedule) {
			perSubject[p.Entry.Subject]++
		}
		assert.Equal(t, map[string]int{"M": 3, "P": 3}, perSubject)
		assert.True(t, NewTimetabler().Verify(result.Schedule, cfg, result.Skipped))
	})

	t.Run("continuity preference pushes lone sessions to the edges of the day", func(t *testing.T) {
		cfg := theoryInstance(t, days, slots, []config.SubjectAssignment{{Subject: "M", Teacher: "T1"}})
		cfg.Weights.Continuity = 1

		result := solve(t, cfg)

		// One session per day; at a border slot the presence pattern flips
		// once, in the middle it flips twice. The optimum is one flip per day.
		assert.Equal(t, engine.StatusOptimal, result.Status)
		assert.Equal(t, 3, result.Cost)
		for _, p := range placements(result.Schedule) {
			assert.NotEqual(t, 1, p.Slot)
		}
	})
}

func TestBuildLabs(t *testing.T) {
	t.Run("splits a lab across groups on distinct days in one room", func(t *testing.T) {
		cfg := labInstance(t)

		result := solve(t, cfg)

		assert.True(t, result.Status.HasSolution())
		assert.Empty(t, result.Skipped)

		var labs []placed
		for _, p := range placements(result.Schedule) {
			if p.Entry.IsLab {
				labs = append(labs, p)
			}
		}
		// Two groups, two occupied slots each.
		assert.Len(t, labs, 4)

		rooms := map[string]bool{}
		perGroupDays := map[string]map[int]bool{}
		for _, p := range labs {
			assert.Equal(t, "M Lab", p.Entry.Subject)
			assert.Equal(t, "T1", p.Entry.Teacher)
			rooms[p.Entry.Room] = true
			if perGroupDays[p.Entry.Group] == nil {
				perGroupDays[p.Entry.Group] = map[int]bool{}
			}
			perGroupDays[p.Entry.Group][p.Day] = true
		}
		// The week-wide room decision pins every occurrence to one lab room.
		assert.Len(t, rooms, 1)
		// Each group runs its lab on exactly one day, and the single teacher
		// keeps the two groups on different days.
		assert.Len(t, perGroupDays["A"], 1)
		assert.Len(t, perGroupDays["B"], 1)
		for day := range perGroupDays["A"] {
			assert.False(t, perGroupDays["B"][day])
		}

		assert.True(t, NewTimetabler().Verify(result.Schedule, cfg, result.Skipped))
	})

	t.Run("lab occupies its start slot and the following one", func(t *testing.T) {
		cfg := labInstance(t)

		result := solve(t, cfg)

		require.True(t, result.Status.HasSolution())
		type groupSlot struct {
			Day   int
			Group string
		}
		slots := map[groupSlot][]int{}
		for _, p := range placements(result.Schedule) {
			if p.Entry.IsLab {
				key := groupSlot{Day: p.Day, Group: p.Entry.Group}
				slots[key] = append(slots[key], p.Slot)
			}
		}
		for _, occupied := range slots {
			require.Len(t, occupied, 2)
			assert.Equal(t, occupied[0]+1, occupied[1])
		}
	})

	t.Run("sections sharing a lab name share its room", func(t *testing.T) {
		cfg := mustConfig(t, config.Config{
			Days:          []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
			AllSlots:      []string{"9-10", "10-11", "11-12"},
			LabSlotStarts: []string{"9-10", "10-11"},
			Groups:        []string{"A", "B"},
			Sections:      []string{"X", "Y"},
			LabRooms:      []string{"L1", "L2"},
			Subjects: map[string][]config.SubjectAssignment{
				"X": {{Subject: "M", Teacher: "T1"}},
				"Y": {{Subject: "M", Teacher: "T2"}},
			},
			Labs:               map[string][]string{"X": {"M Lab"}, "Y": {"M Lab"}},
			SectionTheoryRooms: map[string]string{"X": "R1", "Y": "R2"},
			SolverTimeout:      10 * time.Second,
		})

		result := solve(t, cfg)

		assert.True(t, result.Status.HasSolution())
		rooms := map[string]bool{}
		for _, p := range placements(result.Schedule) {
			if p.Entry.IsLab {
				rooms[p.Entry.Room] = true
			}
		}
		assert.Len(t, rooms, 1)
		assert.True(t, NewTimetabler().Verify(result.Schedule, cfg, result.Skipped))
	})

	t.Run("a skipped lab is reported and leaves the rest schedulable", func(t *testing.T) {
		cfg := mustConfig(t, config.Config{
			Days:               []string{"Mon", "Tue", "Wed"},
			AllSlots:           []string{"9-10", "10-11", "11-12"},
			LabSlotStarts:      []string{"9-10"},
			Groups:             []string{"A", "B"},
			Sections:           []string{"X"},
			LabRooms:           []string{"L1"},
			Subjects:           map[string][]config.SubjectAssignment{"X": {{Subject: "M", Teacher: "T1"}}},
			Labs:               map[string][]string{"X": {"Z Lab"}},
			SectionTheoryRooms: map[string]string{"X": "R1"},
			SolverTimeout:      10 * time.Second,
		})

		result := solve(t, cfg)

		assert.True(t, result.Status.HasSolution())
		assert.Equal(t, []SkippedLab{{Section: "X", Lab: "Z Lab"}}, result.Skipped)
		for _, p := range placements(result.Schedule) {
			assert.False(t, p.Entry.IsLab)
		}
		assert.True(t, NewTimetabler().Verify(result.Schedule, cfg, result.Skipped))
	})

	t.Run("no lab may span both recess slots", func(t *testing.T) {
		cfg := mustConfig(t, config.Config{
			Days:               []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
			AllSlots:           []string{"11-12", "12-1", "1-2"},
			LabSlotStarts:      []string{"11-12", "12-1"},
			RecessSlots:        []string{"12-1", "1-2"},
			Groups:             []string{"A", "B"},
			Sections:           []string{"X"},
			LabRooms:           []string{"L1"},
			Subjects:           map[string][]config.SubjectAssignment{"X": {{Subject: "M", Teacher: "T1"}}},
			Labs:               map[string][]string{"X": {"M Lab"}},
			SectionTheoryRooms: map[string]string{"X": "R1"},
			SolverTimeout:      10 * time.Second,
		})

		result := solve(t, cfg)

		require.True(t, result.Status.HasSolution())
		// A lab starting at 12-1 would cover both recess slots, so the last
		// slot of the day never hosts a lab.
		for _, p := range placements(result.Schedule) {
			if p.Entry.IsLab {
				assert.NotEqual(t, 2, p.Slot)
			}
		}
		assert.True(t, NewTimetabler().Verify(result.Schedule, cfg, result.Skipped))
	})
}
