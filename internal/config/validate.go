package config

import (
	"fmt"

	"github.com/samber/lo"
)

// Validate checks the structural integrity of the instance. Per-entity defects
// such as a section without a theory room or a lab without a resolvable
// teacher are not errors: the model builder degrades gracefully by skipping
// the affected variables.
func (c *Config) Validate() error {
	if len(c.Days) == 0 {
		return fmt.Errorf("config: at least one day is required")
	}
	if len(c.AllSlots) == 0 {
		return fmt.Errorf("config: at least one slot is required")
	}
	if len(c.Sections) == 0 {
		return fmt.Errorf("config: at least one section is required")
	}
	if dupes := duplicates(c.AllSlots); len(dupes) > 0 {
		return fmt.Errorf("config: duplicate slot labels: %v", dupes)
	}
	if dupes := duplicates(c.Sections); len(dupes) > 0 {
		return fmt.Errorf("config: duplicate sections: %v", dupes)
	}
	if dupes := duplicates(c.Groups); len(dupes) > 0 {
		return fmt.Errorf("config: duplicate groups: %v", dupes)
	}

	// A lab occupies its start slot and the following one, so the last slot
	// of the day can never start a lab.
	for _, start := range c.LabSlotStarts {
		i, ok := c.SlotIndex(start)
		if !ok {
			return fmt.Errorf("config: lab start slot %q is not in all_slots", start)
		}
		if i+1 >= len(c.AllSlots) {
			return fmt.Errorf("config: lab start slot %q has no following slot", start)
		}
	}

	switch len(c.RecessSlots) {
	case 0:
		// No recess rule for this calendar.
	case 2:
		if c.RecessSlots[0] == c.RecessSlots[1] {
			return fmt.Errorf("config: recess slots must be distinct, got %q twice", c.RecessSlots[0])
		}
		for _, slot := range c.RecessSlots {
			if _, ok := c.SlotIndex(slot); !ok {
				return fmt.Errorf("config: recess slot %q is not in all_slots", slot)
			}
		}
	default:
		return fmt.Errorf("config: recess_slots must name exactly two slots, got %d", len(c.RecessSlots))
	}

	hasLabs := lo.SomeBy(c.Sections, func(section string) bool { return len(c.Labs[section]) > 0 })
	if hasLabs && len(c.LabRooms) == 0 {
		return fmt.Errorf("config: labs are configured but the lab room pool is empty")
	}
	if hasLabs && len(c.LabSlotStarts) == 0 {
		return fmt.Errorf("config: labs are configured but no lab start slots are defined")
	}

	if c.SolverTimeout <= 0 {
		return fmt.Errorf("config: solver_timeout_seconds must be positive")
	}
	for name, weight := range map[string]int{
		"workload_penalty":        c.Weights.Workload,
		"continuity_penalty":      c.Weights.Continuity,
		"parallel_lab_penalty":    c.Weights.ParallelLab,
		"daily_lab_penalty":       c.Weights.DailyLab,
		"group_daily_lab_penalty": c.Weights.GroupDailyLab,
	} {
		if weight < 0 {
			return fmt.Errorf("config: %v must not be negative, got %d", name, weight)
		}
	}
	return nil
}

func duplicates(values []string) []string {
	return lo.FindDuplicates(values)
}
