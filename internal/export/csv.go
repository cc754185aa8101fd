package export

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/schedulix/timetable/internal/model"
)

// ScheduleCSVRow is one slot occupancy in the flattened CSV rendering.
type ScheduleCSVRow struct {
	Day     string `csv:"day"`
	Section string `csv:"section"`
	Slot    string `csv:"slot"`
	Subject string `csv:"subject"`
	Teacher string `csv:"teacher"`
	Room    string `csv:"room"`
	Group   string `csv:"group"`
	IsLab   bool   `csv:"is_lab"`
}

// FlattenSchedule renders the schedule as one row per (day, section, slot,
// entry), in schedule order. Lab sessions appear once per occupied slot, as
// in the JSON rendering.
func FlattenSchedule(schedule *model.Schedule) []*ScheduleCSVRow {
	rows := make([]*ScheduleCSVRow, 0)
	for _, day := range schedule.Days {
		for _, section := range day.Sections {
			for _, slot := range section.Slots {
				for _, entry := range slot.Entries {
					rows = append(rows, &ScheduleCSVRow{
						Day:     day.Day,
						Section: section.Section,
						Slot:    slot.Slot,
						Subject: entry.Subject,
						Teacher: entry.Teacher,
						Room:    entry.Room,
						Group:   entry.Group,
						IsLab:   entry.IsLab,
					})
				}
			}
		}
	}
	return rows
}

// WriteScheduleCSV writes the flattened schedule to a CSV file at path.
func WriteScheduleCSV(schedule *model.Schedule, path string) error {
	rows := FlattenSchedule(schedule)

	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0666)
	if err != nil {
		return fmt.Errorf("creating schedule csv: %w", err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("writing schedule csv: %w", err)
	}
	return nil
}
