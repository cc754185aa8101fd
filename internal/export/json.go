// Package export writes a built schedule to its persisted representations.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/schedulix/timetable/internal/model"
)

// MarshalScheduleJSON renders the schedule as a JSON document mapping each
// day name to a list of per-section objects carrying the section identifier
// and one entry list per slot label. Keys are emitted in calendar order, so
// the same schedule always yields byte-identical output.
func MarshalScheduleJSON(schedule *model.Schedule) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range schedule.Days {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, day.Day); err != nil {
			return nil, err
		}
		buf.WriteByte('[')
		for j, section := range day.Sections {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeSection(&buf, section); err != nil {
				return nil, err
			}
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')

	var indented bytes.Buffer
	if err := json.Indent(&indented, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting schedule json: %w", err)
	}
	return indented.Bytes(), nil
}

// WriteScheduleJSON writes the JSON rendering of the schedule to path.
func WriteScheduleJSON(schedule *model.Schedule, path string) error {
	data, err := MarshalScheduleJSON(schedule)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0666); err != nil {
		return fmt.Errorf("writing schedule json: %w", err)
	}
	return nil
}

func writeSection(buf *bytes.Buffer, section model.SectionSchedule) error {
	buf.WriteByte('{')
	if err := writeKey(buf, "section"); err != nil {
		return err
	}
	if err := writeValue(buf, section.Section); err != nil {
		return err
	}
	for _, slot := range section.Slots {
		buf.WriteByte(',')
		if err := writeKey(buf, slot.Slot); err != nil {
			return err
		}
		entries := slot.Entries
		if entries == nil {
			entries = []model.Entry{}
		}
		if err := writeValue(buf, entries); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	if err := writeValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return nil
}

func writeValue(buf *bytes.Buffer, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding schedule json: %w", err)
	}
	buf.Write(data)
	return nil
}
