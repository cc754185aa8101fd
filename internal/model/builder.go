package model

import (
	"fmt"

	"github.com/schedulix/timetable/internal/config"
	"github.com/schedulix/timetable/internal/engine"
)

// buildSessionVariables enumerates every candidate class occurrence as one
// boolean decision variable.
//
// Theory: every (section with a theory room) x (subject, teacher) x day x slot.
// Lab: every (section, lab, group) x day x (lab start slot) x (lab room),
// provided a teacher resolves for the lab; otherwise the whole offering is
// skipped and recorded as a diagnostic.
func buildSessionVariables(m *engine.Model, cfg *config.Config) (*Variables, error) {
	vars := newVariables()

	for _, section := range cfg.Sections {
		room, ok := cfg.TheoryRoom(section)
		if !ok {
			continue
		}
		for _, assignment := range cfg.Subjects[section] {
			for day := range cfg.Days {
				for slot := range cfg.AllSlots {
					key := SessionKey{
						Section: section,
						Group:   GroupAll,
						Subject: assignment.Subject,
						Teacher: assignment.Teacher,
						Day:     day,
						Slot:    slot,
						Room:    room,
					}
					name := fmt.Sprintf("theory_%v_%v_%d_%d", section, assignment.Subject, day, slot)
					session := &Session{Key: key, Kind: KindTheory, Var: m.NewVar(name)}
					if err := vars.add(session); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	for _, section := range cfg.Sections {
		for _, lab := range cfg.Labs[section] {
			teacher, ok := cfg.TeacherForLab(section, lab)
			if !ok {
				vars.Skipped = append(vars.Skipped, SkippedLab{Section: section, Lab: lab})
				continue
			}
			for _, group := range cfg.Groups {
				for day := range cfg.Days {
					for _, start := range cfg.LabSlotStarts {
						slot, ok := cfg.SlotIndex(start)
						if !ok {
							continue
						}
						for _, room := range cfg.LabRooms {
							key := SessionKey{
								Section: section,
								Group:   group,
								Subject: lab,
								Teacher: teacher,
								Day:     day,
								Slot:    slot,
								Room:    room,
							}
							name := fmt.Sprintf("lab_%v_%v_%v_%d_%d_%v", section, group, lab, day, slot, room)
							session := &Session{Key: key, Kind: KindLab, Var: m.NewVar(name)}
							if err := vars.add(session); err != nil {
								return nil, err
							}
						}
					}
				}
			}
		}
	}

	return vars, nil
}

// bindLabRooms creates the week-wide room decision per distinct lab subject
// name and couples every lab session to it: exactly one room per lab name,
// and a scheduled lab session implies its room is the chosen one.
//
// The choice is keyed by lab subject name alone, not by section: two sections
// offering a lab with the identical name share one physical room for the
// whole week. Room exclusivity still keeps them from colliding in time.
func bindLabRooms(m *engine.Model, vars *Variables, cfg *config.Config) {
	type labRoomKey struct {
		lab  string
		room string
	}
	choice := make(map[labRoomKey]engine.Var, len(cfg.LabNames)*len(cfg.LabRooms))
	for _, lab := range cfg.LabNames {
		perRoom := make([]engine.Var, 0, len(cfg.LabRooms))
		for _, room := range cfg.LabRooms {
			v := m.NewVar(fmt.Sprintf("lab_room_choice_%v_%v", lab, room))
			vars.LabRoomChoices = append(vars.LabRoomChoices, &LabRoomChoice{Lab: lab, Room: room, Var: v})
			choice[labRoomKey{lab, room}] = v
			perRoom = append(perRoom, v)
		}
		m.AddExactlyOne(perRoom)
	}

	for _, session := range vars.Sessions {
		if session.Kind != KindLab {
			continue
		}
		if room, ok := choice[labRoomKey{session.Key.Subject, session.Key.Room}]; ok {
			m.AddImplication(session.Var, room)
		}
	}
}
