// Package model translates a timetabling instance into a pseudo-boolean
// constraint model, encodes the institutional rules and quality preferences,
// and extracts the solved assignment back into a weekly schedule.
package model

import (
	"fmt"

	"github.com/schedulix/timetable/internal/engine"
)

// Kind distinguishes the two session variants. Theory sessions span one slot
// and address the whole section; lab sessions span two consecutive slots and
// address one group.
type Kind int

const (
	KindTheory Kind = iota
	KindLab
)

// GroupAll is the pseudo-group addressing a whole section.
const GroupAll = "ALL"

// Fixed institutional loads.
const (
	theoryWeeklyLoad = 3 // sessions per (section, subject) per week
	theoryDailyCap   = 4 // theory sessions per (section, day)
	labDailyCap      = 2 // lab sessions per (section, group, day)
)

// SessionKey is the sole identity of a candidate class occurrence.
type SessionKey struct {
	Section string
	Group   string
	Subject string
	Teacher string
	Day     int
	Slot    int
	Room    string
}

// Session is one atomic class candidate bound to a decision variable.
type Session struct {
	Key  SessionKey
	Kind Kind
	Var  engine.Var
}

// ActiveAt reports whether the session occupies the given slot when true.
// Labs occupy their start slot and the one after it.
func (s *Session) ActiveAt(slot int) bool {
	if s.Kind == KindLab {
		return s.Key.Slot == slot || s.Key.Slot+1 == slot
	}
	return s.Key.Slot == slot
}

// InBucket reports whether the session belongs to the given exclusivity
// bucket of its section. The GroupAll bucket aggregates every session of the
// section, so a whole-section theory class excludes any group's lab; a named
// group bucket holds only that group's own sessions.
func (s *Session) InBucket(group string) bool {
	if group == GroupAll {
		return true
	}
	return s.Key.Group == group
}

// SkippedLab records a lab offering that produced no variables because no
// teacher could be resolved for it.
type SkippedLab struct {
	Section string
	Lab     string
}

func (s SkippedLab) String() string {
	return fmt.Sprintf("%v/%v", s.Section, s.Lab)
}

// LabRoomChoice is the week-wide room decision for one lab subject name.
type LabRoomChoice struct {
	Lab  string
	Room string
	Var  engine.Var
}

// Variables is the arena of decision variables for one run. Sessions are kept
// in allocation order so that iteration, and therefore the emitted constraint
// model, is reproducible.
type Variables struct {
	Sessions       []*Session
	LabRoomChoices []*LabRoomChoice
	Skipped        []SkippedLab

	byKey map[SessionKey]*Session
}

func newVariables() *Variables {
	return &Variables{byKey: map[SessionKey]*Session{}}
}

func (v *Variables) add(s *Session) error {
	if _, ok := v.byKey[s.Key]; ok {
		return fmt.Errorf("duplicate session key %+v", s.Key)
	}
	v.byKey[s.Key] = s
	v.Sessions = append(v.Sessions, s)
	return nil
}

// Lookup returns the session with the given key, if one was generated.
func (v *Variables) Lookup(key SessionKey) (*Session, bool) {
	s, ok := v.byKey[key]
	return s, ok
}
