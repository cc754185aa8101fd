// Package config loads and validates the timetabling problem instance:
// calendar, sections, subjects, labs, rooms and objective weights.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// labSuffix is the token marking the practical offering of a theory subject.
const labSuffix = " Lab"

// SubjectAssignment pairs a theory subject with the teacher delivering it.
type SubjectAssignment struct {
	Subject string
	Teacher string
}

// Weights are the objective coefficients for each soft-rule category.
type Weights struct {
	Workload      int `mapstructure:"workload_penalty"`
	Continuity    int `mapstructure:"continuity_penalty"`
	ParallelLab   int `mapstructure:"parallel_lab_penalty"`
	DailyLab      int `mapstructure:"daily_lab_penalty"`
	GroupDailyLab int `mapstructure:"group_daily_lab_penalty"`
}

// Config is the normalized problem instance. All collections keep the order
// given in the source file so that model construction is reproducible.
type Config struct {
	Days          []string
	AllSlots      []string
	LabSlotStarts []string
	// RecessSlots holds the two slot labels flanking the recess break, or is
	// empty when the calendar has no recess.
	RecessSlots []string
	Groups      []string
	Sections    []string
	LabRooms    []string

	Subjects           map[string][]SubjectAssignment
	Labs               map[string][]string
	SectionTheoryRooms map[string]string
	// LabSubjectAliases maps lab names whose theory subject cannot be derived
	// by stripping the " Lab" suffix, e.g. "Web Programming Lab" -> "IWP".
	LabSubjectAliases map[string]string

	Weights       Weights
	SolverTimeout time.Duration

	// Derived, sorted for stable identity.
	AllTeachers []string
	AllRooms    []string
	LabNames    []string

	slotIndex map[string]int
}

type fileSettings struct {
	Days                 []string `mapstructure:"days"`
	AllSlots             []string `mapstructure:"all_slots"`
	LabSlotStarts        []string `mapstructure:"lab_slot_starts"`
	RecessSlots          []string `mapstructure:"recess_slots"`
	Groups               []string `mapstructure:"groups"`
	SolverTimeoutSeconds float64  `mapstructure:"solver_timeout_seconds"`
}

type fileConfig struct {
	Settings           fileSettings          `mapstructure:"settings"`
	Sections           []string              `mapstructure:"sections"`
	LabRooms           []string              `mapstructure:"lab_rooms"`
	Subjects           map[string][][]string `mapstructure:"subjects"`
	Labs               map[string][]string   `mapstructure:"labs"`
	SectionTheoryRooms map[string]string     `mapstructure:"section_theory_rooms"`
	LabSubjectAliases  map[string]string     `mapstructure:"lab_subject_aliases"`
	ObjectiveWeights   Weights               `mapstructure:"objective_weights"`
}

// Load reads a JSON problem instance, derives the secondary collections and
// validates it.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	var document map[string]any
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("cannot parse config file: %w", err)
	}

	var file fileConfig
	if err := mapstructure.WeakDecode(document, &file); err != nil {
		return nil, fmt.Errorf("cannot decode config document: %w", err)
	}

	return fromFile(file)
}

// New normalizes a programmatically built instance: it derives the secondary
// collections and validates the result.
func New(cfg Config) (*Config, error) {
	cfg.derive()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func fromFile(file fileConfig) (*Config, error) {
	subjects := make(map[string][]SubjectAssignment, len(file.Subjects))
	for section, pairs := range file.Subjects {
		for _, pair := range pairs {
			if len(pair) != 2 {
				return nil, fmt.Errorf("section %v: subject entry must be a [subject, teacher] pair, got %v", section, pair)
			}
			subjects[section] = append(subjects[section], SubjectAssignment{Subject: pair[0], Teacher: pair[1]})
		}
	}

	return New(Config{
		Days:               file.Settings.Days,
		AllSlots:           file.Settings.AllSlots,
		LabSlotStarts:      file.Settings.LabSlotStarts,
		RecessSlots:        file.Settings.RecessSlots,
		Groups:             file.Settings.Groups,
		Sections:           file.Sections,
		LabRooms:           file.LabRooms,
		Subjects:           subjects,
		Labs:               file.Labs,
		SectionTheoryRooms: file.SectionTheoryRooms,
		LabSubjectAliases:  file.LabSubjectAliases,
		Weights:            file.ObjectiveWeights,
		SolverTimeout:      time.Duration(file.Settings.SolverTimeoutSeconds * float64(time.Second)),
	})
}

func (c *Config) derive() {
	teachers := make([]string, 0)
	for _, section := range c.Sections {
		for _, assignment := range c.Subjects[section] {
			teachers = append(teachers, assignment.Teacher)
		}
	}
	c.AllTeachers = lo.Uniq(teachers)
	sort.Strings(c.AllTeachers)

	rooms := make([]string, 0, len(c.LabRooms))
	for _, section := range c.Sections {
		if room, ok := c.SectionTheoryRooms[section]; ok {
			rooms = append(rooms, room)
		}
	}
	rooms = append(rooms, c.LabRooms...)
	c.AllRooms = lo.Uniq(rooms)
	sort.Strings(c.AllRooms)

	labs := make([]string, 0)
	for _, section := range c.Sections {
		labs = append(labs, c.Labs[section]...)
	}
	c.LabNames = lo.Uniq(labs)
	sort.Strings(c.LabNames)

	c.slotIndex = make(map[string]int, len(c.AllSlots))
	for i, slot := range c.AllSlots {
		c.slotIndex[slot] = i
	}
}

// SlotIndex resolves a slot label to its position in the day.
func (c *Config) SlotIndex(label string) (int, bool) {
	i, ok := c.slotIndex[label]
	return i, ok
}

// TheoryRoom returns the fixed room of a section, if it has one.
func (c *Config) TheoryRoom(section string) (string, bool) {
	room, ok := c.SectionTheoryRooms[section]
	return room, ok && room != ""
}

// TeacherForLab resolves the teacher of a lab offering through the section's
// theory subjects: the alias table first, otherwise the lab name with the
// " Lab" suffix stripped. A miss means the offering is skipped by the builder.
func (c *Config) TeacherForLab(section, lab string) (string, bool) {
	subject, ok := c.LabSubjectAliases[lab]
	if !ok {
		subject = strings.TrimSuffix(lab, labSuffix)
	}
	for _, assignment := range c.Subjects[section] {
		if assignment.Subject == subject {
			return assignment.Teacher, true
		}
	}
	return "", false
}
