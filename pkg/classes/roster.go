package classes

import (
	_ "embed"
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/bookroll/bookroll/pkg/errors"
)

// Track is one of the school's class tracks.
type Track string

// The three tracks classes belong to.
const (
	TrackRegular     Track = "普通科"
	TrackCooperative Track = "建教班"
	TrackPractical   Track = "實用技能班"
)

// Tracks returns all tracks in display order.
func Tracks() []Track {
	return []Track{TrackRegular, TrackCooperative, TrackPractical}
}

// Roster is the school's class layout: which class suffixes exist per
// track, and which of them each vocational department owns. Class names
// are formed as grade prefix + suffix (e.g. 一 + 機甲).
type Roster struct {
	// Suffixes lists every class suffix per track, school-wide.
	Suffixes map[Track][]string `yaml:"suffixes"`

	// Departments overrides Suffixes per vocational department. A
	// department absent here (an academic subject department) uses the
	// school-wide suffixes.
	Departments map[string]map[Track][]string `yaml:"departments"`
}

//go:embed roster.yaml
var defaultRosterYAML []byte

// DefaultRoster returns the embedded school roster.
func DefaultRoster() *Roster {
	var roster Roster
	// The embedded file ships with the binary; a decode failure is a
	// build defect, not a runtime condition.
	if err := yaml.Unmarshal(defaultRosterYAML, &roster); err != nil {
		panic(err)
	}
	return &roster
}

// LoadRoster reads a roster from a YAML file.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, errors.WrapIO("parse", path, err)
	}
	return &roster, nil
}

// gradePrefixes maps grade numbers to the class-name prefix.
var gradePrefixes = map[string]string{
	"1": "一",
	"2": "二",
	"3": "三",
}

// GradePrefix returns the class-name prefix for a grade, or "" for an
// unknown grade.
func GradePrefix(grade string) string {
	return gradePrefixes[grade]
}

// TargetClasses returns the class names a department's track maps to for
// a grade. Cooperative-track classes do not exist in grade 3.
func (r *Roster) TargetClasses(department, grade string, track Track) []string {
	if grade == "3" && track == TrackCooperative {
		return nil
	}
	prefix := GradePrefix(grade)
	if prefix == "" {
		return nil
	}

	suffixes := r.Suffixes[track]
	if overrides, ok := r.Departments[department]; ok {
		suffixes = overrides[track]
	}

	classes := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		classes = append(classes, prefix+suffix)
	}
	return classes
}

// AllClasses returns every class name that exists in a grade, sorted.
func (r *Roster) AllClasses(grade string) []string {
	prefix := GradePrefix(grade)
	if prefix == "" {
		return nil
	}

	unique := Set{}
	for track, suffixes := range r.Suffixes {
		if grade == "3" && track == TrackCooperative {
			continue
		}
		for _, suffix := range suffixes {
			unique[prefix+suffix] = struct{}{}
		}
	}

	classes := unique.List()
	sort.Strings(classes)
	return classes
}

// IsVocational reports whether a department has its own class layout.
func (r *Roster) IsVocational(department string) bool {
	_, ok := r.Departments[department]
	return ok
}
