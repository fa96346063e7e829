package models

import (
	"encoding/json"
	"reflect"
)

// Deadline is a date mentioned in the regulatory text together with the
// obligation it attaches to.
type Deadline struct {
	Date        string `json:"date"` // ISO-8601 (YYYY-MM-DD)
	Description string `json:"description"`
}

// RegulatoryModel is the structured projection of the free-form input text
// produced by the Translator agent.
type RegulatoryModel struct {
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description"`
	Requirements    []string   `json:"requirements"`
	Deadlines       []Deadline `json:"deadlines"`
	AffectedSystems []string   `json:"affected_systems"`
}

// Validate checks structural requirements of the model.
func (m *RegulatoryModel) Validate() error {
	return validate.Struct(m)
}

// Format serializes the model to JSON. Paired with ParseRegulatoryModel to
// satisfy the round-trip invariant parse(format(m)) == m.
func (m *RegulatoryModel) Format() ([]byte, error) {
	return json.Marshal(m)
}

// ParseRegulatoryModel deserializes JSON produced by Format.
func ParseRegulatoryModel(data []byte) (*RegulatoryModel, error) {
	var m RegulatoryModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Equal reports deep equality, normalizing nil vs. empty slices so that a
// model round-tripped through JSON (which never produces nil slices) still
// compares equal to one built with nil slices in Go.
func (m *RegulatoryModel) Equal(other *RegulatoryModel) bool {
	if m == nil || other == nil {
		return m == other
	}
	a, b := *m, *other
	normalize(&a.Requirements)
	normalize(&b.Requirements)
	normalize(&a.AffectedSystems)
	normalize(&b.AffectedSystems)
	if a.Deadlines == nil {
		a.Deadlines = []Deadline{}
	}
	if b.Deadlines == nil {
		b.Deadlines = []Deadline{}
	}
	return reflect.DeepEqual(a, b)
}

func normalize(s *[]string) {
	if *s == nil {
		*s = []string{}
	}
}
