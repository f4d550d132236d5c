package models

import (
	"fmt"
	"strings"
)

// Participant is the person who gave consent. Created at consent and never
// modified afterwards.
type Participant struct {
	Name string
}

// NewParticipant validates the typed consent name.
func NewParticipant(name string) (Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Participant{}, fmt.Errorf("%w: please enter your full name before submitting", ErrValidationFailed)
	}
	return Participant{Name: name}, nil
}

// ExportFilename is the sticker export file name consumed by the weekly
// tracker: the participant name with spaces replaced by underscores.
func (p Participant) ExportFilename() string {
	return strings.ReplaceAll(p.Name, " ", "_") + "_sticker_data.csv"
}
