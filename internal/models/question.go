package models

import (
	"fmt"
	"strconv"
	"strings"
)

// QuestionSet names one of the three questionnaires.
type QuestionSet string

const (
	SetSPSRQ QuestionSet = "SPSRQ"
	SetRSS   QuestionSet = "RSS"
	SetASQ   QuestionSet = "ASQ"
)

// QuestionSets lists the sets in the order they are loaded.
var QuestionSets = []QuestionSet{SetSPSRQ, SetRSS, SetASQ}

// Title is the full questionnaire name shown as a page heading.
func (s QuestionSet) Title() string {
	switch s {
	case SetSPSRQ:
		return "Sensitivity to Punishment and Sensitivity to Reward Questionnaire (SPSRQ)"
	case SetRSS:
		return "Reinforcement Survey Schedule (RSS)"
	case SetASQ:
		return "Aversive Stimuli Questionnaire (ASQ)"
	}
	return string(s)
}

// Prompt is the sentence frame shown above the follow-up items.
func (s QuestionSet) Prompt() string {
	switch s {
	case SetRSS:
		return "____________ is important to me."
	case SetASQ:
		return "How unpleasant is ____________?"
	}
	return ""
}

// prefix is prepended to a question id to build its qualified id.
func (s QuestionSet) prefix() string {
	if s == SetSPSRQ {
		return "Q"
	}
	return string(s) + "_"
}

// QualifiedID returns the set-qualified identifier of a question, e.g.
// "Q3", "RSS_7" or "ASQ_12".
func (s QuestionSet) QualifiedID(id int) string {
	return s.prefix() + strconv.Itoa(id)
}

// ParseQualifiedID splits a qualified identifier back into its set and id.
func ParseQualifiedID(qid string) (QuestionSet, int, error) {
	for _, s := range []QuestionSet{SetRSS, SetASQ, SetSPSRQ} {
		rest, ok := strings.CutPrefix(qid, s.prefix())
		if !ok {
			continue
		}
		id, err := strconv.Atoi(rest)
		if err != nil {
			return "", 0, fmt.Errorf("invalid question id %q: %w", qid, err)
		}
		return s, id, nil
	}
	return "", 0, fmt.Errorf("unknown question id prefix in %q", qid)
}

// Category tags SPSRQ questions as measuring reward or punishment
// sensitivity. Follow-up questions carry no category.
type Category string

const (
	CategoryNone       Category = ""
	CategoryReward     Category = "reward"
	CategoryPunishment Category = "punishment"
)

// Question is a single Likert item. Questions are immutable once loaded.
type Question struct {
	ID       int
	Text     string
	Category Category
}

// QualifiedID returns the question id qualified by the given set.
func (q Question) QualifiedID(set QuestionSet) string {
	return set.QualifiedID(q.ID)
}
