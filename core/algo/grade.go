// Package algo implements the ranked-list scoring engine and every metric built on it.
// Nothing in this package performs I/O; all functions are safe for concurrent use.
package algo

import (
	"errors"
	"strconv"
)

// Sentinel errors returned by validation and counting helpers.
var (
	ErrNoRelevant      = errors.New("no relevant document found in the relevance assessments")
	ErrInvalidConfig   = errors.New("invalid metric configuration")
	ErrLevelOutOfRange = errors.New("relevance level out of range")
)

// Grade is a relevance level attached to a ranked document.
// The zero value is an unjudged document, which is distinct from a judged level 0.
type Grade struct {
	Level  int
	Judged bool
}

// Unjudged marks a document with no relevance judgment.
var Unjudged = Grade{}

// NewGrade returns a judged grade at the given level.
func NewGrade(level int) Grade {
	return Grade{Level: level, Judged: true}
}

// Value returns the level used in scoring formulas; unjudged counts as 0.
func (g Grade) Value() int {
	if !g.Judged {
		return 0
	}
	return g.Level
}

// IsRelevant reports whether the grade is a judged level above 0.
func (g Grade) IsRelevant() bool {
	return g.Judged && g.Level > 0
}

// String renders the grade as the L<level> token, or "" when unjudged.
func (g Grade) String() string {
	if !g.Judged {
		return ""
	}
	return "L" + strconv.Itoa(g.Level)
}

// Doc is a document identifier paired with its grade.
type Doc struct {
	ID    string
	Grade Grade
}

// RankedList is an ordered list of labelled documents; rank = index + 1.
type RankedList []Doc

// Condense returns the list without unjudged documents.
func (rl RankedList) Condense() RankedList {
	out := make(RankedList, 0, len(rl))
	for _, d := range rl {
		if d.Grade.Judged {
			out = append(out, d)
		}
	}
	return out
}

// MaxLevel returns the highest level in the list, or 0 when nothing is relevant.
func (rl RankedList) MaxLevel() int {
	maxLevel := 0
	for _, d := range rl {
		if v := d.Grade.Value(); v > maxLevel {
			maxLevel = v
		}
	}
	return maxLevel
}

// Qrels maps a document identifier to its judged relevance level.
type Qrels map[string]int
