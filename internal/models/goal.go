package models

import (
	"time"
	"unicode/utf8"
)

type Category string

const (
	CategoryCoding        Category = "coding"
	CategoryCommunication Category = "communication"
	CategoryDesign        Category = "design"
	CategoryFinance       Category = "finance"
	CategoryWriting       Category = "writing"
	CategoryOther         Category = "other"
)

var Categories = []Category{
	CategoryCoding, CategoryCommunication, CategoryDesign,
	CategoryFinance, CategoryWriting, CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type GoalStatus string

const (
	StatusActive    GoalStatus = "active"
	StatusCompleted GoalStatus = "completed"
)

func (s GoalStatus) Valid() bool {
	return s == StatusActive || s == StatusCompleted
}

const (
	// DefaultXP is the reward used when the difficulty is unset or unknown.
	DefaultXP = 100
	// DescriptionBonusXP is added when the description is longer than DescriptionBonusMinLen.
	DescriptionBonusXP     = 20
	DescriptionBonusMinLen = 50
)

// BaseXP maps a difficulty to its base reward.
func BaseXP(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 50
	case DifficultyMedium:
		return 100
	case DifficultyHard:
		return 200
	}
	return DefaultXP
}

// ComputeXP returns the reward fixed on a goal when it is created.
// The description is expected to be trimmed already.
func ComputeXP(d Difficulty, description string) int {
	xp := BaseXP(d)
	if utf8.RuneCountInString(description) > DescriptionBonusMinLen {
		xp += DescriptionBonusXP
	}
	return xp
}

// DeadlineState is the presentation classification of a goal.
type DeadlineState string

const (
	StateCompleted DeadlineState = "completed"
	StateOverdue   DeadlineState = "overdue"
	StateUpcoming  DeadlineState = "upcoming"
)

// Classification is derived on every read and never stored.
type Classification struct {
	State         DeadlineState `json:"state"`
	DaysRemaining int           `json:"days_remaining"`
}

// Classify derives the goal state relative to today.
func Classify(g Goal, today time.Time) Classification {
	if g.Status == StatusCompleted {
		return Classification{State: StateCompleted}
	}
	days := DaysBetween(today, g.Deadline)
	if days < 0 {
		return Classification{State: StateOverdue}
	}
	return Classification{State: StateUpcoming, DaysRemaining: days}
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from a to b, comparing the dates each
// value carries in its own location.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
