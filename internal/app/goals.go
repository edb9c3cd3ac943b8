package app

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrEmptyGoal    = errors.New("goal text is empty")
	ErrGoalNotFound = errors.New("goal not found")
)

// DefaultGoalLabel is used when a goal is saved without a job context.
const DefaultGoalLabel = "General career development"

// GoalTracker owns the goal list for one session. IDs are allocated from a
// monotonic counter and never reused; they are distinct from list position
// even though nothing deletes goals today.
type GoalTracker struct {
	mu     sync.Mutex
	goals  []Goal
	nextID int
	now    func() time.Time
}

func NewGoalTracker() *GoalTracker {
	return &GoalTracker{now: time.Now}
}

// Save appends a new incomplete goal dated today. Blank text is rejected
// with ErrEmptyGoal and leaves the list untouched.
func (t *GoalTracker) Save(text, jobTitle string) (Goal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if isBlank(text) {
		return Goal{}, ErrEmptyGoal
	}
	if isBlank(jobTitle) {
		jobTitle = DefaultGoalLabel
	}
	goal := Goal{
		ID:        t.nextID,
		Text:      text,
		JobTitle:  jobTitle,
		DateAdded: t.now(),
	}
	t.nextID++
	t.goals = append(t.goals, goal)
	return goal, nil
}

// Toggle flips the completion flag of the goal with the given ID. Lookup is
// by ID, never by list index.
func (t *GoalTracker) Toggle(id int) (Goal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.goals {
		if t.goals[i].ID == id {
			t.goals[i].Completed = !t.goals[i].Completed
			return t.goals[i], nil
		}
	}
	return Goal{}, ErrGoalNotFound
}

// List returns a copy of the goals in insertion order.
func (t *GoalTracker) List() []Goal {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Goal, len(t.goals))
	copy(out, t.goals)
	return out
}

func (t *GoalTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.goals)
}

// GoalRow is one display row: the status glyph carries the click-to-toggle
// affordance, the raw bool stays available for logic.
type GoalRow struct {
	ID        int
	Status    string
	Text      string
	JobTitle  string
	Date      string
	Completed bool
}

const (
	glyphDone    = "✓"
	glyphPending = "○"
)

// Rows renders one row per goal for the display layer.
func (t *GoalTracker) Rows() []GoalRow {
	goals := t.List()
	rows := make([]GoalRow, len(goals))
	for i, g := range goals {
		status := glyphPending
		if g.Completed {
			status = glyphDone
		}
		rows[i] = GoalRow{
			ID:        g.ID,
			Status:    status,
			Text:      g.Text,
			JobTitle:  g.JobTitle,
			Date:      g.DateAdded.Format("2006-01-02"),
			Completed: g.Completed,
		}
	}
	return rows
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
