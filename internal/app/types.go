package app

import "time"

// Stage identifies one of the three workflow phases. All stages are
// reachable at any time via the stage selector; the zero value is the
// starting stage.
type Stage int

const (
	StageSkills Stage = iota
	StageJobs
	StageGoals
)

func (s Stage) String() string {
	switch s {
	case StageSkills:
		return "skill-discovery"
	case StageJobs:
		return "job-search"
	case StageGoals:
		return "goal-setting"
	default:
		return "unknown"
	}
}

// Label returns the human-facing tab title for the stage.
func (s Stage) Label() string {
	switch s {
	case StageSkills:
		return "Skill Discovery"
	case StageJobs:
		return "Job Search"
	case StageGoals:
		return "Goal Setting"
	default:
		return "Unknown"
	}
}

// ParseStage maps user-supplied stage names (as typed in the REPL) to a
// Stage. Accepts the canonical name and a few short aliases.
func ParseStage(name string) (Stage, bool) {
	switch name {
	case "skills", "skill-discovery", "1":
		return StageSkills, true
	case "jobs", "job-search", "2":
		return StageJobs, true
	case "goals", "goal-setting", "3":
		return StageGoals, true
	}
	return StageSkills, false
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in a stage conversation. Only role and content
// ever cross the model boundary.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Skill is a single skill identified during skill discovery. Produced only
// by ExtractSkills; immutable once created.
type Skill struct {
	Name string `json:"name"`
}

// JobRecord is the uniform job shape every search path produces, whether
// the listing came from the live provider or the built-in sample list.
// Description and Requirements are populated only when a detail fetch is
// requested.
type JobRecord struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	URL          string `json:"url"`
	Remote       bool   `json:"remote"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
}

// Goal is one career goal. ID is allocated at creation and stays stable for
// the lifetime of the goal; it is the only valid handle for toggling.
type Goal struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	JobTitle  string    `json:"job_title"`
	DateAdded time.Time `json:"date_added"`
	Completed bool      `json:"completed"`
}
