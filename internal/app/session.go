package app

import (
	"sync"

	"github.com/google/uuid"
)

// MaxSelectedSkills caps how many skills a user can carry into job search.
const MaxSelectedSkills = 3

// Session is the per-user aggregate threading skills, titles, jobs, and
// goals across the three stages. One is created per connected user and
// passed explicitly into every handler; nothing in this package holds a
// package-level session.
type Session struct {
	ID string

	mu               sync.Mutex
	stage            Stage
	skills           []Skill
	selectedSkills   []string
	suggestedTitles  []string
	savedJobs        []JobRecord
	selectedJobTitle string
	lastResults      []JobRecord
	history          map[Stage][]ChatMessage

	Goals *GoalTracker
}

func NewSession() *Session {
	return &Session{
		ID:      uuid.NewString(),
		history: make(map[Stage][]ChatMessage),
		Goals:   NewGoalTracker(),
	}
}

func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

func (s *Session) setStage(stage Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage = stage
}

// ReplaceSkills swaps the whole skill list for the latest extracted
// snapshot. Last full snapshot wins; there is no merging.
func (s *Session) ReplaceSkills(skills []Skill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skills = append([]Skill(nil), skills...)
}

func (s *Session) Skills() []Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Skill(nil), s.skills...)
}

// SelectSkills records the user's focus skills, truncating anything past
// the cap rather than rejecting.
func (s *Session) SelectSkills(names []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(names) > MaxSelectedSkills {
		names = names[:MaxSelectedSkills]
	}
	s.selectedSkills = append([]string(nil), names...)
	return append([]string(nil), s.selectedSkills...)
}

func (s *Session) SelectedSkills() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selectedSkills...)
}

func (s *Session) SetSuggestedTitles(titles []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestedTitles = append([]string(nil), titles...)
}

func (s *Session) SuggestedTitles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.suggestedTitles...)
}

func (s *Session) SetSelectedJobTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedJobTitle = title
}

func (s *Session) SelectedJobTitle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedJobTitle
}

// SaveJob appends a job unless an identical record is already saved.
// Reports whether the list grew.
func (s *Session) SaveJob(job JobRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.savedJobs {
		if existing == job {
			return false
		}
	}
	s.savedJobs = append(s.savedJobs, job)
	return true
}

func (s *Session) SavedJobs() []JobRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]JobRecord(nil), s.savedJobs...)
}

// SetLastResults remembers the most recent search results so the user can
// save one by its displayed index.
func (s *Session) SetLastResults(jobs []JobRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResults = append([]JobRecord(nil), jobs...)
}

// LastResult returns the 1-based nth job of the latest search.
func (s *Session) LastResult(n int) (JobRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 || n > len(s.lastResults) {
		return JobRecord{}, false
	}
	return s.lastResults[n-1], true
}

func (s *Session) History(stage Stage) []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatMessage(nil), s.history[stage]...)
}

func (s *Session) appendHistory(stage Stage, msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[stage] = append(s.history[stage], msg)
}

// SessionManager hands out sessions keyed by ID, creating on first sight.
// This is the only shared structure; everything inside a session belongs to
// exactly one user.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Get returns the session with the given ID, creating a fresh one when the
// ID is empty or unknown.
func (m *SessionManager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id != "" {
		if s, ok := m.sessions[id]; ok {
			return s
		}
	}
	s := NewSession()
	m.sessions[s.ID] = s
	return s
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
