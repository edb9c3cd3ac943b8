package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveJobContext_PriorityChain(t *testing.T) {
	s := NewSession()

	// Nothing set yet.
	_, ok := resolveJobContext(s)
	assert.False(t, ok)

	// Suggested titles are the lowest-priority source, capped at three.
	s.SetSuggestedTitles([]string{"A", "B", "C", "D"})
	got, ok := resolveJobContext(s)
	require.True(t, ok)
	assert.Equal(t, "A, B, C", got)

	// An explicitly selected title beats suggestions.
	s.SetSelectedJobTitle("Dispatcher")
	got, _ = resolveJobContext(s)
	assert.Equal(t, "Dispatcher", got)

	// Saved jobs beat everything, all titles joined.
	s.SaveJob(JobRecord{Title: "Line Cook", Company: "Diner 22"})
	s.SaveJob(JobRecord{Title: "Prep Cook", Company: "Diner 22"})
	got, _ = resolveJobContext(s)
	assert.Equal(t, "Line Cook, Prep Cook", got)
}

func TestBuildSystemPrompt_SkillsStageCarriesMarkers(t *testing.T) {
	s := NewSession()
	prompt := BuildSystemPrompt(StageSkills, s)
	assert.Contains(t, prompt, skillsStartMarker)
	assert.Contains(t, prompt, skillsEndMarker)
	assert.Contains(t, prompt, "Career Compass")
}

func TestBuildSystemPrompt_JobsStageInterpolatesLiveState(t *testing.T) {
	s := NewSession()
	prompt := BuildSystemPrompt(StageJobs, s)
	assert.NotContains(t, prompt, "selected focus skills")

	s.SelectSkills([]string{"communication", "technical"})
	s.SetSelectedJobTitle("Dispatcher")
	prompt = BuildSystemPrompt(StageJobs, s)
	assert.Contains(t, prompt, "communication, technical")
	assert.Contains(t, prompt, "Dispatcher")
}

func TestBuildSystemPrompt_GoalsStageReflectsEarlierStages(t *testing.T) {
	s := NewSession()
	prompt := BuildSystemPrompt(StageGoals, s)
	assert.NotContains(t, prompt, "job context")

	// A change made in an earlier stage shows up on the next goal turn.
	s.SaveJob(JobRecord{Title: "Home Health Aide", Company: "Caring Connections Health"})
	_, err := s.Goals.Save("Shadow a caregiver", "")
	require.NoError(t, err)

	prompt = BuildSystemPrompt(StageGoals, s)
	assert.Contains(t, prompt, "Home Health Aide")
	assert.Contains(t, prompt, "Shadow a caregiver")
}

func TestWelcomeMessage_GoalStageUsesJobContext(t *testing.T) {
	s := NewSession()
	generic := WelcomeMessage(StageGoals, s)
	assert.Contains(t, generic, "achievable career goals")

	s.SetSelectedJobTitle("Electronics Repair Technician")
	contextual := WelcomeMessage(StageGoals, s)
	assert.Contains(t, contextual, "Electronics Repair Technician")
}
