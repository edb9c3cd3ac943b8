package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end over the canned mock model: a skill-discovery turn extracts
// skills, selection produces suggestions, search falls back to samples, and
// a goal lands against the saved job.
func TestApplication_MockWorkflowRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	application := NewApplication(cfg, nil, true)
	ctrl := application.Controller
	s := application.Sessions.Get("")
	ctx := context.Background()

	result := ctrl.HandleTurn(ctx, s, StageSkills, "Tell me about my work experience")
	require.True(t, result.SkillsFound)
	assert.NotEmpty(t, s.Skills())

	ctrl.SelectSkills(ctx, s, []string{"communication", "technical"})
	assert.Equal(t, StageJobs, s.Stage())
	require.Len(t, s.SuggestedTitles(), DefaultTitleCount)

	out := ctrl.SearchJobs(ctx, s, ctrl.DefaultQuery(s), "PA", 5, false)
	assert.Contains(t, out, SampleDataNote, "no provider credential in tests")

	ctrl.SaveJobByIndex(ctx, s, 1)
	require.Len(t, s.SavedJobs(), 1)

	ctrl.SelectStage(s, StageGoals)
	intro := s.History(StageGoals)[0].Content
	assert.Contains(t, intro, s.SavedJobs()[0].Title)

	ctrl.SaveGoal(s, "Apply this week")
	goals := s.Goals.List()
	require.Len(t, goals, 1)
	assert.Equal(t, s.SavedJobs()[0].Title, goals[0].JobTitle)
}

func TestNewApplication_TitleStrategySelection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TitleStrategy = "model"
	application := NewApplication(cfg, nil, true)

	_, isModel := application.Controller.Titles.Strategy.(ModelStrategy)
	assert.True(t, isModel)

	cfg.TitleStrategy = "lookup"
	application = NewApplication(cfg, nil, true)
	_, isLookup := application.Controller.Titles.Strategy.(LookupStrategy)
	assert.True(t, isLookup)
}
