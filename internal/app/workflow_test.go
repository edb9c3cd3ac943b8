package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(model ModelClient) *Controller {
	jobs := NewJobClient("", "", 30, 25, nil) // no credential: always sample fallback
	titles := &TitleGenerator{Strategy: LookupStrategy{}}
	return NewController(model, jobs, titles, nil, 0.7, 1000)
}

func TestHandleTurn_OrdinaryReply(t *testing.T) {
	model := &scriptedModel{reply: "Tell me more about your work history."}
	ctrl := newTestController(model)
	s := NewSession()

	result := ctrl.HandleTurn(context.Background(), s, StageSkills, "I used to fix cars")
	assert.Equal(t, model.reply, result.Display)
	assert.False(t, result.SkillsFound)

	history := s.History(StageSkills)
	require.Len(t, history, 2)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, "I used to fix cars", history[0].Content)
	assert.Equal(t, RoleAssistant, history[1].Role)

	// Only role/content cross the model boundary, system prompt separate.
	assert.Contains(t, model.lastSystem, "Career Compass")
	require.Len(t, model.lastMsgs, 1)
}

func TestHandleTurn_ModelFailureYieldsApology(t *testing.T) {
	model := &scriptedModel{err: errors.New("connection refused")}
	ctrl := newTestController(model)
	s := NewSession()

	result := ctrl.HandleTurn(context.Background(), s, StageGoals, "help me plan")
	assert.Equal(t, ApologyMessage, result.Display)

	// History keeps the user's message so resubmitting just works.
	history := s.History(StageGoals)
	require.Len(t, history, 2)
	assert.Equal(t, "help me plan", history[0].Content)
	assert.Equal(t, ApologyMessage, history[1].Content)
}

func TestHandleTurn_ExtractsAndReplacesSkills(t *testing.T) {
	s := NewSession()
	s.ReplaceSkills([]Skill{{Name: "Old Skill"}})

	model := &scriptedModel{reply: "Here's what I found:\n" +
		skillsStartMarker + "\n1. Cooking: meals\n2. Driving: routes\n" + skillsEndMarker}
	ctrl := newTestController(model)

	result := ctrl.HandleTurn(context.Background(), s, StageSkills, "my background")
	require.True(t, result.SkillsFound)
	require.Len(t, result.Skills, 2)
	assert.Equal(t, "Here's what I found:", result.Display)

	skills := s.Skills()
	require.Len(t, skills, 2)
	assert.Equal(t, "Cooking", skills[0].Name)
}

func TestHandleTurn_NoMarkersLeavesSkillsAlone(t *testing.T) {
	s := NewSession()
	s.ReplaceSkills([]Skill{{Name: "Budgeting"}})

	model := &scriptedModel{reply: "Just chatting, no structured list."}
	ctrl := newTestController(model)
	ctrl.HandleTurn(context.Background(), s, StageSkills, "hello")

	skills := s.Skills()
	require.Len(t, skills, 1)
	assert.Equal(t, "Budgeting", skills[0].Name)
}

func TestHandleTurn_BlockOnlyReplyGetsAckMessage(t *testing.T) {
	model := &scriptedModel{reply: skillsStartMarker + "\n1. Cooking: meals\n" + skillsEndMarker}
	ctrl := newTestController(model)
	s := NewSession()

	result := ctrl.HandleTurn(context.Background(), s, StageSkills, "my background")
	assert.Equal(t, skillAckMessage, result.Display)
}

func TestSelectSkills_MovesToJobSearchWithSuggestions(t *testing.T) {
	ctrl := newTestController(&scriptedModel{})
	s := NewSession()

	selected := ctrl.SelectSkills(context.Background(), s, []string{"communication", "technical"})
	assert.Equal(t, []string{"communication", "technical"}, selected)
	assert.Equal(t, StageJobs, s.Stage())

	titles := s.SuggestedTitles()
	require.Len(t, titles, DefaultTitleCount)
	assertNoDuplicates(t, titles)
}

func TestSelectStage_SeedsWelcomeOnce(t *testing.T) {
	ctrl := newTestController(&scriptedModel{})
	s := NewSession()

	welcome := ctrl.SelectStage(s, StageJobs)
	assert.Contains(t, welcome, "Job Search")
	require.Len(t, s.History(StageJobs), 1)

	again := ctrl.SelectStage(s, StageJobs)
	assert.Empty(t, again)
	assert.Len(t, s.History(StageJobs), 1)
}

func TestSelectStage_AllStagesReachableAnyTime(t *testing.T) {
	ctrl := newTestController(&scriptedModel{})
	s := NewSession()

	for _, stage := range []Stage{StageGoals, StageSkills, StageJobs, StageSkills} {
		ctrl.SelectStage(s, stage)
		assert.Equal(t, stage, s.Stage())
	}
}

func TestDefaultQuery_Priority(t *testing.T) {
	ctrl := newTestController(&scriptedModel{})
	s := NewSession()

	assert.Empty(t, ctrl.DefaultQuery(s))

	s.SetSuggestedTitles([]string{"Dispatcher", "Team Lead"})
	assert.Equal(t, "Dispatcher", ctrl.DefaultQuery(s))

	s.SetSelectedJobTitle("Home Health Aide")
	assert.Equal(t, "Home Health Aide", ctrl.DefaultQuery(s))
}

func TestSearchJobs_FallbackShowsSampleNote(t *testing.T) {
	ctrl := newTestController(&scriptedModel{})
	s := NewSession()

	out := ctrl.SearchJobs(context.Background(), s, "hvac", "PA", 5, false)
	assert.True(t, strings.HasPrefix(out, SampleDataNote))
	assert.Contains(t, out, "HVAC Technician Apprentice")
	assert.Contains(t, out, "Remote: Yes")
}

func TestSearchJobs_LiveEmptyResultShowsNoJobsMessage(t *testing.T) {
	jobs := newTestJobClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":[]}`))
	})
	ctrl := NewController(&scriptedModel{}, jobs, &TitleGenerator{Strategy: LookupStrategy{}}, nil, 0.7, 1000)
	s := NewSession()

	out := ctrl.SearchJobs(context.Background(), s, "unicorn wrangler", "PA", 5, false)
	assert.Contains(t, out, "No jobs found")
	assert.NotContains(t, out, SampleDataNote)
}

func TestSaveJobByIndex(t *testing.T) {
	ctrl := newTestController(&scriptedModel{})
	s := NewSession()

	// Nothing searched yet: inline validation, no mutation.
	msg := ctrl.SaveJobByIndex(context.Background(), s, 1)
	assert.Contains(t, msg, "no listing number 1")
	assert.Empty(t, s.SavedJobs())

	ctrl.SearchJobs(context.Background(), s, "hvac", "PA", 5, false)

	msg = ctrl.SaveJobByIndex(context.Background(), s, 1)
	assert.Contains(t, msg, "Saved")
	assert.Len(t, s.SavedJobs(), 1)

	// Saving the same listing again does not grow the list.
	msg = ctrl.SaveJobByIndex(context.Background(), s, 1)
	assert.Contains(t, msg, "already saved")
	assert.Len(t, s.SavedJobs(), 1)

	msg = ctrl.SaveJobByIndex(context.Background(), s, 99)
	assert.Contains(t, msg, "no listing number 99")
	assert.Len(t, s.SavedJobs(), 1)
}

func TestSaveGoal_UsesJobContextAndValidates(t *testing.T) {
	ctrl := newTestController(&scriptedModel{})
	s := NewSession()

	msg := ctrl.SaveGoal(s, "   ")
	assert.Contains(t, msg, "needs some text")
	assert.Equal(t, 0, s.Goals.Len())
	assert.Contains(t, ctrl.RenderGoals(s), "No goals saved yet")

	s.SetSelectedJobTitle("Dispatcher")
	msg = ctrl.SaveGoal(s, "Get a forklift certification")
	assert.Contains(t, msg, "Goal #0 saved")

	goals := s.Goals.List()
	require.Len(t, goals, 1)
	assert.Equal(t, "Dispatcher", goals[0].JobTitle)
}

func TestToggleGoal_InvalidIDIsInlineMessage(t *testing.T) {
	ctrl := newTestController(&scriptedModel{})
	s := NewSession()
	ctrl.SaveGoal(s, "a goal")

	msg := ctrl.ToggleGoal(s, 42)
	assert.Contains(t, msg, "No goal with id 42")

	goals := s.Goals.List()
	require.Len(t, goals, 1)
	assert.False(t, goals[0].Completed)
}

func TestExecuteCommand_NonCommandPassesThrough(t *testing.T) {
	ctrl := newTestController(&scriptedModel{})
	s := NewSession()
	_, handled := ctrl.ExecuteCommand(context.Background(), s, "tell me about welding jobs")
	assert.False(t, handled)
}

func TestExecuteCommand_Flow(t *testing.T) {
	ctrl := newTestController(&scriptedModel{})
	s := NewSession()
	ctx := context.Background()

	out, handled := ctrl.ExecuteCommand(ctx, s, "/select communication, technical, caregiving, extra")
	require.True(t, handled)
	assert.Contains(t, out, "communication, technical, caregiving")
	assert.NotContains(t, out, "extra")
	assert.Equal(t, StageJobs, s.Stage())

	out, _ = ctrl.ExecuteCommand(ctx, s, "/pick 1")
	assert.Contains(t, out, "Targeting")
	assert.Equal(t, s.SuggestedTitles()[0], s.SelectedJobTitle())

	out, _ = ctrl.ExecuteCommand(ctx, s, "/search hvac in Harrisburg, PA")
	assert.Contains(t, out, "job opportunities")

	out, _ = ctrl.ExecuteCommand(ctx, s, "/save 2")
	assert.Contains(t, out, "Saved")

	out, _ = ctrl.ExecuteCommand(ctx, s, "/goal apply to the saved job")
	assert.Contains(t, out, "Goal #0 saved")

	out, _ = ctrl.ExecuteCommand(ctx, s, "/toggle 0")
	assert.Contains(t, out, "completed")

	out, _ = ctrl.ExecuteCommand(ctx, s, "/toggle abc")
	assert.Contains(t, out, "by its id")

	out, _ = ctrl.ExecuteCommand(ctx, s, "/stage bogus")
	assert.Contains(t, out, "Unknown stage")

	out, _ = ctrl.ExecuteCommand(ctx, s, "/bogus")
	assert.Contains(t, out, "Unknown command")
}

func TestSplitQueryLocation(t *testing.T) {
	cases := []struct {
		in, query, location string
	}{
		{"hvac in Harrisburg, PA", "hvac", "Harrisburg, PA"},
		{"working in retail in Allentown", "working in retail", "Allentown"},
		{"customer service", "customer service", ""},
	}
	for _, tc := range cases {
		q, l := splitQueryLocation(tc.in)
		assert.Equal(t, tc.query, q)
		assert.Equal(t, tc.location, l)
	}
}
