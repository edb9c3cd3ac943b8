package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ApologyMessage is the fixed reply shown when the model call fails. The
// user's message stays in history so resubmitting picks up where they left
// off.
const ApologyMessage = "Sorry, I'm having trouble connecting right now. Please try again in a moment."

// SampleDataNote prefixes search output built from the fallback list.
const SampleDataNote = "(Live listings are unavailable right now, so I'm showing sample openings.)"

// Trigger names an event that can move the workflow between stages.
type Trigger int

const (
	// TriggerSkillsExtracted fires when a model reply carried a skill block.
	TriggerSkillsExtracted Trigger = iota
	// TriggerSkillsSelected fires when the user locks in focus skills.
	TriggerSkillsSelected
	// TriggerTitleSelected fires when the user picks a suggested title.
	TriggerTitleSelected
	// TriggerJobSaved fires when a listing is saved.
	TriggerJobSaved
)

type transitionKey struct {
	from Stage
	trig Trigger
}

type transition struct {
	next  Stage
	apply func(c *Controller, ctx context.Context, s *Session)
}

// transitions enumerates every trigger-driven stage move, so controller
// behavior is inspectable without a UI harness. Free navigation via
// SelectStage is allowed on top of this at any time.
var transitions = map[transitionKey]transition{
	{StageSkills, TriggerSkillsExtracted}: {
		next: StageSkills, // stay; the selection step happens here
	},
	{StageSkills, TriggerSkillsSelected}: {
		next: StageJobs,
		apply: func(c *Controller, ctx context.Context, s *Session) {
			s.SetSuggestedTitles(c.Titles.Generate(ctx, s.SelectedSkills(), DefaultTitleCount))
		},
	},
	{StageJobs, TriggerTitleSelected}: {
		next: StageJobs,
	},
	{StageJobs, TriggerJobSaved}: {
		next: StageJobs,
	},
}

// Controller sequences the three stages for a session. It holds no session
// state of its own; every method takes the session it operates on.
type Controller struct {
	Model       ModelClient
	Jobs        *JobClient
	Titles      *TitleGenerator
	Logger      *zap.Logger
	Temperature float64
	MaxTokens   int
}

func NewController(model ModelClient, jobs *JobClient, titles *TitleGenerator, logger *zap.Logger, temperature float64, maxTokens int) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if temperature <= 0 {
		temperature = 0.7
	}
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	return &Controller{
		Model:       model,
		Jobs:        jobs,
		Titles:      titles,
		Logger:      logger,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}

// fire looks up and applies a trigger-driven transition. Unknown pairs are
// ignored; the table is the whole contract.
func (c *Controller) fire(ctx context.Context, s *Session, trig Trigger) Stage {
	key := transitionKey{s.Stage(), trig}
	t, ok := transitions[key]
	if !ok {
		return s.Stage()
	}
	if t.apply != nil {
		t.apply(c, ctx, s)
	}
	s.setStage(t.next)
	return t.next
}

// SelectStage is the persistent tab selector: every stage is reachable at
// any time. Entering a stage with an empty conversation seeds it with the
// welcome message.
func (c *Controller) SelectStage(s *Session, stage Stage) string {
	s.setStage(stage)
	if len(s.History(stage)) == 0 {
		welcome := WelcomeMessage(stage, s)
		s.appendHistory(stage, ChatMessage{Role: RoleAssistant, Content: welcome})
		return welcome
	}
	return ""
}

// DefaultQuery is what the job-search input is pre-filled with when the
// user arrives from skill discovery: the first selected suggested title.
func (c *Controller) DefaultQuery(s *Session) string {
	if title := s.SelectedJobTitle(); title != "" {
		return title
	}
	if titles := s.SuggestedTitles(); len(titles) > 0 {
		return titles[0]
	}
	return ""
}

// TurnResult is what one conversational turn produced.
type TurnResult struct {
	Display     string
	SkillsFound bool
	Skills      []Skill
}

// HandleTurn runs one synchronous user turn on the given stage: build
// instructions from live state, call the model, interpret the reply, mutate
// the session. Model failure yields the apology and keeps the user message
// in history.
func (c *Controller) HandleTurn(ctx context.Context, s *Session, stage Stage, userText string) TurnResult {
	s.setStage(stage)
	s.appendHistory(stage, ChatMessage{Role: RoleUser, Content: userText})

	system := BuildSystemPrompt(stage, s)
	reply, err := c.Model.Complete(ctx, system, s.History(stage), c.Temperature, c.MaxTokens)
	if err != nil {
		c.Logger.Warn("model call failed", zap.String("stage", stage.String()), zap.Error(err))
		s.appendHistory(stage, ChatMessage{Role: RoleAssistant, Content: ApologyMessage})
		return TurnResult{Display: ApologyMessage}
	}

	result := TurnResult{Display: reply}
	if stage == StageSkills {
		extracted := ExtractSkills(reply)
		if extracted.Found {
			s.ReplaceSkills(extracted.Skills)
			result.SkillsFound = true
			result.Skills = extracted.Skills
			result.Display = extracted.Display
			if result.Display == "" {
				result.Display = skillAckMessage
			}
			c.fire(ctx, s, TriggerSkillsExtracted)
			c.Logger.Info("skills extracted", zap.Int("count", len(extracted.Skills)))
		}
	}

	s.appendHistory(stage, ChatMessage{Role: RoleAssistant, Content: result.Display})
	return result
}

// SelectSkills records the user's focus skills (capped at three) and moves
// the workflow into job search with fresh title suggestions.
func (c *Controller) SelectSkills(ctx context.Context, s *Session, names []string) []string {
	selected := s.SelectSkills(names)
	c.fire(ctx, s, TriggerSkillsSelected)
	return selected
}

// SelectTitle records the title the user wants to pursue.
func (c *Controller) SelectTitle(ctx context.Context, s *Session, title string) {
	s.SetSelectedJobTitle(title)
	c.fire(ctx, s, TriggerTitleSelected)
}

// SearchJobs runs a provider search, remembers the results for save-by-
// index, and returns the rendered listing text.
func (c *Controller) SearchJobs(ctx context.Context, s *Session, query, location string, limit int, includeDescription bool) string {
	jobs, live := c.Jobs.Search(ctx, query, location, limit, includeDescription)
	s.SetLastResults(jobs)

	var b strings.Builder
	if !live {
		b.WriteString(SampleDataNote)
		b.WriteString("\n\n")
	}
	if len(jobs) == 0 {
		b.WriteString("No jobs found matching your criteria. Try broadening your search terms.")
		return b.String()
	}
	b.WriteString("Here are some job opportunities based on your search:\n")
	for i, job := range jobs {
		remote := "No"
		if job.Remote {
			remote = "Yes"
		}
		fmt.Fprintf(&b, "\n%d. %s - %s\n   Location: %s   Remote: %s\n", i+1, job.Title, job.Company, job.Location, remote)
		if job.URL != "" {
			fmt.Fprintf(&b, "   %s\n", job.URL)
		}
		if job.Description != "" {
			fmt.Fprintf(&b, "   %s\n", job.Description)
		}
		if job.Requirements != "" {
			fmt.Fprintf(&b, "   Requirements: %s\n", job.Requirements)
		}
	}
	b.WriteString("\nSave one with /save <number>, or ask me about any of these roles.")
	return b.String()
}

// SaveJobByIndex saves the nth listing of the latest search. Bad indexes
// come back as an inline validation message, never an error.
func (c *Controller) SaveJobByIndex(ctx context.Context, s *Session, n int) string {
	job, ok := s.LastResult(n)
	if !ok {
		return fmt.Sprintf("There's no listing number %d in the last search results.", n)
	}
	if !s.SaveJob(job) {
		return fmt.Sprintf("%q at %s is already saved.", job.Title, job.Company)
	}
	c.fire(ctx, s, TriggerJobSaved)
	return fmt.Sprintf("Saved %q at %s.", job.Title, job.Company)
}

// SaveGoal stores a goal against the current job context.
func (c *Controller) SaveGoal(s *Session, text string) string {
	jobTitle, _ := resolveJobContext(s)
	goal, err := s.Goals.Save(text, jobTitle)
	if err != nil {
		return "A goal needs some text - tell me what you'd like to work toward."
	}
	return fmt.Sprintf("Goal #%d saved: %s", goal.ID, goal.Text)
}

// ToggleGoal flips a goal's completion by its stable ID.
func (c *Controller) ToggleGoal(s *Session, id int) string {
	goal, err := s.Goals.Toggle(id)
	if err != nil {
		return fmt.Sprintf("No goal with id %d - check /goals for the list.", id)
	}
	state := "still in progress"
	if goal.Completed {
		state = "completed - nice work!"
	}
	return fmt.Sprintf("Goal #%d is now %s", goal.ID, state)
}

// RenderGoals lists the goals with their toggle glyphs, or the empty-state
// message.
func (c *Controller) RenderGoals(s *Session) string {
	rows := s.Goals.Rows()
	if len(rows) == 0 {
		return "No goals saved yet. Add one with /goal <text>."
	}
	var b strings.Builder
	b.WriteString("Your goals:\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s #%d %s (%s, added %s)\n", r.Status, r.ID, r.Text, r.JobTitle, r.Date)
	}
	return strings.TrimRight(b.String(), "\n")
}
