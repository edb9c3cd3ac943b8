package app

import (
	"fmt"
	"strings"
)

const basePrompt = `You are Career Compass, an AI career advisor designed to help users discover career paths, develop skills, and find job opportunities. Be supportive, encouraging, and practical. Focus on breaking down complex career goals into achievable steps. Always consider the user might have limited education or face barriers to employment. Be concise but warm in your responses.`

const skillsPromptTemplate = `In this stage, help the user identify their existing skills, including soft skills and informal experience. Ask about their work history, education, hobbies, and life experiences. Translate their experiences into recognized transferable skills employers value. Be sure to recognize skills from caregiving, informal work, and self-taught abilities.

Once you have a clear picture, list their top skills in exactly this format, with the markers on their own lines:

%s
1. <skill name>: <one-line description>
2. <skill name>: <one-line description>
%s

Do not use the markers for anything else.`

const jobsPromptTemplate = `In this stage, help the user identify suitable job opportunities based on their skills and goals. Consider their constraints (location, schedule, education level). Discuss job titles they might not have considered but match their abilities. Explain why specific jobs might be a good match. Provide practical advice on job applications and interviews for these roles.`

const goalsPromptTemplate = `In this stage, help the user set SMART career goals (Specific, Measurable, Achievable, Relevant, Time-bound). Focus on building their confidence and self-efficacy. Break larger goals into small, achievable steps. Provide encouragement and address potential obstacles. Emphasize progress over perfection and help them visualize success.`

// BuildSystemPrompt assembles the stage instructions from the live session
// state, so anything changed in an earlier stage shows up in the next turn
// of a later one.
func BuildSystemPrompt(stage Stage, s *Session) string {
	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\n")

	switch stage {
	case StageSkills:
		fmt.Fprintf(&b, skillsPromptTemplate, skillsStartMarker, skillsEndMarker)
	case StageJobs:
		b.WriteString(jobsPromptTemplate)
		if selected := s.SelectedSkills(); len(selected) > 0 {
			fmt.Fprintf(&b, "\n\nThe user's selected focus skills: %s.", strings.Join(selected, ", "))
		}
		if title := s.SelectedJobTitle(); title != "" {
			fmt.Fprintf(&b, "\nThe user is currently most interested in: %s.", title)
		}
		if titles := s.SuggestedTitles(); len(titles) > 0 {
			fmt.Fprintf(&b, "\nSuggested job titles so far: %s.", strings.Join(titles, ", "))
		}
	case StageGoals:
		b.WriteString(goalsPromptTemplate)
		if jobContext, ok := resolveJobContext(s); ok {
			fmt.Fprintf(&b, "\n\nThe user's job context: %s. Anchor goals to it where that helps.", jobContext)
		}
		if rows := s.Goals.Rows(); len(rows) > 0 {
			b.WriteString("\nGoals already saved:")
			for _, r := range rows {
				fmt.Fprintf(&b, "\n- [%s] %s (%s)", r.Status, r.Text, r.JobTitle)
			}
		}
	}
	return b.String()
}

// resolveJobContext picks the job role references for goal setting by
// priority: saved jobs, then the explicitly selected title, then the first
// three suggestions. The second return is false when no source had
// anything.
func resolveJobContext(s *Session) (string, bool) {
	if saved := s.SavedJobs(); len(saved) > 0 {
		titles := make([]string, len(saved))
		for i, j := range saved {
			titles[i] = j.Title
		}
		return strings.Join(titles, ", "), true
	}
	if title := s.SelectedJobTitle(); title != "" {
		return title, true
	}
	if titles := s.SuggestedTitles(); len(titles) > 0 {
		if len(titles) > 3 {
			titles = titles[:3]
		}
		return strings.Join(titles, ", "), true
	}
	return "", false
}

var welcomeMessages = map[Stage]string{
	StageSkills: `👋 Welcome to Skill Discovery! I'll help you identify your skills and strengths.

Let's start by exploring your experiences. Tell me about:
- Work you've done (paid or unpaid)
- Projects you've completed
- Problems you've solved
- Responsibilities you've handled
- Skills you've taught yourself

Don't worry if they seem informal - many skills are valuable!`,

	StageJobs: `👋 Welcome to Job Search! I'll help you find opportunities that match your skills.

You can:
1. Search for jobs with /search <query> [in <location>]
2. Save a listing with /save <number>
3. Ask me questions about specific careers

What type of work are you interested in exploring?`,
}

// GoalStageIntro composes the goal-setting welcome around whatever job
// context exists right now.
func GoalStageIntro(s *Session) string {
	if jobContext, ok := resolveJobContext(s); ok {
		return fmt.Sprintf(`🎯 Welcome to Goal Setting! Let's build a plan around %s.

Save a goal with /goal <text>, and mark progress with /toggle <id>. What's one step you could take this week?`, jobContext)
	}
	return `🎯 Welcome to Goal Setting! I'll help you create achievable career goals and build confidence.

Let's start by exploring:
- What kind of work interests you?
- What's important to you in a job? (Schedule, pay, location, etc.)
- What small step could you take this week toward your career?`
}

// WelcomeMessage returns the greeting shown when a stage's conversation is
// still empty.
func WelcomeMessage(stage Stage, s *Session) string {
	if stage == StageGoals {
		return GoalStageIntro(s)
	}
	return welcomeMessages[stage]
}
