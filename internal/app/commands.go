package app

import (
	"context"
	"strconv"
	"strings"
)

const helpText = `Commands:
  /stage skills|jobs|goals   switch stage
  /skills                    show skills found so far
  /select a, b, c            choose up to 3 focus skills
  /titles                    show suggested job titles
  /pick <n>                  pick suggested title n as your target
  /search <query> [in <loc>] search job listings
  /detail <query> [in <loc>] search with full descriptions
  /save <n>                  save listing n from the last search
  /goal <text>               save a career goal
  /toggle <id>               toggle a goal's completion
  /goals                     list goals
  /help                      this help`

// ExecuteCommand interprets a slash command from either frontend. The
// second return is false when the input isn't a command and should go to
// the model as an ordinary turn.
func (c *Controller) ExecuteCommand(ctx context.Context, s *Session, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}
	name, rest, _ := strings.Cut(input[1:], " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "help":
		return helpText, true

	case "stage":
		stage, ok := ParseStage(rest)
		if !ok {
			return "Unknown stage. Use skills, jobs, or goals.", true
		}
		if welcome := c.SelectStage(s, stage); welcome != "" {
			return welcome, true
		}
		return "Switched to " + stage.Label() + ".", true

	case "skills":
		skills := s.Skills()
		if len(skills) == 0 {
			return "No skills identified yet - tell me about your experience first.", true
		}
		names := make([]string, len(skills))
		for i, sk := range skills {
			names[i] = sk.Name
		}
		return "Skills identified: " + strings.Join(names, ", "), true

	case "select":
		if rest == "" {
			return "Name the skills to focus on, e.g. /select communication, technical", true
		}
		parts := strings.Split(rest, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		selected := c.SelectSkills(ctx, s, parts)
		return "Focusing on: " + strings.Join(selected, ", ") +
			"\n\nSuggested job titles:\n" + numberedList(s.SuggestedTitles()) +
			"\n\nPick one with /pick <n>, or /search right away.", true

	case "titles":
		titles := s.SuggestedTitles()
		if len(titles) == 0 {
			return "No suggestions yet - select your focus skills first with /select.", true
		}
		return "Suggested job titles:\n" + numberedList(titles), true

	case "pick":
		n, err := strconv.Atoi(rest)
		titles := s.SuggestedTitles()
		if err != nil || n < 1 || n > len(titles) {
			return "Pick a title by its number, e.g. /pick 2", true
		}
		c.SelectTitle(ctx, s, titles[n-1])
		return "Targeting " + titles[n-1] + ". Try /search " + titles[n-1], true

	case "search", "detail":
		query, location := splitQueryLocation(rest)
		if query == "" {
			query = c.DefaultQuery(s)
		}
		if query == "" {
			return "Tell me what to search for, e.g. /search customer service in Allentown, PA", true
		}
		return c.SearchJobs(ctx, s, query, location, defaultJobLimit, name == "detail"), true

	case "save":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return "Save a listing by its number, e.g. /save 1", true
		}
		return c.SaveJobByIndex(ctx, s, n), true

	case "goal":
		return c.SaveGoal(s, rest), true

	case "toggle":
		id, err := strconv.Atoi(rest)
		if err != nil {
			return "Toggle a goal by its id, e.g. /toggle 0", true
		}
		return c.ToggleGoal(s, id), true

	case "goals":
		return c.RenderGoals(s), true
	}
	return "Unknown command. /help lists what I understand.", true
}

// splitQueryLocation parses "query in location"; the last " in " wins so
// queries containing "in" still work.
func splitQueryLocation(s string) (string, string) {
	idx := strings.LastIndex(strings.ToLower(s), " in ")
	if idx < 0 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+4:])
}

func numberedList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strconv.Itoa(i+1) + ". " + item)
	}
	return b.String()
}
