package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
)

// DefaultTitleCount is how many suggested titles a generation run yields
// unless the caller asks otherwise.
const DefaultTitleCount = 10

// skillCategory pairs a category name with the job titles it maps to.
// Categories are scanned in order so matching is deterministic.
type skillCategory struct {
	name   string
	titles []string
}

var skillCategories = []skillCategory{
	{"communication", []string{
		"Customer Service Representative",
		"Call Center Agent",
		"Sales Associate",
		"Receptionist",
		"Community Outreach Coordinator",
	}},
	{"technical", []string{
		"IT Support Specialist",
		"Maintenance Technician",
		"HVAC Technician Apprentice",
		"Electronics Repair Technician",
		"Field Service Technician",
	}},
	{"caregiving", []string{
		"Home Health Aide",
		"Caregiver",
		"Childcare Provider",
		"Patient Care Technician",
	}},
	{"organization", []string{
		"Administrative Assistant",
		"Office Coordinator",
		"Scheduling Coordinator",
		"Inventory Clerk",
		"Data Entry Specialist",
	}},
	{"problem-solving", []string{
		"Quality Control Inspector",
		"Dispatcher",
		"Logistics Coordinator",
		"Operations Assistant",
	}},
	{"leadership", []string{
		"Shift Supervisor",
		"Team Lead",
		"Crew Leader",
		"Assistant Manager",
	}},
	{"creativity", []string{
		"Social Media Coordinator",
		"Content Writer",
		"Graphic Design Assistant",
	}},
	{"physical", []string{
		"Warehouse Associate",
		"Delivery Driver",
		"Landscaping Technician",
		"Construction Laborer",
	}},
}

// defaultTitles pads an under-full suggestion list and serves as the
// whole-cloth fallback when a strategy fails outright.
var defaultTitles = []string{
	"Customer Service Representative",
	"Administrative Assistant",
	"Warehouse Associate",
	"Retail Sales Associate",
	"Delivery Driver",
	"Office Assistant",
	"Maintenance Worker",
	"Food Service Worker",
	"Security Officer",
	"Production Worker",
}

// TitleStrategy produces raw candidate titles for a set of selected skills.
// Strategies may return fewer or more than the requested count; the
// generator normalizes the result.
type TitleStrategy interface {
	Suggest(ctx context.Context, skills []string, count int) ([]string, error)
}

// TitleGenerator wraps a strategy with the padding/sampling contract: the
// output has exactly count entries (while defaults last), no duplicates,
// and never an error.
type TitleGenerator struct {
	Strategy TitleStrategy
	Rand     *rand.Rand // nil means the global source
}

func (g *TitleGenerator) Generate(ctx context.Context, skills []string, count int) []string {
	if count <= 0 {
		count = DefaultTitleCount
	}
	raw, err := g.Strategy.Suggest(ctx, skills, count)
	if err != nil || len(raw) == 0 {
		raw = nil
	}

	titles := dedupeTitles(raw)
	titles = padWithDefaults(titles, count)
	if len(titles) > count {
		titles = g.sampleDown(titles, count)
	}
	return titles
}

func dedupeTitles(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func padWithDefaults(titles []string, count int) []string {
	if len(titles) >= count {
		return titles
	}
	seen := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		seen[strings.ToLower(t)] = struct{}{}
	}
	for _, d := range defaultTitles {
		if len(titles) >= count {
			break
		}
		if _, ok := seen[strings.ToLower(d)]; ok {
			continue
		}
		seen[strings.ToLower(d)] = struct{}{}
		titles = append(titles, d)
	}
	return titles
}

// sampleDown picks count titles uniformly at random without replacement.
func (g *TitleGenerator) sampleDown(titles []string, count int) []string {
	shuffled := make([]string, len(titles))
	copy(shuffled, titles)
	shuffle := rand.Shuffle
	if g.Rand != nil {
		shuffle = g.Rand.Shuffle
	}
	shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}

// LookupStrategy matches selected skills against the fixed category table.
// A skill matches a category when its lower-cased text contains the
// category name or any hyphen-split token of it; the first matching
// category wins for that skill.
type LookupStrategy struct{}

func (LookupStrategy) Suggest(_ context.Context, skills []string, _ int) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, skill := range skills {
		lower := strings.ToLower(strings.TrimSpace(skill))
		if lower == "" {
			continue
		}
		for _, cat := range skillCategories {
			if !categoryMatches(lower, cat.name) {
				continue
			}
			for _, t := range cat.titles {
				key := strings.ToLower(t)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, t)
			}
			break
		}
	}
	return out, nil
}

func categoryMatches(skill, category string) bool {
	if strings.Contains(skill, category) {
		return true
	}
	for _, token := range strings.Split(category, "-") {
		if token != "" && strings.Contains(skill, token) {
			return true
		}
	}
	return false
}

// ModelStrategy asks the language model for titles, one per line, and
// parses the reply defensively.
type ModelStrategy struct {
	Client      ModelClient
	Temperature float64
	MaxTokens   int
}

func (m ModelStrategy) Suggest(ctx context.Context, skills []string, count int) ([]string, error) {
	prompt := fmt.Sprintf(
		"Suggest %d realistic job titles for someone whose strongest skills are: %s. "+
			"These should be accessible roles, including entry-level options. "+
			"Return exactly one job title per line with no numbering, bullets, or explanatory text.",
		count, strings.Join(skills, ", "))

	maxTokens := m.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 300
	}
	reply, err := m.Client.Complete(ctx, "", []ChatMessage{{Role: RoleUser, Content: prompt}}, m.Temperature, maxTokens)
	if err != nil {
		return nil, err
	}

	var titles []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(enumPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}
		titles = append(titles, line)
	}
	return titles, nil
}
