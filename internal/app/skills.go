package app

import (
	"regexp"
	"strings"
)

// Markers the skill-discovery system prompt instructs the model to wrap its
// structured skill list in. Replies without both markers are ordinary
// conversation.
const (
	skillsStartMarker = "===SKILLS==="
	skillsEndMarker   = "===END SKILLS==="
)

// ExtractResult is the typed outcome of scanning a model reply for a skill
// block. Found reports whether both markers were present; Skills may still
// be empty when the block was garbled (soft success, never an error).
type ExtractResult struct {
	Skills  []Skill
	Found   bool
	Display string
}

// Matches a leading enumeration or bullet prefix: "1.", "2)", "-", "*", "•".
var enumPrefix = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s*`)

// ExtractSkills parses the marker-delimited skill block out of a model
// reply. Each non-empty line of the block shaped like
// "<index>. <name>: <description>" contributes one skill; lines without a
// separator are dropped silently. Display is the reply with the block
// removed.
func ExtractSkills(reply string) ExtractResult {
	start := strings.Index(reply, skillsStartMarker)
	end := strings.Index(reply, skillsEndMarker)
	if start < 0 || end < 0 || end < start {
		return ExtractResult{Display: reply}
	}

	block := reply[start+len(skillsStartMarker) : end]
	var skills []Skill
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sep := strings.Index(line, ":")
		if sep < 0 {
			continue
		}
		name := strings.TrimSpace(enumPrefix.ReplaceAllString(strings.TrimSpace(line[:sep]), ""))
		if name == "" {
			continue
		}
		skills = append(skills, Skill{Name: name})
	}

	display := strings.TrimSpace(reply[:start] + reply[end+len(skillsEndMarker):])
	return ExtractResult{Skills: skills, Found: true, Display: display}
}

// skillAckMessage stands in for the display text when the entire reply was
// the marker block.
const skillAckMessage = "I've added the skills we identified to your profile. Select up to three to focus on, then head to Job Search."
