package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkills_WellFormedBlock(t *testing.T) {
	reply := "Great conversation! Here's what I see:\n\n" +
		skillsStartMarker + "\n" +
		"1. Communication: you explain ideas clearly\n" +
		"2. Problem-solving: you fix things on your own\n" +
		"3. Organization: you juggle schedules well\n" +
		skillsEndMarker + "\n\n" +
		"Pick the ones that feel most like you."

	result := ExtractSkills(reply)
	require.True(t, result.Found)
	require.Len(t, result.Skills, 3)
	assert.Equal(t, "Communication", result.Skills[0].Name)
	assert.Equal(t, "Problem-solving", result.Skills[1].Name)
	assert.Equal(t, "Organization", result.Skills[2].Name)

	assert.NotContains(t, result.Display, skillsStartMarker)
	assert.NotContains(t, result.Display, "Problem-solving: you fix")
	assert.Contains(t, result.Display, "Great conversation!")
	assert.Contains(t, result.Display, "Pick the ones")
}

func TestExtractSkills_SkillCountMatchesSeparatorLines(t *testing.T) {
	block := "1. Cooking: meal prep\nno separator here\n2. Budgeting: household money\n\n3. Driving: delivery routes\n"
	reply := skillsStartMarker + "\n" + block + skillsEndMarker

	result := ExtractSkills(reply)
	require.True(t, result.Found)

	wantCount := 0
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) != "" && strings.Contains(line, ":") {
			wantCount++
		}
	}
	assert.Len(t, result.Skills, wantCount)
}

func TestExtractSkills_MissingMarkers(t *testing.T) {
	for name, reply := range map[string]string{
		"no markers":    "Just a normal conversational reply.",
		"only start":    skillsStartMarker + "\n1. Cooking: food",
		"only end":      "1. Cooking: food\n" + skillsEndMarker,
		"end before":    skillsEndMarker + " text " + skillsStartMarker,
	} {
		t.Run(name, func(t *testing.T) {
			result := ExtractSkills(reply)
			assert.False(t, result.Found)
			assert.Empty(t, result.Skills)
			assert.Equal(t, reply, result.Display)
		})
	}
}

func TestExtractSkills_GarbledBlockIsSoftSuccess(t *testing.T) {
	reply := skillsStartMarker + "\nnothing useful here\nno separators at all\n" + skillsEndMarker
	result := ExtractSkills(reply)
	assert.True(t, result.Found)
	assert.Empty(t, result.Skills)
}

func TestExtractSkills_EnumerationVariants(t *testing.T) {
	reply := skillsStartMarker + "\n" +
		"1. Teamwork: works well with others\n" +
		"2) Patience: stays calm\n" +
		"- Listening: hears people out\n" +
		"* Empathy: reads the room\n" +
		skillsEndMarker

	result := ExtractSkills(reply)
	require.True(t, result.Found)
	names := make([]string, len(result.Skills))
	for i, s := range result.Skills {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Teamwork", "Patience", "Listening", "Empathy"}, names)
}

func TestExtractSkills_BlockOnlyReplyYieldsEmptyDisplay(t *testing.T) {
	reply := skillsStartMarker + "\n1. Cooking: food\n" + skillsEndMarker
	result := ExtractSkills(reply)
	require.True(t, result.Found)
	assert.Empty(t, result.Display)
}
