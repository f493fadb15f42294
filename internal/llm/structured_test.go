package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planPayload struct {
	Capacity int `json:"capacity_min"`
	Tasks    []struct {
		Title  string  `json:"title"`
		Weight float64 `json:"weight"`
	} `json:"tasks"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	got, err := ExtractJSON[planPayload](`{"capacity_min":420,"tasks":[{"title":"Report","weight":8}]}`, nil)
	require.NoError(t, err)
	assert.Equal(t, 420, got.Capacity)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "Report", got.Tasks[0].Title)
}

func TestExtractJSON_FencesAndProse(t *testing.T) {
	raw := "Here is today's plan:\n```json\n{\"capacity_min\": 300, \"tasks\": []}\n```\nGood luck!"
	got, err := ExtractJSON[planPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 300, got.Capacity)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"capacity_min": 60, "tasks": [{"title": "fix {weird} \"title\"", "weight": 1}]}`
	got, err := ExtractJSON[planPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, `fix {weird} "title"`, got.Tasks[0].Title)
}

func TestExtractJSON_RepairsCommonMistakes(t *testing.T) {
	raw := `{
		// capacity after meetings
		"capacity_min": 240, /* minutes */
		"tasks": [
			{"title": "Email // inbox zero", "weight": .5},
			{"title": "Review", "weight": -.25,},
		],
	}`
	got, err := ExtractJSON[planPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 240, got.Capacity)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "Email // inbox zero", got.Tasks[0].Title)
	assert.Equal(t, 0.5, got.Tasks[0].Weight)
	assert.Equal(t, -0.25, got.Tasks[1].Weight)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[planPayload]("I could not plan your day.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_Unbalanced(t *testing.T) {
	_, err := ExtractJSON[planPayload](`{"capacity_min": 10, "tasks": [`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[planPayload](`{"capacity_min": ten}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_Validator(t *testing.T) {
	needTasks := func(p planPayload) error {
		if len(p.Tasks) == 0 {
			return errors.New("no tasks")
		}
		return nil
	}

	_, err := ExtractJSON(`{"capacity_min": 10, "tasks": []}`, needTasks)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.ErrorContains(t, err, "validation failed: no tasks")

	got, err := ExtractJSON(`{"capacity_min": 10, "tasks": [{"title": "A", "weight": 1}]}`, needTasks)
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 1)
}
