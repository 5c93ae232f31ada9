package validation

import (
	"testing"

	"mood-journal/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Content string `json:"content" validate:"notblank,max=10"`
	Mood    string `json:"mood" validate:"required,oneof=happy sad"`
}

func TestStruct_OK(t *testing.T) {
	require.NoError(t, Struct("test", sampleRequest{Content: "hola", Mood: "happy"}))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct("test", sampleRequest{Content: "   ", Mood: "meh"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	msg := apperr.Message(err)
	assert.Contains(t, msg, "content is required")
	assert.Contains(t, msg, "mood must be one of: happy sad")
}

func TestStruct_MaxLength(t *testing.T) {
	err := Struct("test", sampleRequest{Content: "this is far too long", Mood: "sad"})
	require.Error(t, err)
	assert.Equal(t, "content must be at most 10 characters", apperr.Message(err))
}

func TestVar_Email(t *testing.T) {
	require.NoError(t, Var("test", "email", "ana@example.com", "required,email"))

	err := Var("test", "email", "not-an-email", "required,email")
	require.Error(t, err)
	assert.Equal(t, "email must be a valid email", apperr.Message(err))
}
