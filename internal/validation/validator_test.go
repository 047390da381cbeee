package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/obi-coffee/tast-server/internal/errors"
)

type testItemInput struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Stage   string `json:"stage" validate:"stage"`
	Channel string `json:"primary_channel" validate:"channel"`
	Theme   string `json:"type" validate:"content_type"`
	Format  string `json:"format" validate:"format"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	err := v.Validate(testItemInput{
		Title:   "Roastery Tour Reel",
		Stage:   "Ready",
		Channel: "Instagram",
		Theme:   "The Build",
		Format:  "Story",
		Date:    "2026-03-10",
	})
	assert.NoError(t, err)
}

func TestValidate_MissingTitle(t *testing.T) {
	v := New()

	err := v.Validate(testItemInput{Stage: "Idea"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	// Details keyed by the JSON tag name, not the Go field name
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "title")
}

func TestValidate_UnknownStage(t *testing.T) {
	v := New()

	err := v.Validate(testItemInput{Title: "Post", Stage: "Shipped"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "must be a pipeline stage", details["stage"])
}

func TestValidate_EmptyEnumsPass(t *testing.T) {
	v := New()

	// Optional enum fields accept empty values
	err := v.Validate(testItemInput{Title: "Post"})
	assert.NoError(t, err)
}

func TestValidate_UnknownChannel(t *testing.T) {
	v := New()

	err := v.Validate(testItemInput{Title: "Post", Channel: "Myspace"})
	require.Error(t, err)
}

func TestValidate_BadDate(t *testing.T) {
	v := New()

	err := v.Validate(testItemInput{Title: "Post", Date: "10/03/2026"})
	require.Error(t, err)
}
