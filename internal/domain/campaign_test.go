package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCampaign_LinkedItems(t *testing.T) {
	camp := &Campaign{ID: "camp-1", Name: "Vol. 3 Drop"}
	items := []ContentItem{
		{ID: "item-1", CampaignID: "camp-1"},
		{ID: "item-2", CampaignID: "camp-2"},
		{ID: "item-3", CampaignID: "camp-1"},
		{ID: "item-4"},
	}

	linked := camp.LinkedItems(items)

	assert.Len(t, linked, 2)
	assert.Equal(t, "item-1", linked[0].ID)
	assert.Equal(t, "item-3", linked[1].ID)
}

func TestCampaign_LinkedItems_NoneLinked(t *testing.T) {
	camp := &Campaign{ID: "camp-9"}
	items := []ContentItem{{ID: "item-1", CampaignID: "camp-1"}}

	assert.Empty(t, camp.LinkedItems(items))
}

func TestIntentForType(t *testing.T) {
	assert.Equal(t, IntentCulture, IntentForType("Roaster Love"))
	assert.Equal(t, IntentBrand, IntentForType("The Build"))
	assert.Equal(t, IntentConversion, IntentForType("Launch"))
	assert.Equal(t, "", IntentForType("Unknown"))
}

func TestPhaseForDate(t *testing.T) {
	phase := PhaseForDate("2026-03-01")
	if assert.NotNil(t, phase) {
		assert.Equal(t, "p1", phase.ID)
	}

	phase = PhaseForDate("2026-10-26")
	if assert.NotNil(t, phase) {
		assert.Equal(t, "p4", phase.ID)
	}

	assert.Nil(t, PhaseForDate(""))
	assert.Nil(t, PhaseForDate("2026-04-15")) // Between phases.
	assert.Nil(t, PhaseForDate("2027-01-01"))
}
