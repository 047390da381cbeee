package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeChannels_LegacyFlatList(t *testing.T) {
	ch := NormalizeChannels([]string{"Email", "TikTok"})

	assert.Equal(t, "Email", ch.Primary)
	assert.Equal(t, []string{"TikTok"}, ch.Secondary)
}

func TestNormalizeChannels_SingleElement(t *testing.T) {
	ch := NormalizeChannels([]string{"Instagram"})

	assert.Equal(t, "Instagram", ch.Primary)
	assert.Empty(t, ch.Secondary)
}

func TestNormalizeChannels_Empty(t *testing.T) {
	ch := NormalizeChannels(nil)

	assert.Equal(t, "", ch.Primary)
	assert.Empty(t, ch.Secondary)
}

func TestChannels_Flatten_RoundTripsLegacyList(t *testing.T) {
	flat := []string{"Email", "TikTok", "Website"}

	assert.Equal(t, flat, NormalizeChannels(flat).Flatten())
}

func TestChannels_Flatten_NoPrimary(t *testing.T) {
	ch := Channels{Secondary: []string{"Email", "Website"}}

	assert.Equal(t, []string{"Email", "Website"}, ch.Flatten())
}

func TestChannels_Flatten_PrimaryOnly(t *testing.T) {
	ch := Channels{Primary: "Instagram"}

	assert.Equal(t, []string{"Instagram"}, ch.Flatten())
}

func TestChannels_Contains(t *testing.T) {
	ch := Channels{Primary: "Instagram", Secondary: []string{"Email"}}

	assert.True(t, ch.Contains("Instagram"))
	assert.True(t, ch.Contains("Email"))
	assert.False(t, ch.Contains("TikTok"))
}

func TestContentItem_IsPublished(t *testing.T) {
	item := &ContentItem{Stage: StagePublished}
	assert.True(t, item.IsPublished())

	item.Stage = StageReady
	assert.False(t, item.IsPublished())
}

func TestContentItem_InFlight(t *testing.T) {
	for _, stage := range []string{StageInCampaign, StageInProduction, StageReady} {
		item := &ContentItem{Stage: stage}
		assert.True(t, item.InFlight(), "stage %s should be in flight", stage)
	}

	assert.False(t, (&ContentItem{Stage: StageIdea}).InFlight())
	assert.False(t, (&ContentItem{Stage: StagePublished}).InFlight())
}

func TestContentItem_StageIndex(t *testing.T) {
	assert.Equal(t, 0, (&ContentItem{Stage: StageIdea}).StageIndex())
	assert.Equal(t, 4, (&ContentItem{Stage: StagePublished}).StageIndex())
	assert.Equal(t, -1, (&ContentItem{Stage: "Unknown"}).StageIndex())
}

func TestValidStage(t *testing.T) {
	assert.True(t, ValidStage("In Production"))
	assert.False(t, ValidStage("Archived"))
}

func TestValidChannel(t *testing.T) {
	assert.True(t, ValidChannel("LinkedIn"))
	assert.False(t, ValidChannel("Threads"))
}

func TestValidType(t *testing.T) {
	assert.True(t, ValidType("Roaster Love"))
	assert.False(t, ValidType("Misc"))
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat("Carousel"))
	assert.False(t, ValidFormat("Reel"))
}
