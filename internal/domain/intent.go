package domain

// Intent buckets classify each content theme by strategic purpose. The
// planning target splits output 70% culture, 20% brand, 10% conversion.
const (
	IntentCulture    = "culture"
	IntentBrand      = "brand"
	IntentConversion = "conversion"
)

// IntentBuckets lists the buckets in target order.
var IntentBuckets = []string{IntentCulture, IntentBrand, IntentConversion}

// IntentTargets maps each bucket to its target share of total output, in percent.
var IntentTargets = map[string]int{
	IntentCulture:    70,
	IntentBrand:      20,
	IntentConversion: 10,
}

// intentByType maps each content theme to its bucket.
var intentByType = map[string]string{
	"The Build":     IntentBrand,
	"The Problem":   IntentCulture,
	"Roaster Love":  IntentCulture,
	"Coffee Life":   IntentCulture,
	"Taste Story":   IntentCulture,
	"Waitlist":      IntentConversion,
	"Trade Show":    IntentBrand,
	"Beta Launch":   IntentConversion,
	"Community":     IntentCulture,
	"Launch":        IntentConversion,
	"Vol. 3 Tease":  IntentBrand,
	"Vol. 3 Reveal": IntentBrand,
	"Vol. 3 Drop":   IntentConversion,
}

// IntentForType returns the intent bucket for a content theme, or "" when the
// theme is unknown.
func IntentForType(contentType string) string {
	return intentByType[contentType]
}
