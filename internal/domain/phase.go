package domain

// Phase is one date-ranged stretch of the rollout plan with a follower
// growth target. Dates are inclusive YYYY-MM-DD strings, which compare
// correctly as plain strings.
type Phase struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Subtitle       string `json:"subtitle"`
	Start          string `json:"start"`
	End            string `json:"end"`
	FollowerTarget int    `json:"follower_target"`
}

// Phases lists the rollout phases in chronological order.
var Phases = []Phase{
	{ID: "p1", Name: "Phase 1 — Foundation", Subtitle: "Build the Foundation + Begin the Tease", Start: "2026-02-23", End: "2026-04-13", FollowerTarget: 6500},
	{ID: "p2", Name: "Phase 2 — Drop", Subtitle: "Partner Reveals, the Drop, and App Heat", Start: "2026-04-20", End: "2026-06-29", FollowerTarget: 10000},
	{ID: "p3", Name: "Phase 3 — Beta", Subtitle: "Beta & Momentum", Start: "2026-07-06", End: "2026-09-28", FollowerTarget: 15500},
	{ID: "p4", Name: "Phase 4 — Launch", Subtitle: "Public Launch", Start: "2026-10-05", End: "2026-10-26", FollowerTarget: 24000},
}

// PhaseForDate returns the phase covering the given date, or nil when the
// date is empty or falls between phases.
func PhaseForDate(date string) *Phase {
	if date == "" {
		return nil
	}
	for i := range Phases {
		if date >= Phases[i].Start && date <= Phases[i].End {
			return &Phases[i]
		}
	}
	return nil
}
