package core

// RuleKind tags the structural shape of a rule. The kind is decided once at
// configure time; backends dispatch on it with a single switch instead of
// comparing rule ids per call.
type RuleKind int

const (
	// KindBirthSurvival marks rules driven by birth/survival count sets.
	KindBirthSurvival RuleKind = iota
	// KindSpecial marks the three-state dead/alive/dying family.
	KindSpecial
	// KindStatic marks the identity rule: output equals input.
	KindStatic
)

// String returns a short name for the rule kind.
func (k RuleKind) String() string {
	switch k {
	case KindBirthSurvival:
		return "birth/survival"
	case KindSpecial:
		return "special"
	case KindStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Rule describes one automaton rule. Birth and Survival are only meaningful
// for KindBirthSurvival and hold neighbor counts in the 3..10 range used by
// the 26-neighbor Moore neighborhood rules in the catalog.
type Rule struct {
	ID          string
	DisplayName string
	Kind        RuleKind
	Birth       []int
	Survival    []int
}

// Births reports whether a dead cell with n live neighbors becomes alive.
func (r Rule) Births(n int) bool { return containsCount(r.Birth, n) }

// Survives reports whether a live cell with n live neighbors stays alive.
func (r Rule) Survives(n int) bool { return containsCount(r.Survival, n) }

// CountMask expands a count set into a [27]bool lookup indexed by neighbor
// count.
func CountMask(counts []int) [27]bool {
	var m [27]bool
	for _, c := range counts {
		if c >= 0 && c < len(m) {
			m[c] = true
		}
	}
	return m
}

func containsCount(counts []int, n int) bool {
	for _, c := range counts {
		if c == n {
			return true
		}
	}
	return false
}

// DefaultRuleID is the rule every unknown identifier resolves to.
const DefaultRuleID = "conway3d"

var ruleCatalog = []Rule{
	{ID: "conway3d", DisplayName: "Conway 3D (5-7/4-6)", Kind: KindBirthSurvival, Birth: []int{5, 6, 7}, Survival: []int{4, 5, 6}},
	{ID: "stability", DisplayName: "Stability (4-5/3-6)", Kind: KindBirthSurvival, Birth: []int{4, 5}, Survival: []int{3, 4, 5, 6}},
	{ID: "crystal", DisplayName: "Crystal Growth (5-8/5-10)", Kind: KindBirthSurvival, Birth: []int{5, 6, 7, 8}, Survival: []int{5, 6, 7, 8, 9, 10}},
	{ID: "pulse", DisplayName: "Pulse (4/4-5)", Kind: KindBirthSurvival, Birth: []int{4}, Survival: []int{4, 5}},
	{ID: "briansbrain", DisplayName: "Brian's Brain 3D", Kind: KindSpecial},
	{ID: "checkerboard", DisplayName: "Checkerboard (static)", Kind: KindStatic},
}

// LookupRule resolves a rule identifier. Unknown identifiers silently fall
// back to the default birth/survival rule; that is the contract, not an error.
func LookupRule(id string) Rule {
	for _, r := range ruleCatalog {
		if r.ID == id {
			return r
		}
	}
	return LookupRule(DefaultRuleID)
}

// RuleInfo is the boundary-contract shape consumed by rule-selection UIs.
type RuleInfo struct {
	ID          string
	DisplayName string
	Kind        RuleKind
}

// Rules enumerates the catalog in declaration order.
func Rules() []RuleInfo {
	out := make([]RuleInfo, 0, len(ruleCatalog))
	for _, r := range ruleCatalog {
		out = append(out, RuleInfo{ID: r.ID, DisplayName: r.DisplayName, Kind: r.Kind})
	}
	return out
}
