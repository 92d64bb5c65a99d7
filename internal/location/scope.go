package location

// Scope constrains where a capability is visible. A nil Scope means no
// constraint at all. All declared constraints must hold at once.
type Scope struct {
	// Global makes the capability visible everywhere, overriding the other
	// constraints.
	Global bool `json:"global,omitempty" yaml:"global,omitempty"`

	// Pages lists concrete page paths the capability is visible on.
	Pages []string `json:"pages,omitempty" yaml:"pages,omitempty"`

	// Routes lists route patterns the capability is visible on.
	Routes []string `json:"routes,omitempty" yaml:"routes,omitempty"`

	// Components lists component names that must all be mounted.
	Components []string `json:"components,omitempty" yaml:"components,omitempty"`

	// Elements lists element ids that must all be present.
	Elements []string `json:"elements,omitempty" yaml:"elements,omitempty"`

	// Custom, when set, is consulted last and can veto the match. Not
	// serializable; wire-delivered scopes leave it nil.
	Custom func(Location) bool `json:"-" yaml:"-"`
}

// IsUnconstrained reports whether the scope declares nothing at all. An
// unconstrained scope matches everywhere, like a nil one.
func (s *Scope) IsUnconstrained() bool {
	return !s.Global &&
		len(s.Pages) == 0 &&
		len(s.Routes) == 0 &&
		len(s.Components) == 0 &&
		len(s.Elements) == 0 &&
		s.Custom == nil
}

// Matches reports whether the scope admits the given location. locSet mirrors
// Tracker.Current: with no location set, only global or unconstrained scopes
// match.
func (s *Scope) Matches(loc Location, locSet bool) bool {
	if s == nil {
		return true
	}
	if s.Global {
		return true
	}
	if s.IsUnconstrained() {
		return true
	}
	if !locSet {
		return false
	}

	if len(s.Pages) > 0 && !contains(s.Pages, loc.Page) {
		return false
	}
	if len(s.Routes) > 0 {
		if loc.Route == "" || !contains(s.Routes, loc.Route) {
			return false
		}
	}
	if len(s.Components) > 0 {
		if loc.Components == nil {
			return false
		}
		for _, c := range s.Components {
			if !loc.HasComponent(c) {
				return false
			}
		}
	}
	if len(s.Elements) > 0 {
		if loc.Elements == nil {
			return false
		}
		for _, e := range s.Elements {
			if !loc.HasElement(e) {
				return false
			}
		}
	}
	if s.Custom != nil && !s.Custom(loc) {
		return false
	}
	return true
}

// MatchesCurrent reports whether the scope admits the tracker's current
// location.
func (s *Scope) MatchesCurrent(t *Tracker) bool {
	loc, ok := t.Current()
	return s.Matches(loc, ok)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
