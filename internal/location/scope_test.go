package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope_Matches(t *testing.T) {
	blogPost := Location{
		Page:       "/blog/my-first-post",
		Route:      "/blog/{slug}",
		Components: []string{"PostBody", "CommentList"},
		Elements:   []string{"like-button"},
	}

	tests := []struct {
		name   string
		scope  *Scope
		loc    Location
		locSet bool
		want   bool
	}{
		{"nil scope matches anywhere", nil, Location{}, false, true},
		{"global matches without a location", &Scope{Global: true}, Location{}, false, true},
		{"global overrides other constraints", &Scope{Global: true, Pages: []string{"/other"}}, blogPost, true, true},
		{"unconstrained matches without a location", &Scope{}, Location{}, false, true},
		{"constrained needs a location", &Scope{Pages: []string{"/blog/my-first-post"}}, Location{}, false, false},
		{"page listed", &Scope{Pages: []string{"/blog/my-first-post"}}, blogPost, true, true},
		{"page not listed", &Scope{Pages: []string{"/dashboard"}}, blogPost, true, false},
		{"route listed", &Scope{Routes: []string{"/blog/{slug}"}}, blogPost, true, true},
		{"route not listed", &Scope{Routes: []string{"/tasks/{id}"}}, blogPost, true, false},
		{"route constraint on routeless location", &Scope{Routes: []string{"/blog/{slug}"}}, Location{Page: "/blog/my-first-post"}, true, false},
		{"all components present", &Scope{Components: []string{"PostBody", "CommentList"}}, blogPost, true, true},
		{"one component missing", &Scope{Components: []string{"PostBody", "Editor"}}, blogPost, true, false},
		{"component constraint on location without components", &Scope{Components: []string{"PostBody"}}, Location{Page: "/blog"}, true, false},
		{"element present", &Scope{Elements: []string{"like-button"}}, blogPost, true, true},
		{"element missing", &Scope{Elements: []string{"share-button"}}, blogPost, true, false},
		{"constraints are conjunctive", &Scope{Pages: []string{"/blog/my-first-post"}, Components: []string{"Editor"}}, blogPost, true, false},
		{"custom veto", &Scope{Pages: []string{"/blog/my-first-post"}, Custom: func(Location) bool { return false }}, blogPost, true, false},
		{"custom approve", &Scope{Pages: []string{"/blog/my-first-post"}, Custom: func(Location) bool { return true }}, blogPost, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scope.Matches(tt.loc, tt.locSet))
		})
	}
}

func TestScope_IsUnconstrained(t *testing.T) {
	assert.True(t, (&Scope{}).IsUnconstrained())
	assert.False(t, (&Scope{Global: true}).IsUnconstrained())
	assert.False(t, (&Scope{Pages: []string{"/a"}}).IsUnconstrained())
	assert.False(t, (&Scope{Custom: func(Location) bool { return true }}).IsUnconstrained())
}

func TestScope_MatchesCurrent(t *testing.T) {
	tracker := NewTracker()
	scope := &Scope{Pages: []string{"/settings"}}

	assert.False(t, scope.MatchesCurrent(tracker), "no location set")

	tracker.SetCurrent(Location{Page: "/settings"})
	assert.True(t, scope.MatchesCurrent(tracker))
}
