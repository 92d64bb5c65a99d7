package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_CurrentUnsetInitially(t *testing.T) {
	tracker := NewTracker()
	_, ok := tracker.Current()
	assert.False(t, ok)
}

func TestTracker_SetCurrent(t *testing.T) {
	tracker := NewTracker()
	tracker.SetCurrent(Location{Page: "/blog", Route: "/blog"})

	loc, ok := tracker.Current()
	require.True(t, ok)
	assert.Equal(t, "/blog", loc.Page)
}

func TestTracker_ListenersNotifiedInOrder(t *testing.T) {
	tracker := NewTracker()

	var order []string
	tracker.OnChange(func(old Location, oldSet bool, new Location) {
		order = append(order, "first")
		assert.False(t, oldSet, "first change has no previous location")
		assert.Equal(t, "/a", new.Page)
	})
	tracker.OnChange(func(old Location, oldSet bool, new Location) {
		order = append(order, "second")
	})

	tracker.SetCurrent(Location{Page: "/a"})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestTracker_ListenerSeesPreviousLocation(t *testing.T) {
	tracker := NewTracker()
	tracker.SetCurrent(Location{Page: "/a"})

	var gotOld Location
	var gotOldSet bool
	tracker.OnChange(func(old Location, oldSet bool, new Location) {
		gotOld, gotOldSet = old, oldSet
	})

	tracker.SetCurrent(Location{Page: "/b"})
	require.True(t, gotOldSet)
	assert.Equal(t, "/a", gotOld.Page)
}

func TestTracker_PanickingListenerDoesNotBreakOthers(t *testing.T) {
	tracker := NewTracker()

	notified := false
	tracker.OnChange(func(old Location, oldSet bool, new Location) {
		panic("listener bug")
	})
	tracker.OnChange(func(old Location, oldSet bool, new Location) {
		notified = true
	})

	assert.NotPanics(t, func() {
		tracker.SetCurrent(Location{Page: "/a"})
	})
	assert.True(t, notified)
}

func TestTracker_Unsubscribe(t *testing.T) {
	tracker := NewTracker()

	calls := 0
	unsubscribe := tracker.OnChange(func(old Location, oldSet bool, new Location) {
		calls++
	})

	tracker.SetCurrent(Location{Page: "/a"})
	unsubscribe()
	tracker.SetCurrent(Location{Page: "/b"})

	assert.Equal(t, 1, calls)

	// Unsubscribing twice is harmless.
	assert.NotPanics(t, unsubscribe)
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()
	calls := 0
	tracker.OnChange(func(old Location, oldSet bool, new Location) { calls++ })
	tracker.SetCurrent(Location{Page: "/a"})

	tracker.Reset()

	_, ok := tracker.Current()
	assert.False(t, ok)

	tracker.SetCurrent(Location{Page: "/b"})
	assert.Equal(t, 1, calls, "reset drops listeners")
}

func TestLocation_HasComponentAndElement(t *testing.T) {
	loc := Location{
		Components: []string{"TaskList", "Sidebar"},
		Elements:   []string{"submit-button"},
	}
	assert.True(t, loc.HasComponent("TaskList"))
	assert.False(t, loc.HasComponent("Footer"))
	assert.True(t, loc.HasElement("submit-button"))
	assert.False(t, loc.HasElement("cancel-button"))
}
