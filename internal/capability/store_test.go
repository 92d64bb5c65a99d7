package capability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RegisterAssignsIdentity(t *testing.T) {
	store := NewStore()
	store.Register("TaskList-1", "setPriority", &Record{
		Owner:       "taskList",
		Description: "Set the priority of a task",
	})

	rec, ok := store.Get("TaskList-1.setPriority")
	require.True(t, ok)
	assert.Equal(t, "TaskList-1.setPriority", rec.ID)
	assert.Equal(t, "taskList", rec.Owner)
	assert.Equal(t, "setPriority", rec.Member)
	assert.Equal(t, "setPriority", rec.Name, "name should default to the member id")
}

func TestStore_DuplicateRegistrationIsNoOp(t *testing.T) {
	store := NewStore()
	store.Register("echo", "say", &Record{Description: "first"})
	store.Register("echo", "say", &Record{Description: "second"})

	assert.Equal(t, 1, store.Len())
	rec, ok := store.Get("echo.say")
	require.True(t, ok)
	assert.Equal(t, "first", rec.Description, "first registration wins")
}

func TestStore_GetFriendlyFallback(t *testing.T) {
	store := NewStore()
	store.Register("TaskList-1", "setPriority", &Record{Owner: "taskList"})
	store.Register("Widget-9", "Render", &Record{Owner: "Widget"})

	tests := []struct {
		name  string
		id    string
		found bool
	}{
		{"exact id", "TaskList-1.setPriority", true},
		{"friendly owner.member", "taskList.setPriority", true},
		{"upper-case initial skips fallback", "Widget.Render", false},
		{"unknown member", "taskList.setTitle", false},
		{"too many separators", "a.b.c", false},
		{"empty owner segment", ".setPriority", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := store.Get(tt.id)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				require.NotNil(t, rec)
			}
		})
	}
}

func TestStore_AllPreservesRegistrationOrder(t *testing.T) {
	store := NewStore()
	store.Register("a", "one", &Record{})
	store.Register("b", "two", &Record{})
	store.Register("c", "three", &Record{})

	var ids []string
	for _, rec := range store.All() {
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []string{"a.one", "b.two", "c.three"}, ids)
}

func TestStore_ByCategoryAndOwner(t *testing.T) {
	store := NewStore()
	store.Register("notes", "add", &Record{Category: "notes"})
	store.Register("notes", "clear", &Record{Category: "notes"})
	store.Register("clock", "now", &Record{Category: "time"})

	assert.Len(t, store.ByCategory("notes"), 2)
	assert.Len(t, store.ByCategory("time"), 1)
	assert.Empty(t, store.ByCategory("missing"))
	assert.Len(t, store.ByOwner("notes"), 2)
}

func TestStore_FindByElementID(t *testing.T) {
	store := NewStore()
	store.Register("form", "submit", &Record{ElementID: "submit-button"})
	store.Register("form", "reset", &Record{})

	rec, ok := store.FindByElementID("submit-button")
	require.True(t, ok)
	assert.Equal(t, "form.submit", rec.ID)

	_, ok = store.FindByElementID("")
	assert.False(t, ok)
	_, ok = store.FindByElementID("unknown")
	assert.False(t, ok)
}

func TestStore_BindOwner(t *testing.T) {
	store := NewStore()
	store.Register("notes", "add", &Record{})
	store.Register("notes", "clear", &Record{})
	store.Register("clock", "now", &Record{})

	type notes struct{ entries []string }
	instance := &notes{}

	store.BindOwner("notes", instance, map[string]Handler{
		"add": func(ctx context.Context, args []interface{}) (interface{}, error) {
			return "added", nil
		},
		// "clear" deliberately missing
	})

	add, _ := store.Get("notes.add")
	require.True(t, add.Bound())
	assert.Same(t, instance, add.Instance)

	clearRec, _ := store.Get("notes.clear")
	assert.False(t, clearRec.Bound(), "member without a handler stays unbound")
	assert.Same(t, instance, clearRec.Instance, "instance is attached regardless")

	now, _ := store.Get("clock.now")
	assert.False(t, now.Bound(), "other owners are untouched")
	assert.Nil(t, now.Instance)
}

func TestStore_Unregister(t *testing.T) {
	store := NewStore()
	store.Register("TaskList-1", "setPriority", &Record{Owner: "taskList"})

	store.Unregister("TaskList-1.setPriority")
	assert.Equal(t, 0, store.Len())

	_, ok := store.Get("TaskList-1.setPriority")
	assert.False(t, ok)
	_, ok = store.Get("taskList.setPriority")
	assert.False(t, ok, "friendly index entry is removed too")

	// Removing again is a no-op.
	store.Unregister("TaskList-1.setPriority")
	assert.Equal(t, 0, store.Len())
}
