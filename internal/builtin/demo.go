package builtin

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"capctl/internal/capability"
)

// Notes is a tiny in-memory notepad used by the demo providers. It exists
// so `capctl agent` has stateful, container-scoped capabilities to discover
// and call.
type Notes struct {
	mu    sync.Mutex
	notes []string
}

// RegisterDemo registers and binds the demo providers: echo.* and clock.*
// globally, notes.* scoped to the "notes" container.
func RegisterDemo(store *capability.Store) *Notes {
	store.Register("echo", "say", &capability.Record{
		Name:        "say",
		Description: "Echo a message back",
		Category:    "demo",
		Keywords:    []string{"echo", "repeat"},
		Examples:    []string{"say {message}", "repeat after me {message}"},
		Danger:      capability.DangerSafe,
		AIEnabled:   true,
		ContainerID: capability.ContainerGlobal,
		Params: []capability.Param{
			{Name: "message", Type: "string", Description: "Text to echo", Required: true},
		},
	})
	store.BindOwner("echo", nil, map[string]capability.Handler{
		"say": func(ctx context.Context, args []interface{}) (interface{}, error) {
			message, _ := args[0].(string)
			return message, nil
		},
	})

	store.Register("clock", "now", &capability.Record{
		Name:        "now",
		Description: "Report the current time",
		Category:    "demo",
		Keywords:    []string{"time", "clock", "date"},
		Examples:    []string{"what time is it"},
		Danger:      capability.DangerSafe,
		AIEnabled:   true,
		ContainerID: capability.ContainerGlobal,
		Params: []capability.Param{
			{Name: "format", Type: "string", Description: "Go time layout, defaults to RFC3339", Default: time.RFC3339},
		},
	})
	store.BindOwner("clock", nil, map[string]capability.Handler{
		"now": func(ctx context.Context, args []interface{}) (interface{}, error) {
			layout, _ := args[0].(string)
			if layout == "" {
				layout = time.RFC3339
			}
			return time.Now().Format(layout), nil
		},
	})

	n := &Notes{}

	store.Register("notes", "add", &capability.Record{
		Name:        "addNote",
		Description: "Add a note to the notepad",
		Category:    "notes",
		Keywords:    []string{"note", "write", "remember"},
		Examples:    []string{"add a note saying {text}", "remember {text}"},
		Danger:      capability.DangerModerate,
		AIEnabled:   true,
		ContainerID: "notes",
		Params: []capability.Param{
			{Name: "text", Type: "string", Description: "Note text", Required: true},
		},
	})

	store.Register("notes", "list", &capability.Record{
		Name:        "listNotes",
		Description: "List all notes in the notepad",
		Category:    "notes",
		Keywords:    []string{"note", "list", "show"},
		Examples:    []string{"show my notes"},
		Danger:      capability.DangerSafe,
		AIEnabled:   true,
		ContainerID: "notes",
	})

	store.Register("notes", "clear", &capability.Record{
		Name:             "clearNotes",
		Description:      "Delete every note in the notepad",
		Category:         "notes",
		Keywords:         []string{"note", "delete", "clear"},
		Examples:         []string{"delete all my notes"},
		Danger:           capability.DangerDestructive,
		RequiresApproval: true,
		AIEnabled:        true,
		ContainerID:      "notes",
	})

	store.BindOwner("notes", n, map[string]capability.Handler{
		"add":   n.add,
		"list":  n.list,
		"clear": n.clear,
	})

	return n
}

func (n *Notes) add(ctx context.Context, args []interface{}) (interface{}, error) {
	text, _ := args[0].(string)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("note text must not be empty")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, text)
	return fmt.Sprintf("added note %d", len(n.notes)), nil
}

func (n *Notes) list(ctx context.Context, args []interface{}) (interface{}, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notes) == 0 {
		return "no notes", nil
	}
	out := make([]string, len(n.notes))
	copy(out, n.notes)
	return out, nil
}

func (n *Notes) clear(ctx context.Context, args []interface{}) (interface{}, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := len(n.notes)
	n.notes = nil
	return fmt.Sprintf("deleted %d notes", count), nil
}
