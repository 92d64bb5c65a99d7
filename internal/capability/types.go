package capability

import (
	"context"

	"capctl/internal/location"
)

// DangerLevel grades how much damage a capability can do when invoked.
type DangerLevel string

const (
	// DangerSafe capabilities are read-only or trivially reversible.
	DangerSafe DangerLevel = "safe"
	// DangerModerate capabilities change state but are recoverable.
	DangerModerate DangerLevel = "moderate"
	// DangerDangerous capabilities change state in hard-to-undo ways.
	DangerDangerous DangerLevel = "dangerous"
	// DangerDestructive capabilities delete or irreversibly overwrite data.
	DangerDestructive DangerLevel = "destructive"
)

// ContainerGlobal is the sentinel container id for capabilities visible on
// every page.
const ContainerGlobal = "global"

// Handler is a capability's bound method: invoked with arguments in declared
// parameter order. Handlers are attached by BindOwner after the owning
// instance is constructed; a record whose handler was never bound cannot be
// invoked.
type Handler func(ctx context.Context, args []interface{}) (interface{}, error)

// Param describes one declared parameter of a capability. Arguments arrive
// over the wire as a JSON object and are mapped positionally against the
// declared parameter list before invocation.
type Param struct {
	Name        string        `yaml:"name" json:"name"`
	Type        string        `yaml:"type" json:"type"` // string|number|integer|boolean|object|array
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool          `yaml:"required" json:"required"`
	Default     interface{}   `yaml:"default,omitempty" json:"default,omitempty"`
	Enum        []interface{} `yaml:"enum,omitempty" json:"enum,omitempty"`
}

// Record describes a single registered capability. Records are created once
// at provider construction time and mutated only when BindOwner attaches the
// bound handler; they live for the process lifetime unless explicitly
// unregistered.
type Record struct {
	// ID is the globally unique registration key, "<ownerID>.<memberID>".
	// Assigned by the store on Register.
	ID string `json:"id"`

	// Owner and Member are the friendly component-qualified name parts,
	// used by the secondary lookup index. Owner defaults to the ownerID
	// passed to Register when not set.
	Owner  string `json:"owner"`
	Member string `json:"member"`

	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`

	// Examples are natural-language invocation patterns, optionally with
	// {placeholder} tokens ("set priority of {task} to {level}").
	Examples []string `json:"examples,omitempty"`

	Danger           DangerLevel `json:"dangerLevel,omitempty"`
	RequiresApproval bool        `json:"requiresApproval,omitempty"`

	// AIEnabled gates whether an automated agent may see or invoke the
	// capability at all.
	AIEnabled bool `json:"aiEnabled"`

	// ContainerID is the coarse visibility scope: a route-like container
	// name resolved via the container registry, or ContainerGlobal. Ignored
	// when Scope is set.
	ContainerID string `json:"containerId,omitempty"`

	// Scope is the rich visibility scope; takes precedence over ContainerID.
	Scope *location.Scope `json:"-"`

	// ElementID links the capability to a UI element for the external
	// binding layer.
	ElementID string `json:"elementId,omitempty"`

	// Params declares the capability's parameters in invocation order.
	Params []Param `json:"params,omitempty"`

	// ArgsType optionally points at a Go struct value whose reflected JSON
	// schema replaces the one derived from Params.
	ArgsType interface{} `json:"-"`

	// Handler and Instance are attached by BindOwner once the owning
	// component exists. Nil until then.
	Handler  Handler     `json:"-"`
	Instance interface{} `json:"-"`
}

// Bound reports whether the record's handler has been attached.
func (r *Record) Bound() bool {
	return r.Handler != nil
}
