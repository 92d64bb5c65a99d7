package capability

import (
	"strings"
	"sync"
	"unicode"

	"capctl/pkg/logging"
)

// Store indexes capability records by their registration key. It also keeps
// a secondary "friendly" index (owner name -> member name -> id) built at
// registration time, so the component-qualified lookup fallback is a map hit
// instead of a scan.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string // registration order, for stable listings

	// friendly[ownerName][memberName] = id
	friendly map[string]map[string]string
}

// NewStore creates an empty capability store.
func NewStore() *Store {
	return &Store{
		records:  make(map[string]*Record),
		friendly: make(map[string]map[string]string),
	}
}

// Register adds a record under the composite key "<ownerID>.<memberID>".
// A duplicate key is a no-op: the first registration wins and the conflict
// is logged, never overwritten.
func (s *Store) Register(ownerID, memberID string, rec *Record) {
	id := ownerID + "." + memberID

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; exists {
		logging.Warn("Capability", "Duplicate registration for %s ignored (first registration wins)", id)
		return
	}

	rec.ID = id
	if rec.Owner == "" {
		rec.Owner = ownerID
	}
	rec.Member = memberID
	if rec.Name == "" {
		rec.Name = memberID
	}

	s.records[id] = rec
	s.order = append(s.order, id)

	members, ok := s.friendly[rec.Owner]
	if !ok {
		members = make(map[string]string)
		s.friendly[rec.Owner] = members
	}
	if _, taken := members[rec.Member]; !taken {
		members[rec.Member] = id
	}

	logging.Debug("Capability", "Registered %s (category %q, container %q)", id, rec.Category, rec.ContainerID)
}

// Get looks a record up by id. The primary match is the exact registration
// key. When the id has exactly one separator and a lower-case-initial left
// segment, the friendly index is consulted as a fallback so capabilities can
// be addressed by "<ownerName>.<memberName>" too. The lower-case guard is a
// compatibility shim for instance-style names, not a contract; see DESIGN.md.
func (s *Store) Get(id string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.records[id]; ok {
		return rec, true
	}

	parts := strings.Split(id, ".")
	if len(parts) != 2 || parts[0] == "" {
		return nil, false
	}
	if !unicode.IsLower(rune(parts[0][0])) {
		return nil, false
	}
	if members, ok := s.friendly[parts[0]]; ok {
		if realID, ok := members[parts[1]]; ok {
			return s.records[realID], true
		}
	}
	return nil, false
}

// All returns every record in registration order.
func (s *Store) All() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Record, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.records[id])
	}
	return result
}

// ByCategory returns records with the given category, in registration order.
func (s *Store) ByCategory(category string) []*Record {
	return s.filter(func(r *Record) bool { return r.Category == category })
}

// ByOwner returns records with the given friendly owner name.
func (s *Store) ByOwner(owner string) []*Record {
	return s.filter(func(r *Record) bool { return r.Owner == owner })
}

// FindByElementID returns the record bound to the given UI element id, if
// any. Consumed by the external binding layer.
func (s *Store) FindByElementID(elementID string) (*Record, bool) {
	if elementID == "" {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if s.records[id].ElementID == elementID {
			return s.records[id], true
		}
	}
	return nil, false
}

// BindOwner attaches the owning instance and the bound handler to every
// record registered under "<ownerName>.". Members without a matching handler
// are logged; invocation of an unbound record fails at call time.
func (s *Store) BindOwner(ownerName string, instance interface{}, handlers map[string]Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := ownerName + "."
	bound := 0
	for _, id := range s.order {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		rec := s.records[id]
		rec.Instance = instance
		if h, ok := handlers[rec.Member]; ok {
			rec.Handler = h
			bound++
		} else {
			logging.Warn("Capability", "No handler supplied for %s during BindOwner(%s)", id, ownerName)
		}
	}
	logging.Debug("Capability", "Bound %d handlers for owner %s", bound, ownerName)
}

// Unregister removes a record. Removing an unknown id is a logged no-op.
func (s *Store) Unregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		logging.Debug("Capability", "Unregister of unknown id %s ignored", id)
		return
	}

	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if members, ok := s.friendly[rec.Owner]; ok {
		if members[rec.Member] == id {
			delete(members, rec.Member)
			if len(members) == 0 {
				delete(s.friendly, rec.Owner)
			}
		}
	}
}

// Len returns the number of registered records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) filter(keep func(*Record) bool) []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Record
	for _, id := range s.order {
		if keep(s.records[id]) {
			result = append(result, s.records[id])
		}
	}
	return result
}
