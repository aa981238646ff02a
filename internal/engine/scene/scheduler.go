// Package scene owns the per-frame update list and the spatial influencer
// registry for one running scene.
package scene

import (
	"errors"
	"fmt"
)

// ErrNonFinite is returned by entities whose state became NaN or infinite.
var ErrNonFinite = errors.New("non-finite state")

// Updatable is anything that advances once per frame.
type Updatable interface {
	Update(dt float32) error
}

// Named is implemented by entities that want a readable name in errors.
type Named interface {
	Name() string
}

// Scheduler calls Update on its entities in insertion order.
type Scheduler struct {
	entities []Updatable
}

// Add appends an entity. Entities are never removed.
func (s *Scheduler) Add(u Updatable) {
	s.entities = append(s.entities, u)
}

// Len returns the number of scheduled entities.
func (s *Scheduler) Len() int {
	return len(s.entities)
}

// Tick updates every entity once, in insertion order. The first failure aborts
// the frame: later entities are not updated and the error is returned.
func (s *Scheduler) Tick(dt float32) error {
	for i, e := range s.entities {
		if err := e.Update(dt); err != nil {
			return fmt.Errorf("update entity #%d (%s): %w", i, nameOf(e), err)
		}
	}
	return nil
}

func nameOf(v any) string {
	if n, ok := v.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", v)
}
