// Package spatial tracks scene objects that bend nearby grass and packs them
// into the fixed-size array the grass shader reads.
package spatial

import "github.com/go-gl/mathgl/mgl32"

// MaxSpatials is the capacity of the influencer array in the grass shader.
// The same value is injected into GLSL as MAX_SPATIALS.
const MaxSpatials = 16

// Influencer is a scene object with a position and an influence radius.
type Influencer interface {
	// Center is the point grass bends away from, in world space.
	Center() mgl32.Vec3
	// InfluenceRadius is the distance over which the object affects grass.
	InfluenceRadius() float32
}

// Record is one influencer as the shader sees it.
// A zero Record (origin, radius 0) is an inert padding slot.
type Record struct {
	Center mgl32.Vec3
	Radius float32
}

// Snapshot is a point-in-time copy of the registry, capped at MaxSpatials.
type Snapshot struct {
	Records [MaxSpatials]Record
	Count   int // Valid entries at the front of Records
	Total   int // Registered influencers, including those past the cap
}

// Truncated reports whether some influencers did not fit.
func (s *Snapshot) Truncated() bool {
	return s.Total > s.Count
}

// Registry is an append-only list of influencers in registration order.
type Registry struct {
	items []Influencer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers an influencer. Influencers are never removed.
func (r *Registry) Add(inf Influencer) {
	r.items = append(r.items, inf)
}

// Len returns the number of registered influencers.
func (r *Registry) Len() int {
	return len(r.items)
}

// At returns the i-th registered influencer.
func (r *Registry) At(i int) Influencer {
	return r.items[i]
}

// All returns the registered influencers. The slice must not be modified.
func (r *Registry) All() []Influencer {
	return r.items
}

// Snapshot returns the current influencer array.
func (r *Registry) Snapshot() Snapshot {
	var s Snapshot
	r.SnapshotInto(&s)
	return s
}

// SnapshotInto fills s with the first MaxSpatials influencers and zeroes the
// remaining slots. Only the capped prefix is read, so the cost does not grow
// with the registry.
func (r *Registry) SnapshotInto(s *Snapshot) {
	n := min(len(r.items), MaxSpatials)
	for i := 0; i < n; i++ {
		s.Records[i] = Record{
			Center: r.items[i].Center(),
			Radius: r.items[i].InfluenceRadius(),
		}
	}
	for i := n; i < MaxSpatials; i++ {
		s.Records[i] = Record{}
	}
	s.Count = n
	s.Total = len(r.items)
}
