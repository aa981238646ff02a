package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/spatial"
)

// Registry is the explicitly owned scene context: the update schedule and the
// spatial influencers. Its lifetime is the lifetime of the running scene.
type Registry struct {
	scheduler Scheduler
	spatials  *spatial.Registry
	log       *zap.Logger
}

// NewRegistry creates an empty scene registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		spatials: spatial.NewRegistry(),
		log:      log,
	}
}

// Capabilities reports what Instantiate registered an object as.
type Capabilities struct {
	Updatable  bool
	Influencer bool
}

// Instantiate adds obj to the scene. Objects implementing Updatable join the
// update schedule; objects implementing spatial.Influencer join the spatial
// registry. An object may be both.
func (r *Registry) Instantiate(obj any) Capabilities {
	var caps Capabilities
	if u, ok := obj.(Updatable); ok {
		r.scheduler.Add(u)
		caps.Updatable = true
	}
	if inf, ok := obj.(spatial.Influencer); ok {
		r.spatials.Add(inf)
		caps.Influencer = true
	}
	r.log.Debug("instantiated",
		zap.String("object", nameOf(obj)),
		zap.Bool("updatable", caps.Updatable),
		zap.Bool("influencer", caps.Influencer),
	)
	return caps
}

// Tick runs one frame of updates.
func (r *Registry) Tick(dt float32) error {
	return r.scheduler.Tick(dt)
}

// Spatials returns the spatial influencer registry.
func (r *Registry) Spatials() *spatial.Registry {
	return r.spatials
}

// Updatables returns the number of scheduled entities.
func (r *Registry) Updatables() int {
	return r.scheduler.Len()
}
