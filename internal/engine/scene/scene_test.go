package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type recorder struct {
	name  string
	log   *[]string
	err   error
	calls int
}

func (r *recorder) Update(dt float32) error {
	r.calls++
	*r.log = append(*r.log, r.name)
	return r.err
}

func (r *recorder) Name() string { return r.name }

type ball struct {
	recorder
}

func (b *ball) Center() mgl32.Vec3       { return mgl32.Vec3{1, 0, 0} }
func (b *ball) InfluenceRadius() float32 { return 1 }

type rock struct{}

func (rock) Center() mgl32.Vec3       { return mgl32.Vec3{} }
func (rock) InfluenceRadius() float32 { return 2 }

func TestTickRunsInInsertionOrder(t *testing.T) {
	var log []string
	var s Scheduler
	for _, name := range []string{"ground", "sphere", "camera"} {
		s.Add(&recorder{name: name, log: &log})
	}

	for frame := 0; frame < 2; frame++ {
		if err := s.Tick(0.016); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}

	want := "ground,sphere,camera,ground,sphere,camera"
	if got := strings.Join(log, ","); got != want {
		t.Errorf("update order = %s, want %s", got, want)
	}
}

func TestTickStopsAtFirstFailure(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	first := &recorder{name: "first", log: &log}
	broken := &recorder{name: "broken", log: &log, err: boom}
	last := &recorder{name: "last", log: &log}

	var s Scheduler
	s.Add(first)
	s.Add(broken)
	s.Add(last)

	err := s.Tick(0.016)
	if !errors.Is(err, boom) {
		t.Fatalf("Tick() error = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "#1 (broken)") {
		t.Errorf("error %q does not name the failing entity", err)
	}
	if last.calls != 0 {
		t.Errorf("entity after failure was updated %d times, want 0", last.calls)
	}
}

func TestInstantiateByCapability(t *testing.T) {
	var log []string
	r := NewRegistry(nil)

	caps := r.Instantiate(&recorder{name: "camera", log: &log})
	if !caps.Updatable || caps.Influencer {
		t.Errorf("camera caps = %+v, want updatable only", caps)
	}

	caps = r.Instantiate(&ball{recorder{name: "ball", log: &log}})
	if !caps.Updatable || !caps.Influencer {
		t.Errorf("ball caps = %+v, want both", caps)
	}

	caps = r.Instantiate(rock{})
	if caps.Updatable || !caps.Influencer {
		t.Errorf("rock caps = %+v, want influencer only", caps)
	}

	caps = r.Instantiate("not an entity")
	if caps.Updatable || caps.Influencer {
		t.Errorf("string caps = %+v, want none", caps)
	}

	if r.Updatables() != 2 {
		t.Errorf("Updatables() = %d, want 2", r.Updatables())
	}
	if r.Spatials().Len() != 2 {
		t.Errorf("Spatials().Len() = %d, want 2", r.Spatials().Len())
	}

	if err := r.Tick(0.5); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if got := strings.Join(log, ","); got != "camera,ball" {
		t.Errorf("update order = %s, want camera,ball", got)
	}
}
