package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// HeadlessStep is the fixed time step used without a window.
const HeadlessStep = float32(1.0 / 60.0)

// RunHeadless steps the scene frames times at HeadlessStep and logs a summary.
// Cancelling ctx stops the run between frames; the summary is still logged.
func RunHeadless(ctx context.Context, s *Scene, frames int, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	done := 0
	for ; done < frames; done++ {
		if ctx.Err() != nil {
			log.Info("headless run interrupted", zap.Int("completed", done), zap.Int("requested", frames))
			break
		}
		if err := s.Step(HeadlessStep); err != nil {
			return err
		}
	}

	snap := s.Ground.Snapshot()
	influencers := make([]string, 0, snap.Count)
	for i := 0; i < snap.Count; i++ {
		r := snap.Records[i]
		influencers = append(influencers, fmt.Sprintf("(%.3f, %.3f, %.3f) r=%.2f", r.Center[0], r.Center[1], r.Center[2], r.Radius))
	}

	log.Info("headless run finished",
		zap.Int("frames", done),
		zap.Float64("time", s.Ground.Uniforms().Time),
		zap.Int("blades", s.Ground.BladeCount()),
		zap.Float32("plane_size", s.Ground.PlaneSize()),
		zap.Int("influencers", snap.Count),
		zap.Bool("truncated", snap.Truncated()),
		zap.Strings("positions", influencers),
	)
	return nil
}
