package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name      string
		azimuth   float32
		elevation float32
		want      mgl32.Vec3
	}{
		{"zenith", 0, 90, mgl32.Vec3{0, -1, 0}},
		{"low south", 0, 5, mgl32.Vec3{0, -0.0872, -0.9962}},
		{"low east", 90, 5, mgl32.Vec3{-0.9962, -0.0872, 0}},
		{"below horizon clamps", 0, -30, mgl32.Vec3{0, -0.0872, -0.9962}},
		{"above zenith clamps", 45, 120, mgl32.Vec3{0, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			if !got.ApproxEqualThreshold(tt.want, 1e-3) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
			}
		})
	}
}

func TestSunDirectionAlwaysPointsDown(t *testing.T) {
	for az := float32(0); az < 360; az += 30 {
		for el := float32(-90); el <= 180; el += 15 {
			d := SunDirection(az, el)
			if d.Y() >= 0 {
				t.Fatalf("SunDirection(%v, %v) = %v, light must travel downwards", az, el, d)
			}
			if l := d.Len(); math.Abs(float64(l-1)) > 1e-5 {
				t.Fatalf("SunDirection(%v, %v) length = %v, want 1", az, el, l)
			}
		}
	}
}

func TestSunDirectionNaN(t *testing.T) {
	nan := float32(math.NaN())
	d := SunDirection(nan, nan)
	if !d.ApproxEqualThreshold(mgl32.Vec3{0, -1, 0}, 1e-5) {
		t.Errorf("SunDirection(NaN, NaN) = %v, want straight down", d)
	}
}
