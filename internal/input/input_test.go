package input

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/data"
	"go.uber.org/zap"
)

func testCamera() *Camera {
	return NewCamera(mgl64.Vec3{5, 5, -5}, mgl64.Vec3{0, 2.5, 0}, 10, 1280, 720)
}

func TestCamera_CentreRayHitsLookAt(t *testing.T) {
	c := testCamera()
	ray, ok := c.ViewportToWorld(mgl64.Vec2{640, 360})
	if !ok {
		t.Fatalf("centre of viewport must produce a ray")
	}
	if !ray.Origin.ApproxEqualThreshold(c.Eye, 1e-9) {
		t.Errorf("centre ray must start at the eye, got %v", ray.Origin)
	}
	// lookAt lies on the centre ray.
	toLook := mgl64.Vec3{0, 2.5, 0}.Sub(ray.Origin)
	if toLook.Cross(ray.Direction).Len() > 1e-9 {
		t.Errorf("centre ray misses lookAt")
	}
	if math.Abs(ray.Direction.Len()-1) > 1e-9 {
		t.Errorf("direction not normalized: %v", ray.Direction)
	}
}

func TestCamera_RoundTrip(t *testing.T) {
	c := testCamera()
	for _, p := range []mgl64.Vec3{{0, 0, 0}, {-7.5, 0.5, 0}, {3, 0.4, -4.5}, {1.7, 1.2, -2.6}} {
		screen, ok := c.WorldToViewport(p)
		if !ok {
			t.Fatalf("%v should be visible", p)
		}
		ray, ok := c.ViewportToWorld(screen)
		if !ok {
			t.Fatalf("projected point %v has no ray", screen)
		}
		// p lies on the ray through its projection.
		d := p.Sub(ray.Origin)
		if d.Cross(ray.Direction).Len() > 1e-6 {
			t.Errorf("%v: ray through %v misses the point", p, screen)
		}
		if d.Dot(ray.Direction) < 0 {
			t.Errorf("%v: point behind the ray origin", p)
		}
	}
}

func TestCamera_OutsideViewport(t *testing.T) {
	c := testCamera()
	if _, ok := c.ViewportToWorld(mgl64.Vec2{-1, 10}); ok {
		t.Errorf("expected no ray left of the viewport")
	}
	if _, ok := c.ViewportToWorld(mgl64.Vec2{10, 721}); ok {
		t.Errorf("expected no ray below the viewport")
	}
	if _, ok := c.WorldToViewport(mgl64.Vec3{10, 10, -10}); ok {
		t.Errorf("point behind the camera must not project")
	}
	if _, ok := c.WorldToViewport(mgl64.Vec3{0, 2.5, 0}.Add(c.right.Mul(100))); ok {
		t.Errorf("point far to the right must not project")
	}
}

func TestScript_Poll(t *testing.T) {
	c := testCamera()
	aim := [3]float64{0, 0, 0}
	s := NewScript(&data.InputScript{Steps: []data.InputStep{
		{At: time.Second, Aim: &aim, Hold: true},
		{At: 2 * time.Second, Screen: &[2]float64{10, 20}},
		{At: 3 * time.Second, Restart: true},
	}}, c, zap.NewNop())

	if snap := s.Poll(500 * time.Millisecond); snap.HasPointer || snap.SelectHeld {
		t.Errorf("before the first step nothing is active: %+v", snap)
	}
	snap := s.Poll(time.Second)
	if !snap.HasPointer || !snap.SelectHeld {
		t.Fatalf("expected held pointer, got %+v", snap)
	}
	want, _ := c.WorldToViewport(mgl64.Vec3{})
	if !snap.Pointer.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("expected aim projected to %v, got %v", want, snap.Pointer)
	}
	if snap := s.Poll(2500 * time.Millisecond); snap.Pointer != (mgl64.Vec2{10, 20}) || snap.SelectHeld {
		t.Errorf("unexpected second step %+v", snap)
	}
	if snap := s.Poll(3 * time.Second); !snap.Restart || snap.HasPointer {
		t.Errorf("expected restart edge, got %+v", snap)
	}
	if snap := s.Poll(4 * time.Second); snap.Restart {
		t.Errorf("restart must fire once")
	}
	if !s.Done() {
		t.Errorf("expected script done")
	}
}

func TestScript_RestartNotLostWhenSkipped(t *testing.T) {
	s := NewScript(&data.InputScript{Steps: []data.InputStep{
		{At: time.Second, Restart: true},
		{At: 1100 * time.Millisecond},
	}}, testCamera(), zap.NewNop())
	if snap := s.Poll(2 * time.Second); !snap.Restart {
		t.Errorf("restart step passed over in one poll must still fire")
	}
}
