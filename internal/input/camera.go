package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/mathx"
)

// Ray is a half-line in world space. Direction is unit length.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// Camera is an orthographic camera looking from Eye towards a point. Rays
// through the viewport are parallel to the view direction.
type Camera struct {
	Eye            mgl64.Vec3
	ViewportHeight float64 // world units covered vertically
	Width, Height  float64 // viewport pixels

	forward, right, up mgl64.Vec3
}

// NewCamera builds the camera basis. World up is +Y.
func NewCamera(eye, lookAt mgl64.Vec3, viewportHeight float64, width, height int) *Camera {
	f := mathx.NormalizeOrZero(lookAt.Sub(eye))
	r := mathx.NormalizeOrZero(f.Cross(mgl64.Vec3{0, 1, 0}))
	return &Camera{
		Eye:            eye,
		ViewportHeight: viewportHeight,
		Width:          float64(width),
		Height:         float64(height),
		forward:        f,
		right:          r,
		up:             r.Cross(f),
	}
}

// Forward returns the view direction.
func (c *Camera) Forward() mgl64.Vec3 { return c.forward }

func (c *Camera) halfExtents() (float64, float64) {
	hh := c.ViewportHeight / 2
	return hh * c.Width / c.Height, hh
}

// ViewportToWorld returns the ray under a viewport position. Positions
// outside the viewport have no ray.
func (c *Camera) ViewportToWorld(screen mgl64.Vec2) (Ray, bool) {
	if screen.X() < 0 || screen.Y() < 0 || screen.X() > c.Width || screen.Y() > c.Height {
		return Ray{}, false
	}
	hw, hh := c.halfExtents()
	ndcX := 2*screen.X()/c.Width - 1
	ndcY := 1 - 2*screen.Y()/c.Height
	origin := c.Eye.Add(c.right.Mul(ndcX * hw)).Add(c.up.Mul(ndcY * hh))
	return Ray{Origin: origin, Direction: c.forward}, true
}

// WorldToViewport projects a world point to viewport pixels. Points behind
// the camera plane or outside the viewport are not visible.
func (c *Camera) WorldToViewport(p mgl64.Vec3) (mgl64.Vec2, bool) {
	d := p.Sub(c.Eye)
	if d.Dot(c.forward) < 0 {
		return mgl64.Vec2{}, false
	}
	hw, hh := c.halfExtents()
	ndcX := d.Dot(c.right) / hw
	ndcY := d.Dot(c.up) / hh
	if ndcX < -1 || ndcX > 1 || ndcY < -1 || ndcY > 1 {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{(ndcX + 1) / 2 * c.Width, (1 - ndcY) / 2 * c.Height}, true
}
