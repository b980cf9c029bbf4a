package radar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"serial-radar.klederson.com/internal/config"
)

func pixelGeometry() Geometry {
	return Geometry{Center: Point{X: 500, Y: 540}, Radius: 400, MaxRangeCm: 300, Aspect: 1}
}

func TestGeometry_PointOrientation(t *testing.T) {
	g := pixelGeometry()

	left := g.Point(0, 400)
	assert.InDelta(t, 100, left.X, 1e-9)
	assert.InDelta(t, 540, left.Y, 1e-9)

	up := g.Point(90, 400)
	assert.InDelta(t, 500, up.X, 1e-9)
	assert.InDelta(t, 140, up.Y, 1e-9)

	right := g.Point(180, 400)
	assert.InDelta(t, 900, right.X, 1e-9)
	assert.InDelta(t, 540, right.Y, 1e-9)
}

func TestGeometry_RadiusFor(t *testing.T) {
	g := pixelGeometry()
	assert.Equal(t, 0.0, g.RadiusFor(0))
	assert.Equal(t, 0.0, g.RadiusFor(-1))
	assert.InDelta(t, 200, g.RadiusFor(150), 1e-9)
	assert.Equal(t, 400.0, g.RadiusFor(300))
	assert.Equal(t, 400.0, g.RadiusFor(500))
}

func TestGeometry_PolarRoundTrip(t *testing.T) {
	g := TerminalGeometry(80, 24, 300)
	for _, angle := range []float64{0, 15, 45, 90, 120, 180} {
		p := g.Point(angle, 10)
		dist, got := g.Polar(p)
		assert.InDelta(t, 10, dist, 1e-9)
		assert.InDelta(t, angle, got, 1e-9)
	}
}

func TestTerminalGeometry(t *testing.T) {
	g := TerminalGeometry(80, 24, 300)
	assert.Equal(t, Point{X: 40, Y: 23}, g.Center)
	assert.Equal(t, 39.0, g.Radius)
	assert.Equal(t, config.AspectRatio, g.Aspect)

	tall := TerminalGeometry(200, 11, 300)
	assert.Equal(t, 20.0, tall.Radius)
}

func TestAlpha(t *testing.T) {
	life := 2 * time.Second
	assert.InDelta(t, 1.0, Alpha(0, life), 1e-9)
	assert.InDelta(t, config.BlipAlphaMin+(1-config.BlipAlphaMin)/2, Alpha(time.Second, life), 1e-9)
	assert.InDelta(t, config.BlipAlphaMin, Alpha(life, life), 1e-9)
	assert.InDelta(t, config.BlipAlphaMin, Alpha(time.Hour, life), 1e-9)
	assert.InDelta(t, 1.0, Alpha(-time.Second, life), 1e-9)
}

func TestRingAndSpokeChars(t *testing.T) {
	assert.Equal(t, '|', RingChar(0))
	assert.Equal(t, '/', RingChar(45))
	assert.Equal(t, '-', RingChar(90))
	assert.Equal(t, '\\', RingChar(135))

	assert.Equal(t, '-', SpokeChar(180))
	assert.Equal(t, '\\', SpokeChar(45))
	assert.Equal(t, '|', SpokeChar(90))
	assert.Equal(t, '/', SpokeChar(135))
}
