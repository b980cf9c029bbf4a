package radar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serial-radar.klederson.com/internal/distance"
)

func TestModel_InitialState(t *testing.T) {
	m := NewModel(80)
	assert.Equal(t, -1, m.LatestCm())
	assert.Equal(t, 0.0, m.SweepAngle())
	assert.Empty(t, m.Blips(t0))
	assert.Equal(t, 2*time.Second, m.Lifetime())
}

func TestModel_AcceptPinsBlipToSweepAngle(t *testing.T) {
	m := NewModel(80)
	m.Advance(750*time.Millisecond, t0)

	m.Accept(distance.Sample{Cm: 120}, t0)
	blips := m.Blips(t0)
	require.Len(t, blips, 1)
	assert.Equal(t, m.SweepAngle(), blips[0].AngleDeg)
	assert.InDelta(t, 60.0, blips[0].AngleDeg, 1e-9)
	assert.Equal(t, 120.0, blips[0].DistanceCm)
	assert.Equal(t, t0, blips[0].CreatedAt)

	m.Advance(250*time.Millisecond, t0.Add(250*time.Millisecond))
	assert.InDelta(t, 60.0, m.Blips(t0)[0].AngleDeg, 1e-9, "blip angle is fixed at creation")
}

func TestModel_NoEchoUpdatesLatestOnly(t *testing.T) {
	m := NewModel(80)
	m.Accept(distance.Sample{Cm: 50}, t0)
	m.Accept(distance.Sample{Cm: -1}, t0)

	assert.Equal(t, -1, m.LatestCm())
	assert.Len(t, m.Blips(t0), 1)
	assert.Equal(t, 1, m.BlipsCreated())
}

func TestModel_BlipExpiry(t *testing.T) {
	m := NewModel(80)
	m.Accept(distance.Sample{Cm: 100}, t0)
	life := m.Lifetime()

	for _, at := range []time.Duration{0, time.Second, life - time.Millisecond} {
		assert.Len(t, m.Blips(t0.Add(at)), 1, "at +%s", at)
	}
	assert.Empty(t, m.Blips(t0.Add(life)))

	m.Advance(16*time.Millisecond, t0.Add(life-time.Millisecond))
	assert.Len(t, m.Blips(t0.Add(life-time.Millisecond)), 1)

	m.Advance(16*time.Millisecond, t0.Add(life))
	assert.Empty(t, m.Blips(t0))
}

func TestModel_PurgeKeepsOrder(t *testing.T) {
	m := NewModel(80)
	m.Accept(distance.Sample{Cm: 10}, t0)
	m.Accept(distance.Sample{Cm: 20}, t0.Add(time.Second))
	m.Accept(distance.Sample{Cm: 30}, t0.Add(1500*time.Millisecond))

	removed := m.Purge(t0.Add(2100 * time.Millisecond))
	assert.Equal(t, 1, removed)
	assert.Equal(t, []float64{20, 30}, distances(m.Blips(t0.Add(2100*time.Millisecond))))
}

func TestModel_Clear(t *testing.T) {
	m := NewModel(80)
	m.Accept(distance.Sample{Cm: 10}, t0)
	m.Clear()
	assert.Empty(t, m.Blips(t0))
	assert.Equal(t, 10, m.LatestCm())
}

func TestModel_Frame(t *testing.T) {
	m := NewModel(80)
	m.Advance(1125*time.Millisecond, t0) // 90 degrees, straight up
	m.Accept(distance.Sample{Cm: 150}, t0)
	m.Accept(distance.Sample{Cm: 450}, t0)

	g := Geometry{Center: Point{X: 500, Y: 540}, Radius: 400, MaxRangeCm: 300, Aspect: 1}
	f := m.Frame("COM3", g, t0.Add(time.Second))

	assert.Equal(t, "COM3", f.ConnectionLabel)
	assert.InDelta(t, 90.0, f.SweepAngle, 1e-9)
	assert.Equal(t, 450, f.LatestDistanceCm)
	require.Len(t, f.Blips, 2)

	assert.InDelta(t, 500, f.Blips[0].Pos.X, 1e-6)
	assert.InDelta(t, 340, f.Blips[0].Pos.Y, 1e-6)
	assert.InDelta(t, 140, f.Blips[1].Pos.Y, 1e-6, "past max range sits on the outer ring")
	assert.Equal(t, 450.0, f.Blips[1].DistanceCm)

	want := Alpha(time.Second, 2*time.Second)
	assert.InDelta(t, want, f.Blips[0].Alpha, 1e-9)
}

func TestModel_RingOverflowEvictsOldest(t *testing.T) {
	m := NewModel(80)
	for i := 0; i < 2050; i++ {
		m.Accept(distance.Sample{Cm: i%500 + 1}, t0)
	}

	blips := m.Blips(t0)
	assert.Len(t, blips, 2048)
	assert.Equal(t, 2050, m.BlipsCreated())
	assert.Equal(t, 3.0, blips[0].DistanceCm, "first two samples evicted")
}
