package collision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/collide/internal/core"
)

var allSegments = []Segment{Middle, Left, Right, Up, Down, UpLeft, UpRight, DownLeft, DownRight}

func TestOuterSegment(t *testing.T) {
	r := core.NewRect(core.V(0, 0), core.V(10, 10))

	tests := []struct {
		name     string
		p        core.Vec2
		expected Segment
	}{
		{"inside", core.V(5, 5), Middle},
		{"on min corner", core.V(0, 0), Middle},
		{"on max edge", core.V(10, 4), Middle},
		{"left", core.V(-1, 5), Left},
		{"right", core.V(11, 5), Right},
		{"above", core.V(5, 11), Up},
		{"below", core.V(5, -1), Down},
		{"up-left", core.V(-1, 11), UpLeft},
		{"up-right", core.V(11, 11), UpRight},
		{"down-left", core.V(-1, -1), DownLeft},
		{"down-right", core.V(11, -1), DownRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, OuterSegment(r, tc.p))
		})
	}
}

func TestOuterSegmentTotality(t *testing.T) {
	r := core.NewRect(core.V(-3, -2), core.V(4, 6))

	for x := -6.0; x <= 7.0; x += 0.5 {
		for y := -5.0; y <= 9.0; y += 0.5 {
			p := core.V(x, y)
			seg := OuterSegment(r, p)
			require.True(t, seg.Valid(), "point %v produced invalid segment %d", p, seg)
			assert.Equal(t, r.Contains(p), seg == Middle, "point %v", p)
		}
	}
}

func TestSegmentFromCenter(t *testing.T) {
	r := core.NewRect(core.V(0, 0), core.V(10, 10))

	assert.Equal(t, Middle, SegmentFromCenter(r, core.V(5, 5)))
	assert.Equal(t, Left, SegmentFromCenter(r, core.V(2, 5)))
	assert.Equal(t, Right, SegmentFromCenter(r, core.V(8, 5)))
	assert.Equal(t, Up, SegmentFromCenter(r, core.V(5, 8)))
	assert.Equal(t, Down, SegmentFromCenter(r, core.V(5, 2)))
	assert.Equal(t, UpRight, SegmentFromCenter(r, core.V(6, 6)))
	assert.Equal(t, DownLeft, SegmentFromCenter(r, core.V(-20, -20)))
}

func TestNormalSegment(t *testing.T) {
	square := core.RectFromCenterHalfSize(core.V(0, 0), core.V(5, 5))
	tall := core.RectFromCenterHalfSize(core.V(0, 0), core.V(5, 50))

	tests := []struct {
		name     string
		r        core.Rect
		p        core.Vec2
		expected Segment
	}{
		{"x dominates", square, core.V(4, 1), Right},
		{"y dominates", square, core.V(-1, -4), Down},
		{"exact diagonal keeps corner", square, core.V(3, 3), UpRight},
		{"edge region untouched", square, core.V(-7, 0), Left},
		{"tall rect short edge", tall, core.V(6, 10), Right},
		{"tall rect end cap", tall, core.V(1, 49), Up},
		{"center", square, core.V(0, 0), Middle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalSegment(tc.r, tc.p))
		})
	}
}

func TestNormal(t *testing.T) {
	d := 1 / math.Sqrt2

	tests := []struct {
		seg      Segment
		expected core.Vec2
	}{
		{Middle, core.V(0, 0)},
		{Left, core.V(-1, 0)},
		{Right, core.V(1, 0)},
		{Up, core.V(0, 1)},
		{Down, core.V(0, -1)},
		{UpLeft, core.V(-d, d)},
		{UpRight, core.V(d, d)},
		{DownLeft, core.V(-d, -d)},
		{DownRight, core.V(d, -d)},
	}

	for _, tc := range tests {
		t.Run(tc.seg.String(), func(t *testing.T) {
			n := Normal(tc.seg)
			assert.True(t, n.ApproxEqual(tc.expected), "got %v", n)
			if tc.seg != Middle {
				assert.InDelta(t, 1, n.Len(), 1e-12)
			}
		})
	}
}

func TestNormalInvalidSegment(t *testing.T) {
	invalid := Left | Right
	require.False(t, invalid.Valid())
	assert.Equal(t, "Invalid", invalid.String())
	assert.Equal(t, core.Vec2{}, Normal(invalid))
}

func TestSegmentParts(t *testing.T) {
	for _, s := range allSegments {
		assert.True(t, s.Valid(), s.String())
	}

	assert.True(t, DownLeft.IsCorner())
	assert.False(t, Down.IsCorner())
	assert.False(t, Middle.IsCorner())
	assert.Equal(t, Left, UpLeft.Horizontal())
	assert.Equal(t, Up, UpLeft.Vertical())
	assert.Equal(t, Middle, Right.Vertical())
}
