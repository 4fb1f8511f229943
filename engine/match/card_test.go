package match

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestAABBIntersects(t *testing.T) {
	a := BoxAround(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})

	tests := []struct {
		name string
		b    AABB
		want bool
	}{
		{"overlapping", BoxAround(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}), true},
		{"touching", BoxAround(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{1, 1, 1}), true},
		{"separated on x", BoxAround(mgl64.Vec3{2.5, 0, 0}, mgl64.Vec3{1, 1, 1}), false},
		{"separated on z", BoxAround(mgl64.Vec3{0, 0, -3}, mgl64.Vec3{1, 1, 1}), false},
		{"flat box inside", BoxAround(mgl64.Vec3{0, 0, 0.5}, mgl64.Vec3{1, 1.5, 0}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(a))
		})
	}
}

func TestCardAndBallBounds(t *testing.T) {
	c := Card{Position: mgl64.Vec3{0, 0, 100}}
	b := c.Bounds()
	assertVecNear(t, mgl64.Vec3{-1, -1.5, 100}, b.Min)
	assertVecNear(t, mgl64.Vec3{1, 1.5, 100}, b.Max)

	ball := BallBounds(mgl64.Vec3{0, 0, 100})
	assertVecNear(t, mgl64.Vec3{-0.75, -0.75, 99.25}, ball.Min)
	assertVecNear(t, mgl64.Vec3{0.75, 0.75, 100.75}, ball.Max)
}

func TestPlaceCardsSortedAndVisible(t *testing.T) {
	routes := StandardRoutes()
	cards := placeCards(routes, DefaultPlacements())

	var ts []float64
	for _, c := range cards {
		ts = append(ts, c.T)
		assert.True(t, c.Visible)
		assertVecNear(t, routes[c.Route].Point(c.T), c.Position)
	}
	assert.Equal(t, []float64{0.2, 0.25, 0.3, 0.5, 0.55, 0.6}, ts)

	assert.Equal(t, RouteRightWinger, cards[0].Route)
	assert.Equal(t, CardYellow, cards[0].Type)
	assert.Equal(t, RouteCenterForward, cards[2].Route)
	assert.Equal(t, CardRed, cards[2].Type)
	assert.Equal(t, RouteLeftWinger, cards[1].Route)
}

func TestPlaceCardsSkipsUnknownRoute(t *testing.T) {
	cards := placeCards(StandardRoutes(), []CardPlacement{{Route: RouteID(7), Ts: []float64{0.5}}})
	assert.Empty(t, cards)
}
