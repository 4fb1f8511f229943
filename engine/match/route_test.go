package match

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func assertVecNear(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], tolerance, "component %d of %v", i, got)
	}
}

func TestRouteEndpoints(t *testing.T) {
	for _, r := range StandardRoutes() {
		assertVecNear(t, KickoffPoint, r.Point(0))
		assertVecNear(t, GoalPoint, r.Point(1))
	}
}

func TestRouteMidpoints(t *testing.T) {
	routes := StandardRoutes()
	assertVecNear(t, mgl64.Vec3{-25, 0, 121.5}, routes[RouteLeftWinger].Point(0.5))
	assertVecNear(t, mgl64.Vec3{0, 25, 121.5}, routes[RouteCenterForward].Point(0.5))
	assertVecNear(t, mgl64.Vec3{25, 0, 121.5}, routes[RouteRightWinger].Point(0.5))
}

func TestRoutePolyline(t *testing.T) {
	r := StandardRoutes()[RouteCenterForward]
	pts := r.Polyline(4)
	require.Len(t, pts, 5)
	assertVecNear(t, KickoffPoint, pts[0])
	assertVecNear(t, r.Point(0.5), pts[2])
	assertVecNear(t, GoalPoint, pts[4])

	assert.Len(t, r.Polyline(0), 2)
}

func TestRouteNeighbors(t *testing.T) {
	assert.Equal(t, RouteLeftWinger, leftOf(RouteCenterForward))
	assert.Equal(t, RouteCenterForward, leftOf(RouteRightWinger))
	assert.Equal(t, RouteLeftWinger, leftOf(RouteLeftWinger))
	assert.Equal(t, RouteRightWinger, rightOf(RouteCenterForward))
	assert.Equal(t, RouteCenterForward, rightOf(RouteLeftWinger))
	assert.Equal(t, RouteRightWinger, rightOf(RouteRightWinger))
}

func TestNearestTOnRoute(t *testing.T) {
	r := StandardRoutes()[RouteLeftWinger]
	assert.InDelta(t, 0.437, NearestT(nil, r, r.Point(0.437)), tolerance)
	assert.InDelta(t, 0.0, NearestT(nil, r, KickoffPoint), tolerance)
	assert.InDelta(t, 1.0, NearestT(nil, r, GoalPoint), tolerance)
}

func TestNearestTPoolMatchesSequential(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(4, 64, time.Second)
	defer pool.Stop()

	points := []mgl64.Vec3{
		{0, 0, 166},
		{-20, 3, 140},
		{12, 40, 110},
		{30, -5, 95},
		{0, 0, 0},
	}
	for _, r := range StandardRoutes() {
		for _, p := range points {
			assert.Equal(t, NearestT(nil, r, p), NearestT(pool, r, p), "route %s point %v", r.ID, p)
		}
	}
}

func TestNearestTTiesPickSmallestT(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(3, 64, time.Second)
	defer pool.Stop()

	// a degenerate route samples the same point at every t
	r := Route{Start: mgl64.Vec3{}, Control: mgl64.Vec3{}, End: mgl64.Vec3{}}
	assert.Equal(t, 0.0, NearestT(nil, r, mgl64.Vec3{5, 5, 5}))
	assert.Equal(t, 0.0, NearestT(pool, r, mgl64.Vec3{5, 5, 5}))
}

func TestRouteIDText(t *testing.T) {
	var r RouteID
	require.NoError(t, r.UnmarshalText([]byte("right_winger")))
	assert.Equal(t, RouteRightWinger, r)

	text, err := RouteLeftWinger.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "left_winger", string(text))

	assert.Error(t, r.UnmarshalText([]byte("goalkeeper")))
	_, err = RouteID(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "RouteID(9)", RouteID(9).String())
}
