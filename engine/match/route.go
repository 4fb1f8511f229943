package match

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// RouteID identifies one of the attacking routes toward the goal.
type RouteID int

const (
	RouteLeftWinger RouteID = iota
	RouteCenterForward
	RouteRightWinger
)

var routeNames = map[RouteID]string{
	RouteLeftWinger:    "left_winger",
	RouteCenterForward: "center_forward",
	RouteRightWinger:   "right_winger",
}

func (r RouteID) String() string {
	if s, ok := routeNames[r]; ok {
		return s
	}
	return fmt.Sprintf("RouteID(%d)", int(r))
}

// MarshalText encodes the route by name for config files.
func (r RouteID) MarshalText() ([]byte, error) {
	s, ok := routeNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown route %d", int(r))
	}
	return []byte(s), nil
}

// UnmarshalText decodes a route name.
func (r *RouteID) UnmarshalText(text []byte) error {
	for k, v := range routeNames {
		if v == string(text) {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown route %q", string(text))
}

var (
	// KickoffPoint is where every route starts.
	KickoffPoint = mgl64.Vec3{0, 0, 166}
	// GoalPoint is where every route ends, inside the goal mouth.
	GoalPoint = mgl64.Vec3{0, 0, 80}
)

// Route is a quadratic Bezier curve the ball travels along.
type Route struct {
	ID      RouteID
	Start   mgl64.Vec3
	Control mgl64.Vec3
	End     mgl64.Vec3
}

// Point returns the position on the route at parameter t.
//
// Parameters:
//   - t: curve parameter, 0 at Start and 1 at End
//
// Returns:
//   - mgl64.Vec3: the world-space point
func (r Route) Point(t float64) mgl64.Vec3 {
	return mgl64.QuadraticBezierCurve3D(t, r.Start, r.Control, r.End)
}

// Polyline samples the route into segments+1 evenly spaced points.
//
// Parameters:
//   - segments: number of line segments, at least 1
//
// Returns:
//   - []mgl64.Vec3: the sampled points from Start to End
func (r Route) Polyline(segments int) []mgl64.Vec3 {
	if segments < 1 {
		segments = 1
	}
	pts := make([]mgl64.Vec3, segments+1)
	for i := range pts {
		pts[i] = r.Point(float64(i) / float64(segments))
	}
	return pts
}

// StandardRoutes returns the three attacking routes indexed by RouteID.
// The wingers bend out to either side and the center forward lofts over the top.
//
// Returns:
//   - [3]Route: routes for RouteLeftWinger, RouteCenterForward and RouteRightWinger
func StandardRoutes() [3]Route {
	return [3]Route{
		RouteLeftWinger:    {ID: RouteLeftWinger, Start: KickoffPoint, Control: mgl64.Vec3{-50, 0, 120}, End: GoalPoint},
		RouteCenterForward: {ID: RouteCenterForward, Start: KickoffPoint, Control: mgl64.Vec3{0, 50, 120}, End: GoalPoint},
		RouteRightWinger:   {ID: RouteRightWinger, Start: KickoffPoint, Control: mgl64.Vec3{50, 0, 120}, End: GoalPoint},
	}
}

// leftOf returns the route reached by switching left from r, or r itself at the edge.
func leftOf(r RouteID) RouteID {
	switch r {
	case RouteCenterForward:
		return RouteLeftWinger
	case RouteRightWinger:
		return RouteCenterForward
	default:
		return r
	}
}

// rightOf returns the route reached by switching right from r, or r itself at the edge.
func rightOf(r RouteID) RouteID {
	switch r {
	case RouteCenterForward:
		return RouteRightWinger
	case RouteLeftWinger:
		return RouteCenterForward
	default:
		return r
	}
}
