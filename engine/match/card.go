package match

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// CardType is the color of a card.
type CardType int

const (
	CardYellow CardType = iota
	CardRed
)

func (c CardType) String() string {
	switch c {
	case CardYellow:
		return "yellow"
	case CardRed:
		return "red"
	default:
		return "unknown"
	}
}

const (
	// CardWidth and CardHeight are the unscaled card plane dimensions.
	CardWidth  = 1.0
	CardHeight = 1.5
	// CardScale is the uniform scale applied to every card.
	CardScale = 2.0

	// BallRadius is the unscaled ball radius.
	BallRadius = 0.25
	// BallScale is the uniform scale applied to the ball.
	BallScale = 3.0
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoxAround returns the box centered on c with the given half extents.
//
// Parameters:
//   - c: box center
//   - half: half extent along each axis
//
// Returns:
//   - AABB: the box
func BoxAround(c, half mgl64.Vec3) AABB {
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

// Intersects reports whether the two boxes overlap. Touching boxes intersect.
//
// Parameters:
//   - o: the other box
//
// Returns:
//   - bool: true if the boxes share at least one point
func (b AABB) Intersects(o AABB) bool {
	for i := range 3 {
		if b.Max[i] < o.Min[i] || b.Min[i] > o.Max[i] {
			return false
		}
	}
	return true
}

// BallBounds returns the bounding box of the ball centered at p.
func BallBounds(p mgl64.Vec3) AABB {
	r := BallRadius * BallScale
	return BoxAround(p, mgl64.Vec3{r, r, r})
}

// Card is a penalty card placed on a route. The card plane faces down the pitch, so its
// box is flat along z.
type Card struct {
	Type     CardType
	Route    RouteID
	T        float64
	Position mgl64.Vec3
	Visible  bool
}

// Bounds returns the card's bounding box.
func (c Card) Bounds() AABB {
	return BoxAround(c.Position, mgl64.Vec3{CardWidth * CardScale / 2, CardHeight * CardScale / 2, 0})
}

// CardPlacement lists the parameters at which cards of one type sit on one route.
type CardPlacement struct {
	Route RouteID
	Type  CardType
	Ts    []float64
}

// DefaultPlacements is the standard card layout: yellows on both wingers and reds on the
// center forward.
func DefaultPlacements() []CardPlacement {
	return []CardPlacement{
		{Route: RouteRightWinger, Type: CardYellow, Ts: []float64{0.2, 0.5}},
		{Route: RouteCenterForward, Type: CardRed, Ts: []float64{0.3, 0.6}},
		{Route: RouteLeftWinger, Type: CardYellow, Ts: []float64{0.25, 0.55}},
	}
}

// placeCards builds visible cards for the placements, sorted by route parameter.
func placeCards(routes [3]Route, placements []CardPlacement) []Card {
	var cards []Card
	for _, pl := range placements {
		if pl.Route < RouteLeftWinger || pl.Route > RouteRightWinger {
			continue
		}
		for _, t := range pl.Ts {
			cards = append(cards, Card{
				Type:     pl.Type,
				Route:    pl.Route,
				T:        t,
				Position: routes[pl.Route].Point(t),
				Visible:  true,
			})
		}
	}
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].T < cards[j].T })
	return cards
}
