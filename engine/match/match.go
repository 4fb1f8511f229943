package match

import (
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-pitch/common"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultIncrement is how far along its route the ball moves per tick.
	DefaultIncrement = 1.0 / 500

	// collisionWindow is how close in route parameter a card must be to the ball
	// before the boxes are tested.
	collisionWindow = 0.01
)

// Direction is a route switch direction.
type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
)

// EventType identifies a match notification.
type EventType int

const (
	// EventCardHit fires when the ball collects a card.
	EventCardHit EventType = iota
	// EventRoundOver fires when the ball reaches the goal, before the round restarts.
	EventRoundOver
)

// Event is delivered to match listeners.
type Event struct {
	Type   EventType
	Card   Card
	Yellow int
	Red    int
	Score  float64
}

// Match runs the ball along the attacking routes, collecting cards it runs into and
// scoring each round for fair play.
//
// A Match is not safe for concurrent use; drive it from the engine tick callback.
type Match interface {
	// Tick advances the ball one step, restarting the round once it passes the goal, and
	// checks for card collisions.
	Tick()

	// SwitchRoute moves the ball to the neighboring route, continuing from the point on the
	// new route nearest the ball.
	//
	// Parameters:
	//   - dir: the direction to switch
	//
	// Returns:
	//   - bool: false if there is no route in that direction
	SwitchRoute(dir Direction) bool

	// Restart returns the ball to kickoff and restores every card.
	Restart()

	// T returns the ball's parameter on the current route.
	//
	// Returns:
	//   - float64: the route parameter in [0, 1]
	T() float64

	// Route returns the route the ball is on.
	//
	// Returns:
	//   - Route: the current route
	Route() Route

	// Routes returns all routes indexed by RouteID.
	//
	// Returns:
	//   - [3]Route: every route
	Routes() [3]Route

	// BallPosition returns the ball's world-space position.
	//
	// Returns:
	//   - mgl64.Vec3: the ball center
	BallPosition() mgl64.Vec3

	// Cards returns a copy of the cards sorted by route parameter.
	//
	// Returns:
	//   - []Card: the cards including hidden ones
	Cards() []Card

	// Counts returns the cards collected this round.
	//
	// Returns:
	//   - yellow: yellow cards hit
	//   - red: red cards hit
	Counts() (yellow, red int)

	// Score returns the current fair-play score.
	//
	// Returns:
	//   - float64: the score in (0, 100]
	Score() float64

	// AddListener subscribes to card hits and finished rounds.
	//
	// Parameters:
	//   - fn: the callback
	//
	// Returns:
	//   - common.ListenerID: id used with RemoveListener
	AddListener(fn func(Event)) common.ListenerID

	// RemoveListener unsubscribes a listener.
	//
	// Parameters:
	//   - id: the id returned by AddListener
	RemoveListener(id common.ListenerID)

	// Close stops the search worker pool.
	Close()
}

type matchImpl struct {
	logger     *slog.Logger
	routes     [3]Route
	placements []CardPlacement
	increment  float64
	workers    int
	startRoute RouteID

	pool      worker.DynamicWorkerPool
	listeners common.ListenerSet[Event]

	route  RouteID
	t      float64
	ball   mgl64.Vec3
	cards  []Card
	yellow int
	red    int
}

var _ Match = &matchImpl{}

// NewMatch creates a Match on the standard routes with the default card layout, the ball at
// kickoff on the center forward route.
//
// Parameters:
//   - options: functional options to configure the match
//
// Returns:
//   - Match: the newly created match
func NewMatch(options ...MatchOption) Match {
	m := &matchImpl{
		logger:     slog.Default(),
		routes:     StandardRoutes(),
		placements: DefaultPlacements(),
		increment:  DefaultIncrement,
		workers:    runtime.NumCPU(),
		startRoute: RouteCenterForward,
	}

	for _, option := range options {
		option(m)
	}

	if m.workers > 0 {
		m.pool = worker.NewDynamicWorkerPool(m.workers, 64, 1*time.Second)
	}
	m.Restart()
	return m
}

func (m *matchImpl) Tick() {
	m.t += m.increment
	if m.t > 1 {
		m.finishRound()
	}
	m.ball = m.routes[m.route].Point(m.t)
	m.checkCollisions()
}

func (m *matchImpl) SwitchRoute(dir Direction) bool {
	next := m.route
	switch dir {
	case DirectionLeft:
		next = leftOf(m.route)
	case DirectionRight:
		next = rightOf(m.route)
	}
	if next == m.route {
		return false
	}

	m.t = NearestT(m.pool, m.routes[next], m.ball)
	m.route = next
	m.ball = m.routes[next].Point(m.t)
	m.logger.Debug("route switched", "route", next, "t", m.t)
	return true
}

func (m *matchImpl) Restart() {
	m.route = m.startRoute
	m.t = 0
	m.ball = m.routes[m.route].Point(0)
	m.cards = placeCards(m.routes, m.placements)
	m.yellow, m.red = 0, 0
}

func (m *matchImpl) T() float64 {
	return m.t
}

func (m *matchImpl) Route() Route {
	return m.routes[m.route]
}

func (m *matchImpl) Routes() [3]Route {
	return m.routes
}

func (m *matchImpl) BallPosition() mgl64.Vec3 {
	return m.ball
}

func (m *matchImpl) Cards() []Card {
	out := make([]Card, len(m.cards))
	copy(out, m.cards)
	return out
}

func (m *matchImpl) Counts() (int, int) {
	return m.yellow, m.red
}

func (m *matchImpl) Score() float64 {
	return FairPlayScore(m.yellow, m.red)
}

func (m *matchImpl) AddListener(fn func(Event)) common.ListenerID {
	return m.listeners.Add(fn)
}

func (m *matchImpl) RemoveListener(id common.ListenerID) {
	m.listeners.Remove(id)
}

func (m *matchImpl) Close() {
	if m.pool != nil {
		m.pool.Stop()
		m.pool = nil
	}
}

// finishRound reports the score and starts a new round on the same route.
func (m *matchImpl) finishRound() {
	score := m.Score()
	m.logger.Info("fair play score", "score", math.Round(score*100)/100, "yellow", m.yellow, "red", m.red)
	m.listeners.Emit(Event{Type: EventRoundOver, Yellow: m.yellow, Red: m.red, Score: score})

	m.t = 0
	m.yellow, m.red = 0, 0
	for i := range m.cards {
		m.cards[i].Visible = true
	}
}

func (m *matchImpl) checkCollisions() {
	ball := BallBounds(m.ball)
	for i := range m.cards {
		c := &m.cards[i]
		if c.Route != m.route || !c.Visible || math.Abs(c.T-m.t) >= collisionWindow {
			continue
		}
		if !ball.Intersects(c.Bounds()) {
			continue
		}

		c.Visible = false
		switch c.Type {
		case CardYellow:
			m.yellow++
		case CardRed:
			m.red++
		}
		m.logger.Debug("card hit", "type", c.Type, "route", c.Route, "t", c.T)
		m.listeners.Emit(Event{Type: EventCardHit, Card: *c, Yellow: m.yellow, Red: m.red, Score: m.Score()})
	}
}
