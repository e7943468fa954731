package voronoi

import (
	"context"
	"fmt"
	"math"

	"github.com/0x0FACED/gridai/pkg/logger"
	"go.uber.org/zap"
)

// TraceID identifies one breakpoint, i.e. one traced Voronoi edge.
type TraceID int

// NoTrace is the zero reference.
const NoTrace TraceID = -1

// Trace describes a breakpoint at the moment it appears on the beach line.
type Trace struct {
	ID TraceID
	// Left and Right are the sites whose arcs meet at the breakpoint.
	Left  Vertex
	Right Vertex
	// Start is where the breakpoint appeared: a Voronoi vertex when AtVertex
	// is set, otherwise the point above a newly inserted site, or NoVertex
	// when the trace comes from infinity.
	Start    Vertex
	AtVertex bool
	// Twin is the breakpoint born in the same arc split, running the other
	// way along the same bisector.
	Twin TraceID
}

// Direction returns the direction in which the trace grows.
func (t Trace) Direction() Vertex {
	return traceDirection(t.Left, t.Right)
}

// Listener receives the output of the sweep.
type Listener interface {
	OnVertex(v Vertex)
	OnEdgeStart(t Trace)
	OnEdgeEnd(id TraceID, end Vertex)
}

// Stats counts what the builder has done so far.
type Stats struct {
	Inserts    int
	Duplicates int
	Deletes    int
	Stale      int
	Cancelled  int
	Vertices   int
}

type arc struct {
	site Vertex
	// trace is the breakpoint between the previous arc and this one
	trace   TraceID
	pending eventHandle
	// circle center of the pending Delete
	cx, cy float64
}

// Builder constructs a Voronoi diagram with Fortune's sweep, one event per Step.
type Builder struct {
	beach  rbt[arc]
	queue  eventQueue
	sweep  float64
	traces []Trace
	ends   []Vertex
	seen   map[Vertex]struct{}

	listeners []Listener
	eps       float64
	stats     Stats
	err       error

	Logger *logger.ZapLogger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *logger.ZapLogger) Option {
	return func(b *Builder) {
		if l != nil {
			b.Logger = l
		}
	}
}

// WithListener adds an output listener. It may be given several times.
func WithListener(l Listener) Option {
	return func(b *Builder) {
		if l != nil {
			b.listeners = append(b.listeners, l)
		}
	}
}

// WithEpsilon sets the tolerance used when locating a site against a
// breakpoint and when comparing circle events (1e-9 by default).
func WithEpsilon(eps float64) Option {
	return func(b *Builder) {
		if eps > 0 {
			b.eps = eps
		}
	}
}

func New(opts ...Option) *Builder {
	b := &Builder{
		beach:  newRBT[arc](),
		queue:  newEventQueue(),
		sweep:  math.Inf(-1),
		seen:   make(map[Vertex]struct{}),
		eps:    1e-9,
		Logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load resets the builder and queues one Insert per site. Load order does
// not matter: the queue decides processing order.
func (b *Builder) Load(sites []Vertex) error {
	for i, s := range sites {
		if !s.finite() {
			return fmt.Errorf("%w: site %d is %v", ErrInvalidSite, i, s)
		}
	}

	b.beach.reset()
	b.queue.reset()
	b.sweep = math.Inf(-1)
	b.traces = b.traces[:0]
	b.ends = b.ends[:0]
	clear(b.seen)
	b.stats = Stats{}
	b.err = nil

	for _, s := range sites {
		b.queue.push(event{kind: insertEvent, x: s.X, y: s.Y, site: s})
	}
	b.Logger.Info("[vnoi-load] Sites queued", zap.Int("sites", len(sites)))
	return nil
}

// IsIdle reports whether no events are left.
func (b *Builder) IsIdle() bool {
	return b.queue.empty()
}

// Step processes exactly one event. It does nothing when idle. An
// InvariantError is returned again by every later call.
func (b *Builder) Step() error {
	if b.err != nil {
		return b.err
	}
	e, ok := b.queue.pop()
	if !ok {
		return nil
	}
	b.sweep = e.y

	var err error
	switch e.kind {
	case insertEvent:
		err = b.insert(e.site)
	case deleteEvent:
		err = b.delete(e)
	}
	if err != nil {
		b.err = err
		b.Logger.Error("[vnoi-step] Construction aborted", zap.Error(err))
	}
	return err
}

// Run steps until the queue is exhausted or ctx is done.
func (b *Builder) Run(ctx context.Context) error {
	if b.err != nil {
		return b.err
	}
	for !b.IsIdle() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.Step(); err != nil {
			return err
		}
	}
	b.Logger.Info("[vnoi-run] Sweep finished",
		zap.Int("vertices", b.stats.Vertices),
		zap.Int("deletes", b.stats.Deletes),
		zap.Int("stale", b.stats.Stale),
	)
	return nil
}

// Sweep returns the current sweep coordinate.
func (b *Builder) Sweep() float64 { return b.sweep }

func (b *Builder) Stats() Stats { return b.stats }

// Pending returns the number of queued events, stale ones included.
func (b *Builder) Pending() int { return b.queue.len() }

// Traces returns every breakpoint created so far.
func (b *Builder) Traces() []Trace {
	out := make([]Trace, len(b.traces))
	copy(out, b.traces)
	return out
}

// OpenTraces returns the breakpoints still on the beach line. After the
// sweep they are the unbounded edges of the diagram.
func (b *Builder) OpenTraces() []Trace {
	var out []Trace
	for i, t := range b.traces {
		if b.ends[i] == NoVertex {
			out = append(out, t)
		}
	}
	return out
}

// Beach returns the sites of the beach-line arcs from left to right.
func (b *Builder) Beach() []Vertex {
	var out []Vertex
	for n := b.beach.head(); n != nilNode; n = b.beach.next(n) {
		out = append(out, b.beach.value(n).site)
	}
	return out
}

func (b *Builder) arc(n nodeID) *arc {
	return b.beach.value(n)
}

func (b *Builder) invariant(op, format string, args ...any) error {
	return &InvariantError{Op: op, Detail: fmt.Sprintf(format, args...), Sweep: b.sweep}
}

func (b *Builder) emitVertex(v Vertex) {
	b.stats.Vertices++
	for _, l := range b.listeners {
		l.OnVertex(v)
	}
}

func (b *Builder) startTrace(t Trace) TraceID {
	t.ID = TraceID(len(b.traces))
	b.traces = append(b.traces, t)
	b.ends = append(b.ends, NoVertex)
	for _, l := range b.listeners {
		l.OnEdgeStart(t)
	}
	return t.ID
}

// startTwins opens the two breakpoints of an arc split in one go so each
// knows the other.
func (b *Builder) startTwins(outer, inner, start Vertex) (left, right TraceID) {
	left = TraceID(len(b.traces))
	right = left + 1
	b.startTrace(Trace{Left: outer, Right: inner, Start: start, Twin: right})
	b.startTrace(Trace{Left: inner, Right: outer, Start: start, Twin: left})
	return left, right
}

func (b *Builder) endTrace(id TraceID, v Vertex) {
	if id == NoTrace || b.ends[id] != NoVertex {
		return
	}
	b.ends[id] = v
	for _, l := range b.listeners {
		l.OnEdgeEnd(id, v)
	}
}
