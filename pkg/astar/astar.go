package astar

import (
	"container/heap"
	"context"
	"errors"
	"fmt"

	"github.com/0x0FACED/gridai/pkg/logger"
	"go.uber.org/zap"
)

// Sentinel errors returned by Run.
var (
	// ErrNotStarted indicates that Run was called on a search without a target.
	ErrNotStarted = errors.New("astar: search has not been started")
	// ErrNoPath indicates that the target cannot be reached from the source.
	ErrNoPath = errors.New("astar: no path to target")
	// ErrLimit indicates that the search gave up after too many expansions.
	ErrLimit = errors.New("astar: expansion limit reached")
)

// Heuristic describes the searched graph.
type Heuristic[N comparable] interface {
	Neighbors(n N) []N
	// Estimate returns a lower bound on the cost from a to b.
	Estimate(a, b N) float64
	// Cost returns the cost of entering n.
	Cost(n N) float64
}

// State of a search.
type State uint8

const (
	Idle State = iota
	Running
	Found
	Aborted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Found:
		return "found"
	case Aborted:
		return "aborted"
	default:
		return "idle"
	}
}

// Path is a sequence of nodes from the source and its total cost.
type Path[N comparable] struct {
	Nodes []N
	Cost  float64
}

func (p Path[N]) Len() int { return len(p.Nodes) }

// Head returns the first node; ok is false for an empty path.
func (p Path[N]) Head() (n N, ok bool) {
	if len(p.Nodes) == 0 {
		return n, false
	}
	return p.Nodes[0], true
}

// Tail returns the last node; ok is false for an empty path.
func (p Path[N]) Tail() (n N, ok bool) {
	if len(p.Nodes) == 0 {
		return n, false
	}
	return p.Nodes[len(p.Nodes)-1], true
}

// EndsAt reports whether the path ends at n.
func (p Path[N]) EndsAt(n N) bool {
	t, ok := p.Tail()
	return ok && t == n
}

// Reaches reports whether the path passes through n.
func (p Path[N]) Reaches(n N) bool {
	for _, m := range p.Nodes {
		if m == n {
			return true
		}
	}
	return false
}

// Search is a stepped A* search. It is not safe for concurrent use.
type Search[N comparable] struct {
	h     Heuristic[N]
	state State
	src   N
	tgt   N

	open openSet[N]
	seq  uint64
	best map[N]float64
	prev map[N]N

	current  N
	expanded int
	limit    int
	limited  bool

	Logger *logger.ZapLogger
}

// Option configures a Search.
type Option func(*config)

type config struct {
	limit  int
	logger *logger.ZapLogger
}

// WithLimit aborts the search after n expansions; n <= 0 means no limit.
func WithLimit(n int) Option {
	return func(c *config) { c.limit = n }
}

func WithLogger(l *logger.ZapLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns an idle search over h.
func New[N comparable](h Heuristic[N], opts ...Option) *Search[N] {
	cfg := config{logger: logger.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Search[N]{
		h:      h,
		limit:  cfg.limit,
		Logger: cfg.logger,
	}
}

// Start resets the search to run from src to tgt.
func (s *Search[N]) Start(src, tgt N) {
	s.src, s.tgt = src, tgt
	s.open = s.open[:0]
	s.seq = 0
	s.best = map[N]float64{src: 0}
	s.prev = make(map[N]N)
	s.current = src
	s.expanded = 0
	s.limited = false
	s.state = Running

	s.push(src, 0)
	s.Logger.Debug("[astar-start] Search started", zap.Any("src", src), zap.Any("tgt", tgt))
}

func (s *Search[N]) State() State { return s.state }

// IsIdle reports whether the search is not running.
func (s *Search[N]) IsIdle() bool { return s.state != Running }

// Expanded counts the nodes expanded since Start.
func (s *Search[N]) Expanded() int { return s.expanded }

func (s *Search[N]) push(n N, cost float64) {
	s.seq++
	heap.Push(&s.open, &openItem[N]{
		node:     n,
		cost:     cost,
		estimate: cost + s.h.Estimate(n, s.tgt),
		seq:      s.seq,
	})
}

// Step pops the most promising node and expands it. It does nothing unless
// the search is running.
func (s *Search[N]) Step() {
	if s.state != Running {
		return
	}

	var item *openItem[N]
	for s.open.Len() > 0 {
		it := heap.Pop(&s.open).(*openItem[N])
		if it.cost <= s.best[it.node] {
			item = it
			break
		}
	}
	if item == nil {
		s.state = Aborted
		s.Logger.Debug("[astar-step] Open set exhausted", zap.Int("expanded", s.expanded))
		return
	}

	s.current = item.node
	if item.node == s.tgt {
		s.state = Found
		s.Logger.Debug("[astar-step] Target reached",
			zap.Int("expanded", s.expanded), zap.Float64("cost", item.cost))
		return
	}
	if s.limit > 0 && s.expanded >= s.limit {
		s.state = Aborted
		s.limited = true
		s.Logger.Warn("[astar-step] Expansion limit reached", zap.Int("limit", s.limit))
		return
	}

	s.expanded++
	for _, n := range s.h.Neighbors(item.node) {
		c := item.cost + s.h.Cost(n)
		if old, seen := s.best[n]; seen && old <= c {
			continue
		}
		s.best[n] = c
		s.prev[n] = item.node
		s.push(n, c)
	}
}

// Path returns the best path to the target once found, or the best path to
// the node expanded last while the search is running.
func (s *Search[N]) Path() Path[N] {
	if s.state == Idle {
		return Path[N]{}
	}
	var nodes []N
	for n := s.current; ; {
		nodes = append(nodes, n)
		if n == s.src {
			break
		}
		n = s.prev[n]
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return Path[N]{Nodes: nodes, Cost: s.best[s.current]}
}

// Run steps until the search ends and returns the path to the target.
func (s *Search[N]) Run(ctx context.Context) (Path[N], error) {
	if s.state == Idle {
		return Path[N]{}, ErrNotStarted
	}
	for !s.IsIdle() {
		if err := ctx.Err(); err != nil {
			return Path[N]{}, err
		}
		s.Step()
	}
	if s.state == Found {
		return s.Path(), nil
	}
	if s.limited {
		return Path[N]{}, fmt.Errorf("%w: %d expansions", ErrLimit, s.expanded)
	}
	return Path[N]{}, ErrNoPath
}

// openItem is an entry of the open set. Entries whose cost is above the best
// known cost of their node are stale.
type openItem[N comparable] struct {
	node     N
	cost     float64
	estimate float64
	seq      uint64
}

// openSet is a min-heap of *openItem ordered by estimate, then by seq.
type openSet[N comparable] []*openItem[N]

func (o openSet[N]) Len() int { return len(o) }

func (o openSet[N]) Less(i, j int) bool {
	if o[i].estimate != o[j].estimate {
		return o[i].estimate < o[j].estimate
	}
	return o[i].seq < o[j].seq
}

func (o openSet[N]) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet[N]) Push(x any) { *o = append(*o, x.(*openItem[N])) }

func (o *openSet[N]) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
