package voronoi

import (
	"math"

	"go.uber.org/zap"
)

// leftBreakpoint is the x where the arc at n meets its predecessor.
func (b *Builder) leftBreakpoint(n nodeID, directrix float64) float64 {
	site := b.arc(n).site
	if site.Y == directrix {
		return site.X
	}
	p := b.beach.prev(n)
	if p == nilNode {
		return math.Inf(-1)
	}
	return breakpointX(b.arc(p).site, site, directrix)
}

// rightBreakpoint is the x where the arc at n meets its successor.
func (b *Builder) rightBreakpoint(n nodeID, directrix float64) float64 {
	if next := b.beach.next(n); next != nilNode {
		return b.leftBreakpoint(next, directrix)
	}
	site := b.arc(n).site
	if site.Y == directrix {
		return site.X
	}
	return math.Inf(1)
}

// locate descends the beach line comparing site.X against breakpoint
// positions evaluated at site.Y. It returns the same arc twice when the site
// falls strictly inside it, two neighbours when it falls on their breakpoint,
// and (last, nilNode) when it lies right of a last arc sitting on the sweep.
func (b *Builder) locate(site Vertex) (lNode, rNode nodeID) {
	x, directrix := site.X, site.Y
	lNode, rNode = nilNode, nilNode

	node := b.beach.root
	for node != nilNode {
		dxl := b.leftBreakpoint(node, directrix) - x
		if dxl > b.eps {
			node = b.beach.left(node)
			continue
		}
		dxr := x - b.rightBreakpoint(node, directrix)
		if dxr > b.eps {
			if b.beach.right(node) == nilNode {
				lNode = node
				break
			}
			node = b.beach.right(node)
			continue
		}
		if dxl > -b.eps {
			lNode = b.beach.prev(node)
			rNode = node
		} else if dxr > -b.eps {
			lNode = node
			rNode = b.beach.next(node)
		} else {
			lNode = node
			rNode = node
		}
		break
	}
	return lNode, rNode
}

// insert handles a site event.
func (b *Builder) insert(site Vertex) error {
	if _, dup := b.seen[site]; dup {
		b.stats.Duplicates++
		b.Logger.Warn("[vnoi-insert] Duplicate site skipped", zap.Any("site", site))
		return nil
	}
	b.seen[site] = struct{}{}
	b.stats.Inserts++
	b.Logger.Debug("[vnoi-insert] Site", zap.Any("site", site))

	lNode, rNode := b.locate(site)

	if lNode == nilNode && rNode == nilNode {
		if b.beach.root != nilNode {
			return b.invariant("insert", "no arc above site %v", site)
		}
		b.beach.insertSuccessor(nilNode, arc{site: site, trace: NoTrace})
		return nil
	}
	// only reachable when the site sits on the breakpoint of a first arc that
	// lies on the sweep line; split that arc
	if lNode == nilNode {
		lNode = rNode
	}

	newNode := b.beach.insertSuccessor(lNode, arc{site: site, trace: NoTrace})
	lSite := b.arc(lNode).site

	switch {
	case lNode == rNode:
		// Новая дуга разрезает старую на две копии: A, s, A'.
		b.detachEvent(lNode)

		rNode = b.beach.insertSuccessor(newNode, arc{site: lSite, trace: NoTrace})
		start := parabolaPoint(lSite, site.X, site.Y)
		left, right := b.startTwins(lSite, site, start)
		b.arc(newNode).trace = left
		b.arc(rNode).trace = right

		b.attachEvent(lNode)
		b.attachEvent(rNode)

	case rNode == nilNode:
		// the last arc and the new site share the sweep row: their
		// bisector is a vertical line coming from infinity
		b.arc(newNode).trace = b.startTrace(Trace{
			Left:  lSite,
			Right: site,
			Start: NoVertex,
			Twin:  NoTrace,
		})

	default:
		// the site lies exactly under the breakpoint of lNode and rNode
		b.detachEvent(lNode)
		b.detachEvent(rNode)

		rSite := b.arc(rNode).site
		split := b.arc(rNode).trace
		vertex, radius, ok := circumcircle(lSite, site, rSite)
		atVertex := ok
		switch {
		case ok && split != NoTrace && b.traces[split].AtVertex && b.near(b.traces[split].Start, vertex, radius):
			// the breakpoint has not left the vertex it started at: the site
			// is on the circle of the arc squeezed there
			vertex = b.traces[split].Start
			b.Logger.Debug("[vnoi-insert] Site on the circle of a fresh vertex", zap.Any("vertex", vertex))
		case ok:
			b.emitVertex(vertex)
		default:
			b.Logger.Warn("[vnoi-insert] Collinear breakpoint split", zap.Any("site", site))
			vertex = parabolaPoint(lSite, site.X, site.Y)
		}
		b.endTrace(split, vertex)

		b.arc(newNode).trace = b.startTrace(Trace{
			Left: lSite, Right: site, Start: vertex, AtVertex: atVertex, Twin: NoTrace,
		})
		b.arc(rNode).trace = b.startTrace(Trace{
			Left: site, Right: rSite, Start: vertex, AtVertex: atVertex, Twin: NoTrace,
		})

		b.attachEvent(lNode)
		b.attachEvent(rNode)
	}
	return nil
}

// delete handles a circle event.
func (b *Builder) delete(e event) error {
	mid := e.arc
	if !b.beach.isLive(mid) || b.arc(mid).pending.seq != e.seq {
		b.stats.Stale++
		b.Logger.Debug("[vnoi-delete] Stale event discarded", zap.Float64("y", e.y))
		return nil
	}

	lArc, rArc := b.beach.prev(mid), b.beach.next(mid)
	if lArc == nilNode || rArc == nilNode {
		return b.invariant("delete", "arc of %v has a pending event but no neighbours", b.arc(mid).site)
	}
	// a split neighbour keeps its site, so the triple is compared by sites
	if b.arc(lArc).site != e.triple[0] || b.arc(rArc).site != e.triple[2] {
		return b.invariant("delete", "live event for %v no longer matches its neighbours", b.arc(mid).site)
	}

	b.stats.Deletes++
	vertex := e.center
	b.Logger.Debug("[vnoi-delete] Arc squeezed",
		zap.Any("site", b.arc(mid).site), zap.Any("vertex", vertex), zap.Float64("y", e.y))

	// Собираем все дуги, исчезающие в той же точке (вырожденный случай
	// четырёх и более сайтов на одной окружности).
	var left, right []nodeID
	for b.sameCircle(lArc, vertex, e.radius) {
		left = append(left, lArc)
		lArc = b.beach.prev(lArc)
		if lArc == nilNode {
			return b.invariant("delete", "collapsing arc has no left neighbour")
		}
	}
	for b.sameCircle(rArc, vertex, e.radius) {
		right = append(right, rArc)
		rArc = b.beach.next(rArc)
		if rArc == nilNode {
			return b.invariant("delete", "collapsing arc has no right neighbour")
		}
	}

	chain := make([]nodeID, 0, len(left)+len(right)+3)
	chain = append(chain, lArc)
	for i := len(left) - 1; i >= 0; i-- {
		chain = append(chain, left[i])
	}
	chain = append(chain, mid)
	chain = append(chain, right...)
	chain = append(chain, rArc)

	b.emitVertex(vertex)
	for _, n := range chain[1:] {
		b.endTrace(b.arc(n).trace, vertex)
	}
	for _, n := range chain[1 : len(chain)-1] {
		b.arc(n).pending = eventHandle{}
		b.beach.removeNode(n)
	}

	// the neighbours' events described triples that included the removed
	// arcs; leave them in the queue, they will be discarded when popped
	b.dropEvent(lArc)
	b.dropEvent(rArc)

	b.arc(rArc).trace = b.startTrace(Trace{
		Left:     b.arc(lArc).site,
		Right:    b.arc(rArc).site,
		Start:    vertex,
		AtVertex: true,
		Twin:     NoTrace,
	})

	b.attachEvent(lArc)
	b.attachEvent(rArc)
	return nil
}

func (b *Builder) sameCircle(n nodeID, v Vertex, radius float64) bool {
	a := b.arc(n)
	return a.pending.valid() && b.near(v, Vertex{a.cx, a.cy}, radius)
}

// near compares two circle centers with a tolerance relative to the radius.
func (b *Builder) near(p, q Vertex, radius float64) bool {
	tol := b.eps * max(1, radius)
	return math.Abs(p.X-q.X) < tol && math.Abs(p.Y-q.Y) < tol
}

// attachEvent queues a Delete for the arc at n if its triple converges.
func (b *Builder) attachEvent(n nodeID) {
	lNode, rNode := b.beach.prev(n), b.beach.next(n)
	if lNode == nilNode || rNode == nilNode {
		return
	}
	if b.arc(n).pending.valid() {
		b.dropEvent(n)
	}

	l, m, r := b.arc(lNode).site, b.arc(n).site, b.arc(rNode).site
	center, radius, y, ok := convergence(l, m, r)
	if !ok {
		return
	}
	if y < b.sweep-b.eps {
		b.Logger.Debug("[vnoi-attach] Candidate in the past", zap.Float64("y", y), zap.Float64("sweep", b.sweep))
		return
	}

	h := b.queue.push(event{
		kind:   deleteEvent,
		x:      center.X,
		y:      y,
		arc:    n,
		triple: [3]Vertex{l, m, r},
		center: center,
		radius: radius,
	})
	a := b.arc(n)
	a.pending = h
	a.cx, a.cy = center.X, center.Y
}

// detachEvent cancels the pending Delete of n and takes it out of the queue.
func (b *Builder) detachEvent(n nodeID) {
	a := b.arc(n)
	if !a.pending.valid() {
		return
	}
	b.queue.remove(a.pending)
	a.pending = eventHandle{}
	b.stats.Cancelled++
}

// dropEvent cancels the pending Delete of n but leaves it queued.
func (b *Builder) dropEvent(n nodeID) {
	a := b.arc(n)
	if !a.pending.valid() {
		return
	}
	a.pending = eventHandle{}
	b.stats.Cancelled++
}
