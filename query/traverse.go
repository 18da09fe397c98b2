package query

import (
	"context"

	"github.com/c360/hexastore/errors"
)

// subjectMatchesLinks applies the link constraints to one candidate
// subject. Outgoing constraints run first; a subject survives only if
// every link query is satisfied.
func (e *Executor) subjectMatchesLinks(ctx context.Context, subject string, outgoing, incoming []LinkQuery) (bool, error) {
	for _, link := range outgoing {
		ok, err := e.linkSatisfied(ctx, subject, link, false)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	for _, link := range incoming {
		ok, err := e.linkSatisfied(ctx, subject, link, true)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// linkSatisfied walks the graph from subject per the link query and
// reports whether any reached endpoint matches the target model.
func (e *Executor) linkSatisfied(ctx context.Context, subject string, link LinkQuery, incoming bool) (bool, error) {
	var (
		reached map[string]struct{}
		err     error
	)
	if link.Level == 0 {
		reached, err = e.walkPath(ctx, subject, link.segments(incoming), incoming)
	} else {
		reached, err = e.walkClosure(ctx, subject, link.Level, incoming)
	}
	if err != nil {
		return false, err
	}

	for endpoint := range reached {
		ok, err := e.subjectMatchesTarget(endpoint, link.Target)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// walkPath follows an explicit predicate sequence, replacing the
// frontier at each segment. Only edges (objects with is_id) advance the
// walk. Incoming traversal consumes the reversed segment list and looks
// up edges by (predicate, object) instead of (subject, predicate).
func (e *Executor) walkPath(ctx context.Context, subject string, segs []string, incoming bool) (map[string]struct{}, error) {
	frontier := map[string]struct{}{subject: {}}

	for _, seg := range segs {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapTransient(err, "query", "walkPath", "expanding frontier")
		}
		next := make(map[string]struct{})
		for node := range frontier {
			if incoming {
				po := e.graph.PO(seg, node, nil)
				for po.Next() {
					t := po.Triple()
					if t.Object.IsID {
						next[t.Subject] = struct{}{}
					}
				}
				err := po.Err()
				po.Close()
				if err != nil {
					return nil, err
				}
			} else {
				sp := e.graph.SP(node, seg)
				for sp.Next() {
					t := sp.Triple()
					if t.Object.IsID {
						next[t.Object.Raw] = struct{}{}
					}
				}
				err := sp.Err()
				sp.Close()
				if err != nil {
					return nil, err
				}
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return frontier, nil
}

// walkClosure computes the transitive closure of id-edges up to level
// hops from subject, source included at depth 0. The frontier is
// deduplicated at every expansion, so cycles terminate.
func (e *Executor) walkClosure(ctx context.Context, subject string, level int, incoming bool) (map[string]struct{}, error) {
	if level > e.maxDepth {
		e.logger.Warn("link level clamped to max traversal depth",
			"store", e.graph.StoreID(),
			"level", level,
			"max_depth", e.maxDepth)
		level = e.maxDepth
	}

	reached := map[string]struct{}{subject: {}}
	frontier := map[string]struct{}{subject: {}}

	for depth := 0; depth < level && len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapTransient(err, "query", "walkClosure", "expanding frontier")
		}
		next := make(map[string]struct{})
		for node := range frontier {
			if incoming {
				// Edges whose object is the current node.
				o := e.graph.O(node)
				for o.Next() {
					t := o.Triple()
					if !t.Object.IsID {
						continue
					}
					if _, seen := reached[t.Subject]; !seen {
						reached[t.Subject] = struct{}{}
						next[t.Subject] = struct{}{}
					}
				}
				err := o.Err()
				o.Close()
				if err != nil {
					return nil, err
				}
			} else {
				s := e.graph.S(node)
				for s.Next() {
					t := s.Triple()
					if !t.Object.IsID {
						continue
					}
					if _, seen := reached[t.Object.Raw]; !seen {
						reached[t.Object.Raw] = struct{}{}
						next[t.Object.Raw] = struct{}{}
					}
				}
				err := s.Err()
				s.Close()
				if err != nil {
					return nil, err
				}
			}
		}
		frontier = next
	}
	return reached, nil
}

// subjectMatchesTarget applies the target model to a reached endpoint.
// A target id short-circuits to subject equality; otherwise the
// target's filters are matched the same way remaining filters are. A
// nil target makes the link a pure reachability constraint.
func (e *Executor) subjectMatchesTarget(subject string, target *ObjectQueryModel) (bool, error) {
	if target == nil {
		return true, nil
	}
	if target.ID != "" {
		return subject == target.ID, nil
	}
	return e.subjectMatchesFilters(subject, target.Filter)
}
