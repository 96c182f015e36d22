// Package profile groups sketch entities into connected chains and
// classifies them as open or closed. Closed profiles are the ones a
// downstream modeling feature can sweep into a solid.
package profile

import (
	"sketch-solver/internal/sketch"
)

// Profile is a connected group of entities.
type Profile struct {
	Entities []sketch.EntityID
	// Closed is true when every endpoint in the group is shared by an
	// even number of entity ends, so the chain has no loose ends. A lone
	// circle is trivially closed.
	Closed bool
}

// Detect groups the sketch's lines and arcs into connected profiles by
// shared endpoints, and emits each circle as its own closed profile. The
// sketch is only read.
func Detect(s *sketch.Sketch) []Profile {
	var profiles []Profile

	// Union endpoints of lines and arcs into connected groups.
	parent := map[sketch.PointID]sketch.PointID{}
	var find func(sketch.PointID) sketch.PointID
	find = func(id sketch.PointID) sketch.PointID {
		if parent[id] != id {
			parent[id] = find(parent[id])
		}
		return parent[id]
	}
	union := func(a, b sketch.PointID) {
		if _, ok := parent[a]; !ok {
			parent[a] = a
		}
		if _, ok := parent[b]; !ok {
			parent[b] = b
		}
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	degree := map[sketch.PointID]int{}
	for _, e := range s.Entities() {
		switch e.Type {
		case sketch.EntityLine, sketch.EntityArc:
			union(e.Start, e.End)
			degree[e.Start]++
			degree[e.End]++
		case sketch.EntityCircle:
			profiles = append(profiles, Profile{
				Entities: []sketch.EntityID{e.ID},
				Closed:   true,
			})
		}
	}

	// Collect entities per group, in entity insertion order.
	groups := map[sketch.PointID][]sketch.EntityID{}
	var order []sketch.PointID
	for _, e := range s.Entities() {
		if e.Type == sketch.EntityCircle {
			continue
		}
		root := find(e.Start)
		if _, seen := groups[root]; !seen {
			order = append(order, root)
		}
		groups[root] = append(groups[root], e.ID)
	}

	for _, root := range order {
		ids := groups[root]
		closed := true
		for _, eid := range ids {
			e, ok := s.Entity(eid)
			if !ok {
				continue
			}
			if degree[e.Start]%2 != 0 || degree[e.End]%2 != 0 {
				closed = false
				break
			}
		}
		profiles = append(profiles, Profile{Entities: ids, Closed: closed})
	}
	return profiles
}
