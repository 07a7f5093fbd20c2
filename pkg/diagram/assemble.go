package diagram

import (
	"fmt"

	"github.com/sketchflow/sketchflow/pkg/element"
	"github.com/sketchflow/sketchflow/pkg/errors"
)

// Document is the assembled, validated diagram handed to serializers.
// Elements appear in creation order, which is the paint order: later
// elements paint on top. The document owns every element; all
// cross-references (containment, arrow endpoints, bound refs, group
// members) are identifier lookups against this single sequence, never
// independent ownership edges.
type Document struct {
	Title    string            `json:"title" bson:"title"`
	Elements []element.Element `json:"elements" bson:"elements"`
	Groups   []Group           `json:"groups,omitempty" bson:"groups,omitempty"`
}

// Assemble collects all produced elements into the final document
// structure after a full referential-integrity pass. An empty title
// selects [DefaultTitle].
//
// Assembly fails with a ValidationError enumerating every broken
// reference and group cycle found - not just the first - so callers can
// fix all inconsistencies in one round. Assembling the same unmodified
// builder twice yields structurally identical documents.
func (b *Builder) Assemble(title string) (Document, error) {
	if err := errors.ValidateTitle(title); err != nil {
		return Document{}, err
	}
	if title == "" {
		title = DefaultTitle
	}

	doc := Document{
		Title:    title,
		Elements: b.Elements(),
		Groups:   b.Groups(),
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate runs the document-level integrity pass and returns nil if the
// document is consistent, or a *errors.ValidationError carrying every
// violation found. It checks:
//
//  1. Element identifiers are unique and every element satisfies its
//     variant invariants.
//  2. Containment references resolve and are mutual
//     (ContainerID and ContainedTextID agree on both sides).
//  3. Arrow endpoints resolve to existing non-connector elements.
//  4. Bound refs point at existing elements.
//  5. Group member lists and element group memberships resolve, and the
//     group nesting graph is acyclic.
//
// The pass is O(N) over elements and their references. It never mutates
// the document.
func (d *Document) Validate() error {
	var violations []string

	index := make(map[string]*element.Element, len(d.Elements))
	for i := range d.Elements {
		e := &d.Elements[i]
		if _, dup := index[e.ID]; dup {
			violations = append(violations, fmt.Sprintf("duplicate element id %s", e.ID))
			continue
		}
		index[e.ID] = e
	}

	groupIndex := make(map[string]*Group, len(d.Groups))
	for i := range d.Groups {
		g := &d.Groups[i]
		if _, dup := groupIndex[g.ID]; dup {
			violations = append(violations, fmt.Sprintf("duplicate group id %s", g.ID))
			continue
		}
		groupIndex[g.ID] = g
	}

	for i := range d.Elements {
		e := &d.Elements[i]
		violations = append(violations, validateElement(e, index)...)

		for _, gid := range e.GroupIDs {
			if _, ok := groupIndex[gid]; !ok {
				violations = append(violations,
					fmt.Sprintf("element %s belongs to unknown group %s", e.ID, gid))
			}
		}
	}

	for i := range d.Groups {
		g := &d.Groups[i]
		for _, mid := range g.Members {
			if _, ok := index[mid]; !ok {
				violations = append(violations,
					fmt.Sprintf("group %s lists missing member %s", g.ID, mid))
			}
		}
	}

	violations = append(violations, detectGroupCycles(d.Groups, groupIndex)...)

	if len(violations) > 0 {
		return &errors.ValidationError{Violations: violations}
	}
	return nil
}

func validateElement(e *element.Element, index map[string]*element.Element) []string {
	var violations []string

	if err := e.Validate(); err != nil {
		violations = append(violations, fmt.Sprintf("element %s: %v", e.ID, err))
	}

	for _, ref := range e.Bound {
		if _, ok := index[ref.ElementID]; !ok {
			violations = append(violations,
				fmt.Sprintf("element %s bound ref names missing element %s", e.ID, ref.ElementID))
		}
	}

	switch {
	case e.Type == element.TypeText && e.ContainerID != "":
		container, ok := index[e.ContainerID]
		if !ok {
			violations = append(violations,
				fmt.Sprintf("text %s references missing container %s", e.ID, e.ContainerID))
		} else if container.ContainedTextID != e.ID {
			violations = append(violations,
				fmt.Sprintf("text %s and shape %s disagree on containment", e.ID, e.ContainerID))
		}

	case e.IsShape() && e.ContainedTextID != "":
		text, ok := index[e.ContainedTextID]
		if !ok {
			violations = append(violations,
				fmt.Sprintf("shape %s references missing text %s", e.ID, e.ContainedTextID))
		} else if text.ContainerID != e.ID {
			violations = append(violations,
				fmt.Sprintf("shape %s and text %s disagree on containment", e.ID, e.ContainedTextID))
		}

	case e.IsConnector():
		for _, ep := range []struct{ role, id string }{
			{"start", e.StartID},
			{"end", e.EndID},
		} {
			if ep.id == "" {
				continue // already reported by Validate
			}
			peer, ok := index[ep.id]
			if !ok {
				violations = append(violations,
					fmt.Sprintf("arrow %s %s references missing element %s", e.ID, ep.role, ep.id))
			} else if peer.IsConnector() {
				violations = append(violations,
					fmt.Sprintf("arrow %s %s references connector %s", e.ID, ep.role, ep.id))
			}
		}
	}

	return violations
}

// detectGroupCycles walks the group nesting graph (child → parent edges)
// with white/gray/black coloring. A group containing itself, directly or
// through its ancestors, is reported once.
func detectGroupCycles(groups []Group, index map[string]*Group) []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(groups))
	var violations []string

	for i := range groups {
		start := groups[i].ID
		if color[start] != white {
			continue
		}

		id := start
		var chain []string
		for id != "" && color[id] == white {
			color[id] = gray
			chain = append(chain, id)
			g, ok := index[id]
			if !ok {
				break
			}
			if g.Parent != "" {
				if _, ok := index[g.Parent]; !ok {
					violations = append(violations,
						fmt.Sprintf("group %s references missing parent %s", id, g.Parent))
					break
				}
			}
			id = g.Parent
		}

		if id != "" && color[id] == gray {
			violations = append(violations, fmt.Sprintf("group %s contains itself", id))
		}
		for _, c := range chain {
			color[c] = black
		}
	}

	return violations
}
