// ==============================================================================================
// FILE: resolver/dump.go
// ==============================================================================================
// PACKAGE: resolver
// PURPOSE: Debug support for the resolver's output. DumpLabels is reached
//          from `cmd/slang run --trace` (or --verbose) and the REPL's
//          .debug mode. Kept
//          separate from resolver.go so the resolution algorithm itself
//          stays free of presentation concerns.
// ==============================================================================================

package resolver

import (
	"fmt"
	"sort"
	"strings"
)

// DumpLabels renders the declaration-order function/class labels assigned
// during resolution, one per line, as "name\tuuid". Sorted by name first so
// the snapshot is stable even though declaration order is otherwise
// meaningful (ties broken by uuid).
func (r *Resolver) DumpLabels() string {
	labels := append([]FunctionLabel(nil), r.Labels...)
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].Name != labels[j].Name {
			return labels[i].Name < labels[j].Name
		}
		return labels[i].ID.String() < labels[j].ID.String()
	})

	var sb strings.Builder
	for _, l := range labels {
		fmt.Fprintf(&sb, "%s\t%s\n", l.Name, l.ID)
	}
	return sb.String()
}

// DumpDepths renders the resolved hop-count for every tracked expression as
// a sorted, deterministic list of "<expr> -> <depth>" lines, for use in
// golden tests over the side-table itself.
func (r *Resolution) DumpDepths() string {
	type entry struct {
		text  string
		depth int
	}
	var entries []entry
	for expr, depth := range *r {
		entries = append(entries, entry{text: expr.String(), depth: depth})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].text != entries[j].text {
			return entries[i].text < entries[j].text
		}
		return entries[i].depth < entries[j].depth
	})

	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s -> %d\n", e.text, e.depth)
	}
	return sb.String()
}
