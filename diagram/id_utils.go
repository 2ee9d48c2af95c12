package diagram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NodeIDPrefix prefixes the sequence number in synthetic node ids.
const NodeIDPrefix = "node_"

// NodeID formats the synthetic id for sequence number n.
func NodeID(n int) string {
	return fmt.Sprintf("%s%d", NodeIDPrefix, n)
}

// MaxNodeSequence returns the highest sequence number among ids of the form
// node_<n>. Ids of any other form are ignored. Returns 0 when none match.
func MaxNodeSequence(nodes []Node) int {
	maxSeq := 0
	for _, n := range nodes {
		rest, ok := strings.CutPrefix(n.ID, NodeIDPrefix)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(rest)
		if err != nil || seq < 0 {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq
}

// NewEdgeID returns a collision-resistant edge id.
func NewEdgeID() string {
	return "edge_" + uuid.NewString()
}

// NormalizeEdges prepares edges received from a caller for the interactive
// editor. The input is not modified. Applying it twice yields the same result
// as applying it once:
//   - an edge without a renderer type is forced onto the interactive renderer
//     with the default stroke style;
//   - the routing mode is normalised, unknown values becoming orthogonal;
//   - missing or duplicate ids are replaced.
func NormalizeEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	seen := make(map[string]bool, len(edges))

	for i, e := range edges {
		e = e.Clone()
		if e.Type == "" {
			e.Type = InteractiveEdgeType
			if e.Style == nil {
				style := DefaultEdgeStyle
				e.Style = &style
			}
		}
		e.Mode = ParseRoutingMode(string(e.Mode))
		if e.ID == "" || seen[e.ID] {
			e.ID = NewEdgeID()
		}
		seen[e.ID] = true
		out[i] = e
	}
	return out
}
