// Package graph is the in-memory IR of a model: named Values (tensor slots)
// and Operations (computational steps) owned by a [Graph].
//
// # Node Model
//
// A [Node] is a tagged record holding either a [*Value] or an [*Operation].
// Callers that treat nodes uniformly use [Node.Name] and [Node.String];
// callers that need the specific kind use [Node.IsValue], [Node.Value] and
// [Node.Operation].
//
// Values carry a [Role] that only moves up the priority order
//
//	Internal < Input < Output < Initializer
//
// so repeated declarations of one name converge on the highest role seen, in
// any order. Initializer payloads are opaque bytes; two different payloads
// for one value are rejected.
//
// # Container
//
// A Graph stores nodes in an arena indexed by [NodeID]. Operations reference
// their inputs and outputs by ID, with [NoNode] marking an absent optional
// input. A name index gives constant-time lookup:
//
//	g := graph.New()
//	x, _ := g.AddValue("X", graph.RoleInput)
//	y, _ := g.AddValue("Y", graph.RoleInternal)
//	_, _ = g.AddOperation("relu0", graph.OpRelu,
//	    []graph.NodeID{x.ID()}, []graph.NodeID{y.ID()}, nil)
//
//	n, ok := g.FindByName("relu0")
//
// [Graph.AddValue] is get-or-create: asking again for "X" returns the same
// *Value. [Graph.AddOperation] always appends. Iteration ([Graph.Nodes])
// follows insertion order, which makes every rendering of a graph
// deterministic.
//
// # Serialization
//
// [ToDocument], [WriteJSON] and [ReadJSON] convert a graph to and from a
// node-link JSON document for use by other tools.
package graph
