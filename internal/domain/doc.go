// Package domain defines the core types for the crewmap relationship graph.
//
// The graph is a read-only projection of three kinds of records: alliances,
// sets and members. Each record becomes one node whose id encodes its kind
// and backing id as "<kind>-<id>".
//
// # Graph Types
//
// Node and Edge are the wire types served by GET /api/graph and consumed by
// the viewer. Node.Type drives both visibility filtering and the node palette.
// Edge.Color.Color is rendered verbatim.
//
// NodeRef is the parsed form of a node id. Navigation and detail lookups work
// on NodeRef values so that the "<kind>-<id>" string is only split in one
// place (ParseNodeRef).
//
// Toggles holds the two viewer checkboxes. Sets have no toggle and are always
// visible.
//
// # Records
//
// Alliance, Set and Member are the stored records behind the graph. A Dataset
// groups them for seeding, import and export.
package domain
