package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NodeRef identifies the record behind a node
type NodeRef struct {
	Kind NodeKind
	ID   string
}

// ParseNodeRef splits a node id of the form "<kind>-<id>".
// Only the first '-' separates the kind, so UUID backing ids are preserved.
func ParseNodeRef(s string) (NodeRef, error) {
	kind, id, ok := strings.Cut(s, "-")
	if !ok || id == "" {
		return NodeRef{}, fmt.Errorf("%w: %q", ErrInvalidNodeRef, s)
	}
	k := NodeKind(kind)
	if !k.Known() {
		return NodeRef{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return NodeRef{Kind: k, ID: id}, nil
}

// String returns the "<kind>-<id>" form
func (r NodeRef) String() string {
	return string(r.Kind) + "-" + r.ID
}

// DetailPath returns the detail page path for the referenced record
func (r NodeRef) DetailPath() (string, bool) {
	switch r.Kind {
	case NodeKindMember:
		return "/members/" + r.ID, true
	case NodeKindSet:
		return "/sets/" + r.ID, true
	case NodeKindAlliance:
		return "/alliances/" + r.ID, true
	}
	return "", false
}

// MarshalJSON encodes the ref as its string form
func (r NodeRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a "<kind>-<id>" string
func (r *NodeRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ref, err := ParseNodeRef(s)
	if err != nil {
		return err
	}
	*r = ref
	return nil
}
