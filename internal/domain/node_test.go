package domain

import (
	"errors"
	"testing"
)

func TestNewNode(t *testing.T) {
	t.Run("encodes kind into id", func(t *testing.T) {
		node := NewNode(NodeKindSet, "42", "Eastside", SetNodeSize)

		if node.ID != "set-42" {
			t.Errorf("expected ID 'set-42', got %s", node.ID)
		}
		if node.Type != NodeKindSet {
			t.Errorf("expected type %s, got %s", NodeKindSet, node.Type)
		}
		if node.Group != "set" {
			t.Errorf("expected group 'set', got %s", node.Group)
		}
		if node.Size != SetNodeSize {
			t.Errorf("expected size %d, got %v", SetNodeSize, node.Size)
		}
	})
}

func TestToggleShows(t *testing.T) {
	tests := []struct {
		name    string
		toggles Toggles
		kind    NodeKind
		want    bool
	}{
		{"member shown", Toggles{ShowMembers: true}, NodeKindMember, true},
		{"member hidden", Toggles{ShowAlliances: true}, NodeKindMember, false},
		{"alliance shown", Toggles{ShowAlliances: true}, NodeKindAlliance, true},
		{"alliance hidden", Toggles{ShowMembers: true}, NodeKindAlliance, false},
		{"set with everything off", Toggles{}, NodeKindSet, true},
		{"unknown kind passes", Toggles{}, NodeKind("vehicle"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.toggles.Shows(tt.kind); got != tt.want {
				t.Errorf("Shows(%s) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestParseNodeRef(t *testing.T) {
	tests := []struct {
		input   string
		want    NodeRef
		wantErr error
	}{
		{"set-42", NodeRef{Kind: NodeKindSet, ID: "42"}, nil},
		{"member-7", NodeRef{Kind: NodeKindMember, ID: "7"}, nil},
		{"alliance-1", NodeRef{Kind: NodeKindAlliance, ID: "1"}, nil},
		{
			"member-0b6f1c9e-2d1a-4e4b-9d8e-3f5a6b7c8d9e",
			NodeRef{Kind: NodeKindMember, ID: "0b6f1c9e-2d1a-4e4b-9d8e-3f5a6b7c8d9e"},
			nil,
		},
		{"foo-9", NodeRef{}, ErrUnknownKind},
		{"set-", NodeRef{}, ErrInvalidNodeRef},
		{"set", NodeRef{}, ErrInvalidNodeRef},
		{"", NodeRef{}, ErrInvalidNodeRef},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNodeRef(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseNodeRef(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestNodeRefDetailPath(t *testing.T) {
	tests := []struct {
		ref    NodeRef
		path   string
		wantOK bool
	}{
		{NodeRef{Kind: NodeKindSet, ID: "42"}, "/sets/42", true},
		{NodeRef{Kind: NodeKindMember, ID: "7"}, "/members/7", true},
		{NodeRef{Kind: NodeKindAlliance, ID: "3"}, "/alliances/3", true},
		{NodeRef{Kind: "foo", ID: "9"}, "", false},
	}

	for _, tt := range tests {
		path, ok := tt.ref.DetailPath()
		if ok != tt.wantOK || path != tt.path {
			t.Errorf("DetailPath(%+v) = (%q, %v), want (%q, %v)", tt.ref, path, ok, tt.path, tt.wantOK)
		}
	}
}

func TestNodeRefJSON(t *testing.T) {
	var ref NodeRef
	if err := ref.UnmarshalJSON([]byte(`"alliance-5"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Kind != NodeKindAlliance || ref.ID != "5" {
		t.Errorf("unexpected ref %+v", ref)
	}

	if err := ref.UnmarshalJSON([]byte(`"foo-5"`)); err == nil {
		t.Error("expected error for unknown kind")
	}
}
