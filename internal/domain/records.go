package domain

import (
	"strings"
	"time"
)

// RecordStatus is the lifecycle status of a set or alliance
type RecordStatus string

const (
	StatusActive   RecordStatus = "ACTIVE"
	StatusInactive RecordStatus = "INACTIVE"
	StatusExtinct  RecordStatus = "EXTINCT"
)

// MemberStatus is the status of a member
type MemberStatus string

const (
	MemberAliveFree     MemberStatus = "ALIVE_FREE"
	MemberAliveLockedUp MemberStatus = "ALIVE_LOCKED_UP"
	MemberDead          MemberStatus = "DEAD"
	MemberUnknown       MemberStatus = "UNKNOWN"
)

// Affiliation describes how a member is attached to the graph
type Affiliation string

const (
	AffiliationSet      Affiliation = "SET"
	AffiliationAlliance Affiliation = "ALLIANCE"
	AffiliationCivilian Affiliation = "CIVILIAN"
	AffiliationUnknown  Affiliation = "UNKNOWN"
)

// Alliance is a group of sets
type Alliance struct {
	ID        string       `json:"id"`
	Name      string       `json:"name" validate:"required,max=200"`
	Status    RecordStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE EXTINCT"`
	Bio       string       `json:"bio,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Set is a single crew, optionally part of an alliance
type Set struct {
	ID          string       `json:"id"`
	PrimaryName string       `json:"primary_name" validate:"required,max=200"`
	Names       []string     `json:"names,omitempty"`
	Status      RecordStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE EXTINCT"`
	Territory   string       `json:"territory,omitempty"`
	Colors      string       `json:"colors,omitempty"`
	Bio         string       `json:"bio,omitempty"`
	AllianceID  string       `json:"alliance_id,omitempty"`
	Allies      []string     `json:"allies,omitempty"`
	Enemies     []string     `json:"enemies,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Member is a person, usually affiliated with a set or alliance
type Member struct {
	ID          string       `json:"id"`
	FirstName   string       `json:"first_name,omitempty" validate:"max=100"`
	LastName    string       `json:"last_name,omitempty" validate:"max=100"`
	Nicknames   []string     `json:"nicknames,omitempty"`
	Status      MemberStatus `json:"status" validate:"omitempty,oneof=ALIVE_FREE ALIVE_LOCKED_UP DEAD UNKNOWN"`
	Affiliation Affiliation  `json:"affiliation" validate:"omitempty,oneof=SET ALLIANCE CIVILIAN UNKNOWN"`
	SetID       string       `json:"set_id,omitempty"`
	AllianceID  string       `json:"alliance_id,omitempty"`
	Bio         string       `json:"bio,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// DisplayName returns "First Last" when a name is known,
// otherwise the first nickname, otherwise "Unknown"
func (m *Member) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(m.FirstName) + " " + strings.TrimSpace(m.LastName))
	if name != "" {
		return name
	}
	for _, nick := range m.Nicknames {
		if nick = strings.TrimSpace(nick); nick != "" {
			return nick
		}
	}
	return "Unknown"
}

// ApplyDefaults fills empty enum fields
func (a *Alliance) ApplyDefaults() {
	if a.Status == "" {
		a.Status = StatusActive
	}
}

// ApplyDefaults fills empty enum fields
func (s *Set) ApplyDefaults() {
	if s.Status == "" {
		s.Status = StatusActive
	}
}

// ApplyDefaults fills empty enum fields
func (m *Member) ApplyDefaults() {
	if m.Status == "" {
		m.Status = MemberUnknown
	}
	if m.Affiliation == "" {
		switch {
		case m.SetID != "":
			m.Affiliation = AffiliationSet
		case m.AllianceID != "":
			m.Affiliation = AffiliationAlliance
		default:
			m.Affiliation = AffiliationUnknown
		}
	}
}

// OrderedPair returns a and b sorted so that the first is smaller.
// Ally and enemy relations are stored once per pair in this order.
func OrderedPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
