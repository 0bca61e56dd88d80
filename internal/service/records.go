package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"crewmap/internal/domain"
	"crewmap/internal/validation"
)

// DefaultSearchLimit caps search results when no smaller limit is asked for
const DefaultSearchLimit = 100

// Record kinds carried by record_changed events
const (
	RecordAlliance = "alliance"
	RecordSet      = "set"
	RecordMember   = "member"
)

// Record change actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordChange is the payload of a record_changed event
type RecordChange struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Action string `json:"action"`
}

func searchLimit(limit int) int {
	if limit <= 0 || limit > DefaultSearchLimit {
		return DefaultSearchLimit
	}
	return limit
}

// ============================================================================
// Search
// ============================================================================

// SearchAlliances returns alliances whose name or bio contains query
func (s *GraphService) SearchAlliances(ctx context.Context, query string, limit int) ([]domain.Alliance, error) {
	return s.repo.SearchAlliances(ctx, query, searchLimit(limit))
}

// SearchSets returns sets whose names, territory or bio contain query
func (s *GraphService) SearchSets(ctx context.Context, query string, limit int) ([]domain.Set, error) {
	return s.repo.SearchSets(ctx, query, searchLimit(limit))
}

// SearchMembers returns members whose names, nicknames or bio contain query
func (s *GraphService) SearchMembers(ctx context.Context, query string, limit int) ([]domain.Member, error) {
	return s.repo.SearchMembers(ctx, query, searchLimit(limit))
}

// CountRecords returns the number of stored records of each kind
func (s *GraphService) CountRecords(ctx context.Context) (*domain.RecordCounts, error) {
	return s.repo.CountRecords(ctx)
}

// ============================================================================
// Alliances
// ============================================================================

// CreateAlliance stores a new alliance, assigning an id when it has none
func (s *GraphService) CreateAlliance(ctx context.Context, a *domain.Alliance) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	} else if existing, err := s.repo.GetAlliance(ctx, a.ID); err != nil {
		return err
	} else if existing != nil {
		return fmt.Errorf("alliance %s: %w", a.ID, domain.ErrConflict)
	}

	if err := s.saveAlliance(ctx, a); err != nil {
		return err
	}
	s.publishChange(RecordAlliance, a.ID, ActionCreated)
	return nil
}

// UpdateAlliance loads an alliance, lets apply modify it and stores the result.
// The id and creation time cannot be changed.
func (s *GraphService) UpdateAlliance(ctx context.Context, id string, apply func(*domain.Alliance) error) (*domain.Alliance, error) {
	a, err := s.repo.GetAlliance(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("alliance %s: %w", id, domain.ErrNotFound)
	}

	createdAt := a.CreatedAt
	if err := apply(a); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	a.ID, a.CreatedAt = id, createdAt

	if err := s.saveAlliance(ctx, a); err != nil {
		return nil, err
	}
	s.publishChange(RecordAlliance, id, ActionUpdated)
	return a, nil
}

// DeleteAlliance removes an alliance; its sets and members keep no reference
func (s *GraphService) DeleteAlliance(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteAlliance(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("alliance %s: %w", id, domain.ErrNotFound)
	}
	s.publishChange(RecordAlliance, id, ActionDeleted)
	return nil
}

func (s *GraphService) saveAlliance(ctx context.Context, a *domain.Alliance) error {
	a.ApplyDefaults()
	if err := validation.Struct(a); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	return s.repo.UpsertAlliance(ctx, a)
}

// ============================================================================
// Sets
// ============================================================================

// CreateSet stores a new set with its ally and enemy pairs
func (s *GraphService) CreateSet(ctx context.Context, set *domain.Set) error {
	if set.ID == "" {
		set.ID = uuid.NewString()
	} else if existing, err := s.repo.GetSet(ctx, set.ID); err != nil {
		return err
	} else if existing != nil {
		return fmt.Errorf("set %s: %w", set.ID, domain.ErrConflict)
	}

	if err := s.saveSet(ctx, set); err != nil {
		return err
	}
	s.publishChange(RecordSet, set.ID, ActionCreated)
	return nil
}

// UpdateSet loads a set, lets apply modify it and stores the result. The
// set's ally and enemy lists replace every pair it was part of.
func (s *GraphService) UpdateSet(ctx context.Context, id string, apply func(*domain.Set) error) (*domain.Set, error) {
	set, err := s.repo.GetSet(ctx, id)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, fmt.Errorf("set %s: %w", id, domain.ErrNotFound)
	}

	createdAt := set.CreatedAt
	if err := apply(set); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	set.ID, set.CreatedAt = id, createdAt

	if err := s.saveSet(ctx, set); err != nil {
		return nil, err
	}
	s.publishChange(RecordSet, id, ActionUpdated)
	return set, nil
}

// DeleteSet removes a set and its pairs; its members keep no reference
func (s *GraphService) DeleteSet(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteSet(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("set %s: %w", id, domain.ErrNotFound)
	}
	s.publishChange(RecordSet, id, ActionDeleted)
	return nil
}

func (s *GraphService) saveSet(ctx context.Context, set *domain.Set) error {
	set.ApplyDefaults()
	if err := validation.Struct(set); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	if err := s.checkAlliance(ctx, set.AllianceID); err != nil {
		return err
	}
	for _, ids := range [][]string{set.Allies, set.Enemies} {
		for _, other := range ids {
			if other == set.ID {
				return fmt.Errorf("%w: set %s cannot pair with itself", domain.ErrInvalidRecord, other)
			}
			if err := s.checkSet(ctx, other); err != nil {
				return err
			}
		}
	}
	return s.repo.ReplaceSet(ctx, set)
}

// ============================================================================
// Members
// ============================================================================

// CreateMember stores a new member
func (s *GraphService) CreateMember(ctx context.Context, m *domain.Member) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	} else if existing, err := s.repo.GetMember(ctx, m.ID); err != nil {
		return err
	} else if existing != nil {
		return fmt.Errorf("member %s: %w", m.ID, domain.ErrConflict)
	}

	if err := s.saveMember(ctx, m); err != nil {
		return err
	}
	s.publishChange(RecordMember, m.ID, ActionCreated)
	return nil
}

// UpdateMember loads a member, lets apply modify it and stores the result
func (s *GraphService) UpdateMember(ctx context.Context, id string, apply func(*domain.Member) error) (*domain.Member, error) {
	m, err := s.repo.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("member %s: %w", id, domain.ErrNotFound)
	}

	createdAt := m.CreatedAt
	if err := apply(m); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	m.ID, m.CreatedAt = id, createdAt

	if err := s.saveMember(ctx, m); err != nil {
		return nil, err
	}
	s.publishChange(RecordMember, id, ActionUpdated)
	return m, nil
}

// DeleteMember removes a member
func (s *GraphService) DeleteMember(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteMember(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("member %s: %w", id, domain.ErrNotFound)
	}
	s.publishChange(RecordMember, id, ActionDeleted)
	return nil
}

func (s *GraphService) saveMember(ctx context.Context, m *domain.Member) error {
	m.ApplyDefaults()
	if err := validation.Struct(m); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	if err := s.checkSet(ctx, m.SetID); err != nil {
		return err
	}
	if err := s.checkAlliance(ctx, m.AllianceID); err != nil {
		return err
	}
	return s.repo.UpsertMember(ctx, m)
}

// ============================================================================
// Helpers
// ============================================================================

// checkAlliance fails with ErrInvalidReference when id is set but unknown
func (s *GraphService) checkAlliance(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	a, err := s.repo.GetAlliance(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("alliance %s: %w", id, domain.ErrInvalidReference)
	}
	return nil
}

// checkSet fails with ErrInvalidReference when id is set but unknown
func (s *GraphService) checkSet(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	set, err := s.repo.GetSet(ctx, id)
	if err != nil {
		return err
	}
	if set == nil {
		return fmt.Errorf("set %s: %w", id, domain.ErrInvalidReference)
	}
	return nil
}

func (s *GraphService) publishChange(kind, id, action string) {
	s.eventBus.Publish(Event{
		Type:    EventRecordChanged,
		Payload: RecordChange{Kind: kind, ID: id, Action: action},
	})
}
