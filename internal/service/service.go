package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"crewmap/internal/codec"
	"crewmap/internal/domain"
	"crewmap/internal/repository"
	"crewmap/internal/validation"
)

// DefaultMemberLimit caps the member nodes included in the graph
const DefaultMemberLimit = 100

// Import strategies
const (
	StrategyMerge   = "merge"
	StrategyReplace = "replace"
)

// GraphService provides business logic for graph and record operations
type GraphService struct {
	repo        repository.Repository
	eventBus    *EventBus
	memberLimit int
}

// NewGraphService creates a new graph service
func NewGraphService(repo repository.Repository, eventBus *EventBus) *GraphService {
	return &GraphService{
		repo:        repo,
		eventBus:    eventBus,
		memberLimit: DefaultMemberLimit,
	}
}

// SetMemberLimit sets how many members the graph includes; n <= 0 means all
func (s *GraphService) SetMemberLimit(n int) {
	s.memberLimit = n
}

// GetGraph builds the /api/graph payload: alliances, then sets with their
// alliance, ally and enemy edges, then up to memberLimit members with their
// set and alliance edges
func (s *GraphService) GetGraph(ctx context.Context) (*domain.Graph, error) {
	graph := domain.NewGraph()

	alliances, err := s.repo.ListAlliances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alliances: %w", err)
	}
	for _, a := range alliances {
		graph.AddNode(domain.NewNode(domain.NodeKindAlliance, a.ID, a.Name, domain.AllianceNodeSize))
	}

	sets, err := s.repo.ListSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}
	for _, set := range sets {
		ref := domain.NodeRef{Kind: domain.NodeKindSet, ID: set.ID}
		graph.AddNode(domain.NewNode(domain.NodeKindSet, set.ID, set.PrimaryName, domain.SetNodeSize))

		if set.AllianceID != "" {
			graph.AddEdge(domain.NewEdge(ref, domain.NodeRef{Kind: domain.NodeKindAlliance, ID: set.AllianceID}, domain.EdgeTypeAllianceMember))
		}

		// one edge per pair, drawn from the smaller id
		for _, ally := range set.Allies {
			if set.ID < ally {
				graph.AddEdge(domain.NewEdge(ref, domain.NodeRef{Kind: domain.NodeKindSet, ID: ally}, domain.EdgeTypeAlly))
			}
		}
		for _, enemy := range set.Enemies {
			if set.ID < enemy {
				graph.AddEdge(domain.NewEdge(ref, domain.NodeRef{Kind: domain.NodeKindSet, ID: enemy}, domain.EdgeTypeEnemy))
			}
		}
	}

	members, err := s.repo.ListMembers(ctx, s.memberLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	for _, m := range members {
		ref := domain.NodeRef{Kind: domain.NodeKindMember, ID: m.ID}
		graph.AddNode(domain.NewNode(domain.NodeKindMember, m.ID, m.DisplayName(), domain.MemberNodeSize))

		if m.SetID != "" {
			graph.AddEdge(domain.NewEdge(ref, domain.NodeRef{Kind: domain.NodeKindSet, ID: m.SetID}, domain.EdgeTypeMemberOf))
		}
		if m.AllianceID != "" {
			graph.AddEdge(domain.NewEdge(ref, domain.NodeRef{Kind: domain.NodeKindAlliance, ID: m.AllianceID}, domain.EdgeTypeAllianceMember))
		}
	}

	return graph, nil
}

// AllianceDetail is an alliance with its sets
type AllianceDetail struct {
	Alliance *domain.Alliance `json:"alliance"`
	Sets     []domain.Set     `json:"sets"`
}

// SetDetail is a set with its alliance, members, allies and enemies
type SetDetail struct {
	Set      *domain.Set      `json:"set"`
	Alliance *domain.Alliance `json:"alliance,omitempty"`
	Members  []domain.Member  `json:"members"`
	Allies   []domain.Set     `json:"allies"`
	Enemies  []domain.Set     `json:"enemies"`
}

// MemberDetail is a member with its set and alliance
type MemberDetail struct {
	Member   *domain.Member   `json:"member"`
	Set      *domain.Set      `json:"set,omitempty"`
	Alliance *domain.Alliance `json:"alliance,omitempty"`
}

// GetAlliance returns an alliance and its sets
func (s *GraphService) GetAlliance(ctx context.Context, id string) (*AllianceDetail, error) {
	alliance, err := s.repo.GetAlliance(ctx, id)
	if err != nil {
		return nil, err
	}
	if alliance == nil {
		return nil, fmt.Errorf("alliance %s: %w", id, domain.ErrNotFound)
	}

	sets, err := s.repo.ListAllianceSets(ctx, id)
	if err != nil {
		return nil, err
	}

	return &AllianceDetail{Alliance: alliance, Sets: sets}, nil
}

// GetSet returns a set with its related records
func (s *GraphService) GetSet(ctx context.Context, id string) (*SetDetail, error) {
	set, err := s.repo.GetSet(ctx, id)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, fmt.Errorf("set %s: %w", id, domain.ErrNotFound)
	}

	detail := &SetDetail{
		Set:     set,
		Allies:  make([]domain.Set, 0, len(set.Allies)),
		Enemies: make([]domain.Set, 0, len(set.Enemies)),
	}

	if set.AllianceID != "" {
		if detail.Alliance, err = s.repo.GetAlliance(ctx, set.AllianceID); err != nil {
			return nil, err
		}
	}

	if detail.Members, err = s.repo.ListSetMembers(ctx, id); err != nil {
		return nil, err
	}

	for _, allyID := range set.Allies {
		ally, err := s.repo.GetSet(ctx, allyID)
		if err != nil {
			return nil, err
		}
		if ally != nil {
			detail.Allies = append(detail.Allies, *ally)
		}
	}
	for _, enemyID := range set.Enemies {
		enemy, err := s.repo.GetSet(ctx, enemyID)
		if err != nil {
			return nil, err
		}
		if enemy != nil {
			detail.Enemies = append(detail.Enemies, *enemy)
		}
	}

	return detail, nil
}

// GetMember returns a member with its set and alliance
func (s *GraphService) GetMember(ctx context.Context, id string) (*MemberDetail, error) {
	member, err := s.repo.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("member %s: %w", id, domain.ErrNotFound)
	}

	detail := &MemberDetail{Member: member}
	if member.SetID != "" {
		if detail.Set, err = s.repo.GetSet(ctx, member.SetID); err != nil {
			return nil, err
		}
	}
	if member.AllianceID != "" {
		if detail.Alliance, err = s.repo.GetAlliance(ctx, member.AllianceID); err != nil {
			return nil, err
		}
	}

	return detail, nil
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Alliances int    `json:"alliances"`
	Sets      int    `json:"sets"`
	Members   int    `json:"members"`
	Strategy  string `json:"strategy"`
}

// ImportReader parses r in the given format and imports it
func (s *GraphService) ImportReader(ctx context.Context, r io.Reader, format, strategy string) (*ImportResult, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}

	ds, err := c.Parse(r)
	if err != nil {
		return nil, err
	}

	return s.Import(ctx, ds, strategy)
}

// ImportFile imports a dataset file, picking the format from its extension
func (s *GraphService) ImportFile(ctx context.Context, path, strategy string) (*ImportResult, error) {
	format, err := codec.FormatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return s.ImportReader(ctx, f, format, strategy)
}

// ReloadFile replaces the stored dataset with the file's contents and
// publishes dataset_reloaded
func (s *GraphService) ReloadFile(ctx context.Context, path string) (*ImportResult, error) {
	result, err := s.ImportFile(ctx, path, StrategyReplace)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventDatasetReloaded,
		Payload: map[string]string{"path": path},
	})
	return result, nil
}

// Import validates a dataset and writes it with the given strategy
func (s *GraphService) Import(ctx context.Context, ds *domain.Dataset, strategy string) (*ImportResult, error) {
	if strategy == "" {
		strategy = StrategyMerge
	}

	if strategy != StrategyMerge && strategy != StrategyReplace {
		return nil, fmt.Errorf("invalid strategy %s, must be 'merge' or 'replace'", strategy)
	}

	if err := s.prepareDataset(ds); err != nil {
		return nil, err
	}

	if err := s.repo.ImportDataset(ctx, ds, strategy == StrategyReplace); err != nil {
		return nil, err
	}

	result := &ImportResult{
		Alliances: len(ds.Alliances),
		Sets:      len(ds.Sets),
		Members:   len(ds.Members),
		Strategy:  strategy,
	}

	s.eventBus.Publish(Event{
		Type:    EventDatasetImported,
		Payload: result,
	})

	return result, nil
}

// Export writes every record in the given format
func (s *GraphService) Export(ctx context.Context, w io.Writer, format string) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return err
	}

	ds, err := s.repo.ExportDataset(ctx)
	if err != nil {
		return err
	}

	return c.Export(ds, w)
}

// prepareDataset assigns missing ids, fills defaults and validates records
func (s *GraphService) prepareDataset(ds *domain.Dataset) error {
	for i := range ds.Alliances {
		a := &ds.Alliances[i]
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		a.ApplyDefaults()
		if err := validation.Struct(a); err != nil {
			return fmt.Errorf("alliance %d: %w", i, err)
		}
	}

	for i := range ds.Sets {
		set := &ds.Sets[i]
		if set.ID == "" {
			set.ID = uuid.NewString()
		}
		set.ApplyDefaults()
		if err := validation.Struct(set); err != nil {
			return fmt.Errorf("set %d: %w", i, err)
		}
	}

	for i := range ds.Members {
		m := &ds.Members[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.ApplyDefaults()
		if err := validation.Struct(m); err != nil {
			return fmt.Errorf("member %d: %w", i, err)
		}
	}

	return nil
}
