package repository

import (
	"context"

	"crewmap/internal/domain"
)

// Repository defines the interface for record data access.
//
// Search methods match query as a case-insensitive substring of names and
// bios; an empty query lists everything and a limit <= 0 returns every
// match. Delete methods report false when the id does not exist.
type Repository interface {
	// Alliances
	ListAlliances(ctx context.Context) ([]domain.Alliance, error)
	GetAlliance(ctx context.Context, id string) (*domain.Alliance, error)
	UpsertAlliance(ctx context.Context, alliance *domain.Alliance) error
	SearchAlliances(ctx context.Context, query string, limit int) ([]domain.Alliance, error)
	DeleteAlliance(ctx context.Context, id string) (bool, error)

	// Sets, with ally and enemy ids populated
	ListSets(ctx context.Context) ([]domain.Set, error)
	GetSet(ctx context.Context, id string) (*domain.Set, error)
	ListAllianceSets(ctx context.Context, allianceID string) ([]domain.Set, error)
	UpsertSet(ctx context.Context, set *domain.Set) error
	// ReplaceSet upserts a set and makes its stored pairs match Allies and Enemies
	ReplaceSet(ctx context.Context, set *domain.Set) error
	SearchSets(ctx context.Context, query string, limit int) ([]domain.Set, error)
	DeleteSet(ctx context.Context, id string) (bool, error)

	// Members. A limit <= 0 returns every member.
	ListMembers(ctx context.Context, limit int) ([]domain.Member, error)
	GetMember(ctx context.Context, id string) (*domain.Member, error)
	ListSetMembers(ctx context.Context, setID string) ([]domain.Member, error)
	UpsertMember(ctx context.Context, member *domain.Member) error
	SearchMembers(ctx context.Context, query string, limit int) ([]domain.Member, error)
	DeleteMember(ctx context.Context, id string) (bool, error)

	// Bulk operations
	CountRecords(ctx context.Context) (*domain.RecordCounts, error)
	ImportDataset(ctx context.Context, ds *domain.Dataset, replace bool) error
	ExportDataset(ctx context.Context) (*domain.Dataset, error)

	// Close releases resources
	Close() error
}
