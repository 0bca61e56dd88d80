package sqlite

import (
	"context"
	"database/sql"
	"reflect"
	"testing"
	"time"

	"crewmap/internal/domain"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertEqual fails the test if expected != actual
func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

// seedDataset returns two alliances, three sets and three members
func seedDataset() *domain.Dataset {
	return &domain.Dataset{
		Alliances: []domain.Alliance{
			{ID: "a1", Name: "West", Status: domain.StatusActive},
			{ID: "a2", Name: "East", Status: domain.StatusInactive, Bio: "old"},
		},
		Sets: []domain.Set{
			{ID: "s1", PrimaryName: "Eastside", Names: []string{"ES", "East"}, Status: domain.StatusActive, AllianceID: "a1", Allies: []string{"s2"}, Enemies: []string{"s3"}},
			{ID: "s2", PrimaryName: "Northside", Status: domain.StatusActive, AllianceID: "a1", Allies: []string{"s1"}},
			{ID: "s3", PrimaryName: "Southside", Status: domain.StatusExtinct, Territory: "south end", Colors: "red"},
		},
		Members: []domain.Member{
			{ID: "m1", FirstName: "Jay", LastName: "Cole", Status: domain.MemberAliveFree, Affiliation: domain.AffiliationSet, SetID: "s1"},
			{ID: "m2", Nicknames: []string{"Lil D"}, Status: domain.MemberDead, Affiliation: domain.AffiliationAlliance, AllianceID: "a2"},
			{ID: "m3", Status: domain.MemberUnknown, Affiliation: domain.AffiliationCivilian},
		},
	}
}

// ============================================================================
// Helper Function Tests
// ============================================================================

func TestNullToString(t *testing.T) {
	tests := []struct {
		name     string
		input    sql.NullString
		expected string
	}{
		{"valid string", sql.NullString{String: "hello", Valid: true}, "hello"},
		{"null string", sql.NullString{Valid: false}, ""},
		{"empty valid string", sql.NullString{String: "", Valid: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, tt.expected, nullToString(tt.input))
		})
	}
}

func TestStringsRoundTripThroughColumn(t *testing.T) {
	ns, err := marshalStrings(nil)
	assertNoError(t, err)
	if ns.Valid {
		t.Fatal("expected NULL for empty list")
	}

	ns, err = marshalStrings([]string{"a", "b"})
	assertNoError(t, err)
	values, err := unmarshalStrings(ns)
	assertNoError(t, err)
	assertEqual(t, []string{"a", "b"}, values)
}

func TestParseTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	assertEqual(t, now, parseTime(formatTime(now)))

	if !parseTime("garbage").IsZero() {
		t.Error("expected zero time for malformed value")
	}
}

// ============================================================================
// Repository Tests
// ============================================================================

func TestImportDataset(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	assertNoError(t, repo.ImportDataset(ctx, seedDataset(), false))

	alliances, err := repo.ListAlliances(ctx)
	assertNoError(t, err)
	assertEqual(t, 2, len(alliances))
	assertEqual(t, "West", alliances[0].Name)
	assertEqual(t, "old", alliances[1].Bio)

	sets, err := repo.ListSets(ctx)
	assertNoError(t, err)
	assertEqual(t, 3, len(sets))
	assertEqual(t, []string{"ES", "East"}, sets[0].Names)
	assertEqual(t, []string{"s2"}, sets[0].Allies)
	assertEqual(t, []string{"s3"}, sets[0].Enemies)
	assertEqual(t, []string{"s1"}, sets[1].Allies)
	assertEqual(t, []string{"s1"}, sets[2].Enemies)
	assertEqual(t, "south end", sets[2].Territory)

	members, err := repo.ListMembers(ctx, 0)
	assertNoError(t, err)
	assertEqual(t, 3, len(members))
	assertEqual(t, []string{"Lil D"}, members[1].Nicknames)
	assertEqual(t, "a2", members[1].AllianceID)
}

func TestImportDatasetStoresPairsOnce(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// s1 and s2 both list each other
	assertNoError(t, repo.ImportDataset(ctx, seedDataset(), false))

	var count int
	err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM set_allies`).Scan(&count)
	assertNoError(t, err)
	assertEqual(t, 1, count)
}

func TestImportDatasetReplace(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	assertNoError(t, repo.ImportDataset(ctx, seedDataset(), false))

	replacement := &domain.Dataset{
		Alliances: []domain.Alliance{{ID: "a9", Name: "Only", Status: domain.StatusActive}},
	}
	assertNoError(t, repo.ImportDataset(ctx, replacement, true))

	ds, err := repo.ExportDataset(ctx)
	assertNoError(t, err)
	assertEqual(t, 1, len(ds.Alliances))
	assertEqual(t, 0, len(ds.Sets))
	assertEqual(t, 0, len(ds.Members))
}

func TestImportDatasetRollsBackOnError(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bad := &domain.Dataset{
		Alliances: []domain.Alliance{{ID: "a1", Name: "West", Status: domain.StatusActive}},
		Sets:      []domain.Set{{ID: "s1", PrimaryName: "Eastside", Status: domain.StatusActive, AllianceID: "missing"}},
	}
	if err := repo.ImportDataset(ctx, bad, false); err == nil {
		t.Fatal("expected foreign key error")
	}

	alliances, err := repo.ListAlliances(ctx)
	assertNoError(t, err)
	assertEqual(t, 0, len(alliances))
}

func TestGetRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	assertNoError(t, repo.ImportDataset(ctx, seedDataset(), false))

	t.Run("existing", func(t *testing.T) {
		alliance, err := repo.GetAlliance(ctx, "a1")
		assertNoError(t, err)
		assertEqual(t, "West", alliance.Name)

		set, err := repo.GetSet(ctx, "s1")
		assertNoError(t, err)
		assertEqual(t, "Eastside", set.PrimaryName)
		assertEqual(t, []string{"s2"}, set.Allies)

		member, err := repo.GetMember(ctx, "m1")
		assertNoError(t, err)
		assertEqual(t, "Jay Cole", member.DisplayName())
		if member.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}
	})

	t.Run("missing returns nil", func(t *testing.T) {
		alliance, err := repo.GetAlliance(ctx, "nope")
		assertNoError(t, err)
		if alliance != nil {
			t.Errorf("expected nil alliance, got %+v", alliance)
		}

		set, err := repo.GetSet(ctx, "nope")
		assertNoError(t, err)
		if set != nil {
			t.Errorf("expected nil set, got %+v", set)
		}

		member, err := repo.GetMember(ctx, "nope")
		assertNoError(t, err)
		if member != nil {
			t.Errorf("expected nil member, got %+v", member)
		}
	})
}

func TestListRelated(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	assertNoError(t, repo.ImportDataset(ctx, seedDataset(), false))

	sets, err := repo.ListAllianceSets(ctx, "a1")
	assertNoError(t, err)
	assertEqual(t, 2, len(sets))

	members, err := repo.ListSetMembers(ctx, "s1")
	assertNoError(t, err)
	assertEqual(t, 1, len(members))
	assertEqual(t, "m1", members[0].ID)
}

func TestListMembersLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	assertNoError(t, repo.ImportDataset(ctx, seedDataset(), false))

	members, err := repo.ListMembers(ctx, 2)
	assertNoError(t, err)
	assertEqual(t, 2, len(members))
	assertEqual(t, "m1", members[0].ID)
	assertEqual(t, "m2", members[1].ID)
}

func TestUpsertUpdatesExisting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	assertNoError(t, repo.ImportDataset(ctx, seedDataset(), false))

	original, err := repo.GetSet(ctx, "s3")
	assertNoError(t, err)

	original.PrimaryName = "Southside Crew"
	original.Allies = []string{"s2"}
	assertNoError(t, repo.UpsertSet(ctx, original))

	updated, err := repo.GetSet(ctx, "s3")
	assertNoError(t, err)
	assertEqual(t, "Southside Crew", updated.PrimaryName)
	assertEqual(t, []string{"s2"}, updated.Allies)
	assertEqual(t, []string{"s1"}, updated.Enemies)

	sets, err := repo.ListSets(ctx)
	assertNoError(t, err)
	assertEqual(t, 3, len(sets))

	member := &domain.Member{ID: "m4", FirstName: "New", Status: domain.MemberUnknown, Affiliation: domain.AffiliationUnknown}
	assertNoError(t, repo.UpsertMember(ctx, member))
	got, err := repo.GetMember(ctx, "m4")
	assertNoError(t, err)
	assertEqual(t, "New", got.FirstName)

	alliance := &domain.Alliance{ID: "a1", Name: "West Coast", Status: domain.StatusActive}
	assertNoError(t, repo.UpsertAlliance(ctx, alliance))
	gotAlliance, err := repo.GetAlliance(ctx, "a1")
	assertNoError(t, err)
	assertEqual(t, "West Coast", gotAlliance.Name)
}

func TestLikePatternEscapes(t *testing.T) {
	assertEqual(t, `%50\%\_off\\%`, likePattern(`50%_off\`))
}

func TestSearchRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	assertNoError(t, repo.ImportDataset(ctx, seedDataset(), false))

	t.Run("alliances by name or bio", func(t *testing.T) {
		alliances, err := repo.SearchAlliances(ctx, "OLD", 0)
		assertNoError(t, err)
		assertEqual(t, 1, len(alliances))
		assertEqual(t, "a2", alliances[0].ID)
	})

	t.Run("empty query lists everything", func(t *testing.T) {
		alliances, err := repo.SearchAlliances(ctx, "  ", 0)
		assertNoError(t, err)
		assertEqual(t, 2, len(alliances))
	})

	t.Run("sets by other name and territory", func(t *testing.T) {
		sets, err := repo.SearchSets(ctx, "es", 0)
		assertNoError(t, err)
		assertEqual(t, 1, len(sets))
		assertEqual(t, "s1", sets[0].ID)
		assertEqual(t, []string{"s2"}, sets[0].Allies)

		sets, err = repo.SearchSets(ctx, "south end", 0)
		assertNoError(t, err)
		assertEqual(t, 1, len(sets))
		assertEqual(t, "s3", sets[0].ID)
	})

	t.Run("members by nickname", func(t *testing.T) {
		members, err := repo.SearchMembers(ctx, "lil", 0)
		assertNoError(t, err)
		assertEqual(t, 1, len(members))
		assertEqual(t, "m2", members[0].ID)
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		members, err := repo.SearchMembers(ctx, "%", 0)
		assertNoError(t, err)
		assertEqual(t, 0, len(members))
	})

	t.Run("limit", func(t *testing.T) {
		sets, err := repo.SearchSets(ctx, "side", 2)
		assertNoError(t, err)
		assertEqual(t, 2, len(sets))
	})
}

func TestReplaceSetDropsOldPairs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	assertNoError(t, repo.ImportDataset(ctx, seedDataset(), false))

	set, err := repo.GetSet(ctx, "s1")
	assertNoError(t, err)
	set.Allies = nil
	set.Enemies = []string{"s2"}
	assertNoError(t, repo.ReplaceSet(ctx, set))

	got, err := repo.GetSet(ctx, "s1")
	assertNoError(t, err)
	if len(got.Allies) != 0 {
		t.Errorf("expected no allies, got %v", got.Allies)
	}
	assertEqual(t, []string{"s2"}, got.Enemies)

	other, err := repo.GetSet(ctx, "s3")
	assertNoError(t, err)
	if len(other.Enemies) != 0 {
		t.Errorf("expected s3 to lose its enemy, got %v", other.Enemies)
	}
}

func TestDeleteRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	assertNoError(t, repo.ImportDataset(ctx, seedDataset(), false))

	deleted, err := repo.DeleteSet(ctx, "s1")
	assertNoError(t, err)
	assertEqual(t, true, deleted)

	member, err := repo.GetMember(ctx, "m1")
	assertNoError(t, err)
	assertEqual(t, "", member.SetID)

	s2, err := repo.GetSet(ctx, "s2")
	assertNoError(t, err)
	if len(s2.Allies) != 0 {
		t.Errorf("expected pairs to cascade, got allies %v", s2.Allies)
	}

	deleted, err = repo.DeleteAlliance(ctx, "a2")
	assertNoError(t, err)
	assertEqual(t, true, deleted)
	m2, err := repo.GetMember(ctx, "m2")
	assertNoError(t, err)
	assertEqual(t, "", m2.AllianceID)

	deleted, err = repo.DeleteMember(ctx, "m3")
	assertNoError(t, err)
	assertEqual(t, true, deleted)

	deleted, err = repo.DeleteMember(ctx, "m3")
	assertNoError(t, err)
	assertEqual(t, false, deleted)

	counts, err := repo.CountRecords(ctx)
	assertNoError(t, err)
	assertEqual(t, domain.RecordCounts{Alliances: 1, Sets: 2, Members: 2}, *counts)
	assertEqual(t, 5, counts.Total())
}
