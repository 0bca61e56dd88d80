package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"crewmap/internal/domain"
)

// ============================================================================
// Alliances
// ============================================================================

// ListAlliances returns all alliances in insertion order
func (r *Repository) ListAlliances(ctx context.Context) ([]domain.Alliance, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+allianceColumns+` FROM alliances ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query alliances: %w", err)
	}
	defer rows.Close()

	alliances := make([]domain.Alliance, 0)
	for rows.Next() {
		var row allianceRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan alliance: %w", err)
		}
		alliances = append(alliances, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alliances: %w", err)
	}

	return alliances, nil
}

// GetAlliance returns an alliance by id, or nil if it does not exist
func (r *Repository) GetAlliance(ctx context.Context, id string) (*domain.Alliance, error) {
	var row allianceRow
	err := r.db.QueryRowContext(ctx, `SELECT `+allianceColumns+` FROM alliances WHERE id = ?`, id).Scan(row.scanArgs()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alliance: %w", err)
	}

	alliance := row.toDomain()
	return &alliance, nil
}

// UpsertAlliance inserts or updates an alliance
func (r *Repository) UpsertAlliance(ctx context.Context, alliance *domain.Alliance) error {
	return upsertAlliance(ctx, r.db, alliance)
}

func upsertAlliance(ctx context.Context, q queryer, a *domain.Alliance) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	_, err := q.ExecContext(ctx, `
		INSERT INTO alliances (id, name, status, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			status = excluded.status,
			bio = excluded.bio,
			updated_at = excluded.updated_at
	`, a.ID, a.Name, string(a.Status), stringToNull(a.Bio), formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert alliance %s: %w", a.ID, err)
	}
	return nil
}

// ============================================================================
// Sets
// ============================================================================

// ListSets returns all sets in insertion order with allies and enemies
func (r *Repository) ListSets(ctx context.Context) ([]domain.Set, error) {
	return r.querySets(ctx, `SELECT `+setColumns+` FROM sets ORDER BY rowid`)
}

// ListAllianceSets returns the sets belonging to an alliance
func (r *Repository) ListAllianceSets(ctx context.Context, allianceID string) ([]domain.Set, error) {
	return r.querySets(ctx, `SELECT `+setColumns+` FROM sets WHERE alliance_id = ? ORDER BY rowid`, allianceID)
}

// GetSet returns a set by id, or nil if it does not exist
func (r *Repository) GetSet(ctx context.Context, id string) (*domain.Set, error) {
	sets, err := r.querySets(ctx, `SELECT `+setColumns+` FROM sets WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, nil
	}
	return &sets[0], nil
}

func (r *Repository) querySets(ctx context.Context, query string, args ...any) ([]domain.Set, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sets: %w", err)
	}
	defer rows.Close()

	sets := make([]domain.Set, 0)
	for rows.Next() {
		var row setRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan set: %w", err)
		}
		set, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sets: %w", err)
	}
	rows.Close()

	if len(sets) == 0 {
		return sets, nil
	}

	allies, err := r.loadPairs(ctx, "set_allies")
	if err != nil {
		return nil, err
	}
	enemies, err := r.loadPairs(ctx, "set_enemies")
	if err != nil {
		return nil, err
	}

	for i := range sets {
		sets[i].Allies = allies[sets[i].ID]
		sets[i].Enemies = enemies[sets[i].ID]
	}

	return sets, nil
}

// loadPairs returns, for every set id, the ids it is paired with in table
func (r *Repository) loadPairs(ctx context.Context, table string) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT set_a_id, set_b_id FROM `+table+` ORDER BY set_a_id, set_b_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	pairs := make(map[string][]string)
	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		pairs[a] = append(pairs[a], b)
		pairs[b] = append(pairs[b], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}

	return pairs, nil
}

// UpsertSet inserts or updates a set and adds its ally and enemy pairs.
// Existing pairs are kept.
func (r *Repository) UpsertSet(ctx context.Context, set *domain.Set) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertSet(ctx, tx, set); err != nil {
		return err
	}
	if err := insertPairs(ctx, tx, set); err != nil {
		return err
	}

	return tx.Commit()
}

func upsertSet(ctx context.Context, q queryer, s *domain.Set) error {
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	names, err := marshalStrings(s.Names)
	if err != nil {
		return fmt.Errorf("failed to marshal names: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO sets (id, primary_name, names, status, territory, colors, bio, alliance_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			primary_name = excluded.primary_name,
			names = excluded.names,
			status = excluded.status,
			territory = excluded.territory,
			colors = excluded.colors,
			bio = excluded.bio,
			alliance_id = excluded.alliance_id,
			updated_at = excluded.updated_at
	`, s.ID, s.PrimaryName, names, string(s.Status), stringToNull(s.Territory), stringToNull(s.Colors),
		stringToNull(s.Bio), stringToNull(s.AllianceID), formatTime(s.CreatedAt), formatTime(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert set %s: %w", s.ID, err)
	}
	return nil
}

// insertPairs stores the set's allies and enemies once per unordered pair
func insertPairs(ctx context.Context, q queryer, s *domain.Set) error {
	for _, rel := range []struct {
		table string
		ids   []string
	}{
		{"set_allies", s.Allies},
		{"set_enemies", s.Enemies},
	} {
		for _, other := range rel.ids {
			if other == s.ID {
				continue
			}
			a, b := domain.OrderedPair(s.ID, other)
			if _, err := q.ExecContext(ctx, `INSERT OR IGNORE INTO `+rel.table+` (set_a_id, set_b_id) VALUES (?, ?)`, a, b); err != nil {
				return fmt.Errorf("failed to insert %s pair %s/%s: %w", rel.table, a, b, err)
			}
		}
	}
	return nil
}

// ============================================================================
// Members
// ============================================================================

// ListMembers returns members in insertion order, at most limit when limit > 0
func (r *Repository) ListMembers(ctx context.Context, limit int) ([]domain.Member, error) {
	if limit > 0 {
		return r.queryMembers(ctx, `SELECT `+memberColumns+` FROM members ORDER BY rowid LIMIT ?`, limit)
	}
	return r.queryMembers(ctx, `SELECT `+memberColumns+` FROM members ORDER BY rowid`)
}

// ListSetMembers returns the members of a set
func (r *Repository) ListSetMembers(ctx context.Context, setID string) ([]domain.Member, error) {
	return r.queryMembers(ctx, `SELECT `+memberColumns+` FROM members WHERE set_id = ? ORDER BY rowid`, setID)
}

// GetMember returns a member by id, or nil if it does not exist
func (r *Repository) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	members, err := r.queryMembers(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}
	return &members[0], nil
}

func (r *Repository) queryMembers(ctx context.Context, query string, args ...any) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := make([]domain.Member, 0)
	for rows.Next() {
		var row memberRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		member, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}

// UpsertMember inserts or updates a member
func (r *Repository) UpsertMember(ctx context.Context, member *domain.Member) error {
	return upsertMember(ctx, r.db, member)
}

func upsertMember(ctx context.Context, q queryer, m *domain.Member) error {
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	nicknames, err := marshalStrings(m.Nicknames)
	if err != nil {
		return fmt.Errorf("failed to marshal nicknames: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO members (id, first_name, last_name, nicknames, status, affiliation, set_id, alliance_id, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			nicknames = excluded.nicknames,
			status = excluded.status,
			affiliation = excluded.affiliation,
			set_id = excluded.set_id,
			alliance_id = excluded.alliance_id,
			bio = excluded.bio,
			updated_at = excluded.updated_at
	`, m.ID, stringToNull(m.FirstName), stringToNull(m.LastName), nicknames, string(m.Status), string(m.Affiliation),
		stringToNull(m.SetID), stringToNull(m.AllianceID), stringToNull(m.Bio), formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert member %s: %w", m.ID, err)
	}
	return nil
}

// ============================================================================
// Bulk Operations
// ============================================================================

// ImportDataset writes a dataset in one transaction. With replace set, all
// existing records are removed first.
func (r *Repository) ImportDataset(ctx context.Context, ds *domain.Dataset, replace bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if replace {
		for _, table := range []string{"set_allies", "set_enemies", "members", "sets", "alliances"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
	}

	for i := range ds.Alliances {
		if err := upsertAlliance(ctx, tx, &ds.Alliances[i]); err != nil {
			return err
		}
	}
	for i := range ds.Sets {
		if err := upsertSet(ctx, tx, &ds.Sets[i]); err != nil {
			return err
		}
	}
	// pairs reference sets, so they go in once every set exists
	for i := range ds.Sets {
		if err := insertPairs(ctx, tx, &ds.Sets[i]); err != nil {
			return err
		}
	}
	for i := range ds.Members {
		if err := upsertMember(ctx, tx, &ds.Members[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ExportDataset reads every record
func (r *Repository) ExportDataset(ctx context.Context) (*domain.Dataset, error) {
	alliances, err := r.ListAlliances(ctx)
	if err != nil {
		return nil, err
	}
	sets, err := r.ListSets(ctx)
	if err != nil {
		return nil, err
	}
	members, err := r.ListMembers(ctx, 0)
	if err != nil {
		return nil, err
	}

	return &domain.Dataset{
		Alliances: alliances,
		Sets:      sets,
		Members:   members,
	}, nil
}
