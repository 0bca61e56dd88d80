package sqlite

import (
	"context"
	"fmt"
	"strings"

	"crewmap/internal/domain"
)

// likePattern wraps q for a substring LIKE match with \ as the escape
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

// searchQuery builds a SELECT over table matching query against columns
func searchQuery(columns, table string, searchable []string, query string, limit int) (string, []any) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(`SELECT ` + columns + ` FROM ` + table)

	if query = strings.TrimSpace(query); query != "" {
		pattern := likePattern(query)
		conds := make([]string, len(searchable))
		for i, col := range searchable {
			conds[i] = col + ` LIKE ? ESCAPE '\'`
			args = append(args, pattern)
		}
		b.WriteString(` WHERE ` + strings.Join(conds, " OR "))
	}

	b.WriteString(` ORDER BY rowid`)
	if limit > 0 {
		b.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}
	return b.String(), args
}

// ============================================================================
// Search
// ============================================================================

// SearchAlliances matches name and bio
func (r *Repository) SearchAlliances(ctx context.Context, query string, limit int) ([]domain.Alliance, error) {
	q, args := searchQuery(allianceColumns, "alliances", []string{"name", "bio"}, query, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search alliances: %w", err)
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

// SearchSets matches the primary name, other names, territory and bio
func (r *Repository) SearchSets(ctx context.Context, query string, limit int) ([]domain.Set, error) {
	q, args := searchQuery(setColumns, "sets", []string{"primary_name", "names", "territory", "bio"}, query, limit)
	return r.querySets(ctx, q, args...)
}

// SearchMembers matches first and last name, nicknames and bio
func (r *Repository) SearchMembers(ctx context.Context, query string, limit int) ([]domain.Member, error) {
	q, args := searchQuery(memberColumns, "members", []string{"first_name", "last_name", "nicknames", "bio"}, query, limit)
	return r.queryMembers(ctx, q, args...)
}

// ============================================================================
// Updates and Deletes
// ============================================================================

// ReplaceSet upserts a set and replaces every ally and enemy pair it is part of
func (r *Repository) ReplaceSet(ctx context.Context, set *domain.Set) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertSet(ctx, tx, set); err != nil {
		return err
	}
	for _, table := range []string{"set_allies", "set_enemies"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE set_a_id = ? OR set_b_id = ?`, set.ID, set.ID); err != nil {
			return fmt.Errorf("failed to clear %s for %s: %w", table, set.ID, err)
		}
	}
	if err := insertPairs(ctx, tx, set); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteAlliance removes an alliance. Its sets and members lose the reference.
func (r *Repository) DeleteAlliance(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, "alliances", id)
}

// DeleteSet removes a set with its pairs. Its members lose the reference.
func (r *Repository) DeleteSet(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, "sets", id)
}

// DeleteMember removes a member
func (r *Repository) DeleteMember(ctx context.Context, id string) (bool, error) {
	return r.deleteByID(ctx, "members", id)
}

func (r *Repository) deleteByID(ctx context.Context, table, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return n > 0, nil
}

// CountRecords counts the records of each kind
func (r *Repository) CountRecords(ctx context.Context) (*domain.RecordCounts, error) {
	var counts domain.RecordCounts
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM alliances),
			(SELECT COUNT(*) FROM sets),
			(SELECT COUNT(*) FROM members)
	`).Scan(&counts.Alliances, &counts.Sets, &counts.Members)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	return &counts, nil
}
