package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"crewmap/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// Time and JSON Helpers
// ============================================================================

// formatTime stores times as RFC3339 text in UTC
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime reads a time written by formatTime; malformed values become zero
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// marshalStrings stores a string list as a JSON array, NULL when empty
func marshalStrings(values []string) (sql.NullString, error) {
	if len(values) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// unmarshalStrings reads a JSON array written by marshalStrings
func unmarshalStrings(ns sql.NullString) ([]string, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(ns.String), &values); err != nil {
		return nil, err
	}
	return values, nil
}

// ============================================================================
// Row Scanning
// ============================================================================

const allianceColumns = `id, name, status, bio, created_at, updated_at`

type allianceRow struct {
	id, name, status   string
	bio                sql.NullString
	createdAt, updated string
}

func (r *allianceRow) scanArgs() []any {
	return []any{&r.id, &r.name, &r.status, &r.bio, &r.createdAt, &r.updated}
}

func (r *allianceRow) toDomain() domain.Alliance {
	return domain.Alliance{
		ID:        r.id,
		Name:      r.name,
		Status:    domain.RecordStatus(r.status),
		Bio:       nullToString(r.bio),
		CreatedAt: parseTime(r.createdAt),
		UpdatedAt: parseTime(r.updated),
	}
}

const setColumns = `id, primary_name, names, status, territory, colors, bio, alliance_id, created_at, updated_at`

type setRow struct {
	id, primaryName, status       string
	names, territory, colors, bio sql.NullString
	allianceID                    sql.NullString
	createdAt, updated            string
}

func (r *setRow) scanArgs() []any {
	return []any{&r.id, &r.primaryName, &r.names, &r.status, &r.territory, &r.colors, &r.bio, &r.allianceID, &r.createdAt, &r.updated}
}

func (r *setRow) toDomain() (domain.Set, error) {
	names, err := unmarshalStrings(r.names)
	if err != nil {
		return domain.Set{}, fmt.Errorf("failed to unmarshal names for set %s: %w", r.id, err)
	}
	return domain.Set{
		ID:          r.id,
		PrimaryName: r.primaryName,
		Names:       names,
		Status:      domain.RecordStatus(r.status),
		Territory:   nullToString(r.territory),
		Colors:      nullToString(r.colors),
		Bio:         nullToString(r.bio),
		AllianceID:  nullToString(r.allianceID),
		CreatedAt:   parseTime(r.createdAt),
		UpdatedAt:   parseTime(r.updated),
	}, nil
}

const memberColumns = `id, first_name, last_name, nicknames, status, affiliation, set_id, alliance_id, bio, created_at, updated_at`

type memberRow struct {
	id, status, affiliation        string
	firstName, lastName, nicknames sql.NullString
	setID, allianceID, bio         sql.NullString
	createdAt, updated             string
}

func (r *memberRow) scanArgs() []any {
	return []any{&r.id, &r.firstName, &r.lastName, &r.nicknames, &r.status, &r.affiliation, &r.setID, &r.allianceID, &r.bio, &r.createdAt, &r.updated}
}

func (r *memberRow) toDomain() (domain.Member, error) {
	nicknames, err := unmarshalStrings(r.nicknames)
	if err != nil {
		return domain.Member{}, fmt.Errorf("failed to unmarshal nicknames for member %s: %w", r.id, err)
	}
	return domain.Member{
		ID:          r.id,
		FirstName:   nullToString(r.firstName),
		LastName:    nullToString(r.lastName),
		Nicknames:   nicknames,
		Status:      domain.MemberStatus(r.status),
		Affiliation: domain.Affiliation(r.affiliation),
		SetID:       nullToString(r.setID),
		AllianceID:  nullToString(r.allianceID),
		Bio:         nullToString(r.bio),
		CreatedAt:   parseTime(r.createdAt),
		UpdatedAt:   parseTime(r.updated),
	}, nil
}
