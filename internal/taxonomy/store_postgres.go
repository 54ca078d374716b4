// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/audiencia/internal/platform/database/schema"
	"github.com/taibuivan/audiencia/internal/platform/postgres"
)

// PostgresRepository stores one row per (kind, value). The primary key makes
// every append a server-side set union.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Get reads both lists and the version counter.

Description: Values are returned in byte order; a kind without rows is served
from the built-in defaults.

Parameters:
  - context: context.Context

Returns:
  - Snapshot: Current taxonomy
  - error: Database errors
*/
func (repository *PostgresRepository) Get(context context.Context) (Snapshot, error) {
	entry := schema.TaxonomyEntry
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s, %s COLLATE "C"`,
		entry.Kind, entry.Value, entry.Table, entry.Kind, entry.Value)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return Snapshot{}, fmt.Errorf("postgres_taxonomy_repo_get_failed: %w", err)
	}

	values := map[Kind][]string{}
	for rows.Next() {
		var kind Kind
		var value string
		if err := rows.Scan(&kind, &value); err != nil {
			rows.Close()
			return Snapshot{}, fmt.Errorf("postgres_taxonomy_repo_scan_failed: %w", err)
		}
		values[kind] = append(values[kind], value)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("postgres_taxonomy_repo_rows_failed: %w", err)
	}

	version, err := readVersion(context, repository.pool)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{Version: version}
	snapshot.Subjects = orDefault(values[KindSubject], KindSubject)
	snapshot.CourtCodes = orDefault(values[KindCourtCode], KindCourtCode)
	return snapshot, nil
}

/*
Append inserts the delta values inside one transaction.

Description: A kind with no rows is seeded with its defaults first, so the
first custom value never hides the built-in list. Each value is inserted with
ON CONFLICT DO NOTHING and the version is bumped only for rows that landed.

Parameters:
  - context: context.Context
  - delta: Delta

Returns:
  - []Addition: Values that were new
  - error: Database errors
*/
func (repository *PostgresRepository) Append(context context.Context, delta Delta) ([]Addition, error) {
	if delta.IsEmpty() {
		return nil, nil
	}

	entry := schema.TaxonomyEntry
	version := schema.TaxonomyVersion

	seedQuery := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s)
		SELECT $1, unnest($2::text[])
		WHERE NOT EXISTS (SELECT 1 FROM %[1]s WHERE %[2]s = $1)
		ON CONFLICT DO NOTHING`, entry.Table, entry.Kind, entry.Value)

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, entry.Table, entry.Kind, entry.Value)

	bumpQuery := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s) VALUES (1, $1)
		ON CONFLICT (%[2]s) DO UPDATE SET %[3]s = %[1]s.%[3]s + EXCLUDED.%[3]s`,
		version.Table, version.ID, version.Version)

	var added []Addition
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		for _, addition := range delta.Additions() {

			// 1. Seed defaults the first time a kind is touched
			if _, err := tx.Exec(context, seedQuery, string(addition.Kind), DefaultValues(addition.Kind)); err != nil {
				return fmt.Errorf("postgres_taxonomy_repo_seed_failed: %w", err)
			}

			// 2. Append-if-absent
			tag, err := tx.Exec(context, insertQuery, string(addition.Kind), addition.Value)
			if err != nil {
				return fmt.Errorf("postgres_taxonomy_repo_insert_failed: %w", err)
			}
			if tag.RowsAffected() == 1 {
				added = append(added, addition)
			}
		}

		// 3. Version moves only when something changed
		if len(added) == 0 {
			return nil
		}
		if _, err := tx.Exec(context, bumpQuery, len(added)); err != nil {
			return fmt.Errorf("postgres_taxonomy_repo_version_failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

func readVersion(context context.Context, pool *pgxpool.Pool) (int64, error) {
	version := schema.TaxonomyVersion
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = 1`, version.Version, version.Table, version.ID)

	var value int64
	err := pool.QueryRow(context, query).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("postgres_taxonomy_repo_version_read_failed: %w", err)
	}
	return value, nil
}

func orDefault(values []string, kind Kind) []string {
	if len(values) == 0 {
		return DefaultValues(kind)
	}
	return Normalize(values)
}
