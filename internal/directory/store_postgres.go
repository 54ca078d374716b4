// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/audiencia/internal/platform/database/schema"
	"github.com/taibuivan/audiencia/internal/platform/sec"
)

// PostgresRepository implements [Repository] on staff.directory_entry.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectColumns = strings.Join(schema.DirectoryEntry.Columns(), ", ")

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, entry *Entry) error {
	table := schema.DirectoryEntry
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING %s`,
		table.Table,
		table.ID, table.Name, table.Email, table.CredentialHash, table.Role, table.Status,
		table.ExternalID, table.CreatedAt,
		table.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		entry.ID, entry.Name, entry.Email, entry.CredentialHash,
		string(entry.Role), string(entry.Status), entry.ExternalID,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres_directory_repo_create_failed: %w", err)
	}
	return nil
}

// FindByEmail implements [Repository].
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) ([]Entry, error) {
	table := schema.DirectoryEntry
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1) ORDER BY %s, %s`,
		selectColumns, table.Table, table.Email, table.CreatedAt, table.ID)

	rows, err := repository.pool.Query(context, query, email)
	if err != nil {
		return nil, fmt.Errorf("postgres_directory_repo_find_failed: %w", err)
	}
	return collect(rows)
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context, status Status) ([]Entry, error) {
	table := schema.DirectoryEntry
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE ($1 = '' OR %s = $1) ORDER BY %s, %s`,
		selectColumns, table.Table, table.Status, table.CreatedAt, table.ID)

	rows, err := repository.pool.Query(context, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("postgres_directory_repo_list_failed: %w", err)
	}
	return collect(rows)
}

// Approve implements [Repository].
func (repository *PostgresRepository) Approve(context context.Context, id string) (*Entry, error) {
	table := schema.DirectoryEntry
	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = $2, %[3]s = coalesce(%[3]s, now())
		WHERE %[4]s = $1
		RETURNING %[5]s`,
		table.Table, table.Status, table.ApprovedAt, table.ID, selectColumns)

	rows, err := repository.pool.Query(context, query, id, string(StatusActive))
	if err != nil {
		return nil, fmt.Errorf("postgres_directory_repo_approve_failed: %w", err)
	}

	entries, err := collect(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("postgres_directory_repo_approve_failed: %w", pgx.ErrNoRows)
	}
	return &entries[0], nil
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	table := schema.DirectoryEntry
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_directory_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres_directory_repo_delete_failed: %w", pgx.ErrNoRows)
	}
	return nil
}

// collect scans rows in [schema.DirectoryEntryTable.Columns] order and closes them.
func collect(rows pgx.Rows) ([]Entry, error) {
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var entry Entry
		var role, status string
		if err := rows.Scan(
			&entry.ID, &entry.Name, &entry.Email, &entry.CredentialHash, &role, &status,
			&entry.ExternalID, &entry.CreatedAt, &entry.ApprovedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_directory_repo_scan_failed: %w", err)
		}
		entry.Role = sec.UserRole(role)
		entry.Status = Status(status)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_directory_repo_rows_failed: %w", err)
	}
	return entries, nil
}
