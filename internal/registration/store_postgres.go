// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/audiencia/internal/platform/database/schema"
)

// PostgresRepository implements [Repository] on kiosk.registration.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectColumns lists every column in scan order.
var selectColumns = strings.Join(schema.Registration.Columns(), ", ")

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, registration *Registration) error {
	table := schema.Registration
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
		RETURNING %s`,
		table.Table,
		table.ID, table.FullName, table.Phone, table.Email, table.CausaCode, table.CausaYear,
		table.CausaNumber, table.CausaFull, table.Subject, table.Fiscalia, table.Locker,
		table.Status, table.CreatedAt,
		table.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		registration.ID, registration.FullName, registration.Phone, registration.Email,
		registration.CausaCode, registration.CausaYear, registration.CausaNumber,
		registration.CausaFull, registration.Subject, registration.Fiscalia,
		registration.Locker, registration.Status,
	).Scan(&registration.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres_registration_repo_create_failed: %w", err)
	}
	return nil
}

// ListBetween implements [Repository].
func (repository *PostgresRepository) ListBetween(context context.Context, from, to time.Time) ([]Registration, error) {
	table := schema.Registration
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s >= $1 AND %s < $2
		ORDER BY %s DESC, %s DESC`,
		selectColumns, table.Table, table.CreatedAt, table.CreatedAt, table.CreatedAt, table.ID)

	rows, err := repository.pool.Query(context, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres_registration_repo_list_between_failed: %w", err)
	}
	return collect(rows)
}

// ListAll implements [Repository].
func (repository *PostgresRepository) ListAll(context context.Context) ([]Registration, error) {
	table := schema.Registration
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC`,
		selectColumns, table.Table, table.CreatedAt, table.ID)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_registration_repo_list_all_failed: %w", err)
	}
	return collect(rows)
}

// collect scans rows in [schema.RegistrationTable.Columns] order and closes them.
func collect(rows pgx.Rows) ([]Registration, error) {
	defer rows.Close()

	registrations := []Registration{}
	for rows.Next() {
		var r Registration
		if err := rows.Scan(
			&r.ID, &r.FullName, &r.Phone, &r.Email, &r.CausaCode, &r.CausaYear,
			&r.CausaNumber, &r.CausaFull, &r.Subject, &r.Fiscalia, &r.Locker,
			&r.Status, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_registration_repo_scan_failed: %w", err)
		}
		registrations = append(registrations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_registration_repo_rows_failed: %w", err)
	}
	return registrations, nil
}
