// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestConvertToPgx5DSN verifies scheme rewriting for golang-migrate.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/kiosk?sslmode=disable", "pgx5://u:p@db:5432/kiosk?sslmode=disable"},
		{"postgresql://u:p@db/kiosk", "pgx5://u:p@db/kiosk"},
		{"pgx5://u:p@db/kiosk", "pgx5://u:p@db/kiosk"},
		{"host=db user=u dbname=kiosk", "host=db user=u dbname=kiosk"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, convertToPgx5DSN(tt.in))
		})
	}
}
