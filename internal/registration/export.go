// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"strings"
	"time"

	"github.com/taibuivan/audiencia/pkg/pointer"
)

// # CSV Export

const (
	// CSVContentType is served with every export.
	CSVContentType = "text/csv; charset=utf-8"

	csvBOM       = "\ufeff"
	csvTimestamp = "02/01/2006 15:04"
	csvMissing   = "N/A"
)

var csvHeader = []string{
	"ID Registro",
	"Fecha y Hora",
	"Nombres Completos",
	"Teléfono",
	"Email",
	"Causa (Juzgado-Año-Proceso)",
	"Sujeto Procesal",
	"Fiscalía",
	"Casillero Electrónico",
}

/*
EncodeCSV renders registrations in the spreadsheet layout staff import.

Description: The output starts with a UTF-8 byte order mark and a header
row. Lines are joined with "\n" without a trailing newline. The full name
is always quoted; any other cell is quoted only when it holds a comma, a
quote or a line break. Embedded quotes are doubled. Missing fiscalía or
locker values read "N/A" and timestamps are shown in loc.

Parameters:
  - registrations: []Registration (rows in the given order)
  - loc: *time.Location

Returns:
  - []byte: File content
*/
func EncodeCSV(registrations []Registration, loc *time.Location) []byte {
	lines := make([]string, 0, len(registrations)+1)
	lines = append(lines, strings.Join(csvHeader, ","))

	for _, r := range registrations {
		createdAt := ""
		if !r.CreatedAt.IsZero() {
			createdAt = r.CreatedAt.In(loc).Format(csvTimestamp)
		}

		lines = append(lines, strings.Join([]string{
			r.ID,
			createdAt,
			quoteCell(r.FullName),
			csvCell(r.Phone),
			csvCell(r.Email),
			csvCell(r.CausaFull),
			csvCell(r.Subject),
			csvCell(pointer.Or(r.Fiscalia, csvMissing)),
			csvCell(pointer.Or(r.Locker, csvMissing)),
		}, ","))
	}

	return []byte(csvBOM + strings.Join(lines, "\n"))
}

func quoteCell(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func csvCell(value string) string {
	if strings.ContainsAny(value, ",\"\r\n") {
		return quoteCell(value)
	}
	return value
}

// ExportFilename names an export of the given day, or of everything when day is empty.
func ExportFilename(day string, now time.Time) string {
	if day == "" {
		return "Registros_Completo_" + now.Format("2006-01-02") + ".csv"
	}
	return "Registros_" + day + ".csv"
}
