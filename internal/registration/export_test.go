// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/audiencia/internal/registration"
	"github.com/taibuivan/audiencia/pkg/pointer"
)

func TestEncodeCSV(t *testing.T) {
	records := []registration.Registration{
		{
			ID:        "r-2",
			FullName:  "MARIA GOMEZ",
			Phone:     "44400000",
			Email:     "m@m.com",
			CausaFull: "[C-16001] - [2023] - [00120]",
			Subject:   "AGENTE FISCAL",
			Fiscalia:  pointer.To("FISCALIA DE DISTRITO"),
			Locker:    pointer.To("CE-77"),
			CreatedAt: time.Date(2024, 3, 4, 16, 5, 0, 0, time.UTC),
		},
		{
			ID:        "r-1",
			FullName:  "ANA LOPEZ",
			Phone:     "55512345",
			Email:     "a@a.com",
			CausaFull: "[C-16004] - [2024] - [00007]",
			Subject:   "SINDICADO",
		},
	}

	out := string(registration.EncodeCSV(records, courthouse))

	require.True(t, strings.HasPrefix(out, "\ufeff"))
	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "ID Registro,Fecha y Hora,Nombres Completos,Teléfono,Email,Causa (Juzgado-Año-Proceso),Sujeto Procesal,Fiscalía,Casillero Electrónico", lines[0])
	assert.Equal(t, `r-2,04/03/2024 10:05,"MARIA GOMEZ",44400000,m@m.com,[C-16001] - [2023] - [00120],AGENTE FISCAL,FISCALIA DE DISTRITO,CE-77`, lines[1])
	assert.Equal(t, `r-1,,"ANA LOPEZ",55512345,a@a.com,[C-16004] - [2024] - [00007],SINDICADO,N/A,N/A`, lines[2])
}

func TestEncodeCSV_EscapesCells(t *testing.T) {
	records := []registration.Registration{{
		ID:        "r-3",
		FullName:  `JOSE "PEPE" PEREZ`,
		Phone:     "55512345",
		Email:     "j@j.com",
		CausaFull: "[C-16004] - [2024] - [00007]",
		Subject:   "PERITO, AUXILIAR",
		Fiscalia:  pointer.To(`FISCALIA "A"`),
	}}

	out := string(registration.EncodeCSV(records, courthouse))
	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, `r-3,,"JOSE ""PEPE"" PEREZ",55512345,j@j.com,[C-16004] - [2024] - [00007],"PERITO, AUXILIAR","FISCALIA ""A""",N/A`, lines[1])

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, `JOSE "PEPE" PEREZ`, rows[1][2])
	assert.Equal(t, "PERITO, AUXILIAR", rows[1][6])
}

func TestEncodeCSV_Empty(t *testing.T) {
	out := string(registration.EncodeCSV(nil, courthouse))

	assert.False(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 1, strings.Count(out, "ID Registro"))
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, courthouse)

	assert.Equal(t, "Registros_Completo_2024-03-04.csv", registration.ExportFilename("", now))
	assert.Equal(t, "Registros_2024-03-01.csv", registration.ExportFilename("2024-03-01", now))
}
