// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package causa turns the raw intake form into the canonical, grouping-safe
registration and decides which picklist values the submission adds.

Everything here is pure. The same canonical parts produce the same case key
at write time and at grouping time, which is what makes two visitors of the
same hearing land in the same group.

	form ──Validate──▶ first unmet clause? ──▶ VALIDATION_ERROR
	  │
	  └──Canonicalize──▶ Canonical{..., CausaFull} + taxonomy.Delta
*/
package causa

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/audiencia/internal/platform/constants"
	"github.com/taibuivan/audiencia/internal/platform/validate"
	"github.com/taibuivan/audiencia/internal/taxonomy"
	"github.com/taibuivan/audiencia/pkg/pointer"
)

// # Domain Entities

// Form is the raw intake payload as typed at the kiosk.
type Form struct {
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	CausaCode       string `json:"causaCode"`
	CausaCodeCustom string `json:"causaCodeCustom,omitempty"`
	CausaYear       string `json:"causaYear"`
	CausaNumber     string `json:"causaNumber"`
	Subject         string `json:"subject"`
	SubjectCustom   string `json:"subjectCustom,omitempty"`
	Fiscalia        string `json:"fiscalia,omitempty"`
	Locker          string `json:"locker,omitempty"`
}

// Canonical is the normalized registration ready to be stored.
type Canonical struct {
	FullName    string
	Phone       string
	Email       string
	CausaCode   string
	CausaYear   string
	CausaNumber string
	CausaFull   string
	Subject     string

	// Present only for the role subsets that require them.
	Fiscalia *string
	Locker   *string
}

// # Field Identifiers

const (
	FieldFullName        = "fullName"
	FieldPhone           = "phone"
	FieldEmail           = "email"
	FieldCausaCode       = "causaCode"
	FieldCausaCodeCustom = "causaCodeCustom"
	FieldCausaYear       = "causaYear"
	FieldCausaNumber     = "causaNumber"
	FieldSubject         = "subject"
	FieldSubjectCustom   = "subjectCustom"
	FieldFiscalia        = "fiscalia"
	FieldLocker          = "locker"
)

// # Role Subsets

var (
	fiscaliaRoles = []string{"AUXILIAR FISCAL", "AGENTE FISCAL"}
	lockerRoles   = []string{"DEFENSA TÉCNICA", "AUXILIAR FISCAL", "AGENTE FISCAL"}
)

// NeedsFiscalia reports whether a canonical subject must name a prosecutor office.
func NeedsFiscalia(subject string) bool {
	return slices.Contains(fiscaliaRoles, subject)
}

// NeedsLocker reports whether a canonical subject must give an electronic locker.
func NeedsLocker(subject string) bool {
	return slices.Contains(lockerRoles, subject)
}

// # Normalization

/*
PadCode left-pads a numeric code with zeros to five characters.

Empty (or blank) input yields "". Input of five characters or more is
returned trimmed but otherwise unchanged, never truncated.

Example:

	PadCode("7")      // "00007"
	PadCode("16004")  // "16004"
	PadCode("123456") // "123456"
*/
func PadCode(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	missing := constants.CodeWidth - utf8.RuneCountInString(value)
	if missing <= 0 {
		return value
	}
	return strings.Repeat("0", missing) + value
}

// Upper is the canonical text form: trimmed, NFC-composed, upper case.
// Composition first keeps "TÉCNICA" typed with a combining accent equal to
// the precomposed picklist value.
func Upper(raw string) string {
	return strings.ToUpper(norm.NFC.String(strings.TrimSpace(raw)))
}

// CaseKey builds the grouping key from canonical parts.
func CaseKey(code, year, process string) string {
	return fmt.Sprintf("[C-%s] - [%s] - [%s]", code, year, process)
}

// isCustom reports whether a picklist value selects the custom entry, in any case.
func isCustom(raw string) bool {
	return Upper(raw) == constants.CustomSentinel
}

// resolvedSubject is the subject that will be stored.
func resolvedSubject(form Form) string {
	if isCustom(form.Subject) {
		return Upper(form.SubjectCustom)
	}
	return Upper(form.Subject)
}

// # Validity Rule

/*
Validate applies the submission validity rule and reports the first unmet clause.

Clause order: fullName, phone, email, causaYear, causaNumber, subject,
causaCode (or its custom value), subjectCustom, causaCodeCustom, fiscalia, locker.

Returns:
  - error: apperr VALIDATION_ERROR whose single detail names the failing field
*/
func Validate(form Form) error {
	subject := strings.TrimSpace(form.Subject)
	code := strings.TrimSpace(form.CausaCode)
	final := resolvedSubject(form)

	validator := &validate.Validator{}
	validator.
		Custom(FieldFullName, blank(form.FullName), "Ingrese sus nombres completos").
		Custom(FieldPhone, blank(form.Phone), "Ingrese su teléfono").
		Custom(FieldEmail, blank(form.Email), "Ingrese su correo electrónico").
		Custom(FieldCausaYear, blank(form.CausaYear), "Ingrese el año de la causa").
		Custom(FieldCausaNumber, blank(form.CausaNumber), "Ingrese el número de proceso").
		Custom(FieldSubject, subject == "", "Seleccione el sujeto procesal").
		Custom(FieldCausaCode, code == "" && blank(form.CausaCodeCustom), "Seleccione el juzgado").
		Custom(FieldSubjectCustom, isCustom(subject) && blank(form.SubjectCustom), "Especifique el sujeto procesal").
		Custom(FieldCausaCodeCustom, isCustom(code) && blank(form.CausaCodeCustom), "Especifique el código del juzgado").
		Custom(FieldFiscalia, NeedsFiscalia(final) && blank(form.Fiscalia), "Ingrese la fiscalía").
		Custom(FieldLocker, NeedsLocker(final) && blank(form.Locker), "Ingrese el casillero electrónico")

	return validator.FirstErr()
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// # Canonicalization

/*
Canonicalize validates the form and produces the stored representation.

Description: Custom subject and court code values are uppercased and, when
absent from the given snapshot, returned in the delta so the caller can
append them before inserting the registration. The process number and court
code are zero-padded. Fiscalía and locker are kept only for the role subsets
that require them.

Parameters:
  - form: Form (raw kiosk input)
  - snapshot: taxonomy.Snapshot (lists the kiosk currently knows)

Returns:
  - Canonical: Normalized registration
  - taxonomy.Delta: Values to append (may be empty)
  - error: VALIDATION_ERROR naming the first unmet clause
*/
func Canonicalize(form Form, snapshot taxonomy.Snapshot) (Canonical, taxonomy.Delta, error) {
	if err := Validate(form); err != nil {
		return Canonical{}, taxonomy.Delta{}, err
	}

	var delta taxonomy.Delta

	// 1. Subject
	subject := resolvedSubject(form)
	if isCustom(form.Subject) && !snapshot.HasSubject(subject) {
		delta.Subject = subject
	}

	// 2. Court code
	rawCode := strings.TrimSpace(form.CausaCode)
	if rawCode == "" || isCustom(rawCode) {
		code := PadCode(Upper(form.CausaCodeCustom))
		if !snapshot.HasCourtCode(code) {
			delta.CourtCode = code
		}
		rawCode = code
	}
	code := PadCode(Upper(rawCode))

	// 3. Process number and year
	process := PadCode(form.CausaNumber)
	year := strings.TrimSpace(form.CausaYear)

	canonical := Canonical{
		FullName:    Upper(form.FullName),
		Phone:       strings.TrimSpace(form.Phone),
		Email:       strings.TrimSpace(form.Email),
		CausaCode:   code,
		CausaYear:   year,
		CausaNumber: process,
		CausaFull:   CaseKey(code, year, process),
		Subject:     subject,
	}

	// 4. Role-dependent fields
	if NeedsFiscalia(subject) {
		canonical.Fiscalia = pointer.To(Upper(form.Fiscalia))
	}
	if NeedsLocker(subject) {
		canonical.Locker = pointer.To(Upper(form.Locker))
	}

	return canonical, delta, nil
}
