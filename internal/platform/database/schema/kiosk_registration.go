package schema

// RegistrationTable represents the 'kiosk.registration' table
type RegistrationTable struct {
	Table       string
	ID          string
	FullName    string
	Phone       string
	Email       string
	CausaCode   string
	CausaYear   string
	CausaNumber string
	CausaFull   string
	Subject     string
	Fiscalia    string
	Locker      string
	Status      string
	CreatedAt   string
}

// Registration is the schema definition for kiosk.registration
var Registration = RegistrationTable{
	Table:       "kiosk.registration",
	ID:          "id",
	FullName:    "fullname",
	Phone:       "phone",
	Email:       "email",
	CausaCode:   "causacode",
	CausaYear:   "causayear",
	CausaNumber: "causanumber",
	CausaFull:   "causafull",
	Subject:     "subject",
	Fiscalia:    "fiscalia",
	Locker:      "locker",
	Status:      "status",
	CreatedAt:   "createdat",
}

// Columns returns all standard column names
func (t RegistrationTable) Columns() []string {
	return []string{
		t.ID, t.FullName, t.Phone, t.Email, t.CausaCode, t.CausaYear,
		t.CausaNumber, t.CausaFull, t.Subject, t.Fiscalia, t.Locker,
		t.Status, t.CreatedAt,
	}
}
