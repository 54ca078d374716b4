package schema

// DirectoryEntryTable represents the 'staff.directory_entry' table
type DirectoryEntryTable struct {
	Table          string
	ID             string
	Name           string
	Email          string
	CredentialHash string
	Role           string
	Status         string
	ExternalID     string
	CreatedAt      string
	ApprovedAt     string
}

// DirectoryEntry is the schema definition for staff.directory_entry
var DirectoryEntry = DirectoryEntryTable{
	Table:          "staff.directory_entry",
	ID:             "id",
	Name:           "name",
	Email:          "email",
	CredentialHash: "credentialhash",
	Role:           "role",
	Status:         "status",
	ExternalID:     "externalid",
	CreatedAt:      "createdat",
	ApprovedAt:     "approvedat",
}

// Columns returns all standard column names
func (t DirectoryEntryTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.CredentialHash, t.Role, t.Status,
		t.ExternalID, t.CreatedAt, t.ApprovedAt,
	}
}
