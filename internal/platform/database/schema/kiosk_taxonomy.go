package schema

// TaxonomyEntryTable represents the 'kiosk.taxonomy_entry' table
type TaxonomyEntryTable struct {
	Table     string
	Kind      string
	Value     string
	CreatedAt string
}

// TaxonomyEntry is the schema definition for kiosk.taxonomy_entry
var TaxonomyEntry = TaxonomyEntryTable{
	Table:     "kiosk.taxonomy_entry",
	Kind:      "kind",
	Value:     "value",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t TaxonomyEntryTable) Columns() []string {
	return []string{t.Kind, t.Value, t.CreatedAt}
}

// TaxonomyVersionTable represents the single-row 'kiosk.taxonomy_version' table
type TaxonomyVersionTable struct {
	Table   string
	ID      string
	Version string
}

// TaxonomyVersion is the schema definition for kiosk.taxonomy_version
var TaxonomyVersion = TaxonomyVersionTable{
	Table:   "kiosk.taxonomy_version",
	ID:      "id",
	Version: "version",
}
