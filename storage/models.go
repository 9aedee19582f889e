package storage

// ElectionConfig is the single persisted configuration document for the
// deployment. It is created with defaults on first load and mutated only
// through the admin console.
type ElectionConfig struct {
	Candidates    []string `json:"candidates"`
	CurrentFile   string   `json:"current_file"`
	IsActive      bool     `json:"is_active"`
	AdminPassword string   `json:"admin_password"`
}

// Ballot is one row of a ballot table. Rows are created once at
// confirmation and never updated or deleted.
type Ballot struct {
	NationalCode int64  `json:"nationalCode"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Choice       string `json:"choice"`
}
