package domain

// Dataset groups records for seeding, import and export
type Dataset struct {
	Alliances []Alliance `json:"alliances"`
	Sets      []Set      `json:"sets"`
	Members   []Member   `json:"members"`
}

// NewDataset creates an empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		Alliances: make([]Alliance, 0),
		Sets:      make([]Set, 0),
		Members:   make([]Member, 0),
	}
}

// AddAlliance adds an alliance to the dataset
func (d *Dataset) AddAlliance(a Alliance) {
	d.Alliances = append(d.Alliances, a)
}

// AddSet adds a set to the dataset
func (d *Dataset) AddSet(s Set) {
	d.Sets = append(d.Sets, s)
}

// AddMember adds a member to the dataset
func (d *Dataset) AddMember(m Member) {
	d.Members = append(d.Members, m)
}

// Len returns the total number of records
func (d *Dataset) Len() int {
	return len(d.Alliances) + len(d.Sets) + len(d.Members)
}

// RecordCounts holds the number of stored records of each kind
type RecordCounts struct {
	Alliances int `json:"alliances"`
	Sets      int `json:"sets"`
	Members   int `json:"members"`
}

// Total returns the number of records of every kind
func (c RecordCounts) Total() int {
	return c.Alliances + c.Sets + c.Members
}
