package models

// Person is a roster entry. Roster people are fixed at deploy time.
type Person struct {
	Name      string `json:"name" yaml:"name"`
	Scripture string `json:"scripture" yaml:"scripture"`
	Reference string `json:"reference" yaml:"reference"`
}

// PersonWithCount is a roster entry plus the number of prayers posted for it
type PersonWithCount struct {
	Person
	Prayer_Count int `json:"prayerCount"`
}
