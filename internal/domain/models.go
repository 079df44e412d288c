package domain

// Place is a catalog entry offered by the city autocomplete
type Place struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
	Region  string `yaml:"region"`
}

// String returns the canonical display text used for exact-match resolution
func (p Place) String() string {
	return p.Name
}

// Entry is one submitted form, shown as a row in the entries table
type Entry struct {
	Name     string
	Age      string
	Time     string
	Phone    string
	Category string
	City     string
}

// Attributes maps table attribute names to the entry's values
func (e Entry) Attributes() map[string]string {
	return map[string]string{
		"name":     e.Name,
		"age":      e.Age,
		"time":     e.Time,
		"phone":    e.Phone,
		"category": e.Category,
		"city":     e.City,
	}
}
