package models

// Contact represents one phonebook entry.
type Contact struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// WithNumber returns a copy of c carrying number.
func (c Contact) WithNumber(number string) Contact {
	c.Number = number
	return c
}
