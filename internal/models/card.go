package models

// Card is a chat message in embed form: a title, free text, a color and
// an ordered list of named fields.
type Card struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Color       int         `json:"color"`
	Fields      []CardField `json:"fields,omitempty"`
	Footer      *CardFooter `json:"footer,omitempty"`
}

type CardField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type CardFooter struct {
	Text string `json:"text"`
}

func (c *Card) AddField(name, value string) {
	c.Fields = append(c.Fields, CardField{Name: name, Value: value})
}
