package model

// Statement is one graph mutation or query in submission order.
// It is created by the generator and read-only afterwards.
type Statement struct {
	description string
	text        string
}

func NewStatement(description, text string) Statement {
	return Statement{description: description, text: text}
}

// Description is the human-readable label printed before submission.
func (s Statement) Description() string { return s.description }

// Text is the query sent to the graph service.
func (s Statement) Text() string { return s.text }

func (s Statement) String() string {
	return s.description + ": " + s.text
}
