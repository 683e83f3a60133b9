package model

// Edge is a directed "knows" relation between two people.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Sociogram is the generated graph before it is rendered into statements.
type Sociogram struct {
	Names []string `json:"names"`
	Edges []Edge   `json:"edges"`
}

func (s Sociogram) OutDegree(name string) int {
	n := 0
	for _, e := range s.Edges {
		if e.From == name {
			n++
		}
	}
	return n
}

func (s Sociogram) InDegree(name string) int {
	n := 0
	for _, e := range s.Edges {
		if e.To == name {
			n++
		}
	}
	return n
}
