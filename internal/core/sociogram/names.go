package sociogram

// DefaultNames is the fixed cast of the demo graph.
var DefaultNames = []string{
	"Hazel", "Madeline", "Isaac", "Shelia", "Christy", "Thelma", "Kara", "Johnnie", "Ron", "Frances",
	"Eddie", "Mona", "Jose", "Santos",
}

// Names returns a copy of DefaultNames.
func Names() []string {
	return append([]string(nil), DefaultNames...)
}
