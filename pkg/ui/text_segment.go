package ui

// Segment is a string that has a single Style throughout.
type Segment struct {
	Style
	Text string
}

// VTString renders the Segment using VT-style escape sequences.
func (s *Segment) VTString() string {
	sgr := s.SGR()
	if sgr == "" {
		return s.Text
	}
	return "\033[" + sgr + "m" + s.Text + "\033[m"
}
