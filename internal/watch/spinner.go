package watch

// spinnerFrames is the braille animation shown while watching.
var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner cycles through the refresh-indicator frames.
type Spinner struct {
	frame int
}

// Tick advances to the next frame.
func (s *Spinner) Tick() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
}

// Reset returns to the first frame.
func (s *Spinner) Reset() {
	s.frame = 0
}

// Current returns the character for the current frame.
func (s *Spinner) Current() rune {
	return spinnerFrames[s.frame]
}
