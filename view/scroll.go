package view

// ScrollBar is the state of one scroll axis. Values are in scroll units:
// rows for the vertical axis, cells for the horizontal one.
type ScrollBar struct {
	value       int
	maximum     int // largest value the bar can take
	largeChange int // one page
	enabled     bool
}

// Value returns the current position.
func (s *ScrollBar) Value() int { return s.value }

// Maximum returns the largest reachable position.
func (s *ScrollBar) Maximum() int { return s.maximum }

// LargeChange returns the page size.
func (s *ScrollBar) LargeChange() int { return s.largeChange }

// Enabled reports whether the content exceeds the visible extent.
func (s *ScrollBar) Enabled() bool { return s.enabled }

// Configure sizes the bar for content units of which visible fit on screen.
// When everything fits the bar is disabled and reset to the top.
func (s *ScrollBar) Configure(content, visible int) {
	if visible <= 0 || content <= visible {
		*s = ScrollBar{}
		return
	}
	s.enabled = true
	s.largeChange = visible
	s.maximum = content - visible
	s.SetValue(s.value)
}

// SetValue moves to v, clamped to [0, Maximum].
func (s *ScrollBar) SetValue(v int) {
	if v > s.maximum {
		v = s.maximum
	}
	if v < 0 {
		v = 0
	}
	s.value = v
}

// DoScroll moves by delta and reports whether the position changed.
func (s *ScrollBar) DoScroll(delta int) bool {
	if !s.enabled || delta == 0 {
		return false
	}
	old := s.value
	s.SetValue(s.value + delta)
	return s.value != old
}

// Reset scrolls back to the top.
func (s *ScrollBar) Reset() { s.value = 0 }
