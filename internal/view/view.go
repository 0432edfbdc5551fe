// Package view holds the presentation-state policy: which view is active,
// which filter it implies, and which tasks are visible in what order.
package view

// View is a user-selectable presentation mode.
type View int

const (
	Timeline View = iota
	Completed
	All
)

func (v View) String() string {
	switch v {
	case Completed:
		return "completed"
	case All:
		return "all"
	default:
		return "timeline"
	}
}

// Filter is the task predicate implied by a view.
type Filter int

const (
	FilterPending Filter = iota
	FilterCompleted
	FilterAll
)

func (f Filter) String() string {
	switch f {
	case FilterCompleted:
		return "completed"
	case FilterAll:
		return "all"
	default:
		return "pending"
	}
}

// Filter returns the filter implied by the view: timeline shows pending
// tasks, completed shows completed ones, all shows everything.
func (v View) Filter() Filter {
	switch v {
	case Completed:
		return FilterCompleted
	case All:
		return FilterAll
	default:
		return FilterPending
	}
}

// ViewFor maps a filter selection back onto the view that implies it.
func ViewFor(f Filter) View {
	switch f {
	case FilterCompleted:
		return Completed
	case FilterAll:
		return All
	default:
		return Timeline
	}
}

// State is the view-state controller. The view is the single source of
// truth; the filter is always derived from it, so the two can never drift
// apart.
type State struct {
	view View
}

// NewState returns a controller starting on the timeline view.
func NewState() *State {
	return &State{view: Timeline}
}

func (s *State) View() View {
	return s.view
}

func (s *State) Filter() Filter {
	return s.view.Filter()
}

func (s *State) SetView(v View) {
	s.view = v
}

// SetFilter selects a filter directly, switching to the view that implies it.
func (s *State) SetFilter(f Filter) {
	s.view = ViewFor(f)
}

// TaskToggled applies the completion transition policy: completing a task
// while on the timeline moves the user to the completed view. No other
// mutation changes the view implicitly.
func (s *State) TaskToggled(completed bool) {
	if completed && s.view == Timeline {
		s.view = Completed
	}
}
