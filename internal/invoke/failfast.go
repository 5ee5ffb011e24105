package invoke

// FailFast models the ambient strict-error state of an embedding
// caller: when active, the caller aborts on the first failing
// operation. The invoker suspends it for the duration of the timed
// child so a failing child never aborts the caller, and restores it on
// every exit path.
type FailFast struct {
	active bool
}

// NewFailFast creates a FailFast in the given state.
func NewFailFast(active bool) *FailFast {
	return &FailFast{active: active}
}

// Active reports whether fail-fast is currently active.
func (f *FailFast) Active() bool {
	return f.active
}

// SetActive sets the fail-fast state.
func (f *FailFast) SetActive(active bool) {
	f.active = active
}
