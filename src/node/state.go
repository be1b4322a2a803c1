package node

// State captures the state of an echod node: Uninitialized, Ready, or
// Shutdown.
type State uint32

const (
	// Uninitialized is the initial state, before the init handshake.
	Uninitialized State = iota
	// Ready means the identity is assigned and echo requests are served.
	Ready
	// Shutdown is reached on clean end-of-input.
	Shutdown
)

// String implements the fmt.Stringer interface.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Ready:
		return "Ready"
	case Shutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}
