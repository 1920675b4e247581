package task

// State is the in-memory state of one task. Only its record projection is
// persisted.
type State struct {
	Running bool
	Param   Param
	PauseMs int
}

// Snapshot is a State tagged with its task id.
type Snapshot struct {
	ID ID
	State
}
