package workflow

const (
	// StopRunSignalName asks a running batch to stop scheduling new items.
	// Items already in flight finish and are counted.
	StopRunSignalName = "stop-run"

	// StateQueryName returns the current RunSummary of a batch.
	StateQueryName = "state"
)

// StopRunSignal contains data for stopping a batch run early
type StopRunSignal struct {
	Reason      string `json:"reason"`
	RequestedBy string `json:"requested_by"`
}
