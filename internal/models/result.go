package models

// ExitKind labels how a position was closed.
type ExitKind string

const (
	ExitSoldLimit   ExitKind = "SOLD LMT"
	ExitBoughtLimit ExitKind = "BOUGHT LMT"
	ExitSoldStop    ExitKind = "SOLD STP"
	ExitBoughtStop  ExitKind = "BOUGHT STP"
	ExitSoldMOC     ExitKind = "SOLD MOC"
	ExitBoughtMOC   ExitKind = "BOUGHT MOC"
)

// ExitEvent is the single exit produced for a validated position.
type ExitEvent struct {
	TimeOfDay float64  `json:"time"`
	Price     float64  `json:"price"`
	Kind      ExitKind `json:"type"`
}

// SimulationResult is the final state of one record: either a computed
// entry/exit with profit and return, or a rejection in Err. Never both
// empty.
type SimulationResult struct {
	Key    RecordKey
	Orders []string // every grammar match in document order; the last one was evaluated
	Entry  ValidatedPosition
	Exit   *ExitEvent
	Profit float64
	Return float64
	Err    error
}
