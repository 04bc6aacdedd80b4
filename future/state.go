package future

// State is the lifecycle phase of a Future.
//
// The numeric values match the internal state word, so converting between
// the two is a plain cast.
type State int

const (
	Pending State = iota
	Delivered
	Canceled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Delivered:
		return "delivered"
	case Canceled:
		return "canceled"
	default:
		return "<unknown>"
	}
}
