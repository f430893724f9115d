package results

// StatusLabel is a shipment status as the agent spells it. Labels outside
// the known set are kept verbatim so they can still be displayed.
type StatusLabel string

const (
	StatusPlaced         StatusLabel = "Placed"
	StatusShipped        StatusLabel = "Shipped"
	StatusOutForDelivery StatusLabel = "Out for Delivery"
	StatusDelivered      StatusLabel = "Delivered"
	StatusCancelled      StatusLabel = "Cancelled"
)

const MaxStage = 3

func (s StatusLabel) Known() bool {
	switch s {
	case StatusPlaced, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status renders as a badge instead of a
// progression.
func (s StatusLabel) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// StageOf maps a status onto the Placed..Delivered progression. Unknown
// labels sit at stage 0.
func StageOf(status StatusLabel) int {
	switch status {
	case StatusShipped:
		return 1
	case StatusOutForDelivery:
		return 2
	case StatusDelivered:
		return 3
	default:
		return 0
	}
}

// FractionOf is the raw completion ratio stage/3, clamped to [0,1].
func FractionOf(stage int) float64 {
	if stage < 0 {
		stage = 0
	}
	if stage > MaxStage {
		stage = MaxStage
	}
	return float64(stage) / MaxStage
}
