package domain

type DeliveryStatus int

const (
	Delivered DeliveryStatus = iota + 1
	Failed
)

func (s DeliveryStatus) String() string {
	switch s {
	case Delivered:
		return "delivered"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one delivery attempt. Reason is set only when Failed.
type Outcome struct {
	Status DeliveryStatus
	Reason string
}

func DeliveredOutcome() Outcome {
	return Outcome{Status: Delivered}
}

func FailedOutcome(reason string) Outcome {
	return Outcome{Status: Failed, Reason: reason}
}

func (o Outcome) OK() bool {
	return o.Status == Delivered
}
