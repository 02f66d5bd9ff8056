package lending

// Reason is the machine readable code of a business rejection
type Reason string

const (
	ReasonNoCopiesAvailable Reason = "NO_COPIES_AVAILABLE"
	ReasonBelowMinimumAge   Reason = "BELOW_MINIMUM_AGE"
	ReasonReliabilityTooLow Reason = "RELIABILITY_TOO_LOW"
	ReasonNotBorrowable     Reason = "NOT_BORROWABLE"
	ReasonAlreadyReturned   Reason = "ALREADY_RETURNED"
	ReasonAlreadySubscribed Reason = "ALREADY_SUBSCRIBED"
	ReasonNotSubscribed     Reason = "NOT_SUBSCRIBED"
)

const (
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// Rejection explains why a request completed without changing state
type Rejection struct {
	Reason  Reason
	Message string
}

// Outcome is either Accepted(details) or Rejected(reason).
// Errors stay on the error return; an Outcome is always a completed request.
type Outcome[T any] struct {
	details   *T
	rejection *Rejection
}

func Accepted[T any](details T) *Outcome[T] {
	return &Outcome[T]{details: &details}
}

func Rejected[T any](reason Reason, message string) *Outcome[T] {
	return &Outcome[T]{rejection: &Rejection{Reason: reason, Message: message}}
}

func (o *Outcome[T]) IsAccepted() bool {
	return o.details != nil
}

// Details returns the accepted details, ok=false when rejected
func (o *Outcome[T]) Details() (T, bool) {
	if o.details == nil {
		var zero T
		return zero, false
	}
	return *o.details, true
}

// Rejection returns the rejection, ok=false when accepted
func (o *Outcome[T]) Rejection() (Rejection, bool) {
	if o.rejection == nil {
		return Rejection{}, false
	}
	return *o.rejection, true
}

// Response renders the outcome envelope sent to clients
func (o *Outcome[T]) Response() OutcomeResponse[T] {
	if o.rejection != nil {
		return OutcomeResponse[T]{
			Status:  StatusRejected,
			Reason:  o.rejection.Reason,
			Message: o.rejection.Message,
		}
	}
	return OutcomeResponse[T]{
		Status:  StatusAccepted,
		Details: o.details,
	}
}
