package order

import (
	"fmt"
	"strings"

	"feedme/internal/pkg/errs"
)

// Status is the single lifecycle state of an order.
//
//	Processing ──> Paid ──> Approved ──> Processed ──> Shipped ──> Delivered
//	    │           │          │
//	    └───────────┴──────────┴──> Cancelled
//
// The tracking stages shown to customers are derived from it, see Status.Stage.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Processing is the initial status: the order is placed and awaits payment.
	Processing

	// Paid means the payment was confirmed.
	Paid

	// Approved means a provider accepted the order.
	Approved

	// Processed means the meals are prepared.
	Processed

	// Shipped means the order is on its way.
	Shipped

	// Delivered is final.
	Delivered

	// Cancelled is final. It is reachable from Processing, Paid and Approved.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Processing: "Processing",
		Paid:       "Paid",
		Approved:   "Approved",
		Processed:  "Processed",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Processing: "Processing",
		Paid:       "Paid",
		Approved:   "Approved",
		Processed:  "Processed",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Stage maps the status onto the tracking progression.
// Processing and Paid are both "placed"; Cancelled has no stage.
func (s Status) Stage() Stage {
	switch s {
	case Processing, Paid:
		return StagePlaced
	case Approved:
		return StageApproved
	case Processed:
		return StageProcessed
	case Shipped:
		return StageShipped
	case Delivered:
		return StageDelivered
	default:
		return StageNone
	}
}

// Pay transitions Processing to Paid.
func (s Status) Pay() (Status, error) {
	if s != Processing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to confirm payment", s.String()),
		)
	}
	return Paid, nil
}

// Advance returns the status reached when a tracking update for stage is recorded.
//
// The stage may repeat the current one, which keeps the status, or move forward,
// skipping stages if needed. An unpaid order only accepts placed updates. Moving
// backwards and updating a cancelled or unknown order are rejected.
func (s Status) Advance(stage Stage) (Status, error) {
	if err := stage.Validate(); err != nil {
		return 0, err
	}
	if s == Cancelled || s.Validate() != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order cannot receive tracking updates", s.String()),
		)
	}

	current := s.Stage()
	switch {
	case s == Processing && stage > StagePlaced:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("order must be paid before it can be %s", stage),
		)
	case stage < current:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("cannot move back from %s to %s", current, stage),
		)
	case stage == current:
		return s, nil
	default:
		return stage.status(), nil
	}
}

// Cancel transitions Processing, Paid or Approved to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Processing && s != Paid && s != Approved {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}
