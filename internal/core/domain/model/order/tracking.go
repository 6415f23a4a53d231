package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"feedme/internal/pkg/errs"
)

// Stage is one of the five ordered fulfilment milestones.
type Stage int

const (
	StageNone Stage = iota
	StagePlaced
	StageApproved
	StageProcessed
	StageShipped
	StageDelivered
)

var stageNames = map[Stage]string{
	StagePlaced:    "placed",
	StageApproved:  "approved",
	StageProcessed: "processed",
	StageShipped:   "shipped",
	StageDelivered: "delivered",
}

// ParseStage accepts a stage name in any letter case.
func ParseStage(s string) (Stage, error) {
	for stage, name := range stageNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return stage, nil
		}
	}
	return StageNone, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid tracking stage", s))
}

func (s Stage) Validate() error {
	if _, ok := stageNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid tracking stage", s))
	}
	return nil
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "none"
}

// status is the order status a forward move to the stage results in.
// Placed never moves an order forward, so it is only reached as the current stage.
func (s Stage) status() Status {
	switch s {
	case StageApproved:
		return Approved
	case StageProcessed:
		return Processed
	case StageShipped:
		return Shipped
	case StageDelivered:
		return Delivered
	default:
		return Processing
	}
}

// TrackingUpdate is one entry of the append-only tracking log.
type TrackingUpdate struct {
	stage     Stage
	message   string
	timestamp time.Time
}

// NewTrackingUpdate validates the stage and requires a non-blank message.
func NewTrackingUpdate(stage Stage, message string, timestamp time.Time) (TrackingUpdate, error) {
	message = strings.TrimSpace(message)

	if err := errors.Join(
		stage.Validate(),
		requireText("message", message),
		requireTime("timestamp", timestamp),
	); err != nil {
		return TrackingUpdate{}, err
	}

	return TrackingUpdate{
		stage:     stage,
		message:   message,
		timestamp: timestamp.UTC(),
	}, nil
}

func (u TrackingUpdate) Stage() Stage {
	return u.stage
}

func (u TrackingUpdate) Message() string {
	return u.message
}

func (u TrackingUpdate) Timestamp() time.Time {
	return u.timestamp
}

// TrackingStages is the five-flag view of fulfilment progress.
type TrackingStages struct {
	Placed    bool
	Approved  bool
	Processed bool
	Shipped   bool
	Delivered bool
}

// stagesUpTo marks every stage at or before reached.
func stagesUpTo(reached Stage) TrackingStages {
	return TrackingStages{
		Placed:    reached >= StagePlaced,
		Approved:  reached >= StageApproved,
		Processed: reached >= StageProcessed,
		Shipped:   reached >= StageShipped,
		Delivered: reached >= StageDelivered,
	}
}
