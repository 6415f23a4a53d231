package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

const placedMessage = "Order placed"

// Order is the aggregate root of a customer's checkout.
//
// Order follows these invariants:
//   - It has at least one line item and a customer
//   - Total equals subtotal + tax + shipping
//   - The tracking log only grows and its stages never move backwards
//   - The tracking number is assigned at most once
//   - Status transitions follow Status
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	items           []LineItem
	deliveryAddress string
	totals          Totals
	status          Status

	paymentReference      string
	trackingNumber        string
	trackingUpdates       []TrackingUpdate
	estimatedDeliveryDate *time.Time

	createdAt time.Time
	updatedAt time.Time

	// pending counts the trailing tracking updates not yet persisted.
	pending int
	// storedStatus is the status last read from or written to storage.
	storedStatus Status

	guard guard.ConstructorGuard
}

// Snapshot carries the persisted state of an order into RestoreOrder.
type Snapshot struct {
	ID                    kernel.UUID
	CustomerID            kernel.UUID
	Items                 []LineItem
	DeliveryAddress       string
	Subtotal              kernel.Money
	Tax                   kernel.Money
	Shipping              kernel.Money
	Total                 kernel.Money
	Status                Status
	PaymentReference      string
	TrackingNumber        string
	TrackingUpdates       []TrackingUpdate
	EstimatedDeliveryDate *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewOrder places an order: the totals are computed with pricing, the status is
// Processing and the tracking log starts with a "placed" update.
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, items, "12 Baker St", pricing, time.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []LineItem,
	deliveryAddress string,
	pricing Pricing,
	at time.Time,
) (*Order, error) {
	o := &Order{
		status:       Processing,
		storedStatus: Processing,
		createdAt:    at.UTC(),
		updatedAt:    at.UTC(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		requireTime("createdAt", at),
	); err != nil {
		return nil, err
	}
	o.totals = pricing.Price(o.items)

	placed, err := NewTrackingUpdate(StagePlaced, placedMessage, at)
	if err != nil {
		return nil, err
	}
	o.appendUpdate(placed)

	return o, nil
}

// RestoreOrder rebuilds an order from storage, rejecting inconsistent totals
// and tracking logs whose stages move backwards.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		paymentReference: s.PaymentReference,
		trackingNumber:   strings.TrimSpace(s.TrackingNumber),
		createdAt:        s.CreatedAt.UTC(),
		updatedAt:        s.UpdatedAt.UTC(),
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setItems(s.Items),
		o.setDeliveryAddress(s.DeliveryAddress),
		o.setStatus(s.Status),
		o.restoreTrackingUpdates(s.TrackingUpdates),
		requireTime("createdAt", s.CreatedAt),
	); err != nil {
		return nil, err
	}

	totals, err := restoreTotals(o.items, s.Subtotal, s.Tax, s.Shipping, s.Total)
	if err != nil {
		return nil, err
	}
	o.totals = totals
	o.storedStatus = o.status

	if s.EstimatedDeliveryDate != nil {
		date := s.EstimatedDeliveryDate.UTC()
		o.estimatedDeliveryDate = &date
	}

	return o, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) Subtotal() kernel.Money {
	return o.totals.Subtotal()
}

func (o *Order) Tax() kernel.Money {
	return o.totals.Tax()
}

func (o *Order) Shipping() kernel.Money {
	return o.totals.Shipping()
}

func (o *Order) Total() kernel.Money {
	return o.totals.Total()
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentReference() string {
	return o.paymentReference
}

// TrackingNumber is empty until assigned.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// TrackingUpdates returns a copy of the tracking log, oldest first.
func (o *Order) TrackingUpdates() []TrackingUpdate {
	return slices.Clone(o.trackingUpdates)
}

// PendingTrackingUpdates returns the updates appended since the order was
// created or restored and not yet acknowledged by ClearPendingTrackingUpdates.
func (o *Order) PendingTrackingUpdates() []TrackingUpdate {
	return slices.Clone(o.trackingUpdates[len(o.trackingUpdates)-o.pending:])
}

// ClearPendingTrackingUpdates is called once the pending updates are stored.
// The current status becomes the stored status.
func (o *Order) ClearPendingTrackingUpdates() {
	o.pending = 0
	o.storedStatus = o.status
}

// StoredStatus is the status the order had when it was last loaded or saved.
// Repositories only overwrite an order whose stored row still has this status.
func (o *Order) StoredStatus() Status {
	return o.storedStatus
}

// TrackingStages derives the five progress flags from the status. A cancelled
// order keeps the flags of the furthest stage it reached before cancellation.
func (o *Order) TrackingStages() TrackingStages {
	if o.status != Cancelled {
		return stagesUpTo(o.status.Stage())
	}

	furthest := StageNone
	for _, update := range o.trackingUpdates {
		furthest = max(furthest, update.Stage())
	}
	return stagesUpTo(furthest)
}

// EstimatedDeliveryDate is nil until set.
func (o *Order) EstimatedDeliveryDate() *time.Time {
	if o.estimatedDeliveryDate == nil {
		return nil
	}
	date := *o.estimatedDeliveryDate
	return &date
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ProviderIDs lists the distinct providers of the line items in item order.
func (o *Order) ProviderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.items))
	for _, item := range o.items {
		if !slices.ContainsFunc(ids, item.ProviderID().IsEqual) {
			ids = append(ids, item.ProviderID())
		}
	}
	return ids
}

// HasProvider reports whether any line item belongs to providerID.
func (o *Order) HasProvider(providerID kernel.UUID) bool {
	return slices.ContainsFunc(o.items, func(item LineItem) bool {
		return item.ProviderID().IsEqual(providerID)
	})
}

// ContainsMeal reports whether any line item is mealID.
func (o *Order) ContainsMeal(mealID kernel.UUID) bool {
	return slices.ContainsFunc(o.items, func(item LineItem) bool {
		return item.MealID().IsEqual(mealID)
	})
}

// IsUnpaidSince reports whether the order is still awaiting payment and was placed before cutoff.
func (o *Order) IsUnpaidSince(cutoff time.Time) bool {
	return o.status == Processing && o.createdAt.Before(cutoff)
}

// ConfirmPayment records the payment reference and moves Processing to Paid.
// A "placed" update noting the payment is appended.
func (o *Order) ConfirmPayment(reference string, at time.Time) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return errs.NewValueIsRequiredError("paymentReference")
	}

	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}

	update, err := NewTrackingUpdate(StagePlaced, "Payment confirmed", at)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paymentReference = reference
	o.appendUpdate(update)
	o.touch(at)
	return nil
}

// AppendTrackingUpdate records a tracking message. The stage may repeat the current
// stage or move forward, possibly skipping stages; the status follows the stage.
func (o *Order) AppendTrackingUpdate(stage Stage, message string, at time.Time) error {
	newStatus, err := o.status.Advance(stage)
	if err != nil {
		return err
	}

	update, err := NewTrackingUpdate(stage, message, at)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendUpdate(update)
	o.touch(at)
	return nil
}

// AssignTrackingNumber sets the tracking number once. A second assignment is a conflict.
func (o *Order) AssignTrackingNumber(number string, at time.Time) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if o.trackingNumber != "" {
		return errs.NewConflictErrorWithCause(
			"trackingNumber",
			fmt.Errorf("order already has tracking number %s", o.trackingNumber),
		)
	}
	if o.status == Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order cannot get a tracking number", o.status),
		)
	}

	o.trackingNumber = number
	o.touch(at)
	return nil
}

// SetEstimatedDeliveryDate is rejected on delivered or cancelled orders and for
// dates before the day the order was placed.
func (o *Order) SetEstimatedDeliveryDate(date time.Time, at time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("estimatedDeliveryDate")
	}
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order cannot get an estimated delivery date", o.status),
		)
	}

	date = date.UTC()
	placedOn := o.createdAt.Truncate(24 * time.Hour)
	if date.Before(placedOn) {
		return errs.NewValueIsInvalidErrorWithCause(
			"estimatedDeliveryDate",
			fmt.Errorf("%s is before the order date %s", date.Format(time.DateOnly), placedOn.Format(time.DateOnly)),
		)
	}

	o.estimatedDeliveryDate = &date
	o.touch(at)
	return nil
}

// Cancel moves Processing, Paid or Approved orders to Cancelled.
func (o *Order) Cancel(at time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(at)
	return nil
}

// EnsureRateable checks that customerID may rate mealID through this order:
// the customer placed it, it is delivered and the meal is one of its items.
func (o *Order) EnsureRateable(customerID, mealID kernel.UUID) error {
	if !o.customerID.IsEqual(customerID) {
		return errs.NewAuthorizationErrorWithCause("rate meal", errors.New("order belongs to another customer"))
	}
	if o.status != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order cannot be rated, it must be Delivered", o.status),
		)
	}
	if !o.ContainsMeal(mealID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"mealId",
			fmt.Errorf("meal %s is not part of order %s", mealID, o.id),
		)
	}
	return nil
}

func (o *Order) appendUpdate(update TrackingUpdate) {
	o.trackingUpdates = append(o.trackingUpdates, update)
	o.pending++
}

func (o *Order) touch(at time.Time) {
	if at.After(o.updatedAt) {
		o.updatedAt = at.UTC()
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.MealID().Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", err)
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) restoreTrackingUpdates(updates []TrackingUpdate) error {
	if len(updates) == 0 {
		return errs.NewValueIsRequiredError("trackingUpdates")
	}
	for i := 1; i < len(updates); i++ {
		if updates[i].Stage() < updates[i-1].Stage() {
			return errs.NewValueIsInvalidErrorWithCause(
				"trackingUpdates",
				fmt.Errorf("stage moves back from %s to %s", updates[i-1].Stage(), updates[i].Stage()),
			)
		}
	}
	o.trackingUpdates = slices.Clone(updates)
	return nil
}

func requireText(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func requireTime(param string, value time.Time) error {
	if value.IsZero() {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
