package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MaxLoad is the quantity capacity of one intake batch.
const MaxLoad = 25

// Order is the aggregate root of a customer's queue reservation.
//
// Order follows these invariants:
//   - createdAt and customerID never change after construction
//   - status equals the status of the last history entry
//   - status changes only through AddHistoryEntry (or Initialize)
//   - the total price is a cached value refreshed by CalculateTotalPrice
//
// The identity is zero until a repository persists the order.
type Order struct {
	id         kernel.UUID
	createdAt  time.Time
	customerID user.ID
	items      []Item
	history    []HistoryEntry
	status     Status
	total      decimal.NullDecimal

	isConstructed bool
}

// NewOrder creates a transient order for customerID.
// The order has no status until Initialize is called.
//
// Example:
//
//	o := order.NewOrder(customerID, order.NewItem(2, decimal.RequireFromString("1.50")))
//	o.Initialize()
//	o.CalculateTotalPrice()
//	if err := o.Validate(); err != nil {
//	    // err wraps errs.ErrFieldNotValid
//	}
func NewOrder(customerID user.ID, items ...Item) *Order {
	return &Order{
		createdAt:     now(),
		customerID:    customerID,
		items:         slices.Clone(items),
		isConstructed: true,
	}
}

// RestoreOrder rebuilds a persisted order. The current status is taken from
// the last history entry.
func RestoreOrder(
	id kernel.UUID,
	createdAt time.Time,
	customerID user.ID,
	items []Item,
	history []HistoryEntry,
	total decimal.Decimal,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("history")
	}

	o := &Order{
		id:            id,
		createdAt:     createdAt,
		customerID:    customerID,
		items:         slices.Clone(items),
		history:       slices.Clone(history),
		status:        history[len(history)-1].Status(),
		total:         decimal.NewNullDecimal(total),
		isConstructed: true,
	}

	return o, nil
}

// now is the clock used for creation and transition timestamps.
// Values are truncated to the precision the store keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) CustomerID() user.ID {
	return o.customerID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// History returns a copy of the transitions, oldest first.
func (o *Order) History() []HistoryEntry {
	return slices.Clone(o.history)
}

func (o *Order) Status() Status {
	return o.status
}

// TotalPrice returns the cached total; zero before the first CalculateTotalPrice.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.total.Decimal
}

// IsPersisted reports whether a repository has assigned the identity.
func (o *Order) IsPersisted() bool {
	return !o.id.IsZero()
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.IsPersisted() && o.id.IsEqual(other.id)
}

// AssignID is called by repositories on insert. It can be called once.
func (o *Order) AssignID(id kernel.UUID) error {
	if o.IsPersisted() {
		return ErrIDAlreadyAssigned
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// AddItem appends a line. The cached total is left untouched.
func (o *Order) AddItem(item Item) {
	o.items = append(o.items, item)
}

// Initialize clears the history and applies RESERVED.
func (o *Order) Initialize() {
	o.history = nil
	o.status = Unknown
	// Unknown -> Reserved is always allowed.
	_ = o.AddHistoryEntry(Reserved)
}

// AddHistoryEntry moves the order to newStatus and records the transition.
//
// Returns an error wrapping ErrIllegalTransition when the current status is
// set and is not RESERVED, or when newStatus equals the current status.
func (o *Order) AddHistoryEntry(newStatus Status) error {
	next, err := o.status.Transition(newStatus)
	if err != nil {
		return err
	}

	o.history = append(o.history, NewHistoryEntry(next, now()))
	o.status = next
	return nil
}

// CalculateTotalPrice sums the item prices, caches and returns the result.
func (o *Order) CalculateTotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Price)
	}
	o.total = decimal.NewNullDecimal(total)
	return total
}

// CalculateTotalQuantity sums the item quantities.
func (o *Order) CalculateTotalQuantity() int {
	quantity := 0
	for _, item := range o.items {
		quantity += item.Quantity
	}
	return quantity
}

// Validate checks construction and every field, returning an
// *errs.FieldNotValidError that names the first offending field.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	if o.customerID <= 0 {
		return errs.NewFieldNotValidErrorWithCause("customerId", errs.NewValueIsRequiredError("customerId"))
	}

	if len(o.items) == 0 {
		return errs.NewFieldNotValidErrorWithCause("items", errs.NewValueIsRequiredError("items"))
	}

	for i, item := range o.items {
		if item.Quantity < 1 {
			return errs.NewFieldNotValidErrorWithCause(fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", item.Quantity))
		}
		if item.Price.IsNegative() {
			return errs.NewFieldNotValidErrorWithCause(fmt.Sprintf("items[%d].price", i),
				fmt.Errorf("%s is negative", item.Price))
		}
	}

	if len(o.history) == 0 {
		return errs.NewFieldNotValidErrorWithCause("history", errs.NewValueIsRequiredError("history"))
	}

	if err := o.status.Validate(); err != nil {
		return errs.NewFieldNotValidErrorWithCause("currentStatus", err)
	}

	if last := o.history[len(o.history)-1].Status(); last != o.status {
		return errs.NewFieldNotValidErrorWithCause("currentStatus",
			errors.New("does not match the last history entry"))
	}

	if !o.total.Valid {
		return errs.NewFieldNotValidErrorWithCause("totalPrice", errs.NewValueIsRequiredError("totalPrice"))
	}

	if o.total.Decimal.IsNegative() {
		return errs.NewFieldNotValidErrorWithCause("totalPrice", fmt.Errorf("%s is negative", o.total.Decimal))
	}

	return nil
}
