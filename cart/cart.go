// Package cart is the local order-building API consumed directly by the
// calling application. It never touches the network; checkout-svc only sees
// the frozen total.
package cart

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"nightpay/money"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrCartFrozen      = errors.New("cart is frozen")
)

// Item is a purchasable reference: a drink or a pricing tier.
type Item struct {
	ID        string
	Name      string
	UnitPrice money.Amount
}

// Line is one cart entry. Quantity is always >= 1; a line that would drop to
// zero is removed instead.
type Line struct {
	Item     Item
	Quantity int
}

// Cart accumulates lines in insertion order. A single Cart is not safe for
// concurrent mutation; callers needing that must serialize at the boundary.
type Cart struct {
	id       string
	currency string
	lines    []Line
	frozen   bool
}

// New creates an empty cart. Every item added later must be priced in the
// given currency.
func New(currency string) (*Cart, error) {
	if _, err := money.Zero(currency); err != nil {
		return nil, err
	}
	return &Cart{id: uuid.NewString(), currency: currency}, nil
}

func (c *Cart) ID() string { return c.id }

func (c *Cart) Currency() string { return c.currency }

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Add appends an item or, when the item id is already present, bumps its
// quantity instead of duplicating the line.
func (c *Cart) Add(item Item, quantity int) error {
	if c.frozen {
		return ErrCartFrozen
	}
	if quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if item.UnitPrice.Currency() != c.currency {
		return fmt.Errorf("%w: cart is %s, item %q is %s",
			money.ErrCurrencyMismatch, c.currency, item.ID, item.UnitPrice.Currency())
	}

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, Line{Item: item, Quantity: quantity})
	return nil
}

// Remove deletes the whole line for an item id. Absent items are a no-op.
func (c *Cart) Remove(itemID string) error {
	if c.frozen {
		return ErrCartFrozen
	}
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

// Increment bumps an item's quantity by one. Absent items are a no-op.
func (c *Cart) Increment(itemID string) error {
	if c.frozen {
		return ErrCartFrozen
	}
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines[i].Quantity++
			return nil
		}
	}
	return nil
}

// Decrement drops an item's quantity by one, removing the line entirely when
// it reaches zero.
func (c *Cart) Decrement(itemID string) error {
	if c.frozen {
		return ErrCartFrozen
	}
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines[i].Quantity--
			if c.lines[i].Quantity == 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			return nil
		}
	}
	return nil
}

// Total recomputes sum(unit price * quantity) on every call; nothing is
// cached between mutations.
func (c *Cart) Total() (money.Amount, error) {
	total, err := money.Zero(c.currency)
	if err != nil {
		return money.Amount{}, err
	}
	for _, line := range c.lines {
		total, err = total.Add(line.Item.UnitPrice.MulInt(int64(line.Quantity)))
		if err != nil {
			return money.Amount{}, err
		}
	}
	return total, nil
}

// Freeze makes the cart immutable for submission. Mutations afterwards fail
// with ErrCartFrozen.
func (c *Cart) Freeze() { c.frozen = true }

func (c *Cart) Frozen() bool { return c.frozen }
