package domain

import (
	"errors"
	"strings"
)

// MaxQuantityPerItem caps how many units of one item a cart may hold.
const MaxQuantityPerItem = 10

var (
	ErrQuantityLimitExceeded = errors.New("quantity limit exceeded")
	ErrInvalidQuantity       = errors.New("quantity must not be negative")
	ErrEmptyItemID           = errors.New("item id is required")
	ErrNegativePrice         = errors.New("price must not be negative")
)

// Item carries the display and validation metadata of a listing.
type Item struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Image      string  `json:"image,omitempty"`
	SellerID   string  `json:"sellerId"`
	SellerName string  `json:"sellerName,omitempty"`
}

// Validate enforces the invariants required before an item enters a cart.
func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrEmptyItemID
	}
	if i.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// CartLine is one row per distinct item in a cart.
type CartLine struct {
	Item
	Quantity int `json:"quantity"`
}

// Subtotal returns price times quantity.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart is an ordered collection of lines keyed by item id. Cart is not safe
// for concurrent use; callers serialize access.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart from untrusted lines. Lines without an id or with a
// non-positive quantity are dropped, quantities above the cap are clamped and
// duplicate ids keep their first occurrence.
func NewCart(lines []CartLine) *Cart {
	c := &Cart{}
	c.Replace(lines)
	return c
}

// Replace swaps the cart contents for the normalized form of lines.
func (c *Cart) Replace(lines []CartLine) {
	normalized := make([]CartLine, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if line.ID == "" || line.Quantity <= 0 {
			continue
		}
		if _, dup := seen[line.ID]; dup {
			continue
		}
		seen[line.ID] = struct{}{}
		if line.Quantity > MaxQuantityPerItem {
			line.Quantity = MaxQuantityPerItem
		}
		normalized = append(normalized, line)
	}
	c.lines = normalized
}

// Lines returns a copy of the current lines in display order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int { return len(c.lines) }

// Find returns the line for id.
func (c *Cart) Find(id string) (CartLine, bool) {
	if i := c.index(id); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

// Increment adds one unit of item. A new line is inserted with quantity one
// and inserted reports true. Exceeding the cap leaves the cart untouched.
func (c *Cart) Increment(item Item) (inserted bool, err error) {
	if err := item.Validate(); err != nil {
		return false, err
	}
	if i := c.index(item.ID); i >= 0 {
		if c.lines[i].Quantity+1 > MaxQuantityPerItem {
			return false, ErrQuantityLimitExceeded
		}
		c.lines[i].Quantity++
		return false, nil
	}
	c.lines = append(c.lines, CartLine{Item: item, Quantity: 1})
	return true, nil
}

// Decrement removes one unit of id, dropping the line when it reaches zero.
func (c *Cart) Decrement(id string) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.lines[i].Quantity--
	if c.lines[i].Quantity <= 0 {
		c.removeAt(i)
	}
}

// SetQuantity overwrites the quantity of an existing line and returns the
// previous value. Zero removes the line.
func (c *Cart) SetQuantity(id string, quantity int) (previous int, found bool, err error) {
	if quantity < 0 {
		return 0, false, ErrInvalidQuantity
	}
	if quantity > MaxQuantityPerItem {
		return 0, false, ErrQuantityLimitExceeded
	}
	i := c.index(id)
	if i < 0 {
		return 0, false, nil
	}
	previous = c.lines[i].Quantity
	if quantity == 0 {
		c.removeAt(i)
		return previous, true, nil
	}
	c.lines[i].Quantity = quantity
	return previous, true, nil
}

// Remove deletes the line for id and returns it.
func (c *Cart) Remove(id string) (CartLine, bool) {
	i := c.index(id)
	if i < 0 {
		return CartLine{}, false
	}
	line := c.lines[i]
	c.removeAt(i)
	return line, true
}

// Restore re-inserts line unless a line with the same id already exists.
func (c *Cart) Restore(line CartLine) bool {
	if line.ID == "" || line.Quantity <= 0 || c.index(line.ID) >= 0 {
		return false
	}
	if line.Quantity > MaxQuantityPerItem {
		line.Quantity = MaxQuantityPerItem
	}
	c.lines = append(c.lines, line)
	return true
}

// Clear empties the cart and returns the lines it held.
func (c *Cart) Clear() []CartLine {
	prior := c.lines
	c.lines = nil
	return prior
}

// TotalItems sums quantities across lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums line subtotals.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

func (c *Cart) index(id string) int {
	for i := range c.lines {
		if c.lines[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}
