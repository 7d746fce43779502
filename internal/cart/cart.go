// Package cart models the storefront's client-side shopping cart: an
// ordered list of line items keyed by product ID with derived totals,
// persisted through a Store on every mutation. The cart is owned by one
// browsing session; it is not shared state.
package cart

import "log"

// Item is one cart line. Price is the snapshot taken when the product was
// first added; a later catalog price change does not affect it.
type Item struct {
	ProductID uint    `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Snapshot is the product data captured at add-to-cart time.
type Snapshot struct {
	ProductID uint
	Name      string
	Price     float64
	Image     string
}

// Cart holds the session's line items and their derived totals. Totals are
// never stored independently: every transition recomputes both from the
// item list.
type Cart struct {
	items       []Item
	totalItems  int
	totalAmount float64
	store       Store
}

// New creates a cart seeded from the store's persisted items, if any.
// Malformed persisted data is discarded silently and the cart starts
// empty.
func New(store Store) *Cart {
	c := &Cart{store: store}
	if store != nil {
		if items, err := store.Load(); err == nil {
			c.items = items
		} else {
			log.Printf("Discarding persisted cart: %v", err)
		}
	}
	c.recalculate()
	return c
}

// Add puts one unit of the product in the cart. If a line for the product
// already exists its quantity goes up by one; otherwise a new line with
// quantity 1 is appended. The price is taken from the snapshot, not
// re-fetched.
func (c *Cart) Add(p Snapshot) {
	for i := range c.items {
		if c.items[i].ProductID == p.ProductID {
			c.items[i].Quantity++
			c.commit()
			return
		}
	}
	c.items = append(c.items, Item{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
	c.commit()
}

// Remove drops the line for the given product ID. Removing an absent ID is
// a no-op.
func (c *Cart) Remove(productID uint) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.commit()
}

// SetQuantity sets the line's quantity. A quantity of zero or less removes
// the line entirely.
func (c *Cart) SetQuantity(productID uint, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			break
		}
	}
	c.commit()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
	c.commit()
}

// Load replaces the item list wholesale and recomputes totals. Used to
// restore a persisted cart.
func (c *Cart) Load(items []Item) {
	c.items = append([]Item(nil), items...)
	c.commit()
}

// Items returns a copy of the cart's lines in insertion order.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	return c.totalItems
}

// TotalAmount is the sum of price times quantity over all lines.
func (c *Cart) TotalAmount() float64 {
	return c.totalAmount
}

// commit recomputes the totals and persists the item list. Persistence is
// a side effect that cannot fail a transition; a store error is only
// logged.
func (c *Cart) commit() {
	c.recalculate()
	if c.store != nil {
		if err := c.store.Save(c.items); err != nil {
			log.Printf("Failed to persist cart: %v", err)
		}
	}
}

func (c *Cart) recalculate() {
	c.totalItems = 0
	c.totalAmount = 0
	for _, item := range c.items {
		c.totalItems += item.Quantity
		c.totalAmount += item.Price * float64(item.Quantity)
	}
}
