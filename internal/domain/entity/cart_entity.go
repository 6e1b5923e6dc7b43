package entity

import "errors"

var ErrNonPositiveQuantity = errors.New("quantity must be at least 1")

// CartLine is one product entry of a cart. Quantity is always >= 1.
type CartLine struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Cart keeps lines in insertion order, which is also checkout order.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add increments an existing line or appends a new one.
func (c *Cart) Add(productID, qty int) error {
	if qty < 1 {
		return ErrNonPositiveQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += qty
			return nil
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: qty})
	return nil
}

// Remove deletes the line for productID; absent ids are a no-op.
func (c *Cart) Remove(productID int) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Quantity returns the quantity held for productID, or 0.
func (c *Cart) Quantity(productID int) int {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

func (c *Cart) Clear()        { c.Lines = nil }
func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }
