package order

import "github.com/shopspring/decimal"

// Item is one line of an order. Price is the line price and defaults to zero.
type Item struct {
	Quantity int
	Price    decimal.Decimal
}

func NewItem(quantity int, price decimal.Decimal) Item {
	return Item{Quantity: quantity, Price: price}
}
