package order

import (
	"errors"
	"fmt"
)

var (
	// ErrItemIsNotConstructed is returned when an Item was not created via
	// NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

	// ErrItemProductIDIsInvalid is returned for non-positive product ids.
	ErrItemProductIDIsInvalid = errors.New("item product id must be greater than 0")

	// ErrItemNameIsRequired is returned for empty product-name snapshots.
	ErrItemNameIsRequired = errors.New("item product name is required")

	// ErrItemPriceIsInvalid is returned for negative unit prices.
	ErrItemPriceIsInvalid = errors.New("item unit price must not be negative")

	// ErrItemQuantityIsInvalid is returned for non-positive quantities.
	ErrItemQuantityIsInvalid = errors.New("item quantity must be greater than 0")

	// ErrItemIDAlreadyAssigned is returned when persistence tries to assign
	// an identity to an item that already has one.
	ErrItemIDAlreadyAssigned = errors.New("item id is already assigned")
)

// Item is an order line. It snapshots product identity and price at order
// time so historical orders stay immutable even when the catalog changes.
// Items are created once with the order and never mutated afterwards.
type Item struct {
	id             int64
	orderID        int64
	productID      int64
	productName    string
	productSKU     string
	productImage   string
	unitPrice      float64
	quantity       int
	totalPrice     float64
	discountAmount float64
	finalPrice     float64

	isConstructed bool
}

// NewItem snapshots a cart line into an order item.
// totalPrice is derived as unitPrice * quantity; finalPrice equals
// totalPrice minus item-level discount (none at order time).
func NewItem(productID int64, name, sku, imageURL string, unitPrice float64, quantity int) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setProductID(productID),
		item.setSnapshot(name, sku, imageURL),
		item.setPrice(unitPrice, quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an item from persistence.
func RestoreItem(
	id, orderID, productID int64,
	name, sku, imageURL string,
	unitPrice float64,
	quantity int,
	totalPrice, discountAmount, finalPrice float64,
) (*Item, error) {
	item, err := NewItem(productID, name, sku, imageURL, unitPrice, quantity)
	if err != nil {
		return nil, err
	}

	item.id = id
	item.orderID = orderID
	item.totalPrice = totalPrice
	item.discountAmount = discountAmount
	item.finalPrice = finalPrice
	return item, nil
}

// Validate ensures the item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's storage identity (0 until persisted).
func (i *Item) ID() int64 { return i.id }

// OrderID returns the owning order's identity (0 until persisted).
func (i *Item) OrderID() int64 { return i.orderID }

// ProductID returns the referenced catalog product.
func (i *Item) ProductID() int64 { return i.productID }

// ProductName returns the product name snapshot taken at order time.
func (i *Item) ProductName() string { return i.productName }

// ProductSKU returns the SKU snapshot taken at order time.
func (i *Item) ProductSKU() string { return i.productSKU }

// ProductImageURL returns the image URL snapshot taken at order time.
func (i *Item) ProductImageURL() string { return i.productImage }

// UnitPrice returns the per-unit price snapshot taken at order time.
func (i *Item) UnitPrice() float64 { return i.unitPrice }

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int { return i.quantity }

// TotalPrice returns unitPrice * quantity.
func (i *Item) TotalPrice() float64 { return i.totalPrice }

// DiscountAmount returns the item-level discount.
func (i *Item) DiscountAmount() float64 { return i.discountAmount }

// FinalPrice returns totalPrice minus the item-level discount.
func (i *Item) FinalPrice() float64 { return i.finalPrice }

// AssignIdentity attaches storage identity after the initial insert.
// Fails if the item already has an identity.
func (i *Item) AssignIdentity(id, orderID int64) error {
	if i.id != 0 {
		return fmt.Errorf("%w: %d", ErrItemIDAlreadyAssigned, i.id)
	}
	i.id = id
	i.orderID = orderID
	return nil
}

func (i *Item) setProductID(productID int64) error {
	if productID <= 0 {
		return ErrItemProductIDIsInvalid
	}
	i.productID = productID
	return nil
}

func (i *Item) setSnapshot(name, sku, imageURL string) error {
	if name == "" {
		return ErrItemNameIsRequired
	}
	i.productName = name
	i.productSKU = sku
	i.productImage = imageURL
	return nil
}

func (i *Item) setPrice(unitPrice float64, quantity int) error {
	if unitPrice < 0 {
		return fmt.Errorf("%w: %f", ErrItemPriceIsInvalid, unitPrice)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: %d", ErrItemQuantityIsInvalid, quantity)
	}

	i.unitPrice = unitPrice
	i.quantity = quantity
	i.totalPrice = unitPrice * float64(quantity)
	i.finalPrice = i.totalPrice
	return nil
}
