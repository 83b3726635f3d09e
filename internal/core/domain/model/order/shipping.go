package order

import (
	"fmt"
	"time"

	"ecshop/internal/pkg/errs"
)

// ShippingMethod keys the static shipping rate table.
type ShippingMethod string

const (
	// ShippingStandard is the default 7-day delivery option.
	ShippingStandard ShippingMethod = "standard"

	// ShippingExpress delivers within 3 days.
	ShippingExpress ShippingMethod = "express"

	// ShippingOvernight delivers the next day.
	ShippingOvernight ShippingMethod = "overnight"
)

// ShippingRate describes a shipping option: a flat cost and an estimated
// number of days until delivery.
type ShippingRate struct {
	DisplayName string
	Cost        float64
	Days        int
}

func shippingRates() map[ShippingMethod]ShippingRate {
	return map[ShippingMethod]ShippingRate{
		ShippingStandard:  {DisplayName: "Standard delivery", Cost: 800, Days: 7},
		ShippingExpress:   {DisplayName: "Express delivery", Cost: 1500, Days: 3},
		ShippingOvernight: {DisplayName: "Overnight delivery", Cost: 2500, Days: 1},
	}
}

// ShippingMethodFromString parses a shipping method key from the API or
// storage, rejecting unknown keys before any pricing happens.
func ShippingMethodFromString(s string) (ShippingMethod, error) {
	method := ShippingMethod(s)
	if err := method.Validate(); err != nil {
		return "", err
	}
	return method, nil
}

// Validate checks that the method exists in the rate table.
func (m ShippingMethod) Validate() error {
	if _, ok := shippingRates()[m]; !ok {
		return errs.NewValidationError(
			errs.CodeInvalidShippingMethod,
			fmt.Sprintf("unknown shipping method: %q", string(m)),
		)
	}
	return nil
}

// String returns the method key in its persisted textual form.
func (m ShippingMethod) String() string {
	return string(m)
}

// Rate returns the rate table entry for the method.
// The method must be valid; unknown methods return the zero rate.
func (m ShippingMethod) Rate() ShippingRate {
	return shippingRates()[m]
}

// Cost returns the flat shipping cost for the method.
func (m ShippingMethod) Cost() float64 {
	return m.Rate().Cost
}

// EstimatedDelivery returns the expected delivery date for an order placed at now.
func (m ShippingMethod) EstimatedDelivery(now time.Time) time.Time {
	return now.AddDate(0, 0, m.Rate().Days)
}
