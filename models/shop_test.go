package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductEffectivePrice(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 100, 0, 100},
		{"discount undercuts", 100, 80, 80},
		{"discount equals price", 100, 100, 100},
		{"discount above price ignored", 100, 120, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{Price: tc.price, DiscountPrice: tc.discount}
			assert.Equal(t, tc.want, p.EffectivePrice())
		})
	}
}

func TestServiceEffectivePrice(t *testing.T) {
	// Unlike products, a discount equal to the list price counts.
	s := Service{Price: 100, DiscountPrice: 100}
	assert.Equal(t, 100.0, s.EffectivePrice())

	s = Service{Price: 100, DiscountPrice: 75}
	assert.Equal(t, 75.0, s.EffectivePrice())
	assert.Equal(t, 25, s.DiscountPercentage())

	s = Service{Price: 100, DiscountPrice: 150}
	assert.Equal(t, 100.0, s.EffectivePrice())
	assert.Equal(t, 0, s.DiscountPercentage())
}

func TestDiscountIsValid(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name string
		d    Discount
		want bool
	}{
		{"active unlimited", Discount{IsActive: true}, true},
		{"inactive", Discount{IsActive: false}, false},
		{"not yet valid", Discount{IsActive: true, ValidFrom: &future}, false},
		{"expired", Discount{IsActive: true, ValidTo: &past}, false},
		{"within window", Discount{IsActive: true, ValidFrom: &past, ValidTo: &future}, true},
		{"usage exhausted", Discount{IsActive: true, UsageLimit: 3, UsedCount: 3}, false},
		{"usage remaining", Discount{IsActive: true, UsageLimit: 3, UsedCount: 2}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.d.IsValid(now))
		})
	}
}

func TestDiscountApply(t *testing.T) {
	pct := Discount{DiscountType: DiscountPercentage, Value: 10}
	assert.Equal(t, 50.0, pct.Apply(500))

	fixed := Discount{DiscountType: DiscountFixed, Value: 30}
	assert.Equal(t, 30.0, fixed.Apply(500))

	// Reduction is capped at the amount itself.
	big := Discount{DiscountType: DiscountFixed, Value: 900}
	assert.Equal(t, 500.0, big.Apply(500))
}

func TestOrderRecalculateTotal(t *testing.T) {
	o := Order{Subtotal: 100, DiscountAmount: 20, ShippingCost: 10, TaxAmount: 5}
	o.RecalculateTotal()
	assert.Equal(t, 95.0, o.Total)

	// Floored at zero when the discount swamps everything.
	o = Order{Subtotal: 10, DiscountAmount: 50}
	o.RecalculateTotal()
	assert.Equal(t, 0.0, o.Total)
}

func TestReservationIsTerminal(t *testing.T) {
	for status, terminal := range map[string]bool{
		ReservationPending:   false,
		ReservationConfirmed: false,
		ReservationCancelled: true,
		ReservationRejected:  true,
		ReservationCompleted: true,
	} {
		r := Reservation{Status: status}
		assert.Equal(t, terminal, r.IsTerminal(), status)
	}
}
