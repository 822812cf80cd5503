package types

import "github.com/google/uuid"

// CartLineView is one priced line inside an aggregated cart.
type CartLineView struct {
	LineID     uuid.UUID `json:"line_id"`
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
	UnitPrice  float64   `json:"unit_price"`
	Quantity   float64   `json:"quantity"`
	Day        int       `json:"day,omitempty"`
	LineTotal  float64   `json:"line_total"`
}

// CartSummary is one category's aggregate: subtotal, the category
// discount, and the discounted subtotal the grand total is built from.
type CartSummary struct {
	Category              Category       `json:"category"`
	Lines                 []CartLineView `json:"lines"`
	Subtotal              float64        `json:"subtotal"`
	Discount              float64        `json:"discount"`
	DiscountPercentage    float64        `json:"discount_percentage"`
	SubtotalAfterDiscount float64        `json:"subtotal_after_discount"`
}

// CartAggregate is the full output of the cart aggregator: three
// per-category summaries plus the second, grand-total discount pass.
type CartAggregate struct {
	MainMealCart                   CartSummary `json:"main_meal_cart"`
	OfferedMealCart                CartSummary `json:"offered_meal_cart"`
	CustomizedMealCart             CartSummary `json:"customized_meal_cart"`
	GrandTotal                     float64     `json:"grand_total"`
	Discount                       float64     `json:"discount"`
	DiscountPercentageOnGrandTotal float64     `json:"discount_percentage_on_grand_total"`
	GrandTotalAfterDiscount        float64     `json:"grand_total_after_discount"`
}

// Empty reports whether all three sub-carts have no lines.
func (a CartAggregate) Empty() bool {
	return len(a.MainMealCart.Lines) == 0 &&
		len(a.OfferedMealCart.Lines) == 0 &&
		len(a.CustomizedMealCart.Lines) == 0
}

// MacroResult is the output of the keto and macro calculators.
type MacroResult struct {
	BMR      float64 `json:"bmr"`
	TDEE     float64 `json:"tdee"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carb     float64 `json:"carb"`
	Fat      float64 `json:"fat"`
}
