package types

// Category is the pricing bucket a discount range applies to.
type Category string

const (
	CategoryMainMenu       Category = "mainMenu"
	CategoryCustomizeOrder Category = "customizeOrder"
	CategoryOffers         Category = "offers"
	CategoryTotalOrder     Category = "totalOrder"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryMainMenu, CategoryCustomizeOrder, CategoryOffers, CategoryTotalOrder:
		return true
	}
	return false
}

// CartCategories are the categories that own a per-user cart. totalOrder
// exists only as a discount bucket.
func CartCategories() []Category {
	return []Category{CategoryMainMenu, CategoryOffers, CategoryCustomizeOrder}
}

// OrderStatus is the admin-driven confirmation state of an order.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusConfirm  OrderStatus = "confirm"
	OrderStatusRejected OrderStatus = "rejected"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirm, OrderStatusRejected:
		return true
	}
	return false
}

// DeliveryStatus moves strictly forward: pending -> shipped -> delivered.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusShipped   DeliveryStatus = "shipped"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusShipped, DeliveryStatusDelivered:
		return true
	}
	return false
}

// rank orders delivery states for the forward-only transition check.
func (s DeliveryStatus) Rank() int {
	switch s {
	case DeliveryStatusPending:
		return 0
	case DeliveryStatusShipped:
		return 1
	case DeliveryStatusDelivered:
		return 2
	}
	return -1
}

// OrderStatusField names the mutable status fields on an order.
type OrderStatusField string

const (
	FieldOrderStatus    OrderStatusField = "order_status"
	FieldDeliveryStatus OrderStatusField = "delivery_status"
	FieldPaidStatus     OrderStatusField = "paid_status"
)

func (f OrderStatusField) IsValid() bool {
	switch f {
	case FieldOrderStatus, FieldDeliveryStatus, FieldPaidStatus:
		return true
	}
	return false
}

// DietCategory selects which admin bounds and divisor apply to a
// customized-meal profile.
type DietCategory string

const (
	DietKeto  DietCategory = "keto diet"
	DietClean DietCategory = "clean diet"
)

func (d DietCategory) IsValid() bool {
	switch d {
	case DietKeto, DietClean:
		return true
	}
	return false
}

// PlanOptionKind distinguishes the two configurable plan-parameter lists
// checked at order placement.
type PlanOptionKind string

const (
	PlanOptionMealsPerDay  PlanOptionKind = "meals_per_day"
	PlanOptionPlanDuration PlanOptionKind = "plan_duration"
)

func (k PlanOptionKind) IsValid() bool {
	switch k {
	case PlanOptionMealsPerDay, PlanOptionPlanDuration:
		return true
	}
	return false
}
