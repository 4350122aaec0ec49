package enums

// ProductCategory mirrors the category column on products.
type ProductCategory string

const (
	CategoryCorsets      ProductCategory = "corsets"
	CategoryDresses      ProductCategory = "dresses"
	CategoryAccessories  ProductCategory = "accessories"
	CategoryCustomPieces ProductCategory = "custom-pieces"
)

// OrderStatus tracks an order's lifecycle after reconciliation. Orders are
// created as paid; later transitions belong to fulfillment tooling.
type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// CustomOrderStatus tracks a custom-order request through intake.
type CustomOrderStatus string

const (
	CustomOrderStatusNew    CustomOrderStatus = "new"
	CustomOrderStatusQuoted CustomOrderStatus = "quoted"
	CustomOrderStatusClosed CustomOrderStatus = "closed"
)
