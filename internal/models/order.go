package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status lifecycle. Completed and Cancelled are terminal.
const (
	OrderStatusNew       = "New Order"
	OrderStatusAccepted  = "Accepted"
	OrderStatusRejected  = "Rejected"
	OrderStatusPrepared  = "Prepared"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

const (
	PaymentMethodCOD    = "COD"
	PaymentMethodCard   = "Card"
	PaymentMethodOnline = "Online"
)

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// OrderItem snapshots one purchased product at order time. Price, size and
// color are copied so later catalog changes do not rewrite history.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Title    string             `bson:"title" json:"title"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
	Size     string             `bson:"size,omitempty" json:"size,omitempty"`
	Color    string             `bson:"color,omitempty" json:"color,omitempty"`
}

// ShippingAddress is the address snapshot taken at checkout.
type ShippingAddress struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
	Country string `bson:"country" json:"country"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Order is owned by the purchasing user; only that user may view or cancel
// it. Code is a short human-readable order reference.
type Order struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Code                 string             `bson:"code" json:"code"`
	User                 primitive.ObjectID `bson:"user" json:"user"`
	CustomerName         string             `bson:"customerName" json:"customerName"`
	Items                []OrderItem        `bson:"items" json:"items"`
	TotalAmount          float64            `bson:"totalAmount" json:"totalAmount"`
	Status               string             `bson:"status" json:"status"`
	ShippingAddress      ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod        string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus        string             `bson:"paymentStatus" json:"paymentStatus"`
	OrderDate            time.Time          `bson:"orderDate" json:"orderDate"`
	ExpectedDeliveryDate *time.Time         `bson:"expectedDeliveryDate,omitempty" json:"expectedDeliveryDate,omitempty"`
	Notes                string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}
