// File: internal/order/model.go
package order

import (
	"time"

	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/product"
	"skillmarket_backend/internal/user"

	"github.com/google/uuid"
)

// Status is the order lifecycle state. Pending is the only non-terminal
// state; accepted and rejected are final.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Order is a buyer's purchase request against a product.
type Order struct {
	common.BaseModel
	ProductID uuid.UUID        `gorm:"type:uuid;not null;index" json:"productId"`
	Product   *product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	BuyerID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"buyerId"`
	Buyer     *user.User       `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	// SellerID is captured from the product at order creation so that
	// ownership checks and seller listings survive product changes.
	SellerID uuid.UUID `gorm:"type:uuid;not null;index" json:"sellerId"`
	Status   Status    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
}

// TableName specifies the table name for the Order model.
func (Order) TableName() string {
	return "orders"
}

// Response is the API representation of an order.
type Response struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName,omitempty"`
	BuyerID     uuid.UUID `json:"buyerId"`
	BuyerName   string    `json:"buyerName,omitempty"`
	SellerID    uuid.UUID `json:"sellerId"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToResponse converts the Order model to its API representation.
func (o *Order) ToResponse() Response {
	resp := Response{
		ID:        o.ID,
		ProductID: o.ProductID,
		BuyerID:   o.BuyerID,
		SellerID:  o.SellerID,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.Product != nil {
		resp.ProductName = o.Product.Name
	}
	if o.Buyer != nil {
		resp.BuyerName = o.Buyer.Name
	}
	return resp
}
