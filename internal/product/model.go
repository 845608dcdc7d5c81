// File: internal/product/model.go
package product

import (
	"time"

	"skillmarket_backend/internal/common"
	"skillmarket_backend/internal/user"

	"github.com/google/uuid"
)

// Product is an item listed for sale. ImageFilename is a reference produced
// by the external upload pipeline; it is stored, not validated here.
type Product struct {
	common.BaseModel
	SellerID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"sellerId"`
	Seller        *user.User `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Name          string     `gorm:"type:varchar(200);not null" json:"name"`
	Description   string     `gorm:"type:text" json:"description"`
	ImageFilename string     `gorm:"type:varchar(500)" json:"imageFilename,omitempty"`
	ContactLink   string     `gorm:"type:varchar(500)" json:"contactLink,omitempty"`
	Price         float64    `gorm:"type:numeric(10,2);not null" json:"price"`
}

// TableName specifies the table name for the Product model.
func (Product) TableName() string {
	return "products"
}

// CreateRequest is the payload for listing a new product.
type CreateRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=200"`
	Description   string  `json:"description" binding:"max=5000"`
	ImageFilename string  `json:"imageFilename" binding:"omitempty,max=500"`
	ContactLink   string  `json:"contactLink" binding:"omitempty,url,max=500"`
	Price         float64 `json:"price" binding:"required,gt=0"`
}

// Response is the API representation of a product.
type Response struct {
	ID            uuid.UUID `json:"id"`
	SellerID      uuid.UUID `json:"sellerId"`
	SellerName    string    `json:"sellerName,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ImageFilename string    `json:"imageFilename,omitempty"`
	ContactLink   string    `json:"contactLink,omitempty"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToResponse converts the Product model to its API representation.
func (p *Product) ToResponse() Response {
	resp := Response{
		ID:            p.ID,
		SellerID:      p.SellerID,
		Name:          p.Name,
		Description:   p.Description,
		ImageFilename: p.ImageFilename,
		ContactLink:   p.ContactLink,
		Price:         p.Price,
		CreatedAt:     p.CreatedAt,
	}
	if p.Seller != nil {
		resp.SellerName = p.Seller.Name
	}
	return resp
}
