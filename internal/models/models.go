package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusCanceled OrderStatus = "canceled"
)

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPayPal PaymentMethod = "paypal"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodPayPal
}

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description *string         `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Available   bool            `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Sizes []ProductSize `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }

type Size struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"type:varchar(16);not null;uniqueIndex"`
}

func (Size) TableName() string { return "sizes" }

// ProductSize is the inventory entry: one purchasable (product, size) variant
// and its remaining quantity. Quantity is only decremented inside the order
// commit transaction, under a row lock.
type ProductSize struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_product_sizes_product_size"`
	SizeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_product_sizes_product_size"`
	Quantity  int64     `gorm:"not null;default:0"`

	Product *Product `gorm:"foreignKey:ProductID"`
	Size    *Size    `gorm:"foreignKey:SizeID"`
}

func (ProductSize) TableName() string { return "product_sizes" }

// Cart is created lazily on first access, exactly one per user.
type Cart struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (Cart) TableName() string { return "carts" }

type CartItem struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CartID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_cart_items_cart_size"`
	ProductSizeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_cart_size"`
	Quantity      int64     `gorm:"not null"`

	ProductSize *ProductSize `gorm:"foreignKey:ProductSizeID"`
}

func (CartItem) TableName() string { return "cart_items" }

// Order is an immutable historical record once created; only Status changes
// afterwards (paid -> canceled). Shipping, pricing and card display fields are
// denormalized snapshots taken at commit time.
type Order struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Human-facing identifier, TR-YYYYMMDD-XXXXXX.
	PublicID string `gorm:"type:varchar(24);not null;uniqueIndex"`

	FullName      string        `gorm:"type:varchar(100);not null"`
	Address       string        `gorm:"type:varchar(255);not null"`
	City          string        `gorm:"type:varchar(100);not null"`
	State         string        `gorm:"type:varchar(100);not null;default:''"`
	PostalCode    string        `gorm:"type:varchar(20);not null"`
	Country       string        `gorm:"type:varchar(100);not null"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null;default:'card'"`

	Email string `gorm:"type:varchar(255);not null;default:''"`

	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Currency    string          `gorm:"type:varchar(10);not null"`

	PaymentIntentID string `gorm:"type:varchar(255);not null;uniqueIndex:ux_orders_payment_intent"`

	Status OrderStatus `gorm:"type:varchar(32);not null;default:'pending';index"`

	CardBrand      string `gorm:"type:varchar(32);not null;default:''"`
	CardLast4      string `gorm:"type:varchar(4);not null;default:''"`
	CardholderName string `gorm:"type:varchar(100);not null;default:''"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots product, size label, quantity and unit price at the
// moment of purchase. Never recomputed from the live catalog.
type OrderItem struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null"`
	ProductSizeID uuid.UUID `gorm:"type:uuid;not null"`

	ProductName string          `gorm:"type:varchar(255);not null"`
	SizeName    string          `gorm:"type:varchar(16);not null;default:''"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }
