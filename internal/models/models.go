package models

import (
	"time"
)

type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement"    json:"id"`
	Email        string     `gorm:"uniqueIndex;not null"        json:"email"`
	PasswordHash string     `gorm:"not null"                    json:"-"`
	CartItems    []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Orders       []Order    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"not null"                  json:"name"`
	Description string  `gorm:"not null"                  json:"description"`
	Price       float64 `gorm:"not null"                  json:"price"`
	Image       string  `json:"image"`
}

// CartItem is one mutable line of a user's open cart. Application logic keeps
// at most one row per (user, product) pair.
type CartItem struct {
	ID        uint    `gorm:"primaryKey"                   json:"id"`
	UserID    uint    `gorm:"index;not null"               json:"user_id"`
	ProductID uint    `gorm:"not null"                     json:"product_id"`
	Quantity  int     `gorm:"not null"                     json:"quantity"`
	Product   Product `gorm:"constraint:OnDelete:RESTRICT" json:"product"`
}

type Order struct {
	ID          uint        `gorm:"primaryKey"                  json:"id"`
	UserID      uint        `gorm:"index;not null"              json:"user_id"`
	TotalAmount float64     `gorm:"not null"                    json:"total_amount"`
	Status      string      `gorm:"not null"                    json:"status"`
	CreatedAt   time.Time   `gorm:"not null"                    json:"created_at"`
	Items       []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem carries the unit price captured at checkout. It never follows
// later catalog price changes. Product is only populated on preloaded reads;
// a fresh checkout response omits it rather than echo an empty object.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey"                   json:"id"`
	OrderID   uint    `gorm:"index;not null"               json:"order_id"`
	ProductID uint    `gorm:"not null"                     json:"product_id"`
	Quantity  int     `gorm:"not null"                     json:"quantity"`
	Price     float64 `gorm:"not null"                     json:"price"`
	Product   Product `gorm:"constraint:OnDelete:RESTRICT" json:"product,omitzero"`
}

const OrderStatusPending = "pending"
