package models

import (
	"time"
)

type Car struct {
	ID           string    `json:"_id" bson:"_id"`
	Make         string    `json:"make" bson:"make" validate:"required"`
	Model        string    `json:"model" bson:"model" validate:"required"`
	Year         int       `json:"year" bson:"year" validate:"required"`
	PricePerDay  float64   `json:"pricePerDay" bson:"pricePerDay" validate:"required"`
	ImageURL     string    `json:"imageUrl" bson:"imageUrl" validate:"required"`
	Filename     string    `json:"filename" bson:"filename" validate:"required"`
	Type         string    `json:"type" bson:"type" validate:"required"`
	Seats        int       `json:"seats" bson:"seats" validate:"required"`
	Transmission string    `json:"transmission" bson:"transmission" validate:"required"`
	Features     []string  `json:"features" bson:"features"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// Location is a rental store location. It is exposed under /api/stores.
type Location struct {
	ID           string    `json:"_id" bson:"_id"`
	Address      string    `json:"address" bson:"address" validate:"required"`
	City         string    `json:"city" bson:"city" validate:"required"`
	Constituency string    `json:"constituency" bson:"constituency" validate:"required"`
	Email        string    `json:"email" bson:"email" validate:"required"`
	PhoneNumber  string    `json:"phoneNumber" bson:"phoneNumber" validate:"required"`
	ImageURL     string    `json:"imageUrl" bson:"imageUrl" validate:"required"`
	Filename     string    `json:"filename" bson:"filename" validate:"required"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// Booking references a Car by id. CarImage is a snapshot taken when the
// booking was made and is never re-synced.
type Booking struct {
	ID             string    `json:"_id" bson:"_id"`
	CarID          string    `json:"carId" bson:"carId" validate:"required"`
	CarImage       string    `json:"carImage" bson:"carImage" validate:"required"`
	FirstName      string    `json:"firstName" bson:"firstName" validate:"required"`
	LastName       string    `json:"lastName" bson:"lastName" validate:"required"`
	ContactInfo    string    `json:"contactInfo" bson:"contactInfo" validate:"required"`
	PickupLocation string    `json:"pickupLocation" bson:"pickupLocation" validate:"required"` // free text, not a Location id
	PickupDate     time.Time `json:"pickupDate" bson:"pickupDate" validate:"required"`
	ReturnDate     time.Time `json:"returnDate" bson:"returnDate" validate:"required"`
	RentalDays     int       `json:"rentalDays" bson:"rentalDays" validate:"required"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

type Admin struct {
	ID           string    `json:"_id" bson:"_id"`
	Name         string    `json:"name" bson:"name" validate:"required"`
	Email        string    `json:"email" bson:"email" validate:"required"`
	Password     string    `json:"-" bson:"password" validate:"required"` // bcrypt hash
	RegisteredAt time.Time `json:"registeredAt" bson:"registeredAt"`
}
