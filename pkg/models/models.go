package models

import (
	"time"
)

// Imageable discriminator values. An Image belongs to exactly one of these.
const (
	ImageableSpot   = "Spot"
	ImageableReview = "Review"
)

// MaxImagesPerResource caps how many images a single Spot or Review may carry.
const MaxImagesPerResource = 10

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:30;not null;uniqueIndex" json:"username"`
	Email          string    `gorm:"size:256;not null;uniqueIndex" json:"email"`
	HashedPassword string    `gorm:"size:60;not null" json:"-"`
	FirstName      string    `gorm:"size:256;not null" json:"firstName"`
	LastName       string    `gorm:"size:256;not null" json:"lastName"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

type Spot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;index" json:"ownerId"`
	Address     string    `gorm:"not null;uniqueIndex" json:"address"`
	City        string    `gorm:"not null" json:"city"`
	State       string    `gorm:"not null" json:"state"`
	Country     string    `gorm:"not null" json:"country"`
	Lat         float64   `gorm:"not null" json:"lat"`
	Lng         float64   `gorm:"not null" json:"lng"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	Price       int       `gorm:"not null" json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	SpotID    uint      `gorm:"not null;index" json:"spotId"`
	Review    string    `gorm:"size:512;not null" json:"review"`
	Stars     int       `gorm:"not null;check:stars >= 1 AND stars <= 5" json:"stars"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Booking dates are stored at date-only precision. The composite unique
// indexes back the exact-endpoint collision rule at the database level, so
// two concurrent requests cannot both insert the same start or end day for
// one spot.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SpotID    uint      `gorm:"not null;uniqueIndex:idx_bookings_spot_start;uniqueIndex:idx_bookings_spot_end" json:"spotId"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	StartDate time.Time `gorm:"not null;uniqueIndex:idx_bookings_spot_start" json:"-"`
	EndDate   time.Time `gorm:"not null;uniqueIndex:idx_bookings_spot_end" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Image struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	URL           string    `gorm:"not null" json:"url"`
	ImageableType string    `gorm:"size:20;not null;index:idx_images_parent" json:"-"`
	ImageableID   uint      `gorm:"not null;index:idx_images_parent" json:"-"`
	Preview       bool      `gorm:"not null" json:"preview"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
