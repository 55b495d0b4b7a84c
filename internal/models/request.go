package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRequest is a message left through the site's contact form.
type ContactRequest struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:120;not null" json:"name"`
	Phone      string         `gorm:"size:40;not null" json:"phone"`
	Email      string         `gorm:"size:255" json:"email"`
	Message    string         `gorm:"type:text" json:"message"`
	SourcePage string         `gorm:"size:255" json:"source_page"`
	Status     string         `gorm:"size:20;not null;default:'new';index" json:"status"` // new, processing, completed, canceled
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ContactRequest) TableName() string { return "contact_requests" }

// ApplicationRequest is the short "call me back about a trip" form.
type ApplicationRequest struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:120;not null" json:"name"`
	Phone      string         `gorm:"size:40;not null" json:"phone"`
	Email      string         `gorm:"size:255" json:"email"`
	FromCity   string         `gorm:"size:120" json:"from_city"`
	ToCity     string         `gorm:"size:120" json:"to_city"`
	TravelDate *time.Time     `json:"travel_date"`
	Passengers int            `gorm:"default:1" json:"passengers"`
	Comment    string         `gorm:"type:text" json:"comment"`
	Status     string         `gorm:"size:20;not null;default:'new';index" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ApplicationRequest) TableName() string { return "application_requests" }

// TransferRequest is a full booking submitted from the booking form.
type TransferRequest struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Reference       string         `gorm:"size:20;uniqueIndex;not null" json:"reference"`
	Name            string         `gorm:"size:120;not null" json:"name"`
	Phone           string         `gorm:"size:40;not null" json:"phone"`
	Email           string         `gorm:"size:255" json:"email"`
	FromAddress     string         `gorm:"size:255;not null" json:"from_address"`
	ToAddress       string         `gorm:"size:255;not null" json:"to_address"`
	FromLat         *float64       `json:"from_lat"`
	FromLng         *float64       `json:"from_lng"`
	ToLat           *float64       `json:"to_lat"`
	ToLng           *float64       `json:"to_lng"`
	PickupAt        time.Time      `gorm:"not null;index" json:"pickup_at"`
	Passengers      int            `gorm:"not null;default:1" json:"passengers"`
	Luggage         int            `json:"luggage"`
	ChildSeat       bool           `json:"child_seat"`
	VehicleID       *uint          `gorm:"index" json:"vehicle_id"`
	RouteID         *uint          `gorm:"index" json:"route_id"`
	DistanceKm      float64        `json:"distance_km"`
	DurationMinutes int            `json:"duration_minutes"`
	EstimatedPrice  int64          `json:"estimated_price"`
	Currency        string         `gorm:"size:3" json:"currency"`
	Comment         string         `gorm:"type:text" json:"comment"`
	Status          string         `gorm:"size:20;not null;default:'new';index" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Route   *Route   `gorm:"foreignKey:RouteID" json:"route,omitempty"`
}

func (TransferRequest) TableName() string { return "transfer_requests" }

// BeforeCreate assigns a short human-readable booking reference.
func (t *TransferRequest) BeforeCreate(tx *gorm.DB) error {
	if t.Reference == "" {
		t.Reference = NewTransferReference()
	}
	return nil
}

// NewTransferReference returns a reference such as "TR-1A2B3C4D".
func NewTransferReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TR-" + strings.ToUpper(id[:8])
}

// HasCoordinates reports whether both endpoints were geocoded by the client.
func (t *TransferRequest) HasCoordinates() bool {
	return t.FromLat != nil && t.FromLng != nil && t.ToLat != nil && t.ToLng != nil
}
