package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

// Sort keys accepted by the listing endpoints. "distance" orders by raw
// pickup latitude, matching the behavior the frontend already depends on.
const (
	SortByDate       = "date"
	SortByExpiration = "expiration"
	SortByDistance   = "distance"
)

var (
	MessageSuccessCreateDonation  = "donation created successfully"
	MessageSuccessGetDonations    = "donations retrieved successfully"
	MessageSuccessReserveDonation = "donation reserved successfully"
	MessageSuccessDeleteDonation  = "donation deleted successfully"

	MessageFailedCreateDonation  = "failed to create donation"
	MessageFailedGetDonations    = "failed to retrieve donations"
	MessageFailedReserveDonation = "failed to reserve donation"
	MessageFailedDeleteDonation  = "failed to delete donation"

	ErrDonationNotFound        = errors.New("donation not found")
	ErrDonationAlreadyReserved = errors.New("this donation has already been reserved")
	ErrDonationExpired         = errors.New("this donation is expired")
	ErrSelfReservation         = errors.New("you cannot reserve your own donation")
	ErrNgoOnly                 = errors.New("only NGO users can perform this action")
	ErrNotDonationCreator      = errors.New("you can only delete donations you created")
	ErrNotDonationReserver     = errors.New("you can only delete donations you reserved")
)

type (
	DonationRequest struct {
		Title       string  `json:"title" validate:"required"`
		Category    string  `json:"category" validate:"required"`
		Description string  `json:"description" validate:"required"`
		Quantity    float64 `json:"quantity" validate:"required,gt=0"`
		Unit        string  `json:"unit" validate:"required"`

		ExpirationDate time.Time `json:"expiration_date" validate:"required"`

		PickupLatitude  *float64 `json:"pickup_latitude,omitempty"`
		PickupLongitude *float64 `json:"pickup_longitude,omitempty"`

		FoodImage *multipart.FileHeader `json:"-" form:"food_image"`
	}

	DonationResponse struct {
		ID          string  `json:"id"`
		Title       string  `json:"title"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
		Unit        string  `json:"unit"`

		ExpirationDate  time.Time `json:"expiration_date"`
		PickupLatitude  *float64  `json:"pickup_latitude"`
		PickupLongitude *float64  `json:"pickup_longitude"`

		CO2Impact   *float64 `json:"co2_impact"`   // kg saved
		WaterImpact *float64 `json:"water_impact"` // liters saved

		ImageURL  string    `json:"image_url,omitempty"`
		CreatedAt time.Time `json:"created_at"`

		// Creator display fields, joined at read time.
		CreatorID           string `json:"creator_id"`
		CreatorName         string `json:"creator_name"`
		CreatorPhone        string `json:"creator_phone"`
		CreatorEmail        string `json:"creator_email"`
		CreatorStreet       string `json:"creator_street"`
		CreatorNumber       string `json:"creator_number"`
		CreatorNeighborhood string `json:"creator_neighborhood"`
		CreatorCity         string `json:"creator_city"`
		CreatorState        string `json:"creator_state"`

		IsReserved         bool       `json:"is_reserved"`
		ReservedByUserID   *string    `json:"reserved_by_user_id"`
		ReservedByUserName *string    `json:"reserved_by_user_name"`
		ReservedAt         *time.Time `json:"reserved_at"`
	}
)
