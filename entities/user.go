package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserType is the organization kind. Only these two values exist; parsing
// happens once at the boundary so role checks compare typed constants.
type UserType string

const (
	UserTypeBusiness UserType = "business"
	UserTypeNgo      UserType = "ngo"
)

func ParseUserType(s string) (UserType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(UserTypeBusiness):
		return UserTypeBusiness, true
	case string(UserTypeNgo):
		return UserTypeNgo, true
	default:
		return "", false
	}
}

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Type           UserType  `gorm:"type:varchar(16)" json:"type"`
	Name           string    `json:"name"`
	DocumentNumber string    `json:"document_number"`
	NgoType        *string   `json:"ngo_type,omitempty"` // nil for business users
	Email          string    `gorm:"uniqueIndex" json:"email"`
	Phone          string    `json:"phone"`

	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`

	PasswordHash string `json:"-"`

	PasswordResetToken  *string    `json:"-"`
	PasswordResetExpiry *time.Time `json:"-"`

	Donations []*Donation `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

func (u *User) IsNgo() bool {
	return u.Type == UserTypeNgo
}

// FullAddress formats the registered address for geocoding lookups.
func (u *User) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, Brasil",
		u.Street, u.Number, u.Neighborhood, u.City, u.State, u.PostalCode)
}
