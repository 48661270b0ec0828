package donation

import (
	"context"
	"errors"
	"time"

	"FoodBridge/domain"
	"FoodBridge/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	DonationRepository interface {
		CreateDonation(ctx context.Context, donation *entities.Donation) error
		GetDonationByID(ctx context.Context, id uuid.UUID) (*entities.Donation, error)
		GetDonationsByCreator(ctx context.Context, userID uuid.UUID, sort string) ([]*entities.Donation, error)
		GetDonationsByReserver(ctx context.Context, userID uuid.UUID) ([]*entities.Donation, error)
		GetAvailableDonations(ctx context.Context, now time.Time, sort string) ([]*entities.Donation, error)
		GetAllDonations(ctx context.Context, sort string) ([]*entities.Donation, error)
		GetExpiredDonations(ctx context.Context, now time.Time) ([]*entities.Donation, error)
		GetReservationsOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.Donation, error)
		DeleteDonations(ctx context.Context, ids []uuid.UUID) error
		UpdateDonation(ctx context.Context, donation *entities.Donation) error
		ReleaseReservations(ctx context.Context, ids []uuid.UUID, cutoff time.Time) error
		ReserveDonation(ctx context.Context, donationID, reserverID uuid.UUID, reservedAt time.Time) error
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// orderClause maps an API sort key to a SQL ordering. "distance" orders by
// raw latitude; the frontend relies on this exact ordering.
func orderClause(sort string) string {
	switch sort {
	case domain.SortByExpiration:
		return "expiration_date ASC"
	case domain.SortByDistance:
		return "pickup_latitude ASC"
	default:
		return "created_at DESC"
	}
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id uuid.UUID) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("ReservedByUser").
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) GetDonationsByCreator(ctx context.Context, userID uuid.UUID, sort string) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("ReservedByUser").
		Where("user_id = ?", userID).
		Order(orderClause(sort)).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) GetDonationsByReserver(ctx context.Context, userID uuid.UUID) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("ReservedByUser").
		Where("reserved_by_user_id = ?", userID).
		Order("reserved_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) GetAvailableDonations(ctx context.Context, now time.Time, sort string) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("ReservedByUser").
		Where("expiration_date >= ?", now).
		Order(orderClause(sort)).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) GetAllDonations(ctx context.Context, sort string) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("ReservedByUser").
		Order(orderClause(sort)).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) GetExpiredDonations(ctx context.Context, now time.Time) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Where("expiration_date < ?", now).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) GetReservationsOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Where("is_reserved = ? AND reserved_at IS NOT NULL AND reserved_at < ?", true, cutoff).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) DeleteDonations(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&entities.Donation{}).Error
}

func (r *donationRepository) UpdateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Save(donation).Error
}

// ReleaseReservations clears all three reservation fields together so the
// reservation invariant cannot be half-applied. The lapsed condition is
// re-asserted in the statement itself: a donation released and re-reserved
// between the caller's snapshot and this write no longer matches and keeps
// its fresh reservation.
func (r *donationRepository) ReleaseReservations(ctx context.Context, ids []uuid.UUID, cutoff time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id IN ? AND is_reserved = ? AND reserved_at < ?", ids, true, cutoff).
		Updates(map[string]interface{}{
			"is_reserved":         false,
			"reserved_by_user_id": nil,
			"reserved_at":         nil,
		}).Error
}

// ReserveDonation claims a donation with a row-locked check-then-set. Under
// concurrent attempts on the same donation exactly one transaction wins; the
// rest see the committed is_reserved flag and get ErrDonationAlreadyReserved.
func (r *donationRepository) ReserveDonation(ctx context.Context, donationID, reserverID uuid.UUID, reservedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var donation entities.Donation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", donationID).
			First(&donation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDonationNotFound
			}
			return err
		}

		if donation.IsReserved {
			return domain.ErrDonationAlreadyReserved
		}

		return tx.Model(&entities.Donation{}).
			Where("id = ?", donationID).
			Updates(map[string]interface{}{
				"is_reserved":         true,
				"reserved_by_user_id": reserverID,
				"reserved_at":         reservedAt,
			}).Error
	})
}
