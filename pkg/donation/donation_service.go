package donation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"FoodBridge/domain"
	"FoodBridge/entities"
	"FoodBridge/internal/utils/mailing"
	"FoodBridge/internal/utils/storage"
	"FoodBridge/pkg/geocoding"
	"FoodBridge/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	DonationService interface {
		CreateDonation(ctx context.Context, req domain.DonationRequest, userID string) (*domain.DonationResponse, error)
		GetUserDonations(ctx context.Context, userID string) ([]*domain.DonationResponse, error)
		GetAvailableDonations(ctx context.Context, sort string) ([]*domain.DonationResponse, error)
		GetMyDonations(ctx context.Context, userID string, sort string) ([]*domain.DonationResponse, error)
		GetAllDonations(ctx context.Context, userID string, sort string) ([]*domain.DonationResponse, error)
		GetDonationsReservedBy(ctx context.Context, userID string) ([]*domain.DonationResponse, error)
		ReserveDonation(ctx context.Context, donationID string, userID string) (*domain.DonationResponse, error)
		DeleteAsReserver(ctx context.Context, donationID string, userID string) error
		DeleteAsCreator(ctx context.Context, donationID string, userID string) error
		PurgeExpiredDonations(ctx context.Context) error
		ReleaseLapsedReservations(ctx context.Context) error
	}

	donationService struct {
		donationRepository DonationRepository
		userRepository     user.UserRepository
		geocoder           geocoding.Geocoder
		mailer             mailing.Mailer
		s3                 storage.AwsS3
		clock              Clock
		reservationTTL     time.Duration
	}
)

func NewDonationService(
	donationRepository DonationRepository,
	userRepository user.UserRepository,
	geocoder geocoding.Geocoder,
	mailer mailing.Mailer,
	s3 storage.AwsS3,
	clock Clock,
	reservationTTL time.Duration,
) DonationService {
	return &donationService{
		donationRepository: donationRepository,
		userRepository:     userRepository,
		geocoder:           geocoder,
		mailer:             mailer,
		s3:                 s3,
		clock:              clock,
		reservationTTL:     reservationTTL,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.DonationRequest, userID string) (*domain.DonationResponse, error) {
	creatorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	creator, err := s.userRepository.GetUserByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// Fall back to geocoding the creator's registered address. A failed
	// lookup leaves the coordinates nil; creation still proceeds.
	lat, lng := req.PickupLatitude, req.PickupLongitude
	if lat == nil || lng == nil {
		lat, lng = s.geocoder.Resolve(ctx, creator.FullAddress())
	}

	donationID := uuid.New()

	var imageURL string
	if req.FoodImage != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("donation-%s", donationID.String()),
			req.FoodImage,
			"donations",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	donation := &entities.Donation{
		ID:              donationID,
		UserID:          creatorID,
		Title:           req.Title,
		Category:        req.Category,
		Description:     req.Description,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		ExpirationDate:  req.ExpirationDate,
		PickupLatitude:  lat,
		PickupLongitude: lng,
		CO2Impact:       EstimateCO2(req.Category, req.Quantity),
		WaterImpact:     EstimateWater(req.Category, req.Quantity),
		ImageURL:        imageURL,
		IsReserved:      false,
	}

	if err := s.donationRepository.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}

	donation.User = creator
	return toDonationResponse(donation), nil
}

func (s *donationService) GetUserDonations(ctx context.Context, userID string) ([]*domain.DonationResponse, error) {
	creatorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if err := s.PurgeExpiredDonations(ctx); err != nil {
		return nil, err
	}

	donations, err := s.donationRepository.GetDonationsByCreator(ctx, creatorID, domain.SortByDate)
	if err != nil {
		return nil, err
	}
	return toDonationResponses(donations), nil
}

func (s *donationService) GetAvailableDonations(ctx context.Context, sort string) ([]*domain.DonationResponse, error) {
	if err := s.PurgeExpiredDonations(ctx); err != nil {
		return nil, err
	}

	donations, err := s.donationRepository.GetAvailableDonations(ctx, s.clock.Now(), sort)
	if err != nil {
		return nil, err
	}
	return toDonationResponses(donations), nil
}

func (s *donationService) GetMyDonations(ctx context.Context, userID string, sort string) ([]*domain.DonationResponse, error) {
	creatorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if err := s.PurgeExpiredDonations(ctx); err != nil {
		return nil, err
	}

	donations, err := s.donationRepository.GetDonationsByCreator(ctx, creatorID, sort)
	if err != nil {
		return nil, err
	}
	return toDonationResponses(donations), nil
}

func (s *donationService) GetAllDonations(ctx context.Context, userID string, sort string) ([]*domain.DonationResponse, error) {
	actor, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !actor.IsNgo() {
		return nil, domain.ErrNgoOnly
	}

	if err := s.PurgeExpiredDonations(ctx); err != nil {
		return nil, err
	}

	donations, err := s.donationRepository.GetAllDonations(ctx, sort)
	if err != nil {
		return nil, err
	}
	return toDonationResponses(donations), nil
}

func (s *donationService) GetDonationsReservedBy(ctx context.Context, userID string) ([]*domain.DonationResponse, error) {
	reserverID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if err := s.PurgeExpiredDonations(ctx); err != nil {
		return nil, err
	}
	if err := s.ReleaseLapsedReservations(ctx); err != nil {
		return nil, err
	}

	donations, err := s.donationRepository.GetDonationsByReserver(ctx, reserverID)
	if err != nil {
		return nil, err
	}
	return toDonationResponses(donations), nil
}

func (s *donationService) ReserveDonation(ctx context.Context, donationID string, userID string) (*domain.DonationResponse, error) {
	id, err := uuid.Parse(donationID)
	if err != nil {
		return nil, domain.ErrDonationNotFound
	}

	actor, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !actor.IsNgo() {
		return nil, domain.ErrNgoOnly
	}

	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	now := s.clock.Now()
	if donation.IsReserved {
		return nil, domain.ErrDonationAlreadyReserved
	}
	if donation.ExpirationDate.Before(now) {
		return nil, domain.ErrDonationExpired
	}
	if donation.UserID == actor.ID {
		return nil, domain.ErrSelfReservation
	}

	// The repository re-checks is_reserved under a row lock, so losing a
	// race here surfaces as ErrDonationAlreadyReserved.
	if err := s.donationRepository.ReserveDonation(ctx, id, actor.ID, now); err != nil {
		return nil, err
	}

	reserved, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifyCreatorReserved(reserved, actor)

	return toDonationResponse(reserved), nil
}

func (s *donationService) DeleteAsReserver(ctx context.Context, donationID string, userID string) error {
	id, err := uuid.Parse(donationID)
	if err != nil {
		return domain.ErrDonationNotFound
	}
	reserverID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonationNotFound
		}
		return err
	}

	if donation.ReservedByUserID == nil || *donation.ReservedByUserID != reserverID {
		return domain.ErrNotDonationReserver
	}

	return s.donationRepository.DeleteDonations(ctx, []uuid.UUID{id})
}

func (s *donationService) DeleteAsCreator(ctx context.Context, donationID string, userID string) error {
	id, err := uuid.Parse(donationID)
	if err != nil {
		return domain.ErrDonationNotFound
	}
	creatorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonationNotFound
		}
		return err
	}

	if donation.UserID != creatorID {
		return domain.ErrNotDonationCreator
	}

	return s.donationRepository.DeleteDonations(ctx, []uuid.UUID{id})
}

// PurgeExpiredDonations hard-deletes every donation past its expiration
// date. Every listing operation runs it first so expired donations never
// appear in a result.
func (s *donationService) PurgeExpiredDonations(ctx context.Context) error {
	expired, err := s.donationRepository.GetExpiredDonations(ctx, s.clock.Now())
	if err != nil {
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(expired))
	for _, d := range expired {
		ids = append(ids, d.ID)
	}
	return s.donationRepository.DeleteDonations(ctx, ids)
}

// ReleaseLapsedReservations returns donations whose reservation outlived the
// TTL to the unreserved state.
func (s *donationService) ReleaseLapsedReservations(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.reservationTTL)
	lapsed, err := s.donationRepository.GetReservationsOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(lapsed) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(lapsed))
	for _, d := range lapsed {
		ids = append(ids, d.ID)
	}
	return s.donationRepository.ReleaseReservations(ctx, ids, cutoff)
}

func (s *donationService) getUser(ctx context.Context, userID string) (*entities.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	actor, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return actor, nil
}

// notifyCreatorReserved mails the creator that their donation was claimed.
// Delivery is best effort; failures are logged and never surfaced.
func (s *donationService) notifyCreatorReserved(donation *entities.Donation, reserver *entities.User) {
	if donation.User == nil {
		return
	}
	subject := fmt.Sprintf("Your donation %q was reserved", donation.Title)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>%s reserved your donation %q. They can be reached at %s / %s.</p>",
		donation.User.Name, reserver.Name, donation.Title, reserver.Email, reserver.Phone,
	)
	if err := s.mailer.Send(donation.User.Email, subject, body); err != nil {
		log.Printf("failed to send reservation notice for donation %s: %v", donation.ID, err)
	}
}

func toDonationResponse(d *entities.Donation) *domain.DonationResponse {
	resp := &domain.DonationResponse{
		ID:              d.ID.String(),
		Title:           d.Title,
		Category:        d.Category,
		Description:     d.Description,
		Quantity:        d.Quantity,
		Unit:            d.Unit,
		ExpirationDate:  d.ExpirationDate,
		PickupLatitude:  d.PickupLatitude,
		PickupLongitude: d.PickupLongitude,
		CO2Impact:       d.CO2Impact,
		WaterImpact:     d.WaterImpact,
		ImageURL:        d.ImageURL,
		CreatedAt:       d.CreatedAt,
		CreatorID:       d.UserID.String(),
		IsReserved:      d.IsReserved,
		ReservedAt:      d.ReservedAt,
	}

	if d.User != nil {
		resp.CreatorName = d.User.Name
		resp.CreatorPhone = d.User.Phone
		resp.CreatorEmail = d.User.Email
		resp.CreatorStreet = d.User.Street
		resp.CreatorNumber = d.User.Number
		resp.CreatorNeighborhood = d.User.Neighborhood
		resp.CreatorCity = d.User.City
		resp.CreatorState = d.User.State
	}

	if d.ReservedByUserID != nil {
		id := d.ReservedByUserID.String()
		resp.ReservedByUserID = &id
	}
	if d.ReservedByUser != nil {
		name := d.ReservedByUser.Name
		resp.ReservedByUserName = &name
	}

	return resp
}

func toDonationResponses(donations []*entities.Donation) []*domain.DonationResponse {
	result := make([]*domain.DonationResponse, 0, len(donations))
	for _, d := range donations {
		result = append(result, toDonationResponse(d))
	}
	return result
}
