package handlers

import (
	"errors"

	"FoodBridge/domain"
	"FoodBridge/internal/api/presenters"
	"FoodBridge/pkg/donation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		CreateDonation(c *fiber.Ctx) error
		GetUserDonations(c *fiber.Ctx) error
		GetAvailableDonations(c *fiber.Ctx) error
		GetMyDonations(c *fiber.Ctx) error
		GetAllDonations(c *fiber.Ctx) error
		ReserveDonation(c *fiber.Ctx) error
		GetDonationsReservedByMe(c *fiber.Ctx) error
		DeleteAsReserver(c *fiber.Ctx) error
		DeleteAsCreator(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

// statusForDonationError maps engine errors onto the HTTP taxonomy:
// missing entities are 404, authorization failures 403, invalid
// reservation state 400.
func statusForDonationError(err error) int {
	switch {
	case errors.Is(err, domain.ErrDonationNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNgoOnly),
		errors.Is(err, domain.ErrNotDonationCreator),
		errors.Is(err, domain.ErrNotDonationReserver):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

func (h *donationHandler) CreateDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.DonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// Optional photo
	req.FoodImage, _ = c.FormFile("food_image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	created, err := h.donationService.CreateDonation(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForDonationError(err), domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) GetUserDonations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	donations, err := h.donationService.GetUserDonations(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForDonationError(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, donations, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetAvailableDonations(c *fiber.Ctx) error {
	sort := c.Query("sort", domain.SortByDate)

	donations, err := h.donationService.GetAvailableDonations(c.Context(), sort)
	if err != nil {
		return presenters.ErrorResponse(c, statusForDonationError(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, donations, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetMyDonations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	sort := c.Query("sort", domain.SortByDate)

	donations, err := h.donationService.GetMyDonations(c.Context(), userID, sort)
	if err != nil {
		return presenters.ErrorResponse(c, statusForDonationError(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, donations, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetAllDonations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	sort := c.Query("sort", domain.SortByDate)

	donations, err := h.donationService.GetAllDonations(c.Context(), userID, sort)
	if err != nil {
		return presenters.ErrorResponse(c, statusForDonationError(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, donations, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) ReserveDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	reserved, err := h.donationService.ReserveDonation(c.Context(), donationID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForDonationError(err), domain.MessageFailedReserveDonation, err)
	}

	return presenters.SuccessResponse(c, reserved, fiber.StatusOK, domain.MessageSuccessReserveDonation)
}

func (h *donationHandler) GetDonationsReservedByMe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	donations, err := h.donationService.GetDonationsReservedBy(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForDonationError(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, donations, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) DeleteAsReserver(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	if err := h.donationService.DeleteAsReserver(c.Context(), donationID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForDonationError(err), domain.MessageFailedDeleteDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDonation)
}

func (h *donationHandler) DeleteAsCreator(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	if err := h.donationService.DeleteAsCreator(c.Context(), donationID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForDonationError(err), domain.MessageFailedDeleteDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDonation)
}
