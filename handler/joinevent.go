package handler

import (
	"errors"
	"movienight_manager/config"
	"movienight_manager/constants"
	"movienight_manager/database"
	"movienight_manager/helper"
	"movienight_manager/model"
	"movienight_manager/scraper"
	"movienight_manager/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// UpsertJoinEvent persists the submitted aggregate. The caller's token, when
// present, overrides the payload's host identity.
func UpsertJoinEvent(c *fiber.Ctx) error {
	event, ok := c.Locals("joinEventInput").(*model.JoinEvent)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing validated input"))
	}
	if authId, ok := c.Locals("authId").(string); ok && authId != "" {
		event.HostId = authId
	}

	id, err := helper.UpsertJoinEvent(database.DB, event)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrJoinEventNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
		case errors.Is(err, helper.ErrMissingReferences):
			return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.MISSING_REFERENCES, err)
		case errors.Is(err, helper.ErrUnknownSelectOption):
			return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.UNKNOWN_OPTION, err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_SAVE_EVENT, err)
		}
	}

	PublishEventUpdate(id)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": id})
}

func GetJoinEventById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	event, err := helper.GetJoinEventById(database.DB, uint(id))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_GET_EVENT, err)
	}
	if event == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func GetJoinEventBySlug(c *fiber.Ctx) error {
	event, err := helper.GetJoinEventBySlug(database.DB, c.Params("slug"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_GET_EVENT, err)
	}
	if event == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func GetJoinEvents(c *fiber.Ctx) error {
	filterInput := new(model.FilterJoinEventInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	events, total, err := helper.GetAllJoinEvents(database.DB, filterInput)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_GET_EVENT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       events,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: total,
	})
}

// GetJoinEventQR renders the event's public share link as a PNG QR code.
func GetJoinEventQR(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	event, err := helper.GetJoinEventById(database.DB, uint(id))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_GET_EVENT, err)
	}
	if event == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, nil)
	}

	content := config.Config("FRONTEND_URL") + "/joinevent/" + event.Slug
	png, err := utils.GenerateQRCode(content, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

func DeleteParticipant(c *fiber.Ctx) error {
	eventId, err := strconv.Atoi(c.Params("joinEventId"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_ID_PARAM, err)
	}
	participantId, err := strconv.Atoi(c.Params("participantId"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_ID_PARAM, err)
	}

	if err := helper.DeleteParticipant(database.DB, uint(eventId), uint(participantId)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_DELETE, err)
	}

	PublishEventUpdate(uint(eventId))

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": participantId})
}

// SyncListings triggers a manual provider crawl, same job the nightly
// scheduler runs.
func SyncListings(c *fiber.Ctx) error {
	url := config.Config("LISTINGS_API_URL")
	if url == "" {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.SYNC_FAILED, errors.New("LISTINGS_API_URL not set"))
	}

	if err := helper.SyncListings(c.Context(), database.DB, scraper.NewClient(url)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.SYNC_FAILED, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"synced": true})
}
