package validate

import (
	"errors"
	"movienight_manager/constants"
	"movienight_manager/model"
	"movienight_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func optionInSet(option model.SelectOption, set []model.SelectOption) bool {
	for _, o := range set {
		if o.VoteOption == option.VoteOption && o.Color == option.Color {
			return true
		}
	}
	return false
}

// UpsertJoinEvent validates the submitted aggregate before it reaches the
// reconciliation engine: field lengths via struct tags, plus the cross-field
// rules the engine relies on (default option membership, vote option
// membership, nested event id consistency).
func UpsertJoinEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.JoinEvent)
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if !optionInSet(input.DefaultSelectOption, input.SelectOptions) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DEFAULT_NOT_IN_SET, errors.New("default option not offered"))
		}

		showtimeIds := map[int]bool{}
		for _, st := range input.Showtimes {
			showtimeIds[st.ID] = true
		}

		for _, p := range input.Participants {
			if p.JoinEventId != 0 && p.JoinEventId != input.ID {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PARTICIPANT_EVENT_MISMATCH, errors.New("joinEventId mismatch"))
			}
			for _, v := range p.VotedFor {
				if v.SelectedOption.VoteOption != "" && !optionInSet(v.SelectedOption, input.SelectOptions) {
					return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.VOTE_OPTION_NOT_IN_SET, errors.New("vote option not offered"))
				}
				if input.ID == 0 && !showtimeIds[v.ShowtimeId] {
					return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("vote references a showtime the event does not offer"))
				}
			}
		}

		c.Locals("joinEventInput", input)

		return c.Next()
	}
}
