package constants

const (
	ERROR_INPUT                = "Invalid input"
	ERROR_ID_PARAM             = "Invalid id parameter"
	CAN_NOT_GET_EVENT          = "Cannot get join event"
	CAN_NOT_SAVE_EVENT         = "Cannot save join event"
	EVENT_NOT_FOUND            = "Join event not found"
	MISSING_REFERENCES         = "Unknown cinema or version for a submitted showtime"
	UNKNOWN_OPTION             = "Vote references an option not offered by the event"
	CAN_NOT_GET_MOVIES         = "Cannot get movies"
	CAN_NOT_GET_CINEMAS        = "Cannot get cinemas"
	CAN_NOT_GET_GENRES         = "Cannot get genres"
	CAN_NOT_DELETE             = "Cannot delete"
	SYNC_FAILED                = "Listings sync failed"
	INTERNAL_ERROR             = "Something went wrong"
	DEFAULT_NOT_IN_SET         = "defaultSelectOption must be one of the event's selectOptions"
	VOTE_OPTION_NOT_IN_SET     = "a vote references an option outside the event's selectOptions"
	PARTICIPANT_EVENT_MISMATCH = "participant joinEventId does not match the submitted event"
)
