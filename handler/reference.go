package handler

import (
	"context"
	"encoding/json"
	"movienight_manager/constants"
	"movienight_manager/database"
	"movienight_manager/model"
	"movienight_manager/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

const referenceCacheTTL = 10 * time.Minute

// Reference reads change once a day via the sync, so they are served from a
// short redis cache when one is configured.
func cachedReferenceList(c *fiber.Ctx, key string, message string, fetch func() (any, error)) error {
	ctx := context.Background()

	if database.RDB != nil {
		if cached, err := database.RDB.Get(ctx, key).Result(); err == nil {
			c.Set("Content-Type", "application/json")
			return c.SendString(cached)
		}
	}

	rows, err := fetch()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
	}

	payload, err := json.Marshal(fiber.Map{"status": "success", "data": rows})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}
	if database.RDB != nil {
		database.RDB.Set(ctx, key, payload, referenceCacheTTL)
	}

	c.Set("Content-Type", "application/json")
	return c.Send(payload)
}

func GetAllCinemas(c *fiber.Ctx) error {
	return cachedReferenceList(c, database.CacheCinemasKey, constants.CAN_NOT_GET_CINEMAS, func() (any, error) {
		var cinemas model.Cinemas
		err := database.DB.Order("name ASC").Find(&cinemas).Error
		return cinemas, err
	})
}

func GetAllMovies(c *fiber.Ctx) error {
	return cachedReferenceList(c, database.CacheMoviesKey, constants.CAN_NOT_GET_MOVIES, func() (any, error) {
		var movies model.Movies
		err := database.DB.Preload("AgeRating").Order("title ASC").Find(&movies).Error
		return movies, err
	})
}

func GetAllGenres(c *fiber.Ctx) error {
	return cachedReferenceList(c, database.CacheGenresKey, constants.CAN_NOT_GET_GENRES, func() (any, error) {
		var genres []model.Genre
		err := database.DB.Order("name ASC").Find(&genres).Error
		return genres, err
	})
}
