// Package scraper adapts the third-party cinema listings API into batches of
// store-shaped records. The wire format stays in here; the rest of the app
// only ever sees typed entities.
package scraper

import (
	"context"
	"movienight_manager/model"
	"time"
)

// ShowtimeRecord is a provider showtime flattened to natural keys.
type ShowtimeRecord struct {
	ID        int
	MovieId   int
	CinemaId  int
	RoomId    int
	StartTime time.Time
	Version   string
}

// Listings is one full crawl of the provider's catalogue.
type Listings struct {
	Cinemas     []model.Cinema
	Movies      []model.Movie
	Genres      []model.Genre
	VersionTags []model.VersionTag
	Rooms       []model.Room
	Showtimes   []ShowtimeRecord
}

type Source interface {
	Fetch(ctx context.Context) (Listings, error)
}
