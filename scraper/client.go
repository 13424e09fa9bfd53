package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"movienight_manager/model"
	"movienight_manager/utils"
	"net/http"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// listingsPayload mirrors the provider's JSON. Ids in it are the provider's
// own; they are carried into the store unchanged.
type listingsPayload struct {
	Cinemas []struct {
		Id   int    `json:"id"`
		Name string `json:"name"`
	} `json:"cinemas"`
	Movies []struct {
		Id           int    `json:"id"`
		Title        string `json:"title"`
		ImageUrl     string `json:"imageUrl"`
		InfoUrl      string `json:"infoUrl"`
		Duration     int    `json:"duration"`
		PremiereDate string `json:"premiereDate"`
		Censorship   string `json:"censorship"`
	} `json:"movies"`
	Genres []struct {
		Id   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	Versions []struct {
		Type string `json:"type"`
	} `json:"versions"`
	Rooms []struct {
		Id   int    `json:"id"`
		Name string `json:"name"`
	} `json:"rooms"`
	Showtimes []struct {
		Id        int       `json:"id"`
		MovieId   int       `json:"movieId"`
		CinemaId  int       `json:"cinemaId"`
		RoomId    int       `json:"roomId"`
		StartTime time.Time `json:"startTime"`
		Version   string    `json:"version"`
	} `json:"showtimes"`
}

func (c *Client) Fetch(ctx context.Context) (Listings, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return Listings{}, fmt.Errorf("build listings request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Listings{}, fmt.Errorf("fetch listings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Listings{}, fmt.Errorf("listings provider returned %d", resp.StatusCode)
	}

	var payload listingsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Listings{}, fmt.Errorf("decode listings: %w", err)
	}

	return payload.toListings(), nil
}

func (p listingsPayload) toListings() Listings {
	var out Listings

	for _, c := range p.Cinemas {
		out.Cinemas = append(out.Cinemas, model.Cinema{ID: c.Id, Name: c.Name})
	}
	for _, m := range p.Movies {
		movie := model.Movie{
			ID:           m.Id,
			Title:        m.Title,
			ImageUrl:     utils.StringPtr(m.ImageUrl),
			InfoUrl:      utils.StringPtr(m.InfoUrl),
			Duration:     m.Duration,
			PremiereDate: utils.StringPtr(m.PremiereDate),
		}
		if m.Censorship != "" {
			movie.AgeRating = &model.AgeRating{Censorship: m.Censorship}
		}
		out.Movies = append(out.Movies, movie)
	}
	for _, g := range p.Genres {
		out.Genres = append(out.Genres, model.Genre{ID: g.Id, Name: g.Name})
	}
	for _, v := range p.Versions {
		out.VersionTags = append(out.VersionTags, model.VersionTag{Type: v.Type})
	}
	for _, r := range p.Rooms {
		out.Rooms = append(out.Rooms, model.Room{ID: r.Id, Name: r.Name})
	}
	for _, s := range p.Showtimes {
		out.Showtimes = append(out.Showtimes, ShowtimeRecord{
			ID:        s.Id,
			MovieId:   s.MovieId,
			CinemaId:  s.CinemaId,
			RoomId:    s.RoomId,
			StartTime: s.StartTime,
			Version:   s.Version,
		})
	}
	return out
}
