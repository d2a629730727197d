// Package kinoheldapi talks to the kinoheld booking-system endpoint the
// widget itself uses. It is the alternate data source: structured JSON
// instead of scraped DOM, auditorium ids instead of room-name text. The
// adapter folds its response into the same merged-movie shape the view
// transformer consumes, so everything downstream of the merge is shared.
package kinoheldapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"kinoschurke/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("kinoschurke/kinoheldapi")

// Config for the live data path.
type Config struct {
	BaseURL string `json:"base_url"`
}

func (c Config) baseURL() string {
	if c.BaseURL == "" {
		return "https://www.kinoheld.de"
	}
	return c.BaseURL
}

// Flag is one presentation flag of a show (3d, omdu, ...).
type Flag struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// APIShow is one screening as the booking system reports it.
type APIShow struct {
	ID           int    `json:"id"`
	MovieID      int    `json:"movieId"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Duration     int    `json:"duration"`
	AuditoriumID int    `json:"auditoriumId"`
	GroupID      int    `json:"groupId"`
	Flags        []Flag `json:"flags"`
}

// APIMovie is the booking system's movie catalog record.
type APIMovie struct {
	Title                 string   `json:"title"`
	Name                  string   `json:"name"`
	TitleOrig             string   `json:"title_orig"`
	Duration              int      `json:"duration"`
	Genres                []named  `json:"genres"`
	AgeClassification     *rating  `json:"ageClassificationRating"`
	ProductionCountries   []string `json:"productionCountries"`
	Released              string   `json:"released"`
	Distributor           string   `json:"distributor"`
	Directors             []named  `json:"directors"`
	Actors                []named  `json:"actors"`
	Description           string   `json:"description"`
	AdditionalDescription string   `json:"additional_description"`
	LargeImage            string   `json:"largeImage"`
	LazyImage             string   `json:"lazyImage"`
	Trailers              []struct {
		Format string `json:"format"`
		ID     string `json:"id"`
	} `json:"trailers"`
}

type named struct {
	Name string `json:"name"`
}

type rating struct {
	Value json.Number `json:"value"`
}

// Data is the `{shows, movies, groupIds}` document returned by the endpoint.
type Data struct {
	Shows    []APIShow           `json:"shows"`
	Movies   map[string]APIMovie `json:"movies"`
	GroupIDs []int               `json:"groupIds"`
}

type Client struct {
	http *resty.Client
	base string
}

func NewClient(cfg Config) *Client {
	client := resty.New()
	client.SetHeader("user-agent", "Mozilla/5.0 (compatible; kinoschurke)")
	client.SetHeader("accept", "application/json")
	client.SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "kinoschurke/kinoheldapi")

	return &Client{http: client, base: cfg.baseURL()}
}

// ShowsForCinemas fetches the full current program of the given cinema ids.
func (c *Client) ShowsForCinemas(ctx context.Context, cinemaIDs []string) (Data, error) {
	ctx, span := tracer.Start(ctx, "ShowsForCinemas")
	defer span.End()

	query := url.Values{}
	for _, id := range cinemaIDs {
		query.Add("cinemaIds[]", id)
	}

	res, err := c.http.R().SetContext(ctx).
		Get(c.base + "/ajax/getShowsForCinemas?" + query.Encode())
	if err != nil {
		return Data{}, fmt.Errorf("getShowsForCinemas: %w", err)
	}
	if res.StatusCode() != 200 {
		return Data{}, fmt.Errorf("getShowsForCinemas: unexpected status %d", res.StatusCode())
	}

	var data Data
	if err := json.Unmarshal(res.Body(), &data); err != nil {
		return Data{}, fmt.Errorf("getShowsForCinemas: decode: %w", err)
	}
	return data, nil
}
