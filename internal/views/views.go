// Package views fans the merged movie list out into the redundant,
// pre-aggregated structures the front-end pages read. Every page layout gets
// the shape it can render without further joins; the price is redundancy,
// which is fine for data rebuilt wholesale on every run.
package views

import "kinoschurke/internal/kino"

// Showing is the leaf of every view: one screening slot, ready to render.
type Showing struct {
	Time       string   `json:"time"`
	EndTime    string   `json:"endTime"`
	MovieID    int      `json:"movieId"`
	MovieTitle string   `json:"movieTitle,omitempty"`
	Attributes []string `json:"attributes"`
	IframeURL  string   `json:"iframeUrl"`
}

// MovieInfo is the view-facing movie record: merged attributes plus the
// routing slug and the trailer reduced to its video id.
type MovieInfo struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Duration      string   `json:"duration"`
	FSK           string   `json:"fsk"`
	Genre         string   `json:"genre"`
	OriginalTitle string   `json:"originalTitle"`
	Production    string   `json:"production"`
	ReleaseDate   string   `json:"releaseDate"`
	Distributor   string   `json:"distributor"`
	Director      string   `json:"director"`
	Description   string   `json:"description"`
	PosterURL     string   `json:"posterUrl"`
	TrailerURL    string   `json:"trailerUrl"`
	Actors        []string `json:"actors"`
	Attributes    []string `json:"attributes"`
}

// RoomShowings is one room and its (time-sorted) showings.
type RoomShowings struct {
	Name     string    `json:"name"`
	Showings []Showing `json:"showings"`
}

// TheaterRooms is one cinema with its populated rooms in layout order.
type TheaterRooms struct {
	Name  string         `json:"name"`
	Rooms []RoomShowings `json:"rooms"`
}

// DateEntry is the date view: everything playing on one date.
type DateEntry struct {
	Date     string         `json:"date"`
	Theaters []TheaterRooms `json:"theaters"`
}

// DateShowings is one date inside the room view.
type DateShowings struct {
	Date     string    `json:"date"`
	Showings []Showing `json:"showings"`
}

// RoomDates is one room's schedule across dates.
type RoomDates struct {
	Name  string         `json:"name"`
	Slug  string         `json:"slug"`
	Dates []DateShowings `json:"dates"`
}

// RoomViewTheater is the room view: one cinema, per-room timelines.
type RoomViewTheater struct {
	Name  string      `json:"name"`
	Rooms []RoomDates `json:"rooms"`
}

// MovieDate is one date inside the movie and event views.
type MovieDate struct {
	Date     string         `json:"date"`
	Theaters []TheaterRooms `json:"theaters"`
}

// MovieEntry is the movie view: one movie and everywhere it plays.
type MovieEntry struct {
	MovieInfo
	Dates []MovieDate `json:"dates"`
}

// EventEntry groups showings carrying a special-event tag (festival, preview
// series, ...) across movies.
type EventEntry struct {
	Slug  string      `json:"slug"`
	Name  string      `json:"name"`
	Dates []MovieDate `json:"dates"`
}

// LookupShow is the show stored in the lookup table, it additionally names
// its room so a deep link can render without walking any view.
type LookupShow struct {
	Showing
	Theater string `json:"theater"`
}

// LookupEntry resolves one show hash from a shareable URL parameter.
type LookupEntry struct {
	Show      LookupShow `json:"show"`
	MovieInfo MovieInfo  `json:"movieInfo"`
	Date      string     `json:"date"`
}

// TheaterRef is the layout entry persisted for the UI.
type TheaterRef struct {
	Name  string   `json:"name"`
	Slug  string   `json:"slug"`
	Rooms []string `json:"rooms"`
}

// Views is everything one transform run produces.
type Views struct {
	DateView  []DateEntry
	RoomView  []RoomViewTheater
	MovieView []MovieEntry
	EventView []EventEntry

	ShowLookup      map[string]LookupEntry
	MoviesReference map[string]MovieInfo
	Theaters        map[string]TheaterRef
}

// NewMovieInfo builds the view-facing record for a merged movie.
func NewMovieInfo(m kino.MergedMovie) MovieInfo {
	trailer := kino.UnknownTrailerURL
	if id, ok := kino.CleanTrailerURL(m.TrailerURL); ok {
		trailer = id
	}
	return MovieInfo{
		ID:            m.ID,
		Title:         m.Title,
		Slug:          kino.Slugify(m.Title),
		Duration:      m.Duration,
		FSK:           m.FSK,
		Genre:         m.Genre,
		OriginalTitle: m.OriginalTitle,
		Production:    m.Production,
		ReleaseDate:   m.ReleaseDate,
		Distributor:   m.Distributor,
		Director:      m.Director,
		Description:   m.Description,
		PosterURL:     m.PosterURL,
		TrailerURL:    trailer,
		Actors:        m.Actors,
		Attributes:    m.Attributes,
	}
}
