package kino

// Sentinel values for fields that could not be scraped. Downstream consumers
// render records without nil checks, so absent data is always a literal string.
const (
	UnknownTitle         = "Unknown Title"
	UnknownOriginalTitle = "Unknown Original Title"
	UnknownGenre         = "Unknown Genre"
	UnknownProduction    = "Unknown Production"
	UnknownReleaseDate   = "Unknown Release Date"
	UnknownDistributor   = "Unknown Distributor"
	UnknownDirector      = "Unknown Director"
	UnknownDescription   = "Unknown Description"
	UnknownPosterURL     = "Unknown Poster URL"
	UnknownTrailerURL    = "Unknown Trailer URL"
	UnknownIframeURL     = "Unknown iframe URL"
	UnknownFSK           = "Unknown"
	UnknownDuration      = "0"
	UnknownTime          = "Unknown Time"

	// poster used for movies that never matched the attribute source
	PlaceholderPoster = "/poster-template.jpg"
)

// MovieAttributes is the descriptive record scraped from the kinoheld widget
// pages. Keyed by scraped title, no stable id until the merge assigns one.
type MovieAttributes struct {
	Title         string   `json:"title"`
	Duration      string   `json:"duration"`
	FSK           string   `json:"fsk"`
	Genre         string   `json:"genre"`
	OriginalTitle string   `json:"origTitle"`
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

// Show is one screening slot inside a schedule date.
type Show struct {
	Time       string   `json:"time"`
	Theater    string   `json:"theater"`
	Attributes []string `json:"attributes"`
	IframeURL  string   `json:"iframeUrl"`
}

// DateShows groups the shows of one ISO date.
type DateShows struct {
	Date  string `json:"date"`
	Shows []Show `json:"shows"`
}

// ScheduleEntry is the per-movie record scraped from the program overview
// site, the only source that knows when and where a movie actually plays.
type ScheduleEntry struct {
	Title      string      `json:"title"`
	Attributes []string    `json:"attributes"`
	Duration   string      `json:"duration"`
	Showtimes  []DateShows `json:"showtimes"`
}

// Poster is a higher-resolution poster scraped from the non-widget pages.
type Poster struct {
	Title string `json:"title"`
	Src   string `json:"src"`
}

// MergedMovie is the unified entity produced by the merge stage: schedule
// fields always win, metadata is sentinel-defaulted when no title match was
// found. The id is positional per run, it does not survive across runs.
type MergedMovie struct {
	ID int `json:"id"`

	Title         string   `json:"title"`
	Duration      string   `json:"duration"`
	FSK           string   `json:"fsk"`
	Genre         string   `json:"genre"`
	OriginalTitle string   `json:"origTitle"`
	Production    string   `json:"production"`
	ReleaseDate   string   `json:"releaseDate"`
	Distributor   string   `json:"distributor"`
	Director      string   `json:"director"`
	Description   string   `json:"description"`
	PosterURL     string   `json:"posterUrl"`
	TrailerURL    string   `json:"trailerUrl"`
	Actors        []string `json:"actors"`
	Attributes    []string `json:"attributes"`

	Showtimes []DateShows `json:"showtimes"`
}

// SentinelAttributes returns a MovieAttributes with every field at its
// sentinel, used when the merge finds no match for a schedule title.
func SentinelAttributes() MovieAttributes {
	return MovieAttributes{
		Title:         UnknownTitle,
		Duration:      UnknownDuration,
		FSK:           UnknownFSK,
		Genre:         UnknownGenre,
		OriginalTitle: UnknownOriginalTitle,
		Production:    UnknownProduction,
		ReleaseDate:   UnknownReleaseDate,
		Distributor:   UnknownDistributor,
		Director:      UnknownDirector,
		Description:   UnknownDescription,
		PosterURL:     PlaceholderPoster,
		TrailerURL:    UnknownTrailerURL,
		Actors:        []string{},
		Attributes:    []string{},
	}
}
