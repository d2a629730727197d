package kino

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NormalizeAttribute maps the wildly inconsistent language/subtitle labels of
// both source sites onto the two canonical tokens. Anything else passes
// through unchanged.
func NormalizeAttribute(raw string) string {
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "omd") {
		return "OmdU"
	}
	if strings.Contains(lower, "ome") {
		return "OmeU"
	}
	return raw
}

func NormalizeAttributes(raw []string) []string {
	out := make([]string, len(raw))
	for i, attr := range raw {
		out[i] = NormalizeAttribute(attr)
	}
	return out
}

// NormalizeRoomName maps scraped room text onto the canonical room name from
// the layout. The site changes the surrounding format regularly but the core
// name ("Kubrick", "Atelier", ...) stays, so matching is by suffix substring.
// Returns false when no room matches, the caller must drop the show.
func (l Layout) NormalizeRoomName(raw string) (string, bool) {
	for _, room := range l.AllRooms() {
		short := strings.TrimPrefix(room, "Saal ")
		if strings.Contains(raw, short) {
			return room, true
		}
	}
	return "", false
}

var dayMonthRegex = regexp.MustCompile(`(?:[A-Za-zÄÖÜäöü]+\.?,\s*)?(\d{1,2})\.(\d{1,2})\.`)

// NormalizeDateText parses the overview site's date labels ("heute",
// "Fr., 27.9.", "13.1.") into ISO YYYY-MM-DD relative to now. The sites only
// list forward, so a month numerically before the current one means next
// year. Returns false on unparseable input, the caller logs and drops the
// date entry instead of guessing.
func NormalizeDateText(now time.Time, raw string) (string, bool) {
	text := strings.TrimSpace(raw)

	if strings.EqualFold(text, "heute") {
		return now.Format("2006-01-02"), true
	}

	match := dayMonthRegex.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	day, err := strconv.Atoi(match[1])
	if err != nil {
		return "", false
	}
	month, err := strconv.Atoi(match[2])
	if err != nil {
		return "", false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return "", false
	}

	year := now.Year()
	if month < int(now.Month()) {
		year++
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

var cinemaSlugRegex = regexp.MustCompile(`kino-[^/]+`)

// CorrectWidgetURLs fixes a known upstream inconsistency: a show's ticket
// widget URL can carry the slug of a different cinema than the room it plays
// in. The slug segment is rewritten in place to the room's actual cinema.
func (l Layout) CorrectWidgetURLs(shows []Show) {
	for i := range shows {
		slug, ok := l.SlugForRoom(shows[i].Theater)
		if !ok {
			continue
		}
		if strings.Contains(shows[i].IframeURL, slug) {
			continue
		}
		shows[i].IframeURL = cinemaSlugRegex.ReplaceAllString(shows[i].IframeURL, slug)
	}
}

var showIDRegex = regexp.MustCompile(`show/(\d+)`)

// ShowIDFromWidgetURL extracts the booking-system show id embedded in a
// ticket widget URL.
func ShowIDFromWidgetURL(iframeURL string) (string, bool) {
	match := showIDRegex.FindStringSubmatch(iframeURL)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// ShowHash derives the deep-link key for one showing:
// "<widgetShowID>-<time with ':' replaced by '-'>", e.g. "77269-20-00".
// The UI computes the identical hash from a ?show= URL parameter, so the
// format is a bit-exact contract.
func ShowHash(iframeURL, showTime string) (string, bool) {
	id, ok := ShowIDFromWidgetURL(iframeURL)
	if !ok {
		return "", false
	}
	return id + "-" + strings.ReplaceAll(showTime, ":", "-"), true
}

var germanReplacer = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")
var nonSlugRegex = regexp.MustCompile(`[^a-z0-9\s-]`)
var slugSpaceRegex = regexp.MustCompile(`\s+`)
var slugDashRegex = regexp.MustCompile(`-+`)

// Slugify builds the URL slug for a title or room name with German
// transliteration, matching the slugs the front-end routes on.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = germanReplacer.Replace(s)
	s = nonSlugRegex.ReplaceAllString(s, "")
	s = slugSpaceRegex.ReplaceAllString(s, "-")
	s = slugDashRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CleanTrailerURL reduces a trailer URL, embed or watch form, to the bare
// YouTube video id. Returns false when the URL carries no id (including the
// sentinel).
func CleanTrailerURL(rawURL string) (string, bool) {
	s := strings.Replace(rawURL, "embed/", "watch?v=", 1)
	s = strings.ReplaceAll(s, "-nocookie", "")
	_, after, found := strings.Cut(s, "v=")
	if !found {
		return "", false
	}
	id := strings.SplitN(after, "&", 2)[0]
	id = strings.SplitN(id, "?", 2)[0]
	if id == "" {
		return "", false
	}
	return id, true
}

// EndTime adds the movie duration to a HH:MM start time, wrapping past
// midnight. Duration text is "<minutes> min"; the unknown-duration sentinel
// falls back to 120 minutes.
func EndTime(startTime, duration string) string {
	parts := strings.SplitN(startTime, ":", 2)
	if len(parts) != 2 {
		return startTime
	}
	hours, err1 := strconv.Atoi(parts[0])
	minutes, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return startTime
	}

	movieMinutes := 120
	if fields := strings.Fields(duration); duration != UnknownDuration && len(fields) > 0 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			movieMinutes = n
		}
	}

	total := hours*60 + minutes + movieMinutes
	return fmt.Sprintf("%02d:%02d", (total/60)%24, total%60)
}

var formatAttributes = map[string]bool{
	"2D":          true,
	"3D":          true,
	"OmdU":        true,
	"OmeU":        true,
	"OV":          true,
	"Dolby Atmos": true,
	"IMAX":        true,
}

// FilterEventAttributes strips presentation-format flags, leaving only the
// special-event tags (festivals, preview series, ...) that feed the event view.
func FilterEventAttributes(attributes []string) []string {
	var events []string
	for _, attr := range attributes {
		if formatAttributes[attr] || strings.TrimSpace(attr) == "" {
			continue
		}
		events = append(events, attr)
	}
	return events
}
