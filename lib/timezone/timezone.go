package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
}

// force the timezone to Berlin regardless of where the scraper runs,
// "heute" and day/month text on the cinema sites are wall-clock local
// to Tübingen and resolving them against a server in another zone
// shifts dates around midnight
func Now() time.Time {
	return time.Now().In(Location)
}
