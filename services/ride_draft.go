// services/ride_draft.go
package services

import (
	"encoding/json"
	"time"

	"github.com/gin-contrib/sessions"
)

// draftSessionKey holds the validated step-1 payload between HTTP round
// trips. The cookie store's MaxAge is the draft TTL.
const draftSessionKey = "ride_step1"

// DraftStopover is a validated intermediate stop from step 1.
type DraftStopover struct {
	Name     string  `json:"name"`
	Fulltext string  `json:"fulltext"`
	Street   string  `json:"street"`
	Zipcode  string  `json:"zipcode"`
	City     string  `json:"city"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// DraftStep1 is the accumulator state: step-1 fields that already passed
// validation, waiting for step 2. Nothing here has touched the database.
type DraftStep1 struct {
	DepFulltext string  `json:"d_fulltext"`
	DepStreet   string  `json:"d_street"`
	DepZipcode  string  `json:"d_zipcode"`
	DepCity     string  `json:"d_city"`
	DepLat      float64 `json:"d_latitude"`
	DepLng      float64 `json:"d_longitude"`

	ArrFulltext string  `json:"a_fulltext"`
	ArrStreet   string  `json:"a_street"`
	ArrZipcode  string  `json:"a_zipcode"`
	ArrCity     string  `json:"a_city"`
	ArrLat      float64 `json:"a_latitude"`
	ArrLng      float64 `json:"a_longitude"`

	Geometry          string          `json:"r_geometry"`
	DurationHours     float64         `json:"r_duration"`
	DepartureDatetime time.Time       `json:"departure_datetime"`
	Stopovers         []DraftStopover `json:"stopovers"`
}

func (d *DraftStep1) Duration() time.Duration {
	return time.Duration(d.DurationHours * float64(time.Hour))
}

// Validate runs the semantic checks that gin binding cannot express. The
// identical-location rule is reported on the arrival label field; the same
// rule runs again at the entity layer before commit.
func (d *DraftStep1) Validate() map[string]string {
	errs := map[string]string{}
	if d.DepFulltext == d.ArrFulltext && d.DepLat == d.ArrLat && d.DepLng == d.ArrLng {
		errs["a_fulltext"] = "arrival must differ from departure"
	}
	if !d.DepartureDatetime.After(time.Now()) {
		errs["departure_datetime"] = "departure must be in the future"
	}
	for _, s := range d.Stopovers {
		if s.Lat < -90 || s.Lat > 90 || s.Lng < -180 || s.Lng > 180 {
			errs["stopovers"] = "stopover coordinates out of range"
			break
		}
	}
	return errs
}

// SaveDraft stores the validated step-1 payload in the user's session.
func SaveDraft(session sessions.Session, d *DraftStep1) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	session.Set(draftSessionKey, string(raw))
	return session.Save()
}

// LoadDraft returns nil when no draft is present (step 2 must route the user
// back to step 1).
func LoadDraft(session sessions.Session) (*DraftStep1, error) {
	v := session.Get(draftSessionKey)
	if v == nil {
		return nil, nil
	}
	raw, ok := v.(string)
	if !ok {
		return nil, nil
	}
	var d DraftStep1
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ClearDraft runs on finalize and on explicit abandon.
func ClearDraft(session sessions.Session) error {
	session.Delete(draftSessionKey)
	return session.Save()
}
