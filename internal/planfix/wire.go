package planfix

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Wire helpers for Planfix payloads. The REST API is forward-compatible:
// fields appear and disappear between releases and identifiers switch between
// numbers and strings (users arrive as "user:123"). Every helper here tolerates
// odd shapes so one field never fails a whole response.

// flexID accepts a JSON number or string identifier.
type flexID struct {
	value string
}

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.value = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f.value = n.String()
	return nil
}

func (f flexID) String() string { return f.value }

// Int returns the numeric part of the identifier, tolerating prefixed forms
// such as "user:123". Returns 0 when no number is present.
func (f flexID) Int() int {
	s := f.value
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		s = s[i+1:]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// shortRef is the {"id": ..., "name": ...} reference Planfix embeds for
// related entities (project, owner, assigner).
type shortRef struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

// statusRef is the {"id": ..., "name": ...} task status object.
type statusRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// phoneRef is one entry of a contact's phone list.
type phoneRef struct {
	Number string `json:"number"`
	Type   int    `json:"type"`
}

// peopleRef is the {"users": [...], "groups": [...]} assignee container.
type peopleRef struct {
	Users  []shortRef `json:"users"`
	Groups []shortRef `json:"groups"`
}

// first returns the first user reference, if any.
func (p *peopleRef) first() (shortRef, bool) {
	if p == nil || len(p.Users) == 0 {
		return shortRef{}, false
	}
	return p.Users[0], true
}

// timePoint is the Planfix timestamp object. Any of the three fields may be
// set: "date" (dd-MM-yyyy), "time" (HH:mm), "datetime" (ISO 8601).
type timePoint struct {
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	DateTime string `json:"datetime,omitempty"`
}

// toTime resolves the time point to a time.Time, preferring the full
// datetime. Returns the zero time when nothing parseable is present.
func (t *timePoint) toTime() time.Time {
	if t == nil {
		return time.Time{}
	}
	if t.DateTime != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
			if parsed, err := time.Parse(layout, t.DateTime); err == nil {
				return parsed
			}
		}
	}
	if t.Date != "" {
		for _, layout := range []string{"02-01-2006", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t.Date); err == nil {
				if t.Time != "" {
					if clock, err := time.Parse("15:04", t.Time); err == nil {
						return parsed.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
					}
				}
				return parsed
			}
		}
	}
	return time.Time{}
}

// datePoint builds a timePoint carrying a bare date for outbound requests.
func datePoint(date string) *timePoint {
	if date == "" {
		return nil
	}
	return &timePoint{Date: date}
}
