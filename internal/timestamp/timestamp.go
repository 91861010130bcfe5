// Package timestamp renders instants as human-readable strings in a chosen
// timezone using strftime directives.
package timestamp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/andrewthomaslee/moscripts/internal/tz"
)

// Stamp is a formatted instant together with what produced it.
type Stamp struct {
	Text   string    `json:"timestamp"`
	Zone   string    `json:"zone"`
	Format string    `json:"format"`
	At     time.Time `json:"at"`
}

// Formatter resolves zones through a tz.Resolver.
type Formatter struct {
	Zones *tz.Resolver
	// Now returns the current instant; nil means time.Now.
	Now func() time.Time
}

// Format renders at (nil means now) in zone using the strftime layout.
// An unknown zone is an error wrapping *tz.InvalidZoneError.
func (f *Formatter) Format(ctx context.Context, at *time.Time, zone, layout string) (Stamp, error) {
	if strings.TrimSpace(layout) == "" {
		return Stamp{}, fmt.Errorf("empty time format")
	}
	loc, err := f.Zones.Lookup(ctx, zone)
	if err != nil {
		return Stamp{}, err
	}

	instant := f.now()
	if at != nil {
		instant = *at
	}
	local := instant.In(loc)

	return Stamp{
		Text:   Render(local, layout),
		Zone:   loc.String(),
		Format: layout,
		At:     instant.UTC(),
	}, nil
}

func (f *Formatter) now() time.Time {
	if f.Now != nil {
		return f.Now().UTC()
	}
	return time.Now().UTC()
}

// Render formats t with strftime directives, in t's own location.
func Render(t time.Time, layout string) string {
	return strftime.Format(layout, t)
}

// naiveLayouts are accepted for instants without a zone; they are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseInstant reads an RFC 3339 instant, or a zone-less date/time which is
// taken to be UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty instant")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized instant %q: use RFC 3339 or YYYY-MM-DD[ HH:MM[:SS]]", s)
}
