// Package tz resolves timezone names, fixed UTC offsets and the host's own
// zone into *time.Location values.
package tz

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
)

// Local is the zone name that stands for the host's configured timezone.
const Local = "local"

// queryTimeout bounds each system query so an unresponsive service cannot
// hang the command.
const queryTimeout = time.Second

var offsetRegex = regexp.MustCompile(`^([+-])(\d{1,2})(?::?(\d{2}))?$`)

// InvalidZoneError reports a zone string that is neither an IANA name nor
// a UTC offset.
type InvalidZoneError struct {
	Name string
	Err  error
}

func (e *InvalidZoneError) Error() string {
	return fmt.Sprintf("invalid timezone: %q", e.Name)
}

func (e *InvalidZoneError) Unwrap() error {
	return e.Err
}

// Runner runs a query command and returns its trimmed stdout.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// Resolver finds the host's timezone name.
type Resolver struct {
	Run  Runner
	GOOS string
	Log  zerolog.Logger
}

// SystemZoneName returns the host's IANA zone name. It asks timedatectl on
// Linux, then reads the /etc/localtime symlink, and falls back to "UTC".
func (r *Resolver) SystemZoneName(ctx context.Context) string {
	goos := r.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	if goos == "linux" {
		out, err := r.query(ctx, "timedatectl", "show", "--property=Timezone", "--value")
		if err == nil && out != "" {
			return out
		}
		r.Log.Debug().Err(err).Msg("timedatectl query failed")
	}

	out, err := r.query(ctx, "readlink", "/etc/localtime")
	if err == nil {
		if name := zoneFromLink(out); name != "" {
			return name
		}
	}
	r.Log.Debug().Err(err).Str("link", out).Msg("localtime symlink query failed")

	return "UTC"
}

func (r *Resolver) query(ctx context.Context, name string, args ...string) (string, error) {
	if r.Run == nil {
		return "", fmt.Errorf("no query runner configured")
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	out, err := r.Run(ctx, name, args...)
	return strings.TrimSpace(out), err
}

// zoneFromLink extracts "America/New_York" from a link target like
// /usr/share/zoneinfo/America/New_York.
func zoneFromLink(target string) string {
	target = strings.TrimSpace(target)
	idx := strings.LastIndex(target, "zoneinfo/")
	if idx < 0 {
		return ""
	}
	return target[idx+len("zoneinfo/"):]
}

// ParseOffset parses "±HH", "±HHMM" or "±HH:MM" into a fixed zone named
// like "+05:30".
func ParseOffset(s string) (*time.Location, error) {
	m := offsetRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, fmt.Errorf("invalid UTC offset %q", s)
	}
	hours, _ := strconv.Atoi(m[2])
	minutes := 0
	if m[3] != "" {
		minutes, _ = strconv.Atoi(m[3])
	}
	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("UTC offset %q out of range", s)
	}

	seconds := hours*3600 + minutes*60
	if m[1] == "-" {
		seconds = -seconds
	}
	return time.FixedZone(fmt.Sprintf("%s%02d:%02d", m[1], hours, minutes), seconds), nil
}

// Lookup resolves name strictly: "local" is the host zone, then IANA names,
// then UTC offsets. Anything else is an *InvalidZoneError.
func (r *Resolver) Lookup(ctx context.Context, name string) (*time.Location, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, &InvalidZoneError{Name: name}
	}
	if strings.EqualFold(trimmed, Local) {
		system := r.SystemZoneName(ctx)
		if loc, err := time.LoadLocation(system); err == nil {
			return loc, nil
		}
		r.Log.Debug().Str("zone", system).Msg("system zone not loadable, using UTC")
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(trimmed)
	if err == nil {
		return loc, nil
	}
	if off, offErr := ParseOffset(trimmed); offErr == nil {
		return off, nil
	}
	return nil, &InvalidZoneError{Name: name, Err: err}
}

// Parse is the lenient form of Lookup: anything unparseable is UTC.
func (r *Resolver) Parse(ctx context.Context, name string) *time.Location {
	loc, err := r.Lookup(ctx, name)
	if err != nil {
		r.Log.Debug().Str("zone", name).Msg("unrecognized zone, using UTC")
		return time.UTC
	}
	return loc
}
