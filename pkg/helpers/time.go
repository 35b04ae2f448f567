package helpers

import (
	"context"
	"fmt"
	"strings"
	"time"

	mailtpl "github.com/keeper31337/homepage-api/pkg/mailer/templates"
)

const expiresAtLayout = "02 January 2006, 15:04 MST"

// LocalizeTimesIfPossible resolves the requester IP in data and rewrites
// Location and ExpiresAtText for that place. Lookup failures leave data as is.
func LocalizeTimesIfPossible(ctx context.Context, resolver mailtpl.GeoResolver, data map[string]any) {
	if resolver == nil || data == nil {
		return
	}
	ip := strings.TrimSpace(stringOf(data["IP"]))
	if ip == "" {
		return
	}
	g, err := resolver.Lookup(ctx, ip)
	if err != nil {
		return
	}
	if stringOf(data["Location"]) == "" {
		if loc := mailtpl.FormatGeo(g); loc != "" {
			data["Location"] = loc
		}
	}
	loc, err := time.LoadLocation(strings.TrimSpace(g.Timezone))
	if g.Timezone == "" || err != nil {
		return
	}
	if t, ok := timeOf(data["ExpiresAt"]); ok {
		data["ExpiresAtText"] = t.In(loc).Format(expiresAtLayout)
	}
}

func stringOf(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// timeOf accepts a time.Time or the RFC 3339 string it becomes after a JSON round trip.
func timeOf(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case string:
		t, err := time.Parse(time.RFC3339, x)
		return t, err == nil && !t.IsZero()
	}
	return time.Time{}, false
}
