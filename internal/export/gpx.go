package export

import (
	"fmt"
	"strings"
	"time"

	"garage-tracker-service/internal/domain"
)

// GPX renders a recorded route as a GPX 1.1 track.
// Routes with no points render an empty document rather than failing: the
// caller decides whether an empty export is worth serving.
func GPX(route *domain.Route) string {
	if route == nil || len(route.Points) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString(`<gpx version="1.1" creator="garage-tracker">`)
	sb.WriteString(fmt.Sprintf(`<trk><name>%s</name><trkseg>`, route.ID))

	for _, pt := range route.Points {
		sb.WriteString(fmt.Sprintf(
			`<trkpt lat="%f" lon="%f"><ele>%f</ele><time>%s</time></trkpt>`,
			pt.Latitude, pt.Longitude, pt.AltitudeM,
			time.UnixMilli(pt.TimestampMs).UTC().Format(time.RFC3339),
		))
	}

	sb.WriteString(`</trkseg></trk></gpx>`)
	return sb.String()
}
