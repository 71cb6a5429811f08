package report

import (
	"fmt"
	"strings"

	"github.com/netspec/prtg-reporter/internal/prtg"
)

// Section headers. Downstream consumers parse the alert body on these.
const (
	HeaderUnknown          = "Current Unknown sensors in PRTG:"
	HeaderDown             = "Current Down sensors in PRTG:"
	HeaderDownAcknowledged = "Current Down (Ack'd) sensors in PRTG:"
	HeaderDownPartial      = "Current Partially Down sensors in PRTG:"

	EmptySection = "No sensors to report!"
)

// Compose renders the buckets as the alert description. Sections always
// appear in the order Unknown, Down, Down (Ack'd), Partially Down.
func Compose(b Buckets) string {
	var lines []string
	lines = append(lines, SectionLines(HeaderUnknown, b.Unknown)...)
	lines = append(lines, SectionLines(HeaderDown, b.Down)...)
	lines = append(lines, SectionLines(HeaderDownAcknowledged, b.DownAcknowledged)...)
	lines = append(lines, SectionLines(HeaderDownPartial, b.DownPartial)...)
	return strings.Join(lines, "\n") + "\n"
}

// SectionLines returns one section as lines without terminators: a leading
// blank, the header, the sensor lines (or EmptySection) and a trailing blank.
func SectionLines(header string, sensors []prtg.Sensor) []string {
	lines := make([]string, 0, len(sensors)+3)
	lines = append(lines, "", header)
	if len(sensors) == 0 {
		lines = append(lines, EmptySection)
	}
	for _, s := range sensors {
		lines = append(lines, SensorLine(s))
	}
	return append(lines, "")
}

// SensorLine formats a sensor as "probe > group > device > name is status"
func SensorLine(s prtg.Sensor) string {
	return fmt.Sprintf("%s > %s > %s > %s is %s", s.Probe, s.Group, s.Device, s.Name, s.Status)
}
