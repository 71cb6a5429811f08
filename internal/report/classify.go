package report

import "github.com/netspec/prtg-reporter/internal/prtg"

// Buckets holds reportable sensors by status, each in fetch order
type Buckets struct {
	Unknown          []prtg.Sensor
	Down             []prtg.Sensor
	DownAcknowledged []prtg.Sensor
	DownPartial      []prtg.Sensor
}

// Total returns the number of sensors across all buckets
func (b Buckets) Total() int {
	return len(b.Unknown) + len(b.Down) + len(b.DownAcknowledged) + len(b.DownPartial)
}

// Classify drops excluded sensors and buckets the rest by status_raw.
// Codes outside the four reported statuses land in Unknown.
func Classify(sensors []prtg.Sensor, filter *Filter) Buckets {
	var b Buckets
	for _, s := range sensors {
		if filter != nil && filter.ShouldExclude(s) {
			continue
		}

		switch s.StatusRaw {
		case prtg.StatusUnknown:
			b.Unknown = append(b.Unknown, s)
		case prtg.StatusDown:
			b.Down = append(b.Down, s)
		case prtg.StatusDownAcknowledged:
			b.DownAcknowledged = append(b.DownAcknowledged, s)
		case prtg.StatusDownPartial:
			b.DownPartial = append(b.DownPartial, s)
		default:
			b.Unknown = append(b.Unknown, s)
		}
	}
	return b
}
