package logbook // import "kastelo.dev/logbook"

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Logbook struct {
	AANumber string
	Sum      Sum
	Years    []Year
}

// Sum is the aggregate time the report states for a level of the logbook.
type Sum struct {
	ActualBlock Duration
	LegGreater  Duration
	Fly         Duration
}

type Year struct {
	Year   int
	Sum    Sum
	Months []Month
}

type Month struct {
	MonthYear string
	Sum       Sum
	Trips     []Trip
}

type Trip struct {
	StartsOn     time.Time
	Number       string
	Base         string
	BidEquipment string
	Sum          Sum
	DutyPeriods  []DutyPeriod
}

type DutyPeriod struct {
	Sum     Sum
	Flights []Flight
}

type Flight struct {
	Number            string
	DepSta            string
	OutDateTime       string
	ArrSta            string
	InDateTime        string
	Fly               Duration
	LegGreater        Duration
	ActualBlock       Duration
	GroundTime        Duration
	OvernightDuration Duration
	EqModel           string
	EqNumber          string
	EqType            string
	Position          string
	DelayCode         string
	DepPerformance    string
	ArrPerformance    string
}

// Duration is a length of time in whole minutes, written as H:MM.
type Duration int64

var errBadDuration = errors.New("invalid duration")

// ParseDuration parses H:MM (any number of hour digits). The empty string is
// zero.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	hs, ms, ok := strings.Cut(s, ":")
	if !ok || hs == "" || len(ms) != 2 {
		return 0, fmt.Errorf("%w %q", errBadDuration, s)
	}
	h, err := strconv.ParseUint(hs, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w %q", errBadDuration, s)
	}
	m, err := strconv.ParseUint(ms, 10, 8)
	if err != nil || m > 59 {
		return 0, fmt.Errorf("%w %q", errBadDuration, s)
	}

	d := Duration(h*60 + m)
	if neg {
		d = -d
	}
	return d, nil
}

func (d Duration) String() string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	return fmt.Sprintf("%s%d:%02d", sign, d/60, d%60)
}

func (d Duration) Hours() float64 {
	return float64(d) / 60
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
