package logbook

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/ianaindex"
)

var ErrNoAANumber = errors.New("logbook has no AANumber")

type xmlLogbook struct {
	XMLName  xml.Name  `xml:"CrewLogbook"`
	AANumber string    `xml:"AANumber,attr"`
	Sum      xmlSum    `xml:"Sum"`
	Years    []xmlYear `xml:"Year"`
}

type xmlSum struct {
	ActualBlock string `xml:"ActualBlock,attr"`
	LegGreater  string `xml:"LegGreater,attr"`
	Fly         string `xml:"Fly,attr"`
}

type xmlYear struct {
	Year   string     `xml:"Year,attr"`
	Sum    xmlSum     `xml:"Sum"`
	Months []xmlMonth `xml:"Month"`
}

type xmlMonth struct {
	MonthYear string    `xml:"MonthYear,attr"`
	Sum       xmlSum    `xml:"Sum"`
	Trips     []xmlTrip `xml:"Trip"`
}

type xmlTrip struct {
	StartsOn     string          `xml:"StartsOn,attr"`
	TripNumber   string          `xml:"TripNumber,attr"`
	Base         string          `xml:"Base,attr"`
	BidEquipment string          `xml:"BidEquipment,attr"`
	Sum          xmlSum          `xml:"Sum"`
	DutyPeriods  []xmlDutyPeriod `xml:"DutyPeriod"`
}

type xmlDutyPeriod struct {
	Sum     xmlSum      `xml:"Sum"`
	Flights []xmlFlight `xml:"Flight"`
}

type xmlFlight struct {
	FlightNumber      string `xml:"FlightNumber,attr"`
	DepSta            string `xml:"DepSta,attr"`
	OutDateTime       string `xml:"OutDateTime,attr"`
	ArrSta            string `xml:"ArrSta,attr"`
	InDateTime        string `xml:"InDateTime,attr"`
	Fly               string `xml:"Fly,attr"`
	LegGreater        string `xml:"LegGreater,attr"`
	ActualBlock       string `xml:"ActualBlock,attr"`
	GroundTime        string `xml:"GroundTime,attr"`
	OvernightDuration string `xml:"OvernightDuration,attr"`
	EqModel           string `xml:"EqModel,attr"`
	EqNumber          string `xml:"EqNumber,attr"`
	EqType            string `xml:"EqType,attr"`
	Position          string `xml:"Position,attr"`
	DelayCode         string `xml:"DelayCode,attr"`
	DepPerformance    string `xml:"DepPerformance,attr"`
	ArrPerformance    string `xml:"ArrPerformance,attr"`
}

// Parse reads a crew logbook report. Reports declaring an encoding other
// than UTF-8 are transcoded.
func Parse(r io.Reader) (*Logbook, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var raw xmlLogbook
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding logbook: %w", err)
	}
	if strings.TrimSpace(raw.AANumber) == "" {
		return nil, ErrNoAANumber
	}

	var dp durationParser
	lb := Logbook{
		AANumber: strings.TrimSpace(raw.AANumber),
		Sum:      dp.sum("logbook", raw.Sum),
	}

	for _, xy := range raw.Years {
		year, err := strconv.Atoi(strings.TrimSpace(xy.Year))
		if err != nil {
			return nil, fmt.Errorf("year %q: %w", xy.Year, err)
		}
		y := Year{
			Year: year,
			Sum:  dp.sum(xy.Year, xy.Sum),
		}

		for _, xm := range xy.Months {
			m := Month{
				MonthYear: xm.MonthYear,
				Sum:       dp.sum(xm.MonthYear, xm.Sum),
			}

			for _, xt := range xm.Trips {
				starts, err := time.Parse("2006-01-02", strings.TrimSpace(xt.StartsOn))
				if err != nil {
					return nil, fmt.Errorf("trip %s: %w", xt.TripNumber, err)
				}
				ctx := "trip " + xt.TripNumber
				t := Trip{
					StartsOn:     starts,
					Number:       xt.TripNumber,
					Base:         xt.Base,
					BidEquipment: xt.BidEquipment,
					Sum:          dp.sum(ctx, xt.Sum),
				}

				for _, xd := range xt.DutyPeriods {
					d := DutyPeriod{
						Sum: dp.sum(ctx, xd.Sum),
					}
					for _, xf := range xd.Flights {
						d.Flights = append(d.Flights, dp.flight(ctx, xf))
					}
					t.DutyPeriods = append(t.DutyPeriods, d)
				}

				m.Trips = append(m.Trips, t)
			}

			y.Months = append(y.Months, m)
		}

		lb.Years = append(lb.Years, y)
	}

	if dp.err != nil {
		return nil, dp.err
	}
	return &lb, nil
}

func ParseFile(path string) (*Logbook, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Parse(fd)
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// durationParser keeps the first duration error so the conversion code can
// read straight through.
type durationParser struct {
	err error
}

func (p *durationParser) parse(ctx, attr, s string) Duration {
	if p.err != nil {
		return 0
	}
	d, err := ParseDuration(s)
	if err != nil {
		p.err = fmt.Errorf("%s: %s: %w", ctx, attr, err)
	}
	return d
}

func (p *durationParser) sum(ctx string, s xmlSum) Sum {
	return Sum{
		ActualBlock: p.parse(ctx, "ActualBlock", s.ActualBlock),
		LegGreater:  p.parse(ctx, "LegGreater", s.LegGreater),
		Fly:         p.parse(ctx, "Fly", s.Fly),
	}
}

func (p *durationParser) flight(ctx string, x xmlFlight) Flight {
	ctx += " flight " + x.FlightNumber
	return Flight{
		Number:            x.FlightNumber,
		DepSta:            x.DepSta,
		OutDateTime:       x.OutDateTime,
		ArrSta:            x.ArrSta,
		InDateTime:        x.InDateTime,
		Fly:               p.parse(ctx, "Fly", x.Fly),
		LegGreater:        p.parse(ctx, "LegGreater", x.LegGreater),
		ActualBlock:       p.parse(ctx, "ActualBlock", x.ActualBlock),
		GroundTime:        p.parse(ctx, "GroundTime", x.GroundTime),
		OvernightDuration: p.parse(ctx, "OvernightDuration", x.OvernightDuration),
		EqModel:           x.EqModel,
		EqNumber:          x.EqNumber,
		EqType:            x.EqType,
		Position:          x.Position,
		DelayCode:         x.DelayCode,
		DepPerformance:    x.DepPerformance,
		ArrPerformance:    x.ArrPerformance,
	}
}
