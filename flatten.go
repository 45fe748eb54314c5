package logbook

import (
	"fmt"

	"github.com/google/uuid"
)

// FlatFlight is one flight leg together with everything above it in the
// logbook, suitable for a single spreadsheet row.
type FlatFlight struct {
	AANumber          string   `csv:"aa_number"`
	Year              int      `csv:"year"`
	MonthYear         string   `csv:"month_year"`
	TripStartsOn      string   `csv:"trip_starts_on"`
	TripNumber        string   `csv:"trip_number"`
	Base              string   `csv:"base"`
	BidEquipment      string   `csv:"bid_equipment"`
	DutyPeriod        int      `csv:"duty_period"`
	Leg               int      `csv:"leg"`
	FlightNumber      string   `csv:"flight_number"`
	DepSta            string   `csv:"dep_sta"`
	OutDateTime       string   `csv:"out_datetime"`
	ArrSta            string   `csv:"arr_sta"`
	InDateTime        string   `csv:"in_datetime"`
	Fly               Duration `csv:"fly"`
	LegGreater        Duration `csv:"leg_greater"`
	ActualBlock       Duration `csv:"actual_block"`
	GroundTime        Duration `csv:"ground_time"`
	OvernightDuration Duration `csv:"overnight_duration"`
	EqModel           string   `csv:"eq_model"`
	EqNumber          string   `csv:"eq_number"`
	EqType            string   `csv:"eq_type"`
	Position          string   `csv:"position"`
	DelayCode         string   `csv:"delay_code"`
	DepPerformance    string   `csv:"dep_performance"`
	ArrPerformance    string   `csv:"arr_performance"`

	LogbookUUID    uuid.UUID `csv:"logbook_uuid"`
	YearUUID       uuid.UUID `csv:"year_uuid"`
	MonthUUID      uuid.UUID `csv:"month_uuid"`
	TripUUID       uuid.UUID `csv:"trip_uuid"`
	DutyPeriodUUID uuid.UUID `csv:"duty_period_uuid"`
	FlightUUID     uuid.UUID `csv:"flight_uuid"`
}

// UUIDColumns are the identifier columns of a FlatFlight.
var UUIDColumns = []string{"logbook_uuid", "year_uuid", "month_uuid", "trip_uuid", "duty_period_uuid", "flight_uuid"}

var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://kastelo.dev/logbook"))

// Flatten returns one FlatFlight per flight leg in document order. The
// UUIDs are derived from the position in the logbook, so flattening the
// same report twice yields the same identifiers.
func Flatten(lb *Logbook) []FlatFlight {
	var res []FlatFlight

	lbPath := lb.AANumber
	lbID := uuid.NewSHA1(namespace, []byte(lbPath))
	for yi, y := range lb.Years {
		yPath := fmt.Sprintf("%s/%d.%d", lbPath, yi, y.Year)
		yID := uuid.NewSHA1(namespace, []byte(yPath))
		for mi, m := range y.Months {
			mPath := fmt.Sprintf("%s/%d.%s", yPath, mi, m.MonthYear)
			mID := uuid.NewSHA1(namespace, []byte(mPath))
			for ti, t := range m.Trips {
				tPath := fmt.Sprintf("%s/%d.%s", mPath, ti, t.Number)
				tID := uuid.NewSHA1(namespace, []byte(tPath))
				starts := ""
				if !t.StartsOn.IsZero() {
					starts = t.StartsOn.Format("2006-01-02")
				}
				for di, d := range t.DutyPeriods {
					dPath := fmt.Sprintf("%s/%d", tPath, di)
					dID := uuid.NewSHA1(namespace, []byte(dPath))
					for fi, f := range d.Flights {
						fPath := fmt.Sprintf("%s/%d.%s", dPath, fi, f.Number)
						res = append(res, FlatFlight{
							AANumber:          lb.AANumber,
							Year:              y.Year,
							MonthYear:         m.MonthYear,
							TripStartsOn:      starts,
							TripNumber:        t.Number,
							Base:              t.Base,
							BidEquipment:      t.BidEquipment,
							DutyPeriod:        di + 1,
							Leg:               fi + 1,
							FlightNumber:      f.Number,
							DepSta:            f.DepSta,
							OutDateTime:       f.OutDateTime,
							ArrSta:            f.ArrSta,
							InDateTime:        f.InDateTime,
							Fly:               f.Fly,
							LegGreater:        f.LegGreater,
							ActualBlock:       f.ActualBlock,
							GroundTime:        f.GroundTime,
							OvernightDuration: f.OvernightDuration,
							EqModel:           f.EqModel,
							EqNumber:          f.EqNumber,
							EqType:            f.EqType,
							Position:          f.Position,
							DelayCode:         f.DelayCode,
							DepPerformance:    f.DepPerformance,
							ArrPerformance:    f.ArrPerformance,
							LogbookUUID:       lbID,
							YearUUID:          yID,
							MonthUUID:         mID,
							TripUUID:          tID,
							DutyPeriodUUID:    dID,
							FlightUUID:        uuid.NewSHA1(namespace, []byte(fPath)),
						})
					}
				}
			}
		}
	}

	return res
}
