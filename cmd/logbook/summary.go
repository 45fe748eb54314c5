package main

import (
	"fmt"
	"io"

	"kastelo.dev/logbook"
)

func summaryReport(w io.Writer, lb *logbook.Logbook) {
	tot := logbook.MonthlyTotals(lb)

	fmt.Fprintf(w, "LOGBOOK %s\n\n", lb.AANumber)
	header(w)
	dashes(w)
	for _, month := range tot.Months {
		fmtMonth(w, month, tot.Legs[month],
			tot.ActualBlock.Months[month], tot.Fly.Months[month], tot.LegGreater.Months[month])
	}
	dashes(w)

	legs := 0
	for _, n := range tot.Legs {
		legs += n
	}
	fmtMonth(w, "Total", legs, tot.ActualBlock.Total, tot.Fly.Total, tot.LegGreater.Total)

	// The report carries its own totals; point out when they disagree with
	// the flights it lists.
	if lb.Sum.ActualBlock != 0 && lb.Sum.ActualBlock != tot.ActualBlock.Total {
		fmt.Fprintf(w, "\nReported block time %s differs from sum of flights %s\n", lb.Sum.ActualBlock, tot.ActualBlock.Total)
	}
}

func header(w io.Writer) {
	fmt.Fprintf(w, "  %-10s %6s %10s %10s %10s\n", "Month", "Legs", "Block", "Fly", "Leg >")
}

func dashes(w io.Writer) {
	fmt.Fprintf(w, "  %-10s %6s %10s %10s %10s\n", "----------", "------", "---------", "---------", "---------")
}

func fmtMonth(w io.Writer, month string, legs int, block, fly, legGreater logbook.Duration) {
	fmt.Fprintf(w, "  %-10s %6d %10s %10s %10s\n", month, legs, block, fly, legGreater)
}
