package main

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/services"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	bestColor   = color.New(color.FgGreen, color.Bold)
	warnColor   = color.New(color.FgYellow)
	badColor    = color.New(color.FgRed)
	dimColor    = color.New(color.Faint)
)

// yen formats an amount rounded to whole units with thousands separators.
func yen(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func optionalYen(v *float64) string {
	if v == nil {
		return "-"
	}
	return yen(*v)
}

func renderComparison(w io.Writer, cmp services.Comparison, showLegs bool) {
	headerColor.Fprintf(w, "Ranking by %s\n\n", cmp.RankBy)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCANDIDATE\tFIXED\tCOMMUTE\tONE-TIME/MO\tTIME VALUE\tCASH\tCASH+TIME\tMIN/TRIP")

	for _, rc := range cmp.Ranked {
		b := rc.Breakdown

		minutes := "-"
		if b.Commute != nil {
			minutes = strconv.FormatFloat(b.Commute.Minutes, 'f', 1, 64)
		}

		rank := strconv.Itoa(rc.Rank)
		if rc.Rank == 1 {
			rank = bestColor.Sprint(rank)
		} else {
			rank = dimColor.Sprint(rank)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rank,
			b.Candidate.DisplayName(),
			yen(b.FixedMonthly),
			yen(b.CommuteMonthly),
			yen(b.AmortizedOneTime),
			optionalYen(b.TimeValueMonthly),
			yen(b.CashTotal),
			optionalYen(b.CashTimeTotal),
			minutes,
		)
	}
	tw.Flush()

	for _, rc := range cmp.Ranked {
		b := rc.Breakdown
		if b.NoCommuteData {
			warnColor.Fprintf(w, "! %s: no usable commute data, commute cost counted as 0\n", b.Candidate.DisplayName())
		}
		for _, msg := range b.Warnings {
			warnColor.Fprintf(w, "! %s: %s\n", b.Candidate.DisplayName(), msg)
		}
	}

	if showLegs {
		for _, rc := range cmp.Ranked {
			renderLegs(w, rc.Breakdown)
		}
	}

	if len(cmp.Failures) > 0 {
		fmt.Fprintln(w)
		badColor.Fprintln(w, "Not ranked:")
		for _, f := range cmp.Failures {
			badColor.Fprintf(w, "  %s [%s] %s\n", f.Candidate.DisplayName(), f.Code, f.Error)
		}
	}
}

func renderLegs(w io.Writer, b domain.CostBreakdown) {
	fmt.Fprintln(w)
	headerColor.Fprintf(w, "%s\n", b.Candidate.DisplayName())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  DESTINATION\tMIN\tFARE\tTRIPS/MO\tMONTHLY\tPRICING\tROUTE")
	for _, l := range b.Legs {
		if !l.Usable {
			if l.ErrorCode == "" {
				fmt.Fprintf(tw, "  %s\t-\t-\t%.1f\t-\t-\tnot visited\n", l.Destination.Label, l.MonthlyTrips)
				continue
			}
			fmt.Fprintf(tw, "  %s\t-\t-\t%.1f\t-\t-\t%s\n", l.Destination.Label, l.MonthlyTrips, l.ErrorCode)
			continue
		}
		fmt.Fprintf(tw, "  %s\t%d\t%s\t%.1f\t%s\t%s\t%s\n",
			l.Destination.Label,
			l.Route.DurationMinutes,
			optionalYen(l.Route.Fare),
			l.MonthlyTrips,
			yen(l.Cost.Monthly),
			l.Cost.Choice,
			l.Route.Summary,
		)
	}
	tw.Flush()
}

func renderRoute(w io.Writer, origin, destination domain.Place, res domain.RouteResult) {
	headerColor.Fprintf(w, "%s -> %s\n", origin.Label(), destination.Label())

	switch res.Status {
	case domain.RouteOK:
		bestColor.Fprintf(w, "%d min", res.DurationMinutes)
		fmt.Fprintf(w, "  fare %s  tier %s\n", optionalYen(res.Fare), res.Tier)
		if res.Summary != "" {
			fmt.Fprintf(w, "%s\n", res.Summary)
		}
	case domain.RouteNoRoute:
		warnColor.Fprintf(w, "no route on any tier: %s\n", res.Message)
	default:
		badColor.Fprintf(w, "provider error at tier %s: %s\n", res.Tier, res.Message)
	}

	dimColor.Fprintln(w, domain.TransitDirectionsURL(origin.Label(), destination.Label()))
}
