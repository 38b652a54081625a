// Package format renders records and record lists into the fixed-key
// string fragments consumed by overlay text outputs.
package format

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"donordrive-tracker/internal/model"
	"donordrive-tracker/internal/rank"
)

// Placeholder strings written when a view has no data yet.
const (
	NoDonations    = "No Donations Yet"
	NoDonors       = "No Donors Yet"
	NoParticipants = "No participants."
)

// Money renders an amount with the currency symbol, thousands grouping,
// and exactly two decimal places, e.g. "$1,234.50".
func Money(symbol string, amount decimal.Decimal) string {
	return symbol + humanize.FormatFloat("#,###.##", amount.InexactFloat64())
}

// Single renders one record as "Name - $1,234.50". A record whose amount
// was missing from the source renders as the bare name.
func Single(e model.Entry, symbol string) string {
	amount, ok := e.EntryAmount()
	if !ok {
		return e.EntryName()
	}
	return e.EntryName() + " - " + Money(symbol, amount)
}

// List renders up to n records, one "Name - $amount" fragment each.
// Horizontal lists join with " | ", vertical lists with newlines. When
// withMessage is set, a record's message is appended as " - message",
// omitted entirely when empty.
func List[T model.Entry](entries []T, symbol string, n int, horizontal, withMessage bool) string {
	lines := make([]string, 0, n)
	for _, e := range rank.Window(entries, n) {
		line := Single(e, symbol)
		if withMessage && e.EntryMessage() != "" {
			line += " - " + e.EntryMessage()
		}
		lines = append(lines, line)
	}
	sep := "\n"
	if horizontal {
		sep = " | "
	}
	return strings.Join(lines, sep)
}

// views builds the six fixed keys for one amount-bearing record list.
// stem is "Donation" or "Donor"; prefix is "" or "Team_". top is the
// server's amount-ordered view; when empty the top entry is derived from
// entries instead.
func views[T model.Entry](entries, top []T, symbol string, n int, prefix, stem, placeholder string) map[string]string {
	keys := []string{
		prefix + "Last" + stem + "NameAmnt",
		prefix + "Top" + stem + "NameAmnt",
		prefix + "lastN" + stem + "NameAmts",
		prefix + "lastN" + stem + "NameAmtsMessage",
		prefix + "lastN" + stem + "NameAmtsHorizontal",
		prefix + "lastN" + stem + "NameAmtsMessageHorizontal",
	}
	out := make(map[string]string, len(keys))
	if len(entries) == 0 {
		for _, k := range keys {
			out[k] = placeholder
		}
		return out
	}
	recent, _ := rank.MostRecent(entries)
	out[keys[0]] = Single(recent, symbol)
	ranked := top
	if len(ranked) == 0 {
		ranked = entries
	}
	if t, ok := rank.Top(ranked); ok {
		out[keys[1]] = Single(t, symbol)
	} else {
		// Entries exist but none carried an amount.
		out[keys[1]] = placeholder
	}
	out[keys[2]] = List(entries, symbol, n, false, false)
	out[keys[3]] = List(entries, symbol, n, false, true)
	out[keys[4]] = List(entries, symbol, n, true, false)
	out[keys[5]] = List(entries, symbol, n, true, true)
	return out
}

// DonationViews builds the donation output mapping. prefix distinguishes
// participant ("") from team ("Team_") views.
func DonationViews(donations, top []model.Donation, symbol string, n int, prefix string) map[string]string {
	return views(donations, top, symbol, n, prefix, "Donation", NoDonations)
}

// DonorViews builds the donor output mapping.
func DonorViews(donors, top []model.Donor, symbol string, n int) map[string]string {
	return views(donors, top, symbol, n, "", "Donor", NoDonors)
}

// TeamParticipantViews builds the team participant output mapping from the
// top-5-by-amount view.
func TeamParticipantViews(top5 []model.TeamParticipant, symbol string) map[string]string {
	out := map[string]string{
		"Team_TopParticipantNameAmnt":     NoParticipants,
		"Team_Top5Participants":           NoParticipants,
		"Team_Top5ParticipantsHorizontal": NoParticipants,
	}
	if len(top5) == 0 {
		return out
	}
	top, _ := rank.MostRecent(top5)
	out["Team_TopParticipantNameAmnt"] = Single(top, symbol)
	out["Team_Top5Participants"] = List(top5, symbol, 5, false, false)
	out["Team_Top5ParticipantsHorizontal"] = List(top5, symbol, 5, true, false)
	return out
}

// ParticipantTotals builds the participant scalar output mapping.
func ParticipantTotals(info model.ParticipantInfo, average decimal.Decimal, symbol string) map[string]string {
	return map[string]string{
		"totalRaised":     Money(symbol, info.TotalRaised),
		"averageDonation": Money(symbol, average),
		"goal":            Money(symbol, info.Goal),
		"numDonations":    strconv.Itoa(info.NumDonations),
	}
}

// TeamTotals builds the team scalar output mapping.
func TeamTotals(info model.TeamInfo, symbol string) map[string]string {
	return map[string]string{
		"Team_goal":         Money(symbol, info.Goal),
		"Team_captain":      info.CaptainName,
		"Team_totalRaised":  Money(symbol, info.TotalRaised),
		"Team_numDonations": strconv.Itoa(info.NumDonations),
	}
}
