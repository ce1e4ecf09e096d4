package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/mini-park/internal/assets"
	"github.com/talgya/mini-park/internal/engine"
	"github.com/talgya/mini-park/internal/messages"
	"github.com/talgya/mini-park/internal/people"
	"github.com/talgya/mini-park/internal/persistence"
)

// formatMoney formats cents as dollars with thousands separators.
func formatMoney(cents int64) string {
	return "$" + humanize.FormatFloat("#,###.##", float64(cents)/100)
}

func formatBytes(n int64) string {
	return humanize.Bytes(uint64(max(n, 0)))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printStats(sim *engine.Simulation) {
	st := sim.Stats()
	fmt.Println()
	fmt.Printf("%s, %s\n", sim.Scenario.Name(), st.Date)
	fmt.Println("==============================")
	fmt.Printf("  Guests:          %s (%s in the park)\n", humanize.Comma(int64(st.Guests)), humanize.Comma(int64(st.GuestsInPark)))
	fmt.Printf("  Staff:           %d", st.Staff)
	for _, k := range people.StaffKinds {
		fmt.Printf("  %s %d", k, sim.Staff.Count(k))
	}
	fmt.Println()
	fmt.Printf("  Rides:           %d (%d broken down)\n", st.Rides, st.BrokenRides)
	fmt.Printf("  Mechanic queue:  %d\n", st.Requests)
	fmt.Printf("  Cash:            %s\n", formatMoney(st.Cash))
	fmt.Printf("  Wages paid:      %s\n", formatMoney(sim.Finances.TotalWages()))
	fmt.Println()
}

func printRides(sim *engine.Simulation) {
	fmt.Println("Rides")
	fmt.Println("-----")
	for _, r := range sim.Rides.Rides() {
		fmt.Printf("  #%-3d %-20s %-12s last inspected %s ago\n",
			r.Index(), r.Name, r.State(), humanize.Comma(int64(r.DaysSinceInspection()))+" days")
	}
	fmt.Println()
}

func printComplaints(sim *engine.Simulation) {
	c := sim.Guests.Complaints()
	fmt.Println("Complaints")
	fmt.Println("----------")
	for _, k := range []people.Complaint{
		people.ComplaintHunger,
		people.ComplaintThirst,
		people.ComplaintWaste,
		people.ComplaintLitter,
		people.ComplaintVandalism,
	} {
		since := time.Duration(c.TimeSince(k)) * time.Millisecond
		fmt.Printf("  %-10s %4d of %d, last reported %s ago\n", k, c.Counter(k), people.ComplaintThreshold[k], since)
	}
	fmt.Println()
}

func printInbox(sim *engine.Simulation) {
	msgs := sim.Inbox.Messages()
	fmt.Printf("Inbox (%d)\n", len(msgs))
	fmt.Println("---------")
	start := max(len(msgs)-10, 0)
	for _, m := range msgs[start:] {
		fmt.Printf("  %s  %s\n", formatDate(m.Date), m.Kind)
	}
	fmt.Println()
}

func formatDate(d messages.Date) string {
	return fmt.Sprintf("%02d/%02d/%d", d.Day, d.Month, d.Year)
}

func printSaves(saves []persistence.SaveRow) {
	if len(saves) == 0 {
		fmt.Println("No saves recorded.")
		return
	}
	for _, s := range saves {
		created := time.Unix(0, s.CreatedAt)
		fmt.Printf("%s  %-24s %-16s %-18s guests %-6s %s  %s (%s)\n",
			s.ID[:8], s.Path, s.Scenario, s.Date, humanize.Comma(int64(s.Guests)),
			formatMoney(s.Cash), formatBytes(s.Bytes), humanize.Time(created))
	}
}

func printCatalog(cat *assets.Catalog) {
	for _, a := range cat.Assets {
		fmt.Printf("%s  %s, %d blocks\n", a.Path, formatBytes(a.Size), len(a.Blocks))
		for _, b := range a.Blocks {
			fmt.Printf("    %s v%d  %s\n", b.Name, b.Version, formatBytes(int64(b.Length)))
		}
	}
	for _, s := range cat.Skipped {
		fmt.Printf("%s  skipped: %s\n", s.Path, s.Reason)
	}
	fmt.Printf("\n%d RCD files, %d skipped.\n", len(cat.Assets), len(cat.Skipped))
}
