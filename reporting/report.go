package reporting

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/adi180397/Robot-Routing/analysis"
	"github.com/adi180397/Robot-Routing/itinerary"
	"github.com/adi180397/Robot-Routing/overlap"
	"github.com/adi180397/Robot-Routing/roadnet"
)

// Record is one presentation row of a result set.
type Record struct {
	RobotID            string  `json:"robot_id"`
	Orientation        string  `json:"orientation"`
	OverlapPath        string  `json:"overlapping_path"`
	NonOverlapPath     string  `json:"non_overlapping_path"`
	OverlapDistance    float64 `json:"overlapping_distance"`
	NonOverlapDistance float64 `json:"non_overlapping_distance"`
}

// ReportSet groups the three record sets of one run.
type ReportSet struct {
	Forward []Record
	Reverse []Record
	Final   []Record
}

// BuildRecords projects robot reports into the forward, reverse and final
// record sets, preserving input order.
func BuildRecords(reports []analysis.RobotReport) ReportSet {
	set := ReportSet{
		Forward: make([]Record, 0, len(reports)),
		Reverse: make([]Record, 0, len(reports)),
		Final:   make([]Record, 0, len(reports)),
	}

	for _, report := range reports {
		set.Forward = append(set.Forward, newRecord(report.Forward))
		set.Reverse = append(set.Reverse, newRecord(report.Reverse))
		set.Final = append(set.Final, newRecord(report.Final))
	}

	return set
}

func newRecord(result overlap.Result) Record {
	return Record{
		RobotID:            result.RobotID,
		Orientation:        string(result.Orientation),
		OverlapPath:        formatPath(result.OverlapPath),
		NonOverlapPath:     formatHops(result.NonOverlapHops),
		OverlapDistance:    result.OverlapDistance,
		NonOverlapDistance: result.NonOverlapDistance,
	}
}

func formatPath(nodes []roadnet.NodeID) string {
	if len(nodes) == 0 {
		return "-"
	}

	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = fmt.Sprintf("%d", node)
	}

	return strings.Join(parts, " -> ")
}

func formatHops(hops []itinerary.Hop) string {
	if len(hops) == 0 {
		return "-"
	}

	parts := make([]string, len(hops))
	for i, hop := range hops {
		parts[i] = fmt.Sprintf("%d->%d", hop.From, hop.To)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// RenderTable prints one record set as a fixed-width table.
func RenderTable(w io.Writer, title string, records []Record) {
	fmt.Fprintf(w, "\n===== %s =====\n", title)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROBOT\tORIENTATION\tOVERLAPPING PATH\tNON-OVERLAPPING HOPS\tOVERLAP DIST\tNON-OVERLAP DIST")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.2f\n",
			r.RobotID, r.Orientation, r.OverlapPath, r.NonOverlapPath,
			r.OverlapDistance, r.NonOverlapDistance)
	}
	tw.Flush()
}
