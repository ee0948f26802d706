// Package report renders a human-readable summary of a Resolver run,
// mirroring the console/table dashboards in the stats package: one summary
// table plus a per-build breakdown, in addition to whatever external
// serializer persists the output map to JSON.
package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/assemble"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/jfrog/jfrog-cli-core/v2/utils/coreutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// SummaryRow is a two-column metric/value row, the same shape stats'
// GenericResultsWriter renders its dashboards with.
type SummaryRow struct {
	Metric string `col-name:"Metric"`
	Value  string `col-name:"Value"`
}

// BuildRow is one line in the per-build breakdown table.
type BuildRow struct {
	System   string `col-name:"System"`
	ID       string `col-name:"Build ID"`
	Name     string `col-name:"Name"`
	Version  string `col-name:"Version"`
	Archives string `col-name:"Archives"`
}

// PrintSummary renders the run-level counters as a borderless table
// followed by the per-build breakdown, in the style of
// stats.PrintArtifactoryDashboard.
func PrintSummary(result *assemble.Result) error {
	found := len(result.FoundChecksums())
	notFound := len(result.NotFoundChecksums())
	summary := []SummaryRow{
		{Metric: text.FgHiBlue.Sprint("Builds Resolved"), Value: text.FgGreen.Sprint(len(result.FoundBuilds()))},
		{Metric: text.FgHiBlue.Sprint("Checksums Found"), Value: text.FgGreen.Sprint(found)},
		{Metric: text.FgHiBlue.Sprint("Checksums Not Found"), Value: text.FgYellow.Sprint(notFound)},
	}
	if err := coreutils.PrintTableWithBorderless(summary, text.FgCyan.Sprint("Build Resolution Summary"), "", "No data found", false); err != nil {
		log.Error("Failed to print build resolution summary table:", err)
		return err
	}
	log.Output()

	rows := buildRows(result.FoundBuilds())
	if len(rows) == 0 {
		log.Output("No builds resolved")
		return nil
	}
	if err := coreutils.PrintTableWithBorderless(rows, text.FgCyan.Sprint("Resolved Builds"), "", "No builds resolved", false); err != nil {
		log.Error("Failed to print resolved builds table:", err)
		return err
	}
	log.Output()
	return nil
}

func buildRows(builds []*model.Build) []BuildRow {
	rows := make([]BuildRow, 0, len(builds))
	for _, b := range builds {
		rows = append(rows, BuildRow{
			System:   string(b.Key.System),
			ID:       fmt.Sprint(b.Key.ID),
			Name:     b.Info.Name,
			Version:  b.Info.Version,
			Archives: fmt.Sprint(len(b.Archives)),
		})
	}
	return rows
}
