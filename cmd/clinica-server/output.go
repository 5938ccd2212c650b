package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/clinica/clinica/internal/domain/eligibility"
	"github.com/clinica/clinica/internal/platform/db"
)

func printEligibilityReport(w io.Writer, rep *eligibility.Report) error {
	fmt.Fprintf(w, "Generated at: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Available doctors: %d\n", rep.AvailableDoctors)
	fmt.Fprintf(w, "Eligible: %d of %d\n\n", rep.EligibleCount, rep.Total)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATIENT\tNAME\tELIGIBLE\tREASONS")
	for _, r := range rep.Results {
		eligible := "no"
		if r.Eligible {
			eligible = "yes"
		}
		reasons := strings.Join(r.Reasons, "; ")
		if reasons == "" {
			reasons = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.PatientID, r.PatientName, eligible, reasons)
	}
	return tw.Flush()
}

func printMigrationStatus(w io.Writer, schema string, statuses []db.MigrationStatus) {
	fmt.Fprintf(w, "Migration status for schema: %s\n", schema)
	fmt.Fprintf(w, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	fmt.Fprintln(w, "---------- ---------------------------------------- ---------- --------------------")
	for _, s := range statuses {
		status := "pending"
		appliedAt := ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(w, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
}
