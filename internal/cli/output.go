package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Zereker/vecns/internal/domain"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResults(w io.Writer, results []domain.NamespaceResult) error {
	if output == "json" {
		return writeJSON(w, results)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAMESPACE\tSTATUS\tERROR")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Index, r.Namespace, r.Status, r.Error)
	}
	return tw.Flush()
}

func printNamespaces(w io.Writer, namespaces []domain.Namespace) error {
	if output == "json" {
		if namespaces == nil {
			namespaces = []domain.Namespace{}
		}
		return writeJSON(w, namespaces)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAMESPACE\tVECTORS")
	for _, ns := range namespaces {
		fmt.Fprintf(tw, "%s\t%d\n", ns.Name, ns.VectorCount)
	}
	return tw.Flush()
}
