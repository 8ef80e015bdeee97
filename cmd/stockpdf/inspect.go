package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/go-stock-pdf/internal/pdfread"
)

func newInspectCmd() *cobra.Command {
	var (
		pageRange string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Show page sizes and the text drawn on each page",
		Example: `  stockpdf inspect stock.pdf
  stockpdf inspect -p 2-3 -f json stock.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pdfread.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			pages, err := doc.Pages()
			if err != nil {
				return fmt.Errorf("reading pages: %w", err)
			}
			indices, err := parsePageRange(pageRange, len(pages))
			if err != nil {
				return fmt.Errorf("invalid page range %q: %w", pageRange, err)
			}

			contents := make([]*pdfread.Content, 0, len(indices))
			for _, i := range indices {
				c, err := doc.Walk(pages[i])
				if err != nil {
					return err
				}
				contents = append(contents, c)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(out, doc, len(pages), contents)
			case "text", "":
				writeText(out, args[0], doc, len(pages), contents)
				return nil
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&pageRange, "pages", "p", "", `Page range, e.g. "1", "1-5", "1,3,5" (default: all)`)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	return cmd
}

func writeText(w io.Writer, name string, doc *pdfread.Document, total int, contents []*pdfread.Content) {
	fmt.Fprintf(w, "File:    %s\n", name)
	fmt.Fprintf(w, "Version: PDF-%s\n", doc.Version())
	if title := doc.Info()["Title"]; title != "" {
		fmt.Fprintf(w, "Title:   %s\n", title)
	}
	fmt.Fprintf(w, "Pages:   %d\n", total)
	for _, c := range contents {
		fmt.Fprintf(w, "\n--- page %d (%.2f x %.2f pt, %d fills) ---\n", c.Page, c.Width, c.Height, len(c.Fills))
		if text := c.Text(); text != "" {
			fmt.Fprintln(w, text)
		}
	}
}

func writeJSON(w io.Writer, doc *pdfread.Document, total int, contents []*pdfread.Content) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Version string             `json:"version"`
		Info    map[string]string  `json:"info,omitempty"`
		Pages   int                `json:"pages"`
		Content []*pdfread.Content `json:"content"`
	}{doc.Version(), doc.Info(), total, contents})
}

// parsePageRange converts a page range to sorted, unique 0-based page
// indices. Supported forms: "" (all), "3", "1-5" and lists such as "1,3-4".
func parsePageRange(spec string, total int) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		indices := make([]int, total)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	seen := map[int]bool{}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page number: %q", lo)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid page number: %q", hi)
			}
		}
		if start < 1 || end > total || start > end {
			return nil, fmt.Errorf("pages %d-%d out of bounds (1-%d)", start, end, total)
		}
		for p := start; p <= end; p++ {
			seen[p-1] = true
		}
	}

	indices := make([]int, 0, len(seen))
	for i := range seen {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices, nil
}
