// Package fs writes ranking reports to the local filesystem.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ethanol1310/hotnews"
)

// FormatReport formats a run as markdown with YAML frontmatter.
func FormatReport(run *hotnews.Run) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(string(run.Source))
	b.WriteString("\nfrom: ")
	b.WriteString(run.Start)
	b.WriteString("\nto: ")
	b.WriteString(run.End)
	b.WriteString("\ntotal: ")
	b.WriteString(strconv.Itoa(run.Total))
	if run.ID != "" {
		b.WriteString("\nrun: ")
		b.WriteString(run.ID)
	}
	if !run.CreatedAt.IsZero() {
		b.WriteString("\ncrawled: ")
		b.WriteString(run.CreatedAt.Format(time.DateOnly))
	}
	b.WriteString("\n---\n\n")

	fmt.Fprintf(&b, "# %s %s..%s\n\n", run.Source, run.Start, run.End)
	for i, a := range run.Articles {
		title := a.Title
		if title == "" {
			title = a.URL
		}
		fmt.Fprintf(&b, "%d. [%s](%s) - %d likes\n", i+1, title, a.URL, a.TotalLikes)
	}
	return b.String()
}

// WriteReport writes run to path, as JSON when path ends in ".json" and as
// markdown otherwise. Missing parent directories are created. The file is
// written to a temporary sibling and renamed into place, so readers never
// observe a partial report.
func WriteReport(path string, run *hotnews.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	var data []byte
	if strings.EqualFold(filepath.Ext(path), ".json") {
		b, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		data = append(b, '\n')
	} else {
		data = []byte(FormatReport(run))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
