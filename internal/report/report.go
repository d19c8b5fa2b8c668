package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/lqcheck/pkg/lqcheck"
)

// Text writes one block per violation followed by a summary line.
func Text(w io.Writer, r lqcheck.Report, styled bool) error {
	p := painter(styled)
	var b strings.Builder

	for _, v := range r.Violations {
		fmt.Fprintf(&b, "%s %s %s\n", p.paint(kindStyle, symbolCross), p.paint(kindStyle, string(v.Kind)), p.paint(fileStyle, v.File))
		fmt.Fprintf(&b, "    %s\n", p.paint(messageStyle, v.Message))
	}

	summary := fmt.Sprintf("Scanned %d file(s), checked %d changelog(s)", r.FilesScanned(), r.ChangelogsChecked())
	if r.HasViolations() {
		fmt.Fprintf(&b, "%s\n", p.paint(failureStyle, fmt.Sprintf("%s %s: %d violation(s)", symbolCross, summary, len(r.Violations))))
	} else {
		fmt.Fprintf(&b, "%s\n", p.paint(successStyle, fmt.Sprintf("%s %s: no violations", symbolCheck, summary)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

type jsonReport struct {
	FilesScanned      int             `json:"files_scanned"`
	ChangelogsChecked int             `json:"changelogs_checked"`
	ViolationsFound   int             `json:"violations_found"`
	Folders           []jsonFolder    `json:"folders"`
	Violations        []jsonViolation `json:"violations"`
}

type jsonFolder struct {
	Directory         string `json:"directory"`
	Skipped           bool   `json:"skipped"`
	FilesScanned      int    `json:"files_scanned"`
	ChangelogsChecked int    `json:"changelogs_checked"`
	Violations        int    `json:"violations"`
}

type jsonViolation struct {
	Fingerprint string `json:"fingerprint"`
	Kind        string `json:"kind"`
	File        string `json:"file"`
	Message     string `json:"message"`
	Found       string `json:"found,omitempty"`
	Expected    string `json:"expected,omitempty"`
	Author      string `json:"author,omitempty"`
	ID          string `json:"id,omitempty"`
}

// JSON writes the report as indented JSON. Empty lists are written as [].
func JSON(w io.Writer, r lqcheck.Report) error {
	out := jsonReport{
		FilesScanned:      r.FilesScanned(),
		ChangelogsChecked: r.ChangelogsChecked(),
		ViolationsFound:   len(r.Violations),
		Folders:           make([]jsonFolder, 0, len(r.Folders)),
		Violations:        make([]jsonViolation, 0, len(r.Violations)),
	}
	for _, f := range r.Folders {
		out.Folders = append(out.Folders, jsonFolder(f))
	}
	for _, v := range r.Violations {
		out.Violations = append(out.Violations, jsonViolation{
			Fingerprint: v.Fingerprint().String(),
			Kind:        string(v.Kind),
			File:        v.File,
			Message:     v.Message,
			Found:       v.Found,
			Expected:    v.Expected,
			Author:      v.Author,
			ID:          v.ID,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
