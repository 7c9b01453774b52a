// Package report renders the summary printed after a run.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/maauso/chapterize/internal/workflow"
)

var headers = table.Row{"Chapter", "Files", "Cuts", "Segments"}

// Write prints the outcome's status line followed by a summary of the
// chapters written. A rounded table is drawn when w is a terminal, plain
// tab-separated lines otherwise.
func Write(w io.Writer, out *workflow.Outcome) error {
	if out == nil {
		return nil
	}

	var b strings.Builder
	b.WriteString(out.Message)
	b.WriteByte('\n')

	if len(out.Chapters) > 0 {
		if IsTerminal(w) {
			b.WriteString(Table(out))
			b.WriteByte('\n')
		} else {
			b.WriteString(Plain(out))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Table renders the chapters as a go-pretty table.
func Table(out *workflow.Outcome) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(headers)

	segments := 0
	for _, ch := range out.Chapters {
		tw.AppendRow(table.Row{ch.Dir, len(ch.Members), len(ch.SplitPoints), len(ch.Segments)})
		segments += len(ch.Segments)
	}
	tw.AppendFooter(table.Row{"total", "", "", segments})

	if out.Inputs.Total > 0 || out.Inputs.Failed > 0 {
		tw.SetCaption("%s of input audio in %d files (%d unreadable)",
			formatDuration(out.Inputs.Total), len(out.Inputs.Files), out.Inputs.Failed)
	}
	if out.ToolFailures > 0 {
		tw.AppendFooter(table.Row{"ffmpeg failures", "", "", out.ToolFailures})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// Plain renders one tab-separated line per chapter.
func Plain(out *workflow.Outcome) string {
	var b strings.Builder
	for _, ch := range out.Chapters {
		fmt.Fprintf(&b, "%s\tfiles=%d\tcuts=%d\tsegments=%d\n",
			ch.Dir, len(ch.Members), len(ch.SplitPoints), len(ch.Segments))
	}
	if out.Inputs.Total > 0 || out.Inputs.Failed > 0 {
		fmt.Fprintf(&b, "input\tduration=%s\tfiles=%d\tunreadable=%d\n",
			formatDuration(out.Inputs.Total), len(out.Inputs.Files), out.Inputs.Failed)
	}
	if out.ToolFailures > 0 {
		b.WriteString("ffmpeg failures\t" + strconv.Itoa(out.ToolFailures) + "\n")
	}
	return b.String()
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// formatDuration prints d as h:mm:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
