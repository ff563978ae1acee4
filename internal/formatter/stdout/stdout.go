package stdout

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bblfsh/uastclient/codec"
	"github.com/bblfsh/uastclient/internal/formatter"
	"github.com/bblfsh/uastclient/internal/results"
	"github.com/bblfsh/uastclient/value"
)

const (
	itemRule    = "=================================="
	summaryRule = "--------------------------------------------------------------------------------"
)

// Formatter prints results as numbered blocks, each item encoded with the
// configured codec.
type Formatter struct {
	writer io.Writer
	format codec.Format
	array  bool
}

// New creates a formatter writing to stdout. With array set, all items of a
// file are printed as one encoded sequence.
func New(format codec.Format, array bool) formatter.Formatter {
	return NewWithWriter(os.Stdout, format, array)
}

func NewWithWriter(writer io.Writer, format codec.Format, array bool) formatter.Formatter {
	return &Formatter{
		writer: writer,
		format: format,
		array:  array,
	}
}

func (f *Formatter) Format(s *results.Summary) error {
	if s == nil {
		return nil
	}
	multi := len(s.FileResults) > 1

	for _, fr := range s.FileResults {
		if multi {
			if _, err := fmt.Fprintf(f.writer, "# %s\n", fr.Filename); err != nil {
				return err
			}
		}
		if err := f.formatFile(fr); err != nil {
			return err
		}
	}

	if !multi {
		return nil
	}
	return f.formatSummary(s)
}

func (f *Formatter) formatFile(fr results.FileResult) error {
	if fr.Error != nil {
		_, err := fmt.Fprintf(f.writer, "%s: Failed: %v\n", fr.Filename, fr.Error)
		return err
	}

	if f.array {
		return f.writeValue(value.Sequence(fr.Items))
	}

	if len(fr.Items) == 0 {
		_, err := fmt.Fprintln(f.writer, "Nothing found")
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "%d Results:\n", len(fr.Items)); err != nil {
		return err
	}
	for i, item := range fr.Items {
		if _, err := fmt.Fprintf(f.writer, "== %d %s\n", i+1, itemRule); err != nil {
			return err
		}
		if err := f.writeValue(item); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeValue(v value.Value) error {
	if v == nil {
		v = value.Null{}
	}
	out, err := codec.Encode(v, f.format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.writer, string(bytes.TrimRight(out, "\n")))
	return err
}

func (f *Formatter) formatSummary(s *results.Summary) error {
	if _, err := fmt.Fprintln(f.writer, summaryRule); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Processed files: %d\n", s.ProcessedFiles); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Results:         %d\n", s.TotalItems); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Failed files:    %d\n", s.FailedFiles); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Duration:        %d ms\n", s.TotalDuration.Milliseconds()); err != nil {
		return err
	}
	return nil
}
