// Package results collects what uastq found in each input file.
package results

import (
	"time"

	"github.com/bblfsh/uastclient/value"
)

type FileResult struct {
	Filename string
	Items    []value.Value
	Duration time.Duration
	Error    error
}

type FileResultBuilder struct {
	filename string
	items    []value.Value
	duration time.Duration
	err      error
}

func NewFileResultBuilder(filename string) *FileResultBuilder {
	return &FileResultBuilder{
		filename: filename,
	}
}

func (b *FileResultBuilder) AddItem(v value.Value) *FileResultBuilder {
	b.items = append(b.items, v)
	return b
}

func (b *FileResultBuilder) ItemCount() int {
	return len(b.items)
}

func (b *FileResultBuilder) WithDuration(duration time.Duration) *FileResultBuilder {
	b.duration = duration
	return b
}

func (b *FileResultBuilder) WithError(err error) *FileResultBuilder {
	b.err = err
	return b
}

func (b *FileResultBuilder) Build() FileResult {
	return FileResult{
		Filename: b.filename,
		Items:    b.items,
		Duration: b.duration,
		Error:    b.err,
	}
}

type Summary struct {
	FileResults    []FileResult
	ProcessedFiles int
	TotalItems     int
	FailedFiles    int
	TotalDuration  time.Duration
}

func NewSummary(expectedFiles int) *Summary {
	return &Summary{
		FileResults: make([]FileResult, 0, expectedFiles),
	}
}

func (s *Summary) Add(builder *FileResultBuilder) {
	result := builder.Build()

	s.FileResults = append(s.FileResults, result)
	s.ProcessedFiles++
	s.TotalItems += len(result.Items)

	if result.Error != nil {
		s.FailedFiles++
	}
}

func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

// Failed reports whether any file could not be processed.
func (s *Summary) Failed() bool {
	return s.FailedFiles > 0
}
