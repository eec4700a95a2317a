// Package export serializes transcripts into downloadable artifacts. Nothing
// here mutates session state.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tealeg/xlsx"

	apperrors "batch-whisper/internal/app/errors"
	"batch-whisper/internal/app/model"
)

const (
	// AllName is the base name of the combined artifact.
	AllName = "all_transcriptions"
	// OneSuffix is appended to the stem of a single file's artifact.
	OneSuffix = "_transcription"
)

// Format is an export file type.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{FormatTXT, FormatCSV, FormatJSON, FormatXLSX}

var contentTypes = map[Format]string{
	FormatTXT:  "text/plain; charset=utf-8",
	FormatCSV:  "text/csv; charset=utf-8",
	FormatJSON: "application/json",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ParseFormat accepts a format name, case-insensitively. Empty means txt.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatTXT, nil
	}
	if _, ok := contentTypes[f]; !ok {
		return "", apperrors.Wrapf(apperrors.ErrUnsupportedFormat, "%q", s)
	}
	return f, nil
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	return contentTypes[f]
}

// Artifact is a named, typed blob ready to download or store.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

var extension = regexp.MustCompile(`\.[^/.]+$`)

// Stem strips the last extension from a file name.
func Stem(fileName string) string {
	return extension.ReplaceAllString(fileName, "")
}

// ExportOne produces <stem>_transcription.txt for one transcript.
func ExportOne(fileName, transcription string) Artifact {
	return Artifact{
		Name:        Stem(fileName) + OneSuffix + ".txt",
		ContentType: FormatTXT.ContentType(),
		Data:        []byte(transcription),
	}
}

// ExportAll concatenates every result as a labeled section, in order.
func ExportAll(results []model.ResultEntry) Artifact {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "=== %s ===\n%s\n\n", r.FileName, r.Transcription)
	}
	return Artifact{
		Name:        AllName + ".txt",
		ContentType: FormatTXT.ContentType(),
		Data:        []byte(b.String()),
	}
}

// ExportAllAs renders every result in the given format.
func ExportAllAs(results []model.ResultEntry, format Format) (Artifact, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatTXT, "":
		return ExportAll(results), nil
	case FormatCSV:
		data, err = toCSV(results)
	case FormatJSON:
		data, err = toJSON(results)
	case FormatXLSX:
		data, err = toExcel(results)
	default:
		return Artifact{}, apperrors.Wrapf(apperrors.ErrUnsupportedFormat, "%q", format)
	}
	if err != nil {
		return Artifact{}, apperrors.Wrapf(err, "failed to export %s", format)
	}
	return Artifact{
		Name:        AllName + "." + string(format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

func toCSV(results []model.ResultEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "file_name", "timestamp", "transcription"}); err != nil {
		return nil, err
	}
	for _, r := range results {
		if err := w.Write([]string{r.ID, r.FileName, r.Timestamp.Format(time.RFC3339), r.Transcription}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func toJSON(results []model.ResultEntry) ([]byte, error) {
	if results == nil {
		results = []model.ResultEntry{}
	}
	return json.MarshalIndent(results, "", "  ")
}

func toExcel(results []model.ResultEntry) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "File Name"
	headerRow.AddCell().Value = "Completed At"
	headerRow.AddCell().Value = "Transcription"

	for _, r := range results {
		row := sheet.AddRow()
		row.AddCell().Value = r.ID
		row.AddCell().Value = r.FileName
		row.AddCell().Value = r.Timestamp.Format(time.RFC3339)
		row.AddCell().Value = r.Transcription
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
