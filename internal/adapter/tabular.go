package adapter

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/penny-sync/models"
)

var (
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
	zipMagic = []byte("PK\x03\x04")

	candidateDelimiters = []rune{';', ',', '\t', '|'}
)

// ParseTabular decodes a downloaded export into records. JSON payloads (an
// array of objects, or an object holding one under "items" or "data") are
// decoded like API records. Anything else is read as delimited text with a
// header row. A zip archive is unpacked and its first file parsed.
func ParseTabular(p Payload) ([]models.Record, error) {
	data := p.Data
	if bytes.HasPrefix(data, zipMagic) {
		unpacked, err := firstZipEntry(data)
		if err != nil {
			return nil, err
		}
		data = unpacked
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if strings.Contains(p.ContentType, "json") || trimmed[0] == '[' || trimmed[0] == '{' {
		return parseJSONRecords(trimmed)
	}
	return parseDelimited(data)
}

func firstZipEntry(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open zip: %w", ErrUnexpectedPayload, err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %w", ErrUnexpectedPayload, f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%w: empty zip archive", ErrUnexpectedPayload)
}

func parseJSONRecords(data []byte) ([]models.Record, error) {
	items, err := jsonItems(data)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(items))
	for i, item := range items {
		rec, err := models.DecodeRecord(item)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", ErrUnexpectedPayload, i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func jsonItems(data []byte) ([]json.RawMessage, error) {
	if data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
	}
	for _, key := range []string{"items", "data"} {
		if raw, ok := envelope[key]; ok {
			raw = bytes.TrimSpace(raw)
			if len(raw) > 0 && raw[0] == '[' {
				return jsonItems(raw)
			}
		}
	}
	// a single object is a one-row export
	return []json.RawMessage{data}, nil
}

// parseDelimited reads delimited text. The header row is normalized into
// column names, duplicates get a numeric suffix and cells become typed
// values. Short rows are padded with nulls, extra cells are ignored.
func parseDelimited(data []byte) ([]models.Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrUnexpectedPayload, err)
	}
	columns := headerColumns(header)

	var records []models.Record
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrUnexpectedPayload, line, err)
		}

		fields := make([]models.Field, len(columns))
		for i, name := range columns {
			v := models.NullValue()
			if i < len(row) {
				v = models.ParseScalar(row[i])
			}
			fields[i] = models.Field{Name: name, Value: v}
		}
		records = append(records, models.NewRecord(fields...))
	}

	return records, nil
}

func headerColumns(header []string) []string {
	columns := make([]string, len(header))
	used := make(map[string]int, len(header))
	for i, h := range header {
		name := models.NormalizeColumnName(h)
		if n := used[name]; n > 0 {
			used[name] = n + 1
			name = name + "_" + strconv.Itoa(n+1)
		}
		used[name]++
		columns[i] = name
	}
	return columns
}

// sniffDelimiter picks the candidate occurring most often in the header
// line, ignoring quoted text. Comma wins when nothing matches.
func sniffDelimiter(data []byte) rune {
	line, _ := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')

	counts := make(map[rune]int, len(candidateDelimiters))
	inQuotes := false
	for _, c := range line {
		if c == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[c]++
		}
	}

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}
