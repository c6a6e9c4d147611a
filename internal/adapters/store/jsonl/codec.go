package jsonl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/claude-remote-collector/internal/domain"
)

var errNotAnObject = errors.New("record is not a JSON object")

type record struct {
	Timestamp string `json:"timestamp"`
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
	Cwd       string `json:"cwd"`
	Source    string `json:"source"`
}

func toRecord(entry domain.SessionEntry) record {
	return record{
		Timestamp: entry.Timestamp,
		SessionID: entry.SessionID,
		URL:       entry.URL,
		Cwd:       entry.Cwd,
		Source:    entry.Source,
	}
}

func fromRecord(r record) domain.SessionEntry {
	return domain.SessionEntry{
		Timestamp: r.Timestamp,
		SessionID: r.SessionID,
		URL:       r.URL,
		Cwd:       r.Cwd,
		Source:    r.Source,
	}
}

// encodeRecord returns the structured form of entry, newline terminated.
func encodeRecord(entry domain.SessionEntry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toRecord(entry)); err != nil {
		return nil, fmt.Errorf("encode session record: %w", err)
	}

	return buf.Bytes(), nil
}

func decodeRecord(line []byte) (domain.SessionEntry, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.SessionEntry{}, errNotAnObject
	}

	var r record
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return domain.SessionEntry{}, fmt.Errorf("decode session record: %w", err)
	}

	return fromRecord(r), nil
}

func encodeText(entry domain.SessionEntry) string {
	return entry.Timestamp + " " + entry.URL
}

// decodeText parses a "<timestamp> <url>" line. Blank and malformed lines
// yield no entry.
func decodeText(line string) (domain.SessionEntry, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return domain.SessionEntry{}, false
	}

	timestamp, url, ok := strings.Cut(trimmed, " ")
	if !ok {
		return domain.SessionEntry{}, false
	}

	return domain.SessionEntry{
		Timestamp: timestamp,
		SessionID: domain.ExtractSessionID(url),
		URL:       url,
	}, true
}

// decodeRecords scans a whole structured log, skipping blank and corrupt lines.
func decodeRecords(data []byte) []domain.SessionEntry {
	lines := bytes.Split(data, []byte("\n"))
	entries := make([]domain.SessionEntry, 0, len(lines))
	for _, line := range lines {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		entry, err := decodeRecord(line)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}

func encodeAll(entries []domain.SessionEntry) (records []byte, text []byte, err error) {
	var recordBuf, textBuf bytes.Buffer
	for _, entry := range entries {
		encoded, err := encodeRecord(entry)
		if err != nil {
			return nil, nil, err
		}
		recordBuf.Write(encoded)
		textBuf.WriteString(encodeText(entry))
		textBuf.WriteByte('\n')
	}

	return recordBuf.Bytes(), textBuf.Bytes(), nil
}

// FormatText renders entry the way the text log stores it, without a newline.
func FormatText(entry domain.SessionEntry) string {
	return encodeText(entry)
}

// FormatRecord renders entry the way the structured log stores it, without a
// newline.
func FormatRecord(entry domain.SessionEntry) (string, error) {
	encoded, err := encodeRecord(entry)
	if err != nil {
		return "", err
	}

	return strings.TrimSuffix(string(encoded), "\n"), nil
}
