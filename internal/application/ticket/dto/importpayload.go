package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/errors"
)

// ImportRecord is one incoming record normalized to the canonical ticket
// shape. Version carries whatever freshness information the record had;
// a record with Version.HasValue() == false can insert but never overwrite.
type ImportRecord struct {
	ID         uint
	Date       string
	Issue      string
	Department string
	Name       string
	Solution   string
	Remarks    string
	Type       string
	Version    ticket.Version
	IsDeleted  bool
	DeletedAt  *int64
}

// ImportPayload is a decoded import request. DryRun reflects a dry_run key
// carried inside a wrapper object; the query parameter may still override it.
type ImportPayload struct {
	Records []ImportRecord
	DryRun  bool
}

// Wrapper keys whose value is a record collection. Exports from older
// builds and third-party tools wrap the records under different names;
// "trash" additionally marks its records as deleted.
var activeCollectionKeys = []string{"active", "data", "tickets", "records", "items"}

// DecodeImportPayload parses an import request body. Accepted shapes are a
// bare record array or a wrapper object carrying one or more recognized
// collections; anything else yields an import-format error.
func DecodeImportPayload(raw []byte) (*ImportPayload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.NewImportFormatError("import payload is empty")
	}

	switch trimmed[0] {
	case '[':
		records, err := decodeRecordList(trimmed, false)
		if err != nil {
			return nil, err
		}
		return &ImportPayload{Records: records}, nil
	case '{':
		return decodeWrapper(trimmed)
	default:
		return nil, errors.NewImportFormatError("import payload must be a record collection or a wrapper object")
	}
}

func decodeWrapper(raw []byte) (*ImportPayload, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, errors.NewImportFormatError("import payload is not valid JSON", err.Error())
	}

	payload := &ImportPayload{}
	recognized := false

	for _, key := range activeCollectionKeys {
		list, ok := wrapper[key]
		if !ok {
			continue
		}
		recognized = true
		records, err := decodeRecordList(list, false)
		if err != nil {
			return nil, err
		}
		payload.Records = append(payload.Records, records...)
	}

	if list, ok := wrapper["trash"]; ok {
		recognized = true
		records, err := decodeRecordList(list, true)
		if err != nil {
			return nil, err
		}
		payload.Records = append(payload.Records, records...)
	}

	if !recognized {
		return nil, errors.NewImportFormatError("no recognizable record collection in import payload")
	}

	if flag, ok := wrapper["dry_run"]; ok {
		var dryRun bool
		if err := json.Unmarshal(flag, &dryRun); err == nil {
			payload.DryRun = dryRun
		}
	}

	return payload, nil
}

func decodeRecordList(raw []byte, fromTrash bool) ([]ImportRecord, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, errors.NewImportFormatError("record collection is not an array", err.Error())
	}

	records := make([]ImportRecord, 0, len(elements))
	for i, element := range elements {
		var fields map[string]any
		if err := json.Unmarshal(element, &fields); err != nil {
			return nil, errors.NewImportFormatError(fmt.Sprintf("record %d is not an object", i))
		}
		records = append(records, decodeRecord(fields, fromTrash))
	}

	return records, nil
}

// decodeRecord maps one loosely shaped record through the field-alias table.
// For each canonical field the first matching alias wins; unknown keys are
// ignored. Exports written by different generations of clients used
// different key names for the same fields.
func decodeRecord(fields map[string]any, fromTrash bool) ImportRecord {
	r := ImportRecord{
		ID:         uint(intField(fields, "id", "ticket_id", "ID")),
		Date:       stringField(fields, "date", "day", "created", "created_at_date"),
		Issue:      stringField(fields, "issue", "problem", "title", "question"),
		Department: stringField(fields, "department", "dept", "unit"),
		Name:       stringField(fields, "name", "reporter", "submitter"),
		Solution:   stringField(fields, "solution", "answer", "resolution"),
		Remarks:    stringField(fields, "remarks", "remark", "note", "notes", "comment"),
		Type:       stringField(fields, "type", "category", "kind"),
	}

	ts := intField(fields, "version_ts", "versionTs", "version_ms", "ts")
	str := stringField(fields, "version", "updated_at", "updatedAt", "update_time", "last_modified", "modified_at")
	r.Version = ticket.NewVersion(ts, str)

	r.IsDeleted = fromTrash || boolField(fields, "is_deleted", "deleted", "in_trash")
	if deletedAt := intField(fields, "deleted_at", "deletedAt"); deletedAt > 0 {
		r.DeletedAt = &deletedAt
	}

	return r
}

func firstValue(fields map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := fields[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(fields map[string]any, keys ...string) string {
	v, ok := firstValue(fields, keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func intField(fields map[string]any, keys ...string) int64 {
	v, ok := firstValue(fields, keys...)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int64(n)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func boolField(fields map[string]any, keys ...string) bool {
	v, ok := firstValue(fields, keys...)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		return b == "1" || strings.EqualFold(b, "true")
	default:
		return false
	}
}
