package source

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"

	"loov.dev/featurecheck/usage"
)

// xssiPrefix guards chromestatus JSON responses.
var xssiPrefix = []byte(")]}'")

// ParseNames decodes a name table. Both the property list of the metrics
// dashboard, [[id, name], ...], and the popularity rows,
// [{"bucket_id": id, "property_name": name}, ...], are accepted.
func ParseNames(data []byte) (usage.NameMapping, error) {
	data = bytes.TrimSpace(data)
	data = bytes.TrimPrefix(data, xssiPrefix)

	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, Error.Wrap(err)
	}

	names := make(usage.NameMapping, len(rows))
	for i, raw := range rows {
		id, name, err := parseRow(raw)
		if err != nil {
			return nil, Error.Errorf("row %d: %v", i, err)
		}
		names[id] = name
	}
	return names, nil
}

func parseRow(raw json.RawMessage) (int64, string, error) {
	raw = bytes.TrimSpace(raw)

	if bytes.HasPrefix(raw, []byte("[")) {
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil {
			return 0, "", err
		}
		if len(pair) != 2 {
			return 0, "", Error.Errorf("expected [id, name], got %d values", len(pair))
		}
		id, err := parseID(pair[0])
		if err != nil {
			return 0, "", err
		}
		var name string
		if err := json.Unmarshal(pair[1], &name); err != nil {
			return 0, "", err
		}
		return id, name, nil
	}

	var row struct {
		BucketID     json.RawMessage `json:"bucket_id"`
		PropertyName string          `json:"property_name"`
	}
	if err := json.Unmarshal(raw, &row); err != nil {
		return 0, "", err
	}
	if row.BucketID == nil {
		return 0, "", Error.Errorf("missing bucket_id")
	}
	id, err := parseID(row.BucketID)
	if err != nil {
		return 0, "", err
	}
	return id, row.PropertyName, nil
}

// parseID accepts 42 as well as "42".
func parseID(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	id, err := n.Int64()
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FormatNames encodes names as a [[id, name], ...] list, ordered by id.
func FormatNames(names usage.NameMapping) []byte {
	ids := make([]int64, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, id := range ids {
		if i > 0 {
			buf.WriteString(",\n ")
		}
		name, _ := json.Marshal(names[id])
		buf.WriteByte('[')
		buf.WriteString(strconv.FormatInt(id, 10))
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(']')
	}
	buf.WriteString("]\n")
	return buf.Bytes()
}
