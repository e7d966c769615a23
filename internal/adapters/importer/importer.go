// Package importer normalizes every accepted transport shape into one
// canonical scouting-record list before anything touches the core.
//
// Devices have shipped three generations of batch payloads: a modern
// versioned JSON envelope, a bare JSON array, and an object root keyed
// by record id. QR transports additionally deliver msgpack-encoded
// envelopes to squeeze more records per code. All of them land here and
// nothing else in the repository knows they exist.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vibescout/matchaudit/internal/domain/model"
)

// Envelope is the modern batch shape.
type Envelope struct {
	Version int                    `json:"version" msgpack:"version"`
	Source  string                 `json:"source" msgpack:"source"`
	Records []model.ScoutingRecord `json:"records" msgpack:"records"`
}

// Decode sniffs the payload shape and normalizes it. JSON payloads are
// recognized by their first byte; anything else is tried as a msgpack
// envelope.
func Decode(data []byte) ([]model.ScoutingRecord, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrUnrecognizedShape)
	}
	switch trimmed[0] {
	case '[', '{':
		return DecodeJSON(trimmed)
	default:
		return DecodeMsgpack(data)
	}
}

// DecodeJSON normalizes any of the accepted JSON shapes.
func DecodeJSON(data []byte) ([]model.ScoutingRecord, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrUnrecognizedShape)
	}

	if trimmed[0] == '[' {
		// Legacy shape: bare array of records.
		var records []model.ScoutingRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		return normalize(records), nil
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}

	if _, ok := root["records"]; ok {
		// Modern envelope: schema-checked before parsing so a device
		// bug surfaces as a clear validation error, not a half-imported
		// batch.
		if err := validateEnvelope(trimmed); err != nil {
			return nil, err
		}
		var env Envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		return normalize(env.Records), nil
	}

	// Legacy shape: object root keyed by record id.
	records := make([]model.ScoutingRecord, 0, len(root))
	for id, raw := range root {
		var rec model.ScoutingRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrUnrecognizedShape, id, err)
		}
		if rec.ID == "" {
			rec.ID = id
		}
		records = append(records, rec)
	}
	return normalize(records), nil
}

// DecodeMsgpack normalizes a msgpack-encoded envelope.
func DecodeMsgpack(data []byte) ([]model.ScoutingRecord, error) {
	var env Envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	return normalize(env.Records), nil
}

// normalize fills the fields a device is allowed to omit. Missing
// numeric fields are already zero from decoding; identity and timestamps
// get deterministic defaults here.
func normalize(records []model.ScoutingRecord) []model.ScoutingRecord {
	now := time.Now().UTC()
	for i := range records {
		r := &records[i]
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		r.Alliance = r.Alliance.Normalize()
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
	}
	return records
}
