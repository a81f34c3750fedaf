package storage

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"simplechat/internal/message"
)

// ConversationKey is the reserved medium key holding the serialized
// conversation. Every other key is an opaque auxiliary setting.
const ConversationKey = "chatMessages"

// Snapshot is a full export of the medium: auxiliary values are kept as
// their best-effort decoded JSON form, unparseable values become JSON
// strings.
type Snapshot map[string]json.RawMessage

// Adapter serializes the conversation and auxiliary entries to a Medium.
type Adapter struct {
	medium Medium
}

func NewAdapter(medium Medium) *Adapter {
	return &Adapter{medium: medium}
}

// Save writes the conversation to the reserved key, overwriting any prior
// value. A failing medium is reported but recoverable: the in-memory state
// stays authoritative for the session.
func (a *Adapter) Save(msgs []message.Message) error {
	if msgs == nil {
		msgs = []message.Message{}
	}
	data, err := json.Marshal(msgs)
	if err != nil {
		return errors.Wrap(err, "encode conversation")
	}
	if err := a.medium.Set(ConversationKey, string(data)); err != nil {
		return errors.Wrap(err, "write conversation")
	}
	return nil
}

// Load reads the conversation from the reserved key. An absent key yields
// an empty conversation; malformed content yields an empty conversation
// plus ErrCorruptData instead of a propagated parse failure.
func (a *Adapter) Load() ([]message.Message, error) {
	raw, found, err := a.medium.Get(ConversationKey)
	if err != nil {
		return []message.Message{}, errors.Wrap(err, "read conversation")
	}
	if !found {
		return []message.Message{}, nil
	}

	var msgs []message.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		log.Warn().Err(err).Msg("[Adapter.Load] conversation failed validation, treating history as empty")
		return []message.Message{}, errors.Wrapf(ErrCorruptData, "decode conversation: %v", err)
	}
	if msgs == nil {
		msgs = []message.Message{}
	}
	return msgs, nil
}

// ExportAll reads every key in the medium into a Snapshot. Values that are
// valid JSON keep their structural form, anything else is exported as a
// JSON string so the file stays lossless for arbitrary auxiliary keys.
func (a *Adapter) ExportAll() (Snapshot, error) {
	keys, err := a.medium.Keys()
	if err != nil {
		return nil, errors.Wrap(err, "list medium keys")
	}

	snap := Snapshot{}
	for _, k := range keys {
		raw, found, err := a.medium.Get(k)
		if err != nil {
			return nil, errors.Wrapf(err, "read key %q", k)
		}
		if !found {
			continue
		}
		if json.Valid([]byte(raw)) {
			snap[k] = json.RawMessage(raw)
			continue
		}
		quoted, err := json.Marshal(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "encode key %q", k)
		}
		snap[k] = quoted
	}
	return snap, nil
}

// ImportAll validates the snapshot and atomically replaces the medium
// content with its entries. The reserved key must be present and decode as
// a conversation, otherwise ErrInvalidImport is returned and nothing is
// touched. JSON strings are stored back raw so an export/import cycle
// reproduces the original medium; structured values are stored compacted.
// The decoded conversation is returned for hydration.
func (a *Adapter) ImportAll(snap Snapshot) ([]message.Message, error) {
	raw, ok := snap[ConversationKey]
	if !ok {
		return nil, ErrInvalidImport
	}
	var msgs []message.Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, errors.Wrapf(ErrInvalidImport, "decode conversation: %v", err)
	}
	if msgs == nil {
		msgs = []message.Message{}
	}

	if err := a.medium.RemoveAll(); err != nil {
		return nil, errors.Wrap(err, "reset medium")
	}
	for k, v := range snap {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if err := a.medium.Set(k, s); err != nil {
				return nil, errors.Wrapf(err, "write key %q", k)
			}
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, v); err != nil {
			return nil, errors.Wrapf(err, "compact key %q", k)
		}
		if err := a.medium.Set(k, compact.String()); err != nil {
			return nil, errors.Wrapf(err, "write key %q", k)
		}
	}
	return msgs, nil
}

// ParseSnapshot decodes a raw export file. Anything that is not a JSON
// object is rejected as an invalid import.
func ParseSnapshot(raw []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, errors.Wrapf(ErrInvalidImport, "decode snapshot: %v", err)
	}
	if snap == nil {
		return nil, ErrInvalidImport
	}
	return snap, nil
}
