// Package registry owns the process-wide map of active calls. GetOrCreate
// and Remove are the only mutation points; every orchestrator instance only
// touches the entry keyed by its own room name.
package registry

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/internal/models"
)

type Registry struct {
	mu    sync.Mutex
	calls map[string]*models.CallRecord
	log   logrus.FieldLogger
}

func New(log logrus.FieldLogger) *Registry {
	return &Registry{
		calls: make(map[string]*models.CallRecord),
		log:   log,
	}
}

// GetOrCreate returns the record for roomName, creating one seeded from the
// dispatch metadata if absent. Re-dispatch to a live room (reconnection)
// returns the existing record untouched; its metadata is not re-parsed.
// Malformed metadata is logged and the caller identifier left unset.
func (r *Registry) GetOrCreate(roomName, metadata string) *models.CallRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.calls[roomName]; ok {
		r.log.WithField("room", roomName).Info("re-dispatch to existing call")
		return rec
	}

	rec := &models.CallRecord{
		RoomName: roomName,
		Metadata: parseMetadata(roomName, metadata, r.log),
	}
	r.calls[roomName] = rec
	r.log.WithFields(logrus.Fields{
		"room":      roomName,
		"caller_id": rec.Metadata["caller_id"],
	}).Info("call registered")
	return rec
}

// Remove deletes the entry if present. Removing an absent room is a no-op.
func (r *Registry) Remove(roomName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.calls, roomName)
}

// Len reports the number of active calls.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func parseMetadata(roomName, metadata string, log logrus.FieldLogger) map[string]string {
	out := make(map[string]string)
	if metadata == "" {
		return out
	}
	if err := json.Unmarshal([]byte(metadata), &out); err != nil {
		log.WithError(err).WithField("room", roomName).Warn("unparsable job metadata, caller id unset")
		return make(map[string]string)
	}
	return out
}
