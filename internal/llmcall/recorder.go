package llmcall

import "github.com/platewise/menugraph/internal/providers"

// Recorder captures backend calls into a Store. A nil Recorder or a
// Recorder without a store is safe to use and records nothing.
type Recorder struct {
	store *Store
}

// NewRecorder creates a new call recorder.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store}
}

// Record captures a backend call.
func (r *Recorder) Record(result *providers.ChatResult, opts RecordOptions) {
	if r == nil || r.store == nil {
		return
	}
	r.store.Add(FromChatResult(result, opts))
}

// Store exposes the underlying store for query endpoints.
func (r *Recorder) Store() *Store {
	if r == nil {
		return nil
	}
	return r.store
}
