// Package index tracks which videos have been processed and when each
// channel was last checked. The whole index is one JSON document in blob
// storage, shared by every poller and pipeline run; the load/merge/save
// rules here are what keep concurrent writers from destroying each
// other's records.
package index

import "encoding/json"

// Video processing states. A record moves absent -> processing -> processed;
// processed is terminal.
const (
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
)

// Index is the persisted document mapping video IDs to processing records
// and channel IDs to poll bookkeeping.
type Index struct {
	Videos   map[string]VideoRecord   `json:"videos"`
	Channels map[string]ChannelRecord `json:"channels"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		Videos:   make(map[string]VideoRecord),
		Channels: make(map[string]ChannelRecord),
	}
}

// VideoRecord tracks one video's trip through the pipeline. Timestamps are
// stored as formatted strings so documents written by older deployments
// load without parse failures.
type VideoRecord struct {
	Status            string
	ProcessingStarted string
	ProcessedAt       string
	Title             string
	ChannelID         string
	ChannelName       string
	NotePath          string

	// Extra carries fields written by other writer versions; they survive
	// a load/save round trip untouched.
	Extra map[string]json.RawMessage
}

// ChannelRecord tracks the last poll of one channel.
type ChannelRecord struct {
	Name        string
	URL         string
	LastChecked string
	LastVideoID string

	Extra map[string]json.RawMessage
}

// Known record field names in the persisted document.
const (
	fieldStatus            = "status"
	fieldProcessingStarted = "processing_started"
	fieldProcessedAt       = "processed_at"
	fieldTitle             = "title"
	fieldChannelID         = "channel_id"
	fieldChannelName       = "channel_name"
	fieldNotePath          = "note_path"
	fieldName              = "name"
	fieldURL               = "url"
	fieldLastChecked       = "last_checked"
	fieldLastVideoID       = "last_video_id"
)

// MarshalJSON writes the known fields plus any preserved extras.
func (r VideoRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+7)
	for k, v := range r.Extra {
		out[k] = v
	}
	setString(out, fieldStatus, r.Status)
	setString(out, fieldProcessingStarted, r.ProcessingStarted)
	setString(out, fieldProcessedAt, r.ProcessedAt)
	setString(out, fieldTitle, r.Title)
	setString(out, fieldChannelID, r.ChannelID)
	setString(out, fieldChannelName, r.ChannelName)
	setString(out, fieldNotePath, r.NotePath)
	return json.Marshal(out)
}

// UnmarshalJSON reads the known fields and keeps everything else in Extra.
func (r *VideoRecord) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Status = popString(raw, fieldStatus)
	r.ProcessingStarted = popString(raw, fieldProcessingStarted)
	r.ProcessedAt = popString(raw, fieldProcessedAt)
	r.Title = popString(raw, fieldTitle)
	r.ChannelID = popString(raw, fieldChannelID)
	r.ChannelName = popString(raw, fieldChannelName)
	r.NotePath = popString(raw, fieldNotePath)
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}

// MarshalJSON writes the known fields plus any preserved extras.
func (r ChannelRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+4)
	for k, v := range r.Extra {
		out[k] = v
	}
	setString(out, fieldName, r.Name)
	setString(out, fieldURL, r.URL)
	setString(out, fieldLastChecked, r.LastChecked)
	setString(out, fieldLastVideoID, r.LastVideoID)
	return json.Marshal(out)
}

// UnmarshalJSON reads the known fields and keeps everything else in Extra.
func (r *ChannelRecord) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Name = popString(raw, fieldName)
	r.URL = popString(raw, fieldURL)
	r.LastChecked = popString(raw, fieldLastChecked)
	r.LastVideoID = popString(raw, fieldLastVideoID)
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}

func setString(out map[string]json.RawMessage, key, value string) {
	if value == "" {
		return
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}
	out[key] = encoded
}

func popString(raw map[string]json.RawMessage, key string) string {
	encoded, ok := raw[key]
	if !ok {
		return ""
	}
	delete(raw, key)
	var value string
	// Non-string values (including null) stay out of the typed field; the
	// key has already been consumed so it is not duplicated into Extra.
	_ = json.Unmarshal(encoded, &value)
	return value
}
