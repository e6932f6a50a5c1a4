package web

import "context"

// ExtractInput requests structured data collection for a URL. Leaving
// DataType empty asks the extractor to detect the appropriate dataset from
// the URL; setting AutoDetect to false makes DataType mandatory.
type ExtractInput struct {
	URL              string         `json:"url"`
	DataType         string         `json:"data_type,omitempty"`
	AutoDetect       *bool          `json:"auto_detect,omitempty"`
	MaxWaitTime      int            `json:"max_wait_time,omitempty"`
	AdditionalParams map[string]any `json:"additional_params,omitempty"`
}

// ExtractOutput describes a completed structured data collection.
type ExtractOutput struct {
	URL          string         `json:"url"`
	DataType     string         `json:"data_type"`
	DatasetID    string         `json:"dataset_id"`
	SnapshotID   string         `json:"snapshot_id"`
	Attempts     int            `json:"attempts"`
	AutoDetected bool           `json:"auto_detected"`
	Confidence   int            `json:"detection_confidence,omitempty"`
	Payload      map[string]any `json:"payload_used,omitempty"`
	Data         any            `json:"structured_data"`
}

type Extractor interface {
	Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error)
}
