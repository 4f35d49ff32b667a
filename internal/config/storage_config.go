package config

// StorageConfig defines where and how extracted records are persisted.
type StorageConfig struct {
	DestinationURI   string `json:"destination_uri,omitempty" yaml:"destination_uri,omitempty"`
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,codec"`
	WorkerCount      int    `json:"worker_count,omitempty" yaml:"worker_count,omitempty" validate:"min=0"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		CompressionCodec: DefaultCompressionCodec,
		WorkerCount:      DefaultWorkerCount,
	}
}
