package datastore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ccextract/internal/common"

	"github.com/rs/zerolog"
)

// Publisher stages output parts in a temporary directory next to the
// destination and publishes them with a single rename, giving the
// destination create-or-replace semantics: a failed run never corrupts
// a previously published result.
type Publisher struct {
	logger zerolog.Logger
}

// NewPublisher creates a new Publisher.
func NewPublisher(logger zerolog.Logger) *Publisher {
	return &Publisher{
		logger: logger.With().Str("component", "Publisher").Logger(),
	}
}

// Stage creates the staging directory for a destination path. The stage
// dir lives alongside the destination so the final rename stays within
// one filesystem.
func (p *Publisher) Stage(destPath string) (string, error) {
	parent := filepath.Dir(destPath)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return "", common.WrapError(common.ErrDestinationWrite, "failed to create destination parent directory: "+parent)
	}

	stageDir := fmt.Sprintf("%s.staging-%d", destPath, time.Now().UnixNano())
	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return "", common.WrapError(common.ErrDestinationWrite, "failed to create staging directory: "+stageDir)
	}

	p.logger.Debug().Str("stage_dir", stageDir).Msg("Created staging directory")
	return stageDir, nil
}

// Publish replaces the destination with the staged directory.
func (p *Publisher) Publish(stageDir, destPath string) error {
	if err := os.RemoveAll(destPath); err != nil {
		return common.WrapError(common.ErrDestinationWrite, "failed to remove previous destination: "+destPath)
	}
	if err := os.Rename(stageDir, destPath); err != nil {
		return common.WrapError(common.ErrDestinationWrite, "failed to publish staged output to: "+destPath)
	}

	p.logger.Info().Str("destination", destPath).Msg("Published extracted output")
	return nil
}

// Discard removes a staging directory after a failed run.
func (p *Publisher) Discard(stageDir string) {
	if err := os.RemoveAll(stageDir); err != nil {
		p.logger.Warn().Err(err).Str("stage_dir", stageDir).Msg("Failed to remove staging directory")
	}
}
