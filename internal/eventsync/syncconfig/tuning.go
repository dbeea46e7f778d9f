// Package syncconfig loads the synchronization pipeline's tuning thresholds
// from a JSON file, the same way the rest of the pipeline's defaults are
// hardcoded as package-level Config structs - except every field here is
// overridable per deployment without a rebuild.
package syncconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillcorner/event-sync/internal/eventsync/match"
	"github.com/skillcorner/event-sync/internal/eventsync/offset"
	"github.com/skillcorner/event-sync/internal/eventsync/refine"
)

// DefaultConfigPath is the conventional location of a tuning defaults file.
// No such file ships with this module; the defaults themselves live in the
// DefaultConfig functions of offset, refine and match.
const DefaultConfigPath = "config/tuning.defaults.json"

const maxFileSize = 1 * 1024 * 1024 // 1MB

// TuningConfig is the full set of overridable synchronization thresholds.
// Fields omitted from the JSON file retain the reference implementation's
// defaults, so partial configs are safe.
type TuningConfig struct {
	// Offset synchronizer.
	DefaultStartPeriod1 *int     `json:"default_start_period_1,omitempty"`
	DefaultStartPeriod2 *int     `json:"default_start_period_2,omitempty"`
	DefaultStartPeriod3 *int     `json:"default_start_period_3,omitempty"`
	DefaultStartPeriod4 *int     `json:"default_start_period_4,omitempty"`
	MinPassPeriod1      *int     `json:"min_pass_period_1,omitempty"`
	MinPassPeriod2      *int     `json:"min_pass_period_2,omitempty"`
	MinPassPeriod3      *int     `json:"min_pass_period_3,omitempty"`
	MinPassPeriod4      *int     `json:"min_pass_period_4,omitempty"`
	ThDistPlyBall       *float64 `json:"th_dist_ply_ball,omitempty"`
	SearchOffset        *int     `json:"search_offset,omitempty"`

	// Refiner.
	RefineDistBallTH           *float64 `json:"refine_dist_ball_th,omitempty"`
	RefineIsDetectedTH         *float64 `json:"refine_is_detected_th,omitempty"`
	RefineBallAccTH            *float64 `json:"refine_ball_acc_th,omitempty"`
	RefineLocalOffsetFramePast *int     `json:"refine_local_offset_frame_past,omitempty"`

	// Matcher.
	MatchThIsMatched *float64 `json:"match_th_is_matched,omitempty"`
	MatchOffset      *int     `json:"match_offset,omitempty"`
	MatchNanDist     *float64 `json:"match_nan_dist,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields nil. Use
// LoadTuningConfig to load actual values from a defaults file.
func EmptyTuningConfig() *TuningConfig { return &TuningConfig{} }

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must have
// a .json extension and be under 1MB.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that set values are within sane bounds.
func (c *TuningConfig) Validate() error {
	if c.ThDistPlyBall != nil && *c.ThDistPlyBall <= 0 {
		return fmt.Errorf("th_dist_ply_ball must be positive, got %f", *c.ThDistPlyBall)
	}
	if c.SearchOffset != nil && *c.SearchOffset <= 0 {
		return fmt.Errorf("search_offset must be positive, got %d", *c.SearchOffset)
	}
	if c.RefineIsDetectedTH != nil && (*c.RefineIsDetectedTH < 0 || *c.RefineIsDetectedTH > 1) {
		return fmt.Errorf("refine_is_detected_th must be between 0 and 1, got %f", *c.RefineIsDetectedTH)
	}
	return nil
}

// OffsetConfig materializes the offset synchronizer's Config, overriding
// offset.DefaultConfig() fields that are set.
func (c *TuningConfig) OffsetConfig() offset.Config {
	cfg := offset.DefaultConfig()
	if c.DefaultStartPeriod1 != nil {
		cfg.DefaultStart[1] = *c.DefaultStartPeriod1
	}
	if c.DefaultStartPeriod2 != nil {
		cfg.DefaultStart[2] = *c.DefaultStartPeriod2
	}
	if c.DefaultStartPeriod3 != nil {
		cfg.DefaultStart[3] = *c.DefaultStartPeriod3
	}
	if c.DefaultStartPeriod4 != nil {
		cfg.DefaultStart[4] = *c.DefaultStartPeriod4
	}
	if c.MinPassPeriod1 != nil {
		cfg.MinPassPerPeriod[1] = *c.MinPassPeriod1
	}
	if c.MinPassPeriod2 != nil {
		cfg.MinPassPerPeriod[2] = *c.MinPassPeriod2
	}
	if c.MinPassPeriod3 != nil {
		cfg.MinPassPerPeriod[3] = *c.MinPassPeriod3
	}
	if c.MinPassPeriod4 != nil {
		cfg.MinPassPerPeriod[4] = *c.MinPassPeriod4
	}
	if c.ThDistPlyBall != nil {
		cfg.ThDistPlyBall = *c.ThDistPlyBall
	}
	if c.SearchOffset != nil {
		cfg.SearchOffset = *c.SearchOffset
	}
	return cfg
}

// RefineConfig materializes the refiner's Config, overriding
// refine.DefaultConfig() fields that are set.
func (c *TuningConfig) RefineConfig() refine.Config {
	cfg := refine.DefaultConfig()
	if c.RefineDistBallTH != nil {
		cfg.DistBallTH = *c.RefineDistBallTH
	}
	if c.RefineIsDetectedTH != nil {
		cfg.IsDetectedTH = *c.RefineIsDetectedTH
	}
	if c.RefineBallAccTH != nil {
		cfg.BallAccTH = *c.RefineBallAccTH
	}
	if c.RefineLocalOffsetFramePast != nil {
		cfg.LocalOffsetFramePast = *c.RefineLocalOffsetFramePast
	}
	return cfg
}

// MatchConfig materializes the matcher's Config, overriding
// match.DefaultConfig() fields that are set.
func (c *TuningConfig) MatchConfig() match.Config {
	cfg := match.DefaultConfig()
	if c.MatchThIsMatched != nil {
		cfg.ThIsMatched = *c.MatchThIsMatched
	}
	if c.MatchOffset != nil {
		cfg.Offset = *c.MatchOffset
	}
	if c.MatchNanDist != nil {
		cfg.NanDist = *c.MatchNanDist
	}
	return cfg
}
