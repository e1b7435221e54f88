package samcli

import (
	"context"
	"os"

	"github.com/ss22219/aws-toolkit-vscode/cache"
	"github.com/ss22219/aws-toolkit-vscode/logutil"
)

// detectionCacheKey is the cache entry key for SAM CLI detection results.
const detectionCacheKey = "sam-cli-detection"

// CachedValidator wraps a Validator with a detection result cache so
// repeated commands skip the version probe subprocess. A cached entry is
// only trusted while the binary still exists at the recorded path.
type CachedValidator struct {
	Validator Validator
	Cache     *cache.Manager
}

// DetectValidCli implements Validator.
func (v *CachedValidator) DetectValidCli(ctx context.Context) (*CliInfo, error) {
	if v.Cache != nil {
		var cached CliInfo
		hit, err := v.Cache.Get(detectionCacheKey, &cached)
		if err != nil {
			logutil.Warn("failed to read sam cli detection cache", "error", err)
		}
		if hit && cached.Path != "" {
			if _, err := os.Stat(cached.Path); err == nil {
				logutil.Debug("sam cli detection cache hit",
					"path", cached.Path, "version", cached.Version)
				return &cached, nil
			}
			if err := v.Cache.Invalidate(detectionCacheKey); err != nil {
				logutil.Warn("failed to invalidate stale detection cache", "error", err)
			}
		}
	}

	info, err := v.Validator.DetectValidCli(ctx)
	if err != nil {
		return nil, err
	}

	if v.Cache != nil {
		if err := v.Cache.Set(detectionCacheKey, info); err != nil {
			logutil.Warn("failed to write sam cli detection cache", "error", err)
		}
	}
	return info, nil
}
