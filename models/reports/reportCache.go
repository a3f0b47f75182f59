package reports

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"github.com/sirupsen/logrus"
)

func reportCacheEnabled() bool {
	v := strings.TrimSpace(os.Getenv("ENABLE_REPORT_CACHE"))
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

func reportCacheTTL() time.Duration {
	// Env: REPORT_CACHE_TTL_SECONDS (default 120s)
	ttl := 120
	if v := strings.TrimSpace(os.Getenv("REPORT_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}
	return time.Duration(ttl) * time.Second
}

func reportSlowMs() int64 {
	// Env: REPORT_SLOW_MS (default 500ms)
	ms := int64(500)
	if v := strings.TrimSpace(os.Getenv("REPORT_SLOW_MS")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			ms = n
		}
	}
	return ms
}

func logSlowReport(ctx context.Context, name string, started time.Time, extra map[string]any) {
	d := time.Since(started)
	if d.Milliseconds() < reportSlowMs() {
		return
	}
	companyId, _ := utils.GetCompanyIdFromContext(ctx)
	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	config.GetLogger().WithFields(logrus.Fields{
		"field":          "slow_report",
		"report":         name,
		"ms":             d.Milliseconds(),
		"company_id":     companyId,
		"correlation_id": cid,
		"extra":          extra,
	}).Warn("report exceeded slow threshold")
}

func cacheGet[T any](key string, dest *T) (bool, error) {
	return config.GetRedisObject(key, dest)
}

func cacheSet(key string, obj any, ttl time.Duration) error {
	return config.SetRedisObject(key, obj, ttl)
}

// withReportCache wraps a dashboard computation with the optional Redis
// result cache and slow-report logging. A best-effort redislock keeps
// concurrent cache misses for the same key from recomputing in parallel;
// when Redis is down the computation just runs.
func withReportCache[T any](ctx context.Context, name string, keyParts []string, compute func(context.Context) (*T, error)) (*T, error) {
	started := time.Now()
	defer func() {
		logSlowReport(ctx, name, started, nil)
	}()

	if !reportCacheEnabled() {
		return compute(ctx)
	}

	key := "Report:" + name + ":" + strings.Join(keyParts, ":")

	var cached T
	if ok, err := cacheGet(key, &cached); err == nil && ok {
		return &cached, nil
	}

	if locker := config.GetRedisLock(); locker != nil {
		rctx := config.GetRedisContext()
		if lock, err := locker.Obtain(rctx, key+":lock", 10*time.Second, nil); err == nil {
			defer lock.Release(rctx)
			// another request may have filled the cache while we waited
			if ok, err := cacheGet(key, &cached); err == nil && ok {
				return &cached, nil
			}
		}
	}

	out, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := cacheSet(key, out, reportCacheTTL()); err != nil {
		config.LogError(config.GetLogger(), "reportCache.go", "withReportCache", "cache set "+key, nil, err)
	}
	return out, nil
}
