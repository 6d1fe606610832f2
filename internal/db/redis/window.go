package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// windowScript is the fixed-window step. KEYS[1] is a hash {count, reset_at}.
// ARGV: now_ms, window_ms, limit. Returns {admitted, count, reset_at_ms}.
// A fresh window sets PEXPIRE so abandoned keys evict themselves.
var windowScript = rueidis.NewLuaScript(`
local count = tonumber(redis.call('HGET', KEYS[1], 'count') or '0')
local reset = tonumber(redis.call('HGET', KEYS[1], 'reset_at') or '0')
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
if count == 0 or now >= reset then
  reset = now + window
  redis.call('HSET', KEYS[1], 'count', 1, 'reset_at', reset)
  redis.call('PEXPIRE', KEYS[1], window)
  return {1, 1, reset}
end
if count >= limit then
  return {0, count, reset}
end
count = redis.call('HINCRBY', KEYS[1], 'count', 1)
return {1, count, reset}
`)

// IncrWindow runs one fixed-window admission step atomically on the server.
func (s *Store) IncrWindow(
	ctx context.Context, key string, now time.Time, window time.Duration, limit int,
) (db.WindowResult, error) {
	args := []string{
		strconv.FormatInt(now.UnixMilli(), 10),
		strconv.FormatInt(window.Milliseconds(), 10),
		strconv.Itoa(limit),
	}
	vals, err := windowScript.Exec(ctx, s.client, []string{key}, args).ToArray()
	if err != nil {
		return db.WindowResult{}, &db.Error{Op: db.OpEval, Err: err}
	}
	if len(vals) != 3 {
		return db.WindowResult{}, &db.Error{
			Op:  db.OpEval,
			Err: fmt.Errorf("%w: window script returned %d values", db.ErrUnexpectedReply, len(vals)),
		}
	}

	nums := make([]int64, 3)
	for i := range vals {
		n, err := vals[i].AsInt64()
		if err != nil {
			return db.WindowResult{}, &db.Error{Op: db.OpEval, Err: fmt.Errorf("%w: %w", db.ErrUnexpectedReply, err)}
		}
		nums[i] = n
	}

	return db.WindowResult{
		Admitted: nums[0] == 1,
		Count:    nums[1],
		ResetAt:  time.UnixMilli(nums[2]),
	}, nil
}
