package cache

import (
    "context"
    "fmt"
    "strconv"

    "github.com/redis/go-redis/v9"
)

// Timeline is the per-user feed index: one sorted set per user, member = post id,
// score = the post's creation timestamp in milliseconds. The durable store stays
// authoritative; every set here can be rebuilt from (follows x posts).
type Timeline struct {
    rdb *redis.Client
}

func NewTimeline(rdb *redis.Client) *Timeline { return &Timeline{rdb: rdb} }

func Key(userID int64) string { return fmt.Sprintf("feed:%d", userID) }

func (t *Timeline) Push(ctx context.Context, userID, postID, score int64) error {
    return t.rdb.ZAdd(ctx, Key(userID), redis.Z{
        Score:  float64(score),
        Member: strconv.FormatInt(postID, 10),
    }).Err()
}

// RangeDesc returns up to limit post ids with score strictly below maxExclusive,
// most recent first. A nil maxExclusive means no upper bound (first page).
func (t *Timeline) RangeDesc(ctx context.Context, userID int64, maxExclusive *int64, limit int64) ([]int64, error) {
    max := "+inf"
    if maxExclusive != nil {
        max = "(" + strconv.FormatInt(*maxExclusive, 10)
    }
    members, err := t.rdb.ZRevRangeByScore(ctx, Key(userID), &redis.ZRangeBy{
        Min:    "-inf",
        Max:    max,
        Offset: 0,
        Count:  limit,
    }).Result()
    if err != nil {
        return nil, err
    }
    ids := make([]int64, 0, len(members))
    for _, m := range members {
        id, err := strconv.ParseInt(m, 10, 64)
        if err != nil {
            return nil, fmt.Errorf("timeline %s: bad member %q: %w", Key(userID), m, err)
        }
        ids = append(ids, id)
    }
    return ids, nil
}

// Rewrite replaces the user's whole set with the given entries in one pipeline.
// Used by timeline repair after a partial fan-out.
func (t *Timeline) Rewrite(ctx context.Context, userID int64, entries []redis.Z) error {
    key := Key(userID)
    pipe := t.rdb.TxPipeline()
    pipe.Del(ctx, key)
    if len(entries) > 0 {
        pipe.ZAdd(ctx, key, entries...)
    }
    _, err := pipe.Exec(ctx)
    return err
}

func (t *Timeline) Size(ctx context.Context, userID int64) (int64, error) {
    return t.rdb.ZCard(ctx, Key(userID)).Result()
}
