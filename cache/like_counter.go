// Package cache 在 Redis 中维护文章点赞计数和点赞排行。
// 数据库是唯一可信来源，计数 key 不存在表示未知，调用方需回源数据库。
package cache

import (
	"strconv"
	"time"

	"github.com/go-redis/redis"
)

const rankKey = "rank:article:likes"

// CounterTTL: 回源写入的计数最长保留时间
const CounterTTL = 10 * time.Minute

type RankEntry struct {
	ArticleID uint
	Score     int64
	Rank      int
}

type LikeCounter struct {
	rdb *redis.Client
}

func NewLikeCounter(rdb *redis.Client) *LikeCounter {
	return &LikeCounter{rdb: rdb}
}

func likeKey(articleID uint) string {
	return "article:" + strconv.FormatUint(uint64(articleID), 10) + ":likes"
}

func userKey(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10) + ":liked:articles"
}

func member(articleID uint) string {
	return strconv.FormatUint(uint64(articleID), 10)
}

// RecordLike: 点赞提交后调用。删除计数 key，下次读取时从数据库重新回源；
// 使用 Set 去重 user:{uid}:liked:articles，首次点赞才更新排行分数
func (c *LikeCounter) RecordLike(userID, articleID uint) error {
	added, err := c.rdb.SAdd(userKey(userID), member(articleID)).Result()
	if err != nil {
		c.rdb.Del(likeKey(articleID))
		return err
	}
	return c.invalidate(articleID, added > 0, 1)
}

// RecordUnlike: RecordLike 的逆操作。计数 key 总是删除，
// 只有 Set 中确有该文章时才扣减排行分数
func (c *LikeCounter) RecordUnlike(userID, articleID uint) error {
	removed, err := c.rdb.SRem(userKey(userID), member(articleID)).Result()
	if err != nil {
		c.rdb.Del(likeKey(articleID))
		return err
	}
	return c.invalidate(articleID, removed > 0, -1)
}

func (c *LikeCounter) invalidate(articleID uint, rank bool, delta float64) error {
	pipe := c.rdb.TxPipeline()
	pipe.Del(likeKey(articleID))
	var score *redis.FloatCmd
	if rank {
		score = pipe.ZIncrBy(rankKey, delta, member(articleID))
	}
	if _, err := pipe.Exec(); err != nil {
		return err
	}

	if score != nil && score.Val() < 0 {
		return c.rdb.ZAdd(rankKey, redis.Z{Score: 0, Member: member(articleID)}).Err()
	}
	return nil
}

// Count: 读取缓存的点赞数，未命中时 ok 为 false
func (c *LikeCounter) Count(articleID uint) (n int64, ok bool, err error) {
	n, err = c.rdb.Get(likeKey(articleID)).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// Warm: 写入数据库中的点赞数并校准排行分数。
// 计数在 CounterTTL 后过期，读到旧值后才写回的情况最多持续这么久
func (c *LikeCounter) Warm(articleID uint, n int64) error {
	pipe := c.rdb.TxPipeline()
	pipe.Set(likeKey(articleID), n, CounterTTL)
	pipe.ZAdd(rankKey, redis.Z{Score: float64(n), Member: member(articleID)})
	_, err := pipe.Exec()
	return err
}

// Top: ZREVRANGE with scores，按点赞数从高到低返回前 n 篇
func (c *LikeCounter) Top(n int) ([]RankEntry, error) {
	if n <= 0 {
		return []RankEntry{}, nil
	}
	zres, err := c.rdb.ZRevRangeWithScores(rankKey, 0, int64(n-1)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	entries := make([]RankEntry, 0, len(zres))
	for idx, z := range zres {
		memberStr, _ := z.Member.(string)
		id, err := strconv.ParseUint(memberStr, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, RankEntry{ArticleID: uint(id), Score: int64(z.Score), Rank: idx + 1})
	}
	return entries, nil
}
