package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"daily-vocab-service/internal/domain"
)

// ContentLoader fetches content from the backing store (Postgres).
type ContentLoader interface {
	Words(ctx context.Context) ([]domain.Word, error)
	Questions(ctx context.Context) ([]domain.Question, error)
}

const (
	wordsKey     = "content:words"
	questionsKey = "content:questions"
)

// ContentCache keeps the word and question sets in Redis hashes and
// falls back to the loader on a miss.
// Words are stored as:     HSET content:words     {word} {json}
// Questions are stored as: HSET content:questions {word} {correct}
type ContentCache struct {
	client *redis.Client
	loader ContentLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewContentCache(client *redis.Client, loader ContentLoader, ttl time.Duration) *ContentCache {
	return &ContentCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *ContentCache) Words(ctx context.Context) ([]domain.Word, error) {
	cached, err := c.client.HGetAll(ctx, wordsKey).Result()
	if err == nil && len(cached) > 0 {
		return wordsFromCache(cached), nil
	}

	result, err, _ := c.sf.Do(wordsKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		cached, err := c.client.HGetAll(ctx, wordsKey).Result()
		if err == nil && len(cached) > 0 {
			return wordsFromCache(cached), nil
		}

		words, err := c.loader.Words(ctx)
		if err != nil {
			return nil, err
		}

		pipe := c.client.Pipeline()
		for _, w := range words {
			data, err := json.Marshal(w)
			if err != nil {
				continue
			}
			pipe.HSet(ctx, wordsKey, w.Word, data)
		}
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, wordsKey, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return words, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Word), nil
}

func (c *ContentCache) Questions(ctx context.Context) ([]domain.Question, error) {
	cached, err := c.client.HGetAll(ctx, questionsKey).Result()
	if err == nil && len(cached) > 0 {
		return questionsFromCache(cached), nil
	}

	result, err, _ := c.sf.Do(questionsKey, func() (interface{}, error) {
		cached, err := c.client.HGetAll(ctx, questionsKey).Result()
		if err == nil && len(cached) > 0 {
			return questionsFromCache(cached), nil
		}

		questions, err := c.loader.Questions(ctx)
		if err != nil {
			return nil, err
		}

		pipe := c.client.Pipeline()
		for _, q := range questions {
			pipe.HSet(ctx, questionsKey, q.Word, q.Correct)
		}
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, questionsKey, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func wordsFromCache(cached map[string]string) []domain.Word {
	words := make([]domain.Word, 0, len(cached))
	for word, raw := range cached {
		var w domain.Word
		if err := json.Unmarshal([]byte(raw), &w); err != nil {
			w = domain.Word{Word: word}
		}
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool { return words[i].Word < words[j].Word })
	return words
}

func questionsFromCache(cached map[string]string) []domain.Question {
	questions := make([]domain.Question, 0, len(cached))
	for word, correct := range cached {
		questions = append(questions, domain.Question{Word: word, Correct: correct})
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].Word < questions[j].Word })
	return questions
}

func (c *ContentCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
