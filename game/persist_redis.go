package game

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
)

// RedisGameStateTracker persists GameState blobs as JSON so they stay
// readable with redis-cli while a match is being debugged.
type RedisGameStateTracker struct {
	rdclient *redis.Client
}

func NewRedisGameStateTracker(redisURL string, redisPW string, redisDB int) *RedisGameStateTracker {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisGameStateTracker{
		rdclient: rdclient,
	}
}

func NewRedisGameStateTrackerFromClient(rdclient *redis.Client) *RedisGameStateTracker {
	return &RedisGameStateTracker{rdclient: rdclient}
}

func (r *RedisGameStateTracker) Load(gameCode string) (*GameState, error) {
	stateBytes, err := r.rdclient.Get(context.Background(), gameStateKey(gameCode)).Result()
	if err == redis.Nil {
		return nil, ErrGameNotFound
	} else if err != nil {
		return nil, err
	}
	state := &GameState{}
	err = jsoniter.Unmarshal([]byte(stateBytes), state)
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (r *RedisGameStateTracker) Save(gameCode string, state *GameState, ttl time.Duration) error {
	stateInBytes, err := jsoniter.Marshal(state)
	if err != nil {
		return err
	}
	return r.rdclient.Set(context.Background(), gameStateKey(gameCode), stateInBytes, ttl).Err()
}

func (r *RedisGameStateTracker) Remove(gameCode string) error {
	return r.rdclient.Del(context.Background(), gameStateKey(gameCode)).Err()
}

func gameStateKey(gameCode string) string {
	return "gamestate:" + gameCode
}
