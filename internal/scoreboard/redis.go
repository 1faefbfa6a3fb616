package scoreboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/gridgames/tictactoe-rooms/internal/entity"
)

const (
	fieldCircleWins = "circle_wins"
	fieldCrossWins  = "cross_wins"
	fieldDraws      = "draws"
)

type redisScoreboard struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) Scoreboard {
	return &redisScoreboard{
		client: client,
	}
}

func (that *redisScoreboard) RecordResult(ctx context.Context, roomID, winner string) error {
	var field string

	switch winner {
	case entity.MarkO:
		field = fieldCircleWins
	case entity.MarkX:
		field = fieldCrossWins
	case entity.MarkTie:
		field = fieldDraws
	default:
		return fmt.Errorf("unknown result %q for room %s", winner, roomID)
	}

	if err := that.client.HIncrBy(ctx, scoreKey(roomID), field, 1).Err(); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

func (that *redisScoreboard) Totals(ctx context.Context, roomID string) (Score, error) {
	fields, err := that.client.HGetAll(ctx, scoreKey(roomID)).Result()
	if err != nil {
		return Score{}, fmt.Errorf("failed to get totals: %w", err)
	}

	score := Score{
		CircleWins: parseCount(fields[fieldCircleWins]),
		CrossWins:  parseCount(fields[fieldCrossWins]),
		Draws:      parseCount(fields[fieldDraws]),
	}

	return score, nil
}

func (that *redisScoreboard) Delete(ctx context.Context, roomID string) error {
	if err := that.client.Del(ctx, scoreKey(roomID)).Err(); err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}

	return nil
}

func scoreKey(roomID string) string {
	return "score:" + roomID
}

func parseCount(raw string) int {
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}

	return count
}
