package redisstore

import (
	"context"
	"time"

	"coupon-service/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	countKeyPrefix = "coupon_count:"
	userKeyPrefix  = "coupon_user:"
)

// ReserveResult is the outcome of the scripted check-and-reserve.
type ReserveResult int

const (
	ReserveDuplicate ReserveResult = -1
	ReserveExhausted ReserveResult = 0
	ReserveOK        ReserveResult = 1
)

// reserveScript performs duplicate-check + quota-check + reservation-mark as
// one indivisible step on the Redis server:
//
//	-1: requester already holds a reservation
//	 0: quota exhausted (counter rolled back)
//	 1: reserved
//
// KEYS[1]: dedup key (campaign code + requester)
// KEYS[2]: per-campaign issued counter
// ARGV[1]: total quantity
// ARGV[2]: dedup TTL in seconds
var reserveScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
    return -1
end

local next = redis.call('INCR', KEYS[2])
if tonumber(next) > tonumber(ARGV[1]) then
    redis.call('DECR', KEYS[2])
    return 0
end

redis.call('SET', KEYS[1], 'issued', 'EX', ARGV[2])
return 1
`)

// ReservationStore is the atomic reservation backend: linearizable per
// campaign key because the script runs as a single Redis command. Its keys
// are advisory; the ledger store stays the source of truth.
type ReservationStore struct {
	client *redis.Client
}

func NewReservationStore(client *redis.Client) *ReservationStore {
	return &ReservationStore{client: client}
}

func (s *ReservationStore) Reserve(ctx context.Context, campaignCode, requester string, totalQuantity int32, ttl time.Duration) (ReserveResult, error) {
	userKey := userKeyPrefix + campaignCode + ":" + requester
	countKey := countKeyPrefix + campaignCode

	ttlSeconds := int64(ttl / time.Second)
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := reserveScript.Run(ctx, s.client, []string{userKey, countKey}, totalQuantity, ttlSeconds).Int64()
	if err != nil {
		return 0, errs.Wrap(err, "check-and-reserve script failed")
	}

	switch result {
	case -1:
		return ReserveDuplicate, nil
	case 0:
		return ReserveExhausted, nil
	case 1:
		return ReserveOK, nil
	default:
		return 0, errs.New("unexpected check-and-reserve script result")
	}
}

// Release is the compensating action for a reservation whose persistence
// failed: decrement the counter and drop the dedup marker so the quota is not
// stranded.
func (s *ReservationStore) Release(ctx context.Context, campaignCode, requester string) error {
	userKey := userKeyPrefix + campaignCode + ":" + requester
	countKey := countKeyPrefix + campaignCode

	pipe := s.client.TxPipeline()
	pipe.Decr(ctx, countKey)
	pipe.Del(ctx, userKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return errs.Wrap(err, "failed to roll back reservation")
	}
	return nil
}

func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errs.Wrap(err, "failed to ping redis")
	}

	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}
