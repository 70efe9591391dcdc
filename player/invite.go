package player

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

var ErrNoPendingInvite = errors.New("no pending invite found")

// Invites tracks short-lived match invitations keyed by game code and phone.
type Invites struct {
	rdclient *redis.Client
}

func NewInvites(rdclient *redis.Client) *Invites {
	return &Invites{rdclient: rdclient}
}

// CreatePending records an invite that expires after ttl.
func (i *Invites) CreatePending(ctx context.Context, gameCode string, phone string, ttl time.Duration) error {
	return i.rdclient.Set(ctx, inviteKey(gameCode, phone), "1", ttl).Err()
}

// Accept consumes a pending invite.
func (i *Invites) Accept(ctx context.Context, gameCode string, phone string) error {
	key := inviteKey(gameCode, phone)
	err := i.rdclient.Get(ctx, key).Err()
	if err == redis.Nil {
		return ErrNoPendingInvite
	} else if err != nil {
		return errors.Wrap(err, "Unable to read invite")
	}
	return i.rdclient.Del(ctx, key).Err()
}

func inviteKey(gameCode string, phone string) string {
	return gameCode + ":pending:" + phone
}
