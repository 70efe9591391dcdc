package player

import (
	"context"
	"strings"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"pokerduel.com/server/logging"
)

var registryLogger = logging.GetZeroLogger("player::registry", nil)

var (
	ErrInvalidPhone  = errors.New("phone number must start with + (e.g., +31646118037)")
	ErrMissingField  = errors.New("both phone number and name are required")
	ErrNotRegistered = errors.New("player not registered")
)

// Registry maps phone numbers (primary key) to display names and back.
// Name lookups sit on the hot path of every status projection, so they go
// through a small read-through cache.
type Registry struct {
	rdclient *redis.Client
	names    *lru.Cache
}

func NewRegistry(rdclient *redis.Client) (*Registry, error) {
	names, err := lru.New(10000)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize player name cache")
	}
	return &Registry{
		rdclient: rdclient,
		names:    names,
	}, nil
}

// Register stores the phone -> name mapping and the reverse lookup.
func (r *Registry) Register(ctx context.Context, phone string, name string) error {
	if phone == "" || name == "" {
		return ErrMissingField
	}
	if !strings.HasPrefix(phone, "+") {
		return ErrInvalidPhone
	}
	if err := r.rdclient.Set(ctx, nameKey(phone), name, 0).Err(); err != nil {
		return errors.Wrap(err, "Unable to store player name")
	}
	if err := r.rdclient.Set(ctx, phoneKey(name), phone, 0).Err(); err != nil {
		return errors.Wrap(err, "Unable to store player phone")
	}
	r.names.Add(phone, name)
	registryLogger.Info().Msgf("Player registered: %s (%s)", name, phone)
	return nil
}

// PhoneOf resolves a player identifier (phone or display name) to a phone
// number. Unknown names resolve to themselves so the caller gets a stable
// not-registered error from IsRegistered instead of an empty key.
func (r *Registry) PhoneOf(ctx context.Context, identifier string) string {
	if strings.HasPrefix(identifier, "+") && len(identifier) > 5 {
		return identifier
	}
	phone, err := r.rdclient.Get(ctx, phoneKey(identifier)).Result()
	if err != nil {
		return identifier
	}
	return phone
}

// NameOf resolves a phone number to the registered display name, falling
// back to the phone itself.
func (r *Registry) NameOf(ctx context.Context, phone string) string {
	if cached, ok := r.names.Get(phone); ok {
		return cached.(string)
	}
	name, err := r.rdclient.Get(ctx, nameKey(phone)).Result()
	if err != nil {
		return phone
	}
	r.names.Add(phone, name)
	return name
}

func (r *Registry) IsRegistered(ctx context.Context, phone string) bool {
	if _, ok := r.names.Get(phone); ok {
		return true
	}
	err := r.rdclient.Get(ctx, nameKey(phone)).Err()
	return err == nil
}

func nameKey(phone string) string {
	return "player_name:" + phone
}

func phoneKey(name string) string {
	return "player_phone:" + name
}
