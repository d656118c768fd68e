package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// issuedKeyPattern est la clé Redis d'une clé de stockage émise : upload:issued:{key}
const issuedKeyPattern = "upload:issued:%s"

// KeyTracker garde la trace des clés émises par l'intake et pas encore
// rattachées à un événement.
type KeyTracker interface {
	Track(ctx context.Context, key, uploadID string) error
	IsIssued(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, keys ...string) error
}

// RedisKeyTracker stocke les clés émises dans Redis avec une durée de vie
type RedisKeyTracker struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisKeyTracker crée un tracker adossé à Redis
func NewRedisKeyTracker(client *redis.Client, ttl time.Duration) *RedisKeyTracker {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisKeyTracker{redis: client, ttl: ttl}
}

// Track enregistre une clé émise. uploadID est vide pour un upload simple.
func (t *RedisKeyTracker) Track(ctx context.Context, key, uploadID string) error {
	if err := t.redis.Set(ctx, fmt.Sprintf(issuedKeyPattern, key), uploadID, t.ttl).Err(); err != nil {
		return fmt.Errorf("erreur lors de l'enregistrement de la clé %s: %w", key, err)
	}
	return nil
}

// IsIssued indique si la clé a été émise et n'a pas encore été consommée
func (t *RedisKeyTracker) IsIssued(ctx context.Context, key string) (bool, error) {
	n, err := t.redis.Exists(ctx, fmt.Sprintf(issuedKeyPattern, key)).Result()
	if err != nil {
		return false, fmt.Errorf("erreur lors de la vérification de la clé %s: %w", key, err)
	}
	return n > 0, nil
}

// Forget consomme les clés (rattachées à un événement ou abandonnées)
func (t *RedisKeyTracker) Forget(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = fmt.Sprintf(issuedKeyPattern, k)
	}
	if err := t.redis.Del(ctx, redisKeys...).Err(); err != nil {
		return fmt.Errorf("erreur lors de la suppression des clés émises: %w", err)
	}
	return nil
}

// Ping vérifie la connexion Redis
func (t *RedisKeyTracker) Ping(ctx context.Context) error {
	return t.redis.Ping(ctx).Err()
}

type disabledKeyTracker struct{}

// NewDisabledKeyTracker retourne un tracker inactif qui accepte toutes les clés.
// Utilisé quand REDIS_URL n'est pas configuré.
func NewDisabledKeyTracker() KeyTracker {
	log.Println("⚠️  REDIS_URL non configuré - les clés d'upload simples ne sont pas vérifiées")
	return disabledKeyTracker{}
}

func (disabledKeyTracker) Track(context.Context, string, string) error   { return nil }
func (disabledKeyTracker) IsIssued(context.Context, string) (bool, error) { return true, nil }
func (disabledKeyTracker) Forget(context.Context, ...string) error        { return nil }
