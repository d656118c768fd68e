package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Impossible de démarrer miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestRedisKeyTracker_TrackEtForget(t *testing.T) {
	client, mr := setupTestRedis(t)
	tracker := NewRedisKeyTracker(client, time.Hour)
	ctx := context.Background()

	if err := tracker.Ping(ctx); err != nil {
		t.Fatalf("Ping() erreur = %v", err)
	}

	if err := tracker.Track(ctx, "media/image/a", ""); err != nil {
		t.Fatalf("Track() erreur = %v", err)
	}
	if err := tracker.Track(ctx, "media/video/b", "upload-1"); err != nil {
		t.Fatalf("Track() erreur = %v", err)
	}

	issued, err := tracker.IsIssued(ctx, "media/image/a")
	if err != nil || !issued {
		t.Fatalf("IsIssued() = %v, %v; attendu true", issued, err)
	}
	if got, _ := mr.Get("upload:issued:media/video/b"); got != "upload-1" {
		t.Errorf("valeur stockée = %q, attendu upload-1", got)
	}
	if ttl := mr.TTL("upload:issued:media/image/a"); ttl != time.Hour {
		t.Errorf("TTL = %v, attendu 1h", ttl)
	}

	if err := tracker.Forget(ctx, "media/image/a", "media/video/b"); err != nil {
		t.Fatalf("Forget() erreur = %v", err)
	}
	issued, _ = tracker.IsIssued(ctx, "media/image/a")
	if issued {
		t.Error("la clé doit être consommée après Forget")
	}
}

func TestRedisKeyTracker_Expiration(t *testing.T) {
	client, mr := setupTestRedis(t)
	tracker := NewRedisKeyTracker(client, time.Minute)
	ctx := context.Background()

	_ = tracker.Track(ctx, "media/image/a", "")
	mr.FastForward(2 * time.Minute)

	issued, err := tracker.IsIssued(ctx, "media/image/a")
	if err != nil {
		t.Fatalf("IsIssued() erreur = %v", err)
	}
	if issued {
		t.Error("une clé expirée ne doit plus être reconnue")
	}
}

func TestRedisKeyTracker_InconnueEtForgetVide(t *testing.T) {
	client, _ := setupTestRedis(t)
	tracker := NewRedisKeyTracker(client, 0)
	ctx := context.Background()

	issued, err := tracker.IsIssued(ctx, "media/image/inconnue")
	if err != nil || issued {
		t.Errorf("IsIssued() = %v, %v; attendu false", issued, err)
	}
	if err := tracker.Forget(ctx); err != nil {
		t.Errorf("Forget() sans clé erreur = %v", err)
	}
	if tracker.ttl != 24*time.Hour {
		t.Errorf("ttl par défaut = %v", tracker.ttl)
	}
}

func TestDisabledKeyTracker(t *testing.T) {
	tracker := NewDisabledKeyTracker()
	ctx := context.Background()

	if err := tracker.Track(ctx, "k", ""); err != nil {
		t.Errorf("Track() erreur = %v", err)
	}
	issued, err := tracker.IsIssued(ctx, "n'importe-quelle-cle")
	if err != nil || !issued {
		t.Errorf("IsIssued() = %v, %v; attendu true", issued, err)
	}
}
