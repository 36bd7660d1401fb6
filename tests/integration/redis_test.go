package integration

import (
	"context"
	"testing"
	"time"

	"github.com/seu-repo/concierge-ai/internal/adapter/cache"
	"github.com/seu-repo/concierge-ai/internal/adapter/sessionstore"
	"github.com/seu-repo/concierge-ai/internal/domain"
)

func TestRedis_BasicOperations(t *testing.T) {
	env := SetupTestEnvironment(t)
	FlushRedis(t, env.Redis)

	ctx := context.Background()

	t.Run("SetGet", func(t *testing.T) {
		if err := env.Redis.Set(ctx, "test:key", "test-value", 0).Err(); err != nil {
			t.Fatalf("Failed to set key: %v", err)
		}

		val, err := env.Redis.Get(ctx, "test:key").Result()
		if err != nil {
			t.Fatalf("Failed to get key: %v", err)
		}
		if val != "test-value" {
			t.Errorf("Expected 'test-value', got '%s'", val)
		}
	})

	t.Run("Expiration", func(t *testing.T) {
		if err := env.Redis.Set(ctx, "test:expiring", "gone-soon", time.Second).Err(); err != nil {
			t.Fatalf("Failed to set key: %v", err)
		}

		time.Sleep(1500 * time.Millisecond)

		_, err := env.Redis.Get(ctx, "test:expiring").Result()
		if err == nil {
			t.Error("Expected key to have expired")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		env.Redis.Set(ctx, "test:doomed", "x", 0)
		if err := env.Redis.Del(ctx, "test:doomed").Err(); err != nil {
			t.Fatalf("Failed to delete key: %v", err)
		}

		_, err := env.Redis.Get(ctx, "test:doomed").Result()
		if err == nil {
			t.Error("Expected key to be gone")
		}
	})
}

func TestRedis_CacheAdapter(t *testing.T) {
	env := SetupTestEnvironment(t)
	FlushRedis(t, env.Redis)

	kv, err := cache.NewRedisCache(env.RedisURL, env.Logger)
	if err != nil {
		t.Fatalf("Failed to build cache: %v", err)
	}
	defer kv.Close()

	ctx := context.Background()

	if err := kv.Set(ctx, "cache:greeting", "namaste", time.Minute); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	val, err := kv.Get(ctx, "cache:greeting")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if val != "namaste" {
		t.Errorf("Expected 'namaste', got '%s'", val)
	}

	if err := kv.Delete(ctx, "cache:greeting"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := kv.Get(ctx, "cache:greeting"); err == nil {
		t.Error("Expected a miss after delete")
	}

	if err := kv.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestRedis_SessionStore(t *testing.T) {
	env := SetupTestEnvironment(t)
	FlushRedis(t, env.Redis)

	kv, err := cache.NewRedisCache(env.RedisURL, env.Logger)
	if err != nil {
		t.Fatalf("Failed to build cache: %v", err)
	}
	defer kv.Close()

	store := sessionstore.NewStore(kv, time.Hour, env.Logger)
	ctx := context.Background()

	sess := domain.NewSession("it-sess-1", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	sess.Language = "hi"
	sess.ActiveIntent = "room_booking"
	sess.State = domain.StateCollectingInfo
	sess.Slots["phone_number"] = domain.SlotValue{
		Name:       "phone_number",
		Value:      "+919876543210",
		EntityType: "phone",
		Confidence: 0.95,
		Status:     domain.SlotValid,
	}
	sess.AddTurn("I want to book a room", "Certainly. May I have your name?", "room_booking", time.Now())

	t.Run("SaveLoad", func(t *testing.T) {
		if err := store.Save(ctx, sess); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}

		loaded, err := store.Load(ctx, "it-sess-1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		if loaded == nil {
			t.Fatal("Expected session, got nil")
		}
		if loaded.Language != "hi" || loaded.ActiveIntent != "room_booking" {
			t.Errorf("Session lost in round trip: %+v", loaded)
		}
		if loaded.TurnCount != 1 || len(loaded.Turns) != 1 {
			t.Errorf("Expected 1 recorded turn, got %d", loaded.TurnCount)
		}
		if slot := loaded.Slots["phone_number"]; slot.Value != "+919876543210" {
			t.Errorf("Slot lost in round trip: %+v", slot)
		}
	})

	t.Run("UnknownIDIsNotAnError", func(t *testing.T) {
		loaded, err := store.Load(ctx, "never-created")
		if err != nil {
			t.Fatalf("A miss must not be an error: %v", err)
		}
		if loaded != nil {
			t.Errorf("Expected nil session, got %+v", loaded)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "it-sess-1"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}

		loaded, err := store.Load(ctx, "it-sess-1")
		if err != nil || loaded != nil {
			t.Errorf("Expected a clean miss after delete, got %+v, %v", loaded, err)
		}
	})
}

func TestRedis_SessionTTLBackstop(t *testing.T) {
	env := SetupTestEnvironment(t)
	FlushRedis(t, env.Redis)

	kv, err := cache.NewRedisCache(env.RedisURL, env.Logger)
	if err != nil {
		t.Fatalf("Failed to build cache: %v", err)
	}
	defer kv.Close()

	store := sessionstore.NewStore(kv, time.Second, env.Logger)
	ctx := context.Background()

	sess := domain.NewSession("it-sess-ttl", time.Now())
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	loaded, err := store.Load(ctx, "it-sess-ttl")
	if err != nil {
		t.Fatalf("An expired session must read as a miss: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected session to have expired, got %+v", loaded)
	}
}

func TestRedis_TurnRateCounter(t *testing.T) {
	env := SetupTestEnvironment(t)
	FlushRedis(t, env.Redis)

	ctx := context.Background()
	key := "ratelimit:session:it-sess-1"
	limit := 5

	allowed := 0
	for i := 0; i < 8; i++ {
		count, err := env.Redis.Incr(ctx, key).Result()
		if err != nil {
			t.Fatalf("Failed to increment counter: %v", err)
		}
		if count == 1 {
			env.Redis.Expire(ctx, key, time.Minute)
		}
		if count <= int64(limit) {
			allowed++
		}
	}

	if allowed != limit {
		t.Errorf("Expected %d allowed turns, got %d", limit, allowed)
	}

	ttl, err := env.Redis.TTL(ctx, key).Result()
	if err != nil {
		t.Fatalf("Failed to read TTL: %v", err)
	}
	if ttl <= 0 {
		t.Errorf("Expected the counter window to expire, TTL %v", ttl)
	}
}
