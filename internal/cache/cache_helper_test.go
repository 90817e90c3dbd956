package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCacheManager(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheManager(client), mr
}

func TestCacheHelper_GetSet(t *testing.T) {
	cm, _ := newTestCacheManager(t)
	ctx := context.Background()

	type record struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	if err := cm.User.Set(ctx, "id:u1", record{ID: "u1", Name: "Amara"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got record
	if err := cm.User.Get(ctx, "id:u1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Amara" {
		t.Errorf("Expected Amara, got %s", got.Name)
	}

	if err := cm.User.Get(ctx, "id:missing", &got); err != ErrCacheNotFound {
		t.Fatalf("Expected ErrCacheNotFound, got %v", err)
	}

	if err := cm.User.Delete(ctx, "id:u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := cm.User.Get(ctx, "id:u1", &got); err != ErrCacheNotFound {
		t.Fatalf("Expected ErrCacheNotFound after delete, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	cm, _ := newTestCacheManager(t)
	ctx := context.Background()

	for _, key := range []string{"student:s1:confirmed", "student:s1:completed", "student:s2:confirmed"} {
		if err := cm.Session.SetString(ctx, key, "[]", time.Minute); err != nil {
			t.Fatalf("SetString failed: %v", err)
		}
	}

	if err := cm.Session.InvalidatePattern(ctx, "student:s1:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	if _, err := cm.Session.GetString(ctx, "student:s1:confirmed"); err != ErrCacheNotFound {
		t.Errorf("Expected s1 keys removed, got %v", err)
	}
	if _, err := cm.Session.GetString(ctx, "student:s2:confirmed"); err != nil {
		t.Errorf("Expected s2 key to survive, got %v", err)
	}
}

func TestCacheManager_ActiveSessions(t *testing.T) {
	cm, mr := newTestCacheManager(t)
	ctx := context.Background()

	if err := cm.StoreActiveSession(ctx, "token-1", "user-1", time.Hour); err != nil {
		t.Fatalf("StoreActiveSession failed: %v", err)
	}

	userID, err := cm.ActiveSessionUser(ctx, "token-1")
	if err != nil {
		t.Fatalf("ActiveSessionUser failed: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Expected user-1, got %s", userID)
	}

	// Expired sessions read as not found.
	mr.FastForward(2 * time.Hour)
	if _, err := cm.ActiveSessionUser(ctx, "token-1"); err != ErrCacheNotFound {
		t.Fatalf("Expected expired session to be gone, got %v", err)
	}

	if err := cm.StoreActiveSession(ctx, "token-2", "user-1", time.Hour); err != nil {
		t.Fatalf("StoreActiveSession failed: %v", err)
	}
	if err := cm.RevokeActiveSession(ctx, "token-2"); err != nil {
		t.Fatalf("RevokeActiveSession failed: %v", err)
	}
	if _, err := cm.ActiveSessionUser(ctx, "token-2"); err != ErrCacheNotFound {
		t.Fatalf("Expected revoked session to be gone, got %v", err)
	}
}

func TestCacheManager_WithoutRedis(t *testing.T) {
	cm := NewCacheManager(nil)
	ctx := context.Background()

	// Writes are silently dropped, reads report unavailability.
	if err := cm.StoreActiveSession(ctx, "token-1", "user-1", time.Hour); err != nil {
		t.Fatalf("StoreActiveSession should degrade gracefully, got %v", err)
	}
	if _, err := cm.ActiveSessionUser(ctx, "token-1"); err != ErrCacheNotAvailable {
		t.Fatalf("Expected ErrCacheNotAvailable, got %v", err)
	}
	if err := cm.HealthCheck(ctx); err != ErrCacheNotAvailable {
		t.Fatalf("Expected health check to report unavailability, got %v", err)
	}
	if err := cm.InvalidateDirectory(ctx); err != nil {
		t.Fatalf("Invalidation should be a no-op without Redis, got %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	cm, _ := newTestCacheManager(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return map[string]string{"id": "l1"}, nil
	}

	var first map[string]string
	if err := cm.Listing.CacheOrExecute(ctx, "id:l1", &first, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("Expected 1 fetch call, got %d", calls)
	}

	// The async cache fill races the second read; wait for the key.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if ok, _ := cm.Listing.Exists(ctx, "id:l1"); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	var second map[string]string
	if err := cm.Listing.CacheOrExecute(ctx, "id:l1", &second, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected cached read to skip fetch, got %d calls", calls)
	}
	if second["id"] != "l1" {
		t.Errorf("Expected cached value, got %v", second)
	}
}
