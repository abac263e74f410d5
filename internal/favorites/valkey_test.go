package favorites

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a client on DB 15. Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, keyPrefix+"test-*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestValkeyBackendRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	b := NewValkeyBackend(client, time.Minute)
	ctx := context.Background()

	got, err := b.Get(ctx, "test-missing")
	if err != nil || got != nil {
		t.Fatalf("Get missing = %q, %v", got, err)
	}
	if err := b.Update(ctx, "test-owner", func(cur []byte) ([]byte, error) {
		if cur != nil {
			t.Errorf("current = %q, want nil", cur)
		}
		return []byte(`[]`), nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = b.Get(ctx, "test-owner")
	if err != nil || string(got) != "[]" {
		t.Errorf("Get = %q, %v", got, err)
	}
}

func TestValkeyBackendNotifies(t *testing.T) {
	client := testValkeyClient(t)
	b := NewValkeyBackend(client, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := make(chan string, 1)
	if err := b.Subscribe(ctx, func(owner string) {
		select {
		case seen <- owner:
		default:
		}
	}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := b.Update(ctx, "test-notify", func([]byte) ([]byte, error) {
		return []byte(`[]`), nil
	}); err != nil {
		t.Fatal(err)
	}
	select {
	case owner := <-seen:
		if owner != "test-notify" {
			t.Errorf("notified for %q", owner)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification received")
	}
}

func TestStoreOverValkey(t *testing.T) {
	client := testValkeyClient(t)
	ctx := context.Background()
	s := newTestStore(t, NewValkeyBackend(client, time.Minute))

	f, err := s.Add(ctx, "test-store", "defense", "f35")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	favs, err := s.List(ctx, "test-store")
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 1 || favs[0].ID != f.ID {
		t.Errorf("List = %+v", favs)
	}
}

func TestValkeyBackendUpdateRetriesOnConflict(t *testing.T) {
	client := testValkeyClient(t)
	b := NewValkeyBackend(client, time.Minute)
	ctx := context.Background()

	calls := 0
	err := b.Update(ctx, "test-conflict", func(cur []byte) ([]byte, error) {
		calls++
		if calls == 1 {
			// Another writer lands between WATCH and EXEC.
			if err := client.Set(ctx, keyPrefix+"test-conflict", "other", time.Minute).Err(); err != nil {
				t.Fatal(err)
			}
			return []byte("mine"), nil
		}
		if string(cur) != "other" {
			t.Errorf("retry saw %q, want the concurrent write", cur)
		}
		return append(cur, "+mine"...), nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if calls != 2 {
		t.Errorf("fn called %d times, want 2", calls)
	}
	got, _ := b.Get(ctx, "test-conflict")
	if string(got) != "other+mine" {
		t.Errorf("stored %q, want other+mine", got)
	}
}

func TestStoresOverValkeyKeepConcurrentAdds(t *testing.T) {
	client := testValkeyClient(t)
	ctx := context.Background()
	stores := []*Store{
		newTestStore(t, NewValkeyBackend(client, time.Minute)),
		newTestStore(t, NewValkeyBackend(client, time.Minute)),
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := stores[i%2].Add(ctx, "test-race", fmt.Sprintf("item-%d", i), "f35"); err != nil {
				t.Errorf("Add #%d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	data, err := stores[0].backend.Get(ctx, "test-race")
	if err != nil {
		t.Fatal(err)
	}
	favs, err := decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 10 {
		t.Errorf("stored %d favorites, want 10", len(favs))
	}
}
