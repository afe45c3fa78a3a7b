package store

import (
	"errors"
	"testing"
)

func TestSubscriptionUpsert(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			sub, err := st.Subscriptions.Create("https://push.example/abc", "p256dh-key", "auth-key", "laptop")
			if err != nil {
				t.Fatalf("create subscription: %v", err)
			}
			if sub.ID == 0 {
				t.Error("expected assigned id")
			}

			// Re-subscribing the same endpoint refreshes keys, not a new row
			again, err := st.Subscriptions.Create("https://push.example/abc", "new-p256dh", "new-auth", "laptop")
			if err != nil {
				t.Fatalf("re-create subscription: %v", err)
			}
			if again.ID != sub.ID {
				t.Errorf("upsert created new row: id %d, want %d", again.ID, sub.ID)
			}
			if again.P256dhKey != "new-p256dh" || again.AuthKey != "new-auth" {
				t.Errorf("keys not refreshed: %+v", again)
			}

			subs, err := st.Subscriptions.List()
			if err != nil {
				t.Fatalf("list subscriptions: %v", err)
			}
			if len(subs) != 1 {
				t.Fatalf("expected 1 subscription, got %d", len(subs))
			}
		})
	}
}

func TestSubscriptionUpsertAmongOthers(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			first, err := st.Subscriptions.Create("https://push.example/a", "ka", "aa", "laptop")
			if err != nil {
				t.Fatalf("create first: %v", err)
			}
			if _, err := st.Subscriptions.Create("https://push.example/b", "kb", "ab", "phone"); err != nil {
				t.Fatalf("create second: %v", err)
			}

			// Re-subscribing the first endpoint must return its own row, not
			// whichever row was inserted last on the connection.
			again, err := st.Subscriptions.Create("https://push.example/a", "ka2", "aa2", "laptop")
			if err != nil {
				t.Fatalf("re-create first: %v", err)
			}
			if again.ID != first.ID {
				t.Errorf("returned id = %d, want %d", again.ID, first.ID)
			}
			if again.Endpoint != "https://push.example/a" {
				t.Errorf("returned endpoint = %q, want https://push.example/a", again.Endpoint)
			}
			if again.P256dhKey != "ka2" || again.AuthKey != "aa2" {
				t.Errorf("keys not refreshed: %+v", again)
			}

			subs, err := st.Subscriptions.List()
			if err != nil {
				t.Fatalf("list subscriptions: %v", err)
			}
			if len(subs) != 2 {
				t.Fatalf("expected 2 subscriptions, got %d", len(subs))
			}
		})
	}
}

func TestSubscriptionListOrder(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, endpoint := range []string{
				"https://push.example/1",
				"https://push.example/2",
				"https://push.example/3",
			} {
				if _, err := st.Subscriptions.Create(endpoint, "k", "a", "device"); err != nil {
					t.Fatalf("create %s: %v", endpoint, err)
				}
			}

			subs, err := st.Subscriptions.List()
			if err != nil {
				t.Fatalf("list subscriptions: %v", err)
			}
			if len(subs) != 3 {
				t.Fatalf("expected 3 subscriptions, got %d", len(subs))
			}
			// Newest first, id breaking created_at ties
			for i := 1; i < len(subs); i++ {
				if subs[i-1].CreatedAt.Before(subs[i].CreatedAt) {
					t.Errorf("subscriptions out of order at %d: %v before %v", i, subs[i-1].CreatedAt, subs[i].CreatedAt)
				}
				if subs[i-1].CreatedAt.Equal(subs[i].CreatedAt) && subs[i-1].ID < subs[i].ID {
					t.Errorf("id tiebreak out of order at %d: %d before %d", i, subs[i-1].ID, subs[i].ID)
				}
			}
		})
	}
}

func TestSubscriptionDelete(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			sub, err := st.Subscriptions.Create("https://push.example/xyz", "k", "a", "phone")
			if err != nil {
				t.Fatalf("create subscription: %v", err)
			}

			if err := st.Subscriptions.Delete(sub.ID); err != nil {
				t.Fatalf("delete subscription: %v", err)
			}
			if err := st.Subscriptions.Delete(sub.ID); !errors.Is(err, ErrNotFound) {
				t.Errorf("second delete: err = %v, want ErrNotFound", err)
			}

			// DeleteByEndpoint tolerates absent endpoints (prune path)
			if err := st.Subscriptions.DeleteByEndpoint("https://push.example/gone"); err != nil {
				t.Errorf("delete by absent endpoint: %v", err)
			}
		})
	}
}
