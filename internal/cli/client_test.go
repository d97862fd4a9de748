package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"riseyn/internal/game"
)

func TestActionSendsIdempotencyKey(t *testing.T) {
	var gotKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"earned":100,"xp_gained":5,"hustle":{"id":"t1-sell-water"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.Queue = func(game.Command) error {
		t.Fatalf("nothing should be queued")
		return nil
	}
	out, err := c.Hustle(testContext(t), "tok", "t1-sell-water", "key-1")
	if err != nil {
		t.Fatalf("hustle: %v", err)
	}
	if out.Earned != 100 || out.Hustle.ID != "t1-sell-water" {
		t.Fatalf("unexpected result %+v", out)
	}
	if gotKey != "key-1" || gotAuth != "Bearer tok" {
		t.Fatalf("headers key=%q auth=%q", gotKey, gotAuth)
	}
}

func TestAPIErrorDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"not ready to collect","reason":"cooldown","retry_after_seconds":42}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	queued := 0
	c.Queue = func(game.Command) error { queued++; return nil }

	_, err := c.CollectBusiness(testContext(t), "tok", 7, "key-2")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Reason != "cooldown" || apiErr.RetryAfter != 42*time.Second {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
	if IsNetworkError(err) || queued != 0 {
		t.Fatalf("api rejection must not be queued")
	}
}

func TestNetworkFailureQueuesCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(base)
	var queued []game.Command
	c.Queue = func(cmd game.Command) error {
		queued = append(queued, cmd)
		return nil
	}

	_, err := c.UpgradeBusiness(testContext(t), "tok", 12, "key-3")
	if !errors.Is(err, ErrQueued) {
		t.Fatalf("expected ErrQueued, got %v", err)
	}
	if len(queued) != 1 {
		t.Fatalf("expected one queued command, got %d", len(queued))
	}
	cmd := queued[0]
	if cmd.Action != game.CmdBusinessUpgrade || cmd.IdempotencyKey != "key-3" {
		t.Fatalf("unexpected command %+v", cmd)
	}
	var args map[string]any
	if err := json.Unmarshal(cmd.Args, &args); err != nil {
		t.Fatalf("decode args: %v", err)
	}
	if args["business_id"] != float64(12) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestNonReplayableActionNotQueued(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(base)
	c.Queue = func(game.Command) error {
		t.Fatalf("dice must not be queued")
		return nil
	}
	_, err := c.Dice(testContext(t), "tok", "rival", 500, "key-4")
	if err == nil || errors.Is(err, ErrQueued) {
		t.Fatalf("expected plain transport error, got %v", err)
	}
	if !IsNetworkError(err) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestReplayDecodesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/sync/replay" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var in struct {
			Commands []game.Command `json:"commands"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		results := make([]game.CommandResult, 0, len(in.Commands))
		for _, c := range in.Commands {
			results = append(results, game.CommandResult{Action: c.Action, IdempotencyKey: c.IdempotencyKey, Status: game.ReplayApplied})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Replay(testContext(t), "tok", []game.Command{
		{Action: game.CmdTap, IdempotencyKey: "a"},
		{Action: game.CmdCollectAll, IdempotencyKey: "b"},
	})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(got) != 2 || got[1].IdempotencyKey != "b" || got[1].Status != game.ReplayApplied {
		t.Fatalf("unexpected results %+v", got)
	}
}
