package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"riseyn/internal/auth"
	"riseyn/internal/economy"
	"riseyn/internal/game"
	"riseyn/internal/syncq"

	"github.com/google/uuid"
)

// ErrQueued wraps a transport failure for an action that was saved to the
// offline queue instead.
var ErrQueued = errors.New("server unreachable, action queued for sync")

// APIError is a non-2xx response from the API.
type APIError struct {
	Status     int
	Message    string
	Reason     string
	Shortfall  int64
	RetryAfter time.Duration
	Retryable  bool
	Duplicate  bool
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("api status %d (%s): %s", e.Status, e.Reason, e.Message)
	}
	return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client

	// Queue receives replayable actions that never reached the server.
	Queue func(game.Command) error
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
		Queue: syncq.Push,
	}
}

func NewIdempotencyKey() string {
	return uuid.NewString()
}

func (c *Client) Signup(ctx context.Context, email, password, username string) (auth.Session, error) {
	var out auth.Session
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/auth/signup", "", map[string]any{
		"email":    email,
		"password": password,
		"username": username,
	}, &out, "")
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (auth.Session, error) {
	var out auth.Session
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	}, &out, "")
	return out, err
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (auth.Session, error) {
	var out auth.Session
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/auth/refresh", "", map[string]any{
		"refresh_token": refreshToken,
	}, &out, "")
	return out, err
}

func (c *Client) State(ctx context.Context, accessToken string) (game.PlayerView, error) {
	var out game.PlayerView
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/me", accessToken, nil, &out, "")
	return out, err
}

func (c *Client) Dashboard(ctx context.Context, accessToken string) (game.Dashboard, error) {
	var out game.Dashboard
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/dashboard", accessToken, nil, &out, "")
	return out, err
}

func (c *Client) SyncEnergy(ctx context.Context, accessToken, idem string) (game.EnergyView, error) {
	var out game.EnergyView
	err := c.action(ctx, accessToken, game.CmdEnergySync, nil, http.MethodPost, "/v1/energy/sync", nil, &out, idem)
	return out, err
}

func (c *Client) ClaimOffline(ctx context.Context, accessToken, idem string) (economy.OfflineEarnings, error) {
	var out economy.OfflineEarnings
	err := c.action(ctx, accessToken, game.CmdOfflineClaim, nil, http.MethodPost, "/v1/offline/claim", nil, &out, idem)
	return out, err
}

func (c *Client) Hustles(ctx context.Context, accessToken string) (game.HustleListing, error) {
	var out game.HustleListing
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/hustles", accessToken, nil, &out, "")
	return out, err
}

func (c *Client) Hustle(ctx context.Context, accessToken, hustleID, idem string) (economy.HustleResult, error) {
	var out economy.HustleResult
	err := c.action(ctx, accessToken, game.CmdHustle, map[string]any{"hustle_id": hustleID},
		http.MethodPost, "/v1/hustles/"+url.PathEscape(hustleID), nil, &out, idem)
	return out, err
}

func (c *Client) Tap(ctx context.Context, accessToken, idem string) (economy.HustleResult, error) {
	var out economy.HustleResult
	err := c.action(ctx, accessToken, game.CmdTap, nil, http.MethodPost, "/v1/hustles/tap", nil, &out, idem)
	return out, err
}

func (c *Client) Businesses(ctx context.Context, accessToken string) (game.BusinessListing, error) {
	var out game.BusinessListing
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/businesses", accessToken, nil, &out, "")
	return out, err
}

func (c *Client) BuyBusiness(ctx context.Context, accessToken, templateID, idem string) (game.BusinessView, error) {
	var out game.BusinessView
	body := map[string]any{"template_id": templateID}
	err := c.action(ctx, accessToken, game.CmdBusinessBuy, body, http.MethodPost, "/v1/businesses", body, &out, idem)
	return out, err
}

func (c *Client) UpgradeBusiness(ctx context.Context, accessToken string, businessID int64, idem string) (game.BusinessOutcome, error) {
	var out game.BusinessOutcome
	err := c.action(ctx, accessToken, game.CmdBusinessUpgrade, map[string]any{"business_id": businessID},
		http.MethodPost, fmt.Sprintf("/v1/businesses/%d/upgrade", businessID), nil, &out, idem)
	return out, err
}

func (c *Client) HireManager(ctx context.Context, accessToken string, businessID int64, track economy.ManagerTrack, idem string) (game.BusinessOutcome, error) {
	var out game.BusinessOutcome
	err := c.action(ctx, accessToken, game.CmdBusinessHire, map[string]any{"business_id": businessID, "track": track},
		http.MethodPost, fmt.Sprintf("/v1/businesses/%d/managers", businessID), map[string]any{"track": track}, &out, idem)
	return out, err
}

func (c *Client) CollectBusiness(ctx context.Context, accessToken string, businessID int64, idem string) (game.BusinessOutcome, error) {
	var out game.BusinessOutcome
	err := c.action(ctx, accessToken, game.CmdBusinessCollect, map[string]any{"business_id": businessID},
		http.MethodPost, fmt.Sprintf("/v1/businesses/%d/collect", businessID), nil, &out, idem)
	return out, err
}

func (c *Client) CollectAll(ctx context.Context, accessToken, idem string) (game.CollectAllResult, error) {
	var out game.CollectAllResult
	err := c.action(ctx, accessToken, game.CmdCollectAll, nil, http.MethodPost, "/v1/businesses/collect", nil, &out, idem)
	return out, err
}

func (c *Client) Assets(ctx context.Context, accessToken, category string) ([]game.CatalogAsset, error) {
	path := "/v1/assets"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out []game.CatalogAsset
	err := c.jsonRequest(ctx, http.MethodGet, path, accessToken, nil, &out, "")
	return out, err
}

func (c *Client) BuyAsset(ctx context.Context, accessToken, assetID, idem string) (game.AssetPurchase, error) {
	var out game.AssetPurchase
	err := c.action(ctx, accessToken, game.CmdAssetBuy, map[string]any{"asset_id": assetID},
		http.MethodPost, "/v1/assets/"+url.PathEscape(assetID)+"/buy", nil, &out, idem)
	return out, err
}

func (c *Client) BossStatus(ctx context.Context, accessToken string) (game.BossStatus, error) {
	var out game.BossStatus
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/boss", accessToken, nil, &out, "")
	return out, err
}

func (c *Client) FightBoss(ctx context.Context, accessToken, idem string) (economy.BossOutcome, error) {
	var out economy.BossOutcome
	err := c.action(ctx, accessToken, game.CmdBossFight, nil, http.MethodPost, "/v1/boss/fight", nil, &out, idem)
	return out, err
}

func (c *Client) PrestigeStatus(ctx context.Context, accessToken string) (game.PrestigeStatus, error) {
	var out game.PrestigeStatus
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/prestige", accessToken, nil, &out, "")
	return out, err
}

func (c *Client) Prestige(ctx context.Context, accessToken, idem string) (game.PrestigeResult, error) {
	var out game.PrestigeResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/prestige", accessToken, map[string]any{}, &out, idem)
	return out, err
}

func (c *Client) Dice(ctx context.Context, accessToken, target string, bet int64, idem string) (game.DiceResult, error) {
	var out game.DiceResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games/dice", accessToken, map[string]any{
		"target": target,
		"bet":    bet,
	}, &out, idem)
	return out, err
}

func (c *Client) Shootout(ctx context.Context, accessToken string, moves []economy.Move, stake int64, idem string) (economy.ShootoutOutcome, error) {
	var out economy.ShootoutOutcome
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games/shootout", accessToken, map[string]any{
		"moves": moves,
		"stake": stake,
	}, &out, idem)
	return out, err
}

func (c *Client) BigBank(ctx context.Context, accessToken, target string, percent int, idem string) (game.BigBankResult, error) {
	var out game.BigBankResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games/bigbank", accessToken, map[string]any{
		"target":  target,
		"percent": percent,
	}, &out, idem)
	return out, err
}

func (c *Client) Crew(ctx context.Context, accessToken string) (*game.CrewView, error) {
	var out struct {
		Crew *game.CrewView `json:"crew"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/crew", accessToken, nil, &out, "")
	return out.Crew, err
}

func (c *Client) CreateCrew(ctx context.Context, accessToken, name, tag, idem string) (game.CrewView, error) {
	var out game.CrewView
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/crews", accessToken, map[string]any{
		"name": name,
		"tag":  tag,
	}, &out, idem)
	return out, err
}

func (c *Client) JoinCrew(ctx context.Context, accessToken, tag, idem string) (game.CrewView, error) {
	var out game.CrewView
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/crews/"+url.PathEscape(tag)+"/join", accessToken, map[string]any{}, &out, idem)
	return out, err
}

func (c *Client) LeaveCrew(ctx context.Context, accessToken, idem string) (game.LeaveCrewResult, error) {
	var out game.LeaveCrewResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/crew/leave", accessToken, map[string]any{}, &out, idem)
	return out, err
}

func (c *Client) Leaderboard(ctx context.Context, accessToken, kind string, limit int) ([]game.LeaderboardRow, error) {
	path := "/v1/leaderboard/" + url.PathEscape(kind)
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out struct {
		Rows []game.LeaderboardRow `json:"rows"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, path, accessToken, nil, &out, "")
	return out.Rows, err
}

func (c *Client) Rank(ctx context.Context, accessToken, kind string) (*game.LeaderboardRow, error) {
	var out *game.LeaderboardRow
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/leaderboard/"+url.PathEscape(kind)+"/me", accessToken, nil, &out, "")
	return out, err
}

func (c *Client) Replay(ctx context.Context, accessToken string, commands []game.Command) ([]game.CommandResult, error) {
	var out struct {
		Results []game.CommandResult `json:"results"`
	}
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sync/replay", accessToken, map[string]any{
		"commands": commands,
	}, &out, "")
	return out.Results, err
}

// action sends a replayable mutation. When the request never reaches the
// server the command is queued under the same idempotency key and the error
// wraps ErrQueued.
func (c *Client) action(ctx context.Context, accessToken, name string, args map[string]any, method, path string, in, out any, idem string) error {
	if idem == "" {
		idem = NewIdempotencyKey()
	}
	err := c.jsonRequest(ctx, method, path, accessToken, in, out, idem)
	if err == nil || c.Queue == nil || !IsNetworkError(err) {
		return err
	}
	cmd := game.Command{Action: name, IdempotencyKey: idem, QueuedAt: time.Now().UTC()}
	if args != nil {
		raw, mErr := json.Marshal(args)
		if mErr != nil {
			return mErr
		}
		cmd.Args = raw
	}
	if qErr := c.Queue(cmd); qErr != nil {
		return fmt.Errorf("queue %s: %w (request: %v)", name, qErr, err)
	}
	return fmt.Errorf("%w: %v", ErrQueued, err)
}

// IsNetworkError reports whether err is a transport failure rather than an
// API response or a user cancel.
func IsNetworkError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func (c *Client) jsonRequest(ctx context.Context, method, path, accessToken string, in any, out any, idem string) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	if idem != "" {
		req.Header.Set("Idempotency-Key", idem)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(status int, raw []byte) error {
	apiErr := &APIError{Status: status, Message: strings.TrimSpace(string(raw))}
	var body struct {
		Error      string `json:"error"`
		Reason     string `json:"reason"`
		Shortfall  int64  `json:"shortfall"`
		RetryAfter int64  `json:"retry_after_seconds"`
		Retryable  bool   `json:"retryable"`
		Duplicate  bool   `json:"duplicate"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Reason = body.Reason
		apiErr.Shortfall = body.Shortfall
		apiErr.RetryAfter = time.Duration(body.RetryAfter) * time.Second
		apiErr.Retryable = body.Retryable
		apiErr.Duplicate = body.Duplicate
	}
	return apiErr
}
