package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"riseyn/internal/auth"
	"riseyn/internal/config"
	"riseyn/internal/economy"
	"riseyn/internal/game"
	"riseyn/internal/leaderboard"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const userContextKey contextKey = "user"

type UserContext struct {
	UserID string
	Email  string
	Token  string
}

// Authenticator is the identity provider behind /v1/auth and the bearer check.
type Authenticator interface {
	auth.Verifier
	SignUp(ctx context.Context, email, password string) (auth.Session, error)
	Login(ctx context.Context, email, password string) (auth.Session, error)
	Refresh(ctx context.Context, refreshToken string) (auth.Session, error)
}

// Game is the service surface the handlers drive.
type Game interface {
	EnsurePlayer(ctx context.Context, userID, email, username string) error
	State(ctx context.Context, userID string) (game.PlayerView, error)
	Dashboard(ctx context.Context, userID string) (game.Dashboard, error)
	SyncEnergy(ctx context.Context, userID string) (game.EnergyView, error)
	ClaimOffline(ctx context.Context, userID string) (economy.OfflineEarnings, error)

	ListHustles(ctx context.Context, userID string) (game.HustleListing, error)
	Hustle(ctx context.Context, userID, hustleID, idem string) (economy.HustleResult, error)
	TapHustle(ctx context.Context, userID, idem string) (economy.HustleResult, error)

	ListBusinesses(ctx context.Context, userID string) (game.BusinessListing, error)
	BuyBusiness(ctx context.Context, userID, templateID, idem string) (game.BusinessView, error)
	UpgradeBusiness(ctx context.Context, userID string, businessID int64, idem string) (game.BusinessOutcome, error)
	HireManager(ctx context.Context, userID string, businessID int64, track economy.ManagerTrack, idem string) (game.BusinessOutcome, error)
	CollectBusiness(ctx context.Context, userID string, businessID int64, idem string) (game.BusinessOutcome, error)
	CollectAll(ctx context.Context, userID, idem string) (game.CollectAllResult, error)

	ListAssets(ctx context.Context, userID string, category *economy.AssetCategory) ([]game.CatalogAsset, error)
	BuyAsset(ctx context.Context, userID, assetID, idem string) (game.AssetPurchase, error)

	BossStatus(ctx context.Context, userID string) (game.BossStatus, error)
	FightBoss(ctx context.Context, userID, idem string) (economy.BossOutcome, error)
	PrestigeStatus(ctx context.Context, userID string) (game.PrestigeStatus, error)
	Prestige(ctx context.Context, userID, idem string) (game.PrestigeResult, error)

	PlayDice(ctx context.Context, userID, targetName string, bet int64, idem string) (game.DiceResult, error)
	PlayShootout(ctx context.Context, userID string, moves []economy.Move, stake int64, idem string) (economy.ShootoutOutcome, error)
	PlayBigBank(ctx context.Context, userID, targetName string, percent int, idem string) (game.BigBankResult, error)

	Crew(ctx context.Context, userID string) (*game.CrewView, error)
	CreateCrew(ctx context.Context, userID, name, tag, idem string) (game.CrewView, error)
	JoinCrew(ctx context.Context, userID, tag, idem string) (game.CrewView, error)
	LeaveCrew(ctx context.Context, userID, idem string) (game.LeaveCrewResult, error)

	Leaderboard(ctx context.Context, kind leaderboard.Kind, limit int) ([]game.LeaderboardRow, error)
	PlayerRank(ctx context.Context, userID string, kind leaderboard.Kind) (*game.LeaderboardRow, error)

	ReplaySync(ctx context.Context, userID string, commands []game.Command) ([]game.CommandResult, error)
}

var _ Game = (*game.Service)(nil)

type Server struct {
	cfg     config.APIConfig
	log     *slog.Logger
	auth    Authenticator
	game    Game
	limits  *userLimiter
	metrics *Metrics
	mux     *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, authClient Authenticator, gameSvc Game) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		log:     logger,
		auth:    authClient,
		game:    gameSvc,
		limits:  newUserLimiter(cfg.ActionRate, cfg.ActionBurst),
		metrics: NewMetrics(),
		mux:     chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	timeout := s.cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/refresh", s.handleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/me", s.handleState)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/hustles", s.handleHustleList)
			r.Get("/businesses", s.handleBusinessList)
			r.Get("/assets", s.handleAssetList)
			r.Get("/boss", s.handleBossStatus)
			r.Get("/prestige", s.handlePrestigeStatus)
			r.Get("/crew", s.handleCrew)
			r.Get("/leaderboard/{kind}", s.handleLeaderboard)
			r.Get("/leaderboard/{kind}/me", s.handleLeaderboardRank)

			r.Group(func(r chi.Router) {
				r.Use(s.rateLimit)

				r.Post("/energy/sync", s.handleEnergySync)
				r.Post("/offline/claim", s.handleOfflineClaim)

				r.Post("/hustles/tap", s.handleTap)
				r.Post("/hustles/{id}", s.handleHustle)

				r.Post("/businesses", s.handleBusinessBuy)
				r.Post("/businesses/collect", s.handleCollectAll)
				r.Post("/businesses/{id}/collect", s.handleBusinessCollect)
				r.Post("/businesses/{id}/upgrade", s.handleBusinessUpgrade)
				r.Post("/businesses/{id}/managers", s.handleHireManager)

				r.Post("/assets/{id}/buy", s.handleAssetBuy)

				r.Post("/boss/fight", s.handleBossFight)
				r.Post("/prestige", s.handlePrestige)

				r.Post("/games/dice", s.handleDice)
				r.Post("/games/shootout", s.handleShootout)
				r.Post("/games/bigbank", s.handleBigBank)

				r.Post("/crews", s.handleCrewCreate)
				r.Post("/crews/{tag}/join", s.handleCrewJoin)
				r.Post("/crew/leave", s.handleCrewLeave)

				r.Post("/sync/replay", s.handleSyncReplay)
			})
		})
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		user, err := s.auth.VerifyAccessToken(r.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) {
				s.log.Warn("token verification failed", "error", err)
			}
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, UserContext{
			UserID: user.ID,
			Email:  user.Email,
			Token:  token,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) (UserContext, error) {
	v := ctx.Value(userContextKey)
	user, ok := v.(UserContext)
	if !ok || user.UserID == "" {
		return UserContext{}, errors.New("missing auth context")
	}
	return user, nil
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Username != "" && !game.ValidUsername(in.Username) {
		writeError(w, http.StatusBadRequest, "username must be 3-24 letters, digits or underscores")
		return
	}
	session, err := s.auth.SignUp(r.Context(), strings.TrimSpace(in.Email), strings.TrimSpace(in.Password))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if session.User.ID != "" {
		if err := s.game.EnsurePlayer(r.Context(), session.User.ID, session.User.Email, in.Username); err != nil {
			s.writeDomainError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session, err := s.auth.Login(r.Context(), strings.TrimSpace(in.Email), strings.TrimSpace(in.Password))
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err := s.game.EnsurePlayer(r.Context(), session.User.ID, session.User.Email, ""); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session, err := s.auth.Refresh(r.Context(), strings.TrimSpace(in.RefreshToken))
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}
