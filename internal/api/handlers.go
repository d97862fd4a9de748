package api

import (
	"net/http"
	"strconv"
	"strings"

	"riseyn/internal/economy"
	"riseyn/internal/game"
	"riseyn/internal/leaderboard"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.State(r.Context(), user.UserID)
	s.respond(w, out, err)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.Dashboard(r.Context(), user.UserID)
	s.respond(w, out, err)
}

func (s *Server) handleEnergySync(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.SyncEnergy(r.Context(), user.UserID)
	s.respond(w, out, err)
}

func (s *Server) handleOfflineClaim(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.ClaimOffline(r.Context(), user.UserID)
	s.respond(w, out, err)
}

func (s *Server) handleHustleList(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.ListHustles(r.Context(), user.UserID)
	s.respond(w, out, err)
}

func (s *Server) handleHustle(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.Hustle(r.Context(), user.UserID, chi.URLParam(r, "id"), idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleTap(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.TapHustle(r.Context(), user.UserID, idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleBusinessList(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.ListBusinesses(r.Context(), user.UserID)
	s.respond(w, out, err)
}

func (s *Server) handleBusinessBuy(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		TemplateID string `json:"template_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.BuyBusiness(r.Context(), user.UserID, strings.TrimSpace(in.TemplateID), idempotencyKey(r))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleBusinessUpgrade(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	businessID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.UpgradeBusiness(r.Context(), user.UserID, businessID, idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleHireManager(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	businessID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in struct {
		Track string `json:"track"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	track, err := economy.ParseManagerTrack(in.Track)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out, err := s.game.HireManager(r.Context(), user.UserID, businessID, track, idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleBusinessCollect(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	businessID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.CollectBusiness(r.Context(), user.UserID, businessID, idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleCollectAll(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.CollectAll(r.Context(), user.UserID, idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleAssetList(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var category *economy.AssetCategory
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		c, err := economy.ParseAssetCategory(raw)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		category = &c
	}
	out, err := s.game.ListAssets(r.Context(), user.UserID, category)
	s.respond(w, out, err)
}

func (s *Server) handleAssetBuy(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.BuyAsset(r.Context(), user.UserID, chi.URLParam(r, "id"), idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleBossStatus(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.BossStatus(r.Context(), user.UserID)
	s.respond(w, out, err)
}

func (s *Server) handleBossFight(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.FightBoss(r.Context(), user.UserID, idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handlePrestigeStatus(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.PrestigeStatus(r.Context(), user.UserID)
	s.respond(w, out, err)
}

func (s *Server) handlePrestige(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.Prestige(r.Context(), user.UserID, idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleDice(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Target string `json:"target"`
		Bet    int64  `json:"bet"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.PlayDice(r.Context(), user.UserID, strings.TrimSpace(in.Target), in.Bet, idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleShootout(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Moves []string `json:"moves"`
		Stake int64    `json:"stake"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	moves := make([]economy.Move, 0, len(in.Moves))
	for _, raw := range in.Moves {
		m, err := economy.ParseMove(raw)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		moves = append(moves, m)
	}
	out, err := s.game.PlayShootout(r.Context(), user.UserID, moves, in.Stake, idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleBigBank(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Target  string `json:"target"`
		Percent int    `json:"percent"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.PlayBigBank(r.Context(), user.UserID, strings.TrimSpace(in.Target), in.Percent, idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleCrew(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.Crew(r.Context(), user.UserID)
	s.respond(w, map[string]any{"crew": out}, err)
}

func (s *Server) handleCrewCreate(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Name string `json:"name"`
		Tag  string `json:"tag"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.CreateCrew(r.Context(), user.UserID, in.Name, in.Tag, idempotencyKey(r))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleCrewJoin(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.JoinCrew(r.Context(), user.UserID, chi.URLParam(r, "tag"), idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleCrewLeave(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.LeaveCrew(r.Context(), user.UserID, idempotencyKey(r))
	s.respond(w, out, err)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	kind, err := leaderboard.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := 25
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > leaderboard.MaxTop {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}
	rows, err := s.game.Leaderboard(r.Context(), kind, limit)
	s.respond(w, map[string]any{"kind": kind, "rows": rows}, err)
}

func (s *Server) handleLeaderboardRank(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	kind, err := leaderboard.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.PlayerRank(r.Context(), user.UserID, kind)
	s.respond(w, out, err)
}

func (s *Server) handleSyncReplay(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Commands []game.Command `json:"commands"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.game.ReplaySync(r.Context(), user.UserID, in.Commands)
	s.respond(w, map[string]any{"results": out}, err)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
