package game

import (
	"context"
	"errors"
	"strings"

	"riseyn/internal/economy"

	"github.com/jackc/pgx/v5"
)

const crewSelect = `
	SELECT c.id, c.name, c.tag, c.leader_id, c.created_at,
		(SELECT COUNT(1) FROM rise.crew_members x WHERE x.crew_id = c.id)
	FROM rise.crews c`

func scanCrew(row pgx.Row) (CrewView, error) {
	var c CrewView
	if err := row.Scan(&c.ID, &c.Name, &c.Tag, &c.LeaderID, &c.CreatedAt, &c.Members); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c, ErrCrewNotFound
		}
		return c, err
	}
	c.SynergyPermille = economy.CrewSynergy(c.Members)
	return c, nil
}

// loadCrewFor returns nil when the player has no crew.
func loadCrewFor(ctx context.Context, tx pgx.Tx, userID string) (*CrewView, error) {
	var role string
	var crewID int64
	err := tx.QueryRow(ctx, `SELECT crew_id, role FROM rise.crew_members WHERE user_id = $1`, userID).Scan(&crewID, &role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c, err := scanCrew(tx.QueryRow(ctx, crewSelect+` WHERE c.id = $1`, crewID))
	if err != nil {
		return nil, err
	}
	c.Role = role
	return &c, nil
}

func (s *Service) Crew(ctx context.Context, userID string) (*CrewView, error) {
	var out *CrewView
	err := s.read(ctx, func(tx pgx.Tx) error {
		var err error
		out, err = loadCrewFor(ctx, tx, userID)
		return err
	})
	return out, err
}

func (s *Service) CreateCrew(ctx context.Context, userID, name, tag, idem string) (CrewView, error) {
	name, tag, err := economy.NormalizeCrew(name, tag)
	if err != nil {
		return CrewView{}, err
	}
	if blockedName(name) || blockedName(tag) {
		return CrewView{}, economy.ErrInvalidName
	}
	var out CrewView
	err = s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "crew_create"); err != nil {
			return err
		}
		if _, err := loadPlayerForUpdate(ctx, tx, userID); err != nil {
			return err
		}
		current, err := loadCrewFor(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := economy.CanJoinCrew(0, current != nil); err != nil {
			return err
		}
		var crewID int64
		if err := tx.QueryRow(ctx, `
			INSERT INTO rise.crews (name, tag, leader_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, name, tag, userID).Scan(&crewID); err != nil {
			if isUniqueViolation(err) {
				return ErrCrewTaken
			}
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO rise.crew_members (user_id, crew_id, role)
			VALUES ($1, $2, 'leader')
		`, userID, crewID); err != nil {
			return err
		}
		created, err := loadCrewFor(ctx, tx, userID)
		if err != nil {
			return err
		}
		out = *created
		return nil
	})
	if err != nil {
		return CrewView{}, err
	}
	s.log.Info("crew created", "user_id", userID, "crew_id", out.ID, "tag", out.Tag)
	return out, nil
}

// JoinCrew joins the crew with the given tag. The crew row is locked so two
// joins cannot both take the last seat.
func (s *Service) JoinCrew(ctx context.Context, userID, tag, idem string) (CrewView, error) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	var out CrewView
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "crew_join"); err != nil {
			return err
		}
		if _, err := loadPlayerForUpdate(ctx, tx, userID); err != nil {
			return err
		}
		var crewID int64
		err := tx.QueryRow(ctx, `SELECT id FROM rise.crews WHERE tag = $1 FOR UPDATE`, tag).Scan(&crewID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCrewNotFound
		}
		if err != nil {
			return err
		}
		crew, err := scanCrew(tx.QueryRow(ctx, crewSelect+` WHERE c.id = $1`, crewID))
		if err != nil {
			return err
		}
		current, err := loadCrewFor(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := economy.CanJoinCrew(crew.Members, current != nil); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO rise.crew_members (user_id, crew_id, role)
			VALUES ($1, $2, 'member')
		`, userID, crewID); err != nil {
			return err
		}
		joined, err := loadCrewFor(ctx, tx, userID)
		if err != nil {
			return err
		}
		out = *joined
		return nil
	})
	if err != nil {
		return CrewView{}, err
	}
	s.log.Info("crew joined", "user_id", userID, "crew_id", out.ID, "members", out.Members)
	return out, nil
}

// LeaveCrew removes the player from their crew. A leader can only leave by
// disbanding a crew they are alone in.
func (s *Service) LeaveCrew(ctx context.Context, userID, idem string) (LeaveCrewResult, error) {
	var out LeaveCrewResult
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := claimIdempotency(ctx, tx, userID, idem, "crew_leave"); err != nil {
			return err
		}
		crew, err := loadCrewFor(ctx, tx, userID)
		if err != nil {
			return err
		}
		if crew == nil {
			return economy.ErrNotInCrew
		}
		out = LeaveCrewResult{Crew: crew.Name}
		if crew.LeaderID == userID {
			if crew.Members > 1 {
				return economy.ErrLeaderCannotLeave
			}
			out.Disbanded = true
			_, err := tx.Exec(ctx, `DELETE FROM rise.crews WHERE id = $1`, crew.ID)
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM rise.crew_members WHERE user_id = $1`, userID)
		return err
	})
	if err != nil {
		return LeaveCrewResult{}, err
	}
	s.log.Info("crew left", "user_id", userID, "crew", out.Crew, "disbanded", out.Disbanded)
	return out, nil
}
