package economy

const (
	diceHouseCutPermille = 100
	diceWinRespect       = int64(2)
	diceLoseRespect      = int64(1)
	maxDiceRolls         = 64
)

var diceLimits = [MaxTier + 1]int64{0, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000}

func DiceLimit(tier int) int64 {
	if !ValidTier(tier) {
		return 0
	}
	return diceLimits[tier]
}

type DiceOutcome struct {
	PlayerRoll int    `json:"player_roll"`
	TargetRoll int    `json:"target_roll"`
	Rerolls    int    `json:"rerolls"`
	PlayerWon  bool   `json:"player_won"`
	Bet        int64  `json:"bet"`
	HouseCut   int64  `json:"house_cut"`
	Payout     int64  `json:"payout"`
	Player     Player `json:"player"`
	Target     Player `json:"target"`
}

// ResolveDice rolls 1..6 for both sides until they differ. The winner takes
// bet minus a 10% house cut, the loser pays the full bet.
func ResolveDice(bet int64, player, target Player, rng Rand) (DiceOutcome, error) {
	if err := validateDice(bet, player, target); err != nil {
		return DiceOutcome{}, err
	}
	out := DiceOutcome{Bet: bet}
	for {
		out.PlayerRoll = 1 + rng.Intn(6)
		out.TargetRoll = 1 + rng.Intn(6)
		if out.PlayerRoll != out.TargetRoll {
			break
		}
		out.Rerolls++
		if out.Rerolls >= maxDiceRolls {
			// Guard against a source that only ever ties.
			out.TargetRoll = out.PlayerRoll%6 + 1
			break
		}
	}
	out.PlayerWon = out.PlayerRoll > out.TargetRoll
	out.HouseCut = scalePermille(bet, diceHouseCutPermille)
	out.Payout = bet - out.HouseCut

	winner, loser := player, target
	if !out.PlayerWon {
		winner, loser = target, player
	}
	winner.credit(out.Payout)
	winner.adjustRespect(diceWinRespect)
	loser.debit(bet)
	loser.adjustRespect(-diceLoseRespect)
	if out.PlayerWon {
		out.Player, out.Target = winner, loser
	} else {
		out.Player, out.Target = loser, winner
	}
	return out, nil
}

func validateDice(bet int64, player, target Player) error {
	if bet <= 0 {
		return ErrInvalidBet
	}
	if bet > player.Cash {
		return reject(ErrInsufficientCash, bet-player.Cash)
	}
	if bet > target.Cash {
		return reject(ErrOpponentCannotCover, bet-target.Cash)
	}
	limit := DiceLimit(player.Tier)
	if targetLimit := DiceLimit(target.Tier); targetLimit < limit {
		limit = targetLimit
	}
	if bet > limit {
		return reject(ErrBetAboveLimit, 0)
	}
	return nil
}
