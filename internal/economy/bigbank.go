package economy

const (
	BigBankMinPercent   = 5
	BigBankMaxPercent   = 25
	bigBankSpread       = 0.10
	bigBankSkimPermille = 100
	bigBankWinRespect   = int64(3)
	bigBankLoseRespect  = int64(2)
)

type BigBankOutcome struct {
	Percent     int     `json:"percent"`
	Bet         int64   `json:"bet"`
	Transfer    int64   `json:"transfer"`
	PlayerPower float64 `json:"player_power"`
	TargetPower float64 `json:"target_power"`
	PlayerWon   bool    `json:"player_won"`
	Player      Player  `json:"player"`
	Target      Player  `json:"target"`
}

// ResolveBigBank wagers a percentage of the initiator's cash. Both sides roll
// power with independent +/-10% noise; ties go to the side holding more cash,
// then to the defender. The winner skims 10% of the bet from the loser.
func ResolveBigBank(percent int, player, target Player, rng Rand) (BigBankOutcome, error) {
	if percent < BigBankMinPercent || percent > BigBankMaxPercent {
		return BigBankOutcome{}, ErrInvalidPercent
	}
	bet := player.Cash * int64(percent) / 100
	if bet <= 0 {
		return BigBankOutcome{}, ErrInvalidBet
	}
	if bet > player.Cash {
		return BigBankOutcome{}, reject(ErrInsufficientCash, bet-player.Cash)
	}

	out := BigBankOutcome{Percent: percent, Bet: bet}
	out.PlayerPower = float64(player.Power()) * noise(rng, bigBankSpread)
	out.TargetPower = float64(target.Power()) * noise(rng, bigBankSpread)
	switch {
	case out.PlayerPower != out.TargetPower:
		out.PlayerWon = out.PlayerPower > out.TargetPower
	default:
		out.PlayerWon = player.Cash > target.Cash
	}

	winner, loser := player, target
	if !out.PlayerWon {
		winner, loser = target, player
	}
	out.Transfer = min(scalePermille(bet, bigBankSkimPermille), loser.Cash)
	loser.debit(out.Transfer)
	winner.credit(out.Transfer)
	winner.adjustRespect(bigBankWinRespect)
	loser.adjustRespect(-bigBankLoseRespect)
	if out.PlayerWon {
		out.Player, out.Target = winner, loser
	} else {
		out.Player, out.Target = loser, winner
	}
	return out, nil
}
