package services

import "twinclash-api/models"

// DuelWinner is the outcome of a finished duel
type DuelWinner string

const (
	WinnerHost  DuelWinner = "host"
	WinnerGuest DuelWinner = "guest"
	WinnerTie   DuelWinner = "tie"
)

// DetermineWinner compares the two sides of a duel. It returns ok=false until
// both results are present. The precedence is deliberately asymmetric: a
// recorded win dominates everything; between two winners speed decides before
// economy of moves; between two losers progress (pairs found) decides before
// speed. Do not collapse this into a single combined score.
func DetermineWinner(host, guest *models.DuelResult) (DuelWinner, bool) {
	if host == nil || guest == nil {
		return "", false
	}

	if host.Win && !guest.Win {
		return WinnerHost, true
	}
	if !host.Win && guest.Win {
		return WinnerGuest, true
	}

	if host.Win && guest.Win {
		if host.TimeMs != guest.TimeMs {
			return fasterOf(host, guest), true
		}
		if host.Moves != guest.Moves {
			return fewerMovesOf(host, guest), true
		}
		return WinnerTie, true
	}

	// Neither side finished the level: progress first, then speed, then moves
	if host.PairsFound != guest.PairsFound {
		if host.PairsFound > guest.PairsFound {
			return WinnerHost, true
		}
		return WinnerGuest, true
	}
	if host.TimeMs != guest.TimeMs {
		return fasterOf(host, guest), true
	}
	if host.Moves != guest.Moves {
		return fewerMovesOf(host, guest), true
	}
	return WinnerTie, true
}

func fasterOf(host, guest *models.DuelResult) DuelWinner {
	if host.TimeMs < guest.TimeMs {
		return WinnerHost
	}
	return WinnerGuest
}

func fewerMovesOf(host, guest *models.DuelResult) DuelWinner {
	if host.Moves < guest.Moves {
		return WinnerHost
	}
	return WinnerGuest
}
