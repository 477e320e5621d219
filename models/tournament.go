package models

// TournamentParticipant is one entry in a tournament's participant set.
// The initial* counters are captured when the user joins, the current*
// counters on each backend refresh; solves can only accumulate, so current
// should never fall below initial. Score is computed by the backend and the
// client treats it as opaque.
type TournamentParticipant struct {
	ID                  string  `json:"id"`
	Username            string  `json:"username"`
	LcUsername          *string `json:"lcUsername,omitempty"`
	InitialTotalSolved  int     `json:"initialTotalSolved"`
	CurrentTotalSolved  int     `json:"currentTotalSolved"`
	InitialEasySolved   int     `json:"initialEasySolved"`
	CurrentEasySolved   int     `json:"currentEasySolved"`
	InitialMediumSolved int     `json:"initialMediumSolved"`
	CurrentMediumSolved int     `json:"currentMediumSolved"`
	InitialHardSolved   int     `json:"initialHardSolved"`
	CurrentHardSolved   int     `json:"currentHardSolved"`
	Score               int     `json:"score"`
}

// DisplayName is the ladder label: username, else LeetCode handle, else "player".
func (p TournamentParticipant) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	if p.LcUsername != nil && *p.LcUsername != "" {
		return *p.LcUsername
	}
	return "player"
}

// Tournament is a time-boxed competitive group. Participant order on the wire
// is insignificant; the client re-sorts for display.
type Tournament struct {
	MongoID      string                  `json:"_id,omitempty"`
	ID           string                  `json:"id,omitempty"`
	Name         string                  `json:"name"`
	Password     string                  `json:"password,omitempty"`
	CreatorID    string                  `json:"creatorId,omitempty"`
	StartTime    string                  `json:"startTime"`
	EndTime      string                  `json:"endTime"`
	Participants []TournamentParticipant `json:"participants"`
	Streak       int                     `json:"streak"`
	LastChecked  *string                 `json:"lastChecked,omitempty"`
}

// LadderEntry is the derived, per-render leaderboard row. Never persisted.
type LadderEntry struct {
	Rank            int     `json:"rank"`
	Name            string  `json:"name"`
	LcUsername      *string `json:"lcUsername,omitempty"`
	SolvedSinceJoin int     `json:"solvedSinceJoin"`
	Points          int     `json:"points"`
	IsYou           bool    `json:"isYou"`
}
