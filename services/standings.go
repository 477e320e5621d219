// services/standings.go
package services

import (
	"fmt"
	"sort"
	"time"

	"leeterboard-client/models"

	"github.com/gosimple/slug"
)

// DefaultTournamentDurationHours is a week, the duration the create form uses.
const DefaultTournamentDurationHours = 24 * 7

// Standings is the viewer-centric ladder view of one tournament: the full
// ranked entry list plus the viewer's own rank. Derived fresh from a
// Tournament on every use, never persisted.
type Standings struct {
	Tournament models.Tournament
	Rank       int
	Entries    []models.LadderEntry
}

// SolvedSinceJoin is how many problems a participant solved while in the
// tournament. Clamped at zero so a counter regression on the backend never
// shows up as a negative number.
func SolvedSinceJoin(p models.TournamentParticipant) int {
	solved := p.CurrentTotalSolved - p.InitialTotalSolved
	if solved < 0 {
		return 0
	}
	return solved
}

// sortParticipants orders by score descending. Ties break on solved-since-join
// descending, then name ascending, so equal scores rank the same way on every
// client regardless of the backend's array order.
func sortParticipants(participants []models.TournamentParticipant) []models.TournamentParticipant {
	sorted := make([]models.TournamentParticipant, len(participants))
	copy(sorted, participants)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		si, sj := SolvedSinceJoin(sorted[i]), SolvedSinceJoin(sorted[j])
		if si != sj {
			return si > sj
		}
		return sorted[i].DisplayName() < sorted[j].DisplayName()
	})
	return sorted
}

// LadderEntries sorts a participant set and maps it to ranked ladder rows.
// Every ladder render goes through here.
func LadderEntries(participants []models.TournamentParticipant, viewerID string) []models.LadderEntry {
	sorted := sortParticipants(participants)
	entries := make([]models.LadderEntry, 0, len(sorted))
	for i, participant := range sorted {
		entries = append(entries, models.LadderEntry{
			Rank:            i + 1,
			Name:            participant.DisplayName(),
			LcUsername:      participant.LcUsername,
			SolvedSinceJoin: SolvedSinceJoin(participant),
			Points:          participant.Score,
			IsYou:           viewerID != "" && participant.ID == viewerID,
		})
	}
	return entries
}

// RankParticipants builds the ladder for one tournament from the viewer's
// perspective. Returns nil when the viewer is not a participant; absence is
// not an error.
func RankParticipants(tournament models.Tournament, viewerID string) *Standings {
	entries := LadderEntries(tournament.Participants, viewerID)
	for _, entry := range entries {
		if entry.IsYou {
			return &Standings{Tournament: tournament, Rank: entry.Rank, Entries: entries}
		}
	}
	return nil
}

// SelectBestTournament picks the single tournament to feature on the
// dashboard: the one where the viewer ranks best. Rank ties go to the
// tournament that started first; a tournament without a parseable start time
// never beats one with one. Nil when the viewer participates nowhere.
func SelectBestTournament(tournaments []models.Tournament, viewerID string) *Standings {
	var best *Standings
	var bestStart time.Time
	var bestStartOK bool

	for _, tournament := range tournaments {
		standings := RankParticipants(tournament, viewerID)
		if standings == nil {
			continue
		}
		start, startOK := ParseEventTime(tournament.StartTime)

		switch {
		case best == nil:
		case standings.Rank < best.Rank:
		case standings.Rank > best.Rank:
			continue
		case startOK && !bestStartOK:
		case startOK && bestStartOK && start.Before(bestStart):
		default:
			continue
		}
		best = standings
		bestStart, bestStartOK = start, startOK
	}
	return best
}

// NormalizeTournament fills display defaults and pre-sorts the participant
// list the way every screen wants it.
func NormalizeTournament(tournament models.Tournament) models.Tournament {
	tournament.Participants = sortParticipants(tournament.Participants)
	return tournament
}

// SortTournamentsByStart orders newest first. Unparseable start times sink to
// the end; relative order among them is preserved.
func SortTournamentsByStart(tournaments []models.Tournament) []models.Tournament {
	sorted := make([]models.Tournament, len(tournaments))
	copy(sorted, tournaments)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, oki := ParseEventTime(sorted[i].StartTime)
		tj, okj := ParseEventTime(sorted[j].StartTime)
		if oki != okj {
			return oki
		}
		return ti.After(tj)
	})
	return sorted
}

// TournamentKey identifies a tournament in local maps: backend id when
// present, else a slug of the name so "Byte Surge Cup" and odd casing still
// collapse to one stable key.
func TournamentKey(tournament models.Tournament) string {
	if tournament.MongoID != "" {
		return tournament.MongoID
	}
	if tournament.ID != "" {
		return tournament.ID
	}
	return slug.Make(tournament.Name)
}

// eventTimeLayouts covers the timestamp shapes the backend has been seen to
// emit (RFC3339 with and without fraction or zone).
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseEventTime parses a tournament timestamp. ok is false for missing or
// unparseable values.
func ParseEventTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimeRemaining renders how long a tournament has left, relative to now.
// Missing or unparseable end times read as "active".
func FormatTimeRemaining(endTime string, now time.Time) string {
	end, ok := ParseEventTime(endTime)
	if !ok {
		return "active"
	}
	diff := end.Sub(now)
	if diff <= 0 {
		return "ended"
	}

	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24
	minutes := int(diff.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh left", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm left", hours, minutes)
	}
	return fmt.Sprintf("%dm left", minutes)
}
