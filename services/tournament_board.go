// services/tournament_board.go
package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"leeterboard-client/models"
)

// StreakSaveOption is a purchasable streak-save bundle shown on the board.
type StreakSaveOption struct {
	Label string
	Cost  int
	Desc  string
	Count int
}

// StreakSaveOptions are the bundles the backend prices.
var StreakSaveOptions = []StreakSaveOption{
	{Label: "single day cover", Cost: 120, Desc: "Protect 1 missed day. No streak drop.", Count: 1},
	{Label: "weekend shield (2 days)", Cost: 260, Desc: "Covers back-to-back misses.", Count: 2},
	{Label: "auto-protect pack (3 uses)", Cost: 480, Desc: "Auto-applies to your next misses.", Count: 3},
}

// BoardAPI is the slice of the backend client the tournament board needs.
type BoardAPI interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	RefreshUserPoints(ctx context.Context, userID string) (*models.User, error)
	PurchaseStreakSaves(ctx context.Context, userID string, count int) (*models.User, error)
	ListTournaments(ctx context.Context, userID string) ([]models.Tournament, error)
	CreateTournament(ctx context.Context, payload CreateTournamentPayload) (*models.Tournament, error)
	JoinTournament(ctx context.Context, payload JoinTournamentPayload) (*models.Tournament, error)
}

// TournamentBoard owns one tournaments screen's state: the viewer's tournament
// list (normalized, newest first), a points/streak-saves summary, and the
// purchase in-flight guard. Discarded on navigation away, rebuilt on return.
type TournamentBoard struct {
	mu sync.Mutex

	api    BoardAPI
	userID string

	tournaments []models.Tournament
	points      int
	username    string
	streakSaves int

	purchasingCount int
	lastError       string
}

func NewTournamentBoard(api BoardAPI, userID string) *TournamentBoard {
	return &TournamentBoard{api: api, userID: userID, username: "Player"}
}

// Load refreshes the viewer summary and fetches the viewer's tournaments.
// The summary refresh tries the points-recomputing endpoint first and falls
// back to the plain user fetch; a summary failure alone does not fail Load.
func (b *TournamentBoard) Load(ctx context.Context) error {
	if b.userID == "" {
		b.mu.Lock()
		b.tournaments = nil
		b.mu.Unlock()
		return nil
	}

	user, err := b.api.RefreshUserPoints(ctx, b.userID)
	if err != nil {
		log.Printf("Could not refresh user points: %v", err)
		user, err = b.api.GetUser(ctx, b.userID)
		if err != nil {
			log.Printf("Could not load user: %v", err)
			user = nil
		}
	}
	if user != nil {
		b.applyUser(user)
	}

	tournaments, err := b.api.ListTournaments(ctx, b.userID)
	if err != nil {
		b.setError(userMessage(err, "Could not load tournaments."))
		return err
	}

	normalized := make([]models.Tournament, 0, len(tournaments))
	for _, tournament := range tournaments {
		normalized = append(normalized, NormalizeTournament(tournament))
	}

	b.mu.Lock()
	b.tournaments = SortTournamentsByStart(normalized)
	b.lastError = ""
	b.mu.Unlock()
	return nil
}

func (b *TournamentBoard) applyUser(user *models.User) {
	b.mu.Lock()
	b.points = user.Points
	b.streakSaves = user.StreakSaves
	b.username = user.DisplayName()
	b.mu.Unlock()
}

// SetPoints pushes a fresh balance from the periodic refresh.
func (b *TournamentBoard) SetPoints(points int) {
	b.mu.Lock()
	b.points = points
	b.mu.Unlock()
}

func (b *TournamentBoard) Points() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.points
}

func (b *TournamentBoard) StreakSaves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.streakSaves
}

func (b *TournamentBoard) Username() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.username
}

func (b *TournamentBoard) LastError() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastError
}

// Tournaments returns a copy of the normalized list, newest first.
func (b *TournamentBoard) Tournaments() []models.Tournament {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Tournament, len(b.tournaments))
	copy(out, b.tournaments)
	return out
}

// Ladders derives every tournament's ranked entry list, keyed by
// TournamentKey. Computed fresh on each call.
func (b *TournamentBoard) Ladders() map[string][]models.LadderEntry {
	tournaments := b.Tournaments()
	ladders := make(map[string][]models.LadderEntry, len(tournaments))
	for _, tournament := range tournaments {
		ladders[TournamentKey(tournament)] = LadderEntries(tournament.Participants, b.userID)
	}
	return ladders
}

// BestStandings picks the tournament to feature for the viewer, if any.
func (b *TournamentBoard) BestStandings() *Standings {
	return SelectBestTournament(b.Tournaments(), b.userID)
}

// Create validates the form, creates the tournament and slots it into the
// local list (replacing any same-keyed entry).
func (b *TournamentBoard) Create(ctx context.Context, name, password string) (*models.Tournament, error) {
	if b.userID == "" {
		return nil, fmt.Errorf("log in to create a tournament")
	}
	payload := CreateTournamentPayload{
		Name:          name,
		Password:      password,
		CreatorID:     b.userID,
		DurationHours: DefaultTournamentDurationHours,
	}
	created, err := b.api.CreateTournament(ctx, payload)
	if err != nil {
		return nil, err
	}
	b.upsert(NormalizeTournament(*created))
	return created, nil
}

// Join joins a tournament by name and password and slots the updated
// tournament into the local list. The payload id is the joining user's.
func (b *TournamentBoard) Join(ctx context.Context, name, password string) (*models.Tournament, error) {
	if b.userID == "" {
		return nil, fmt.Errorf("log in to join a tournament")
	}
	payload := JoinTournamentPayload{ID: b.userID, Name: name, Password: password}
	joined, err := b.api.JoinTournament(ctx, payload)
	if err != nil {
		return nil, err
	}
	b.upsert(NormalizeTournament(*joined))
	return joined, nil
}

func (b *TournamentBoard) upsert(tournament models.Tournament) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := TournamentKey(tournament)
	kept := make([]models.Tournament, 0, len(b.tournaments)+1)
	kept = append(kept, tournament)
	for _, existing := range b.tournaments {
		if TournamentKey(existing) != key {
			kept = append(kept, existing)
		}
	}
	b.tournaments = SortTournamentsByStart(kept)
}

// PurchaseStreakSaves buys a bundle. One purchase at a time; an unaffordable
// bundle fails locally without a network call; success replaces the summary
// from the server's response.
func (b *TournamentBoard) PurchaseStreakSaves(ctx context.Context, count int) error {
	b.mu.Lock()
	if b.purchasingCount != 0 {
		b.mu.Unlock()
		return nil
	}
	if b.userID == "" {
		b.lastError = "Log in to buy streak saves."
		b.mu.Unlock()
		return fmt.Errorf("no user session")
	}
	if cost, ok := streakSaveCost(count); ok && cost > b.points {
		b.lastError = "Not enough points for that bundle yet."
		b.mu.Unlock()
		return fmt.Errorf("bundle of %d costs %d, balance is %d", count, cost, b.points)
	}
	b.purchasingCount = count
	b.mu.Unlock()

	user, err := b.api.PurchaseStreakSaves(ctx, b.userID, count)

	b.mu.Lock()
	b.purchasingCount = 0
	b.mu.Unlock()
	if err != nil {
		b.setError(userMessage(err, "Could not purchase streak saves."))
		return err
	}
	b.applyUser(user)
	b.setError("")
	return nil
}

func streakSaveCost(count int) (int, bool) {
	for _, option := range StreakSaveOptions {
		if option.Count == count {
			return option.Cost, true
		}
	}
	return 0, false
}

func (b *TournamentBoard) setError(message string) {
	b.mu.Lock()
	b.lastError = message
	b.mu.Unlock()
}
