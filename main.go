package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"leeterboard-client/models"
	"leeterboard-client/services"
	"leeterboard-client/session"
	"leeterboard-client/workers"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	baseURL := os.Getenv("LEETERBOARD_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	sessionPath := os.Getenv("LEETERBOARD_SESSION_FILE")
	if sessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal("could not resolve home dir for session file:", err)
		}
		sessionPath = filepath.Join(home, ".leeterboard", "session")
	}

	interval := 30 * time.Second
	if raw := os.Getenv("LEETERBOARD_REFRESH_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("invalid LEETERBOARD_REFRESH_INTERVAL %q: %v", raw, err)
		}
		interval = parsed
	}

	store := session.NewFileStore(sessionPath)
	userID := store.Get()
	if override := os.Getenv("LEETERBOARD_USER_ID"); override != "" {
		userID = override
		if err := store.Set(userID); err != nil {
			log.Printf("Could not persist session: %v", err)
		}
	}
	if userID == "" {
		log.Fatal("no saved session; set LEETERBOARD_USER_ID to log in")
	}

	client := services.NewLeeterboardClient(baseURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	board := services.NewTournamentBoard(client, userID)
	if err := board.Load(ctx); err != nil {
		log.Printf("Tournament board load failed: %v", err)
	}
	printDashboard(board)

	room := services.NewRoomEditor(client, userID)
	if err := room.Load(ctx); err != nil {
		log.Printf("Room load failed: %v", err)
	} else {
		log.Printf("Room: %d placed, %d stashed, %d in shop",
			len(room.PlacedItems()), len(room.StashedItems()), len(room.ShopItems()))
	}

	worker := workers.NewPointsRefreshWorker(client, userID, interval, func(user *models.User) {
		board.SetPoints(user.Points)
		room.SetPoints(user.Points)
		log.Printf("Points balance: %d", user.Points)
	})
	if err := worker.Start(ctx); err != nil {
		log.Fatal("failed to start points refresh worker:", err)
	}
	defer worker.Stop()

	log.Printf("Leeterboard client running against %s", baseURL)
	<-ctx.Done()
	log.Println("Shutting down...")
}

func printDashboard(board *services.TournamentBoard) {
	best := board.BestStandings()
	if best == nil {
		log.Printf("%s is not in any tournament yet", board.Username())
		return
	}

	log.Printf("Best ladder for %s: %q (rank #%d, %s)",
		board.Username(), best.Tournament.Name, best.Rank,
		services.FormatTimeRemaining(best.Tournament.EndTime, time.Now()))
	for _, entry := range best.Entries {
		marker := " "
		if entry.IsYou {
			marker = ">"
		}
		log.Printf("%s #%d %-20s %4d pts (%d solved)",
			marker, entry.Rank, entry.Name, entry.Points, entry.SolvedSinceJoin)
	}
}
