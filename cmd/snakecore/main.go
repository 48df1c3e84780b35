// Command snakecore runs a Battlesnake HTTP agent: it answers the four
// webhooks a game engine calls (info, start, move, end), picking moves
// via the search package and reporting game outcomes through notify.
// Grounded on the teacher's main.go.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brensch/snakecore/cloudlog"
	"github.com/brensch/snakecore/config"
	"github.com/brensch/snakecore/engine"
	"github.com/brensch/snakecore/notify"
	"github.com/brensch/snakecore/render"
	"github.com/brensch/snakecore/search"
)

type server struct {
	cfg     *config.Config
	discord notify.Discord

	mu    sync.Mutex
	ids   map[string]map[string]engine.AgentID // gameID -> external id -> AgentID
	modes map[string]engine.Mode
}

func main() {
	handler := cloudlog.New(os.Stdout, slog.LevelInfo)
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load(os.Getenv("SNAKECORE_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	secrets := notify.Secrets{}
	discordURL, err := secrets.Resolve(context.Background(), cfg.Notify.DiscordWebhookSecret)
	if err != nil {
		slog.Warn("failed to resolve discord webhook secret, notifications will log instead", "error", err)
	}

	s := &server{
		cfg:     cfg,
		discord: notify.Discord{WebhookURL: discordURL},
		ids:     make(map[string]map[string]engine.AgentID),
		modes:   make(map[string]engine.Mode),
	}

	s.discord.Send("snakecore starting up")

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/start", s.handleStart)
	mux.HandleFunc("/move", s.handleMove)
	mux.HandleFunc("/end", s.handleEnd)

	port := cfg.Port
	if v := os.Getenv("PORT"); v != "" {
		port = v
	}
	slog.Info("starting snakecore", "port", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"apiversion": "1",
		"author":     "snakecore",
		"color":      "#888888",
		"head":       "default",
		"tail":       "default",
		"version":    "0.1.0",
	})
}

func modeForRuleset(name string) engine.Mode {
	if strings.EqualFold(name, "wrapped") {
		return engine.ModeWrapped
	}
	return engine.ModeStandard
}

func (s *server) handleStart(w http.ResponseWriter, r *http.Request) {
	var snap engine.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode := modeForRuleset(snap.Game.Ruleset.Name)
	_, ids, err := engine.FromSnapshot(snap, mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.ids[snap.Game.ID] = ids
	s.modes[snap.Game.ID] = mode
	s.mu.Unlock()

	var opponents []string
	for _, sn := range snap.Board.Snakes {
		if sn.ID == snap.You.ID {
			continue
		}
		opponents = append(opponents, sn.Name)
	}
	s.discord.Send(fmt.Sprintf("Game %s started against %s", snap.Game.ID, strings.Join(opponents, ",")))

	writeJSON(w, map[string]string{})
}

func (s *server) handleMove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	// Tags this search run in logs even across the async reportGameEnd
	// goroutine, which has no other correlation id of its own to reuse.
	requestID := uuid.New().String()

	var snap engine.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	mode, ok := s.modes[snap.Game.ID]
	s.mu.Unlock()
	if !ok {
		mode = modeForRuleset(snap.Game.Ruleset.Name)
	}

	board, ids, err := engine.FromSnapshot(snap, mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	me := ids[snap.You.ID]

	budget := s.cfg.Search.MoveBudgetDuration()
	if snap.Game.Timeout > 0 {
		safety := time.Duration(snap.Game.Timeout-100) * time.Millisecond
		if safety > 0 && safety < budget {
			budget = safety
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	workers := s.cfg.Search.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	direction, err := search.FindBestMove(ctx, board, mode, me, workers, search.SlogTelemetry{Logger: slog.Default()})
	if err != nil {
		slog.Error("search failed, falling back to Up", "error", err, "game_id", snap.Game.ID)
		direction = engine.Up
	}

	writeJSON(w, map[string]string{
		"move":  direction.String(),
		"shout": "calculated.",
	})

	slog.Info("move processed",
		"request_id", requestID,
		"game_id", snap.Game.ID,
		"move", direction.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (s *server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var snap engine.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	delete(s.ids, snap.Game.ID)
	delete(s.modes, snap.Game.ID)
	s.mu.Unlock()

	slog.Info("game ended", "game_id", snap.Game.ID, "turn", snap.Turn)

	go s.reportGameEnd(snap)

	writeJSON(w, map[string]string{})
}

// reportGameEnd replays the finished game over its websocket event
// stream, posts a summary with an attached replay GIF to Discord, and
// uploads the GIF to Cloud Storage. Grounded on handleEnd's
// collectGameFrames/renderGameToGIF tail, run asynchronously so the
// /end response isn't held up by the network round trips.
func (s *server) reportGameEnd(snap engine.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	wsURL := fmt.Sprintf("wss://engine.battlesnake.com/games/%s/events", snap.Game.ID)
	frames, winner, err := render.CollectFrames(ctx, wsURL)
	if err != nil {
		slog.Error("failed to collect game frames", "error", err, "game_id", snap.Game.ID)
		s.discord.Send(fmt.Sprintf("Game %s finished on turn %d.", snap.Game.ID, snap.Turn))
		return
	}

	won := winner == snap.You.Name
	gif, err := render.GameGIF(frames, won)
	if err != nil {
		slog.Error("failed to render replay gif", "error", err, "game_id", snap.Game.ID)
	}

	message := fmt.Sprintf("Game %s finished on turn %d. Winner: %s.\nhttps://play.battlesnake.com/game/%s",
		snap.Game.ID, snap.Turn, winner, snap.Game.ID)

	var embeds []notify.Embed
	if gif != nil && s.cfg.Notify.ReplayBucket != "" {
		uploader := notify.Uploader{BucketName: s.cfg.Notify.ReplayBucket}
		objectName, uploadErr := uploader.Upload(ctx, snap.Game.ID, bytes.NewReader(gif))
		if uploadErr != nil {
			slog.Error("failed to upload replay", "error", uploadErr, "game_id", snap.Game.ID)
		} else {
			embeds = append(embeds, notify.Embed{
				Title: "Replay",
				URL:   fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.cfg.Notify.ReplayBucket, objectName),
			})
		}
	}

	if err := s.discord.Send(message, embeds...); err != nil {
		slog.Error("failed to send discord notification", "error", err, "game_id", snap.Game.ID)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
