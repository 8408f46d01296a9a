package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/store"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

// records is the read side of the record store.
type records interface {
	LoadHighScore() int
	LoadAchievements() []int
}

// highScoreResponse is the body of GET /api/highscore.
type highScoreResponse struct {
	HighScore    int   `json:"highscore"`
	Achievements []int `json:"achievements"`
}

func main() {
	logger := config.NewLogger(os.Stderr, "web")
	if err := run(logger); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

func run(logger *log.Logger) error {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	st := store.NewFileStore(config.DataDir(), logger.WithPrefix("store"))

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newRouter(st, sshHost, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("starting web server", "addr", "http://"+srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-done:
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// newRouter serves the landing page and the high score API.
func newRouter(st records, sshHost string, logger *log.Logger) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", handleIndex(sshHost)).Methods(http.MethodGet)
	r.HandleFunc("/api/highscore", handleHighScore(st, logger)).Methods(http.MethodGet)
	return r
}

func handleIndex(sshHost string) http.HandlerFunc {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}
}

func handleHighScore(st records, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := highScoreResponse{
			HighScore:    st.LoadHighScore(),
			Achievements: st.LoadAchievements(),
		}
		if resp.Achievements == nil {
			resp.Achievements = []int{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode high score", "err", err)
			http.Error(w, "Failed to encode high score", http.StatusInternalServerError)
			return
		}
	}
}
