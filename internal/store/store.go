// Package store persists the high score and unlocked achievements as flat files.
//
// Reads never fail: missing or malformed data loads as zero / empty. Writes are
// atomic (temp file + rename) and serialized, so several game sessions in one
// process can share a FileStore.
package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// File names inside the data directory.
const (
	HighScoreFile         = "highscore.json"
	AchievementFile       = "achievements.csv"
	LegacyAchievementFile = "achievments.csv" // Misspelled name written by old installs
)

// highScoreRecord is the on-disk high score format.
type highScoreRecord struct {
	HighScore int `json:"highscore"`
}

// FileStore keeps records in a directory.
type FileStore struct {
	dir    string
	logger *log.Logger

	mu           sync.Mutex
	best         int              // Highest score seen; never written lower
	achievements map[int]struct{} // Union of everything seen
}

// NewFileStore creates a store rooted at dir. The directory is created on the
// first write. A nil logger discards log output.
func NewFileStore(dir string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FileStore{
		dir:          dir,
		logger:       logger,
		achievements: make(map[int]struct{}),
	}
}

// Dir returns the data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// LoadHighScore returns the stored high score, or 0 if there is none.
func (s *FileStore) LoadHighScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	score := s.readHighScore()
	if score > s.best {
		s.best = score
	}
	return s.best
}

// SaveHighScore writes score unless a higher score is already known.
func (s *FileStore) SaveHighScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if onDisk := s.readHighScore(); onDisk > s.best {
		s.best = onDisk
	}
	if score < s.best {
		score = s.best
	}

	data, err := json.Marshal(highScoreRecord{HighScore: score})
	if err != nil {
		return fmt.Errorf("failed to encode high score: %w", err)
	}
	if err := s.writeFile(HighScoreFile, data); err != nil {
		return err
	}
	s.best = score
	return nil
}

// LoadAchievements returns the unlocked thresholds in ascending order.
// The preferred file wins over the legacy one when both exist.
func (s *FileStore) LoadAchievements() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.readAchievements() {
		s.achievements[t] = struct{}{}
	}
	return sortedSet(s.achievements)
}

// SaveAchievements writes the union of thresholds and everything already
// unlocked to both achievement files.
func (s *FileStore) SaveAchievements(thresholds []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.readAchievements() {
		s.achievements[t] = struct{}{}
	}
	for _, t := range thresholds {
		s.achievements[t] = struct{}{}
	}

	var buf bytes.Buffer
	for _, t := range sortedSet(s.achievements) {
		fmt.Fprintf(&buf, "%d\n", t)
	}

	// Both names are rewritten so old installs keep seeing the data.
	var errs []error
	for _, name := range []string{AchievementFile, LegacyAchievementFile} {
		if err := s.writeFile(name, buf.Bytes()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// readHighScore parses the high score file. Caller holds mu.
func (s *FileStore) readHighScore() int {
	data, err := os.ReadFile(s.path(HighScoreFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read high score", "path", s.path(HighScoreFile), "err", err)
		}
		return 0
	}

	var rec highScoreRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("ignoring malformed high score", "path", s.path(HighScoreFile), "err", err)
		return 0
	}
	if rec.HighScore < 0 {
		return 0
	}
	return rec.HighScore
}

// readAchievements reads the preferred achievement file, falling back to the
// legacy name. Caller holds mu.
func (s *FileStore) readAchievements() []int {
	for _, name := range []string{AchievementFile, LegacyAchievementFile} {
		f, err := os.Open(s.path(name))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("failed to open achievements", "path", s.path(name), "err", err)
				return nil
			}
			continue
		}
		defer f.Close()
		return s.parseAchievements(f, name)
	}
	return nil
}

// parseAchievements reads one threshold per line, skipping anything that is
// not a non-negative integer.
func (s *FileStore) parseAchievements(r io.Reader, name string) []int {
	var out []int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || strings.HasPrefix(line, "+") {
			s.logger.Debug("skipping achievement line", "file", name, "line", line)
			continue
		}
		out = append(out, n)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn("failed to read achievements", "file", name, "err", err)
	}
	return out
}

// writeFile atomically replaces name with data.
func (s *FileStore) writeFile(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("failed to chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func sortedSet(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
