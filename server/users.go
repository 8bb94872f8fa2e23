package server

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const sessionTimeout = 1 * time.Hour

// User is a registered account. Only the bcrypt hash is persisted.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// Session is a live login token.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// UserManager owns accounts and sessions, persisting accounts as JSON
// under the data directory.
type UserManager struct {
	file     string
	users    map[string]*User
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewUserManager creates a manager persisting to users.json under dir.
func NewUserManager(dir string) *UserManager {
	return &UserManager{
		file:     filepath.Join(dir, "users.json"),
		users:    make(map[string]*User),
		sessions: make(map[string]*Session),
	}
}

// Register creates a new account. Reserved usernames are rejected.
func (um *UserManager) Register(username, password string) error {
	um.mu.Lock()
	defer um.mu.Unlock()

	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return errors.New("username required")
	}
	if strings.EqualFold(trimmed, "system") || strings.EqualFold(trimmed, "admin") {
		return errors.New("reserved username")
	}
	if _, exists := um.users[username]; exists {
		return errors.New("user already exists")
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	um.users[username] = &User{Username: username, PasswordHash: hashed}
	um.saveLocked()
	return nil
}

// Login verifies credentials and returns a session token.
func (um *UserManager) Login(username, password string) (string, error) {
	um.mu.RLock()
	user, exists := um.users[username]
	um.mu.RUnlock()

	if !exists || !checkPassword(user.PasswordHash, password) {
		return "", errors.New("invalid credentials")
	}

	token, err := generateToken()
	if err != nil {
		return "", errors.New("failed to generate session token")
	}

	um.mu.Lock()
	um.sessions[token] = &Session{
		Token:     token,
		Username:  username,
		ExpiresAt: time.Now().Add(sessionTimeout),
	}
	um.cleanupExpiredLocked()
	um.mu.Unlock()

	return token, nil
}

// ValidateToken returns the username for a live token.
func (um *UserManager) ValidateToken(token string) (string, error) {
	um.mu.RLock()
	session, exists := um.sessions[token]
	um.mu.RUnlock()

	if !exists {
		return "", errors.New("invalid token")
	}
	if time.Now().After(session.ExpiresAt) {
		um.mu.Lock()
		delete(um.sessions, token)
		um.mu.Unlock()
		return "", errors.New("session expired")
	}
	return session.Username, nil
}

// Logout drops a session token.
func (um *UserManager) Logout(token string) {
	um.mu.Lock()
	defer um.mu.Unlock()
	delete(um.sessions, token)
}

// Exists reports whether a username is registered.
func (um *UserManager) Exists(username string) bool {
	um.mu.RLock()
	defer um.mu.RUnlock()
	_, ok := um.users[username]
	return ok
}

func (um *UserManager) cleanupExpiredLocked() {
	now := time.Now()
	for token, session := range um.sessions {
		if now.After(session.ExpiresAt) {
			delete(um.sessions, token)
		}
	}
}

// generateToken creates a secure random token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Load reads accounts from disk; a missing file means a fresh start.
func (um *UserManager) Load() {
	um.mu.Lock()
	defer um.mu.Unlock()

	data, err := os.ReadFile(um.file)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("open users file", "error", err)
		}
		return
	}
	var loaded map[string]*User
	if err := json.Unmarshal(data, &loaded); err != nil {
		slog.Error("decode users file", "error", err)
		return
	}
	um.users = loaded
	slog.Info("users loaded", "count", len(um.users))
}

func (um *UserManager) saveLocked() {
	if err := os.MkdirAll(filepath.Dir(um.file), 0o755); err != nil {
		slog.Error("create data dir", "error", err)
		return
	}
	file, err := os.Create(um.file)
	if err != nil {
		slog.Error("save users", "error", err)
		return
	}
	defer file.Close()
	if err := json.NewEncoder(file).Encode(um.users); err != nil {
		slog.Error("encode users", "error", err)
	}
}
