package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"echochamber/internal/auth"
	"echochamber/internal/game"
	"echochamber/internal/leaderboard"
	"echochamber/internal/models"
	"echochamber/internal/store"
	"echochamber/internal/ws"
)

// --- Configuration Constants ---
const (
	rateLimitRPS   = 5
	rateLimitBurst = 10
)

// --- Structs for request binding ---
type ActionInput struct {
	PostID int    `json:"postId" binding:"required"`
	Action string `json:"action" binding:"required,oneof=approve warn delete"`
}

type CreatePostInput struct {
	Type            string    `json:"type" binding:"required"`
	Title           string    `json:"title" binding:"required"`
	Content         string    `json:"content" binding:"required"`
	Author          string    `json:"author" binding:"required"`
	FreedomImpact   []float64 `json:"freedomImpact" binding:"required,len=3"`
	OrderImpact     []float64 `json:"orderImpact" binding:"required,len=3"`
	TrustImpact     []float64 `json:"trustImpact" binding:"required,len=3"`
	DiversityImpact []float64 `json:"diversityImpact" binding:"required,len=3"`
}

type UpdatePostInput struct {
	ID              int       `json:"id" binding:"required"`
	Title           string    `json:"title" binding:"required"`
	Content         string    `json:"content" binding:"required"`
	FreedomImpact   []float64 `json:"freedomImpact" binding:"required,len=3"`
	OrderImpact     []float64 `json:"orderImpact" binding:"required,len=3"`
	TrustImpact     []float64 `json:"trustImpact" binding:"required,len=3"`
	DiversityImpact []float64 `json:"diversityImpact" binding:"required,len=3"`
}

type DeletePostInput struct {
	ID int `json:"id" binding:"required"`
}

type CredentialsInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --- WebSocket Payloads ---

// WsMessage defines the JSON structure the frontend expects on the feed.
type WsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// --- Rate Limiter ---
type IPRateLimiter struct {
	visitors map[string]*rate.Limiter
	mu       sync.RWMutex
	rps      rate.Limit
	burst    int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*rate.Limiter),
		mu:       sync.RWMutex{},
		rps:      r,
		burst:    b,
	}
}

func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	limiter, exists := rl.visitors[ip]
	if !exists {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
		rl.visitors[ip] = limiter
	}
	return limiter
}

func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.GetLimiter(ip).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please wait."})
			return
		}
		c.Next()
	}
}

// --- Handlers ---

// Env carries the handler dependencies. The mutex serializes every
// read-modify-write of the game session so two actions cannot interleave.
type Env struct {
	Store    store.Store
	Hub      *ws.Hub
	Sessions *SessionManager
	mu       sync.Mutex
}

func (e *Env) loadState() (models.GameState, error) {
	state := models.DefaultGameState()
	_, err := e.Store.Load(store.KeyGameState, &state)
	return state, err
}

func (e *Env) loadPosts() ([]models.Post, error) {
	posts := []models.Post{}
	_, err := e.Store.Load(store.KeyPosts, &posts)
	return posts, err
}

func (e *Env) loadUsers() ([]models.User, error) {
	users := []models.User{}
	_, err := e.Store.Load(store.KeyUsers, &users)
	return users, err
}

func (e *Env) loadLeaderboard() ([]models.LeaderboardEntry, error) {
	entries := []models.LeaderboardEntry{}
	_, err := e.Store.Load(store.KeyLeaderboard, &entries)
	return entries, err
}

func (e *Env) GetGameState(c *gin.Context) {
	state, err := e.loadState()
	if err != nil {
		log.Printf("Error loading game state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game state"})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (e *Env) PostGameState(c *gin.Context) {
	var state models.GameState
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.Store.Save(store.KeyGameState, state); err != nil {
		log.Printf("Error saving game state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save game state"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": state})
}

func (e *Env) GetPosts(c *gin.Context) {
	posts, err := e.loadPosts()
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// PostAction resolves one moderation action: apply the post's impacts,
// evaluate endings, persist, and record to the leaderboard when the game
// ends. Runs under the session mutex end to end.
func (e *Env) PostAction(c *gin.Context) {
	var input ActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.loadState()
	if err != nil {
		log.Printf("Error loading game state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game state"})
		return
	}
	if state.GameStatus == models.StatusEnded {
		c.JSON(http.StatusConflict, gin.H{"error": "Game is already over. Reset to play again."})
		return
	}
	posts, err := e.loadPosts()
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	state, err = game.Resolve(state, posts, input.PostID, input.Action, time.Now())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	state = game.Evaluate(state, len(posts))

	if err := e.Store.Save(store.KeyGameState, state); err != nil {
		log.Printf("Error saving game state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save game state"})
		return
	}

	if state.GameStatus == models.StatusEnded {
		entries, err := e.loadLeaderboard()
		if err != nil {
			log.Printf("Error loading leaderboard: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update leaderboard"})
			return
		}
		entries = leaderboard.Record(entries, state, time.Now())
		if err := e.Store.Save(store.KeyLeaderboard, entries); err != nil {
			log.Printf("Error saving leaderboard: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update leaderboard"})
			return
		}
		e.broadcastMessage(WsMessage{Type: "game_over", Data: state})
	} else {
		e.broadcastMessage(WsMessage{Type: "action", Data: state})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "gameState": state})
}

func (e *Env) PostReset(c *gin.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := models.DefaultGameState()
	if err := e.Store.Save(store.KeyGameState, state); err != nil {
		log.Printf("Error resetting game state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset game"})
		return
	}

	e.broadcastMessage(WsMessage{Type: "reset", Data: state})
	c.JSON(http.StatusOK, gin.H{"success": true, "gameState": state})
}

func (e *Env) GetLeaderboard(c *gin.Context) {
	entries, err := e.loadLeaderboard()
	if err != nil {
		log.Printf("Error loading leaderboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"leaderboard": leaderboard.Top(entries, leaderboard.DefaultTop),
	})
}

// --- Post administration ---

func (e *Env) CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	posts, err := e.loadPosts()
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	post := models.Post{
		ID:              game.NextID(posts),
		Type:            strings.TrimSpace(input.Type),
		Title:           strings.TrimSpace(input.Title),
		Content:         strings.TrimSpace(input.Content),
		Author:          strings.TrimSpace(input.Author),
		FreedomImpact:   input.FreedomImpact,
		OrderImpact:     input.OrderImpact,
		TrustImpact:     input.TrustImpact,
		DiversityImpact: input.DiversityImpact,
	}
	posts = append(posts, post)
	if err := e.Store.Save(store.KeyPosts, posts); err != nil {
		log.Printf("Error saving posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	e.broadcastMessage(WsMessage{Type: "new_post", Data: post})
	c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
}

func (e *Env) UpdatePost(c *gin.Context) {
	var input UpdatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	posts, err := e.loadPosts()
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	idx := -1
	for i, p := range posts {
		if p.ID == input.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	posts[idx].Title = strings.TrimSpace(input.Title)
	posts[idx].Content = strings.TrimSpace(input.Content)
	posts[idx].FreedomImpact = input.FreedomImpact
	posts[idx].OrderImpact = input.OrderImpact
	posts[idx].TrustImpact = input.TrustImpact
	posts[idx].DiversityImpact = input.DiversityImpact

	if err := e.Store.Save(store.KeyPosts, posts); err != nil {
		log.Printf("Error saving posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	e.broadcastMessage(WsMessage{Type: "post_updated", Data: posts[idx]})
	c.JSON(http.StatusOK, gin.H{"success": true, "post": posts[idx]})
}

func (e *Env) DeletePost(c *gin.Context) {
	var input DeletePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	posts, err := e.loadPosts()
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	kept := posts[:0]
	found := false
	for _, p := range posts {
		if p.ID == input.ID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if err := e.Store.Save(store.KeyPosts, kept); err != nil {
		log.Printf("Error saving posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	e.broadcastMessage(WsMessage{Type: "post_deleted", Data: gin.H{"id": input.ID}})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Auth ---

func (e *Env) Register(c *gin.Context) {
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	username := strings.TrimSpace(input.Username)
	if len(username) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be at least 3 characters"})
		return
	}
	if len(input.Password) < 4 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 4 characters"})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	users, err := e.loadUsers()
	if err != nil {
		log.Printf("Error loading users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	for _, u := range users {
		if u.Username == username {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}
	user := models.User{
		ID:           len(users) + 1,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	users = append(users, user)
	if err := e.Store.Save(store.KeyUsers, users); err != nil {
		log.Printf("Error saving users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration complete",
		"user":    gin.H{"id": user.ID, "username": user.Username},
	})
}

func (e *Env) Login(c *gin.Context) {
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	users, err := e.loadUsers()
	if err != nil {
		log.Printf("Error loading users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	for _, u := range users {
		if u.Username == input.Username && auth.CheckPassword(u.PasswordHash, input.Password) {
			token := e.Sessions.Create(u.ID)
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "Login successful",
				"token":   token,
				"user":    gin.H{"id": u.ID, "username": u.Username},
			})
			return
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
}

func (e *Env) AuthCheck(c *gin.Context) {
	token := c.GetHeader(sessionTokenHeader)
	if token == "" {
		token = c.Query("token")
	}
	_, authenticated := e.Sessions.UserID(token)
	c.JSON(http.StatusOK, gin.H{"success": true, "authenticated": authenticated})
}

// broadcastMessage pushes one event onto the websocket feed.
func (e *Env) broadcastMessage(msg WsMessage) {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshalling WS message: %v", err)
		return
	}
	e.Hub.Broadcast <- jsonMsg
}
