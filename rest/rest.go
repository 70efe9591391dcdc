package rest

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"pokerduel.com/server/game"
	"pokerduel.com/server/logging"
	"pokerduel.com/server/player"
)

var restLogger = logging.GetZeroLogger("rest::rest", nil)

var (
	gameManager  *game.GameManager
	registry     *player.Registry
	availability *player.Availability
	invites      *player.Invites
)

// Burst absorbs a flurry of chat-relayed commands without letting a broken
// client hammer the engine.
var apiLimiter = rate.NewLimiter(rate.Limit(50), 100)

//
// APP error definition
//
type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RunRestServer wires the player-facing operation surface and blocks serving.
func RunRestServer(port int, manager *game.GameManager, reg *player.Registry, avail *player.Availability, inv *player.Invites) error {
	gameManager = manager
	registry = reg
	availability = avail
	invites = inv

	r := gin.Default()
	r.Use(rateLimit)

	r.POST("/register-player", registerPlayer)
	r.POST("/new-game", newGame)
	r.POST("/place-bet", placeBet)
	r.POST("/discard-draw", discardDraw)
	r.GET("/game-status", gameStatus)
	r.GET("/my-hand", myHand)
	r.POST("/toggle-availability", toggleAvailability)
	r.POST("/set-schedule", setSchedule)
	r.POST("/accept-invite", acceptInvite)
	r.GET("/health", health)
	r.GET("/server-info", serverInfo)

	return r.Run(fmt.Sprintf(":%d", port))
}

func rateLimit(c *gin.Context) {
	if !apiLimiter.Allow() {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, appError{
			Code:    http.StatusTooManyRequests,
			Message: "Too many requests",
		})
	}
}

func abortWithError(c *gin.Context, err error) {
	code := errorStatus(err)
	c.IndentedJSON(code, appError{
		Code:    code,
		Message: err.Error(),
	})
	c.Error(err)
}

// errorStatus maps the engine's error taxonomy to transport codes. Turn and
// phase rejections are conflicts the client resolves by refreshing, not
// server failures.
func errorStatus(err error) int {
	switch {
	case isAny(err, game.ErrGameNotFound, player.ErrNoPendingInvite):
		return http.StatusNotFound
	case isAny(err, game.ErrNotPlayersTurn, game.ErrInvalidPhase):
		return http.StatusConflict
	case game.IsCorruptedState(err):
		return http.StatusInternalServerError
	case isAny(err,
		game.ErrInvalidPlayerCount, game.ErrPlayerNotInGame, game.ErrInvalidAction,
		game.ErrInvalidIndex, game.ErrTooManyDiscards, game.ErrBelowMinimum,
		game.ErrInsufficientChips,
		player.ErrInvalidPhone, player.ErrMissingField, player.ErrNotRegistered,
		player.ErrInvalidSchedule, player.ErrPlayerUnavailable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func registerPlayer(c *gin.Context) {
	type Payload struct {
		Phone string `json:"phone"`
		Name  string `json:"name"`
	}
	var payload Payload
	if err := c.BindJSON(&payload); err != nil {
		restLogger.Error().Msgf("Failed to parse register-player payload. Error: %v", err)
		abortWithError(c, err)
		return
	}
	if err := registry.Register(c.Request.Context(), payload.Phone, payload.Name); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Player registered: %s (%s)", payload.Name, payload.Phone),
		"phone":   payload.Phone,
		"name":    payload.Name,
	})
}

func newGame(c *gin.Context) {
	type Payload struct {
		Players []string `json:"players"`
	}
	var payload Payload
	if err := c.BindJSON(&payload); err != nil {
		restLogger.Error().Msgf("Failed to parse new-game payload. Error: %v", err)
		abortWithError(c, err)
		return
	}
	if len(payload.Players) != 2 {
		abortWithError(c, game.ErrInvalidPlayerCount)
		return
	}

	ctx := c.Request.Context()
	var players [2]game.PlayerInfo
	for i, identifier := range payload.Players {
		phone := registry.PhoneOf(ctx, identifier)
		if !registry.IsRegistered(ctx, phone) {
			abortWithError(c, fmt.Errorf("player '%s' not registered. Use /register-player first: %w", identifier, player.ErrNotRegistered))
			return
		}
		players[i] = game.PlayerInfo{ID: phone, Name: registry.NameOf(ctx, phone)}
	}
	for _, p := range players {
		if !availability.IsAvailable(ctx, p.ID, time.Now()) {
			abortWithError(c, fmt.Errorf("%s (%s): %w", p.Name, p.ID, player.ErrPlayerUnavailable))
			return
		}
	}

	state, next, err := gameManager.StartMatch(players)
	if err != nil {
		abortWithError(c, err)
		return
	}

	inviteTTL := gameManager.GameConfig().InviteTTL()
	for _, p := range players {
		if err := invites.CreatePending(ctx, state.GameCode, p.ID, inviteTTL); err != nil {
			// Invites are best effort; the match is already live.
			restLogger.Warn().
				Str(logging.GameCodeKey, state.GameCode).
				Msgf("Unable to create pending invite for %s: %v", p.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"gameId":        state.GameCode,
		"players":       []string{players[0].Name, players[1].Name},
		"chips":         gin.H{players[0].Name: state.Seats[0].Stack, players[1].Name: state.Seats[1].Stack},
		"phase":         state.Phase.String(),
		"currentPlayer": next.Name,
		"message": fmt.Sprintf("Duel started! Cards sent via DM. %s, bet first (min %d): bet/call/raise/fold.",
			next.Name, gameManager.GameConfig().MinBet),
	})
}

func placeBet(c *gin.Context) {
	type Payload struct {
		GameID string `json:"gameId"`
		Player string `json:"player"`
		Action string `json:"action"`
		Amount int32  `json:"amount"`
	}
	var payload Payload
	if err := c.BindJSON(&payload); err != nil {
		restLogger.Error().Msgf("Failed to parse place-bet payload. Error: %v", err)
		abortWithError(c, err)
		return
	}
	phone := registry.PhoneOf(c.Request.Context(), payload.Player)
	outcome, err := gameManager.PlaceBet(payload.GameID, phone, game.PlayerAction(payload.Action), payload.Amount)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func discardDraw(c *gin.Context) {
	type Payload struct {
		GameID  string `json:"gameId"`
		Player  string `json:"player"`
		Indices []int  `json:"indices"`
	}
	var payload Payload
	if err := c.BindJSON(&payload); err != nil {
		restLogger.Error().Msgf("Failed to parse discard-draw payload. Error: %v", err)
		abortWithError(c, err)
		return
	}
	phone := registry.PhoneOf(c.Request.Context(), payload.Player)
	outcome, err := gameManager.DiscardDraw(payload.GameID, phone, payload.Indices)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func gameStatus(c *gin.Context) {
	gameID := c.Query("game-id")
	playerParam := c.Query("player")
	if gameID == "" || playerParam == "" {
		c.String(http.StatusBadRequest, "game-id and player query params are required")
		return
	}
	phone := registry.PhoneOf(c.Request.Context(), playerParam)
	status, err := gameManager.Status(gameID, phone)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func myHand(c *gin.Context) {
	gameID := c.Query("game-id")
	playerParam := c.Query("player")
	if gameID == "" || playerParam == "" {
		c.String(http.StatusBadRequest, "game-id and player query params are required")
		return
	}
	phone := registry.PhoneOf(c.Request.Context(), playerParam)
	view, err := gameManager.HandFor(gameID, phone)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func toggleAvailability(c *gin.Context) {
	type Payload struct {
		Phone string `json:"phone"`
	}
	var payload Payload
	if err := c.BindJSON(&payload); err != nil {
		abortWithError(c, err)
		return
	}
	available, err := availability.Toggle(c.Request.Context(), payload.Phone)
	if err != nil {
		abortWithError(c, err)
		return
	}
	state := "disabled"
	if available {
		state = "enabled"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("Availability %s.", state),
		"available": available,
	})
}

func setSchedule(c *gin.Context) {
	type Payload struct {
		Phone    string `json:"phone"`
		Schedule string `json:"schedule"`
	}
	var payload Payload
	if err := c.BindJSON(&payload); err != nil {
		abortWithError(c, err)
		return
	}
	schedule, err := availability.SetSchedule(c.Request.Context(), payload.Phone, payload.Schedule)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Schedule set: %s", payload.Schedule),
		"schedule": schedule,
	})
}

func acceptInvite(c *gin.Context) {
	type Payload struct {
		GameID string `json:"gameId"`
		Phone  string `json:"phone"`
	}
	var payload Payload
	if err := c.BindJSON(&payload); err != nil {
		abortWithError(c, err)
		return
	}
	if err := invites.Accept(c.Request.Context(), payload.GameID, payload.Phone); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Joined game %s! Cards incoming.", payload.GameID),
		"gameId":  payload.GameID,
	})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"server": "poker-duel-server",
	})
}

func serverInfo(c *gin.Context) {
	config := gameManager.GameConfig()
	c.JSON(http.StatusOK, gin.H{
		"serverName":    "poker-duel-server",
		"startingChips": config.StartingChips,
		"minBet":        config.MinBet,
		"handsPerMatch": config.HandsPerMatch,
	})
}
