package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"linkdrop-bot/internal/bot/middleware"
	"linkdrop-bot/internal/config"
	"linkdrop-bot/internal/links"
	"linkdrop-bot/internal/logger"
	"linkdrop-bot/internal/storage"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

const (
	sessionCleanupInterval = 10 * time.Minute
	sessionMaxAge          = 30 * time.Minute
)

// Bot represents the Telegram bot
type Bot struct {
	config         *config.Config
	storage        storage.Storage
	engine         *links.Engine
	bot            *telego.Bot
	handler        *th.BotHandler
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	recovery       *middleware.Recovery
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	isRunning      bool

	// reply targets for admins answering support messages, keyed by admin chat ID
	replyTargets map[int64]int64
	replyMu      sync.Mutex
}

// NewBot creates a new Bot instance
func NewBot(cfg *config.Config, store storage.Storage, engine *links.Engine, log *logger.Logger) (*Bot, error) {
	tgBot, err := telego.NewBot(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Bot{
		config:         cfg,
		storage:        store,
		engine:         engine,
		bot:            tgBot,
		logger:         log,
		authMiddleware: middleware.NewAuthMiddleware(cfg),
		rateLimiter:    middleware.NewRateLimiter(cfg.RateLimit.MaxRequestsPerMinute, cfg.RateLimit.WindowSeconds),
		recovery:       middleware.NewRecovery(log),
		replyTargets:   make(map[int64]int64),
	}, nil
}

// Start starts the bot
func (b *Bot) Start() error {
	err := b.bot.SetMyCommands(context.Background(), &telego.SetMyCommandsParams{
		Commands: []telego.BotCommand{
			{Command: "start", Description: "Запустить бота"},
			{Command: "help", Description: "Справка"},
			{Command: "id", Description: "Узнать свой Telegram ID"},
			{Command: "code", Description: "Показать свой код"},
		},
	})
	if err != nil {
		b.logger.Warnf("Failed to set bot commands: %v", err)
	}

	if !b.isRunning {
		go b.receiveMessages()
		b.isRunning = true
	}

	return nil
}

// Stop stops the bot
func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
		b.wg.Wait()
	}
	if b.handler != nil {
		b.handler.Stop()
	}
	b.isRunning = false
}

// receiveMessages starts receiving and handling messages
func (b *Bot) receiveMessages() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	updates, _ := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: 30,
	})

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		handler, _ := th.NewBotHandler(b.bot, updates)
		b.handler = handler

		// Handle commands
		handler.HandleMessage(b.handleCommand, th.AnyCommand())

		// Handle text messages (keyboard buttons)
		handler.HandleMessage(b.handleTextMessage, th.AnyMessage())

		// Handle callback queries
		handler.HandleCallbackQuery(b.handleCallback, th.AnyCallbackQueryWithMessage())

		handler.Start()
	}()

	b.wg.Add(1)
	go b.runSessionCleanup(ctx)
}

// runSessionCleanup periodically drops abandoned claim sessions and
// stale rate limit entries
func (b *Bot) runSessionCleanup(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.storage.CleanupExpiredSessions(sessionMaxAge); err != nil {
				b.logger.Errorf("Failed to cleanup claim sessions: %v", err)
			}
			b.rateLimiter.Cleanup()
		}
	}
}

func (b *Bot) setReplyTarget(adminChatID, userID int64) {
	b.replyMu.Lock()
	defer b.replyMu.Unlock()
	b.replyTargets[adminChatID] = userID
}

func (b *Bot) takeReplyTarget(adminChatID int64) (int64, bool) {
	b.replyMu.Lock()
	defer b.replyMu.Unlock()
	userID, ok := b.replyTargets[adminChatID]
	delete(b.replyTargets, adminChatID)
	return userID, ok
}
