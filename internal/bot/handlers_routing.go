package bot

import (
	"strconv"
	"strings"

	"linkdrop-bot/internal/bot/constants"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
)

// handleCommand handles incoming commands
func (b *Bot) handleCommand(ctx *th.Context, message telego.Message) error {
	defer b.recovery.Recover()

	chatID := message.Chat.ID
	userID := message.From.ID
	isAdmin := b.authMiddleware.IsAdmin(userID)

	command, _, _ := tu.ParseCommand(message.Text)

	b.logger.Infof("Command /%s from user ID: %d", command, userID)

	// Check rate limit (admins bypass automatically)
	if !isAdmin {
		if err := b.rateLimiter.Check(userID); err != nil {
			b.logger.Warnf("Rate limit exceeded for user ID: %d", userID)
			return nil // Silently ignore
		}
	}

	switch command {
	case constants.CmdStart:
		b.handleStart(chatID, message.From, isAdmin)
	case constants.CmdHelp:
		b.handleHelp(chatID, isAdmin)
	case constants.CmdID:
		b.handleID(chatID, userID)
	case constants.CmdCode:
		b.handleCode(chatID, userID)
	case constants.CmdAdmin:
		if isAdmin {
			b.handleAdminMenu(chatID)
		} else {
			b.sendMessage(chatID, "⛔ У вас нет прав")
		}
	default:
		b.sendMessage(chatID, "❌ Неизвестная команда. Используйте /help для справки.")
	}

	return nil
}

// handleTextMessage handles text messages from keyboard buttons
func (b *Bot) handleTextMessage(ctx *th.Context, message telego.Message) error {
	defer b.recovery.Recover()

	// Photos from admins carry delivery codes in the caption
	if message.Photo != nil {
		return b.handleMediaMessage(ctx, message)
	}

	// Skip if it's a command
	if strings.HasPrefix(message.Text, "/") {
		return nil
	}

	chatID := message.Chat.ID
	userID := message.From.ID
	isAdmin := b.authMiddleware.IsAdmin(userID)

	b.logger.Infof("Text message: '%s' by user ID: %d", message.Text, userID)

	// Check rate limit (admins bypass automatically)
	if !isAdmin {
		if err := b.rateLimiter.Check(userID); err != nil {
			b.logger.Warnf("Rate limit exceeded for user ID: %d", userID)
			return nil
		}
	}

	// Check message length (max 4000 chars, admin uploads can be long)
	if len(message.Text) > 4000 {
		b.sendMessage(chatID, "❌ Сообщение слишком длинное.")
		return nil
	}

	// Main menu button drops any in-progress dialog
	if message.Text == constants.BtnMainMenu {
		b.clearUserState(chatID)
		b.engine.CancelClaim(userID)
		b.handleStart(chatID, message.From, isAdmin)
		return nil
	}

	// Route by dialog state first
	if state, exists := b.getUserState(chatID); exists {
		switch state {
		case constants.StateAwaitingSelection:
			b.handleSelectionInput(chatID, userID, message.From, message.Text)
			return nil
		case constants.StateAwaitingLinksUpload:
			if isAdmin {
				b.handleLinksUpload(chatID, message.Text)
				return nil
			}
		case constants.StateAwaitingTrainerID:
			if isAdmin {
				b.handleTrainerIDInput(chatID, message.Text)
				return nil
			}
		case constants.StateAwaitingSupportMsg:
			b.handleSupportMessage(chatID, userID, message.From, message.Text)
			return nil
		case constants.StateAwaitingAdminReply:
			if isAdmin {
				b.handleAdminReplyInput(chatID, message.Text)
				return nil
			}
		case constants.StateAwaitingTrainerReport:
			b.handleTrainerReportInput(chatID, userID, message.From, message.Text)
			return nil
		}
		b.clearUserState(chatID)
	}

	switch message.Text {
	case constants.BtnGetLinks:
		b.handleGetLinks(chatID, userID)
	case constants.BtnMyCode:
		b.handleCode(chatID, userID)
	case constants.BtnTrainerReport:
		b.handleTrainerReportStart(chatID, userID)
	case constants.BtnSupport:
		b.handleSupportStart(chatID)
	case constants.BtnAddLinks:
		if isAdmin {
			b.handleAddLinksStart(chatID)
		}
	case constants.BtnClearLinks:
		if isAdmin {
			b.handleClearLinksRequest(chatID)
		}
	case constants.BtnFreeNumbers:
		if isAdmin {
			b.handleFreeNumbers(chatID)
		}
	case constants.BtnAddTrainer:
		if isAdmin {
			b.handleAddTrainerStart(chatID)
		}
	}

	return nil
}

// handleMediaMessage handles photo messages; only admin photos with a code
// caption are meaningful
func (b *Bot) handleMediaMessage(_ *th.Context, message telego.Message) error {
	chatID := message.Chat.ID
	userID := message.From.ID

	if !b.authMiddleware.IsAdmin(userID) {
		if err := b.rateLimiter.Check(userID); err != nil {
			return nil
		}
		b.sendMessage(chatID, "❌ Я понимаю только текстовые сообщения. Используйте кнопки меню.")
		return nil
	}

	b.handleDeliveryPhoto(chatID, &message)
	return nil
}

// handleCallback handles callback queries
func (b *Bot) handleCallback(ctx *th.Context, query telego.CallbackQuery) error {
	defer b.recovery.Recover()

	data := query.Data
	userID := query.From.ID
	chatID := query.Message.GetChat().ID
	messageID := query.Message.GetMessageID()

	b.logger.Infof("Callback from user %d: %s", userID, data)

	if !b.authMiddleware.IsAdmin(userID) {
		b.answerCallback(query.ID, "⛔ У вас нет прав")
		return nil
	}

	switch {
	case data == constants.CbClearConfirm:
		b.handleClearConfirm(chatID, messageID, query.ID)
	case data == constants.CbClearCancel:
		b.editMessage(chatID, messageID, "❌ Очистка отменена.", nil)
		b.answerCallback(query.ID, "")
	case strings.HasPrefix(data, constants.CbReplyPrefix):
		targetID, err := strconv.ParseInt(strings.TrimPrefix(data, constants.CbReplyPrefix), 10, 64)
		if err != nil {
			b.answerCallback(query.ID, "❌ Некорректные данные")
			return nil
		}
		b.handleAdminReplyStart(chatID, targetID)
		b.answerCallback(query.ID, "")
	default:
		b.answerCallback(query.ID, "")
	}

	return nil
}
