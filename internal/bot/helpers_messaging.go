package bot

import (
	"context"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// Telegram messaging helpers
// These methods provide convenient wrappers for sending and editing messages

// sendMessage sends a text message
func (b *Bot) sendMessage(chatID int64, text string) {
	_, err := b.bot.SendMessage(context.Background(), &telego.SendMessageParams{
		ChatID:    tu.ID(chatID),
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		b.logger.Errorf("Failed to send message to %d: %v", chatID, err)
	}
}

// sendMessageWithKeyboard sends a message with keyboard
func (b *Bot) sendMessageWithKeyboard(chatID int64, text string, keyboard *telego.ReplyKeyboardMarkup) {
	_, err := b.bot.SendMessage(context.Background(), &telego.SendMessageParams{
		ChatID:      tu.ID(chatID),
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: keyboard,
	})
	if err != nil {
		b.logger.Errorf("Failed to send message with keyboard to %d: %v", chatID, err)
	}
}

// sendMessageWithInlineKeyboard sends a message with inline keyboard
func (b *Bot) sendMessageWithInlineKeyboard(chatID int64, text string, keyboard *telego.InlineKeyboardMarkup) {
	_, err := b.bot.SendMessage(context.Background(), &telego.SendMessageParams{
		ChatID:      tu.ID(chatID),
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: keyboard,
	})
	if err != nil {
		b.logger.Errorf("Failed to send message with inline keyboard to %d: %v", chatID, err)
	}
}

// editMessage edits an existing message
func (b *Bot) editMessage(chatID int64, messageID int, text string, keyboard *telego.InlineKeyboardMarkup) {
	_, err := b.bot.EditMessageText(context.Background(), &telego.EditMessageTextParams{
		ChatID:      tu.ID(chatID),
		MessageID:   messageID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: keyboard,
	})
	if err != nil {
		b.logger.Errorf("Failed to edit message %d in chat %d: %v", messageID, chatID, err)
	}
}

// sendPhoto sends a photo by Telegram file ID
func (b *Bot) sendPhoto(chatID int64, fileID string, caption string) error {
	_, err := b.bot.SendPhoto(context.Background(), &telego.SendPhotoParams{
		ChatID:  tu.ID(chatID),
		Photo:   tu.FileFromID(fileID),
		Caption: caption,
	})
	return err
}

// answerCallback answers a callback query, optionally with a toast text
func (b *Bot) answerCallback(queryID string, text string) {
	if err := b.bot.AnswerCallbackQuery(context.Background(), &telego.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
	}); err != nil {
		b.logger.Errorf("Failed to answer callback query: %v", err)
	}
}

// notifyAdmins sends a message to every configured admin
func (b *Bot) notifyAdmins(text string) {
	for _, adminID := range b.config.Telegram.AdminIDs {
		b.sendMessage(adminID, text)
	}
}

// notifyAdminsWithInlineKeyboard sends a message with inline keyboard to every admin
func (b *Bot) notifyAdminsWithInlineKeyboard(text string, keyboard *telego.InlineKeyboardMarkup) {
	for _, adminID := range b.config.Telegram.AdminIDs {
		b.sendMessageWithInlineKeyboard(adminID, text, keyboard)
	}
}
