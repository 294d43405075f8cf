package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"linkdrop-bot/internal/bot/constants"
	"linkdrop-bot/internal/bot/keyboard"
	apperrors "linkdrop-bot/internal/errors"
	"linkdrop-bot/internal/links"
	"linkdrop-bot/internal/metrics"

	"github.com/mymmrac/telego"
)

// handleAddLinksStart asks the admin for the upload list
func (b *Bot) handleAddLinksStart(chatID int64) {
	b.setUserState(chatID, constants.StateAwaitingLinksUpload)
	b.sendMessage(chatID,
		"📥 Пришлите список ссылок, по одной на строку:\n\n"+
			"<code>№10: https://example.com/a</code>\n"+
			"<code>№11: https://example.com/b</code>")
}

// handleLinksUpload parses and applies an admin upload
func (b *Bot) handleLinksUpload(chatID int64, text string) {
	entries := links.ParseUploadList(text)
	if len(entries) == 0 {
		b.sendMessage(chatID, "❌ Не найдено ни одной строки формата <code>№10: https://...</code>. Попробуйте ещё раз.")
		return
	}

	count, err := b.engine.UploadResources(entries)
	if err != nil {
		b.logger.Errorf("Failed to upload links: %v", err)
		b.sendMessage(chatID, "⚠️ Не удалось сохранить ссылки, попробуйте ещё раз.")
		return
	}

	b.clearUserState(chatID)
	metrics.LinksUploaded.Add(float64(count))
	b.sendMessageWithKeyboard(chatID,
		fmt.Sprintf("✅ Добавлено ссылок: %d", count),
		keyboard.BuildAdminKeyboard())
}

// handleClearLinksRequest asks for confirmation before wiping the pool
func (b *Bot) handleClearLinksRequest(chatID int64) {
	b.sendMessageWithInlineKeyboard(chatID,
		"❗ Удалить <b>все</b> ссылки и историю выдач?",
		keyboard.BuildClearConfirmKeyboard())
}

// handleClearConfirm wipes the pool and the issue ledger
func (b *Bot) handleClearConfirm(chatID int64, messageID int, queryID string) {
	if err := b.engine.ClearAll(); err != nil {
		b.logger.Errorf("Failed to clear links: %v", err)
		b.answerCallback(queryID, "❌ Ошибка очистки")
		return
	}
	b.editMessage(chatID, messageID, "🗑 Все ссылки и история выдач удалены.", nil)
	b.answerCallback(queryID, "✅ Готово")
}

// handleFreeNumbers shows pool state
func (b *Bot) handleFreeNumbers(chatID int64) {
	ranges, total, free, err := b.engine.FreeRanges()
	if err != nil {
		b.logger.Errorf("Failed to get free numbers: %v", err)
		b.sendMessage(chatID, "⚠️ Не удалось получить состояние пула.")
		return
	}

	b.sendMessage(chatID, fmt.Sprintf(
		"📊 <b>Состояние пула</b>\n\n"+
			"Всего: %d\nСвободно: %d\nВыдано: %d\n\n"+
			"📋 Свободные номера: %s",
		total, free, total-free, ranges,
	))
}

// handleAddTrainerStart asks for the trainer's Telegram ID
func (b *Bot) handleAddTrainerStart(chatID int64) {
	b.setUserState(chatID, constants.StateAwaitingTrainerID)
	b.sendMessage(chatID, "👤 Введите Telegram ID обучающего (узнать свой ID можно командой /id):")
}

// handleTrainerIDInput adds a trainer by ID
func (b *Bot) handleTrainerIDInput(chatID int64, text string) {
	trainerID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || trainerID <= 0 {
		b.sendMessage(chatID, "❌ Нужен числовой Telegram ID. Попробуйте ещё раз:")
		return
	}

	if err := b.storage.AddTrainer(trainerID); err != nil {
		b.logger.Errorf("Failed to add trainer %d: %v", trainerID, err)
		b.sendMessage(chatID, "⚠️ Не удалось сохранить, попробуйте ещё раз.")
		return
	}

	b.clearUserState(chatID)
	b.sendMessageWithKeyboard(chatID,
		fmt.Sprintf("✅ Обучающий <code>%d</code> добавлен.", trainerID),
		keyboard.BuildAdminKeyboard())
}

// handleDeliveryPhoto forwards an admin photo to the owner of the code in
// the caption. Permanent claimant codes win over issue codes.
func (b *Bot) handleDeliveryPhoto(chatID int64, message *telego.Message) {
	caption := strings.TrimSpace(message.Caption)
	if caption == "" {
		b.sendMessage(chatID, "❌ Добавьте код получателя в подпись к фото.")
		return
	}

	targetID, err := b.engine.FindClaimantByCode(caption)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrMalformedInput) {
			metrics.DeliveriesNotFound.Inc()
			b.sendMessage(chatID, fmt.Sprintf("❓ Код <code>%s</code> не найден.", caption))
			return
		}
		b.logger.Errorf("Failed to resolve delivery code %q: %v", caption, err)
		b.sendMessage(chatID, "⚠️ Временная ошибка, попробуйте ещё раз.")
		return
	}

	// Largest photo size is last
	photo := message.Photo[len(message.Photo)-1]
	if err := b.sendPhoto(targetID, photo.FileID, ""); err != nil {
		b.logger.Errorf("Failed to deliver photo to %d: %v", targetID, err)
		b.sendMessage(chatID, "❌ Не удалось отправить фото (возможно, пользователь заблокировал бота).")
		return
	}

	metrics.DeliveriesSent.Inc()
	b.sendMessage(chatID, fmt.Sprintf("✅ Фото отправлено владельцу кода <code>%s</code>.", caption))
}
