package bot

import (
	"fmt"

	"linkdrop-bot/internal/bot/keyboard"
	"linkdrop-bot/internal/links"

	"github.com/mymmrac/telego"
)

// handleStart greets the user and ensures they have a permanent code
func (b *Bot) handleStart(chatID int64, from *telego.User, isAdmin bool) {
	name := displayName(from.Username, from.FirstName)

	claimant, err := b.storage.GetOrCreateClaimant(from.ID, name, links.NewClaimantCode())
	if err != nil {
		b.logger.Errorf("Failed to get or create claimant %d: %v", from.ID, err)
		b.sendMessage(chatID, "⚠️ Временная ошибка, попробуйте позже.")
		return
	}

	msg := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Я выдаю нумерованные ссылки из общего пула.\n"+
			"🔑 Твой личный код: <code>%s</code>\n\n"+
			"Нажми «🔗 Получить ссылки», чтобы выбрать номера.",
		from.FirstName, claimant.Code,
	)

	if isAdmin {
		b.sendMessageWithKeyboard(chatID, msg, keyboard.BuildAdminKeyboard())
		return
	}
	b.sendMessageWithKeyboard(chatID, msg, keyboard.BuildMainKeyboard())
}

// handleHelp shows the help message
func (b *Bot) handleHelp(chatID int64, isAdmin bool) {
	msg := "ℹ️ <b>Справка</b>\n\n" +
		"🔗 Получить ссылки — выбрать свободные номера и получить ссылки\n" +
		"🔑 Мой код — показать ваш личный код\n" +
		"🎓 Я обучил человека — отправить отчёт об обучении\n" +
		"✉️ Создать обращение — написать администратору\n\n" +
		"Номера вводятся одним числом (<code>7</code>) или диапазоном (<code>3-6</code>)."

	if isAdmin {
		msg += "\n\n<b>Админ:</b>\n" +
			"➕ Добавить ссылки — загрузить список вида <code>№10: https://...</code>\n" +
			"📊 Свободные номера — состояние пула\n" +
			"🗑 Очистить ссылки — удалить пул и историю выдач\n" +
			"➕ Добавить обучающего — разрешить отчёты об обучении\n" +
			"📷 Фото с кодом в подписи уходит владельцу кода"
	}

	b.sendMessage(chatID, msg)
}

// handleID shows the user's Telegram ID
func (b *Bot) handleID(chatID int64, userID int64) {
	b.sendMessage(chatID, fmt.Sprintf("🆔 Ваш Telegram ID: <code>%d</code>", userID))
}

// handleCode shows the user's permanent code
func (b *Bot) handleCode(chatID int64, userID int64) {
	claimant, err := b.storage.GetOrCreateClaimant(userID, "", links.NewClaimantCode())
	if err != nil {
		b.logger.Errorf("Failed to load claimant %d: %v", userID, err)
		b.sendMessage(chatID, "⚠️ Временная ошибка, попробуйте позже.")
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("🔑 Ваш личный код: <code>%s</code>", claimant.Code))
}

// handleAdminMenu shows the admin keyboard
func (b *Bot) handleAdminMenu(chatID int64) {
	b.sendMessageWithKeyboard(chatID, "🛠 Админ-меню:", keyboard.BuildAdminKeyboard())
}
