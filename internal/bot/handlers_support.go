package bot

import (
	"fmt"

	"linkdrop-bot/internal/bot/constants"
	"linkdrop-bot/internal/bot/keyboard"

	"github.com/mymmrac/telego"
)

// handleSupportStart asks the user for their message to the admins
func (b *Bot) handleSupportStart(chatID int64) {
	b.setUserState(chatID, constants.StateAwaitingSupportMsg)
	b.sendMessage(chatID, "✉️ Напишите ваше сообщение, я передам его администратору:")
}

// handleSupportMessage relays a user message to all admins with a reply button
func (b *Bot) handleSupportMessage(chatID int64, userID int64, from *telego.User, text string) {
	b.clearUserState(chatID)

	b.notifyAdminsWithInlineKeyboard(
		fmt.Sprintf("✉️ Обращение от %s (ID: <code>%d</code>):\n\n%s",
			displayName(from.Username, from.FirstName), userID, text),
		keyboard.BuildReplyKeyboard(userID),
	)

	b.sendMessage(chatID, "✅ Сообщение отправлено. Администратор ответит вам здесь.")
}

// handleAdminReplyStart arms the reply dialog for an admin
func (b *Bot) handleAdminReplyStart(adminChatID int64, targetID int64) {
	b.setReplyTarget(adminChatID, targetID)
	b.setUserState(adminChatID, constants.StateAwaitingAdminReply)
	b.sendMessage(adminChatID, fmt.Sprintf("💬 Введите ответ пользователю (ID: <code>%d</code>):", targetID))
}

// handleAdminReplyInput sends the admin's reply to the stored target
func (b *Bot) handleAdminReplyInput(adminChatID int64, text string) {
	b.clearUserState(adminChatID)

	targetID, ok := b.takeReplyTarget(adminChatID)
	if !ok {
		b.sendMessage(adminChatID, "❌ Не выбран получатель. Нажмите «💬 Ответить» под обращением.")
		return
	}

	b.sendMessage(targetID, fmt.Sprintf("📬 Ответ администратора:\n\n%s", text))
	b.sendMessage(adminChatID, "✅ Ответ отправлен.")
}

// handleTrainerReportStart checks the trainer list before opening the report dialog
func (b *Bot) handleTrainerReportStart(chatID int64, userID int64) {
	isTrainer, err := b.storage.IsTrainer(userID)
	if err != nil {
		b.logger.Errorf("Failed to check trainer %d: %v", userID, err)
		b.sendMessage(chatID, "⚠️ Временная ошибка, попробуйте позже.")
		return
	}
	if !isTrainer {
		b.sendMessage(chatID, "⛔ Вы не в списке обучающих. Обратитесь к администратору.")
		return
	}

	b.setUserState(chatID, constants.StateAwaitingTrainerReport)
	b.sendMessage(chatID, "🎓 Напишите, кого вы обучили (имя или @username):")
}

// handleTrainerReportInput forwards the training report to the admins
func (b *Bot) handleTrainerReportInput(chatID int64, userID int64, from *telego.User, text string) {
	b.clearUserState(chatID)

	b.notifyAdmins(fmt.Sprintf(
		"🎓 Отчёт об обучении от %s (ID: <code>%d</code>):\n\n%s",
		displayName(from.Username, from.FirstName), userID, text,
	))

	b.sendMessage(chatID, "✅ Отчёт принят, спасибо!")
}
