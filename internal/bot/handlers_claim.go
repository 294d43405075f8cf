package bot

import (
	"errors"
	"fmt"
	"strings"

	"linkdrop-bot/internal/bot/constants"
	apperrors "linkdrop-bot/internal/errors"
	"linkdrop-bot/internal/metrics"

	"github.com/mymmrac/telego"
)

// handleGetLinks opens a claim session and shows the free ranges
func (b *Bot) handleGetLinks(chatID int64, userID int64) {
	_, ranges, err := b.engine.BeginClaim(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoneAvailable) {
			b.sendMessage(chatID, "😔 Свободных ссылок нет. Загляните позже.")
			return
		}
		b.logger.Errorf("Failed to begin claim for %d: %v", userID, err)
		b.sendMessage(chatID, "⚠️ Временная ошибка, попробуйте позже.")
		return
	}

	b.setUserState(chatID, constants.StateAwaitingSelection)

	msg := fmt.Sprintf(
		"📋 Свободные номера: %s\n\n"+
			"Введите номер (<code>7</code>) или диапазон (<code>3-6</code>):",
		ranges,
	)
	b.sendMessage(chatID, msg)
}

// handleSelectionInput resolves the claimant's number selection
func (b *Bot) handleSelectionInput(chatID int64, userID int64, from *telego.User, text string) {
	outcome, err := b.engine.SubmitSelection(userID, text)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMalformedInput):
			// Session stays open, let the claimant retry
			metrics.ClaimsMalformed.Inc()
			b.sendMessage(chatID, "❌ Не понял. Введите номер (<code>7</code>) или диапазон (<code>3-6</code>):")
		case errors.Is(err, apperrors.ErrNoneAvailable):
			metrics.ClaimsEmpty.Inc()
			b.clearUserState(chatID)
			b.sendMessage(chatID, "😔 Эти номера уже заняты или не существуют. Нажмите «🔗 Получить ссылки» ещё раз.")
		case errors.Is(err, apperrors.ErrNotFound):
			b.clearUserState(chatID)
			b.sendMessage(chatID, "⏳ Сессия выбора истекла. Нажмите «🔗 Получить ссылки» ещё раз.")
		default:
			// Store failure keeps the session so the claimant can retry
			b.logger.Errorf("Failed to submit selection for %d: %v", userID, err)
			b.sendMessage(chatID, "⚠️ Временная ошибка, попробуйте ещё раз.")
		}
		return
	}

	b.clearUserState(chatID)
	metrics.LinksGranted.Add(float64(len(outcome.Grants)))

	var sb strings.Builder
	sb.WriteString("🎁 <b>Ваши ссылки:</b>\n\n")
	for _, g := range outcome.Grants {
		sb.WriteString(fmt.Sprintf("№%d: %s\n", g.Number, g.URL))
	}
	sb.WriteString(fmt.Sprintf("\n🔑 Код выдачи: <code>%s</code>", outcome.IssueCode))
	b.sendMessage(chatID, sb.String())

	b.notifyAdmins(fmt.Sprintf(
		"✅ Выдача для %s (ID: %d)\n"+
			"🔢 Номеров: %d\n"+
			"🔑 Код: <code>%s</code>\n"+
			"📋 Осталось: %s",
		displayName(from.Username, from.FirstName), userID,
		len(outcome.Grants), outcome.IssueCode, outcome.Remaining,
	))
}
