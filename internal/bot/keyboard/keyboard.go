package keyboard

import (
	"fmt"

	"linkdrop-bot/internal/bot/constants"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// BuildMainKeyboard creates the claimant keyboard
func BuildMainKeyboard() *telego.ReplyKeyboardMarkup {
	return tu.Keyboard(
		tu.KeyboardRow(
			tu.KeyboardButton(constants.BtnGetLinks),
			tu.KeyboardButton(constants.BtnMyCode),
		),
		tu.KeyboardRow(
			tu.KeyboardButton(constants.BtnTrainerReport),
			tu.KeyboardButton(constants.BtnSupport),
		),
	).WithResizeKeyboard().WithIsPersistent()
}

// BuildAdminKeyboard creates the admin keyboard
func BuildAdminKeyboard() *telego.ReplyKeyboardMarkup {
	return tu.Keyboard(
		tu.KeyboardRow(
			tu.KeyboardButton(constants.BtnAddLinks),
			tu.KeyboardButton(constants.BtnClearLinks),
		),
		tu.KeyboardRow(
			tu.KeyboardButton(constants.BtnFreeNumbers),
			tu.KeyboardButton(constants.BtnAddTrainer),
		),
		tu.KeyboardRow(
			tu.KeyboardButton(constants.BtnMainMenu),
		),
	).WithResizeKeyboard().WithIsPersistent()
}

// BuildClearConfirmKeyboard creates the confirmation keyboard for wiping
// the link pool
func BuildClearConfirmKeyboard() *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("🗑 Да, удалить всё").WithCallbackData(constants.CbClearConfirm),
			tu.InlineKeyboardButton("❌ Отмена").WithCallbackData(constants.CbClearCancel),
		),
	)
}

// BuildReplyKeyboard creates the inline reply button attached to relayed
// support messages
func BuildReplyKeyboard(userID int64) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("💬 Ответить").
				WithCallbackData(fmt.Sprintf("%s%d", constants.CbReplyPrefix, userID)),
		),
	)
}
