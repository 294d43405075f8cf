package constants

// Commands
const (
	CmdStart = "start"
	CmdHelp  = "help"
	CmdID    = "id"
	CmdCode  = "code"
	CmdAdmin = "admin"
)

// Callback Data
const (
	CbClearConfirm = "clear_confirm"
	CbClearCancel  = "clear_cancel"
	CbReplyPrefix  = "reply_"
)

// User States
const (
	StateAwaitingSelection     = "awaiting_selection"
	StateAwaitingLinksUpload   = "awaiting_links_upload"
	StateAwaitingTrainerID     = "awaiting_trainer_id"
	StateAwaitingSupportMsg    = "awaiting_support_message"
	StateAwaitingAdminReply    = "awaiting_admin_reply"
	StateAwaitingTrainerReport = "awaiting_trainer_report"
)

// Button Texts
const (
	BtnGetLinks      = "🔗 Получить ссылки"
	BtnTrainerReport = "🎓 Я обучил человека"
	BtnSupport       = "✉️ Создать обращение"
	BtnMyCode        = "🔑 Мой код"
	BtnMainMenu      = "🏠 Главное меню"

	BtnAddLinks    = "➕ Добавить ссылки"
	BtnClearLinks  = "🗑 Очистить ссылки"
	BtnFreeNumbers = "📊 Свободные номера"
	BtnAddTrainer  = "➕ Добавить обучающего"
)
