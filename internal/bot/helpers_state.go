package bot

// User state helpers backed by storage so states survive restarts

// getUserState returns the current state for a chat
func (b *Bot) getUserState(chatID int64) (string, bool) {
	state, err := b.storage.GetUserState(chatID)
	if err != nil {
		return "", false
	}
	return state, state != ""
}

// setUserState sets the state for a chat
func (b *Bot) setUserState(chatID int64, state string) {
	if err := b.storage.SetUserState(chatID, state); err != nil {
		b.logger.Errorf("Failed to set user state for %d: %v", chatID, err)
	}
}

// clearUserState removes the state for a chat
func (b *Bot) clearUserState(chatID int64) {
	if err := b.storage.DeleteUserState(chatID); err != nil {
		b.logger.Errorf("Failed to clear user state for %d: %v", chatID, err)
	}
}

// displayName builds a human readable name for notifications
func displayName(username, firstName string) string {
	if username != "" {
		return "@" + username
	}
	if firstName != "" {
		return firstName
	}
	return "без имени"
}
