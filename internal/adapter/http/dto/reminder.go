package dto

// ReminderStateItem tells a front end which tasks are currently due and
// whether the shared alert loop should be audible.
type ReminderStateItem struct {
	ActiveTaskIDs []string `json:"active_task_ids"`
	AlertPlaying  bool     `json:"alert_playing"`
}
