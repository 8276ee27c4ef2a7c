package view

// SettingsPage feeds the account settings template (profile, password, theme).
type SettingsPage struct {
	Username    string
	Email       string
	Theme       string
	FieldErrors map[string]string
}

type LoginForm struct {
	Username string
}
