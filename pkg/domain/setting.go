package domain

// setting keys read by the notification dispatcher
const (
	SettingSMTPHost     = "smtp_host"
	SettingSMTPPort     = "smtp_port"
	SettingSMTPUsername = "smtp_username"
	SettingSMTPPassword = "smtp_password"
	SettingSMTPFrom     = "smtp_from"
	SettingSMTPTLS      = "smtp_tls"
	SettingSiteName     = "site_name"
)
