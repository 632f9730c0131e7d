package entities

const (
	SanctionBan   = "ban"
	SanctionUnban = "unban"
)
