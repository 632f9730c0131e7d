package telegram

type BanCmd struct {
	UserID int64    `arg:"" name:"user_id" help:"Telegram id of the user to ban"`
	Reason []string `arg:"" optional:"" help:"Reason shown to the user"`
}

type UnbanCmd struct {
	UserID int64 `arg:"" name:"user_id" help:"Telegram id of the user to unban"`
}

type GivePremiumCmd struct {
	UserID  int64  `arg:"" name:"user_id" help:"Telegram id of the user"`
	Package string `arg:"" name:"package" help:"Package name from the catalog"`
}

type RevokeCmd struct {
	UserID int64 `arg:"" name:"user_id" help:"Telegram id of the user"`
}

type StatusCmd struct {
	UserID int64 `arg:"" name:"user_id" help:"Telegram id of the user"`
}

type TopCmd struct {
	Count int `arg:"" optional:"" default:"10" help:"How many users to list"`
}
