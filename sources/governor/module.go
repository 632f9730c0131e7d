package governor

import "go.uber.org/fx"

var Module = fx.Module("governor",
	fx.Provide(
		NewGovernorConfig,
		NewGovernor,
		NewAdminConsole,
	),
)
