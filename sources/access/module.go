package access

import (
	"relaybot/sources/quota"

	"go.uber.org/fx"
)

var Module = fx.Module("access",
	fx.Provide(
		NewAccessConfig,
		NewCatalog,
		NewRegistry,
		func(registry *Registry) quota.Limits { return registry },
		NewSweeper,
	),
	fx.Invoke(RunSweeper),
)
