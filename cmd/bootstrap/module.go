package bootstrap

import (
	"coworking-backend/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	PolicyModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
