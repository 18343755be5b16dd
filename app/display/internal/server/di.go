package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/sector_radar/app/display/internal/data"
	"github.com/iWorld-y/sector_radar/app/display/internal/service"
	"github.com/iWorld-y/sector_radar/app/display/internal/usecase"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/engine"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/state"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Engine providers
	NewRadarConfig,
	NewRadarEngine,
	wire.Bind(new(usecase.Runner), new(*engine.Engine)),
	state.NewStore,

	// Data providers
	data.NewData,
	data.NewHistoryRepo,

	// UseCase providers
	NewAnalysisUseCase,

	// Service providers
	service.NewRadarService,
)
