package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/sector_radar/app/display/internal/conf"
	"github.com/iWorld-y/sector_radar/app/display/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.RadarService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)

	// JSON 接口
	r := srv.Route("/api/v1")
	r.POST("/search", s.Search)
	r.GET("/state", s.State)
	r.GET("/export", s.Export)
	r.GET("/history", s.History)
	r.GET("/history/{id}", s.GetRun)

	// 服务端渲染的页面
	srv.HandleFunc("/search", s.SubmitForm)
	srv.HandleFunc("/", s.Page)

	log.NewHelper(logger).Info("sector radar http routes registered")
	return srv
}
