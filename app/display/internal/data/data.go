package data

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/config"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/engine"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/storage"
)

// Data 数据层资源，未配置数据库时 store 为 nil
type Data struct {
	store *storage.Storage
}

// NewData 按配置连接归档数据库。连接失败时降级为不归档，服务照常启动。
func NewData(c *config.Config, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	if c.DB.Host == "" {
		helper.Info("no database configured, archive disabled")
		return &Data{}, func() {}, nil
	}

	store, err := storage.NewStorage(c.DB)
	if err != nil {
		helper.Errorf("failed to connect archive database: %v", err)
		return &Data{}, func() {}, nil
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		store.Close()
	}
	return &Data{store: store}, cleanup, nil
}

// Archive 返回引擎使用的归档接口，没有数据库时为 nil
func (d *Data) Archive() engine.Archive {
	if d.store == nil {
		return nil
	}
	return d.store
}
