package public

import "github.com/luckyplay-next/internal/provider"

// Handler 玩家侧/公开接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建玩家侧处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
