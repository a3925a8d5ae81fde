package public

import (
	handlershared "github.com/luckyplay-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getPlayerID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "player_id", "error.player_id_invalid", "error.player_id_type_invalid")
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}
