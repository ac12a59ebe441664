package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OpTimeout limita lo que una operación de caché puede retrasar una petición.
const OpTimeout = 200 * time.Millisecond

// SetQuietly guarda el valor esperando como máximo OpTimeout. Un fallo sólo se registra.
func SetQuietly(ctx context.Context, cache Cache, key string, value interface{}, ttl time.Duration, log *zap.Logger) {
	if cache == nil {
		return
	}

	cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), OpTimeout)
	defer cancel()

	if err := cache.Set(cacheCtx, key, value, ttl); err != nil {
		log.Warn("⚠️ Fallo al actualizar la caché",
			zap.String("key", key),
			zap.Error(err))
	}
}

// DeleteQuietly invalida la key antes de volver, para que la siguiente lectura no vea datos viejos.
func DeleteQuietly(ctx context.Context, cache Cache, key string, log *zap.Logger) {
	if cache == nil {
		return
	}

	cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), OpTimeout)
	defer cancel()

	if err := cache.Delete(cacheCtx, key); err != nil {
		log.Warn("⚠️ Fallo al invalidar la caché",
			zap.String("key", key),
			zap.Error(err))
	}
}
