package redis

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-automation-api/internal/config"
)

const pingTimeout = 5 * time.Second

// Connection agrupa o cliente Redis e o locker distribuído construído sobre ele
type Connection struct {
	Client *goredis.Client
	Locker *redislock.Client
}

// NewConnection retorna nil sem erro quando nenhum endereço foi configurado
func NewConnection(ctx context.Context, cfg config.Redis) (*Connection, error) {
	if cfg.Address == "" {
		logrus.Info("REDIS_ADDRESS não configurado, lock distribuído desabilitado")
		return nil, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "erro ao conectar ao Redis em %s", cfg.Address)
	}

	logrus.WithField("address", cfg.Address).Info("Conexão com Redis estabelecida com sucesso")

	return &Connection{
		Client: client,
		Locker: redislock.New(client),
	}, nil
}

func (c *Connection) Close() error {
	if c == nil {
		return nil
	}
	return c.Client.Close()
}

// LockerOrNil permite passar o locker adiante mesmo quando o Redis está desabilitado
func (c *Connection) LockerOrNil() *redislock.Client {
	if c == nil {
		return nil
	}
	return c.Locker
}
