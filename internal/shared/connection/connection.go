package connection

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const retryDelay = 5 * time.Second

type PostgresConfig struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode,
	)
}

// GormConfig leaves driver errors untranslated so Postgres failures keep
// their *pgconn.PgError and the violated constraint name.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}

func ConnectGORMWithRetry(cfg PostgresConfig, maxRetries int, logger *zap.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("connection.postgres")

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig())
		if err != nil {
			lastErr = err
			log.Warn("gorm open failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		sqlDB, err := db.DB()
		if err != nil {
			lastErr = err
			log.Warn("get sql.DB failed", zap.Int("attempt", i), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		if err := sqlDB.Ping(); err != nil {
			lastErr = err
			log.Warn("db ping failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)

		log.Info("connected to database", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
		return db, nil
	}

	return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, lastErr)
}

func ConnectRedisWithRetry(addr string, maxRetries int, logger *zap.Logger) (*redis.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("connection.redis")

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		lastErr = rdb.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			log.Info("connected to redis", zap.String("addr", addr))
			return rdb, nil
		}

		log.Warn("redis ping failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(lastErr))
		time.Sleep(retryDelay)
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("failed to connect redis at %s: %w", addr, lastErr)
}

// ConnectKafkaWithRetry waits until the broker accepts connections and makes
// sure topic exists. The returned writer is bound to topic.
func ConnectKafkaWithRetry(ctx context.Context, broker, topic string, maxRetries uint64, logger *zap.Logger) (*kafka.Writer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("connection.kafka")

	op := func() error {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			log.Warn("kafka dial failed", zap.String("broker", broker), zap.Error(err))
			return err
		}
		defer conn.Close()

		return ensureTopic(conn, topic)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, fmt.Errorf("kafka broker %s unavailable: %w", broker, err)
	}

	log.Info("connected to kafka", zap.String("broker", broker), zap.String("topic", topic))
	return &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}, nil
}

func ensureTopic(conn *kafka.Conn, topic string) error {
	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	ctrl, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer ctrl.Close()

	return ctrl.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	})
}
