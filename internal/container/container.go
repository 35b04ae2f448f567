// Package container holds the process-wide infrastructure built in main.
// router.BuildServices reads it to wire repositories and services; optional
// backends (elasticsearch, rabbitmq, metrics) stay nil when disabled.
package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/config"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	blobs       repository.BlobStorage

	jwtManager *helpers.JWTManager
	cookies    *helpers.Manager
	metrics    *middleware.Metrics

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

// SetBlobStorage picks the file backend (local disk or GCS).
func SetBlobStorage(b repository.BlobStorage) { blobs = b }
func GetBlobStorage() repository.BlobStorage  { return blobs }

func SetCookies(m *helpers.Manager)           { cookies = m }
func GetCookies() *helpers.Manager            { return cookies }
func SetMetrics(m *middleware.Metrics)        { metrics = m }
func GetMetrics() *middleware.Metrics         { return metrics }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
