package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/base/database/mongoclient"
	"github.com/niftyx/goapi/base/database/redisclient"
	"github.com/niftyx/goapi/base/log"
	"github.com/niftyx/goapi/base/metrics"
	bValidator "github.com/niftyx/goapi/base/validator"
	"github.com/niftyx/goapi/domain"
	mmiddleware "github.com/niftyx/goapi/middleware"
	"github.com/niftyx/goapi/service/cache"
	"github.com/niftyx/goapi/service/cache/provider"
	"github.com/niftyx/goapi/service/cache/provider/compound"
	"github.com/niftyx/goapi/service/cache/provider/primitive"
	redisCacheProvider "github.com/niftyx/goapi/service/cache/provider/redis"
	"github.com/niftyx/goapi/service/payment"
	"github.com/niftyx/goapi/service/query"
	"github.com/niftyx/goapi/service/redis"
	"github.com/niftyx/goapi/service/registry"
	auth_middleware "github.com/niftyx/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/niftyx/goapi/stores/auth/usecase"
	hc_delivery "github.com/niftyx/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/niftyx/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/niftyx/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/niftyx/goapi/stores/listing/delivery/http"
	listing_repository "github.com/niftyx/goapi/stores/listing/repository"
	listing_usecase "github.com/niftyx/goapi/stores/listing/usecase"
	marketplace_delivery "github.com/niftyx/goapi/stores/marketplace/delivery/http"
	marketplace_repository "github.com/niftyx/goapi/stores/marketplace/repository"
	marketplace_usecase "github.com/niftyx/goapi/stores/marketplace/usecase"

	"github.com/niftyx/goapi/domain/keys"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	// the hot active-listing read goes through freecache backed by redis
	listingCache := cache.New(cache.ServiceConfig{
		Ttl: time.Minute,
		Pfx: keys.PfxActiveListing,
		Cache: compound.NewCompound([]provider.Provider{
			primitive.NewPrimitive(keys.PfxActiveListing, 64),
			redisCacheProvider.NewRedis(redisCache),
		}),
	})

	// outbound clients
	httpTimeout := viper.GetDuration("http.timeout")
	registryClient := registry.NewClient(&registry.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		Endpoint:   viper.GetString("registry.endpoint"),
		Apikey:     viper.GetString("registry.apikey"),
	})
	paymentClient := payment.NewClient(&payment.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		Endpoint:   viper.GetString("payment.endpoint"),
		Apikey:     viper.GetString("payment.apikey"),
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	listingRepo := listing_repository.NewListing(q)
	eventRepo := listing_repository.NewEvent(q)
	settingsRepo := marketplace_repository.NewSettings(q)
	escrowRepo := marketplace_repository.NewEscrow(q)

	hc := hc_usecase.New(hcRepo)

	marketplaceOwner := domain.Address(viper.GetString("marketplace.owner"))
	defaultFeeBps := uint64(viper.GetInt64("marketplace.feeBps"))
	if err := settingsRepo.EnsureDefault(context, marketplaceOwner, defaultFeeBps); err != nil {
		context.WithField("err", err).Panic("ensure default marketplace settings failed")
	}

	engine := listing_usecase.New(&listing_usecase.EngineCfg{
		ListingRepo:  listingRepo,
		EventRepo:    eventRepo,
		SettingsRepo: settingsRepo,
		EscrowRepo:   escrowRepo,
		Query:        q,
		Registry:     registryClient,
		Payment:      paymentClient,
		Operator:     domain.Address(viper.GetString("registry.operator")),
		Cache:        listingCache,
	})
	marketplaceUC := marketplace_usecase.New(&marketplace_usecase.MarketplaceUseCaseCfg{
		SettingsRepo: settingsRepo,
		EscrowRepo:   escrowRepo,
		Payment:      paymentClient,
	})

	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	adminAddresses := viper.GetStringSlice("admin.addresses")
	authMiddleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	listing_delivery.New(e, engine, authMiddleware)
	marketplace_delivery.New(e, marketplaceUC, authMiddleware)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
