// Package api contains all endpoints available
package api

import (
	"cloudreel/media-api/cloudinary"
	"cloudreel/media-api/db"
	"cloudreel/media-api/middleware"
	"fmt"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Media  cloudinary.Transformer
}

func NewRouter() (*API, error) {
	a := &API{}

	d, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = d

	media, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media client, %w", err)
	}
	a.Media = media

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	a.registerRoutes()

	return a, nil
}

// registerRoutes is the single place access policy lives. Routes
// registered without the jwt middleware are public, everything else
// resolves a principal before the handler runs
func (a *API) registerRoutes() {
	jwt := middleware.NewJWTMiddleware()
	maxUploadSize := viper.GetInt64("upload.max_size")

	rateLimit := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: viper.GetInt("upload.rate_limit"),
		Burst:             viper.GetInt("upload.rate_burst"),
	})

	main := a.Router.Group("/api")
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)
	}

	videos := main.Group("/videos")
	{
		// GET /api/videos		-> Returns all videos, newest first. Public
		videos.GET("", cacheFor(10), a.VideoFetchBulk)

		// GET /api/videos/:videoId	-> Returns one video with derived stats and rendition URLs
		videos.GET("/:videoId", jwt, a.VideoFetch)
	}

	// POST /api/video-upload		-> Uploads a video and stores its metadata
	main.POST("/video-upload", jwt, rateLimit, middleware.BodySizeLimiter(maxUploadSize+1<<20), a.VideoUpload)

	// DELETE /api/delete-video/:videoId	-> Deletes a video record and its remote asset
	main.DELETE("/delete-video/:videoId", jwt, a.VideoDelete)

	// POST /api/image-upload		-> Uploads an image, nothing is persisted
	main.POST("/image-upload", jwt, rateLimit, middleware.BodySizeLimiter(maxUploadSize+1<<20), a.ImageUpload)

	// POST /api/image-compress		-> Uploads an image with quality/format negotiation
	main.POST("/image-compress", jwt, rateLimit, middleware.BodySizeLimiter(maxUploadSize+1<<20), a.ImageCompress)

	// GET /api/image-render		-> Derived URL for an alternative image rendering
	main.GET("/image-render", jwt, a.ImageRender)

	// GET /api/social-formats		-> Lists the social-media crop presets. Public
	main.GET("/social-formats", cacheFor(60), a.SocialFormats)

	// GET /api/social-image		-> Derived URL for a social-media crop
	main.GET("/social-image", jwt, a.SocialImage)
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
