package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) logger.
// SLog ise printf tarzı loglama için sugared logger.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger uygulama logger'larını hazırlar.
// env "production" ise JSON formatında, değilse okunabilir console formatında loglar.
func InitLogger(env string) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger olmadan devam edilemez.
		os.Stderr.WriteString("logger oluşturulamadı: " + err.Error() + "\n")
		os.Exit(1)
	}
	Log = logger
	SLog = logger.Sugar()
}

// Sync bufferlanmış log kayıtlarını diske yazar. Uygulama kapanırken çağrılmalı.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func init() {
	// Testler ve erken çağrılar için varsayılan logger.
	// main içinde InitLogger ile tekrar yapılandırılır.
	if Log == nil {
		InitLogger(os.Getenv("APP_ENV"))
	}
}
