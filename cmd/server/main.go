package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/database"
	"kartvizit.link/routes"
	"kartvizit.link/views"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		configslog.SLog.Fatalf("Konfigürasyon yüklenemedi: %v", err)
	}
	configslog.InitLogger(cfg.AppEnv)
	defer configslog.Sync()

	db, err := configs.ConnectDatabase(cfg)
	if err != nil {
		configslog.SLog.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	// Açılışta şema ve varsayılan şablonlar güncel tutulur.
	database.Initialize(db, true, true)

	app := fiber.New(fiber.Config{
		AppName: "kartvizit.link",
		Views:   views.NewEngine(),
	})

	if err := routes.SetupRoutes(app, db, cfg); err != nil {
		configslog.SLog.Fatalf("Rotalar kurulamadı: %v", err)
	}

	// Graceful shutdown: bekleyen istekler tamamlanır, sonra kapanır.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Kapanış sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Sunucu dinlemede: :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.SLog.Fatalf("Sunucu başlatılamadı: %v", err)
	}
}
