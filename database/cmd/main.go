// Migrasyon/seed CLI'ı:
//
//	go run ./database/cmd -migrate -seed
package main

import (
	"flag"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/database"
)

func main() {
	migrate := flag.Bool("migrate", false, "tablo migrasyonlarını çalıştır")
	seed := flag.Bool("seed", false, "varsayılan verileri yükle")
	flag.Parse()

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

	database.Initialize(db, *migrate, *seed)
}
