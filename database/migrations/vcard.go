package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
)

// MigrateVCardTables kartvizit ana tablosunu ve dört alt koleksiyon
// tablosunu birlikte migrate eder.
func MigrateVCardTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating v_cards & child tables...")
	err := db.AutoMigrate(
		&models.VCard{},
		&models.BusinessHour{},
		&models.CardService{},
		&models.SocialLink{},
		&models.Testimonial{},
	)
	if err != nil {
		configslog.Log.Error("Failed to migrate v_cards & child tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("V_cards & child tables migrated successfully")
	return nil
}
