package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
)

func MigrateOrganizationsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating organizations table...")
	if err := db.AutoMigrate(&models.Organization{}); err != nil {
		configslog.Log.Error("Failed to migrate organizations table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Organizations table migrated successfully")
	return nil
}
