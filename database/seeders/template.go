package seeders

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
)

// defaultTemplates sistemle birlikte gelen hazır şablonlar.
var defaultTemplates = []models.Template{
	{
		Name:    models.TemplateNameClassic,
		Version: 1,
		Status:  models.TemplateStatusLive,
		Config:  datatypes.JSON([]byte(`{"layout":"classic","primaryColor":"#4f46e5","font":"sans"}`)),
	},
	{
		Name:    models.TemplateNameModern,
		Version: 1,
		Status:  models.TemplateStatusLive,
		Config:  datatypes.JSON([]byte(`{"layout":"modern","primaryColor":"#0ea5e9","font":"sans"}`)),
	},
	{
		Name:    models.TemplateNameMinimal,
		Version: 1,
		Status:  models.TemplateStatusLive,
		Config:  datatypes.JSON([]byte(`{"layout":"minimal","primaryColor":"#111827","font":"serif"}`)),
	},
}

// SeedTemplates varsayılan şablonları ekler; mevcut olanlara dokunmaz.
func SeedTemplates(db *gorm.DB) error {
	for _, tpl := range defaultTemplates {
		var existing models.Template
		err := db.Where("name = ?", tpl.Name).First(&existing).Error
		if err == nil {
			continue // Zaten var
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&tpl).Error; err != nil {
			return err
		}
		configslog.SLog.Infof("Şablon eklendi: %s", tpl.Name)
	}
	return nil
}
