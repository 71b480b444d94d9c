package database

import (
	"errors"
	"fmt"
	"log"

	"finboard/config"
	"finboard/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transaction{},
	); err != nil {
		return err
	}

	// 初始化系统内置类别，必须在任何用户请求前完成
	if err := SeedCategories(DB); err != nil {
		return fmt.Errorf("初始化内置类别失败: %w", err)
	}

	log.Println("数据库初始化成功")
	return nil
}

// SeedCategories 写入系统内置类别（3 个收入 + 7 个支出）
// 按名称逐条 upsert，重复执行不会产生副本，也不会覆盖用户私有类别。
func SeedCategories(db *gorm.DB) error {
	for _, seed := range models.SeedCategories() {
		var cat models.Category
		err := db.Where("name = ? AND user_id IS NULL", seed.Name).First(&cat).Error
		if err == nil {
			// 已存在则只补齐图标，方向固定不变
			if cat.Icon != seed.Icon {
				if err := db.Model(&cat).Update("icon", seed.Icon).Error; err != nil {
					return err
				}
			}
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.Category{
			Name: seed.Name,
			Type: seed.Type,
			Icon: seed.Icon,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
