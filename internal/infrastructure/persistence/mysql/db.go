package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/takinabradley/mdn-local-library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段；
// 生产环境应使用版本化的迁移脚本
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&GenreModel{},
		&AuthorModel{},
		&BookModel{},
		&BookInstanceModel{},
	)
}

// GenreModel GORM图书类型模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag;domain层实体不依赖GORM
// 2. NameKey是归一化键(小写+去重音),唯一索引兜底并发创建的竞态:
//    两个请求同时通过应用层的重复检测时,第二个插入在这里失败
type GenreModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;comment:类型名称"`
	NameKey   string    `gorm:"uniqueIndex;size:100;not null;comment:归一化名称键"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (GenreModel) TableName() string {
	return "genres"
}

// AuthorModel GORM作者模型
// NameKey对派生展示名("姓, 名")归一化,与genres表同一套兜底机制
type AuthorModel struct {
	ID          uint       `gorm:"primaryKey"`
	FirstName   string     `gorm:"size:100;not null;comment:名字"`
	FamilyName  string     `gorm:"index;size:100;not null;comment:姓氏"`
	NameKey     string     `gorm:"uniqueIndex;size:204;not null;comment:归一化名称键"`
	DateOfBirth *time.Time `gorm:"comment:出生日期"`
	DateOfDeath *time.Time `gorm:"comment:去世日期"`
	CreatedAt   time.Time  `gorm:"comment:创建时间"`
	UpdatedAt   time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// 设计说明:
// 1. TitleKey归一化书名,唯一索引防止忽略大小写/重音的重名
// 2. AuthorID/GenreID是弱引用,不加数据库外键约束;
//    引用完整性由应用层的存在性校验与删除前引用检查保证
type BookModel struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:200;not null;comment:书名"`
	TitleKey  string    `gorm:"uniqueIndex;size:200;not null;comment:归一化书名键"`
	Summary   string    `gorm:"type:text;not null;comment:内容简介"`
	ISBN      string    `gorm:"size:20;not null;comment:ISBN号"`
	AuthorID  uint      `gorm:"index;not null;comment:作者ID"`
	GenreID   uint      `gorm:"index;not null;comment:图书类型ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// BookInstanceModel GORM馆藏副本模型
type BookInstanceModel struct {
	ID        uint       `gorm:"primaryKey"`
	BookID    uint       `gorm:"index;not null;comment:图书ID"`
	Imprint   string     `gorm:"size:200;not null;comment:版次信息"`
	Status    string     `gorm:"size:20;not null;comment:副本状态"`
	DueBack   *time.Time `gorm:"comment:应还日期"`
	CreatedAt time.Time  `gorm:"comment:创建时间"`
	UpdatedAt time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookInstanceModel) TableName() string {
	return "book_instances"
}
