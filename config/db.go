package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"office-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "office_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase fills the read-only ReservableService catalog on first run.
func SeedDatabase() {
	var svcCount int64
	DB.Model(&models.ReservableService{}).Count(&svcCount)
	if svcCount == 0 {
		services := []models.ReservableService{
			{Name: "Meeting Room A", Type: models.ServiceRoom, BaseRate: 300, TimePriced: true},
			{Name: "Meeting Room B", Type: models.ServiceRoom, BaseRate: 450, TimePriced: true},
			{Name: "Document Printing", Type: models.ServiceConsumable, BaseRate: 2},
			{Name: "Document Scanning", Type: models.ServiceConsumable, BaseRate: 1},
		}
		if err := DB.Create(&services).Error; err != nil {
			log.Printf("warning: failed to seed reservable services: %v", err)
		} else {
			log.Println("Reservable services seeded")
		}
	}

	// Optional demo building for local development
	if strings.ToLower(envOrDefault("SEED_DEMO_BUILDING", "false")) != "true" {
		return
	}

	var bCount int64
	DB.Model(&models.Building{}).Count(&bCount)
	if bCount > 0 {
		log.Println("Demo building already seeded")
		return
	}

	building := models.Building{Name: "Demo Tower", TotalFloors: 2}
	if err := DB.Create(&building).Error; err != nil {
		log.Printf("warning: failed to seed demo building: %v", err)
		return
	}
	floors := []models.Floor{
		{BuildingID: building.ID, FloorNumber: 1, GrossArea: 400, CommonAreaPct: 0.2},
		{BuildingID: building.ID, FloorNumber: 2, GrossArea: 400, CommonAreaPct: 0.2},
	}
	if err := DB.Create(&floors).Error; err != nil {
		log.Printf("warning: failed to seed demo floors: %v", err)
		return
	}
	tenant := models.TenantUser{FullName: "Demo Tenant", Email: "tenant@demo.local"}
	if err := DB.Create(&tenant).Error; err != nil {
		log.Printf("warning: failed to seed demo tenant: %v", err)
		return
	}
	offices := []models.Office{
		{FloorID: floors[0].ID, Code: "101", Area: 40, OccupancyState: models.OfficeOccupied, TenantUserID: &tenant.ID},
		{FloorID: floors[0].ID, Code: "102", Area: 60, OccupancyState: models.OfficeOccupied, TenantUserID: &tenant.ID},
		{FloorID: floors[1].ID, Code: "201", Area: 20, OccupancyState: models.OfficeFree},
	}
	if err := DB.Create(&offices).Error; err != nil {
		log.Printf("warning: failed to seed demo offices: %v", err)
		return
	}
	log.Println("Demo building seeded")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Building{},
		&models.Floor{},
		&models.TenantUser{},
		&models.Office{},
		&models.ExpensePeriod{},
		&models.ExpenseDetail{},
		&models.ReservableService{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
