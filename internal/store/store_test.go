package store

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"car_tracker/internal/models"
)

func setupTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.UserSettings{}, &models.FuelPriceEntry{},
		&models.Car{}, &models.FuelRecord{}, &models.MaintenanceRecord{},
		&models.MaintenancePart{}, &models.Expense{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return New(db), db
}

func seedCar(t *testing.T, db *gorm.DB, mileage float64) (uint, uint) {
	t.Helper()
	user := models.User{Name: "Test", Email: "test@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	car := models.Car{UserID: user.ID, Make: "Toyota", CarModel: "Corolla", Year: 2019, CurrentMileage: mileage}
	if err := db.Create(&car).Error; err != nil {
		t.Fatalf("failed to create car: %v", err)
	}
	return user.ID, car.ID
}

func newFuel(mileage, liters float64, price string) Record {
	return FuelRecord(&models.FuelRecord{
		Date:          models.NewDate(time.Now()),
		Liters:        liters,
		PricePerLiter: decimal.RequireFromString(price),
		Mileage:       mileage,
	})
}

func TestCreateFuelRatchetsMileage(t *testing.T) {
	s, db := setupTestStore(t)
	userID, carID := seedCar(t, db, 19500)

	// Higher reading moves the odometer up
	if _, err := s.Create(userID, carID, newFuel(20000, 40, "1.85")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	var car models.Car
	if err := db.First(&car, carID).Error; err != nil {
		t.Fatalf("reload car: %v", err)
	}
	if car.CurrentMileage != 20000 {
		t.Fatalf("current mileage = %v, want 20000", car.CurrentMileage)
	}

	// Lower reading never moves it down
	if _, err := s.Create(userID, carID, newFuel(19000, 30, "1.85")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := db.First(&car, carID).Error; err != nil {
		t.Fatalf("reload car: %v", err)
	}
	if car.CurrentMileage != 20000 {
		t.Fatalf("current mileage = %v, want 20000 (ratchet never decreases)", car.CurrentMileage)
	}
}

func TestCreateFuelComputesTotalCost(t *testing.T) {
	s, db := setupTestStore(t)
	userID, carID := seedCar(t, db, 0)

	rec := models.FuelRecord{
		Date:          models.NewDate(time.Now()),
		Liters:        40,
		PricePerLiter: decimal.RequireFromString("1.85"),
		Mileage:       1000,
		TotalCost:     decimal.RequireFromString("999"), // client lies, server recomputes
	}
	id, err := s.Create(userID, carID, FuelRecord(&rec))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var stored models.FuelRecord
	if err := db.First(&stored, id).Error; err != nil {
		t.Fatalf("reload record: %v", err)
	}
	if want := decimal.RequireFromString("74"); !stored.TotalCost.Equal(want) {
		t.Fatalf("total cost = %s, want %s", stored.TotalCost, want)
	}
}

func TestCreateFuelAppendsPriceObservation(t *testing.T) {
	s, db := setupTestStore(t)
	userID, carID := seedCar(t, db, 0)

	if _, err := s.Create(userID, carID, newFuel(1000, 40, "1.85")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := s.Create(userID, carID, newFuel(1500, 35, "1.92")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var settings models.UserSettings
	if err := db.Where("user_id = ?", userID).Preload("FuelPrices", func(q *gorm.DB) *gorm.DB {
		return q.Order("date DESC")
	}).First(&settings).Error; err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if len(settings.FuelPrices) != 2 {
		t.Fatalf("price history length = %d, want 2", len(settings.FuelPrices))
	}
	if want := decimal.RequireFromString("1.92"); !settings.FuelPrices[0].PricePerLiter.Equal(want) {
		t.Fatalf("latest price = %s, want %s", settings.FuelPrices[0].PricePerLiter, want)
	}
}

func TestCreateValidation(t *testing.T) {
	s, db := setupTestStore(t)
	userID, carID := seedCar(t, db, 0)

	tests := []struct {
		name string
		rec  Record
	}{
		{"zero liters", newFuel(1000, 0, "1.85")},
		{"negative mileage", newFuel(-5, 40, "1.85")},
		{"zero price", newFuel(1000, 40, "0")},
		{"expense without category", ExpenseRecord(&models.Expense{
			Date:   models.NewDate(time.Now()),
			Amount: decimal.RequireFromString("10"),
		})},
		{"expense with zero amount", ExpenseRecord(&models.Expense{
			Date:     models.NewDate(time.Now()),
			Category: "parking",
			Amount:   decimal.Zero,
		})},
		{"maintenance parts not summing", MaintenanceRecord(&models.MaintenanceRecord{
			Date:        models.NewDate(time.Now()),
			ServiceType: "Brake Service",
			Cost:        decimal.RequireFromString("100"),
			Parts: []models.MaintenancePart{
				{Name: "pads", Cost: decimal.RequireFromString("60")},
				{Name: "discs", Cost: decimal.RequireFromString("30")},
			},
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(userID, carID, tt.rec)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateMaintenanceWithMatchingParts(t *testing.T) {
	s, db := setupTestStore(t)
	userID, carID := seedCar(t, db, 0)

	rec := models.MaintenanceRecord{
		Date:        models.NewDate(time.Now()),
		ServiceType: "Brake Service",
		Cost:        decimal.RequireFromString("90"),
		Parts: []models.MaintenancePart{
			{Name: "pads", Cost: decimal.RequireFromString("60")},
			{Name: "discs", Cost: decimal.RequireFromString("30")},
		},
	}
	id, err := s.Create(userID, carID, MaintenanceRecord(&rec))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var stored models.MaintenanceRecord
	if err := db.Preload("Parts").First(&stored, id).Error; err != nil {
		t.Fatalf("reload record: %v", err)
	}
	if len(stored.Parts) != 2 {
		t.Fatalf("parts length = %d, want 2", len(stored.Parts))
	}
}

func TestCreateScopeErrors(t *testing.T) {
	s, db := setupTestStore(t)
	userID, carID := seedCar(t, db, 0)

	if _, err := s.Create(0, carID, newFuel(1000, 40, "1.85")); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}

	var missing *MissingParameterError
	if _, err := s.Create(userID, 0, newFuel(1000, 40, "1.85")); !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}

	var notFound *NotFoundError
	if _, err := s.Create(userID, carID+99, newFuel(1000, 40, "1.85")); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for foreign car, got %v", err)
	}

	// Another user's car is indistinguishable from a missing one
	otherUser := models.User{Name: "Other", Email: "other@example.com"}
	if err := db.Create(&otherUser).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := s.Create(otherUser.ID, carID, newFuel(1000, 40, "1.85")); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for cross-user car, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	s, db := setupTestStore(t)
	userID, carID := seedCar(t, db, 0)

	id, err := s.Create(userID, carID, newFuel(1000, 40, "1.85"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := s.Remove(userID, carID, KindFuel, id); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	var notFound *NotFoundError
	if err := s.Remove(userID, carID, KindFuel, id); !errors.As(err, &notFound) {
		t.Fatalf("second remove should be NotFoundError, got %v", err)
	}

	records, err := s.List(userID, carID, KindFuel)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records after remove = %d, want 0", len(records))
	}
}

func TestListOrdersByDateDescending(t *testing.T) {
	s, db := setupTestStore(t)
	userID, carID := seedCar(t, db, 0)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, mileage := range []float64{1000, 3000, 2000} {
		rec := models.FuelRecord{
			Date:          models.NewDate(base.AddDate(0, 0, i*3)),
			Liters:        40,
			PricePerLiter: decimal.RequireFromString("1.85"),
			Mileage:       mileage,
		}
		if _, err := s.Create(userID, carID, FuelRecord(&rec)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	records, err := s.List(userID, carID, KindFuel)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("list length = %d, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date().After(records[i-1].Date().Time) {
			t.Fatal("snapshot not ordered by date descending")
		}
	}
}

func TestDeleteCarCascades(t *testing.T) {
	s, db := setupTestStore(t)
	userID, carID := seedCar(t, db, 0)

	if _, err := s.Create(userID, carID, newFuel(1000, 40, "1.85")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := s.Create(userID, carID, ExpenseRecord(&models.Expense{
		Date:     models.NewDate(time.Now()),
		Category: "parking",
		Amount:   decimal.RequireFromString("10"),
	})); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := s.DeleteCar(userID, carID); err != nil {
		t.Fatalf("delete car failed: %v", err)
	}

	var count int64
	db.Model(&models.FuelRecord{}).Where("car_id = ?", carID).Count(&count)
	if count != 0 {
		t.Fatalf("fuel records left after car delete: %d", count)
	}
	db.Model(&models.Expense{}).Where("car_id = ?", carID).Count(&count)
	if count != 0 {
		t.Fatalf("expenses left after car delete: %d", count)
	}
}
