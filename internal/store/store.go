// Package store is the single access contract over the persisted record
// collections. It hides the storage technology from controllers and stats:
// callers get typed snapshots through live subscriptions plus create/remove
// mutations, and a small error taxonomy instead of raw driver errors.
package store

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"car_tracker/internal/models"
)

type Store struct {
	db  *gorm.DB
	hub *hub
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, hub: newHub()}
}

// List returns the current snapshot for one user+car+kind, newest first.
func (s *Store) List(userID, carID uint, kind Kind) ([]Record, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if carID == 0 {
		return nil, &MissingParameterError{Parameter: "car_id"}
	}

	scoped := s.db.Where("user_id = ? AND car_id = ?", userID, carID).Order("date DESC")
	switch kind {
	case KindFuel:
		var recs []models.FuelRecord
		if err := scoped.Find(&recs).Error; err != nil {
			return nil, &BackendError{Op: "list fuel records", Err: err}
		}
		out := make([]Record, len(recs))
		for i := range recs {
			out[i] = FuelRecord(&recs[i])
		}
		return out, nil
	case KindMaintenance:
		var recs []models.MaintenanceRecord
		if err := scoped.Preload("Parts").Find(&recs).Error; err != nil {
			return nil, &BackendError{Op: "list maintenance records", Err: err}
		}
		out := make([]Record, len(recs))
		for i := range recs {
			out[i] = MaintenanceRecord(&recs[i])
		}
		return out, nil
	case KindExpense:
		var recs []models.Expense
		if err := scoped.Find(&recs).Error; err != nil {
			return nil, &BackendError{Op: "list expenses", Err: err}
		}
		out := make([]Record, len(recs))
		for i := range recs {
			out[i] = ExpenseRecord(&recs[i])
		}
		return out, nil
	}
	return nil, &ValidationError{Field: "kind", Reason: "unknown record kind"}
}

// ListAll returns the merged snapshot of every kind for one car.
func (s *Store) ListAll(userID, carID uint) ([]Record, error) {
	var all []Record
	for _, kind := range []Kind{KindFuel, KindMaintenance, KindExpense} {
		recs, err := s.List(userID, carID, kind)
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
	}
	return all, nil
}

// Create validates and persists one record, returning its new ID. Fuel
// creates additionally recompute the total cost, ratchet the parent car's
// mileage upward and append a price observation to the owner's settings.
// The resulting snapshot reaches callers through their subscriptions, not
// through this return value.
func (s *Store) Create(userID, carID uint, rec Record) (uint, error) {
	if userID == 0 {
		return 0, ErrAuthRequired
	}
	if carID == 0 {
		return 0, &MissingParameterError{Parameter: "car_id"}
	}

	var car models.Car
	if err := s.db.Where("id = ? AND user_id = ?", carID, userID).First(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &NotFoundError{Kind: "car", ID: carID}
		}
		return 0, &BackendError{Op: "load car", Err: err}
	}

	if err := validateRecord(rec); err != nil {
		return 0, err
	}

	var id uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		switch rec.Kind {
		case KindFuel:
			f := rec.Fuel
			f.UserID = userID
			f.CarID = carID
			f.TotalCost = decimal.NewFromFloat(f.Liters).Mul(f.PricePerLiter)
			if err := tx.Create(f).Error; err != nil {
				return err
			}
			id = f.ID
			if f.Mileage > car.CurrentMileage {
				if err := tx.Model(&car).Update("current_mileage", f.Mileage).Error; err != nil {
					return err
				}
			}
			return s.appendFuelPrice(tx, userID, f)
		case KindMaintenance:
			m := rec.Maintenance
			m.UserID = userID
			m.CarID = carID
			if err := tx.Create(m).Error; err != nil {
				return err
			}
			id = m.ID
			return nil
		case KindExpense:
			e := rec.Expense
			e.UserID = userID
			e.CarID = carID
			if err := tx.Create(e).Error; err != nil {
				return err
			}
			id = e.ID
			return nil
		}
		return &ValidationError{Field: "kind", Reason: "unknown record kind"}
	})
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return 0, err
		}
		return 0, &BackendError{Op: "create " + string(rec.Kind), Err: err}
	}

	s.hub.notify(subKey{userID: userID, carID: carID, kind: rec.Kind})
	return id, nil
}

// Remove deletes a single record. Nothing cascades: each kind is deleted
// independently by the user.
func (s *Store) Remove(userID, carID uint, kind Kind, recordID uint) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	if carID == 0 {
		return &MissingParameterError{Parameter: "car_id"}
	}
	if recordID == 0 {
		return &MissingParameterError{Parameter: "record_id"}
	}

	var target interface{}
	switch kind {
	case KindFuel:
		target = &models.FuelRecord{}
	case KindMaintenance:
		target = &models.MaintenanceRecord{}
	case KindExpense:
		target = &models.Expense{}
	default:
		return &ValidationError{Field: "kind", Reason: "unknown record kind"}
	}

	res := s.db.Where("id = ? AND user_id = ? AND car_id = ?", recordID, userID, carID).Delete(target)
	if res.Error != nil {
		return &BackendError{Op: "delete " + string(kind), Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Kind: kind, ID: recordID}
	}

	s.hub.notify(subKey{userID: userID, carID: carID, kind: kind})
	return nil
}

// DeleteCar removes a car together with all of its records and wakes the
// subscriptions of every kind for that car.
func (s *Store) DeleteCar(userID, carID uint) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	if carID == 0 {
		return &MissingParameterError{Parameter: "car_id"}
	}

	var car models.Car
	if err := s.db.Where("id = ? AND user_id = ?", carID, userID).First(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Kind: "car", ID: carID}
		}
		return &BackendError{Op: "load car", Err: err}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		scope := "user_id = ? AND car_id = ?"
		if err := tx.Where(scope, userID, carID).Delete(&models.FuelRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where(scope, userID, carID).Delete(&models.MaintenanceRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where(scope, userID, carID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(&car).Error
	})
	if err != nil {
		return &BackendError{Op: "delete car", Err: err}
	}

	for _, kind := range []Kind{KindFuel, KindMaintenance, KindExpense} {
		s.hub.notify(subKey{userID: userID, carID: carID, kind: kind})
	}
	return nil
}

// appendFuelPrice records a {date, price} observation on the owner's
// settings so new fuel forms can be pre-filled with the most recent price.
func (s *Store) appendFuelPrice(tx *gorm.DB, userID uint, f *models.FuelRecord) error {
	var settings models.UserSettings
	err := tx.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.UserSettings{UserID: userID}
		if err := tx.Create(&settings).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	entry := models.FuelPriceEntry{
		UserSettingsID: settings.ID,
		Date:           f.Date,
		PricePerLiter:  f.PricePerLiter,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"price":   f.PricePerLiter.String(),
	}).Debug("recorded fuel price observation")
	return nil
}

func validateRecord(rec Record) error {
	switch rec.Kind {
	case KindFuel:
		f := rec.Fuel
		if f == nil {
			return &MissingParameterError{Parameter: "fuel"}
		}
		if f.Date.IsZero() {
			return &ValidationError{Field: "date", Reason: "required"}
		}
		if !isFinite(f.Liters) || f.Liters <= 0 {
			return &ValidationError{Field: "liters", Reason: "must be greater than zero"}
		}
		if f.PricePerLiter.Sign() <= 0 {
			return &ValidationError{Field: "price_per_liter", Reason: "must be greater than zero"}
		}
		if !isFinite(f.Mileage) || f.Mileage < 0 {
			return &ValidationError{Field: "mileage", Reason: "must not be negative"}
		}
		return nil
	case KindMaintenance:
		m := rec.Maintenance
		if m == nil {
			return &MissingParameterError{Parameter: "maintenance"}
		}
		if m.Date.IsZero() {
			return &ValidationError{Field: "date", Reason: "required"}
		}
		if strings.TrimSpace(m.ServiceType) == "" {
			return &ValidationError{Field: "service_type", Reason: "required"}
		}
		if m.Cost.Sign() < 0 {
			return &ValidationError{Field: "cost", Reason: "must not be negative"}
		}
		if !isFinite(m.Mileage) || m.Mileage < 0 {
			return &ValidationError{Field: "mileage", Reason: "must not be negative"}
		}
		if len(m.Parts) > 0 {
			sum := decimal.Zero
			for _, p := range m.Parts {
				sum = sum.Add(p.Cost)
			}
			if !sum.Equal(m.Cost) {
				return &ValidationError{Field: "parts", Reason: "part costs must sum to the record cost"}
			}
		}
		return nil
	case KindExpense:
		e := rec.Expense
		if e == nil {
			return &MissingParameterError{Parameter: "expense"}
		}
		if e.Date.IsZero() {
			return &ValidationError{Field: "date", Reason: "required"}
		}
		if strings.TrimSpace(e.Category) == "" {
			return &ValidationError{Field: "category", Reason: "required"}
		}
		if e.Amount.Sign() <= 0 {
			return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
		}
		return nil
	}
	return &ValidationError{Field: "kind", Reason: "unknown record kind"}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
