package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"car_tracker/internal/config"
	"car_tracker/internal/middleware"
	"car_tracker/internal/models"
	"car_tracker/internal/stats"
	"car_tracker/internal/store"
)

// GetDashboard composes the cross-car summary: counts, spend, average fuel
// efficiency, the car closest to service, and the recent-activity feed.
func GetDashboard(c *gin.Context) {
	userID := middleware.UserID(c)

	var cars []models.Car
	if err := config.DB.Where("user_id = ?", userID).Find(&cars).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching cars"})
		return
	}

	fuelByCar := make(map[uint][]models.FuelRecord)
	var all []store.Record
	for _, car := range cars {
		records, err := recordStore.ListAll(userID, car.ID)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		all = append(all, records...)
		for _, r := range records {
			if r.Kind == store.KindFuel {
				fuelByCar[car.ID] = append(fuelByCar[car.ID], *r.Fuel)
			}
		}
	}

	dashboard := stats.BuildDashboard(cars, fuelByCar, all, options.ServiceIntervalKm, options.ActivityFeedSize)
	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}

// GetSpendTrend reports the period-over-period spend change across all of
// the user's cars. The caller supplies the current period boundaries; the
// comparison window is the immediately preceding period of equal length.
func GetSpendTrend(c *gin.Context) {
	userID := middleware.UserID(c)

	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, want YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, want YYYY-MM-DD"})
		return
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be after start"})
		return
	}

	var cars []models.Car
	if err := config.DB.Where("user_id = ?", userID).Find(&cars).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching cars"})
		return
	}

	var all []store.Record
	for _, car := range cars {
		records, err := recordStore.ListAll(userID, car.ID)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		all = append(all, records...)
	}

	resp := gin.H{"start": start.Format("2006-01-02"), "end": end.Format("2006-01-02")}
	if trend, defined := stats.SpendTrend(all, start, end); defined {
		resp["trend_percent"] = stats.RoundMetric(trend)
	}
	c.JSON(http.StatusOK, resp)
}
