package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"car_tracker/internal/config"
	"car_tracker/internal/middleware"
	"car_tracker/internal/notify"
	"car_tracker/internal/store"
)

var (
	recordStore *store.Store
	toasts      *notify.Notifier
	options     config.Options
)

// Init wires the controllers to their collaborators. Called once from main
// (and from tests) after the database is up.
func Init(s *store.Store, n *notify.Notifier, opts config.Options) {
	recordStore = s
	toasts = n
	options = opts
}

// paramID parses a numeric path parameter, rejecting the request itself
// when it is malformed.
func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// respondStoreError maps the store error taxonomy onto HTTP statuses and
// surfaces the failure as a toast. Raw storage errors never reach clients.
func respondStoreError(c *gin.Context, err error) {
	userID := middleware.UserID(c)

	status := http.StatusInternalServerError
	message := "something went wrong, please retry"

	var missing *store.MissingParameterError
	var invalid *store.ValidationError
	var notFound *store.NotFoundError
	switch {
	case errors.Is(err, store.ErrAuthRequired):
		status = http.StatusUnauthorized
		message = "please sign in"
	case errors.As(err, &missing):
		status = http.StatusBadRequest
		message = missing.Error()
	case errors.As(err, &invalid):
		status = http.StatusUnprocessableEntity
		message = invalid.Error()
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		message = notFound.Error()
	}

	if toasts != nil && userID != 0 {
		toasts.Show(userID, message, notify.SeverityError)
	}
	c.JSON(status, gin.H{"error": message})
}
