package http

import (
	"errors"
	"net/http"
	"strconv"

	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	statusSuccess = "success"
	statusDanger  = "danger"

	msgSignInRequired = "Please sign in first"
	msgAdminRequired  = "Admin access required"
	msgEditFailed     = "Failed to make changes"
	msgDeleteFailed   = "Failed to delete"
)

// userMessages are the texts the storefront shows for expected failures.
var userMessages = []struct {
	err error
	msg string
}{
	{services.ErrCustomerExists, "User already exists!"},
	{services.ErrCustomerNotFound, "User does not exist!"},
	{services.ErrIncorrectPassword, "Incorrect password"},
	{services.ErrDuplicateDiscount, "Discount code already exists!"},
	{services.ErrDuplicateCategory, "Category name already exists!"},
	{services.ErrCustomerRequired, msgSignInRequired},
	{services.ErrStaleProduct, "Product was changed by someone else, reload and try again"},
}

// expected lists sentinels that are reported as-is and not logged as errors.
var expected = []error{
	services.ErrOrderNotFound,
	services.ErrNotBasket,
	services.ErrNotOrdered,
	services.ErrInvalidQuantity,
	services.ErrInvalidCheckout,
	services.ErrProductNotFound,
	services.ErrInvalidProduct,
	services.ErrCategoryNotFound,
	services.ErrInvalidCategory,
	services.ErrDiscountNotFound,
	services.ErrInvalidDiscount,
	services.ErrInvalidCustomer,
}

func userMessage(err error) (string, bool) {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg, true
		}
	}
	for _, e := range expected {
		if errors.Is(err, e) {
			return err.Error(), true
		}
	}
	return err.Error(), false
}

type outcomeStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func outcome(c *gin.Context, v any) {
	c.JSON(http.StatusOK, gin.H{"outcome": v})
}

func success(c *gin.Context, msg string) {
	outcome(c, outcomeStatus{Status: statusSuccess, Message: msg})
}

func danger(c *gin.Context, msg string) {
	outcome(c, outcomeStatus{Status: statusDanger, Message: msg})
}

func (h *Handler) fail(c *gin.Context, err error) {
	msg, known := userMessage(err)
	if !known {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
	}
	danger(c, msg)
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		danger(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func parseInt(c *gin.Context, name string) (int64, bool) {
	n, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		danger(c, "invalid "+name)
		return 0, false
	}
	return n, true
}
