package server

import (
	"errors"
	"net/http"

	catalogdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/domain"
	invoicedomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/domain"
	orderdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/domain"
	paymentdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/domain"
	quotadomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/domain"
	subscriptiondomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type errorBody struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Limit      *int64   `json:"limit,omitempty"`
	Current    *int64   `json:"current,omitempty"`
	MaxPayable *float64 `json:"max_payable,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
)

// ErrorHandlingMiddleware renders the last error attached to the gin context
// once the handler chain finishes without writing a response.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorBody) {
	if err == nil {
		return http.StatusInternalServerError, errorBody{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		}
	}

	var denied *quotadomain.DeniedError
	if errors.As(err, &denied) {
		return http.StatusForbidden, quotaDenialBody(denied.Decision)
	}

	var overpayment *paymentdomain.OverpaymentError
	if errors.As(err, &overpayment) {
		max := overpayment.MaxPayable
		return http.StatusUnprocessableEntity, errorBody{
			Code:       "OVERPAYMENT",
			Message:    overpayment.Error(),
			MaxPayable: &max,
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorBody{
			Code:    "UNAUTHORIZED",
			Message: "unauthorized",
		}
	case isForbiddenError(err):
		return http.StatusForbidden, errorBody{
			Code:    "FORBIDDEN",
			Message: "resource belongs to another tenant",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorBody{
			Code:    "NOT_FOUND",
			Message: "not found",
		}
	case isConflictError(err):
		return http.StatusConflict, errorBody{
			Code:    "CONFLICT",
			Message: err.Error(),
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorBody{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorBody{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		}
	}
}

// quotaDenialBody renders the 403 contract: machine code plus, for limit
// denials, the concrete limit and current numbers.
func quotaDenialBody(d quotadomain.Decision) errorBody {
	body := errorBody{
		Code:    string(d.Reason),
		Message: quotaDenialMessage(d.Reason),
	}
	switch d.Reason {
	case quotadomain.ReasonProductLimitReached,
		quotadomain.ReasonCategoryLimitReached,
		quotadomain.ReasonOrderLimitReached:
		limit, current := d.Limit, d.Current
		body.Limit = &limit
		body.Current = &current
	}
	return body
}

func quotaDenialMessage(reason quotadomain.Reason) string {
	switch reason {
	case quotadomain.ReasonNoSubscription:
		return "no active subscription"
	case quotadomain.ReasonProductLimitReached:
		return "product limit reached for your plan"
	case quotadomain.ReasonCategoryLimitReached:
		return "category limit reached for your plan"
	case quotadomain.ReasonOrderLimitReached:
		return "monthly order limit reached for your plan"
	case quotadomain.ReasonImageUploadNotAllowed:
		return "image uploads are not available on your plan"
	default:
		return "quota denied"
	}
}

func isForbiddenError(err error) bool {
	switch {
	case errors.Is(err, catalogdomain.ErrForbidden),
		errors.Is(err, orderdomain.ErrForbidden),
		errors.Is(err, invoicedomain.ErrForbidden),
		errors.Is(err, paymentdomain.ErrForbidden):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, catalogdomain.ErrProductNotFound),
		errors.Is(err, catalogdomain.ErrCategoryNotFound),
		errors.Is(err, orderdomain.ErrOrderNotFound),
		errors.Is(err, orderdomain.ErrCustomerNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, paymentdomain.ErrInvoiceNotFound),
		errors.Is(err, paymentdomain.ErrPaymentNotFound),
		errors.Is(err, subscriptiondomain.ErrSubscriptionNotFound),
		errors.Is(err, subscriptiondomain.ErrPlanNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrInvoiceHasPayments),
		errors.Is(err, invoicedomain.ErrInvoiceVoid),
		errors.Is(err, paymentdomain.ErrInvoiceVoid),
		errors.Is(err, paymentdomain.ErrInvoicePaid),
		errors.Is(err, orderdomain.ErrInvalidStatus):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, orderdomain.ErrInvalidName),
		errors.Is(err, orderdomain.ErrEmptyOrder),
		errors.Is(err, orderdomain.ErrInvalidQuantity),
		errors.Is(err, invoicedomain.ErrInvalidTotal),
		errors.Is(err, paymentdomain.ErrInvalidAmount),
		errors.Is(err, subscriptiondomain.ErrInvalidTerm):
		return true
	default:
		return false
	}
}

func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	status, body := mapError(err)
	switch {
	case status >= 500:
		return "internal", body.Code
	case status == http.StatusForbidden:
		return "forbidden", body.Code
	case status == http.StatusNotFound:
		return "not_found", body.Code
	default:
		return "client", body.Code
	}
}
