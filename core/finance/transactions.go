// Package finance synthesizes a transaction ledger from enrollment data.
//
// No payment backend exists yet; every field that a real ledger would record
// is derived deterministically from the enrollment row so the view stays
// stable between requests.
package finance

import (
	"strconv"
	"time"

	"github.com/szkolix/backend/core/catalog"
	"github.com/szkolix/backend/core/enrollment"
	"github.com/szkolix/backend/core/synthetic"
)

// Transaction statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
)

// Payment methods
const (
	MethodCard     = "card"
	MethodBlik     = "blik"
	MethodTransfer = "transfer"
	MethodPaypal   = "paypal"
)

var methods = [4]string{MethodCard, MethodBlik, MethodTransfer, MethodPaypal}

type Transaction struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	AmountPLN       int       `json:"amount_pln"`
	Status          string    `json:"status"`
	Method          string    `json:"method"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerCompany string    `json:"customer_company,omitempty"`
	OrderID         string    `json:"order_id"`
	CourseID        string    `json:"course_id,omitempty"`
	CourseTitle     string    `json:"course_title,omitempty"`
}

// BuildTransactions derives one transaction per enrollment row. Two calls
// with identical inputs yield identical ledgers; the payment method is
// round-robin over the row index so its distribution is exactly uniform.
func BuildTransactions(courses []catalog.Course, students []enrollment.Student) []Transaction {
	prices := make(map[string]int, len(courses))
	titles := make(map[string]string, len(courses))
	for _, c := range courses {
		prices[c.ID] = c.AmountPLN()
		titles[c.ID] = c.Title
	}

	txs := make([]Transaction, 0, len(students))
	for i, s := range students {
		txs = append(txs, Transaction{
			ID:              "TX-" + truncDigits(synthetic.Hash(s.ID+"-"+s.Course), 10),
			CreatedAt:       synthetic.DateFromHash(s.ID+"-"+s.Email+"-"+s.Course, 180),
			AmountPLN:       prices[s.Course],
			Status:          statusFor(s),
			Method:          methods[i%4],
			CustomerName:    s.Name,
			CustomerEmail:   s.Email,
			CustomerCompany: s.Company,
			OrderID:         truncDigits(synthetic.Hash(s.Email+"-"+s.Course), 8),
			CourseID:        s.Course,
			CourseTitle:     titles[s.Course],
		})
	}
	return txs
}

// statusFor infers payment status from the enrollment's access state:
// expired access means the purchase was refunded, a warning state means
// payment is still pending, anything else is settled.
func statusFor(s enrollment.Student) string {
	switch {
	case s.Status == enrollment.StatusExpired || s.ExpirationDays <= 0:
		return StatusRefunded
	case s.Status == enrollment.StatusWarning:
		return StatusPending
	default:
		return StatusCompleted
	}
}

func truncDigits(h uint32, n int) string {
	s := strconv.FormatUint(uint64(h), 10)
	if len(s) > n {
		s = s[:n]
	}
	return s
}
