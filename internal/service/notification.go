package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"paygate/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationOrderCreated      NotificationType = "ORDER_CREATED"
	NotificationPaymentProcessing NotificationType = "PAYMENT_PROCESSING"
	NotificationPaymentSuccess    NotificationType = "PAYMENT_SUCCESS"
	NotificationPaymentFailed     NotificationType = "PAYMENT_FAILED"
)

// Notification represents an event delivered to a merchant.
type Notification struct {
	ID          string
	Type        NotificationType
	RecipientID string // Merchant ID
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// Sender delivers notifications.
type Sender interface {
	Send(ctx context.Context, notification Notification) error
}

// LogSender writes notifications to the process log.
type LogSender struct{}

// Send logs the notification.
func (LogSender) Send(ctx context.Context, notification Notification) error {
	log.Printf("[NOTIFICATION] ID=%s Type=%s Merchant=%s Title=%s Message=%s",
		notification.ID, notification.Type, notification.RecipientID, notification.Title, notification.Message)
	return nil
}

// NotificationService builds merchant notifications for order and payment events.
type NotificationService struct {
	sender Sender
}

// NewNotificationService creates a new NotificationService. A nil sender logs.
func NewNotificationService(sender Sender) *NotificationService {
	if sender == nil {
		sender = LogSender{}
	}
	return &NotificationService{sender: sender}
}

// NotifyOrderCreated tells the merchant a new order is ready for payment.
func (s *NotificationService) NotifyOrderCreated(ctx context.Context, order *domain.Order) error {
	return s.send(ctx, Notification{
		Type:        NotificationOrderCreated,
		RecipientID: order.MerchantID,
		Title:       "Order Created",
		Message:     fmt.Sprintf("Order %s for %d %s created", order.ID, order.Amount, order.Currency),
		Data: map[string]interface{}{
			"order_id": order.ID,
			"amount":   order.Amount,
			"currency": order.Currency,
		},
	})
}

// NotifyPaymentProcessing tells the merchant an authorization has started.
func (s *NotificationService) NotifyPaymentProcessing(ctx context.Context, payment *domain.Payment) error {
	return s.send(ctx, Notification{
		Type:        NotificationPaymentProcessing,
		RecipientID: payment.MerchantID,
		Title:       "Payment Processing",
		Message:     fmt.Sprintf("Payment %s via %s is being authorized", payment.ID, payment.Method),
		Data:        paymentData(payment),
	})
}

// NotifyPaymentFinalized tells the merchant the terminal outcome of a payment.
func (s *NotificationService) NotifyPaymentFinalized(ctx context.Context, payment *domain.Payment) error {
	notification := Notification{
		Type:        NotificationPaymentFailed,
		RecipientID: payment.MerchantID,
		Title:       "Payment Failed",
		Message:     fmt.Sprintf("Payment %s of %d %s failed", payment.ID, payment.Amount, payment.Currency),
		Data:        paymentData(payment),
	}
	if payment.Status == domain.PaymentStatusSuccess {
		notification.Type = NotificationPaymentSuccess
		notification.Title = "Payment Successful"
		notification.Message = fmt.Sprintf("Payment %s of %d %s was successful", payment.ID, payment.Amount, payment.Currency)
	}
	return s.send(ctx, notification)
}

func paymentData(payment *domain.Payment) map[string]interface{} {
	return map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
		"amount":     payment.Amount,
		"method":     payment.Method,
		"status":     payment.Status,
	}
}

func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	notification.ID = uuid.NewString()
	notification.CreatedAt = time.Now().UTC()
	return s.sender.Send(ctx, notification)
}
