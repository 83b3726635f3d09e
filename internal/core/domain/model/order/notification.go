package order

import (
	"errors"
	"fmt"
	"time"

	"ecshop/internal/core/domain/model/kernel"
)

var (
	// ErrNotificationIsNotConstructed is returned when a Notification was
	// not created through a constructor.
	ErrNotificationIsNotConstructed = errors.New(
		"Notification must be created via NewEmailNotification or RestoreNotification",
	)

	// ErrNotificationOrderIDIsInvalid is returned for non-positive order ids.
	ErrNotificationOrderIDIsInvalid = errors.New("notification order id must be greater than 0")

	// ErrNotificationRecipientIsRequired is returned for empty recipients.
	ErrNotificationRecipientIsRequired = errors.New("notification recipient is required")

	// ErrNotificationTypeIsInvalid is returned for unknown notification types.
	ErrNotificationTypeIsInvalid = errors.New("notification type is invalid")

	// ErrNotificationIsNotPending is returned when marking a notification
	// that already left the pending state.
	ErrNotificationIsNotPending = errors.New("notification is not pending")
)

// NotificationType selects the message template.
type NotificationType string

const (
	// NotificationConfirmation is scheduled once at order creation.
	NotificationConfirmation NotificationType = "confirmation"

	// NotificationStatusUpdate is scheduled on every later transition.
	NotificationStatusUpdate NotificationType = "status_update"

	// NotificationShipping announces shipment.
	NotificationShipping NotificationType = "shipping"

	// NotificationDelivery announces delivery.
	NotificationDelivery NotificationType = "delivery"
)

// NotificationMethod is the delivery channel.
type NotificationMethod string

const (
	NotificationEmail NotificationMethod = "email"
	NotificationSMS   NotificationMethod = "sms"
	NotificationPush  NotificationMethod = "push"
)

// NotificationStatus tracks the delivery lifecycle. The core creates rows
// as pending; the dispatch worker transitions them to sent or failed.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

func notificationSubjects() map[NotificationType]string {
	return map[NotificationType]string{
		NotificationConfirmation: "Thank you for your order - Order %s",
		NotificationStatusUpdate: "Your order status has been updated - Order %s",
		NotificationShipping:     "Your order has shipped - Order %s",
		NotificationDelivery:     "Your order has been delivered - Order %s",
	}
}

func notificationBodies() map[NotificationType]string {
	return map[NotificationType]string{
		NotificationConfirmation: "Dear %s,\n\nThank you for your order.\nOrder number: %s\n\nWe are confirming your order and processing your payment.\nWe will contact you again once your shipment is prepared.",
		NotificationStatusUpdate: "Dear %s,\n\nThe status of order %s has been updated.\n\nPlease check your account page for details.",
		NotificationShipping:     "Dear %s,\n\nYour order %s has been shipped.\n\nIt will arrive shortly.",
		NotificationDelivery:     "Dear %s,\n\nYour order %s has been delivered.\n\nThank you for shopping with us.",
	}
}

// Notification is a scheduled customer message belonging to an order.
// Subject and content are rendered at scheduling time so the dispatch
// worker only has to hand them to a transport.
type Notification struct {
	id        int64
	orderID   int64
	kind      NotificationType
	method    NotificationMethod
	recipient string
	subject   string
	content   string
	status    NotificationStatus
	createdAt time.Time

	isConstructed bool
}

// NewEmailNotification renders and schedules an email notification.
// customerName may be empty, in which case a neutral salutation is used.
func NewEmailNotification(
	orderID int64,
	kind NotificationType,
	recipient string,
	number kernel.OrderNumber,
	customerName string,
	now time.Time,
) (*Notification, error) {
	if orderID <= 0 {
		return nil, ErrNotificationOrderIDIsInvalid
	}
	if recipient == "" {
		return nil, ErrNotificationRecipientIsRequired
	}
	if err := number.Validate(); err != nil {
		return nil, err
	}

	subjectTemplate, ok := notificationSubjects()[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotificationTypeIsInvalid, string(kind))
	}

	if customerName == "" {
		customerName = "Customer"
	}

	return &Notification{
		orderID:       orderID,
		kind:          kind,
		method:        NotificationEmail,
		recipient:     recipient,
		subject:       fmt.Sprintf(subjectTemplate, number.String()),
		content:       fmt.Sprintf(notificationBodies()[kind], customerName, number.String()),
		status:        NotificationPending,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstructs a notification row from persistence.
func RestoreNotification(
	id, orderID int64,
	kind NotificationType,
	method NotificationMethod,
	recipient, subject, content string,
	status NotificationStatus,
	createdAt time.Time,
) (*Notification, error) {
	if orderID <= 0 {
		return nil, ErrNotificationOrderIDIsInvalid
	}

	return &Notification{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		method:        method,
		recipient:     recipient,
		subject:       subject,
		content:       content,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the notification was created through a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the row's storage identity (0 until persisted).
func (n *Notification) ID() int64 { return n.id }

// OrderID returns the order the notification belongs to.
func (n *Notification) OrderID() int64 { return n.orderID }

// Type returns the notification type.
func (n *Notification) Type() NotificationType { return n.kind }

// Method returns the delivery channel.
func (n *Notification) Method() NotificationMethod { return n.method }

// Recipient returns the delivery address.
func (n *Notification) Recipient() string { return n.recipient }

// Subject returns the rendered message subject.
func (n *Notification) Subject() string { return n.subject }

// Content returns the rendered message body.
func (n *Notification) Content() string { return n.content }

// Status returns the delivery lifecycle state.
func (n *Notification) Status() NotificationStatus { return n.status }

// CreatedAt returns when the notification was scheduled.
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// AssignIdentity attaches the storage identity after the initial insert.
func (n *Notification) AssignIdentity(id int64) {
	if n.id == 0 {
		n.id = id
	}
}

// MarkSent transitions a pending notification to sent.
func (n *Notification) MarkSent() error {
	return n.leavePending(NotificationSent)
}

// MarkFailed transitions a pending notification to failed.
func (n *Notification) MarkFailed() error {
	return n.leavePending(NotificationFailed)
}

func (n *Notification) leavePending(target NotificationStatus) error {
	if n.status != NotificationPending {
		return fmt.Errorf("%w: status is %s", ErrNotificationIsNotPending, n.status)
	}
	n.status = target
	return nil
}
