package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ecshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's status history joined with
// the acting users' names.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for history queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the history query. Unlike the detail endpoint, reading a
// foreign order's history is reported as access denied: the caller already
// proved the order exists to get here.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]HistoryEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.authorize(ctx, query); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			h.id,
			h.previous_status,
			h.new_status,
			h.comment,
			h.created_at,
			u.first_name,
			u.last_name,
			a.first_name,
			a.last_name
		FROM order_status_history h
		LEFT JOIN users u ON u.id = h.changed_by_user_id
		LEFT JOIN users a ON a.id = h.changed_by_admin_id
		WHERE h.order_id = ?
		ORDER BY h.created_at, h.id
	`, query.OrderID()).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("orders.history", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var entry HistoryEntry
		var previousStatus, comment sql.NullString
		var userFirst, userLast, adminFirst, adminLast sql.NullString

		if err = rows.Scan(
			&entry.ID,
			&previousStatus,
			&entry.NewStatus,
			&comment,
			&entry.CreatedAt,
			&userFirst,
			&userLast,
			&adminFirst,
			&adminLast,
		); err != nil {
			return nil, errs.NewPersistenceError("orders.history.scan", err)
		}

		if previousStatus.Valid {
			entry.PreviousStatus = &previousStatus.String
		}
		entry.Comment = comment.String
		entry.ChangedBy = changedBy(adminFirst, adminLast, userFirst, userLast)
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("orders.history.rows", err)
	}

	return entries, nil
}

// authorize verifies the order exists and belongs to the requester.
func (h GetOrderHistoryQueryHandler) authorize(ctx context.Context, query GetOrderHistoryQuery) error {
	var owner struct {
		UserID         sql.NullInt64
		GuestSessionID sql.NullString
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT user_id, guest_session_id
		FROM orders
		WHERE id = ?
	`, query.OrderID()).Row().Scan(&owner.UserID, &owner.GuestSessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError(errs.CodeOrderNotFound, "order", query.OrderID())
	}
	if err != nil {
		return errs.NewPersistenceError("orders.history.owner", err)
	}

	if query.IsAdmin() {
		return nil
	}

	if userID, ok := query.Principal().UserID(); ok {
		if owner.UserID.Valid && owner.UserID.Int64 == userID {
			return nil
		}
	} else if sessionID, ok := query.Principal().GuestSessionID(); ok {
		if owner.GuestSessionID.Valid && owner.GuestSessionID.String == sessionID {
			return nil
		}
	}

	return errs.NewAuthorizationError(errs.CodeAccessDenied, "you do not have access to this order")
}

// changedBy resolves the display name of the transition's actor. Admin
// attribution wins; rows with neither actor are system transitions.
func changedBy(adminFirst, adminLast, userFirst, userLast sql.NullString) string {
	if name := joinName(adminFirst, adminLast); name != "" {
		return name
	}
	if name := joinName(userFirst, userLast); name != "" {
		return name
	}
	return "System"
}

func joinName(first, last sql.NullString) string {
	return strings.TrimSpace(strings.TrimSpace(first.String) + " " + strings.TrimSpace(last.String))
}
