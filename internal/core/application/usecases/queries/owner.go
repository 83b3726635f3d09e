package queries

import "ecshop/internal/core/domain/model/kernel"

// ownerCondition maps a principal to the orders column that scopes reads
// to its own rows.
func ownerCondition(principal kernel.Principal) (column string, value any) {
	if userID, ok := principal.UserID(); ok {
		return "user_id", userID
	}
	sessionID, _ := principal.GuestSessionID()
	return "guest_session_id", sessionID
}
