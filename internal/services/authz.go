package services

import "cafepos/internal/domain"

type Action string

const (
	ActionSell          Action = "sell"
	ActionManageCatalog Action = "catalog.manage"
	ActionViewReports   Action = "reports.view"
)

var grants = map[domain.Role][]Action{
	domain.RoleAdmin:  {ActionSell, ActionManageCatalog, ActionViewReports},
	domain.RoleSeller: {ActionSell},
}

// Can is the single place role capabilities are decided.
func Can(sess *domain.Session, a Action) bool {
	for _, g := range grants[sess.Role()] {
		if g == a {
			return true
		}
	}
	return false
}

// Authorize returns ErrUnauthenticated or ErrForbidden when sess may not
// perform a. Services call it before touching storage.
func Authorize(sess *domain.Session, a Action) error {
	if sess == nil || sess.User == nil {
		return domain.ErrUnauthenticated
	}
	if !Can(sess, a) {
		return domain.ErrForbidden
	}
	return nil
}
