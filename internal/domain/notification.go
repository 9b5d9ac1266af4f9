package domain

import (
	"errors"
	"fmt"
)

// Severity is the level of a user visible notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a transient message surfaced to the viewer.
// Exactly one notification is produced per action or per enrichment batch.
type Notification struct {
	Severity Severity  `json:"severity"`
	Kind     ErrorKind `json:"kind,omitempty"`
	Title    string    `json:"title"`
	Message  string    `json:"message,omitempty"`
}

// NotificationFor turns an error into the single notification shown for it
func NotificationFor(err error) Notification {
	kind := Classify(err)
	n := Notification{Severity: SeverityError, Kind: kind}

	switch kind {
	case ErrorKindContractCall:
		var contractErr *ContractCallError
		errors.As(err, &contractErr)
		n.Title = "contract_connect_failed"
		n.Message = contractErr.Reason()
	case ErrorKindTransaction:
		n.Title = "transaction_failed"
	case ErrorKindNetwork:
		n.Title = "server_api_error"
	case ErrorKindFavorite:
		var favErr *FavoriteError
		errors.As(err, &favErr)
		if favErr.Op == FavoriteOpAdd {
			n.Title = "favorite_add_failed"
		} else {
			n.Title = "favorite_remove_failed"
		}
	default:
		n.Title = "unexpected_error"
	}

	return n
}

// BatchNotification summarizes the per-item failures of one enrichment batch
func BatchNotification(failed, total int, first error) *Notification {
	if failed == 0 {
		return nil
	}
	n := NotificationFor(first)
	n.Severity = SeverityWarning
	if failed == total {
		n.Severity = SeverityError
	}
	n.Message = fmt.Sprintf("%d of %d items could not be loaded", failed, total)
	return &n
}

// SuccessNotification builds a success notification with the given title
func SuccessNotification(title string) Notification {
	return Notification{Severity: SeveritySuccess, Title: title}
}
