package codec

import (
	"errors"

	"github.com/fanyer/presto-sub061/models"
)

var (
	ErrParse      = errors.New("malformed sync document")
	ErrNoLinkRoot = errors.New("document has no <link> root")
)

// ServerErrorCode maps the numeric code of an <error> element to the error
// taxonomy. Unlisted codes are generic errors.
func ServerErrorCode(code int) models.SyncError {
	switch code {
	case 0:
		return models.SyncOK
	case 101:
		return models.SyncErrorAuthFailure
	case 102:
		return models.SyncErrorUserBanned
	case 103:
		return models.SyncErrorOAuthExpired
	case 201:
		return models.SyncErrorInvalidRequest
	case 202, 203:
		return models.SyncErrorParser
	case 204:
		return models.SyncErrorProtocolVersion
	case 205:
		return models.SyncErrorClientVersion
	case 305:
		return models.SyncErrorInvalidStatus
	case 310:
		return models.SyncErrorInvalidBookmark
	case 320:
		return models.SyncErrorInvalidSpeeddial
	case 330:
		return models.SyncErrorInvalidNote
	case 340:
		return models.SyncErrorInvalidSearch
	case 350:
		return models.SyncErrorInvalidTypedHistory
	case 360:
		return models.SyncErrorInvalidFeed
	case 401, 402:
		return models.SyncErrorUserUnavailable
	case 500:
		return models.SyncErrorServer
	default:
		return models.SyncErrorGeneric
	}
}
