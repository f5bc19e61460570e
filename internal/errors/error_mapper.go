package errors

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	technicalMessage := err.Error()

	switch {
	case err == mongo.ErrNoDocuments:
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgProductNotFound,
			Code:             ErrCodeNotFound,
			HTTPStatus:       http.StatusNotFound,
			OriginalError:    err,
		}
	case strings.Contains(technicalMessage, "not found"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      technicalMessage,
			Code:             ErrCodeNotFound,
			HTTPStatus:       http.StatusNotFound,
			OriginalError:    err,
		}
	case strings.Contains(technicalMessage, "invalid") && strings.Contains(technicalMessage, "ID"):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgInvalidID,
			Code:             ErrCodeInvalidIdentifier,
			HTTPStatus:       http.StatusBadRequest,
			OriginalError:    err,
		}
	default:
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgInternalError,
			Code:             ErrCodeStoreFailure,
			HTTPStatus:       http.StatusInternalServerError,
			OriginalError:    err,
		}
	}
}
