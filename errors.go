package wfsfu

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ccbrown/wfs-fu/document"
	"github.com/ccbrown/wfs-fu/negotiation"
)

// Exception is the body of every error response.
type Exception struct {
	// A machine readable code such as "InvalidParameterValue".
	Code string `json:"code"`

	// A human readable explanation of this occurrence of the problem.
	Description string `json:"description"`
}

var (
	errNotFound         = errors.New("not found")
	errMethodNotAllowed = errors.New("method not allowed")
	errNotImplemented   = errors.New("feature retrieval is not available")
)

func exceptionForError(err error) (int, Exception) {
	var unsupported *negotiation.UnsupportedFormatError
	var unknownCollection *document.UnknownCollectionError
	switch {
	case errors.As(err, &unsupported):
		return http.StatusBadRequest, Exception{
			Code:        "InvalidParameterValue",
			Description: unsupported.Error(),
		}
	case errors.As(err, &unknownCollection):
		return http.StatusNotFound, Exception{
			Code:        "NotFound",
			Description: unknownCollection.Error(),
		}
	case errors.Is(err, errNotFound):
		return http.StatusNotFound, Exception{
			Code:        "NotFound",
			Description: err.Error(),
		}
	case errors.Is(err, errMethodNotAllowed):
		return http.StatusMethodNotAllowed, Exception{
			Code:        "OperationNotSupported",
			Description: err.Error(),
		}
	case errors.Is(err, errNotImplemented):
		return http.StatusNotImplemented, Exception{
			Code:        "OperationNotSupported",
			Description: err.Error(),
		}
	}
	return http.StatusInternalServerError, Exception{
		Code:        "NoApplicableCode",
		Description: http.StatusText(http.StatusInternalServerError),
	}
}

func (api *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, exception := exceptionForError(err)

	logger := api.logger.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		logger.WithError(err).Error("request failed")
	} else {
		logger.WithError(err).Info("request rejected")
	}

	body, merr := jsoniter.Marshal(exception)
	if merr != nil {
		// Exception only contains strings, this can't really happen
		body = []byte(`{"code":"NoApplicableCode"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	w.Write(body)
}
