package handlertools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"io"
	"strconv"

	"github.com/aifirst/llmdemos/internal"
	"github.com/aifirst/llmdemos/pkg/corpus"
	"github.com/aifirst/llmdemos/pkg/models"
)

var log = internal.GetLogger()

// IntFromQuery extracts a query string value and converts it to an int
// if it is not empty. If the value is empty, it returns 0.
func IntFromQuery[T ~int | int32 | int64](
	r *http.Request,
	param string,
) (T, error) {
	bitsize := 0

	p := r.URL.Query().Get(param)
	var pInt T
	if p != "" {
		switch any(pInt).(type) {
		case int:
		case int32:
			bitsize = 32
		case int64:
			bitsize = 64
		default:
			return 0, errors.New("unsupported type")
		}

		pInt, err := strconv.ParseInt(p, 10, bitsize)
		if err != nil {
			return 0, err
		}
		return T(pInt), nil
	}
	return 0, nil
}

// RenderJSON encodes data as JSON and writes it with the given status. The
// body is encoded before any header is written, so an encoding failure is
// rendered as a 500 instead of an empty success.
func RenderJSON(w http.ResponseWriter, data interface{}, status int) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		RenderError(w, fmt.Errorf("encoding response: %w", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Errorf("writing response: %v", err)
	}
}

// DecodeJSON decodes a JSON request body into the provided data struct.
func DecodeJSON(r *http.Request, data interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(data); err != nil {
		return models.NewValidationError("unable to decode request body", err)
	}
	return nil
}

// StatusForError maps an error to the status it is rendered with. Errors
// that carry no known type keep the fallback status.
func StatusForError(err error, fallback int) int {
	var maxBytesErr *http.MaxBytesError
	var apiErr *models.APIError

	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrParse):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiErr):
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusTooManyRequests:
			return apiErr.StatusCode
		default:
			return http.StatusBadGateway
		}
	}
	return fallback
}

// RenderError renders an error response.
func RenderError(w http.ResponseWriter, err error, status int) {
	status = StatusForError(err, status)

	if status == http.StatusRequestEntityTooLarge {
		err = fmt.Errorf("request body too large. reduce the size of the uploaded file")
	}

	switch {
	case status >= http.StatusInternalServerError:
		log.Error(err)
	case status != http.StatusNotFound:
		// Don't log not found errors
		log.Warn(err)
	}

	http.Error(w, err.Error(), status)
}

// CSVUpload reads the CSV file posted in the multipart field. The request
// body is capped at maxBytes.
func CSVUpload(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (*corpus.Table, error) {
	body := &limitedBody{ReadCloser: http.MaxBytesReader(w, r.Body, maxBytes)}
	r.Body = body
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if body.tooLarge != nil {
			return nil, body.tooLarge
		}
		return nil, models.NewValidationError("unable to read upload", err)
	}

	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, models.NewValidationError(fmt.Sprintf("please upload a CSV file as %q", field), err)
	}
	defer file.Close()

	return corpus.Load(file)
}

// limitedBody keeps the MaxBytesError seen while reading, since multipart
// parsing does not always wrap it.
type limitedBody struct {
	io.ReadCloser
	tooLarge *http.MaxBytesError
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		b.tooLarge = maxBytesErr
	}
	return n, err
}
