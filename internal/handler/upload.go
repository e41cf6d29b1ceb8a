package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"payment-recon/internal/domain"
	"payment-recon/internal/service"
	"payment-recon/pkg/logger"
	"payment-recon/pkg/response"
)

const (
	switchFilesField  = "switch_files"
	gatewayFilesField = "gateway_files"
)

var (
	errNoFiles       = errors.New("no ledger files uploaded")
	errUploadTooBig  = errors.New("upload exceeds size limit")
	errInvalidUpload = errors.New("invalid multipart upload")
)

// openUploads opens every file of both ledger fields. The returned close function must
// be called once the readers are no longer needed.
func openUploads(c *gin.Context) ([]service.Upload, []service.Upload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, nil, func() {}, errUploadTooBig
		}
		return nil, nil, func() {}, fmt.Errorf("%w: %v", errInvalidUpload, err)
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	open := func(field string) ([]service.Upload, error) {
		headers := form.File[field]
		uploads := make([]service.Upload, 0, len(headers))
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("%w: cannot open %s: %v", errInvalidUpload, fh.Filename, err)
			}
			opened = append(opened, f)
			uploads = append(uploads, service.Upload{Name: fh.Filename, Reader: f})
		}
		return uploads, nil
	}

	switchFiles, err := open(switchFilesField)
	if err != nil {
		closeAll()
		return nil, nil, func() {}, err
	}
	gatewayFiles, err := open(gatewayFilesField)
	if err != nil {
		closeAll()
		return nil, nil, func() {}, err
	}

	if len(switchFiles) == 0 && len(gatewayFiles) == 0 {
		closeAll()
		return nil, nil, func() {}, errNoFiles
	}

	return switchFiles, gatewayFiles, closeAll, nil
}

// statusFor maps an error onto an HTTP status. Only 500s hide the error text.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, errUploadTooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errNoFiles), errors.Is(err, errInvalidUpload):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMalformedInput),
		errors.Is(err, domain.ErrDuplicateReference),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	switch status {
	case http.StatusNotFound:
		response.NotFound(c, "Job not found")
	case http.StatusBadRequest:
		response.BadRequest(c, message, err.Error())
	case http.StatusRequestEntityTooLarge:
		response.Error(c, status, "PAYLOAD_TOO_LARGE", message, err.Error())
	case http.StatusUnprocessableEntity:
		response.ValidationError(c, err.Error())
	default:
		logger.GetLogger().WithError(err).Error(message)
		response.InternalError(c, message, "An unexpected error occurred")
	}
}
