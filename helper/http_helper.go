package helper

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"

	"lawfirm-cms/models"
)

const (
	textError   = `error`
	textOk      = `ok`
	codeSuccess = http.StatusOK
	codeCreated = http.StatusCreated

	typeSuccess = `success`
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  string
	Data     interface{}
	Code     int
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewHTTPHelper wires the request validator with English error messages. It
// panics when the translations cannot be registered, which only happens on a
// broken build.
func NewHTTPHelper() *HTTPHelper {
	validate, trans, err := newValidator()
	if err != nil {
		panic(err)
	}
	return &HTTPHelper{
		Validate:   validate,
		Translator: trans,
	}
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	english := en.New()
	uni := ut.New(english, english)
	trans, found := uni.GetTranslator("en")
	if !found {
		return nil, nil, fmt.Errorf("validator: no translator for locale %q", "en")
	}

	validate := validator.New()
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("validator: registering english translations: %w", err)
	}
	return validate, trans, nil
}

// GetStatusCode ...
// Map a service error to its HTTP status.
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validation   models.ErrorValidation
		unauthorized models.ErrorUnauthorized
		forbidden    models.ErrorForbidden
		notFound     models.ErrorNotFound
		conflict     models.ErrorConflict
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message string, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, message string, data interface{}, code int, codeType string) error {
	res := u.SetResponse(c, textError, message, data, code, codeType)

	return u.SendResponse(res)
}

// SendServiceError ...
// Send the response matching a classified service error. Unclassified errors
// are reported as persistence failures without leaking their text.
func (u *HTTPHelper) SendServiceError(c *gin.Context, err error) error {
	code := u.GetStatusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	return u.SendError(c, message, u.EmptyJsonMap(), code, models.ClassOf(err))
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusBadRequest, models.ClassValidation)
}

// BindJSON decodes and validates a JSON body. It writes the error response
// itself and reports whether the handler may continue.
func (u *HTTPHelper) BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		u.SendBadRequest(c, "malformed request body", u.EmptyJsonMap())
		return false
	}
	return u.validate(c, req)
}

// BindQuery decodes and validates query parameters.
func (u *HTTPHelper) BindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		u.SendBadRequest(c, "malformed query parameters", u.EmptyJsonMap())
		return false
	}
	return u.validate(c, req)
}

func (u *HTTPHelper) validate(c *gin.Context, req interface{}) bool {
	if u.Validate == nil {
		return true
	}
	if err := u.Validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			u.SendValidationError(c, validationErrors)
			return false
		}
		u.SendBadRequest(c, err.Error(), u.EmptyJsonMap())
		return false
	}
	return true
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) error {
	errorResponse := map[string][]string{}
	var errorTranslation validator.ValidationErrorsTranslations
	if u.Translator != nil {
		errorTranslation = validationErrors.Translate(u.Translator)
	}
	for _, err := range validationErrors {
		errKey := Underscore(err.StructField())
		msg := errorTranslation[err.Namespace()]
		if msg == "" {
			msg = err.Tag()
		}
		errorResponse[errKey] = append(errorResponse[errKey], msg)
	}

	c.JSON(http.StatusBadRequest, map[string]interface{}{
		"code":         http.StatusBadRequest,
		"code_type":    models.ClassValidation,
		"code_message": errorResponse,
		"data":         u.EmptyJsonMap(),
	})
	return nil
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusUnauthorized, models.ClassAuthorization)
}

// SendForbiddenError ...
// Send forbidden response to consumers.
func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusForbidden, models.ClassAuthorization)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusNotFound, models.ClassNotFound)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, codeSuccess, typeSuccess)

	return u.SendResponse(res)
}

// SendCreated ...
// Send created response to consumers.
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, codeCreated, typeSuccess)

	return u.SendResponse(res)
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) error {
	if len(res.Message) == 0 {
		res.Message = `success`
	}

	resCode := res.Code
	if resCode < 100 || resCode > 599 {
		resCode = http.StatusInternalServerError
	}

	res.C.JSON(resCode, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
	return nil
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	currentURL := scheme + "://" + r.Host + r.URL.Path + "?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	return currentURL
}

// Set paginantion response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, prev, next, limit, page, totalRecord int) map[string]interface{} {

	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := int(math.Ceil(float64(totalRecord) / float64(limit)))

	if page > 1 {
		prev = page - 1
		if page < totalPages {
			next = page + 1
		} else {
			next = totalPages
		}
	}

	if totalPages >= page && page > 1 {
		prevURL = u.GetPagingUrl(c, prev, limit)
	}

	if totalPages > page {
		nextURL = u.GetPagingUrl(c, next, limit)
	}

	if totalPages >= page && page > 1 {
		firstURL = u.GetPagingUrl(c, 1, limit)
	}

	if totalPages >= page && totalPages != page {
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	links := map[string]interface{}{
		"previous": prevURL,
		"next":     nextURL,
		"first":    firstURL,
		"last":     lastURL,
	}

	pagination := map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links":         links,
	}

	return pagination
}
