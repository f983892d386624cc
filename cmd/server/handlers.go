package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Skufu/vitalsight/internal/patient"
	"github.com/Skufu/vitalsight/internal/report"
)

const maxFormMemory = 32 << 10

func handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

// handlePredictForm renders the HTML report. Failures are answered in plain
// text, 400 for form problems and 500 for anything else.
func handlePredictForm(reports *report.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := readForm(c.Request)
		if err != nil {
			c.String(http.StatusBadRequest, "invalid form: %v", err)
			return
		}

		result, err := reports.Generate(c.Request.Context(), form)
		if err != nil {
			status := http.StatusInternalServerError
			if report.IsInputError(err) {
				status = http.StatusBadRequest
			}
			logFailure(c, logger, status, err)
			c.String(status, "%s", err.Error())
			return
		}

		c.HTML(http.StatusOK, "result.html", result)
	}
}

// handlePredictAPI accepts the same fields as a form or as a flat JSON
// object and answers in JSON.
func handlePredictAPI(reports *report.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			form url.Values
			err  error
		)
		if c.ContentType() == gin.MIMEJSON {
			form, err = readJSONForm(c.Request)
		} else {
			form, err = readForm(c.Request)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		result, err := reports.Generate(c.Request.Context(), form)
		if err != nil {
			var fe patient.FieldErrors
			switch {
			case errors.As(err, &fe):
				logFailure(c, logger, http.StatusUnprocessableEntity, err)
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":   "validation_failed",
					"message": err.Error(),
					"fields":  fe.Fields(),
				})
			case report.IsModelError(err):
				logFailure(c, logger, http.StatusBadGateway, err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "prediction_failed"})
			default:
				logFailure(c, logger, http.StatusInternalServerError, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
			}
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func logFailure(c *gin.Context, logger *zap.Logger, status int, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String(requestIDKey, c.GetString(requestIDKey)),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("report generation failed", fields...)
		return
	}
	logger.Info("rejected intake form", fields...)
}

func readForm(r *http.Request) (url.Values, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	return r.PostForm, nil
}

// readJSONForm flattens a JSON object of scalars into form values. Numbers
// keep their literal text; booleans become "1" and "0".
func readJSONForm(r *http.Request) (url.Values, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}

	form := url.Values{}
	for key, raw := range body {
		switch v := raw.(type) {
		case nil:
		case string:
			form.Set(key, v)
		case json.Number:
			form.Set(key, v.String())
		case bool:
			if v {
				form.Set(key, "1")
			} else {
				form.Set(key, "0")
			}
		default:
			return nil, fmt.Errorf("field %q: unsupported value", key)
		}
	}
	return form, nil
}
