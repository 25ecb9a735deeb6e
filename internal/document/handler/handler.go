package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/docsession/docsession/internal/document"
	"github.com/docsession/docsession/internal/document/service"
	"github.com/docsession/docsession/internal/models"
	"github.com/docsession/docsession/pkg/logger"
	"github.com/docsession/docsession/pkg/metrics"
	"github.com/gin-gonic/gin"
)

const maxFormMemory = 8 << 20

// RegisterDocumentRoutes mounts GET/PATCH/DELETE /documents/:id on r.
// Callers are expected to guard r with an authentication middleware.
func RegisterDocumentRoutes(r gin.IRoutes, svc service.Service) {
	r.GET("/documents/:id", func(c *gin.Context) {
		id, ok := documentID(c)
		if !ok {
			return
		}
		d, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			fail(c, "get", err)
			return
		}
		metrics.DocumentOperations.WithLabelValues("get", "ok").Inc()
		c.JSON(http.StatusOK, d)
	})

	r.PATCH("/documents/:id", func(c *gin.Context) {
		id, ok := documentID(c)
		if !ok {
			return
		}
		patch, err := bindPatch(c)
		if err != nil {
			fail(c, "update", err)
			return
		}
		d, err := svc.Update(c.Request.Context(), id, patch)
		if err != nil {
			fail(c, "update", err)
			return
		}
		metrics.DocumentOperations.WithLabelValues("update", "ok").Inc()
		c.JSON(http.StatusOK, d)
	})

	r.DELETE("/documents/:id", func(c *gin.Context) {
		id, ok := documentID(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			fail(c, "delete", err)
			return
		}
		metrics.DocumentOperations.WithLabelValues("delete", "ok").Inc()
		c.JSON(http.StatusOK, gin.H{"message": "document successfully deleted"})
	})
}

func documentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid document id"})
		return 0, false
	}
	return id, true
}

func fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		metrics.DocumentOperations.WithLabelValues(op, "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"message": "Document not found"})
	case errors.Is(err, models.ErrValidation):
		metrics.DocumentOperations.WithLabelValues(op, "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		metrics.DocumentOperations.WithLabelValues(op, "error").Inc()
		logger.Errorf("document %s %s failed: %v", op, c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

// bindPatch reads a Patch from a form or JSON body. Field names outside
// document.PatchFields are rejected with a models.ErrValidation error.
func bindPatch(c *gin.Context) (document.Patch, error) {
	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return bindFormPatch(c)
	default:
		return bindJSONPatch(c)
	}
}

func bindFormPatch(c *gin.Context) (document.Patch, error) {
	var patch document.Patch
	req := c.Request
	var err error
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		err = req.ParseMultipartForm(maxFormMemory)
	} else {
		err = req.ParseForm()
	}
	if err != nil {
		return patch, models.Invalid("invalid form body")
	}

	keys := make([]string, 0, len(req.PostForm))
	for k := range req.PostForm {
		keys = append(keys, k)
	}
	if req.MultipartForm != nil {
		for k := range req.MultipartForm.File {
			keys = append(keys, k)
		}
	}
	if err := checkFields(keys); err != nil {
		return patch, err
	}
	if _, ok := req.PostForm["title"]; ok {
		v := req.PostForm.Get("title")
		patch.Title = &v
	}
	if _, ok := req.PostForm["content"]; ok {
		v := req.PostForm.Get("content")
		patch.Content = &v
	}
	return patch, nil
}

func bindJSONPatch(c *gin.Context) (document.Patch, error) {
	var patch document.Patch
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return patch, nil
		}
		return patch, models.Invalid("invalid JSON body")
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	if err := checkFields(keys); err != nil {
		return patch, err
	}
	if v, ok := raw["title"]; ok {
		if err := json.Unmarshal(v, &patch.Title); err != nil {
			return patch, models.Invalid("field %q must be a string", "title")
		}
	}
	if v, ok := raw["content"]; ok {
		if err := json.Unmarshal(v, &patch.Content); err != nil {
			return patch, models.Invalid("field %q must be a string", "content")
		}
	}
	return patch, nil
}

func checkFields(keys []string) error {
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := document.PatchFields[k]; !ok {
			return models.Invalid("unknown field %q", k)
		}
	}
	return nil
}
