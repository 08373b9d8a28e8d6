package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/i18n"
	"github.com/Sahil31312/plant-disease-classifier/middleware"
	"github.com/Sahil31312/plant-disease-classifier/services"
	"github.com/Sahil31312/plant-disease-classifier/taxonomy"
)

type KnowledgeHandler struct {
	knowledge *services.KnowledgeService
	audit     *services.AuditService
}

func NewKnowledgeHandler(knowledge *services.KnowledgeService, audit *services.AuditService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledge: knowledge, audit: audit}
}

func parseClassID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 || id >= taxonomy.NumClasses() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid disease id"})
		return 0, false
	}
	return id, true
}

func parseLanguage(c *gin.Context) (string, bool) {
	lang := c.Param("language")
	if !i18n.Supported(lang) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "unsupported language"})
		return "", false
	}
	return lang, true
}

// DiseaseInfo is the public knowledge page payload for one class, in the
// session's language.
func (h *KnowledgeHandler) DiseaseInfo(c *gin.Context) {
	id, ok := parseClassID(c)
	if !ok {
		return
	}
	lang := i18n.Normalize(middleware.GetIdentity(c).Language)

	payload := h.knowledge.Lookup(id, lang)
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"disease_id":     id,
		"class":          taxonomy.Label(id, lang),
		"is_healthy":     taxonomy.IsHealthy(id),
		"severity_color": taxonomy.SeverityColor(payload.Severity),
		"info":           payload,
		"language":       lang,
		"direction":      i18n.Direction(lang),
	})
}

func (h *KnowledgeHandler) AdminGet(c *gin.Context) {
	id, ok := parseClassID(c)
	if !ok {
		return
	}
	lang, ok := parseLanguage(c)
	if !ok {
		return
	}

	row, err := h.knowledge.Get(id, lang)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "disease info not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load disease info"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "disease": row})
}

func (h *KnowledgeHandler) AdminUpdate(c *gin.Context) {
	id, ok := parseClassID(c)
	if !ok {
		return
	}
	lang, ok := parseLanguage(c)
	if !ok {
		return
	}

	var payload services.KnowledgePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.knowledge.Upsert(id, lang, payload, identity.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update disease info"})
		return
	}

	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"disease.update", fmt.Sprintf("updated disease %d (%s)", id, lang))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "disease info updated"})
}

func (h *KnowledgeHandler) AdminDelete(c *gin.Context) {
	id, ok := parseClassID(c)
	if !ok {
		return
	}
	lang, ok := parseLanguage(c)
	if !ok {
		return
	}

	if err := h.knowledge.Delete(id, lang); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "disease info not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete disease info"})
		return
	}

	identity := middleware.GetIdentity(c)
	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"disease.delete", fmt.Sprintf("deleted disease %d (%s)", id, lang))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "disease info deleted"})
}

func (h *KnowledgeHandler) AdminList(c *gin.Context) {
	rows, err := h.knowledge.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load diseases"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "diseases": rows})
}

func (h *KnowledgeHandler) AdminSync(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	created, err := h.knowledge.Sync(identity.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "sync failed"})
		return
	}

	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"disease.sync", fmt.Sprintf("created %d placeholder rows", created))
	c.JSON(http.StatusOK, gin.H{"success": true, "created": created})
}
