package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sahil31312/plant-disease-classifier/i18n"
	"github.com/Sahil31312/plant-disease-classifier/middleware"
	"github.com/Sahil31312/plant-disease-classifier/services"
	"github.com/Sahil31312/plant-disease-classifier/taxonomy"
)

type LanguageHandler struct {
	sessions *services.SessionService
}

func NewLanguageHandler(sessions *services.SessionService) *LanguageHandler {
	return &LanguageHandler{sessions: sessions}
}

// SetLanguage switches the session language. Unknown tags are refused
// without touching the session.
func (h *LanguageHandler) SetLanguage(c *gin.Context) {
	lang := c.Param("language")
	if !i18n.Supported(lang) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "unsupported language"})
		return
	}

	sid, sess := h.sessions.Load(c)
	sess.Language = lang
	if _, err := h.sessions.Save(c, sid, sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to save language"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"language":  lang,
		"direction": i18n.Direction(lang),
		"message":   i18n.T(lang)["language_changed"],
	})
}

// PageContent returns the full translation table plus the localized class
// list, so clients can render without hardcoding strings.
func (h *LanguageHandler) PageContent(c *gin.Context) {
	lang := i18n.Normalize(middleware.GetIdentity(c).Language)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"language":     lang,
		"direction":    i18n.Direction(lang),
		"translations": i18n.T(lang),
		"classes":      taxonomy.ClassNames[lang],
	})
}
