package controllers

import (
	"net/http"

	"github.com/robsoriano/wellness-hub-plan/services"

	"github.com/gin-gonic/gin"
)

type TemplateController struct {
	Templates *services.TemplateService
}

func NewTemplateController(ts *services.TemplateService) *TemplateController {
	return &TemplateController{Templates: ts}
}

// POST /templates
func (tc *TemplateController) CreateTemplate(c *gin.Context) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tpl, err := tc.Templates.CreateTemplate(c.GetUint("userID"), body.Name, body.Description, body.Category)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

// GET /templates
func (tc *TemplateController) ListTemplates(c *gin.Context) {
	tpls, err := tc.Templates.ListTemplates(c.GetUint("userID"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tpls)
}

// GET /templates/:id
func (tc *TemplateController) GetTemplate(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		return
	}
	tpl, err := tc.Templates.GetTemplate(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// DELETE /templates/:id
func (tc *TemplateController) DeleteTemplate(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		return
	}
	if err := tc.Templates.DeleteTemplate(id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// POST /templates/:id/items
func (tc *TemplateController) AddTemplateItem(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		return
	}
	var attrs services.ItemAttrs
	if err := c.ShouldBindJSON(&attrs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := tc.Templates.AddTemplateItem(id, attrs)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DELETE /template-items/:id
func (tc *TemplateController) RemoveTemplateItem(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		return
	}
	if err := tc.Templates.RemoveTemplateItem(id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// POST /plans/:id/apply-template
func (tc *TemplateController) ApplyTemplate(c *gin.Context) {
	planID, err := paramUint(c, "id")
	if err != nil {
		return
	}
	var body struct {
		TemplateID uint `json:"template_id"`
		TargetDay  int  `json:"target_day"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := tc.Templates.ApplyTemplate(body.TemplateID, planID, body.TargetDay)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"added": len(items), "items": items})
}

// POST /plans/:id/save-template
func (tc *TemplateController) SaveAsTemplate(c *gin.Context) {
	planID, err := paramUint(c, "id")
	if err != nil {
		return
	}
	var body struct {
		SourceDay   *int   `json:"source_day"` // nil = whole plan
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tpl, err := tc.Templates.SaveAsTemplate(planID, body.SourceDay, c.GetUint("userID"), body.Name, body.Description, body.Category)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

// POST /plans/:id/copy-day
func (tc *TemplateController) CopyDay(c *gin.Context) {
	planID, err := paramUint(c, "id")
	if err != nil {
		return
	}
	var body struct {
		FromDay int `json:"from_day"`
		ToDay   int `json:"to_day"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := tc.Templates.CopyDay(planID, body.FromDay, body.ToDay)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"copied": len(items), "items": items})
}
