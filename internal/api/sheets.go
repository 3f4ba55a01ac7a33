package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hrconsole/internal/views"
)

type sheetInfo struct {
	Name  string   `json:"name"`
	Rows  int      `json:"rows"`
	Steps []string `json:"steps"`
}

// ListSheets returns every registered sheet with its cached row count.
// GET /api/sheets
func (h *Handler) ListSheets(c *gin.Context) {
	st := h.cache.Status()
	reg := h.views.Registry()

	items := make([]sheetInfo, 0, len(reg.Names()))
	for _, name := range reg.Names() {
		info := sheetInfo{Name: name, Rows: st.Rows[name], Steps: []string{}}
		for _, step := range reg.MustSheet(name).Steps {
			info.Steps = append(info.Steps, step.Key)
		}
		items = append(items, info)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetRaw returns the cached table as fetched.
// GET /api/sheets/:name/raw
func (h *Handler) GetRaw(c *gin.Context) {
	table, err := h.views.Raw(c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheet": c.Param("name"), "rows": table})
}

// ListRecords returns mapped records, filtered by ?q= when given.
// GET /api/sheets/:name/records
func (h *Handler) ListRecords(c *gin.Context) {
	q := c.Query("q")
	records, err := h.views.Records(c.Param("name"), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheet": c.Param("name"), "query": q, "total": len(records), "items": records})
}

// GetStep returns the pending, history and unclassified buckets of a step.
// GET /api/sheets/:name/steps/:step
func (h *Handler) GetStep(c *gin.Context) {
	page, err := h.views.Step(c.Param("name"), c.Param("step"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Export downloads the mapped records as an xlsx workbook.
// GET /api/sheets/:name/export
func (h *Handler) Export(c *gin.Context) {
	name := c.Param("name")
	records, err := h.views.Records(name, c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}

	f, err := views.ExportRecords(h.views.Registry().MustSheet(name), records)
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+views.ExportFileName(name)+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// GetDashboard returns the landing page summary.
// GET /api/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.views.Dashboard())
}

// ListJoinings returns every joiner with its matched enquiry.
// GET /api/joinings
func (h *Handler) ListJoinings(c *gin.Context) {
	items, err := h.views.CandidateJoinings()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}
