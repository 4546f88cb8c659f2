package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"importdesk/internal/exporter"
)

// DownloadTemplate streams the upload template workbook for one flow
// kind. The example row uses real catalog data so the file validates
// as-is when uploaded back.
// GET /api/templates/:kind
func (h *Handler) DownloadTemplate(c *gin.Context) {
	kind := c.Param("kind")
	if kind != "request" && kind != "order" {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown template kind: " + kind})
		return
	}

	catalog, err := h.store.LoadCatalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var (
		wb   *excelize.File
		name string
	)
	if kind == "request" {
		name = "import_request_template.xlsx"
		wb, err = exporter.BuildRequestTemplate(catalog)
	} else {
		name = "import_order_template.xlsx"
		date, tm := h.gate().DefaultReceivedAt(now())
		wb, err = exporter.BuildOrderTemplate(catalog, date, tm)
	}
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	defer wb.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	if err := wb.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
