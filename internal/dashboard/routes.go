package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// registerRoutes sets up all dashboard routes on the Gin router. Every
// route is a read.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	router.GET("/", handleIndex(db))

	api := router.Group("/api")
	api.GET("/complaints", handleAPIComplaints(db))
	api.GET("/load", handleAPILoad(db))
	api.GET("/volunteers", handleAPIVolunteers(db))
}

func handleIndex(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		complaints, err := ComplaintSummary(db)
		if err != nil {
			c.String(http.StatusInternalServerError, "query failed: %v", err)
			return
		}
		load, err := LoadSummary(db)
		if err != nil {
			c.String(http.StatusInternalServerError, "query failed: %v", err)
			return
		}
		volunteers, err := VolunteerRoster(db)
		if err != nil {
			c.String(http.StatusInternalServerError, "query failed: %v", err)
			return
		}
		c.HTML(http.StatusOK, "layout.html", gin.H{
			"Complaints": complaints,
			"Load":       load,
			"Volunteers": volunteers,
		})
	}
}

func handleAPIComplaints(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := ComplaintSummary(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func handleAPILoad(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := LoadSummary(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func handleAPIVolunteers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := VolunteerRoster(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}
