package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler, vicinityHandler *VicinityHandler) {
	api := router.Group("/api")
	{
		api.GET("/properties", handler.ListProperties)
		api.GET("/properties/filter", handler.FilterProperties)
		api.GET("/properties/:id", handler.GetProperty)

		api.GET("/listings", handler.GetListings)
		api.GET("/listings/types", handler.GetListingTypes)

		api.POST("/inquiries", handler.CreateInquiry)

		api.GET("/auth/me", handler.GetCurrentUser)
		api.POST("/auth/session", handler.CreateSession)
		api.POST("/auth/logout", handler.Logout)

		api.POST("/app-logs/:page", handler.LogPageVisit)
	}

	// Catalog management and inquiry reading need an admin session
	admin := api.Group("", handler.RequireAdmin())
	{
		admin.POST("/properties", handler.CreateProperty)
		admin.PATCH("/properties/:id", handler.UpdateProperty)
		admin.DELETE("/properties/:id", handler.DeleteProperty)

		admin.GET("/inquiries", handler.ListInquiries)
	}

	vicinity := api.Group("/vicinity")
	{
		vicinity.GET("/lots", vicinityHandler.GetLots)
		vicinity.GET("/lots.geojson", vicinityHandler.GetGeoJSON)
		vicinity.GET("/lots/:id", vicinityHandler.GetLot)
		vicinity.GET("/stats", vicinityHandler.GetStats)
		vicinity.GET("/legend", vicinityHandler.GetLegend)
		vicinity.GET("/hit", vicinityHandler.HitTest)
		vicinity.GET("/overlay.svg", vicinityHandler.GetOverlay)
		vicinity.POST("/view", vicinityHandler.ApplyViewEvent)
	}
}
