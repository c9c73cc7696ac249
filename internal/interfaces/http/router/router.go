package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tornado/portal/internal/interfaces/http/handler"
)

// Handlers bundles everything the router wires up
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Partner *handler.PartnerHandler
	Product *handler.ProductHandler
	Quote   *handler.QuoteHandler
	Order   *handler.OrderHandler
	Report  *handler.ReportHandler
	System  *handler.SystemHandler
}

// Setup registers all routes. authRequired is the JWT middleware applied to
// everything except login and the health probe.
func Setup(engine *gin.Engine, h Handlers, authRequired gin.HandlerFunc) {
	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(authRequired)

	authed.GET("/auth/me", h.Auth.Me)

	users := authed.Group("/users")
	{
		users.POST("", h.User.Create)
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/role", h.User.ChangeRole)
		users.DELETE("/:id", h.User.Deactivate)
	}

	partners := authed.Group("/partners")
	{
		partners.POST("", h.Partner.Create)
		partners.GET("", h.Partner.List)
		partners.GET("/:id", h.Partner.Get)
		partners.PUT("/:id", h.Partner.Update)
		partners.DELETE("/:id", h.Partner.Deactivate)
		partners.POST("/:id/members", h.Partner.AddMember)
		partners.GET("/:id/members", h.Partner.ListMembers)
	}

	memberships := authed.Group("/memberships")
	{
		memberships.PUT("/:memberId/role", h.Partner.ChangeMemberRole)
		memberships.DELETE("/:memberId", h.Partner.RemoveMember)
	}

	products := authed.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.PUT("/:id/dependency", h.Product.SetDependency)
		products.DELETE("/:id", h.Product.Deactivate)
		products.DELETE("/:id/permanent", h.Product.HardDelete)
		products.GET("/:id/partner-price", h.Product.GetPartnerPrice)
		products.PUT("/:id/partner-price", h.Product.SetPartnerPrice)
	}

	quotes := authed.Group("/quotes")
	{
		quotes.POST("", h.Quote.Create)
		quotes.GET("", h.Quote.List)
		quotes.GET("/:id", h.Quote.Get)
		quotes.POST("/:id/transition", h.Quote.Transition)
		quotes.DELETE("/:id", h.Quote.Delete)
	}

	orders := authed.Group("/orders")
	{
		orders.POST("", h.Order.Convert)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/by-quote/:quoteId", h.Order.GetByQuote)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
	}

	reports := authed.Group("/reports")
	{
		reports.GET("/provider-dashboard", h.Report.ProviderDashboard)
		reports.GET("/partner-dashboard", h.Report.PartnerDashboard)
	}

	authed.GET("/notifications", h.System.Notifications)
}
