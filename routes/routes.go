package routes

import (
	"log"

	"github.com/robsoriano/wellness-hub-plan/config"
	"github.com/robsoriano/wellness-hub-plan/controllers"
	"github.com/robsoriano/wellness-hub-plan/middlewares"
	"github.com/robsoriano/wellness-hub-plan/models"
	"github.com/robsoriano/wellness-hub-plan/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	db := config.DB

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(db)
	if err != nil {
		log.Printf("push delivery disabled: %v", err)
		push = nil
	}
	services.InitEventDeps(db, hub, push)

	planSvc := services.NewPlanService(db, nil)
	templateSvc := services.NewTemplateService(db)
	completionSvc := services.NewCompletionService(db, planSvc, nil)
	waterSvc := services.NewWaterService(db, nil)
	progressSvc := services.NewProgressService(db, nil)
	weeklySvc := services.NewWeeklyService(db, nil, planSvc, completionSvc, waterSvc)

	planCtl := controllers.NewPlanController(planSvc)
	templateCtl := controllers.NewTemplateController(templateSvc)
	completionCtl := controllers.NewCompletionController(completionSvc, planSvc)
	waterCtl := controllers.NewWaterController(waterSvc)
	progressCtl := controllers.NewProgressController(progressSvc)
	summaryCtl := controllers.NewSummaryController(weeklySvc)
	deviceCtl := controllers.NewDeviceController(push)
	realtimeCtl := controllers.NewRealtimeController(hub)

	authed := r.Group("/")
	authed.Use(middlewares.AuthMiddleware())
	{
		authed.GET("/plans", planCtl.ListPlans)
		authed.GET("/notifications", controllers.ListNotifications)
		authed.POST("/notifications/:id/read", controllers.MarkNotificationRead)
		authed.POST("/notifications/toggle", controllers.ToggleNotifications)
		authed.POST("/devices", deviceCtl.Register)
		authed.GET("/ws", realtimeCtl.NotificationsWS)
	}

	// Schedule and template authoring is the nutritionist's side.
	n := authed.Group("/")
	n.Use(middlewares.RequireRole(models.RoleNutritionist))
	{
		n.POST("/plans", planCtl.CreatePlan)
		n.GET("/plans/:id", planCtl.GetPlan)
		n.DELETE("/plans/:id", planCtl.DeactivatePlan)
		n.POST("/plans/:id/items", planCtl.AddItem)
		n.GET("/plans/:id/days/:day", planCtl.ListDay)
		n.DELETE("/items/:id", planCtl.RemoveItem)

		n.POST("/templates", templateCtl.CreateTemplate)
		n.GET("/templates", templateCtl.ListTemplates)
		n.GET("/templates/:id", templateCtl.GetTemplate)
		n.DELETE("/templates/:id", templateCtl.DeleteTemplate)
		n.POST("/templates/:id/items", templateCtl.AddTemplateItem)
		n.DELETE("/template-items/:id", templateCtl.RemoveTemplateItem)

		n.POST("/plans/:id/apply-template", templateCtl.ApplyTemplate)
		n.POST("/plans/:id/save-template", templateCtl.SaveAsTemplate)
		n.POST("/plans/:id/copy-day", templateCtl.CopyDay)
	}

	// Daily adherence is the patient's side.
	p := authed.Group("/me")
	p.Use(middlewares.RequireRole(models.RolePatient))
	{
		p.GET("/plan/today", planCtl.Today)
		p.POST("/completions/toggle", completionCtl.Toggle)
		p.GET("/progress/daily", completionCtl.Daily)

		p.GET("/water", waterCtl.Get)
		p.POST("/water/increment", waterCtl.Increment)
		p.POST("/water/decrement", waterCtl.Decrement)

		p.POST("/progress-logs", progressCtl.AddLog)
		p.GET("/progress-logs", progressCtl.ListLogs)
		p.GET("/streak", progressCtl.Streak)

		p.GET("/summary/weekly", summaryCtl.Weekly7Days)
	}

	return r
}
