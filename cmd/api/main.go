package main

import (
	"fmt"
	"net/http"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/config"
	appHTTP "github.com/Sniperthink-v1/hrms-attendance-go/internal/handler/http"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/pkg/hrmsapi"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/pkg/jwt"
	loaderService "github.com/Sniperthink-v1/hrms-attendance-go/internal/service/loader"
	markingService "github.com/Sniperthink-v1/hrms-attendance-go/internal/service/marking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	hrmsClient := hrmsapi.NewClient(cfg.HRMS.BaseURL, cfg.HRMS.APIToken, cfg.HRMS.Timeout)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	loader := loaderService.New(hrmsClient, cfg.Marking.InitialPageSize, cfg.Marking.Phase2Delay)
	markingSvc := markingService.NewMarkingService(hrmsClient, loader, cfg.Marking.FallbackAbsentThreshold)

	markingHandler := appHTTP.NewMarkingHandler(markingSvc)

	router := appHTTP.NewRouter(cfg, JWTService, markingHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
