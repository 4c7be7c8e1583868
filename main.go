// Package main library request API.
//
// @title           Library Request API
// @version         1.0
// @description     Library service (catalog, book requests, waitlist, notifications).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/kotresh75/Aws-Project/app/echoServer"
	"github.com/kotresh75/Aws-Project/app/echoServer/controller"
	authctrl "github.com/kotresh75/Aws-Project/app/echoServer/controller/auth"
	bookctrl "github.com/kotresh75/Aws-Project/app/echoServer/controller/book"
	notifctrl "github.com/kotresh75/Aws-Project/app/echoServer/controller/notification"
	requestctrl "github.com/kotresh75/Aws-Project/app/echoServer/controller/request"
	userctrl "github.com/kotresh75/Aws-Project/app/echoServer/controller/user"
	"github.com/kotresh75/Aws-Project/app/echoServer/validation"
	"github.com/kotresh75/Aws-Project/config"
	"github.com/kotresh75/Aws-Project/notification"
	bookrepo "github.com/kotresh75/Aws-Project/repository/book"
	notificationrepo "github.com/kotresh75/Aws-Project/repository/notification"
	requestrepo "github.com/kotresh75/Aws-Project/repository/request"
	userrepo "github.com/kotresh75/Aws-Project/repository/user"
	authsvc "github.com/kotresh75/Aws-Project/service/auth"
	booksvc "github.com/kotresh75/Aws-Project/service/book"
	feedsvc "github.com/kotresh75/Aws-Project/service/feed"
	requestsvc "github.com/kotresh75/Aws-Project/service/request"
	statsvc "github.com/kotresh75/Aws-Project/service/stats"
	usersvc "github.com/kotresh75/Aws-Project/service/user"
	"github.com/kotresh75/Aws-Project/util/database"
)

func main() {

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		log.Error("schema init failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	rr := requestrepo.New(db)
	nr := notificationrepo.New(db)

	// notification sinks + dispatcher
	sinks := []notification.Notifier{
		&notification.LogNotifier{Log: log},
		&notification.StoreNotifier{Repo: nr},
	}
	if cfg.SNSTopicARN != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Error("aws config load failed", "err", err)
			os.Exit(1)
		}
		sinks = append(sinks, notification.NewSNSNotifier(awsCfg, cfg.SNSTopicARN))
	}
	queue := notification.NewQueue(256, log, sinks...)
	queue.Start(ctx)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	bs := booksvc.New(br)
	rs := requestsvc.New(br, rr, ur, queue)
	us := usersvc.New(ur)
	fs := feedsvc.New(nr)
	ss := statsvc.New(br, ur, rr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, V: v, Log: log}
	notifC := &notifctrl.Controller{Svc: fs, Log: log}
	userC := &userctrl.Controller{Svc: us, Log: log}
	statsC := &controller.StatsController{Svc: ss, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Book:    bookC,
		Request: requestC,
		Notif:   notifC,
		User:    userC,
		Stats:   statsC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
