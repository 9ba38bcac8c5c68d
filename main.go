// Package main local library API.
//
// @title           Local Library API
// @version         1.0
// @description     library catalog service (books, authors, copies, loans).
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

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/bozdag05/site/app/echoServer"
	authctrl "github.com/bozdag05/site/app/echoServer/controller/auth"
	authorctrl "github.com/bozdag05/site/app/echoServer/controller/author"
	bookctrl "github.com/bozdag05/site/app/echoServer/controller/book"
	catalogctrl "github.com/bozdag05/site/app/echoServer/controller/catalog"
	genrectrl "github.com/bozdag05/site/app/echoServer/controller/genre"
	instancectrl "github.com/bozdag05/site/app/echoServer/controller/instance"
	loanctrl "github.com/bozdag05/site/app/echoServer/controller/loan"
	"github.com/bozdag05/site/app/echoServer/validation"
	"github.com/bozdag05/site/config"
	authorrepo "github.com/bozdag05/site/repository/author"
	bookrepo "github.com/bozdag05/site/repository/book"
	genrerepo "github.com/bozdag05/site/repository/genre"
	instancerepo "github.com/bozdag05/site/repository/instance"
	openlibraryrepo "github.com/bozdag05/site/repository/openlibrary"
	userrepo "github.com/bozdag05/site/repository/user"
	authsvc "github.com/bozdag05/site/service/auth"
	authorsvc "github.com/bozdag05/site/service/author"
	booksvc "github.com/bozdag05/site/service/book"
	catalogsvc "github.com/bozdag05/site/service/catalog"
	genresvc "github.com/bozdag05/site/service/genre"
	instancesvc "github.com/bozdag05/site/service/instance"
	loansvc "github.com/bozdag05/site/service/loan"
	"github.com/bozdag05/site/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	ar := authorrepo.New(db)
	gr := genrerepo.New(db)
	br := bookrepo.New(db)
	ir := instancerepo.New(db)
	olr := openlibraryrepo.NewHTTP(cfg.OpenLibraryURL)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	cs := catalogsvc.New(br, gr, ar, ir)
	ls := loansvc.New(ir)
	aus := authorsvc.New(ar)
	gs := genresvc.New(gr)
	bs := booksvc.New(br, olr, log)
	is := instancesvc.New(ir)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	catalogC := &catalogctrl.Controller{Svc: cs, Log: log}
	loanC := &loanctrl.Controller{Svc: ls, V: v, Log: log}
	authorC := &authorctrl.Controller{Svc: aus, V: v, Log: log}
	genreC := &genrectrl.Controller{Svc: gs, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	instanceC := &instancectrl.Controller{Svc: is, V: v, Log: log}

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
		Auth:     authC,
		Catalog:  catalogC,
		Loan:     loanC,
		Author:   authorC,
		Genre:    genreC,
		Book:     bookC,
		Instance: instanceC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
