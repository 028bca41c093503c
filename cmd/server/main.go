package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/livrolivre/go-library-server/auth"
	"github.com/livrolivre/go-library-server/books"
	"github.com/livrolivre/go-library-server/export"
	"github.com/livrolivre/go-library-server/internal/config"
	"github.com/livrolivre/go-library-server/internal/dbx"
	"github.com/livrolivre/go-library-server/loans"
	"github.com/livrolivre/go-library-server/mailer"
	"github.com/livrolivre/go-library-server/server"
	"github.com/livrolivre/go-library-server/token"
	"github.com/livrolivre/go-library-server/users"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	c := config.New()
	displayAppname(c.GetAppName())

	handler, err := buildServer(c)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config) (*server.Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbx.Open(ctx, c.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("dbx.Open: %w", err)
	}
	if err := dbx.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("dbx.Migrate: %w", err)
	}

	userRepo := users.NewPostgresRepo(db)
	bookRepo := books.NewPostgresRepo(db)
	loanRepo := loans.NewPostgresRepo(db)

	tokens, err := token.NewJWT(c.GetJWTSecret(), c.GetAppName())
	if err != nil {
		return nil, fmt.Errorf("token.NewJWT: %w", err)
	}

	mail, err := mailer.NewSMTPMailer(c.GetSmtpHost(), c.GetSmtpPort(), c.GetSmtpAccount(), c.GetSmtpPassword())
	if err != nil {
		return nil, fmt.Errorf("mailer.NewSMTPMailer: %w", err)
	}

	authService, err := auth.NewService(userRepo, tokens, mail, auth.PolicyFromConfig(c),
		auth.WithAppURL(c.GetAppURL()), auth.WithMailSender(c.GetMailSender()))
	if err != nil {
		return nil, fmt.Errorf("auth.NewService: %w", err)
	}

	usersService, err := users.NewService(userRepo, loanRepo, bookRepo)
	if err != nil {
		return nil, fmt.Errorf("users.NewService: %w", err)
	}

	booksService, err := books.NewService(bookRepo)
	if err != nil {
		return nil, fmt.Errorf("books.NewService: %w", err)
	}

	loansService, err := loans.NewService(loanRepo, bookRepo)
	if err != nil {
		return nil, fmt.Errorf("loans.NewService: %w", err)
	}

	exportService, err := export.NewService(userRepo)
	if err != nil {
		return nil, fmt.Errorf("export.NewService: %w", err)
	}

	return server.New(c, server.Services{
		Auth:   authService,
		Users:  usersService,
		Books:  booksService,
		Loans:  loansService,
		Export: exportService,
		Tokens: tokens,
	})
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
