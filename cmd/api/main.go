package main

import (
	"io"
	"log"
	"os"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/config"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/logging"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/media"
	miniorepo "github.com/davenri/RoamIO_APP_BackEnd/internal/repository/minio"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/repository/postgres"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/service"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/transport/mail"
	"github.com/davenri/RoamIO_APP_BackEnd/internal/util"

	transport "github.com/davenri/RoamIO_APP_BackEnd/internal/transport/http"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	minioClient, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect minio: %v", err)
	}
	storage := miniorepo.NewStorage(minioClient, cfg.MinIOPublicURL, cfg.MinIOUseSSL)

	users := postgres.NewUserRepo(db)
	destinations := postgres.NewDestinationRepo(db)
	reviews := postgres.NewReviewRepo(db)
	saved := postgres.NewSavedDestinationRepo(db)
	sessions := postgres.NewSessionRepo(db)
	verifications := postgres.NewVerificationRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	if mailer == nil {
		log.Println("SMTP not configured; verification and reset mails disabled")
	}

	authService := service.NewAuthService(users, sessions, verifications, jwtManager, mailerOrNil(mailer), service.AuthConfig{
		SessionTTL:     cfg.SessionTTL,
		ResetTTL:       cfg.PasswordResetTTL,
		OTPLength:      cfg.OTPLength,
		GoogleAudience: cfg.GoogleAudience,
	})
	userService := service.NewUserService(users, destinations)
	destinationService := service.NewDestinationService(destinations, reviews)
	reviewService := service.NewReviewService(reviews, destinations)
	savedService := service.NewSavedDestinationService(saved, destinations)
	imageService := service.NewImageService(storage, media.NewImageProcessor(), service.ImageServiceConfig{
		Bucket:   cfg.MinIOBucketDestinations,
		MaxBytes: cfg.DestinationImageMaxBytes,
	})

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterAuth(e, authService, cfg.AuthRatePerMinute)
	transport.RegisterUsers(e, authService, userService)
	transport.RegisterDestinations(e, authService, destinationService, imageService)
	transport.RegisterReviews(e, authService, reviewService)
	transport.RegisterSavedDestinations(e, authService, savedService)
	transport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

// mailerOrNil keeps the nil check honest: a typed nil *mail.Mailer must not
// end up inside the service.Mailer interface.
func mailerOrNil(m *mail.Mailer) service.Mailer {
	if m == nil {
		return nil
	}
	return m
}
