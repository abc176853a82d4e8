package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"

	"github.com/rmahat/seatledger/controller"
	"github.com/rmahat/seatledger/migrations"
	"github.com/rmahat/seatledger/realtime"
	"github.com/rmahat/seatledger/repository"
	"github.com/rmahat/seatledger/service"
	"github.com/rmahat/seatledger/util"
)

func main() {
	_ = godotenv.Load()

	if os.Getenv("APP_ENV") != "prod" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(os.Getenv("MONGODB_URI")))
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer mongoClient.Disconnect(context.Background())

	if err := mongoClient.Ping(connectCtx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("mongo unreachable")
	}

	dbName := os.Getenv("MONGODB_DATABASE_NAME")
	db := mongoClient.Database(dbName)

	if err := migrations.EnsureLedgerIndexes(connectCtx, db); err != nil {
		log.Fatal().Err(err).Msg("ledger index bootstrap failed")
	}

	registry, err := repository.NewPartitionRegistry(connectCtx, mongoClient, dbName)
	if err != nil {
		log.Fatal().Err(err).Msg("partition registry bootstrap failed")
	}

	bookingRepository := repository.NewBookingRepository(registry)
	memberRepository := repository.NewMemberRepository(db)

	seatService := service.NewSeatService(bookingRepository, memberRepository)
	memberService := service.NewMemberService(memberRepository)

	razorpayClient := razorpay.NewClient(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
	paymentService := service.NewPaymentService(razorpayClient.Order, os.Getenv("RAZORPAY_KEY_SECRET"), bookingRepository)

	projectorService := service.NewProjectorService(bookingRepository, memberRepository, registry.Keys())
	rolloverService := service.NewRolloverService(bookingRepository)

	hub := realtime.NewHub()

	bookingController := &controller.BookingController{SeatService: seatService}
	seatController := &controller.SeatController{SeatService: seatService}
	memberController := &controller.MemberController{MemberService: memberService}
	paymentController := &controller.PaymentController{PaymentService: paymentService}
	realtimeController := &controller.RealtimeController{Hub: hub}
	healthController := &controller.HealthController{Mongo: mongoClient}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{os.Getenv("FRONTEND_ORIGIN")},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	admin := r.Group("/admin_library")
	admin.GET("/getBookingData", bookingController.GetBookingData)
	admin.POST("/addBooking", bookingController.AddBooking)
	admin.POST("/updatebooking", bookingController.UpdateBooking)
	admin.DELETE("/deleteBooking/:id", bookingController.DeleteBooking)
	admin.PATCH("/updateColor", bookingController.UpdateColor)
	admin.GET("/searchStudents", memberController.SearchStudents)

	library := r.Group("/library")
	library.GET("/getSeatStatus", seatController.GetSeatStatus)
	library.GET("/getSeatBookings/:seat", seatController.GetSeatBookings)
	library.GET("/getStudentLibSeat/:id", seatController.GetStudentLibSeat)
	library.PATCH("/updateSeatStatus/:reg", seatController.UpdateSeatStatus)
	library.PATCH("/updateNotificationStatus/:reg", seatController.UpdateNotificationStatus)
	library.POST("/createFeeOrder", paymentController.CreateFeeOrder)
	library.POST("/verifyFeePayment", paymentController.VerifyFeePayment)
	library.POST("/registerStudent", memberController.RegisterStudent)
	library.GET("/getStudent/:reg", memberController.GetStudent)

	r.GET("/ws", realtimeController.Serve)
	r.GET("/health", healthController.Health)

	scheduler := cron.New()
	_, err = scheduler.AddFunc("0 2 1 * *", func() {
		if err := rolloverService.Run(context.Background(), time.Now()); err != nil {
			log.Error().Err(err).Msg("rollover run failed")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("rollover schedule invalid")
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    ":" + os.Getenv("PORT"),
		Handler: r,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(ctx)
	})
	g.Go(func() error {
		return projectorService.Run(ctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("partition", util.CurrentMonthKey()).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("server exited")
	}
}
