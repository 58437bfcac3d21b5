package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/gateway"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/mailer"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// ローカル実行用。未配置なら環境変数だけで動かす。
	_ = godotenv.Load("../.env")

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Address{},
		&model.Medicine{},
		&model.LabTest{},
		&model.Clinic{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		log.WithError(err).Fatal("failed to migrate")
	}

	//Repository（GORM実装）
	userRepo := infraRepo.NewUserRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	medicineRepo := infraRepo.NewMedicineGormRepository(gormDB)
	labTestRepo := infraRepo.NewLabTestGormRepository(gormDB)
	clinicRepo := infraRepo.NewClinicGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//外部サービス
	gw := gateway.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)

	//Usecase
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, validator.NewAuthValidator(userRepo))
	medicineUC := usecase.NewMedicineUsecase(medicineRepo, txManager)
	labTestUC := usecase.NewLabTestUsecase(labTestRepo, clinicRepo)
	clinicUC := usecase.NewClinicUsecase(clinicRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	cartUC := usecase.NewCartUsecase(txManager)
	orderUC := usecase.NewOrderUsecase(txManager, addressRepo, userRepo, gw, mail, log)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	webhookUC := usecase.NewPaymentWebhookUsecase(cfg.RazorpayWebhookSecret, orderRepo, userRepo, mail, log)

	//Handler
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC, cfg, userRepo),
		Medicine: handler.NewMedicineHandler(medicineUC),
		LabTest:  handler.NewLabTestHandler(labTestUC),
		Clinic:   handler.NewClinicHandler(clinicUC),
		Address:  handler.NewAddressHandler(addressUC),
		Cart:     handler.NewCartHandler(cartUC),
		Order:    handler.NewOrderHandler(orderUC),
		AdmOrder: handler.NewAdminOrderHandler(adminOrderUC),
		Webhook:  handler.NewWebhookHandler(webhookUC),
	}

	e := server.New(cfg, handlers, userRepo)

	addr := ":" + cfg.Port
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
