package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habit-tracker/internal/bot"
	"habit-tracker/internal/config"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	loc := cfg.Location()

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db, cfg.DailyTarget)
	taskRepo := repository.NewTaskRepository(db)
	checkInRepo := repository.NewCheckInRepository(db)

	taskSvc := service.NewTaskService(taskRepo)
	checkInSvc := service.NewCheckInService(taskRepo, checkInRepo)
	insightSvc := service.NewInsightService(taskRepo, checkInRepo, loc, cfg.LookbackDays)
	reminderSvc := service.NewReminderService(insightSvc)

	telegramBot, err := bot.New(cfg.TelegramToken, userRepo, taskSvc, checkInSvc, insightSvc, reminderSvc)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	scheduler := service.NewSchedulerService(loc)
	if _, err := scheduler.ScheduleDaily(cfg.ReminderTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := telegramBot.SendDailyReminders(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("reminders: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule reminders: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Habit tracker bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
